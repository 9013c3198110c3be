package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Rami23dz/insurance-claims-api/internal/core/domain"
)

// RBAC enforces role-based access control against the closed role set.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			roleStr, _ := c.Get("role").(string)
			role := domain.Role(roleStr)
			if _, ok := allowed[role]; !ok || !role.IsValid() {
				return c.JSON(http.StatusForbidden, map[string]string{"message": "Access denied"})
			}
			return next(c)
		}
	}
}
