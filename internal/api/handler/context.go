package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Rami23dz/insurance-claims-api/internal/core/domain"
	"github.com/Rami23dz/insurance-claims-api/internal/core/ports"
)

// ctxCaller extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call: both the user id and a
// valid role must be present, otherwise the JWT is structurally valid but
// operationally unusable and the request is rejected with 401.
func ctxCaller(c echo.Context) (ports.Caller, error) {
	userID, _ := c.Get("user_id").(string)
	roleStr, _ := c.Get("role").(string)
	role := domain.Role(roleStr)

	if userID == "" || !role.IsValid() {
		return ports.Caller{}, echo.NewHTTPError(http.StatusUnauthorized, "Token is not valid")
	}

	return ports.Caller{UserID: userID, Role: role}, nil
}
