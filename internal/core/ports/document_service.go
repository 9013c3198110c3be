package ports

import (
	"context"
	"io"

	"github.com/Rami23dz/insurance-claims-api/internal/core/domain"
)

// Caller identifies the authenticated principal behind a request, as decoded
// from the x-auth-token claims.
type Caller struct {
	UserID string
	Role   domain.Role
}

// UploadDocumentInput carries the metadata and content of an uploaded claim file.
type UploadDocumentInput struct {
	OriginalFilename string
	FileType         string
	Language         string
	IncidentType     domain.IncidentType
	Content          io.Reader
}

// DocumentService defines ownership-scoped CRUD over claim documents.
type DocumentService interface {
	Upload(ctx context.Context, input UploadDocumentInput, caller Caller) (*domain.Document, error)
	// List returns the caller's own documents, or every document for admins.
	List(ctx context.Context, caller Caller) ([]*domain.Document, error)
	Get(ctx context.Context, id string, caller Caller) (*domain.Document, error)
	// Delete removes the record, its backing file, and any generated
	// artifacts. File removal is idempotent: already-missing files never fail
	// the delete.
	Delete(ctx context.Context, id string, caller Caller) error
}
