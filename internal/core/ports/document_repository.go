package ports

import (
	"context"

	"github.com/Rami23dz/insurance-claims-api/internal/core/domain"
)

// DocumentRepository defines persistence operations for claim documents.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) (*domain.Document, error)
	FindByID(ctx context.Context, id string) (*domain.Document, error)
	// List returns documents uploaded by ownerID; an empty ownerID returns all
	// documents (admin view).
	List(ctx context.Context, ownerID string) ([]*domain.Document, error)
	// TransitionStatus atomically moves a document from one status to another
	// and appends a status history entry. It fails with
	// domain.ErrDocumentNotPending when the document is not currently in the
	// expected status, and domain.ErrDocumentNotFound when it does not exist.
	TransitionStatus(ctx context.Context, id string, from, to domain.DocumentStatus, notes string) error
	// SaveResults persists the outcome of a processing run together with the
	// terminal status transition.
	SaveResults(ctx context.Context, id string, text string, data *domain.ExtractedData, generated []domain.GeneratedDocument, to domain.DocumentStatus, notes string) error
	Delete(ctx context.Context, id string) error
}
