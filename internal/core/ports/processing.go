package ports

import (
	"context"
	"io"

	"github.com/Rami23dz/insurance-claims-api/internal/core/domain"
)

// TextExtractor pulls raw text out of a stored claim file. Implementations
// must surface Arabic and Latin script unchanged; the parser downstream
// depends on exact keyword matches.
type TextExtractor interface {
	ExtractText(ctx context.Context, filePath, mimeType, language string) (string, error)
}

// PDFRenderer converts rendered HTML markup into a PDF written at outputPath
// and returns the path. It is a pure function of its two inputs, with no side
// effects beyond the output file, so rasterization backends are swappable.
type PDFRenderer interface {
	RenderPDF(ctx context.Context, html, outputPath string) (string, error)
}

// ExtractionResult is the output of the extraction stage.
type ExtractionResult struct {
	Text string
	Data *domain.ExtractedData
}

// ExtractionService layers structured-field parsing atop raw text extraction.
type ExtractionService interface {
	ProcessDocument(ctx context.Context, doc *domain.Document) (*ExtractionResult, error)
}

// GenerationService produces the output artifacts for a processed claim:
// always one declaration, plus a depot de plainte for theft and vandalism.
type GenerationService interface {
	GenerateDocuments(ctx context.Context, doc *domain.Document, data *domain.ExtractedData) ([]domain.GeneratedDocument, error)
}

// ProcessorService drives a document through extraction and generation,
// persisting status transitions along the way.
type ProcessorService interface {
	Process(ctx context.Context, documentID string, caller Caller) (*domain.Document, error)
}

// ProcessLock guarantees at most one in-flight processing run per document.
type ProcessLock interface {
	// Acquire returns false when another run already holds the lock.
	Acquire(ctx context.Context, documentID string) (bool, error)
	Release(ctx context.Context, documentID string) error
}

// FileStore persists uploaded claim files and generated artifacts on disk.
type FileStore interface {
	// SaveUpload stores the content under a collision-free key and returns
	// the absolute path and size written.
	SaveUpload(originalFilename string, r io.Reader) (path string, size int64, err error)
	// OutputPath returns the deterministic path for a generated artifact,
	// derived from the document id and artifact type.
	OutputPath(documentID string, docType domain.GeneratedDocType) string
	// Remove deletes a file, treating an already-missing file as success.
	Remove(path string) error
}
