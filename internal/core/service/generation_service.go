package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Rami23dz/insurance-claims-api/internal/core/domain"
	"github.com/Rami23dz/insurance-claims-api/internal/core/ports"
)

// DocumentGenerationService renders language and incident specific templates
// into HTML and hands the markup to the injected PDFRenderer. Rendering format
// is decoupled from rasterization: swapping the renderer never touches the
// templates.
type DocumentGenerationService struct {
	renderer ports.PDFRenderer
	store    ports.FileStore
	logger   zerolog.Logger
}

func NewDocumentGenerationService(renderer ports.PDFRenderer, store ports.FileStore, logger zerolog.Logger) *DocumentGenerationService {
	return &DocumentGenerationService{renderer: renderer, store: store, logger: logger}
}

// GenerateDocuments produces exactly one declaration, plus a depot de plainte
// when the incident type requires a complaint filing. On failure, artifacts
// already written for this run are removed before the error is returned.
func (s *DocumentGenerationService) GenerateDocuments(ctx context.Context, doc *domain.Document, data *domain.ExtractedData) ([]domain.GeneratedDocument, error) {
	docTypes := []domain.GeneratedDocType{domain.DocTypeDeclaration}
	if doc.IncidentType.RequiresComplaint() {
		docTypes = append(docTypes, domain.DocTypeComplaint)
	}

	generated := make([]domain.GeneratedDocument, 0, len(docTypes))
	for _, docType := range docTypes {
		artifact, err := s.generateOne(ctx, doc, data, docType)
		if err != nil {
			s.cleanup(generated)
			return nil, err
		}
		generated = append(generated, *artifact)
	}

	s.logger.Info().
		Str("document_id", doc.ID).
		Int("artifacts", len(generated)).
		Msg("documents generated")

	return generated, nil
}

func (s *DocumentGenerationService) generateOne(ctx context.Context, doc *domain.Document, data *domain.ExtractedData, docType domain.GeneratedDocType) (*domain.GeneratedDocument, error) {
	view := templateData{
		OriginalFilename: doc.OriginalFilename,
		IncidentType:     doc.IncidentType,
		Date:             data.Date,
		Location:         data.Location,
		Description:      data.Description,
		StolenItems:      data.StolenItems,
		PerpetratorInfo:  data.PerpetratorInfo,
	}

	var markup strings.Builder
	if err := outputTemplates.ExecuteTemplate(&markup, templateName(docType, doc.Language), view); err != nil {
		return nil, fmt.Errorf("%w: render template %s: %v", domain.ErrGenerationFailed, docType, err)
	}

	outputPath := s.store.OutputPath(doc.ID, docType)
	path, err := s.renderer.RenderPDF(ctx, markup.String(), outputPath)
	if err != nil {
		return nil, fmt.Errorf("%w: render pdf %s: %v", domain.ErrGenerationFailed, docType, err)
	}

	return &domain.GeneratedDocument{
		Type:        docType,
		FilePath:    path,
		GeneratedAt: time.Now().UTC(),
	}, nil
}

func (s *DocumentGenerationService) cleanup(generated []domain.GeneratedDocument) {
	for _, g := range generated {
		if err := s.store.Remove(g.FilePath); err != nil {
			s.logger.Warn().Err(err).Str("path", g.FilePath).Msg("failed to remove partial artifact")
		}
	}
}
