package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/Rami23dz/insurance-claims-api/internal/core/domain"
	"github.com/Rami23dz/insurance-claims-api/internal/core/ports"
)

const mimePDF = "application/pdf"

// DocumentService implements ownership-scoped CRUD over claim documents.
type DocumentService struct {
	repo   ports.DocumentRepository
	store  ports.FileStore
	logger zerolog.Logger
}

func NewDocumentService(repo ports.DocumentRepository, store ports.FileStore, logger zerolog.Logger) *DocumentService {
	return &DocumentService{repo: repo, store: store, logger: logger}
}

// Upload stores the claim file and creates its pending record.
func (s *DocumentService) Upload(ctx context.Context, input ports.UploadDocumentInput, caller ports.Caller) (*domain.Document, error) {
	if input.FileType != mimePDF {
		return nil, domain.ErrValidation
	}
	if input.Language != domain.LanguageFrench && input.Language != domain.LanguageArabic {
		return nil, domain.ErrValidation
	}
	if !input.IncidentType.IsValid() {
		return nil, domain.ErrValidation
	}

	path, size, err := s.store.SaveUpload(input.OriginalFilename, input.Content)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	doc := &domain.Document{
		OriginalFilename:   input.OriginalFilename,
		FilePath:           path,
		FileSize:           size,
		FileType:           input.FileType,
		Language:           input.Language,
		IncidentType:       input.IncidentType,
		UploadedBy:         caller.UserID,
		Status:             domain.StatusPending,
		GeneratedDocuments: []domain.GeneratedDocument{},
		StatusHistory: []domain.StatusHistoryEntry{
			{Status: domain.StatusPending, Timestamp: now, Notes: "uploaded"},
		},
		UploadedAt: now,
		UpdatedAt:  now,
	}

	created, err := s.repo.Create(ctx, doc)
	if err != nil {
		// The record never existed, so the stored file is an orphan.
		_ = s.store.Remove(path)
		return nil, err
	}

	s.logger.Info().
		Str("document_id", created.ID).
		Str("incident_type", string(created.IncidentType)).
		Str("language", created.Language).
		Int64("size", size).
		Msg("document uploaded")

	return created, nil
}

// List returns the caller's own documents; admins see every document.
func (s *DocumentService) List(ctx context.Context, caller ports.Caller) ([]*domain.Document, error) {
	ownerID := caller.UserID
	if caller.Role == domain.RoleAdmin {
		ownerID = ""
	}
	return s.repo.List(ctx, ownerID)
}

func (s *DocumentService) Get(ctx context.Context, id string, caller ports.Caller) (*domain.Document, error) {
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !doc.OwnedBy(caller.UserID, caller.Role) {
		return nil, domain.ErrAccessDenied
	}
	return doc, nil
}

// Delete removes the record, its backing file, and any generated artifacts.
// File removal is best-effort idempotent: a file already gone from disk never
// fails the delete.
func (s *DocumentService) Delete(ctx context.Context, id string, caller ports.Caller) error {
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !doc.OwnedBy(caller.UserID, caller.Role) {
		return domain.ErrAccessDenied
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.store.Remove(doc.FilePath); err != nil {
		s.logger.Warn().Err(err).Str("path", doc.FilePath).Msg("failed to remove backing file")
	}
	for _, gen := range doc.GeneratedDocuments {
		if err := s.store.Remove(gen.FilePath); err != nil {
			s.logger.Warn().Err(err).Str("path", gen.FilePath).Msg("failed to remove generated file")
		}
	}

	s.logger.Info().Str("document_id", id).Msg("document deleted")
	return nil
}
