package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/Rami23dz/insurance-claims-api/internal/core/domain"
	"github.com/Rami23dz/insurance-claims-api/internal/core/ports"
)

// DocumentProcessorService drives a claim document through extraction and
// generation, persisting each state machine transition:
//
//	pending → processing → completed
//	                    ↘ failed
//
// At most one run per document is in flight at any time, enforced by both the
// distributed lock and the atomic pending→processing transition.
type DocumentProcessorService struct {
	repo       ports.DocumentRepository
	extraction ports.ExtractionService
	generation ports.GenerationService
	store      ports.FileStore
	lock       ports.ProcessLock
	logger     zerolog.Logger
}

func NewDocumentProcessorService(
	repo ports.DocumentRepository,
	extraction ports.ExtractionService,
	generation ports.GenerationService,
	store ports.FileStore,
	lock ports.ProcessLock,
	logger zerolog.Logger,
) *DocumentProcessorService {
	return &DocumentProcessorService{
		repo:       repo,
		extraction: extraction,
		generation: generation,
		store:      store,
		lock:       lock,
		logger:     logger,
	}
}

// Process runs the full pipeline for one document and returns its final state.
// Re-processing a document that is not pending is rejected as a conflict.
func (s *DocumentProcessorService) Process(ctx context.Context, documentID string, caller ports.Caller) (*domain.Document, error) {
	doc, err := s.repo.FindByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if !doc.OwnedBy(caller.UserID, caller.Role) {
		return nil, domain.ErrAccessDenied
	}
	if doc.Status != domain.StatusPending {
		return nil, domain.ErrDocumentNotPending
	}

	acquired, err := s.lock.Acquire(ctx, documentID)
	if err != nil {
		s.logger.Warn().Err(err).Str("document_id", documentID).Msg("process lock unavailable, relying on status guard")
	} else if !acquired {
		return nil, domain.ErrDocumentNotPending
	} else {
		defer func() {
			if relErr := s.lock.Release(context.WithoutCancel(ctx), documentID); relErr != nil {
				s.logger.Warn().Err(relErr).Str("document_id", documentID).Msg("failed to release process lock")
			}
		}()
	}

	// The atomic transition is the authoritative guard: a concurrent run that
	// slipped past the lock loses here.
	if err := s.repo.TransitionStatus(ctx, documentID, domain.StatusPending, domain.StatusProcessing, "processing started"); err != nil {
		return nil, err
	}
	doc.Status = domain.StatusProcessing

	result, err := s.extraction.ProcessDocument(ctx, doc)
	if err != nil {
		s.fail(ctx, documentID, "extraction failed")
		return nil, err
	}

	generated, err := s.generation.GenerateDocuments(ctx, doc, result.Data)
	if err != nil {
		s.fail(ctx, documentID, "generation failed")
		return nil, err
	}

	if err := s.repo.SaveResults(ctx, documentID, result.Text, result.Data, generated, domain.StatusCompleted, "processing completed"); err != nil {
		// Artifacts from this run must not outlive a failed persist.
		for _, g := range generated {
			if remErr := s.store.Remove(g.FilePath); remErr != nil {
				s.logger.Warn().Err(remErr).Str("path", g.FilePath).Msg("failed to remove artifact after persist failure")
			}
		}
		s.fail(ctx, documentID, "persist failed")
		return nil, err
	}

	s.logger.Info().
		Str("document_id", documentID).
		Str("incident_type", string(doc.IncidentType)).
		Int("generated", len(generated)).
		Msg("document processed")

	return s.repo.FindByID(ctx, documentID)
}

// fail moves the document to the terminal failed state. The transition error
// is logged, not returned: the caller already holds the original cause.
func (s *DocumentProcessorService) fail(ctx context.Context, documentID, notes string) {
	if err := s.repo.TransitionStatus(ctx, documentID, domain.StatusProcessing, domain.StatusFailed, notes); err != nil {
		s.logger.Error().Err(err).Str("document_id", documentID).Msg("failed to mark document as failed")
	}
}
