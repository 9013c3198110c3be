package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Rami23dz/insurance-claims-api/internal/core/domain"
	"github.com/Rami23dz/insurance-claims-api/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory document repository
// ---------------------------------------------------------------------------

type stubDocumentRepo struct {
	mu     sync.Mutex
	docs   map[string]*domain.Document
	nextID int

	createErr error
	saveErr   error
}

func newStubDocumentRepo() *stubDocumentRepo {
	return &stubDocumentRepo{docs: make(map[string]*domain.Document)}
}

func (r *stubDocumentRepo) Create(_ context.Context, doc *domain.Document) (*domain.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.nextID++
	clone := *doc
	clone.ID = fmt.Sprintf("doc-%d", r.nextID)
	r.docs[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubDocumentRepo) FindByID(_ context.Context, id string) (*domain.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[id]
	if !ok {
		return nil, domain.ErrDocumentNotFound
	}
	clone := *doc
	return &clone, nil
}

func (r *stubDocumentRepo) List(_ context.Context, ownerID string) ([]*domain.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Document
	for _, doc := range r.docs {
		if ownerID != "" && doc.UploadedBy != ownerID {
			continue
		}
		clone := *doc
		out = append(out, &clone)
	}
	return out, nil
}

// TransitionStatus mirrors the atomic compare-and-set the Mongo repo performs.
func (r *stubDocumentRepo) TransitionStatus(_ context.Context, id string, from, to domain.DocumentStatus, notes string) error {
	if !from.CanTransitionTo(to) {
		return domain.ErrInvalidTransition
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[id]
	if !ok {
		return domain.ErrDocumentNotFound
	}
	if doc.Status != from {
		return domain.ErrDocumentNotPending
	}
	doc.Status = to
	doc.StatusHistory = append(doc.StatusHistory, domain.StatusHistoryEntry{Status: to, Notes: notes})
	return nil
}

func (r *stubDocumentRepo) SaveResults(_ context.Context, id string, text string, data *domain.ExtractedData, generated []domain.GeneratedDocument, to domain.DocumentStatus, notes string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	doc, ok := r.docs[id]
	if !ok {
		return domain.ErrDocumentNotFound
	}
	if doc.Status != domain.StatusProcessing {
		return domain.ErrDocumentNotPending
	}
	doc.Status = to
	doc.ExtractedText = text
	doc.ExtractedData = data
	doc.GeneratedDocuments = generated
	doc.StatusHistory = append(doc.StatusHistory, domain.StatusHistoryEntry{Status: to, Notes: notes})
	return nil
}

func (r *stubDocumentRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[id]; !ok {
		return domain.ErrDocumentNotFound
	}
	delete(r.docs, id)
	return nil
}

// seed inserts a document directly, bypassing Create.
func (r *stubDocumentRepo) seed(doc *domain.Document) {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *doc
	r.docs[doc.ID] = &clone
}

// ---------------------------------------------------------------------------
// File store writing into a test temp dir
// ---------------------------------------------------------------------------

type stubFileStore struct {
	dir     string
	mu      sync.Mutex
	removed []string
	saveErr error
}

func newStubFileStore(dir string) *stubFileStore {
	return &stubFileStore{dir: dir}
}

func (s *stubFileStore) SaveUpload(originalFilename string, r io.Reader) (string, int64, error) {
	if s.saveErr != nil {
		return "", 0, s.saveErr
	}
	path := filepath.Join(s.dir, "upload_"+filepath.Base(originalFilename))
	f, err := os.Create(path)
	if err != nil {
		return "", 0, err
	}
	defer f.Close()
	size, err := io.Copy(f, r)
	if err != nil {
		return "", 0, err
	}
	return path, size, nil
}

func (s *stubFileStore) OutputPath(documentID string, docType domain.GeneratedDocType) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s_%s.pdf", documentID, docType))
}

func (s *stubFileStore) Remove(path string) error {
	s.mu.Lock()
	s.removed = append(s.removed, path)
	s.mu.Unlock()
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// ---------------------------------------------------------------------------
// Strategy stubs
// ---------------------------------------------------------------------------

type stubExtractor struct {
	extractFn func(ctx context.Context, filePath, mimeType, language string) (string, error)
}

func (s *stubExtractor) ExtractText(ctx context.Context, filePath, mimeType, language string) (string, error) {
	return s.extractFn(ctx, filePath, mimeType, language)
}

// stubRenderer writes the markup verbatim to the output path, mirroring how
// alternate rasterizers can be swapped in behind the port. When failOnCall is
// non-zero, that call number fails instead.
type stubRenderer struct {
	failOnCall int
	failErr    error
	calls      int
}

func (s *stubRenderer) RenderPDF(_ context.Context, html, outputPath string) (string, error) {
	s.calls++
	if s.failOnCall != 0 && s.calls == s.failOnCall {
		return "", s.failErr
	}
	if err := os.WriteFile(outputPath, []byte(html), 0o644); err != nil {
		return "", err
	}
	return outputPath, nil
}

type stubLock struct {
	mu       sync.Mutex
	held     map[string]bool
	acquired []string
	err      error
}

func newStubLock() *stubLock {
	return &stubLock{held: map[string]bool{}}
}

func (l *stubLock) Acquire(_ context.Context, documentID string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return false, l.err
	}
	if l.held[documentID] {
		return false, nil
	}
	l.held[documentID] = true
	l.acquired = append(l.acquired, documentID)
	return true, nil
}

func (l *stubLock) Release(_ context.Context, documentID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.held, documentID)
	return nil
}

// pendingDocument builds a minimal pending document rooted at dir.
func pendingDocument(id, owner, language string, incident domain.IncidentType, dir string) *domain.Document {
	return &domain.Document{
		ID:               id,
		OriginalFilename: "claim.pdf",
		FilePath:         filepath.Join(dir, "claim.pdf"),
		FileSize:         1024,
		FileType:         "application/pdf",
		Language:         language,
		IncidentType:     incident,
		UploadedBy:       owner,
		Status:           domain.StatusPending,
	}
}

var _ ports.DocumentRepository = (*stubDocumentRepo)(nil)
var _ ports.FileStore = (*stubFileStore)(nil)
var _ ports.TextExtractor = (*stubExtractor)(nil)
var _ ports.PDFRenderer = (*stubRenderer)(nil)
var _ ports.ProcessLock = (*stubLock)(nil)
