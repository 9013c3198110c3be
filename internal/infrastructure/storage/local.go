// Package storage provides local filesystem persistence for uploaded claim
// files and generated artifacts.
package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/Rami23dz/insurance-claims-api/internal/core/domain"
)

// LocalStore writes uploads under uploadDir and generated PDFs under
// outputDir. Upload keys are uuid-prefixed so concurrent uploads of the same
// filename never collide; output paths are deterministic per document and
// artifact type so re-runs overwrite rather than accumulate.
type LocalStore struct {
	uploadDir string
	outputDir string
}

func NewLocalStore(uploadDir, outputDir string) (*LocalStore, error) {
	for _, dir := range []string{uploadDir, outputDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir %s: %w", dir, err)
		}
	}
	return &LocalStore{uploadDir: uploadDir, outputDir: outputDir}, nil
}

// SaveUpload stores the content under a collision-free uuid key and returns
// the absolute path and number of bytes written.
func (s *LocalStore) SaveUpload(originalFilename string, r io.Reader) (string, int64, error) {
	key := uuid.NewString() + "_" + filepath.Base(originalFilename)
	path := filepath.Join(s.uploadDir, key)

	f, err := os.Create(path)
	if err != nil {
		return "", 0, fmt.Errorf("create upload file: %w", err)
	}

	size, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return "", 0, fmt.Errorf("write upload file: %w", err)
	}

	return path, size, nil
}

// OutputPath derives the artifact path from the document id and type tag.
func (s *LocalStore) OutputPath(documentID string, docType domain.GeneratedDocType) string {
	return filepath.Join(s.outputDir, fmt.Sprintf("%s_%s.pdf", documentID, docType))
}

// Remove deletes the file at path. A file already gone is not an error: the
// delete flow must stay idempotent on the filesystem side.
func (s *LocalStore) Remove(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", path, err)
	}
	return nil
}
