// Package extract implements raw text extraction from stored claim files.
package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/ledongthuc/pdf"
)

const mimePDF = "application/pdf"

// PDFExtractor pulls embedded text out of PDF claim files using
// github.com/ledongthuc/pdf. Text is passed through as-is: Arabic and French
// script reach the parser uncorrupted.
type PDFExtractor struct{}

func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

// ExtractText reads the file at filePath and returns its plain text. The
// language parameter is accepted for interface compatibility with OCR
// backends that need it; embedded-text extraction does not.
func (e *PDFExtractor) ExtractText(ctx context.Context, filePath, mimeType, language string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if mimeType != mimePDF {
		return "", fmt.Errorf("unsupported mime type: %s", mimeType)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", filePath, err)
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf %s: %w", filePath, err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text %s: %w", filePath, err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("read pdf text %s: %w", filePath, err)
	}
	return buf.String(), nil
}
