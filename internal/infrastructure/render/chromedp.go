// Package render implements HTML to PDF rasterization with headless Chrome.
package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// ChromeRenderer converts HTML markup into PDF files by driving a headless
// Chrome instance through chromedp. It satisfies the PDFRenderer port: the
// output depends only on the markup and the output path.
type ChromeRenderer struct {
	allocCtx context.Context
	cancel   context.CancelFunc
}

// NewChromeRenderer creates the shared browser allocator. Call Close to
// release the browser when the service shuts down.
func NewChromeRenderer() *ChromeRenderer {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
	)

	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)
	return &ChromeRenderer{allocCtx: allocCtx, cancel: cancel}
}

// Close releases the browser and its resources.
func (r *ChromeRenderer) Close() {
	r.cancel()
}

// RenderPDF loads the markup into a fresh tab, prints it to PDF, and writes
// the result at outputPath. It returns the path written.
func (r *ChromeRenderer) RenderPDF(ctx context.Context, html, outputPath string) (string, error) {
	tabCtx, cancelTab := chromedp.NewContext(r.allocCtx)
	defer cancelTab()

	// Honor the caller's deadline on top of the tab context.
	if deadline, ok := ctx.Deadline(); ok {
		var cancelDeadline context.CancelFunc
		tabCtx, cancelDeadline = context.WithDeadline(tabCtx, deadline)
		defer cancelDeadline()
	}

	var pdfData []byte
	err := chromedp.Run(tabCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfData = buf
			return nil
		}),
	)
	if err != nil {
		return "", fmt.Errorf("print to pdf: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(outputPath, pdfData, 0o644); err != nil {
		return "", fmt.Errorf("write pdf: %w", err)
	}

	return outputPath, nil
}
