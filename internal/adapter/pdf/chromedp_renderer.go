package pdf

import (
	"context"
	"fmt"
	"time"

	"examcraft/internal/domain"
	"examcraft/internal/logger"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

const (
	// A4 in inches
	a4Width  = 8.27
	a4Height = 11.69
)

// ChromeRenderer prints HTML documents with a headless Chrome.
type ChromeRenderer struct {
	timeout time.Duration
}

// NewChromeRenderer creates a renderer that gives every document at most timeout to print.
func NewChromeRenderer(timeout time.Duration) domain.PDFRenderer {
	return &ChromeRenderer{timeout: timeout}
}

// RenderPDF loads html into a blank page and prints it to A4.
func (r *ChromeRenderer) RenderPDF(ctx context.Context, html string) ([]byte, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.DisableGPU,
		chromedp.NoSandbox,
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	start := time.Now()
	var pdfBuffer []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(a4Width).
				WithPaperHeight(a4Height).
				WithPreferCSSPageSize(true).
				Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = buf
			return nil
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to print pdf: %w", err)
	}

	logger.Get().Debug("Rendered PDF",
		zap.Int("bytes", len(pdfBuffer)),
		zap.Duration("elapsed", time.Since(start)))
	return pdfBuffer, nil
}
