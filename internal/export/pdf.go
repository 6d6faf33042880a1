// ABOUTME: Prints rendered résumé HTML to PDF through headless Chrome
// ABOUTME: CHROME_PATH selects the browser binary when it is not on PATH

package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// printTimeout bounds a single Chrome print job
const printTimeout = 60 * time.Second

// Printer turns an HTML page into PDF bytes
type Printer interface {
	PrintPDF(ctx context.Context, html []byte) ([]byte, error)
}

// ChromePrinter drives a headless Chrome via the DevTools protocol
type ChromePrinter struct {
	execPath string
}

// NewChromePrinter creates a printer. An empty execPath lets chromedp find Chrome.
func NewChromePrinter(execPath string) *ChromePrinter {
	return &ChromePrinter{execPath: execPath}
}

// PrintPDF loads html from a temporary file and prints it on A4 paper
func (p *ChromePrinter) PrintPDF(ctx context.Context, html []byte) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if p.execPath != "" {
		opts = append(opts, chromedp.ExecPath(p.execPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	runCtx, cancel := context.WithTimeout(browserCtx, printTimeout)
	defer cancel()

	tmpDir, err := os.MkdirTemp("", "resume-print-")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	htmlPath := filepath.Join(tmpDir, "index.html")
	if err := os.WriteFile(htmlPath, html, 0o600); err != nil {
		return nil, fmt.Errorf("failed to write page: %w", err)
	}

	var pdf []byte
	err = chromedp.Run(runCtx,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// A4 in inches
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to print pdf: %w", err)
	}
	return pdf, nil
}
