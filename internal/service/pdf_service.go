package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/fadilmartias/stress-manometer/internal/config"
	"github.com/gen2brain/go-fitz"
)

// PDFRenderer turns an assembled HTML report into a PDF document.
type PDFRenderer interface {
	Render(ctx context.Context, html string) ([]byte, error)
}

// RenderError reports which step of PDF rendering failed.
type RenderError struct {
	Stage string
	Err   error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("pdf render failed at %s: %v", e.Stage, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

var errEmptyPDF = errors.New("renderer produced no pages")

const cssPixelsPerInch = 96.0

// ChromePDFService prints the report with headless Chrome as one tall page
// sized to the rendered content.
type ChromePDFService struct {
	ExecPath string
	Timeout  time.Duration
	// TempDir is the parent of the per-render scratch directory. Empty means
	// the OS default.
	TempDir       string
	PageWidthPx   int
	MarginPx      int
	ExtraHeightPx int
}

func NewChromePDFService(cfg *config.RendererConfig) *ChromePDFService {
	return &ChromePDFService{
		ExecPath:      cfg.ChromePath,
		Timeout:       cfg.Timeout,
		PageWidthPx:   1200,
		MarginPx:      40,
		ExtraHeightPx: 100,
	}
}

func (s *ChromePDFService) Render(ctx context.Context, html string) ([]byte, error) {
	dir, err := os.MkdirTemp(s.TempDir, "report-*")
	if err != nil {
		return nil, &RenderError{Stage: "tempdir", Err: err}
	}
	defer os.RemoveAll(dir)

	htmlPath := filepath.Join(dir, "report.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o600); err != nil {
		return nil, &RenderError{Stage: "write", Err: err}
	}

	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserDataDir(filepath.Join(dir, "profile")),
	)
	if s.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(s.ExecPath))
	}
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	start := time.Now()
	var height float64
	if err := chromedp.Run(browserCtx,
		chromedp.EmulateViewport(int64(s.PageWidthPx), 800),
		chromedp.Navigate("file://"+htmlPath),
		chromedp.Evaluate(`document.body.scrollHeight`, &height),
	); err != nil {
		return nil, &RenderError{Stage: "load", Err: err}
	}

	width := float64(s.PageWidthPx) / cssPixelsPerInch
	total := (height + float64(s.ExtraHeightPx)) / cssPixelsPerInch
	margin := float64(s.MarginPx) / cssPixelsPerInch

	var pdf []byte
	if err := chromedp.Run(browserCtx, chromedp.ActionFunc(func(ctx context.Context) error {
		data, _, err := page.PrintToPDF().
			WithPrintBackground(true).
			WithPaperWidth(width).
			WithPaperHeight(total).
			WithMarginTop(margin).
			WithMarginBottom(margin).
			WithMarginLeft(margin).
			WithMarginRight(margin).
			Do(ctx)
		pdf = data
		return err
	})); err != nil {
		return nil, &RenderError{Stage: "print", Err: err}
	}

	if err := verifyPDF(pdf); err != nil {
		return nil, &RenderError{Stage: "verify", Err: err}
	}
	log.Printf("PDF rendered (%d bytes, content height %.0fpx) in %v", len(pdf), height, time.Since(start))
	return pdf, nil
}

// verifyPDF checks that data parses as a PDF with at least one page.
func verifyPDF(data []byte) error {
	if len(data) == 0 {
		return errEmptyPDF
	}
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return fmt.Errorf("unreadable pdf: %w", err)
	}
	defer doc.Close()

	pages := doc.NumPage()
	if pages == 0 {
		return errEmptyPDF
	}
	if pages > 1 {
		log.Printf("Warning: report spans %d pages instead of one", pages)
	}
	return nil
}
