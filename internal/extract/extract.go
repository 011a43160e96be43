// Package extract turns an uploaded PDF into plain text. The embedded text
// layer is tried first; scanned documents fall back to rasterizing every page
// and running OCR on the images.
package extract

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"jobx-backend/internal/shared/apperr"
	"jobx-backend/internal/shared/metrics"
	"jobx-backend/internal/shared/telemetry"
)

const (
	MethodTextLayer = "text_layer"
	MethodOCR       = "ocr"

	defaultOCRTimeout = 120 * time.Second
	defaultDPI        = 300
)

// TextLayer reads the text embedded in a PDF.
type TextLayer interface {
	Text(ctx context.Context, pdf []byte) (string, error)
}

// Rasterizer renders every page of the PDF at pdfPath into images under
// outDir and returns their paths in page order.
type Rasterizer interface {
	Rasterize(ctx context.Context, pdfPath, outDir string) ([]string, error)
}

// Recognizer runs OCR on a single page image.
type Recognizer interface {
	Recognize(ctx context.Context, imagePath string) (string, error)
}

// Options configures the default extractor.
type Options struct {
	PdftoppmPath  string
	TesseractPath string
	Lang          string
	DPI           int
	OCRTimeout    time.Duration
	TempDir       string
}

// Extractor runs the text-layer / OCR fallback chain.
type Extractor struct {
	TextLayer  TextLayer
	Rasterizer Rasterizer
	Recognizer Recognizer
	OCRTimeout time.Duration
	TempDir    string
}

// New builds an Extractor backed by ledongthuc/pdf, pdftoppm and tesseract.
func New(opts Options) *Extractor {
	dpi := opts.DPI
	if dpi <= 0 {
		dpi = defaultDPI
	}
	lang := strings.TrimSpace(opts.Lang)
	if lang == "" {
		lang = "eng"
	}
	return &Extractor{
		TextLayer:  PDFText{},
		Rasterizer: Pdftoppm{Path: opts.PdftoppmPath, DPI: dpi},
		Recognizer: Tesseract{Path: opts.TesseractPath, Lang: lang},
		OCRTimeout: opts.OCRTimeout,
		TempDir:    opts.TempDir,
	}
}

// Result is the extracted text and the path that produced it.
type Result struct {
	Text   string
	Method string
	Pages  int
}

// Extract returns non-empty trimmed text for pdf or a categorized error.
func (e *Extractor) Extract(ctx context.Context, pdf []byte) (string, error) {
	res, err := e.ExtractResult(ctx, pdf)
	if err != nil {
		return "", err
	}
	return res.Text, nil
}

// ExtractResult is Extract with the producing path reported.
func (e *Extractor) ExtractResult(ctx context.Context, pdf []byte) (Result, error) {
	if len(pdf) == 0 {
		return Result{}, apperr.Validation("empty_file", "uploaded file is empty")
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	if e.TextLayer != nil {
		text, err := e.TextLayer.Text(ctx, pdf)
		text = strings.TrimSpace(text)
		switch {
		case err != nil:
			telemetry.Warn("extract.text_layer_failed", map[string]any{"error": err.Error()})
		case text != "":
			metrics.IncExtraction(MethodTextLayer)
			return Result{Text: text, Method: MethodTextLayer}, nil
		}
	}

	text, pages, err := e.ocr(ctx, pdf)
	if err != nil {
		return Result{}, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return Result{}, ErrNoText
	}
	metrics.IncExtraction(MethodOCR)
	return Result{Text: text, Method: MethodOCR, Pages: pages}, nil
}

func (e *Extractor) ocr(ctx context.Context, pdf []byte) (string, int, error) {
	if e.Rasterizer == nil || e.Recognizer == nil {
		return "", 0, ErrNoText
	}
	timeout := e.OCRTimeout
	if timeout <= 0 {
		timeout = defaultOCRTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	src, err := os.CreateTemp(e.TempDir, "resume-*.pdf")
	if err != nil {
		return "", 0, apperr.Internal("failed to stage PDF for OCR", err)
	}
	defer os.Remove(src.Name())
	if _, err := src.Write(pdf); err != nil {
		_ = src.Close()
		return "", 0, apperr.Internal("failed to stage PDF for OCR", err)
	}
	if err := src.Close(); err != nil {
		return "", 0, apperr.Internal("failed to stage PDF for OCR", err)
	}

	pagesDir, err := os.MkdirTemp(e.TempDir, "resume-pages-")
	if err != nil {
		return "", 0, apperr.Internal("failed to create page directory", err)
	}
	defer os.RemoveAll(pagesDir)

	images, err := e.Rasterizer.Rasterize(ctx, src.Name(), pagesDir)
	if err != nil {
		return "", 0, deadline(ctx, err)
	}

	var texts []string
	for i, img := range images {
		text, err := e.Recognizer.Recognize(ctx, img)
		if err != nil {
			if errors.Is(err, ErrOCREngineMissing) || ctx.Err() != nil {
				return "", 0, deadline(ctx, err)
			}
			telemetry.Warn("extract.ocr_page_failed", map[string]any{"page": i + 1, "error": err.Error()})
			continue
		}
		if text = strings.TrimSpace(text); text != "" {
			texts = append(texts, text)
		}
	}
	return strings.TrimSpace(strings.Join(texts, "\n")), len(images), nil
}

// deadline reports OCR timeouts as their own category.
func deadline(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return apperr.Timeout("ocr_timeout", "OCR did not finish in time", err)
	}
	if _, ok := apperr.As(err); ok {
		return err
	}
	return apperr.Extraction("ocr_failed", fmt.Sprintf("OCR failed: %v", err), "").WithErr(err)
}
