package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Pdftoppm rasterizes pages with poppler's pdftoppm as greyscale PNGs.
type Pdftoppm struct {
	Path string
	DPI  int
}

func (p Pdftoppm) Rasterize(ctx context.Context, pdfPath, outDir string) ([]string, error) {
	bin, err := resolveBinary(p.Path, "pdftoppm")
	if err != nil {
		return nil, ErrRendererMissing.WithErr(err)
	}
	dpi := p.DPI
	if dpi <= 0 {
		dpi = defaultDPI
	}

	prefix := filepath.Join(outDir, "page")
	cmd := exec.CommandContext(ctx, bin, "-r", strconv.Itoa(dpi), "-gray", "-png", pdfPath, prefix)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return nil, ErrRendererMissing.WithErr(err)
		}
		return nil, fmt.Errorf("pdftoppm: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	matches, err := filepath.Glob(prefix + "-*.png")
	if err != nil {
		return nil, fmt.Errorf("list rendered pages: %w", err)
	}
	sortByPageNumber(matches)
	return matches, nil
}

// sortByPageNumber orders pdftoppm output ("page-1.png", "page-01.png", ...)
// numerically; zero padding width depends on the page count.
func sortByPageNumber(paths []string) {
	num := func(p string) int {
		base := strings.TrimSuffix(filepath.Base(p), ".png")
		idx := strings.LastIndex(base, "-")
		n, err := strconv.Atoi(base[idx+1:])
		if err != nil {
			return 0
		}
		return n
	}
	sort.SliceStable(paths, func(i, j int) bool { return num(paths[i]) < num(paths[j]) })
}

// Tesseract runs the tesseract CLI on one page image.
type Tesseract struct {
	Path string
	Lang string
}

func (t Tesseract) Recognize(ctx context.Context, imagePath string) (string, error) {
	bin, err := resolveBinary(t.Path, "tesseract")
	if err != nil {
		return "", ErrOCREngineMissing.WithErr(err)
	}
	lang := t.Lang
	if lang == "" {
		lang = "eng"
	}

	cmd := exec.CommandContext(ctx, bin, imagePath, "stdout",
		"-l", lang,
		"--oem", "3",
		"--psm", "6",
		"-c", "preserve_interword_spaces=1",
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", ErrOCREngineMissing.WithErr(err)
		}
		return "", fmt.Errorf("tesseract %s: %w: %s", filepath.Base(imagePath), err, strings.TrimSpace(stderr.String()))
	}
	return string(out), nil
}

// resolveBinary prefers an explicitly configured path over a PATH lookup.
func resolveBinary(configured, name string) (string, error) {
	if configured = strings.TrimSpace(configured); configured != "" {
		return exec.LookPath(configured)
	}
	return exec.LookPath(name)
}
