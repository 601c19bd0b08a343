// Package poppler provides a PDF service adapter that shells out to
// the poppler-utils binaries (pdftotext, pdftoppm).
package poppler

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/docvault-labs/docvault/internal/core/ports/driven"
	"github.com/docvault-labs/docvault/internal/logger"
)

// Ensure Service implements the interface.
var _ driven.PDFService = (*Service)(nil)

// Default binary names resolved from PATH.
const (
	DefaultPDFToText  = "pdftotext"
	DefaultPDFToImage = "pdftoppm"
)

// renderDPI is the resolution used when rasterizing pages for OCR.
// 150 DPI keeps page images small while staying readable for
// tesseract.
const renderDPI = "150"

// Config holds binary overrides for the poppler tools.
type Config struct {
	PDFToText  string
	PDFToImage string
}

// Service extracts text and renders pages via poppler-utils.
type Service struct {
	pdftotext string
	pdftoppm  string
}

// New creates a poppler PDF service. Missing binaries do not fail
// construction; each capability errors at call time instead, so a
// host with only pdftotext still gets text-layer extraction.
func New(cfg Config) *Service {
	if cfg.PDFToText == "" {
		cfg.PDFToText = DefaultPDFToText
	}
	if cfg.PDFToImage == "" {
		cfg.PDFToImage = DefaultPDFToImage
	}

	return &Service{
		pdftotext: cfg.PDFToText,
		pdftoppm:  cfg.PDFToImage,
	}
}

// ExtractText runs pdftotext over the document, reading from stdin and
// writing to stdout.
func (s *Service) ExtractText(ctx context.Context, pdf []byte) (string, error) {
	if _, err := exec.LookPath(s.pdftotext); err != nil {
		return "", fmt.Errorf("pdftotext: %q not found in PATH", s.pdftotext)
	}

	cmd := exec.CommandContext(ctx, s.pdftotext, "-", "-")
	cmd.Stdin = bytes.NewReader(pdf)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("pdftotext: %w (%s)", err, strings.TrimSpace(stderr.String()))
	}

	return stdout.String(), nil
}

// RenderPages rasterizes each page to a PNG via pdftoppm. The tool
// only writes numbered files, so the document round-trips through a
// temp directory.
func (s *Service) RenderPages(ctx context.Context, pdf []byte) ([][]byte, error) {
	if _, err := exec.LookPath(s.pdftoppm); err != nil {
		return nil, fmt.Errorf("pdftoppm: %q not found in PATH", s.pdftoppm)
	}

	dir, err := os.MkdirTemp("", "docvault-pdf-*")
	if err != nil {
		return nil, fmt.Errorf("creating temp directory: %w", err)
	}
	defer os.RemoveAll(dir)

	input := filepath.Join(dir, "input.pdf")
	if err := os.WriteFile(input, pdf, 0600); err != nil {
		return nil, fmt.Errorf("writing temp pdf: %w", err)
	}

	cmd := exec.CommandContext(ctx, s.pdftoppm,
		"-png", "-r", renderDPI, input, filepath.Join(dir, "page"))

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("pdftoppm: %w (%s)", err, strings.TrimSpace(stderr.String()))
	}

	names, err := filepath.Glob(filepath.Join(dir, "page-*.png"))
	if err != nil {
		return nil, fmt.Errorf("listing rendered pages: %w", err)
	}
	// pdftoppm zero-pads page numbers, so lexical order is page order.
	sort.Strings(names)

	pages := make([][]byte, 0, len(names))
	for _, name := range names {
		data, err := os.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("reading rendered page: %w", err)
		}
		pages = append(pages, data)
	}

	logger.Debug("Rendered %d PDF pages for OCR", len(pages))
	return pages, nil
}
