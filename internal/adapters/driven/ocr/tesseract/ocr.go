// Package tesseract provides an OCR service adapter that shells out to
// the tesseract binary.
//
// Input images are preprocessed (grayscale, contrast boost) before
// recognition, and several page segmentation modes are tried per
// image. Tesseract's accuracy varies wildly with segmentation mode on
// receipts and screenshots, so the longest result across modes wins.
package tesseract

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os/exec"
	"strings"

	_ "image/gif"  // register decoder
	_ "image/jpeg" // register decoder

	"github.com/docvault-labs/docvault/internal/core/domain"
	"github.com/docvault-labs/docvault/internal/core/ports/driven"
	"github.com/docvault-labs/docvault/internal/logger"
)

// Ensure Service implements the interface.
var _ driven.OCRService = (*Service)(nil)

// DefaultBinary is the tesseract executable name.
const DefaultBinary = "tesseract"

// contrastFactor is the contrast boost applied during preprocessing.
const contrastFactor = 2.0

// segmentationModes are the tesseract --psm values tried per image:
// full page, column, block, line, and word.
var segmentationModes = []string{"3", "4", "6", "7", "8"}

// Service runs OCR via the tesseract binary.
type Service struct {
	binary string
}

// New creates a tesseract OCR service. An empty binary uses the
// default executable name resolved from PATH.
func New(binary string) (*Service, error) {
	if binary == "" {
		binary = DefaultBinary
	}

	if _, err := exec.LookPath(binary); err != nil {
		return nil, fmt.Errorf("%w: %q not found in PATH", domain.ErrOCRUnavailable, binary)
	}

	return &Service{binary: binary}, nil
}

// Recognize runs tesseract over the image and returns the recognized
// text. Each segmentation mode is tried and the longest trimmed
// result kept; an error is returned only when every mode fails.
func (s *Service) Recognize(ctx context.Context, imageData []byte) (string, error) {
	input := preprocess(imageData)

	var best string
	var lastErr error
	for _, mode := range segmentationModes {
		text, err := s.run(ctx, input, mode)
		if err != nil {
			lastErr = err
			continue
		}
		if len(text) > len(best) {
			best = text
		}
	}

	if best == "" && lastErr != nil {
		return "", fmt.Errorf("tesseract: %w", lastErr)
	}
	return best, nil
}

// run executes one tesseract invocation reading the image from stdin.
func (s *Service) run(ctx context.Context, input []byte, psm string) (string, error) {
	cmd := exec.CommandContext(ctx, s.binary, "stdin", "stdout", "--psm", psm)
	cmd.Stdin = bytes.NewReader(input)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		logger.Debug("tesseract --psm %s failed: %v (%s)", psm, err,
			strings.TrimSpace(stderr.String()))
		return "", err
	}

	return strings.TrimSpace(stdout.String()), nil
}

// preprocess converts the image to grayscale and boosts contrast,
// re-encoding as PNG. Images that fail to decode pass through
// unchanged and let tesseract take its chances.
func preprocess(data []byte) []byte {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return data
	}

	bounds := src.Bounds()
	gray := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			g := color.GrayModel.Convert(src.At(x, y)).(color.Gray)
			gray.SetGray(x, y, color.Gray{Y: boostContrast(g.Y)})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, gray); err != nil {
		return data
	}
	return buf.Bytes()
}

// boostContrast scales a gray value away from the midpoint.
func boostContrast(v uint8) uint8 {
	scaled := (float64(v)-128)*contrastFactor + 128
	if scaled < 0 {
		return 0
	}
	if scaled > 255 {
		return 255
	}
	return uint8(scaled)
}
