// Package text extracts content from plain-text files, trying an
// ordered list of encodings until one produces a non-empty decode.
package text

import (
	"context"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/docvault-labs/docvault/internal/core/domain"
	"github.com/docvault-labs/docvault/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles plain-text media types.
type Extractor struct{}

// New creates a plain-text extractor.
func New() *Extractor {
	return &Extractor{}
}

// MediaTypes returns the media types this strategy handles.
func (e *Extractor) MediaTypes() []string {
	return []string{
		"text/plain",
		"text/markdown",
		"text/csv",
	}
}

// Extract decodes the bytes with the first encoding that yields
// non-empty text. Order: UTF-8, UTF-16, Latin-1, Windows-1252.
func (e *Extractor) Extract(_ context.Context, data []byte, _, _ string) domain.ExtractionOutcome {
	decoders := []struct {
		name   string
		decode func([]byte) (string, bool)
	}{
		{"utf-8", decodeUTF8},
		{"utf-16", decodeUTF16},
		{"latin-1", decodeLatin1},
		{"windows-1252", decodeWindows1252},
	}

	for _, d := range decoders {
		text, ok := d.decode(data)
		if !ok {
			continue
		}
		if text = strings.TrimSpace(text); text != "" {
			return domain.ExtractionOutcome{
				Status:   domain.ExtractionOK,
				Text:     text,
				Strategy: "text/" + d.name,
			}
		}
	}

	return domain.ExtractionOutcome{
		Status:   domain.ExtractionFailed,
		Strategy: "text",
	}
}

func decodeUTF8(data []byte) (string, bool) {
	// Strip a UTF-8 BOM if present.
	if len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF {
		data = data[3:]
	}
	if !utf8.Valid(data) {
		return "", false
	}
	return string(data), true
}

// decodeUTF16 handles both byte orders. Without a BOM, little-endian
// is assumed only when the byte count is even and NUL bytes alternate
// the way UTF-16 ASCII text does.
func decodeUTF16(data []byte) (string, bool) {
	if len(data) < 2 || len(data)%2 != 0 {
		return "", false
	}

	bigEndian := false
	switch {
	case data[0] == 0xFE && data[1] == 0xFF:
		bigEndian = true
		data = data[2:]
	case data[0] == 0xFF && data[1] == 0xFE:
		data = data[2:]
	case data[1] == 0x00:
		// Looks like little-endian ASCII range without a BOM.
	case data[0] == 0x00:
		bigEndian = true
	default:
		return "", false
	}

	units := make([]uint16, 0, len(data)/2)
	for i := 0; i+1 < len(data); i += 2 {
		if bigEndian {
			units = append(units, uint16(data[i])<<8|uint16(data[i+1]))
		} else {
			units = append(units, uint16(data[i+1])<<8|uint16(data[i]))
		}
	}
	return string(utf16.Decode(units)), true
}

// decodeLatin1 maps every byte directly to the code point of the same
// value. It cannot fail, so the encoding ladder treats an empty result
// as the signal to move on.
func decodeLatin1(data []byte) (string, bool) {
	runes := make([]rune, len(data))
	for i, b := range data {
		runes[i] = rune(b)
	}
	return string(runes), true
}

// windows1252Overrides maps the 0x80-0x9F range where CP-1252 differs
// from Latin-1.
var windows1252Overrides = map[byte]rune{
	0x80: '€', 0x82: '‚', 0x83: 'ƒ', 0x84: '„', 0x85: '…',
	0x86: '†', 0x87: '‡', 0x88: 'ˆ', 0x89: '‰', 0x8A: 'Š',
	0x8B: '‹', 0x8C: 'Œ', 0x8E: 'Ž', 0x91: '‘', 0x92: '’',
	0x93: '“', 0x94: '”', 0x95: '•', 0x96: '–', 0x97: '—',
	0x98: '˜', 0x99: '™', 0x9A: 'š', 0x9B: '›', 0x9C: 'œ',
	0x9E: 'ž', 0x9F: 'Ÿ',
}

func decodeWindows1252(data []byte) (string, bool) {
	runes := make([]rune, len(data))
	for i, b := range data {
		if r, ok := windows1252Overrides[b]; ok {
			runes[i] = r
		} else {
			runes[i] = rune(b)
		}
	}
	return string(runes), true
}
