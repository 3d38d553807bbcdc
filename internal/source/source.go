// Package source converts raw document bytes into marker-annotated text.
//
// Adapters emit a line-oriented stream the structure extractor consumes:
//
//	#HEADING1#Title        heading at the given level (levels >3 clamp to 3)
//	- item                 list item
//	|a|b|c|                table row (first row of a run is the header row)
//	anything else          prose; a blank line separates paragraphs
//
// Formats without structural signals (plain text, PDF) emit no markers and
// leave heading detection to the extractor's heuristics.
package source

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/pagegen/internal/docmodel"
)

// Source extracts marker-annotated text from one document format.
type Source interface {
	Extract(r io.Reader, filename string) (docmodel.RawText, error)
}

// FormatError is the caller-visible failure for bytes that cannot be
// recognized as the claimed container format.
type FormatError struct {
	Format string
	Err    error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("unreadable %s document: %s", e.Format, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
}

// ForFile returns the appropriate source for a filename.
func ForFile(filename string) (Source, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &TextSource{}, nil
	case ".md", ".markdown":
		return &MarkdownSource{}, nil
	case ".html", ".htm":
		return &HTMLSource{}, nil
	case ".pdf":
		return &PDFSource{}, nil
	case ".docx":
		return &DOCXSource{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// HeadingMarker formats a heading line at the given level.
func HeadingMarker(level int, text string) string {
	if level < 1 {
		level = 1
	}
	if level > 3 {
		level = 3
	}
	return fmt.Sprintf("#HEADING%d#%s", level, strings.TrimSpace(text))
}

// TitleFromFilename derives a fallback document title from a filename.
func TitleFromFilename(filename string) string {
	base := filepath.Base(filename)
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext)
}
