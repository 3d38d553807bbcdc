package source

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/dgallion1/pagegen/internal/docmodel"
	pdflib "github.com/ledongthuc/pdf"
)

// PDFSource handles PDF files. It tries the Go library first, then falls
// back to pdftotext if available. PDFs carry no usable heading structure,
// so the output is plain prose for the heuristic classifier.
type PDFSource struct {
	FallbackPdftotext bool
}

func (s *PDFSource) Extract(r io.Reader, filename string) (docmodel.RawText, error) {
	// ledongthuc/pdf requires a ReadSeeker+size, so we write to a temp file.
	tmp, err := os.CreateTemp("", "pagegen-pdf-*.pdf")
	if err != nil {
		return docmodel.RawText{}, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return docmodel.RawText{}, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	var warnings []string
	text, pageErrs, err := extractPDFText(tmpPath)
	if err != nil && s.FallbackPdftotext {
		warnings = append(warnings, fmt.Sprintf("go pdf reader failed (%s), using pdftotext", err))
		text, err = extractPdftotext(tmpPath)
	}
	if err != nil {
		return docmodel.RawText{}, &FormatError{Format: "pdf", Err: err}
	}
	if pageErrs > 0 {
		warnings = append(warnings, fmt.Sprintf("%d pages could not be read", pageErrs))
	}

	// Form feeds separate pages; the extractor treats them as blank space.
	text = strings.ReplaceAll(text, "\f", "\n\n")

	return docmodel.RawText{Text: text, Warnings: warnings}, nil
}

func extractPDFText(path string) (string, int, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return "", 0, err
	}
	defer f.Close()

	var buf strings.Builder
	pageErrs := 0
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pageErrs++
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			pageErrs++
			continue
		}
		if i > 1 {
			buf.WriteString("\f")
		}
		buf.WriteString(text)
	}
	return buf.String(), pageErrs, nil
}

func extractPdftotext(path string) (string, error) {
	cmd := exec.Command("pdftotext", "-layout", path, "-")
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("pdftotext: %w", err)
	}
	return string(out), nil
}
