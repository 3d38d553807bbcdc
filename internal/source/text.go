package source

import (
	"bufio"
	"io"
	"strings"

	"github.com/dgallion1/pagegen/internal/docmodel"
)

// TextSource handles plain text files. It emits no markers: heading
// detection for plain text is entirely heuristic downstream.
type TextSource struct{}

func (s *TextSource) Extract(r io.Reader, filename string) (docmodel.RawText, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var sb strings.Builder
	for scanner.Scan() {
		sb.WriteString(scanner.Text())
		sb.WriteString("\n")
	}
	if err := scanner.Err(); err != nil {
		return docmodel.RawText{}, err
	}

	return docmodel.RawText{Text: sb.String()}, nil
}
