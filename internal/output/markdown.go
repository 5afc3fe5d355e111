package output

import (
	"fmt"
	"io"
	"strings"
)

// MarkdownWriter prints the review text unchanged.
type MarkdownWriter struct{}

func (m *MarkdownWriter) Write(w io.Writer, result Result) error {
	text := result.Review
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	if _, err := io.WriteString(w, text); err != nil {
		return fmt.Errorf("writing markdown: %w", err)
	}
	return nil
}
