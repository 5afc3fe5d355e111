package output

import (
	"fmt"
	"io"
	"os"
)

// Result is a finished review together with the run that produced it.
type Result struct {
	Pack   string `json:"pack,omitempty"`
	Mode   string `json:"mode"`
	Model  string `json:"model"`
	Review string `json:"review"`
}

// Writer writes a result in a specific format.
type Writer interface {
	Write(w io.Writer, result Result) error
}

// GetWriter returns a writer for the specified format.
func GetWriter(format string) (Writer, error) {
	switch format {
	case "", "markdown":
		return &MarkdownWriter{}, nil
	case "json":
		return &JSONWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// createFile opens the --out destination.
var createFile = func(name string) (io.WriteCloser, error) {
	return os.Create(name)
}

// WriteReview writes the result to outPath, or to stdout when outPath is empty.
func WriteReview(stdout io.Writer, result Result, format, outPath string) (err error) {
	writer, err := GetWriter(format)
	if err != nil {
		return err
	}
	if outPath == "" {
		return writer.Write(stdout, result)
	}

	f, err := createFile(outPath)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing output file: %w", cerr)
		}
	}()
	return writer.Write(f, result)
}
