// Package writer serializes output documents to pretty-printed JSON.
package writer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/tabcast/tabcast/pkg/transform"
)

// ErrWrite indicates that the output document could not be serialized or
// written to its destination.
var ErrWrite = errors.New("write document")

// Render serializes the document as pretty-printed JSON: 4-space indent,
// non-ASCII characters preserved rather than escaped, trailing newline.
func Render(doc *transform.Document) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: no document to write", ErrWrite)
	}

	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "    ")
	enc.SetEscapeHTML(false)

	err := enc.Encode(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: encode json: %w", ErrWrite, err)
	}

	return buf.Bytes(), nil
}

// Write renders the document and writes it to path, overwriting any existing
// file. A nil document is a reported failure, not a panic.
func Write(doc *transform.Document, path string) error {
	b, err := Render(doc)
	if err != nil {
		return err
	}

	err = os.WriteFile(path, b, 0o644) //nolint:gosec // G306: converted output is not sensitive.
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}

	slog.Info("wrote document",
		slog.String("path", path),
		slog.Int("bytes", len(b)),
	)

	return nil
}
