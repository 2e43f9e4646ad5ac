// Package converter wires the conversion pipeline together: load a
// spreadsheet, load rules, transform, write JSON.
//
// Each stage's result is memoized; the underlying file is read at most once
// per [Converter] instance. Instances are intended for single-caller use and
// carry no synchronization.
package converter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/tabcast/tabcast/pkg/rules"
	"github.com/tabcast/tabcast/pkg/table"
	"github.com/tabcast/tabcast/pkg/transform"
	"github.com/tabcast/tabcast/pkg/writer"
)

// DefaultOutputName is the output filename used when no output path is
// supplied, relative to the current working directory.
const DefaultOutputName = "converted_output.json"

// Converter coordinates the pipeline stages over a fixed set of paths.
type Converter struct {
	tbl *table.Table
	rs  *rules.RuleSet
	doc *transform.Document

	spreadsheetPath string
	rulesPath       string
	outputPath      string
}

// Opt configures a [Converter].
type Opt func(*Converter)

// WithOutputPath sets the output destination. When unset, output goes to
// [DefaultOutputName] in the current working directory.
func WithOutputPath(path string) Opt {
	return func(c *Converter) {
		c.outputPath = path
	}
}

// New creates a [Converter] for the given spreadsheet and rules paths.
func New(spreadsheetPath, rulesPath string, opts ...Opt) *Converter {
	c := &Converter{
		spreadsheetPath: spreadsheetPath,
		rulesPath:       rulesPath,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Table returns the loaded spreadsheet table, reading the file on first use.
// Successful loads are memoized; failed loads are retried on the next call.
func (c *Converter) Table() (*table.Table, error) {
	if c.tbl != nil {
		return c.tbl, nil
	}

	t, err := table.Load(c.spreadsheetPath)
	if err != nil {
		return nil, err
	}

	c.tbl = t

	return t, nil
}

// Rules returns the rule set, reading the rules file on first use. An absent
// file yields the built-in defaults.
func (c *Converter) Rules() (*rules.RuleSet, error) {
	if c.rs != nil {
		return c.rs, nil
	}

	rs, err := rules.LoadFile(c.rulesPath)
	if err != nil {
		return nil, err
	}

	c.rs = rs

	return rs, nil
}

// Output returns the transformed document, running load and transform on
// first use.
func (c *Converter) Output() (*transform.Document, error) {
	if c.doc != nil {
		return c.doc, nil
	}

	tbl, err := c.Table()
	if err != nil {
		return nil, err
	}

	rs, err := c.Rules()
	if err != nil {
		return nil, err
	}

	doc, err := transform.New(tbl, rs).Build()
	if err != nil {
		return nil, err
	}

	c.doc = doc

	return doc, nil
}

// Preview runs load and transform only, without writing.
func (c *Converter) Preview() (*transform.Document, error) {
	return c.Output()
}

// Convert runs the complete pipeline and writes the output document.
func (c *Converter) Convert() error {
	doc, err := c.Output()
	if err != nil {
		return err
	}

	out, err := c.OutputPath()
	if err != nil {
		return err
	}

	return writer.Write(doc, out)
}

// OutputPath resolves the output destination, defaulting to
// [DefaultOutputName] in the current working directory.
func (c *Converter) OutputPath() (string, error) {
	if c.outputPath != "" {
		return c.outputPath, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get current working directory: %w", err)
	}

	return filepath.Join(wd, DefaultOutputName), nil
}

// Reset drops all memoized stage results so the next access re-reads the
// underlying files. Used by watch mode after a source file changes.
func (c *Converter) Reset() {
	c.tbl = nil
	c.rs = nil
	c.doc = nil

	slog.Debug("reset converter state",
		slog.String("spreadsheet", c.spreadsheetPath),
		slog.String("rules", c.rulesPath),
	)
}
