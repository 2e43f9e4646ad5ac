package transform

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tabcast/tabcast/pkg/rules"
	"github.com/tabcast/tabcast/pkg/table"
)

// ErrTransform indicates that the transform stage could not run, because its
// table or rule set input is unavailable. The transform never emits a
// partial document.
var ErrTransform = errors.New("transform table")

// Transform-time fallbacks, applied per field when the selected
// [rules.PatternConfig] leaves it empty. Note that the fallback code suffix
// differs from the one in the default rules file.
const (
	DefaultPICode = "DEFAULT_CODE"

	defaultSectionPrefix = "SECTION"
	defaultLabelPrefix   = "LABEL_"
	defaultCodeSuffix    = "_Code"
)

// Document is the output of the transform: a pi_code and one section per
// source table row.
type Document struct {
	PICode   string    `json:"pi_code"`
	Sections []Section `json:"sections"`
}

// Section holds the row items for a single source row.
type Section struct {
	Title string    `json:"title"`
	Rows  []RowItem `json:"rows"`
}

// RowItem is a single labeled cell in the output.
type RowItem struct {
	Label         string        `json:"label"`
	Kind          Kind          `json:"kind"`
	Code          string        `json:"code"`
	HTMLOverrides HTMLOverrides `json:"html_overrides"`
}

// HTMLOverrides carries the rendered placeholder value for a row item.
type HTMLOverrides struct {
	Value string `json:"value"`
}

// Transformer converts one table with one rule set. It holds no state
// between calls; [Transformer.Build] is pure over its inputs.
type Transformer struct {
	table *table.Table
	rules *rules.RuleSet
}

// New creates a [Transformer] over the given table and rule set. Either may
// be nil; Build reports the error.
func New(t *table.Table, rs *rules.RuleSet) *Transformer {
	return &Transformer{table: t, rules: rs}
}

// Build selects the rule pattern for the table and produces the output
// document. It wraps [ErrTransform] when the table or rule set is missing.
func (tr *Transformer) Build() (*Document, error) {
	if tr.table == nil {
		return nil, fmt.Errorf("%w: no table data available", ErrTransform)
	}
	if tr.rules == nil {
		return nil, fmt.Errorf("%w: no rules available", ErrTransform)
	}

	pattern := tr.SelectPattern()
	cfg := tr.rules.Get(pattern)

	slog.Debug("identified pattern",
		slog.String("pattern", pattern),
	)

	piCode := cfg.PICode
	if piCode == "" {
		piCode = DefaultPICode
	}

	doc := &Document{
		PICode:   piCode,
		Sections: tr.buildSections(cfg),
	}

	slog.Debug("built document",
		slog.Int("sections", len(doc.Sections)),
	)

	return doc, nil
}

// SelectPattern decides which rule pattern applies to the table's columns.
//
// Patterns carrying a CEL match expression are consulted first, in sorted
// key order. Otherwise the built-in selector inspects the lowercase-joined
// column names: "text" or "name" selects [rules.TextPattern], then
// "section" selects [rules.SectionPattern], then [rules.TextPattern] is the
// default. The text/name check deliberately precedes the section check.
func (tr *Transformer) SelectPattern() string {
	if key, ok := tr.rules.MatchColumns(tr.table.Columns); ok {
		return key
	}

	header := rules.JoinedHeader(tr.table.Columns)

	switch {
	case strings.Contains(header, "text") || strings.Contains(header, "name"):
		return rules.TextPattern
	case strings.Contains(header, "section"):
		return rules.SectionPattern
	default:
		return rules.TextPattern
	}
}

// buildSections emits one section per table row, in row order, titled with a
// 1-based index. Empty cells produce no row item.
func (tr *Transformer) buildSections(cfg *rules.PatternConfig) []Section {
	sectionPrefix := cfg.SectionPrefix
	if sectionPrefix == "" {
		sectionPrefix = defaultSectionPrefix
	}

	labelPrefix := cfg.LabelPrefix
	if labelPrefix == "" {
		labelPrefix = defaultLabelPrefix
	}

	codeSuffix := cfg.CodeSuffix
	if codeSuffix == "" {
		codeSuffix = defaultCodeSuffix
	}

	sections := make([]Section, 0, tr.table.RowCount())

	for i, row := range tr.table.Rows {
		section := Section{
			Title: fmt.Sprintf("%s %d", sectionPrefix, i+1),
			Rows:  make([]RowItem, 0, tr.table.ColumnCount()),
		}

		for _, col := range tr.table.Columns {
			cell := row[col]
			if cell == nil {
				continue
			}

			section.Rows = append(section.Rows, RowItem{
				Label: labelPrefix + strings.ToUpper(col),
				Kind:  mappedKind(cfg, InferKind(cell)),
				Code:  col + codeSuffix,
				HTMLOverrides: HTMLOverrides{
					Value: placeholderValue(cell),
				},
			})
		}

		sections = append(sections, section)
	}

	return sections
}

// placeholderValue renders a cell as its bracketed placeholder form:
// uppercased, spaces replaced with underscores.
func placeholderValue(cell table.Cell) string {
	v := strings.ToUpper(FormatCell(cell))

	return fmt.Sprintf("[GENAI_REVENGG_%s]", strings.ReplaceAll(v, " ", "_"))
}
