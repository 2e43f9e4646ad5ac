package rules

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/google/cel-go/cel"

	"github.com/tabcast/tabcast/pkg/expr"
)

// Well-known pattern keys. The selector may name SectionPattern even when a
// custom rules file never defines it; lookups then yield a zero
// [PatternConfig] and the transform runs entirely on its defaults.
const (
	TextPattern    = "text_pattern"
	SectionPattern = "section_pattern"
)

// PatternConfig is a named rule profile controlling the prefixes and codes
// used during transformation.
type PatternConfig struct {
	// KindMapping maps canonical lowercase kind names (text, number,
	// boolean) to the emitted kind tag. Missing entries fall back to the
	// canonical uppercase names.
	KindMapping map[string]string `json:"kind_mapping,omitempty" jsonschema:"title=Kind Mapping"`
	// PICode is the document-level code emitted as pi_code.
	PICode string `json:"pi_code,omitempty" jsonschema:"title=PI Code"`
	// SectionPrefix prefixes each section title, e.g. "SECTION 1".
	SectionPrefix string `json:"section_prefix,omitempty" jsonschema:"title=Section Prefix"`
	// LabelPrefix prefixes each row label, e.g. "LABEL_NAME".
	LabelPrefix string `json:"label_prefix,omitempty" jsonschema:"title=Label Prefix"`
	// CodeSuffix suffixes each row code, e.g. "Name_TextPara".
	CodeSuffix string `json:"code_suffix,omitempty" jsonschema:"title=Code Suffix"`
	// Match is an optional CEL expression over the `columns` and `header`
	// variables. When it evaluates to true for a table's columns, this
	// pattern is selected ahead of the built-in substring selector.
	Match string `json:"match,omitempty" jsonschema:"title=Match Expression"`

	matchProgram cel.Program
}

// CompileMatch compiles the pattern's match expression, if any.
func (p *PatternConfig) CompileMatch() error {
	if p.Match == "" || p.matchProgram != nil {
		return nil
	}

	env, err := expr.NewEnvironment()
	if err != nil {
		return fmt.Errorf("create CEL environment: %w", err)
	}

	program, err := env.Compile(p.Match)
	if err != nil {
		return fmt.Errorf("compile match expression: %w", err)
	}

	p.matchProgram = program

	return nil
}

// MatchColumns evaluates the pattern's match expression against a table's
// column names. Patterns without a match expression never match here; they
// are only reachable through the built-in selector. Evaluation failures are
// treated as a non-match.
func (p *PatternConfig) MatchColumns(columns []string) bool {
	if p.matchProgram == nil {
		return false
	}

	result, _, err := p.matchProgram.Eval(map[string]any{
		"columns": columns,
		"header":  JoinedHeader(columns),
	})
	if err != nil {
		slog.Debug("match expression evaluation failed",
			slog.String("match", p.Match),
			slog.Any("error", err),
		)

		return false
	}

	boolVal, ok := result.Value().(bool)

	return ok && boolVal
}

// RuleSet is the top-level rules document: a mapping of pattern keys to
// pattern configurations. Read-only after loading.
type RuleSet struct {
	// Patterns maps pattern keys to their configurations.
	Patterns map[string]*PatternConfig `json:"patterns,omitempty" jsonschema:"title=Patterns"`
}

// Default returns the built-in RuleSet used when no rules file exists. It
// contains exactly one pattern key, [TextPattern].
func Default() *RuleSet {
	return &RuleSet{
		Patterns: map[string]*PatternConfig{
			TextPattern: {
				PICode:        "MES_REVENGG_TESTRUN",
				SectionPrefix: "SECTION",
				LabelPrefix:   "LABEL_",
				CodeSuffix:    "_TextPara",
				KindMapping: map[string]string{
					"text":    "TEXT",
					"number":  "NUMBER",
					"boolean": "BOOLEAN",
				},
			},
		},
	}
}

// Get returns the configuration for the given pattern key. Unknown keys (and
// nil receivers) yield a zero PatternConfig; lookup never fails.
func (rs *RuleSet) Get(key string) *PatternConfig {
	if rs == nil {
		return &PatternConfig{}
	}

	if p, ok := rs.Patterns[key]; ok && p != nil {
		return p
	}

	return &PatternConfig{}
}

// Compile compiles every pattern match expression in the set. It is called
// once at load time so that invalid expressions surface as load errors
// rather than silent non-matches.
func (rs *RuleSet) Compile() error {
	for _, key := range rs.Keys() {
		err := rs.Patterns[key].CompileMatch()
		if err != nil {
			return fmt.Errorf("pattern %q: %w", key, err)
		}
	}

	return nil
}

// MatchColumns returns the key of the first pattern whose match expression
// matches the given columns, in sorted key order for determinism. The second
// return is false when no expression matches; callers then fall back to the
// built-in substring selector.
func (rs *RuleSet) MatchColumns(columns []string) (string, bool) {
	if rs == nil {
		return "", false
	}

	for _, key := range rs.Keys() {
		if rs.Patterns[key].MatchColumns(columns) {
			return key, true
		}
	}

	return "", false
}

// Keys returns the pattern keys in sorted order.
func (rs *RuleSet) Keys() []string {
	keys := make([]string, 0, len(rs.Patterns))
	for key := range rs.Patterns {
		keys = append(keys, key)
	}

	slices.Sort(keys)

	return keys
}

// JoinedHeader lowercases and space-joins column names, the form inspected
// by the built-in pattern selector and exposed to CEL as `header`.
func JoinedHeader(columns []string) string {
	lower := make([]string, len(columns))
	for i, col := range columns {
		lower[i] = strings.ToLower(col)
	}

	return strings.Join(lower, " ")
}
