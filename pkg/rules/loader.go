package rules

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	_ "embed"

	"github.com/tabcast/tabcast/pkg/schema"
)

//go:generate go run ../../internal/schemagen/main.go -o rules.v1beta1.json

var (
	//go:embed rules.v1beta1.json
	schemaJSON []byte

	// DefaultValidator validates rules documents against the embedded JSON
	// schema.
	DefaultValidator = schema.MustNewValidator("/rules.v1beta1.json", schemaJSON)
)

// ErrRuleLoad indicates that a rules file exists but could not be parsed or
// validated. Absence of the file is NOT an error.
var ErrRuleLoad = errors.New("load rules")

// SchemaJSON returns the embedded JSON schema for rules documents.
func SchemaJSON() []byte {
	return schemaJSON
}

// Validator validates rules data against a schema.
type Validator interface {
	Validate(data any) error
}

// Loader parses and validates a rules document held in memory.
type Loader struct {
	validator Validator
	data      []byte
}

// LoaderOpt configures a [Loader].
type LoaderOpt func(*Loader)

// WithValidator sets a custom validator.
func WithValidator(v Validator) LoaderOpt {
	return func(l *Loader) {
		l.validator = v
	}
}

// NewLoaderFromBytes creates a [Loader] from byte data.
func NewLoaderFromBytes(data []byte, opts ...LoaderOpt) *Loader {
	l := &Loader{
		validator: DefaultValidator,
		data:      data,
	}
	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Validate validates the rules data against the schema without loading it
// into a [RuleSet].
func (l *Loader) Validate() error {
	var anyRules any

	dec := yaml.NewDecoder(bytes.NewReader(l.data))

	err := dec.Decode(&anyRules)
	if err != nil {
		return fmt.Errorf("parse rules: %w", err)
	}

	if l.validator != nil {
		err = l.validator.Validate(anyRules)
		if err != nil {
			return fmt.Errorf("validate rules: %w", err)
		}
	}

	return nil
}

// Load parses the rules data into a [RuleSet] and compiles any pattern
// match expressions.
func (l *Loader) Load() (*RuleSet, error) {
	rs := &RuleSet{}

	dec := yaml.NewDecoder(bytes.NewReader(l.data))

	err := dec.Decode(rs)
	if err != nil {
		return nil, fmt.Errorf("parse rules: %w", err)
	}

	err = rs.Compile()
	if err != nil {
		return nil, err
	}

	return rs, nil
}

// LoadFile reads, validates, and parses the rules file at path. An absent
// file yields the built-in [Default] RuleSet; any other failure wraps
// [ErrRuleLoad].
//
// Rules files may be JSON or YAML; both decode through the same path.
func LoadFile(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is caller-provided by design.
	if err != nil {
		if os.IsNotExist(err) {
			slog.Info("rules file not found, using default rules",
				slog.String("path", path),
			)

			return Default(), nil
		}

		return nil, fmt.Errorf("%w: %w", ErrRuleLoad, err)
	}

	l := NewLoaderFromBytes(data)

	err = l.Validate()
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrRuleLoad, path, err)
	}

	rs, err := l.Load()
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrRuleLoad, path, err)
	}

	slog.Debug("loaded rules",
		slog.String("path", path),
		slog.Int("patterns", len(rs.Patterns)),
	)

	return rs, nil
}

// WriteDefault writes the built-in default RuleSet as pretty-printed JSON to
// path, creating parent directories as needed. An existing regular file is
// left untouched unless force is set, in which case it is backed up first.
func WriteDefault(path string, force bool) error {
	pathInfo, err := os.Stat(path)
	if pathInfo != nil {
		switch {
		case err == nil && pathInfo.Mode().IsRegular():
			if !force {
				slog.Debug("rules file already exists, skipping write",
					slog.String("path", path),
				)

				return nil
			}

			backupPath := path + ".old"

			slog.Info("backing up existing rules file",
				slog.String("path", backupPath),
			)

			err = os.Rename(path, backupPath)
			if err != nil {
				return fmt.Errorf("rename existing rules file to backup: %w", err)
			}

		case pathInfo.IsDir():
			return fmt.Errorf("%s: path is a directory", path)

		default:
			return fmt.Errorf("%s: unknown file state", path)
		}
	}

	err = os.MkdirAll(filepath.Dir(path), 0o700)
	if err != nil {
		return fmt.Errorf("create directories: %w", err)
	}

	b, err := json.MarshalIndent(Default(), "", "    ")
	if err != nil {
		return fmt.Errorf("marshal rules: %w", err)
	}

	slog.Info("write default rules",
		slog.String("path", path),
	)

	err = os.WriteFile(path, append(b, '\n'), 0o600)
	if err != nil {
		return fmt.Errorf("write rules file: %w", err)
	}

	return nil
}
