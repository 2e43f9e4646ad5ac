package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabcast/tabcast/pkg/schema"
)

var testSchema = []byte(`{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"properties": {
		"patterns": {
			"type": "object",
			"additionalProperties": {
				"type": "object",
				"properties": {
					"pi_code": {"type": "string"}
				},
				"additionalProperties": false
			}
		}
	},
	"additionalProperties": false
}`)

func TestValidate(t *testing.T) {
	t.Parallel()

	v, err := schema.NewValidator("/test.json", testSchema)
	require.NoError(t, err)

	t.Run("valid document", func(t *testing.T) {
		t.Parallel()

		err := v.Validate(map[string]any{
			"patterns": map[string]any{
				"text_pattern": map[string]any{"pi_code": "X"},
			},
		})
		require.NoError(t, err)
	})

	t.Run("invalid document reports deepest path", func(t *testing.T) {
		t.Parallel()

		err := v.Validate(map[string]any{
			"patterns": map[string]any{
				"text_pattern": map[string]any{"bogus": true},
			},
		})
		require.Error(t, err)

		validationErr := &schema.ValidationError{}
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "$.patterns.text_pattern", validationErr.Path)
		assert.Contains(t, validationErr.Error(), "$.patterns.text_pattern")
	})

	t.Run("top-level violation", func(t *testing.T) {
		t.Parallel()

		err := v.Validate(map[string]any{"bogus": 1})
		require.Error(t, err)
	})
}

func TestNewValidator(t *testing.T) {
	t.Parallel()

	t.Run("malformed schema", func(t *testing.T) {
		t.Parallel()

		_, err := schema.NewValidator("/bad.json", []byte("{"))
		require.Error(t, err)
	})

	t.Run("must panics on error", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() {
			schema.MustNewValidator("/bad.json", []byte("{"))
		})
	})
}
