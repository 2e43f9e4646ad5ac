package expr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabcast/tabcast/pkg/expr"
)

func TestCompile(t *testing.T) {
	t.Parallel()

	env, err := expr.NewEnvironment()
	require.NoError(t, err)

	tcs := map[string]struct {
		input      map[string]any
		expression string
		want       bool
		wantErr    bool
	}{
		"columns membership": {
			expression: `columns.exists(c, c == "SKU")`,
			input: map[string]any{
				"columns": []string{"SKU", "Name"},
				"header":  "sku name",
			},
			want: true,
		},
		"header substring": {
			expression: `header.contains("section")`,
			input: map[string]any{
				"columns": []string{"Section"},
				"header":  "section",
			},
			want: true,
		},
		"no match": {
			expression: `columns.size() > 5`,
			input: map[string]any{
				"columns": []string{"A"},
				"header":  "a",
			},
			want: false,
		},
		"strings extension": {
			expression: `"Name".lowerAscii() == "name"`,
			input: map[string]any{
				"columns": []string{},
				"header":  "",
			},
			want: true,
		},
		"syntax error": {
			expression: `not valid (`,
			wantErr:    true,
		},
		"unknown variable": {
			expression: `bogus == 1`,
			wantErr:    true,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			program, err := env.Compile(tc.expression)
			if tc.wantErr {
				require.Error(t, err)

				return
			}

			require.NoError(t, err)

			result, _, err := program.Eval(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, result.Value())
		})
	}
}

func TestMustNewEnvironment(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() {
		expr.MustNewEnvironment()
	})
}
