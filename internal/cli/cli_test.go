package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabcast/tabcast/internal/cli"
	"github.com/tabcast/tabcast/pkg/rules"
)

func executeCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := cli.NewRootCmd()

	var stdout, stderr bytes.Buffer

	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return stdout.String(), err
}

func writeSpreadsheet(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "input.csv")
	require.NoError(t, os.WriteFile(path, []byte("Name\njohn doe\n"), 0o600))

	return path
}

func TestConvertCommand(t *testing.T) {
	t.Parallel()

	t.Run("converts via root command", func(t *testing.T) {
		t.Parallel()

		spreadsheet := writeSpreadsheet(t)
		outPath := filepath.Join(t.TempDir(), "out.json")

		_, err := executeCmd(t, spreadsheet, "--output", outPath)
		require.NoError(t, err)

		data, err := os.ReadFile(outPath)
		require.NoError(t, err)
		assert.Contains(t, string(data), "MES_REVENGG_TESTRUN")
	})

	t.Run("converts via explicit subcommand", func(t *testing.T) {
		t.Parallel()

		spreadsheet := writeSpreadsheet(t)
		outPath := filepath.Join(t.TempDir(), "out.json")

		_, err := executeCmd(t, "convert", spreadsheet, "-o", outPath)
		require.NoError(t, err)

		_, err = os.Stat(outPath)
		require.NoError(t, err)
	})

	t.Run("missing spreadsheet path", func(t *testing.T) {
		t.Parallel()

		_, err := executeCmd(t)
		require.ErrorIs(t, err, cli.ErrMissingSpreadsheet)
	})

	t.Run("too many arguments", func(t *testing.T) {
		t.Parallel()

		_, err := executeCmd(t, "a.csv", "b.csv")
		require.Error(t, err)
	})

	t.Run("write-rules writes defaults and exits", func(t *testing.T) {
		t.Parallel()

		rulesPath := filepath.Join(t.TempDir(), "rules.json")

		_, err := executeCmd(t, "--write-rules", "--rules", rulesPath)
		require.NoError(t, err)

		rs, err := rules.LoadFile(rulesPath)
		require.NoError(t, err)
		assert.Equal(t, "MES_REVENGG_TESTRUN", rs.Get(rules.TextPattern).PICode)
	})
}

func TestPreviewCommand(t *testing.T) {
	t.Parallel()

	t.Run("prints document to stdout", func(t *testing.T) {
		t.Parallel()

		spreadsheet := writeSpreadsheet(t)

		stdout, err := executeCmd(t, "preview", spreadsheet)
		require.NoError(t, err)

		assert.Contains(t, stdout, `"pi_code": "MES_REVENGG_TESTRUN"`)
		assert.Contains(t, stdout, "[GENAI_REVENGG_JOHN_DOE]")
	})

	t.Run("requires a spreadsheet argument", func(t *testing.T) {
		t.Parallel()

		_, err := executeCmd(t, "preview")
		require.Error(t, err)
	})
}

func TestSchemaCommand(t *testing.T) {
	t.Parallel()

	stdout, err := executeCmd(t, "schema")
	require.NoError(t, err)

	assert.Contains(t, stdout, "$schema")
	assert.Contains(t, stdout, "PatternConfig")
}
