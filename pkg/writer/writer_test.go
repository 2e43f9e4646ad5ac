package writer_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabcast/tabcast/pkg/transform"
	"github.com/tabcast/tabcast/pkg/writer"
)

func testDocument() *transform.Document {
	return &transform.Document{
		PICode: "MES_REVENGG_TESTRUN",
		Sections: []transform.Section{
			{
				Title: "SECTION 1",
				Rows: []transform.RowItem{
					{
						Label: "LABEL_NAME",
						Kind:  transform.KindText,
						Code:  "Name_TextPara",
						HTMLOverrides: transform.HTMLOverrides{
							Value: "[GENAI_REVENGG_JOHN_DOE]",
						},
					},
				},
			},
		},
	}
}

func TestRender(t *testing.T) {
	t.Parallel()

	t.Run("round trips", func(t *testing.T) {
		t.Parallel()

		doc := testDocument()

		b, err := writer.Render(doc)
		require.NoError(t, err)

		got := &transform.Document{}
		require.NoError(t, json.Unmarshal(b, got))
		assert.Equal(t, doc, got)
	})

	t.Run("four space indent with trailing newline", func(t *testing.T) {
		t.Parallel()

		b, err := writer.Render(testDocument())
		require.NoError(t, err)

		s := string(b)
		assert.True(t, strings.HasSuffix(s, "\n"))
		assert.Contains(t, s, "\n    \"sections\": [")
		assert.Contains(t, s, "\n        {")
	})

	t.Run("html is not escaped", func(t *testing.T) {
		t.Parallel()

		doc := testDocument()
		doc.Sections[0].Rows[0].HTMLOverrides.Value = "<b>&</b>"

		b, err := writer.Render(doc)
		require.NoError(t, err)
		assert.Contains(t, string(b), "<b>&</b>")
	})

	t.Run("nil document", func(t *testing.T) {
		t.Parallel()

		_, err := writer.Render(nil)
		require.ErrorIs(t, err, writer.ErrWrite)
	})
}

func TestWrite(t *testing.T) {
	t.Parallel()

	t.Run("writes file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out.json")

		require.NoError(t, writer.Write(testDocument(), path))

		data, err := os.ReadFile(path)
		require.NoError(t, err)

		got := &transform.Document{}
		require.NoError(t, json.Unmarshal(data, got))
		assert.Equal(t, "MES_REVENGG_TESTRUN", got.PICode)
	})

	t.Run("overwrites existing file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out.json")
		require.NoError(t, os.WriteFile(path, []byte("stale"), 0o600))

		require.NoError(t, writer.Write(testDocument(), path))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.NotContains(t, string(data), "stale")
	})

	t.Run("unwritable path", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "missing", "out.json")

		err := writer.Write(testDocument(), path)
		require.ErrorIs(t, err, writer.ErrWrite)
	})
}
