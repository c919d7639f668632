// FILE: lixenwraith/objtemplate/io_test.go
package objtemplate

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEncode tests writing result trees in each format
func TestEncode(t *testing.T) {
	tree := map[string]any{"title": "t", "items": []any{"a", "b"}}

	t.Run("JSON", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, tree, FormatJSON, false))
		assert.JSONEq(t, `{"title":"t","items":["a","b"]}`, buf.String())

		buf.Reset()
		require.NoError(t, Encode(&buf, tree, FormatAuto, true))
		assert.Contains(t, buf.String(), "\n  \"items\"")
	})

	t.Run("YAML", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, tree, FormatYAML, false))
		assert.YAMLEq(t, "title: t\nitems: [a, b]\n", buf.String())
	})

	t.Run("TOML", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, tree, FormatTOML, false))
		assert.Contains(t, buf.String(), `title = "t"`)

		err := Encode(&buf, []any{1, 2}, FormatTOML, false)
		assert.Error(t, err)
	})

	t.Run("UnknownFormat", func(t *testing.T) {
		var buf bytes.Buffer
		assert.ErrorIs(t, Encode(&buf, tree, Format("xml"), false), ErrUnknownFormat)
	})
}

// TestSave tests atomic writes
func TestSave(t *testing.T) {
	tmpDir := t.TempDir()
	tree := map[string]any{"heading": "t", "count": 2}

	t.Run("ByExtension", func(t *testing.T) {
		path := filepath.Join(tmpDir, "nested", "out.yaml")
		require.NoError(t, Save(path, tree, FormatAuto))

		loaded, err := LoadData(path)
		require.NoError(t, err)
		assert.Equal(t, tree, loaded)
	})

	t.Run("Overwrite", func(t *testing.T) {
		path := filepath.Join(tmpDir, "out.json")
		require.NoError(t, Save(path, map[string]any{"v": "old"}, FormatAuto))
		require.NoError(t, Save(path, map[string]any{"v": "new"}, FormatAuto))

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.JSONEq(t, `{"v":"new"}`, string(content))
	})

	t.Run("NoTempFilesLeft", func(t *testing.T) {
		path := filepath.Join(tmpDir, "out.toml")
		require.Error(t, Save(path, []any{1}, FormatAuto))
		require.NoError(t, Save(path, tree, FormatAuto))

		matches, err := filepath.Glob(filepath.Join(tmpDir, "*.tmp"))
		require.NoError(t, err)
		assert.Empty(t, matches)
	})
}
