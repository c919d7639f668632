// FILE: lixenwraith/objtemplate/convenience_test.go
package objtemplate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTransform tests the file-to-tree pipeline
func TestTransform(t *testing.T) {
	tmpDir := t.TempDir()
	dataFile := filepath.Join(tmpDir, "data.json")
	templateFile := filepath.Join(tmpDir, "template.yaml")

	require.NoError(t, os.WriteFile(dataFile, []byte(`{
  "title": "the title",
  "items": [{"name": "a"}, {"name": "b"}]
}`), 0644))
	require.NoError(t, os.WriteFile(templateFile, []byte(`
elements[].text: items[].name
elements[].heading: title
count: [items, size]
version: ">2"
gone: nothing
`), 0644))

	engine := NewBuilder().
		WithExprHelpers(map[string]string{"size": "len(value)"}).
		MustBuild()

	var missing []string
	result, err := Transform(engine, dataFile, templateFile, func(source, dest string) {
		missing = append(missing, dest+"<-"+source)
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"elements": []any{
			map[string]any{"text": "a", "heading": "the title"},
			map[string]any{"text": "b", "heading": "the title"},
		},
		"count":   2,
		"version": float64(2),
	}, result)
	assert.Equal(t, []string{"gone<-nothing"}, missing)

	t.Run("DefaultEngine", func(t *testing.T) {
		result, err := Transform(nil, dataFile, templateFile, nil)
		require.NoError(t, err)
		// size is not registered globally, so the list passes through
		assert.Len(t, result.(map[string]any)["count"], 2)
	})

	t.Run("MissingTemplate", func(t *testing.T) {
		_, err := Transform(nil, dataFile, filepath.Join(tmpDir, "absent.yaml"), nil)
		assert.ErrorIs(t, err, ErrTemplateNotFound)
	})
}
