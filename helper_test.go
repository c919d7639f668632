// FILE: lixenwraith/objtemplate/helper_test.go
package objtemplate

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsTruthy(t *testing.T) {
	var nilMap map[string]any
	var nilPtr *int

	falsy := []any{nil, false, 0, int8(0), uint(0), 0.0, math.NaN(), "", json.Number("0"), nilPtr}
	for _, v := range falsy {
		assert.False(t, isTruthy(v), "%#v", v)
	}

	truthy := []any{true, 1, -1, 0.1, "0", "false", json.Number("2"), []any{}, map[string]any{}, nilMap}
	for _, v := range truthy {
		assert.True(t, isTruthy(v), "%#v", v)
	}
}

func TestContainers(t *testing.T) {
	t.Run("TypedSlice", func(t *testing.T) {
		seq, ok := sequenceOf([]string{"a", "b"})
		require.True(t, ok)
		assert.Equal(t, []any{"a", "b"}, seq)

		_, ok = sequenceOf("ab")
		assert.False(t, ok)
		_, ok = sequenceOf([]byte("ab"))
		assert.False(t, ok)
	})

	t.Run("TypedMap", func(t *testing.T) {
		m, ok := mappingOf(map[string]int{"a": 1}, defaultTagName)
		require.True(t, ok)
		assert.Equal(t, map[string]any{"a": 1}, m)

		_, ok = mappingOf(map[int]string{1: "a"}, defaultTagName)
		assert.False(t, ok)
	})

	t.Run("Struct", func(t *testing.T) {
		type item struct {
			Name string `json:"name"`
		}
		m, ok := mappingOf(&item{Name: "x"}, defaultTagName)
		require.True(t, ok)
		assert.Equal(t, "x", m["name"])
	})

	t.Run("SortedMappingElements", func(t *testing.T) {
		elems, ok := elementsOf(map[string]any{"b": 2, "c": 3, "a": 1}, defaultTagName)
		require.True(t, ok)
		assert.Equal(t, []any{1, 2, 3}, elems)

		_, ok = elementsOf(42, defaultTagName)
		assert.False(t, ok)
	})
}

func TestFlatten(t *testing.T) {
	flat := Flatten(map[string]any{
		"title": "t",
		"elements": []any{
			map[string]any{"text": "a"},
			map[string]any{"text": "b"},
		},
		"empty": map[string]any{},
	})

	assert.Equal(t, map[string]any{
		"title":           "t",
		"elements.0.text": "a",
		"elements.1.text": "b",
		"empty":           map[string]any{},
	}, flat)
}
