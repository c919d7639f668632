// FILE: lixenwraith/objtemplate/builder_test.go
package objtemplate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBuilder tests the builder pattern
func TestBuilder(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		e, err := NewBuilder().Build()
		require.NoError(t, err)
		assert.Equal(t, PresenceTruthy, e.Mode())
		assert.NotNil(t, e.Registry())
	})

	t.Run("AllOptions", func(t *testing.T) {
		registry := NewRegistry()
		var missing int

		e, err := NewBuilder().
			WithRegistry(registry).
			WithPresenceName("strict").
			WithTagName("toml").
			WithMissingHandler(func(string, string) { missing++ }).
			WithHelper("neg", func(v any) any { return -v.(int) }).
			WithExprHelpers(map[string]string{"inc": "value + 1"}).
			Build()
		require.NoError(t, err)

		assert.Same(t, registry, e.Registry())
		assert.Equal(t, PresenceStrict, e.Mode())
		assert.Equal(t, []string{"inc", "neg"}, registry.Names())

		type source struct {
			Count int `toml:"count"`
		}
		result, err := e.Create(source{Count: 0}, NewTemplate().
			MapWith("negated", "count", "neg").
			Map("gone", "nothing"), nil)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"negated": 0}, result)
		assert.Equal(t, 1, missing)
	})

	t.Run("BuiltEngineIsDetached", func(t *testing.T) {
		b := NewBuilder()
		first, err := b.Build()
		require.NoError(t, err)

		b.WithPresence(PresenceStrict).WithTagName("toml")
		second, err := b.Build()
		require.NoError(t, err)

		assert.NotSame(t, first, second)
		assert.Equal(t, PresenceTruthy, first.Mode())
		assert.Equal(t, PresenceStrict, second.Mode())
		assert.Same(t, first.Registry(), second.Registry())
	})

	t.Run("NilRegistry", func(t *testing.T) {
		_, err := NewBuilder().WithRegistry(nil).Build()
		assert.Error(t, err)
	})

	t.Run("BadPresenceName", func(t *testing.T) {
		_, err := NewBuilder().WithPresenceName("fuzzy").Build()
		assert.Error(t, err)
		assert.Panics(t, func() {
			NewBuilder().WithPresenceName("fuzzy").MustBuild()
		})
	})

	t.Run("BadExpression", func(t *testing.T) {
		_, err := NewBuilder().WithExprHelpers(map[string]string{"bad": "value +"}).Build()
		assert.Error(t, err)
	})
}

// TestParsePresenceMode tests presence mode names
func TestParsePresenceMode(t *testing.T) {
	for name, want := range map[string]PresenceMode{
		"":        PresenceTruthy,
		"truthy":  PresenceTruthy,
		"compat":  PresenceTruthy,
		"STRICT":  PresenceStrict,
		" strict": PresenceStrict,
	} {
		got, err := ParsePresenceMode(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	assert.Equal(t, "strict", PresenceStrict.String())
	assert.Equal(t, "truthy", PresenceTruthy.String())
}
