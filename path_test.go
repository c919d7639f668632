// FILE: lixenwraith/objtemplate/path_test.go
package objtemplate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func field(name string) Segment { return Segment{Kind: SegmentField, Name: name} }

var collection = Segment{Kind: SegmentCollection}

// TestParsePath tests splitting path strings into segments
func TestParsePath(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Path
	}{
		{"SingleField", "title", Path{field("title")}},
		{"NestedFields", "a.b.c", Path{field("a"), field("b"), field("c")}},
		{"CollectionField", "items[].name", Path{field("items"), collection, field("name")}},
		{"TrailingCollection", "items[]", Path{field("items"), collection}},
		{"NestedCollections", "a[].b[].c", Path{field("a"), collection, field("b"), collection, field("c")}},
		{"DoubleCollection", "grid[][]", Path{field("grid"), collection, collection}},
		{"LeadingCollection", "[].name", Path{collection, field("name")}},
		{"BareCollection", "[]", Path{collection}},
		{"Literal", ">35", Path{{Kind: SegmentLiteral, Name: ">"}, field("35")}},
		{"LiteralKeepsDots", ">a.b[]", Path{{Kind: SegmentLiteral, Name: ">"}, field("a.b[]")}},
		{"EmptyLiteral", ">", Path{{Kind: SegmentLiteral, Name: ">"}, field("")}},
		{"Empty", "", Path{field("")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParsePath(tt.in))
		})
	}
}

// TestPathString tests rendering paths back to text
func TestPathString(t *testing.T) {
	for _, in := range []string{"title", "a.b.c", "items[].name", "a[].b[].c", "grid[][]", "[].name", "[]", ">[1, 2]"} {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, in, ParsePath(in).String())
		})
	}

	assert.True(t, ParsePath(">x").IsLiteral())
	assert.False(t, ParsePath("x").IsLiteral())
	assert.False(t, Path{}.IsLiteral())
}

// TestTakeKey tests how the writer binds a collection marker to its key
func TestTakeKey(t *testing.T) {
	key, isCollection, rest := ParsePath("elements[].prop.title").takeKey()
	assert.Equal(t, field("elements"), key)
	assert.True(t, isCollection)
	assert.Equal(t, Path{field("prop"), field("title")}, rest)

	key, isCollection, rest = ParsePath("child.value").takeKey()
	assert.Equal(t, field("child"), key)
	assert.False(t, isCollection)
	assert.Equal(t, Path{field("value")}, rest)

	key, isCollection, rest = ParsePath("[].name").takeKey()
	assert.Equal(t, collection, key)
	assert.False(t, isCollection)
	assert.Equal(t, Path{field("name")}, rest)
}
