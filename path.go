// FILE: lixenwraith/objtemplate/path.go
package objtemplate

import "strings"

const (
	literalPrefix  = ">"
	collectionMark = "[]"
)

// SegmentKind identifies what a path segment does during traversal
type SegmentKind int

const (
	// SegmentField selects a named field of a mapping
	SegmentField SegmentKind = iota
	// SegmentCollection iterates every element of a sequence
	SegmentCollection
	// SegmentLiteral marks the path as a literal value, never a traversal
	SegmentLiteral
)

// Segment is a single step of a parsed path
type Segment struct {
	Kind SegmentKind
	Name string
}

// Path is the ordered traversal plan produced by ParsePath
type Path []Segment

// ParsePath splits a path string into segments.
//
//	a.b.c      nested fields
//	a[].b      a is a collection, b is read per element
//	[].b       the node itself is a collection
//	>literal   the remainder is a literal value
func ParsePath(s string) Path {
	if strings.HasPrefix(s, literalPrefix) {
		return Path{
			{Kind: SegmentLiteral, Name: literalPrefix},
			{Kind: SegmentField, Name: s[len(literalPrefix):]},
		}
	}

	tokens := strings.Split(strings.ReplaceAll(s, collectionMark, "."+collectionMark), ".")
	path := make(Path, 0, len(tokens))
	for i, token := range tokens {
		if token == collectionMark {
			path = append(path, Segment{Kind: SegmentCollection})
			continue
		}
		// Leading "[]" leaves an empty field in front of the marker
		if i == 0 && token == "" && len(tokens) > 1 && tokens[1] == collectionMark {
			continue
		}
		path = append(path, Segment{Kind: SegmentField, Name: token})
	}
	return path
}

// IsLiteral reports whether the path carries a literal value
func (p Path) IsLiteral() bool {
	return len(p) > 0 && p[0].Kind == SegmentLiteral
}

// String renders the path back into its textual form
func (p Path) String() string {
	if p.IsLiteral() {
		if len(p) < 2 {
			return literalPrefix
		}
		return literalPrefix + p[1].Name
	}

	var b strings.Builder
	for i, seg := range p {
		switch seg.Kind {
		case SegmentCollection:
			b.WriteString(collectionMark)
		default:
			if i > 0 {
				b.WriteByte('.')
			}
			b.WriteString(seg.Name)
		}
	}
	return b.String()
}

// takeKey splits the writer's view of a path: the leading field, whether a
// collection marker is bound to it, and the rest.
func (p Path) takeKey() (key Segment, isCollection bool, rest Path) {
	key, rest = p[0], p[1:]
	if key.Kind == SegmentField && len(rest) > 0 && rest[0].Kind == SegmentCollection {
		return key, true, rest[1:]
	}
	return key, false, rest
}
