// FILE: lixenwraith/objtemplate/get.go
package objtemplate

import "strconv"

// PresenceMode decides which resolved values count as present
type PresenceMode int

const (
	// PresenceTruthy treats nil, false, 0, NaN and "" as missing.
	// This matches the historical behaviour of the template format.
	PresenceTruthy PresenceMode = iota

	// PresenceStrict treats only absent keys and nil as missing
	PresenceStrict
)

// String returns the mode name as used in configuration
func (m PresenceMode) String() string {
	switch m {
	case PresenceStrict:
		return "strict"
	default:
		return "truthy"
	}
}

// present applies the mode to a looked-up value
func (m PresenceMode) present(v any, found bool) bool {
	if !found {
		return false
	}
	if m == PresenceStrict {
		return !isNil(v)
	}
	return isTruthy(v)
}

// reader resolves paths against a source tree. It never mutates the tree.
type reader struct {
	mode    PresenceMode
	tagName string
}

// Get resolves path against node using truthy presence.
// The second result is false when any field on the way is missing.
func Get(node any, path Path) (any, bool) {
	return GetWith(node, path, PresenceTruthy)
}

// GetWith resolves path against node with the given presence mode
func GetWith(node any, path Path, mode PresenceMode) (any, bool) {
	r := reader{mode: mode, tagName: defaultTagName}
	return r.get(node, path)
}

func (r reader) get(node any, path Path) (any, bool) {
	if len(path) == 0 {
		return node, r.mode.present(node, true)
	}

	seg, rest := path[0], path[1:]
	switch seg.Kind {
	case SegmentLiteral:
		if len(rest) == 0 {
			return Coerce(""), true
		}
		return Coerce(rest[0].Name), true

	case SegmentCollection:
		elems, ok := elementsOf(node, r.tagName)
		if !ok {
			return nil, false
		}
		result := make([]any, 0, len(elems))
		if len(rest) == 0 {
			return append(result, elems...), true
		}
		for _, elem := range elems {
			// A missing leaf only drops that element's value
			v, _ := r.get(elem, rest)
			result = append(result, v)
		}
		return result, true

	default:
		next, found := r.field(node, seg.Name)
		if !r.mode.present(next, found) {
			return nil, false
		}
		if len(rest) == 0 {
			return next, true
		}
		return r.get(next, rest)
	}
}

// field looks up name on a mapping, or a decimal index on a sequence
func (r reader) field(node any, name string) (any, bool) {
	if seq, ok := sequenceOf(node); ok {
		i, err := strconv.Atoi(name)
		if err != nil || i < 0 || i >= len(seq) || strconv.Itoa(i) != name {
			return nil, false
		}
		return seq[i], true
	}

	m, ok := mappingOf(node, r.tagName)
	if !ok {
		return nil, false
	}
	next, found := m[name]
	return next, found
}
