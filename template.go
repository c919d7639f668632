// FILE: lixenwraith/objtemplate/template.go
package objtemplate

import (
	"fmt"
	"sort"

	"github.com/mitchellh/mapstructure"
)

// Entry is the source side of a template mapping
type Entry struct {
	Path   string `toml:"path" json:"path" yaml:"path"`
	Helper string `toml:"helper,omitempty" json:"helper,omitempty" yaml:"helper,omitempty"`
}

// Mapping pairs a destination path with its entry
type Mapping struct {
	Dest  string
	Entry Entry
}

// Template is an ordered list of destination -> source mappings.
// Order matters: later mappings can extend structures earlier ones created.
type Template struct {
	mappings []Mapping
}

// NewTemplate creates an empty template
func NewTemplate() *Template {
	return &Template{}
}

// Map adds a destination <- source path mapping and returns the template
func (t *Template) Map(dest, source string) *Template {
	return t.Add(dest, Entry{Path: source})
}

// MapWith adds a mapping whose value is transformed by the named helper
func (t *Template) MapWith(dest, source, helper string) *Template {
	return t.Add(dest, Entry{Path: source, Helper: helper})
}

// Add appends a mapping. A repeated destination is written again when the
// template runs, in the position it was added.
func (t *Template) Add(dest string, entry Entry) *Template {
	t.mappings = append(t.mappings, Mapping{Dest: dest, Entry: entry})
	return t
}

// Mappings returns a copy of the mappings in order
func (t *Template) Mappings() []Mapping {
	out := make([]Mapping, len(t.mappings))
	copy(out, t.mappings)
	return out
}

// Len returns the number of mappings
func (t *Template) Len() int {
	return len(t.mappings)
}

// TemplateFromMap builds a template from a map. Go maps are unordered, so
// destinations are added in sorted order; use a Template directly or a
// template file when order matters.
func TemplateFromMap(m map[string]any) (*Template, error) {
	dests := make([]string, 0, len(m))
	for dest := range m {
		dests = append(dests, dest)
	}
	sort.Strings(dests)

	t := NewTemplate()
	for _, dest := range dests {
		entry, err := entryFromValue(m[dest])
		if err != nil {
			return nil, fmt.Errorf("destination %q: %w", dest, err)
		}
		t.Add(dest, entry)
	}
	return t, nil
}

// entryFromValue accepts a path string, a [path, helper] pair, or a
// {path, helper} record decoded with mapstructure.
func entryFromValue(v any) (Entry, error) {
	switch val := v.(type) {
	case string:
		return Entry{Path: val}, nil
	case Entry:
		return val, nil
	case *Entry:
		if val != nil {
			return *val, nil
		}
	}

	if pair, ok := sequenceOf(v); ok {
		if len(pair) == 0 || len(pair) > 2 {
			return Entry{}, fmt.Errorf("%w: list must hold a path and an optional helper, got %d items", ErrInvalidEntry, len(pair))
		}
		var entry Entry
		var ok bool
		if entry.Path, ok = pair[0].(string); !ok {
			return Entry{}, fmt.Errorf("%w: path must be a string, got %T", ErrInvalidEntry, pair[0])
		}
		if len(pair) == 2 {
			if entry.Helper, ok = pair[1].(string); !ok {
				return Entry{}, fmt.Errorf("%w: helper must be a string, got %T", ErrInvalidEntry, pair[1])
			}
		}
		return entry, nil
	}

	if _, ok := mappingOf(v, defaultTagName); !ok {
		return Entry{}, fmt.Errorf("%w: unsupported type %T", ErrInvalidEntry, v)
	}

	var entry Entry
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &entry,
		TagName:     "toml",
		ErrorUnused: true,
	})
	if err != nil {
		return Entry{}, fmt.Errorf("decoder creation failed: %w", err)
	}
	if err := decoder.Decode(v); err != nil {
		return Entry{}, fmt.Errorf("%w: %w", ErrInvalidEntry, err)
	}
	if entry.Path == "" {
		return Entry{}, fmt.Errorf("%w: record has no path", ErrInvalidEntry)
	}
	return entry, nil
}
