// FILE: lixenwraith/objtemplate/engine.go
package objtemplate

import (
	"fmt"
	"io"
	"log/slog"
)

// MissingFunc is called for each template mapping whose source resolved to
// nothing. The destination is left untouched.
type MissingFunc func(source, dest string)

// Engine runs templates against source trees. An Engine is immutable once
// built and may be shared between goroutines; the helper registry it reads
// is synchronized separately. Source data is not copied; see Create.
type Engine struct {
	registry  *Registry
	mode      PresenceMode
	tagName   string
	logger    *slog.Logger
	onMissing MissingFunc
}

// New creates an Engine with an empty registry and truthy presence
func New() *Engine {
	return &Engine{
		registry: NewRegistry(),
		mode:     PresenceTruthy,
		tagName:  defaultTagName,
		logger:   discardLogger(),
	}
}

// NewWithRegistry creates an Engine that resolves helpers from registry
func NewWithRegistry(registry *Registry) *Engine {
	e := New()
	if registry != nil {
		e.registry = registry
	}
	return e
}

// Registry returns the helper registry consulted by the engine
func (e *Engine) Registry() *Registry {
	return e.registry
}

// Mode returns the presence mode used to decide whether a source value exists
func (e *Engine) Mode() PresenceMode {
	return e.mode
}

// Create builds a new tree from data following tmpl. Mappings run in
// template order against one shared result, so later mappings can extend
// collections sized by earlier ones. Missing sources are reported to
// onMissing, or to the engine's default handler when onMissing is nil.
//
// The result is a map[string]any unless the first write that adds anything
// targets a top-level collection ("[]..."), in which case it is a []any.
//
// Values are copied by reference. Mappings read from data, including the
// elements of a copied collection, are shared with the result, so later
// writes through the result (elements[].prop after elements) modify data.
// Concurrent Create calls over the same data must not write into shared
// elements.
func (e *Engine) Create(data any, tmpl *Template, onMissing MissingFunc) (any, error) {
	if onMissing == nil {
		onMissing = e.onMissing
	}

	source := e.normalize(data)
	r := reader{mode: e.mode, tagName: e.tagName}
	var result any = make(map[string]any)

	if tmpl == nil {
		return result, nil
	}

	for _, m := range tmpl.mappings {
		helper := e.resolveHelper(m)

		value, ok := r.get(source, ParsePath(m.Entry.Path))
		if !ok || !e.mode.present(value, true) {
			e.logger.Debug("template source missing",
				"source", m.Entry.Path,
				"dest", m.Dest)
			if onMissing != nil {
				onMissing(m.Entry.Path, m.Dest)
			}
			continue
		}

		dest := ParsePath(m.Dest)
		target := result
		reroot := false
		if len(dest) > 0 && dest[0].Kind == SegmentCollection {
			if root, isMap := result.(map[string]any); isMap && len(root) == 0 {
				target, reroot = nil, true
			}
		}

		updated, err := Set(target, value, dest, helper)
		if err != nil {
			return result, fmt.Errorf("failed to write %q from %q: %w", m.Dest, m.Entry.Path, err)
		}
		// The root only becomes a sequence once a write gives it elements
		if seq, isSeq := updated.([]any); reroot && isSeq && len(seq) == 0 {
			continue
		}
		result = updated
	}

	return result, nil
}

// MustCreate is like Create but panics on a contract violation
func (e *Engine) MustCreate(data any, tmpl *Template, onMissing MissingFunc) any {
	result, err := e.Create(data, tmpl, onMissing)
	if err != nil {
		panic(fmt.Sprintf("template create failed: %v", err))
	}
	return result
}

// resolveHelper looks up the mapping's helper. Unknown names mean no transform.
func (e *Engine) resolveHelper(m Mapping) HelperFunc {
	if m.Entry.Helper == "" {
		return nil
	}
	fn, ok := e.registry.Lookup(m.Entry.Helper)
	if !ok {
		e.logger.Debug("unknown helper, value passed through",
			"helper", m.Entry.Helper,
			"dest", m.Dest)
		return nil
	}
	return fn
}

// normalize turns struct sources into mappings once, up front
func (e *Engine) normalize(data any) any {
	normalized, err := Normalize(data, e.tagName)
	if err != nil {
		e.logger.Debug("source normalization failed", "error", err)
		return data
	}
	return normalized
}

// discardLogger returns a logger that drops every record
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

