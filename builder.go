// FILE: lixenwraith/objtemplate/builder.go
package objtemplate

import (
	"fmt"
	"log/slog"
	"strings"
)

// Builder provides a fluent interface for building engines
type Builder struct {
	engine  *Engine
	helpers map[string]HelperFunc
	exprs   map[string]string
	err     error
}

// NewBuilder creates a new engine builder
func NewBuilder() *Builder {
	return &Builder{
		engine:  New(),
		helpers: make(map[string]HelperFunc),
		exprs:   make(map[string]string),
	}
}

// WithRegistry sets the registry helpers are resolved from
func (b *Builder) WithRegistry(registry *Registry) *Builder {
	if registry == nil {
		b.err = fmt.Errorf("registry cannot be nil")
		return b
	}
	b.engine.registry = registry
	return b
}

// WithPresence sets how resolved values are judged present
func (b *Builder) WithPresence(mode PresenceMode) *Builder {
	b.engine.mode = mode
	return b
}

// WithPresenceName sets the presence mode by name ("truthy" or "strict")
func (b *Builder) WithPresenceName(name string) *Builder {
	mode, err := ParsePresenceMode(name)
	if err != nil {
		b.err = err
		return b
	}
	return b.WithPresence(mode)
}

// WithTagName sets the struct tag used when a struct source is read as a mapping
func (b *Builder) WithTagName(tagName string) *Builder {
	if tagName != "" {
		b.engine.tagName = tagName
	}
	return b
}

// WithLogger sets the logger for missing sources and unknown helpers
func (b *Builder) WithLogger(logger *slog.Logger) *Builder {
	if logger != nil {
		b.engine.logger = logger
	}
	return b
}

// WithMissingHandler sets the handler used when Create is called without one
func (b *Builder) WithMissingHandler(fn MissingFunc) *Builder {
	b.engine.onMissing = fn
	return b
}

// WithHelper registers fn in the engine's registry at build time
func (b *Builder) WithHelper(name string, fn HelperFunc) *Builder {
	b.helpers[name] = fn
	return b
}

// WithExprHelpers registers expr-lang helpers at build time
func (b *Builder) WithExprHelpers(sources map[string]string) *Builder {
	for name, source := range sources {
		b.exprs[name] = source
	}
	return b
}

// Build creates the Engine with all specified options. Each call returns a
// new Engine; later builder calls do not affect engines already built.
func (b *Builder) Build() (*Engine, error) {
	if b.err != nil {
		return nil, b.err
	}

	for name, fn := range b.helpers {
		b.engine.registry.Register(name, fn)
	}
	if len(b.exprs) > 0 {
		if err := b.engine.registry.RegisterExprs(b.exprs); err != nil {
			return nil, fmt.Errorf("failed to register expression helpers: %w", err)
		}
	}

	b.engine.registry.SetLogger(b.engine.logger)
	engine := *b.engine
	return &engine, nil
}

// MustBuild is like Build but panics on error
func (b *Builder) MustBuild() *Engine {
	engine, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("engine build failed: %v", err))
	}
	return engine
}

// ParsePresenceMode parses "truthy" or "strict"
func ParsePresenceMode(name string) (PresenceMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "truthy", "compat":
		return PresenceTruthy, nil
	case "strict":
		return PresenceStrict, nil
	}
	return PresenceTruthy, fmt.Errorf("unknown presence mode %q", name)
}
