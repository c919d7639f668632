// FILE: lixenwraith/objtemplate/convenience.go
package objtemplate

import "fmt"

// Create runs tmpl against data using the process-wide registry.
// Prefer an Engine with its own Registry when helpers must stay isolated.
func Create(data any, tmpl *Template, onMissing MissingFunc) (any, error) {
	return NewWithRegistry(defaultRegistry).Create(data, tmpl, onMissing)
}

// MustCreate is like Create but panics on error
func MustCreate(data any, tmpl *Template, onMissing MissingFunc) any {
	result, err := Create(data, tmpl, onMissing)
	if err != nil {
		panic(fmt.Sprintf("template create failed: %v", err))
	}
	return result
}

// CreateFromMap runs a map-shaped template. Destinations are applied in
// sorted order; see TemplateFromMap.
func CreateFromMap(data any, template map[string]any, onMissing MissingFunc) (any, error) {
	tmpl, err := TemplateFromMap(template)
	if err != nil {
		return nil, err
	}
	return Create(data, tmpl, onMissing)
}

// Transform loads a data file and a template file and runs the template
// with the given engine (the package defaults when nil).
func Transform(engine *Engine, dataFile, templateFile string, onMissing MissingFunc) (any, error) {
	if engine == nil {
		engine = NewWithRegistry(defaultRegistry)
	}

	data, err := LoadData(dataFile)
	if err != nil {
		return nil, err
	}

	tmpl, err := LoadTemplate(templateFile)
	if err != nil {
		return nil, err
	}

	return engine.Create(data, tmpl, onMissing)
}
