// FILE: lixenwraith/objtemplate/set.go
package objtemplate

import "fmt"

// Set writes value into target following path, creating intermediate
// mappings and sequences as needed. Mappings are updated in place; the
// returned root must be stored back by the caller, since a path that
// begins with "[]" makes the root itself a sequence.
//
// A collection key receiving a sequence is zipped element by element; any
// other value is broadcast over the elements the collection already holds.
// fn, when non-nil, transforms the value right before it is assigned.
func Set(target any, value any, path Path, fn HelperFunc) (any, error) {
	if len(path) == 0 {
		return nil, fmt.Errorf("%w: empty destination path", ErrContractViolation)
	}
	if path.IsLiteral() {
		return nil, fmt.Errorf("%w: literal path %q cannot be a destination", ErrContractViolation, path.String())
	}
	w := writer{helper: fn, dest: path}
	return w.put(target, value, path)
}

type writer struct {
	helper HelperFunc
	dest   Path
}

// put writes into node and returns the node to keep in the parent slot
func (w writer) put(node any, value any, path Path) (any, error) {
	key, isCollection, rest := path.takeKey()

	if key.Kind == SegmentCollection {
		seq, err := w.sequenceAt(node)
		if err != nil {
			return nil, err
		}
		if len(rest) == 0 {
			return w.assign(value, true), nil
		}
		return w.spread(seq, value, rest)
	}

	m, err := w.mappingAt(node)
	if err != nil {
		return nil, err
	}

	if len(rest) == 0 {
		m[key.Name] = w.assign(value, isCollection)
		return m, nil
	}

	child := m[key.Name]
	if isCollection {
		seq, err := w.sequenceAt(child)
		if err != nil {
			return nil, fmt.Errorf("at %q: %w", key.Name, err)
		}
		seq, err = w.spread(seq, value, rest)
		if err != nil {
			return nil, err
		}
		m[key.Name] = seq
		return m, nil
	}

	updated, err := w.put(child, value, rest)
	if err != nil {
		return nil, err
	}
	m[key.Name] = updated
	return m, nil
}

// spread dispatches a collection write: zip for sequences, broadcast otherwise
func (w writer) spread(seq []any, value any, rest Path) ([]any, error) {
	if values, ok := sequenceOf(value); ok {
		for i, v := range values {
			if i >= len(seq) {
				seq = append(seq, nil)
			}
			updated, err := w.put(seq[i], v, rest)
			if err != nil {
				return nil, fmt.Errorf("at index %d: %w", i, err)
			}
			seq[i] = updated
		}
		return seq, nil
	}

	for i := range seq {
		updated, err := w.put(seq[i], value, rest)
		if err != nil {
			return nil, fmt.Errorf("at index %d: %w", i, err)
		}
		seq[i] = updated
	}
	return seq, nil
}

// assign applies the helper and shallow-copies sequences bound to collection keys
func (w writer) assign(value any, isCollection bool) any {
	if isCollection {
		if values, ok := sequenceOf(value); ok {
			value = append(make([]any, 0, len(values)), values...)
		}
	}
	if w.helper != nil {
		value = w.helper(value)
	}
	return value
}

// mappingAt returns node as a writable mapping, creating it when absent
func (w writer) mappingAt(node any) (map[string]any, error) {
	if isNil(node) {
		return make(map[string]any), nil
	}
	if m, ok := node.(map[string]any); ok {
		return m, nil
	}
	// Typed maps and structs are copied; put stores the copy back in the parent
	if !isScalar(node) {
		if m, ok := mappingOf(node, defaultTagName); ok {
			return m, nil
		}
	}
	return nil, &ContractError{Path: w.dest.String(), Found: node, Want: "mapping"}
}

// sequenceAt returns node as a writable sequence, creating it when absent
func (w writer) sequenceAt(node any) ([]any, error) {
	if isNil(node) {
		return make([]any, 0), nil
	}
	if seq, ok := sequenceOf(node); ok {
		return seq, nil
	}
	return nil, &ContractError{Path: w.dest.String(), Found: node, Want: "sequence"}
}
