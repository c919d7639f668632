// FILE: lixenwraith/objtemplate/helper.go
package objtemplate

import (
	"encoding/json"
	"math"
	"reflect"
	"sort"
	"strconv"

	"github.com/mitchellh/mapstructure"
)

// defaultTagName is the struct tag consulted when a struct is read as a mapping
const defaultTagName = "json"

// sequenceOf returns v as a sequence. []any is returned as-is; other slices
// and arrays are copied element-wise. Strings and byte slices are scalars.
func sequenceOf(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case []byte, string, nil:
		return nil, false
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// mappingOf returns v as a string-keyed mapping without copying when it
// already is one. Structs are decoded through mapstructure using tagName.
func mappingOf(v any, tagName string) (map[string]any, bool) {
	if m, ok := v.(map[string]any); ok {
		return m, true
	}
	if v == nil {
		return nil, false
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = iter.Value().Interface()
		}
		return out, true
	case reflect.Struct:
		out, err := structToMap(rv.Interface(), tagName)
		if err != nil {
			return nil, false
		}
		return out, true
	}
	return nil, false
}

// structToMap decodes a struct into a mapping keyed by tagName
func structToMap(v any, tagName string) (map[string]any, error) {
	if tagName == "" {
		tagName = defaultTagName
	}
	out := make(map[string]any)
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &out,
		TagName: tagName,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(v); err != nil {
		return nil, err
	}
	return out, nil
}

// elementsOf lists the children of a container in iteration order.
// Mappings are visited in sorted key order.
func elementsOf(v any, tagName string) ([]any, bool) {
	if seq, ok := sequenceOf(v); ok {
		return seq, true
	}
	m, ok := mappingOf(v, tagName)
	if !ok {
		return nil, false
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]any, len(keys))
	for i, k := range keys {
		out[i] = m[k]
	}
	return out, true
}

// isNil reports untyped nil as well as nil pointers and interfaces
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// isTruthy mirrors dynamic-language truthiness: nil, false, zero, NaN and
// the empty string are falsy. Empty containers are truthy.
func isTruthy(v any) bool {
	if isNil(v) {
		return false
	}

	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t != ""
	case json.Number:
		f, err := strconv.ParseFloat(string(t), 64)
		return err != nil || (f != 0 && !math.IsNaN(f))
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return f != 0 && !math.IsNaN(f)
	}
	return true
}

// Flatten converts a tree into dot-notation paths. Sequence elements use
// their index as the path segment (e.g. "elements.0.title").
func Flatten(tree any) map[string]any {
	flat := make(map[string]any)
	flattenInto(flat, tree, "")
	return flat
}

func flattenInto(flat map[string]any, node any, prefix string) {
	join := func(key string) string {
		if prefix == "" {
			return key
		}
		return prefix + "." + key
	}

	switch n := node.(type) {
	case map[string]any:
		if len(n) == 0 && prefix != "" {
			flat[prefix] = n
			return
		}
		for key, value := range n {
			flattenInto(flat, value, join(key))
		}
	case []any:
		if len(n) == 0 && prefix != "" {
			flat[prefix] = n
			return
		}
		for i, value := range n {
			flattenInto(flat, value, join(strconv.Itoa(i)))
		}
	default:
		flat[prefix] = node
	}
}

// isScalar reports whether v is a leaf value: a string, bool or number
func isScalar(v any) bool {
	switch v.(type) {
	case string, bool, json.Number:
		return true
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
