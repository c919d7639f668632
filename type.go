// FILE: lixenwraith/objtemplate/type.go
package objtemplate

import "fmt"

// Lookup resolves a path string against tree. Unlike Get it counts zero
// values as present; only absent keys and nil are missing.
func Lookup(tree any, path string) (any, bool) {
	return GetWith(tree, ParsePath(path), PresenceStrict)
}

// As reads the value at path and converts it to T with the same weak
// conversions and decode hooks as Scan ("8080" to int, "2s" to
// time.Duration, "a,b" to []string).
func As[T any](tree any, path string) (T, error) {
	var out T
	val, found := Lookup(tree, path)
	if !found {
		return out, fmt.Errorf("path not found: %s", path)
	}
	if err := Scan(val, &out, ""); err != nil {
		return out, fmt.Errorf("cannot convert %T to %T for path %s: %w", val, out, path, err)
	}
	return out, nil
}

// String retrieves a string value from tree at path
func String(tree any, path string) (string, error) {
	return As[string](tree, path)
}

// Int64 retrieves an int64 value from tree at path. Floats are truncated.
func Int64(tree any, path string) (int64, error) {
	return As[int64](tree, path)
}

// Bool retrieves a boolean value from tree at path
func Bool(tree any, path string) (bool, error) {
	return As[bool](tree, path)
}

// Float64 retrieves a float64 value from tree at path
func Float64(tree any, path string) (float64, error) {
	return As[float64](tree, path)
}
