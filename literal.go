// FILE: lixenwraith/objtemplate/literal.go
package objtemplate

import (
	"math"
	"strconv"
	"strings"
)

// Coerce converts the payload of a literal path into a typed value.
// Numbers become float64, "[a, b]" becomes []any with each element coerced,
// "true"/"false" become bool and anything else stays a string.
func Coerce(raw string) any {
	if f, ok := parseNumber(raw); ok {
		return f
	}

	if len(raw) >= 2 && strings.HasPrefix(raw, "[") && strings.HasSuffix(raw, "]") {
		parts := strings.Split(raw[1:len(raw)-1], ",")
		values := make([]any, 0, len(parts))
		for i, part := range parts {
			if i > 0 {
				part = strings.TrimPrefix(part, " ")
			}
			values = append(values, Coerce(part))
		}
		return values
	}

	if raw == "true" || raw == "false" {
		return raw == "true"
	}

	return raw
}

// parseNumber accepts what a general numeric parse would: surrounding
// whitespace, decimal and exponent forms, and prefixed integers.
func parseNumber(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" || strings.ContainsRune(s, '_') {
		return 0, false
	}

	// 0x1F, 0o17, 0b101 are unsigned integers only; hex floats stay strings
	if body := strings.TrimLeft(s, "+-"); len(body) >= 2 && body[0] == '0' && strings.ContainsRune("xXoObB", rune(body[1])) {
		if body != s {
			return 0, false
		}
		u, err := strconv.ParseUint(s, 0, 64)
		if err != nil {
			return 0, false
		}
		return float64(u), true
	}

	if f, err := strconv.ParseFloat(s, 64); err == nil {
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return 0, false
		}
		return f, true
	}

	return 0, false
}
