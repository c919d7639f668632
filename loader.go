// FILE: lixenwraith/objtemplate/loader.go
package objtemplate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format names a file encoding for templates, data and output
type Format string

const (
	// FormatAuto detects the format from the file extension, then the content
	FormatAuto Format = "auto"
	// FormatTOML is TOML
	FormatTOML Format = "toml"
	// FormatJSON is JSON
	FormatJSON Format = "json"
	// FormatYAML is YAML
	FormatYAML Format = "yaml"
)

// MaxFileSize bounds template, helper and data files
const MaxFileSize int64 = 64 << 20

// ParseFormat validates a format name; the empty string means auto
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case "":
		return FormatAuto, nil
	case FormatAuto, FormatTOML, FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// LoadTemplate reads an ordered template from a TOML, JSON or YAML file
func LoadTemplate(path string) (*Template, error) {
	data, format, err := readFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, path)
		}
		return nil, err
	}

	tmpl, err := ParseTemplate(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template file '%s': %w", path, err)
	}
	return tmpl, nil
}

// ParseTemplate parses template text, keeping the document order of the
// destination keys. Each value is a source path string, a {path, helper}
// table, or a [path, helper] list.
func ParseTemplate(data []byte, format Format) (*Template, error) {
	if format == "" || format == FormatAuto {
		format = detectFormatFromContent(data)
	}

	switch format {
	case FormatJSON:
		return parseJSONTemplate(data)
	case FormatYAML:
		return parseYAMLTemplate(data)
	case FormatTOML:
		return parseTOMLTemplate(data)
	}
	return nil, ErrUnknownFormat
}

func parseJSONTemplate(data []byte) (*Template, error) {
	tmpl := NewTemplate()
	decoder := json.NewDecoder(bytes.NewReader(data))

	tok, err := decoder.Token()
	if err == io.EOF {
		return tmpl, nil
	}
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("template must be a JSON object, got %v", tok)
	}

	for decoder.More() {
		keyTok, err := decoder.Token()
		if err != nil {
			return nil, err
		}
		dest, _ := keyTok.(string)

		var raw any
		if err := decoder.Decode(&raw); err != nil {
			return nil, fmt.Errorf("destination %q: %w", dest, err)
		}
		entry, err := entryFromValue(raw)
		if err != nil {
			return nil, fmt.Errorf("destination %q: %w", dest, err)
		}
		tmpl.Add(dest, entry)
	}

	if _, err := decoder.Token(); err != nil {
		return nil, err
	}
	return tmpl, nil
}

func parseYAMLTemplate(data []byte) (*Template, error) {
	tmpl := NewTemplate()

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return tmpl, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("template must be a YAML mapping (line %d)", root.Line)
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		keyNode, valueNode := root.Content[i], root.Content[i+1]

		var raw any
		if err := valueNode.Decode(&raw); err != nil {
			return nil, fmt.Errorf("destination %q (line %d): %w", keyNode.Value, keyNode.Line, err)
		}
		entry, err := entryFromValue(raw)
		if err != nil {
			return nil, fmt.Errorf("destination %q (line %d): %w", keyNode.Value, keyNode.Line, err)
		}
		tmpl.Add(keyNode.Value, entry)
	}
	return tmpl, nil
}

// parseTOMLTemplate walks the document keys in order. Quoted keys such as
// "elements[].text" are destinations as written; bare dotted keys become
// nested tables and are joined back with dots.
func parseTOMLTemplate(data []byte) (*Template, error) {
	tmpl := NewTemplate()

	raw := make(map[string]any)
	md, err := toml.Decode(string(data), &raw)
	if err != nil {
		return nil, err
	}

	var consumed []string
	for _, key := range md.Keys() {
		dest := strings.Join(key, ".")
		if hasConsumedPrefix(consumed, dest) {
			continue
		}

		value, ok := tomlValueAt(raw, key)
		if !ok {
			continue
		}
		// Plain tables are containers for more destinations
		if m, isMap := value.(map[string]any); isMap {
			if _, hasPath := m["path"]; !hasPath {
				continue
			}
		}

		entry, err := entryFromValue(value)
		if err != nil {
			return nil, fmt.Errorf("destination %q: %w", dest, err)
		}
		tmpl.Add(dest, entry)
		consumed = append(consumed, dest+".")
	}
	return tmpl, nil
}

func hasConsumedPrefix(consumed []string, dest string) bool {
	for _, prefix := range consumed {
		if strings.HasPrefix(dest, prefix) {
			return true
		}
	}
	return false
}

func tomlValueAt(raw map[string]any, key toml.Key) (any, bool) {
	var current any = raw
	for _, part := range key {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		if current, ok = m[part]; !ok {
			return nil, false
		}
	}
	return current, true
}

// LoadData reads a source tree from a TOML, JSON or YAML file
func LoadData(path string) (any, error) {
	data, format, err := readFile(path)
	if err != nil {
		return nil, err
	}

	tree, err := ParseData(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to parse data file '%s': %w", path, err)
	}
	return tree, nil
}

// ParseData decodes a source tree. JSON and YAML documents may be any
// value; TOML documents are always tables.
func ParseData(data []byte, format Format) (any, error) {
	if format == "" || format == FormatAuto {
		format = detectFormatFromContent(data)
	}

	switch format {
	case FormatJSON:
		var tree any
		if err := json.Unmarshal(data, &tree); err != nil {
			return nil, err
		}
		return tree, nil
	case FormatYAML:
		var tree any
		if err := yaml.Unmarshal(data, &tree); err != nil {
			return nil, err
		}
		return tree, nil
	case FormatTOML:
		tree := make(map[string]any)
		if err := toml.Unmarshal(data, &tree); err != nil {
			return nil, err
		}
		return tree, nil
	}
	return nil, ErrUnknownFormat
}

// LoadHelpers reads a name -> expression table for Registry.RegisterExprs
func LoadHelpers(path string) (map[string]string, error) {
	tree, err := LoadData(path)
	if err != nil {
		return nil, err
	}

	m, ok := tree.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("helper file '%s' must be a mapping of name to expression", path)
	}

	helpers := make(map[string]string, len(m))
	for name, value := range m {
		source, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("helper %q in '%s' must be an expression string, got %T", name, path, value)
		}
		helpers[name] = source
	}
	return helpers, nil
}

// readFile reads a bounded file and reports its format
func readFile(path string) ([]byte, Format, error) {
	fileInfo, err := os.Stat(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to stat file '%s': %w", path, err)
	}
	if fileInfo.IsDir() {
		return nil, "", fmt.Errorf("'%s' is a directory", path)
	}
	if fileInfo.Size() > MaxFileSize {
		return nil, "", fmt.Errorf("file '%s' exceeds maximum size %d bytes", path, MaxFileSize)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open file '%s': %w", path, err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, MaxFileSize))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read file '%s': %w", path, err)
	}

	format := DetectFormat(path)
	if format == FormatAuto {
		format = detectFormatFromContent(data)
	}
	if format == FormatAuto {
		return nil, "", fmt.Errorf("%w: '%s'", ErrUnknownFormat, path)
	}
	return data, format, nil
}

// DetectFormat determines the format from a file extension
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml", ".tml":
		return FormatTOML
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatAuto
	}
}

// detectFormatFromContent attempts to detect format by parsing
func detectFormatFromContent(data []byte) Format {
	// JSON first (strict format)
	var jsonTest any
	if err := json.Unmarshal(data, &jsonTest); err == nil {
		return FormatJSON
	}

	// TOML before YAML: most TOML documents are not valid YAML mappings,
	// but a bare "key = value" line is a valid YAML string
	var tomlTest map[string]any
	if err := toml.Unmarshal(data, &tomlTest); err == nil && len(tomlTest) > 0 {
		return FormatTOML
	}

	var yamlTest any
	if err := yaml.Unmarshal(data, &yamlTest); err == nil {
		return FormatYAML
	}

	return FormatAuto
}
