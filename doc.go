// File: lixenwraith/objtemplate/doc.go

// Package objtemplate builds new objects from existing ones. A template maps
// destination paths to source paths; running it copies each source value
// into a fresh result tree, creating intermediate mappings and sequences as
// the destination paths require.
//
// Features:
//   - Dotted paths with collection segments for per-element reads and writes
//   - One-to-one, broadcast and zip expansion over collections
//   - Literal values (>35, >[1, 2], >true, >text)
//   - Named helpers, as Go functions or expr-lang expressions
//   - Ordered templates from TOML, JSON or YAML files
//   - Decoding results into structs via mapstructure
//
// Quick Start:
//
//	tmpl := objtemplate.NewTemplate().
//	    Map("elements[].text", "items[].name").
//	    Map("elements[].prop.title", "title").
//	    Map("meta.version", ">2")
//
//	result, err := objtemplate.Create(data, tmpl, func(source, dest string) {
//	    log.Printf("no value for %s (from %s)", dest, source)
//	})
//
// Path grammar:
//
//	a.b.c      nested field traversal
//	a[].b      a is a collection; b is read or written per element
//	[]         leading marker: the node itself is a collection
//	>literal   the remainder is a literal value
//
// Collections on the destination side:
//
// When a collection key receives a sequence, element i of the sequence is
// written into element i of the collection (zip), growing it as needed.
// When it receives anything else, the value is written into every element
// the collection already holds (broadcast), so an earlier mapping must size
// the collection first. Mappings run in template order against one shared
// result; a later mapping shorter than an earlier one only touches the
// overlapping elements.
//
// Presence:
//
// By default a source value that is nil, false, 0, NaN or "" counts as
// missing, the historical behaviour of the format. Engines built with
// WithPresence(PresenceStrict) only treat absent keys and nil as missing.
//
// Helpers:
//
// Engines own a Registry. Package-level Create and RegisterHelper use a
// process-wide registry; unknown helper names pass values through unchanged.
//
// Thread Safety:
// Create is safe to call concurrently on a shared Engine. Registries guard
// their table with a read-write mutex. Source values are not deep-copied:
// mappings and collection elements copied into a result are shared with the
// source, and later writes into them (elements[].prop after elements) change
// the source too. Concurrent Create calls over the same data race when a
// template writes into copied elements.
package objtemplate
