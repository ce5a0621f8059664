// Package locale implements the nested JSON locale document model and the
// structural transforms the translation pipeline is built on: flattening to
// dot-path keys, structural diffing, and deep merging.
//
// A Document is an arbitrarily nested mapping from string keys to scalars,
// arrays, or further Documents. Arrays are opaque leaves — they are never
// descended into, merged element-wise, or partially diffed.
package locale

import (
	"sort"
	"strings"
)

// Document is a parsed locale file: nested string-keyed JSON content.
// It is an alias so that nested objects produced by encoding/json
// (map[string]any) are Documents too.
type Document = map[string]any

// isObject reports whether v is a nested mapping (and not nil).
// Arrays and scalars fail the type assertion and are treated as leaves.
func isObject(v any) (Document, bool) {
	m, ok := v.(map[string]any)
	if !ok || m == nil {
		return nil, false
	}
	return m, true
}

// Flatten converts a nested Document into a flat map keyed by dot-joined
// paths ("nav.home"). Leaf values (scalars, arrays, nil, empty objects are
// not leaves — empty objects vanish) are carried through unchanged.
func Flatten(doc Document) map[string]any {
	flat := make(map[string]any)
	flattenInto(flat, "", doc)
	return flat
}

func flattenInto(flat map[string]any, prefix string, doc Document) {
	for key, value := range doc {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		if child, ok := isObject(value); ok {
			flattenInto(flat, path, child)
			continue
		}
		flat[path] = value
	}
}

// Unflatten rebuilds a nested Document from a flat dot-path map.
// For any document d whose keys contain no literal dot,
// Unflatten(Flatten(d)) is structurally identical to d.
func Unflatten(flat map[string]any) Document {
	doc := make(Document)
	for path, value := range flat {
		segments := strings.Split(path, ".")
		node := doc
		for _, seg := range segments[:len(segments)-1] {
			child, ok := isObject(node[seg])
			if !ok {
				child = make(Document)
				node[seg] = child
			}
			node = child
		}
		node[segments[len(segments)-1]] = value
	}
	return doc
}

// SortedPaths returns the keys of a flat map in lexical order.
// Flat maps have no inherent order; reports and tests need a stable one.
func SortedPaths(flat map[string]any) []string {
	paths := make([]string, 0, len(flat))
	for p := range flat {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// LeafCount returns the number of leaf keys in a Document.
func LeafCount(doc Document) int {
	return len(Flatten(doc))
}

// Copy returns a deep copy of a Document. Nested objects are copied
// recursively; arrays and scalars are shared (the pipeline never mutates
// leaves in place).
func Copy(doc Document) Document {
	out := make(Document, len(doc))
	for key, value := range doc {
		if child, ok := isObject(value); ok {
			out[key] = Copy(child)
			continue
		}
		out[key] = value
	}
	return out
}
