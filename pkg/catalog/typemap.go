package catalog

import (
	"fmt"
	"regexp"
)

// TypeMapping pairs a native type pattern with its canonical type name.
// Patterns are regular expressions matched against the whole native type
// string, e.g. `VARCHAR.*` matches "VARCHAR(255)".
type TypeMapping struct {
	pattern   *regexp.Regexp
	canonical string
}

// TypeMap is an ordered list of native-type-pattern → canonical-type
// mappings for one backend. Order matters: Resolve applies the first
// matching pattern.
type TypeMap struct {
	mappings []TypeMapping
}

// NewTypeMap compiles an ordered list of pattern/canonical pairs.
// Patterns are anchored so they must match the entire native type string.
func NewTypeMap(pairs [][2]string) (TypeMap, error) {
	mappings := make([]TypeMapping, 0, len(pairs))
	for _, p := range pairs {
		re, err := regexp.Compile("^(?:" + p[0] + ")$")
		if err != nil {
			return TypeMap{}, fmt.Errorf("invalid type pattern %q: %w", p[0], err)
		}
		mappings = append(mappings, TypeMapping{pattern: re, canonical: p[1]})
	}
	return TypeMap{mappings: mappings}, nil
}

// MustTypeMap is like NewTypeMap but panics on an invalid pattern.
// Intended for the static per-backend tables in the connector packages.
func MustTypeMap(pairs [][2]string) TypeMap {
	tm, err := NewTypeMap(pairs)
	if err != nil {
		panic("catalog: " + err.Error())
	}
	return tm
}

// Resolve maps a native type name to its canonical type. The first pattern
// that matches wins; a native type matching no pattern is returned verbatim.
func (tm TypeMap) Resolve(nativeType string) string {
	for _, m := range tm.mappings {
		if m.pattern.MatchString(nativeType) {
			return m.canonical
		}
	}
	return nativeType
}

// Len returns the number of mappings.
func (tm TypeMap) Len() int {
	return len(tm.mappings)
}
