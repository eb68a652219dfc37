// Package tokens collects design tokens, the CSS custom properties that
// utility values such as bg-primary resolve against.
package tokens

import (
	"sort"
	"strings"
)

// colorPrefix is the custom property namespace probed for color tokens.
const colorPrefix = "--color-"

// Set holds custom property definitions keyed by their full name,
// including the leading "--". The last definition of a name wins.
type Set struct {
	values map[string]string
}

// NewSet returns an empty set.
func NewSet() *Set {
	return &Set{values: make(map[string]string)}
}

// Define records value for name. Names without the "--" prefix get one.
func (s *Set) Define(name, value string) {
	s.values[normalizeName(name)] = strings.TrimSpace(value)
}

// Lookup returns the trimmed value of name and whether it is non-empty.
func (s *Set) Lookup(name string) (string, bool) {
	if s == nil {
		return "", false
	}
	v := s.values[normalizeName(name)]
	return v, v != ""
}

// HasColor reports whether --color-<token> is defined with a non-empty value.
func (s *Set) HasColor(token string) bool {
	if token == "" {
		return false
	}
	_, ok := s.Lookup(colorPrefix + token)
	return ok
}

// Len returns the number of defined properties.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.values)
}

// Names returns the defined property names in sorted order.
func (s *Set) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.values))
	for name := range s.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Colors returns the color token names, without the --color- prefix, in
// sorted order.
func (s *Set) Colors() []string {
	var colors []string
	for _, name := range s.Names() {
		if token, ok := strings.CutPrefix(name, colorPrefix); ok && s.values[name] != "" {
			colors = append(colors, token)
		}
	}
	return colors
}

// Merge combines sets into a new one. Later sets override earlier ones,
// the same way later stylesheets win in the cascade. Nil sets are skipped.
func Merge(sets ...*Set) *Set {
	merged := NewSet()
	for _, s := range sets {
		if s == nil {
			continue
		}
		for name, value := range s.values {
			merged.values[name] = value
		}
	}
	return merged
}

func normalizeName(name string) string {
	name = strings.TrimSpace(name)
	if !strings.HasPrefix(name, "--") {
		name = "--" + name
	}
	return name
}
