package engine

import (
	"sort"
	"strings"
)

// LayerName is the cascade layer wrapping every generated rule.
const LayerName = "utilities"

// Registry deduplicates rules by identity for one generation pass and
// produces the ordered stylesheet body.
type Registry struct {
	rules []Rule
	index map[string]int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{index: make(map[string]int)}
}

// Register records rule unless its identity is already present.
// It reports whether the rule was inserted.
func (r *Registry) Register(rule Rule) bool {
	if _, exists := r.index[rule.Identity]; exists {
		return false
	}
	r.index[rule.Identity] = len(r.rules)
	r.rules = append(r.rules, rule)
	return true
}

// Has reports whether identity already has a rule.
func (r *Registry) Has(identity string) bool {
	_, ok := r.index[identity]
	return ok
}

// Get returns the rule recorded for identity.
func (r *Registry) Get(identity string) (Rule, bool) {
	i, ok := r.index[identity]
	if !ok {
		return Rule{}, false
	}
	return r.rules[i], true
}

// Len returns the number of distinct rules.
func (r *Registry) Len() int {
	return len(r.rules)
}

// Reset clears every recorded rule.
func (r *Registry) Reset() {
	r.rules = nil
	r.index = make(map[string]int)
}

// Rules returns the recorded rules ordered by ascending priority. Rules of
// equal priority keep insertion (document) order.
func (r *Registry) Rules() []Rule {
	out := make([]Rule, len(r.rules))
	copy(out, r.rules)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority < out[j].Priority
	})
	return out
}

// Finalize serializes the ordered rules inside the utilities layer.
// An empty registry yields the empty string.
func (r *Registry) Finalize() string {
	if len(r.rules) == 0 {
		return ""
	}
	ordered := r.Rules()
	texts := make([]string, len(ordered))
	for i, rule := range ordered {
		texts[i] = rule.Text
	}
	return "@layer " + LayerName + " {\n" + strings.Join(texts, "\n\n") + "\n}"
}
