// Package engine translates declarative style attributes into deduplicated,
// priority-ordered utility CSS rules.
//
// An Engine holds the read-only inputs shared by every pass. Each call to
// NewPass starts from an empty registry, so passes are independent and a
// re-run over the same attributes produces byte-identical output.
package engine

import (
	"fmt"
	"strings"
)

// Attribute is one declarative style attribute with its prefix removed,
// e.g. {Name: "px", Value: "4 md:8"}.
type Attribute struct {
	Name  string
	Value string
}

// Diagnostic reports a token the engine could not fully make sense of.
// The rule is still generated. A pass reports each unrecognized class once,
// at its first occurrence; later elements reusing the class add nothing.
type Diagnostic struct {
	Class      string
	Attribute  string
	Token      string
	Resolution Resolution
	Reason     string
}

// Engine holds the design-token source used by every pass.
type Engine struct {
	colors ColorSource
}

// New creates an engine. colors may be nil, in which case no color token
// resolves to a variable.
func New(colors ColorSource) *Engine {
	return &Engine{colors: colors}
}

// NewPass starts a generation pass with a fresh registry.
func (e *Engine) NewPass() *Pass {
	return &Pass{
		colors:   e.colors,
		registry: NewRegistry(),
	}
}

// Result is the outcome of a full pass over a set of elements.
type Result struct {
	Classes     [][]string
	CSS         string
	Rules       []Rule
	Diagnostics []Diagnostic
}

// Generate runs one full pass over elements, each given as its ordered
// attributes, and returns the class lists in the same order.
func (e *Engine) Generate(elements [][]Attribute) *Result {
	pass := e.NewPass()
	result := &Result{Classes: make([][]string, len(elements))}
	for i, attrs := range elements {
		result.Classes[i] = pass.Process(attrs)
	}
	result.CSS = pass.Stylesheet()
	result.Rules = pass.Rules()
	result.Diagnostics = pass.Diagnostics()
	return result
}

// Pass is the mutable state of one generation pass. It is not safe for
// concurrent use; independent passes may run concurrently.
type Pass struct {
	colors      ColorSource
	registry    *Registry
	diagnostics []Diagnostic
}

// Process handles one element's attributes and returns the class names to
// attach, in first-seen order without duplicates.
func (p *Pass) Process(attrs []Attribute) []string {
	var classes []string
	seen := make(map[string]struct{})
	for _, attr := range attrs {
		property := ResolveProperty(attr.Name)
		physical := ExpandProperty(property)
		for _, token := range strings.Fields(attr.Value) {
			class := p.processToken(attr.Name, physical, token)
			if _, dup := seen[class]; dup {
				continue
			}
			seen[class] = struct{}{}
			classes = append(classes, class)
		}
	}
	return classes
}

func (p *Pass) processToken(shorthand string, physical []string, token string) string {
	variantName, raw := ParseVariant(token)
	class := ClassName{Variant: variantName, Property: shorthand, Value: raw}
	identity := class.String()
	if p.registry.Has(identity) {
		return identity
	}

	variant := LookupVariant(variantName)
	value := Synthesize(physical[0], raw, p.colors)
	rule := BuildRule(class, physical, value, variant)

	resolution := worst(classifyProperty(shorthand), value.Resolution)
	if variant.Kind == VariantUnknown {
		resolution = Unrecognized
	}
	rule.Resolution = resolution
	p.registry.Register(rule)

	if resolution == Unrecognized {
		p.diagnostics = append(p.diagnostics, Diagnostic{
			Class:      identity,
			Attribute:  shorthand,
			Token:      token,
			Resolution: resolution,
			Reason:     unrecognizedReason(shorthand, raw, variant),
		})
	}
	return identity
}

func unrecognizedReason(shorthand, raw string, variant Variant) string {
	switch {
	case variant.Kind == VariantUnknown:
		return fmt.Sprintf("unknown variant %q", variant.Name)
	case raw == "":
		return "empty value"
	case classifyProperty(shorthand) == Unrecognized:
		return fmt.Sprintf("unknown property %q", shorthand)
	default:
		return "unrecognized token"
	}
}

// Stylesheet returns the ordered stylesheet text for everything processed so far.
func (p *Pass) Stylesheet() string {
	return p.registry.Finalize()
}

// Rules returns the recorded rules in cascade order.
func (p *Pass) Rules() []Rule {
	return p.registry.Rules()
}

// Diagnostics returns one entry per unrecognized class, in order of first
// occurrence.
func (p *Pass) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(p.diagnostics))
	copy(out, p.diagnostics)
	return out
}
