package engine

import "fmt"

// Resolution tags how much of a token the engine understood. Rendering never
// depends on it; it exists so callers can surface diagnostics.
type Resolution int

const (
	// Resolved means a table, formula or variable produced the output.
	Resolved Resolution = iota
	// PassThrough means the input was emitted verbatim as valid-looking CSS.
	PassThrough
	// Unrecognized means the input matched nothing the engine knows about.
	Unrecognized
)

// String returns the tag name used in reports.
func (r Resolution) String() string {
	switch r {
	case Resolved:
		return "resolved"
	case PassThrough:
		return "pass-through"
	default:
		return "unrecognized"
	}
}

// worst returns the least resolved of the two tags.
func worst(a, b Resolution) Resolution {
	if b > a {
		return b
	}
	return a
}

// Declaration is a single "property: value" pair.
type Declaration struct {
	Property string
	Value    string
}

// Value is the synthesized CSS value for one token. Either Single applies to
// every physical property of the rule, or Decls lists explicit declarations.
type Value struct {
	Single     string
	Decls      []Declaration
	Kind       ValueKind
	Resolution Resolution
}

// IsMulti reports whether the value carries its own declaration list.
func (v Value) IsMulti() bool {
	return len(v.Decls) > 0
}

// Synthesize turns a resolved property and raw token into CSS value text.
// The first matching branch wins: font-size, predefined tables, color
// variables, spacing scale, grid column count, verbatim.
func Synthesize(property, raw string, colors ColorSource) Value {
	kind := Classify(property, raw, colors)

	if property == "font-size" {
		return synthesizeFontSize(raw, kind)
	}

	if table, ok := predefinedValues[property]; ok {
		if literal, ok := table[raw]; ok {
			return Value{Single: literal, Kind: kind, Resolution: Resolved}
		}
	}

	switch kind {
	case ColorToken:
		return Value{Single: "var(--color-" + raw + ")", Kind: kind, Resolution: Resolved}
	case NumericLiteral:
		if _, ok := spacingProperties[property]; ok {
			return Value{Single: scale(raw), Kind: kind, Resolution: Resolved}
		}
		if property == "grid-template-columns" {
			return Value{Single: fmt.Sprintf("repeat(%s, minmax(0, 1fr))", raw), Kind: kind, Resolution: Resolved}
		}
	}

	return Value{Single: raw, Kind: kind, Resolution: passThrough(raw)}
}

// synthesizeFontSize always answers with explicit declarations so size
// tokens can pair their line height.
func synthesizeFontSize(raw string, kind ValueKind) Value {
	if _, ok := fontSizes[raw]; ok {
		return Value{
			Decls: []Declaration{
				{Property: "font-size", Value: "var(--font-size-" + raw + ")"},
				{Property: "line-height", Value: "var(--font-size-" + raw + "--line-height)"},
			},
			Kind:       kind,
			Resolution: Resolved,
		}
	}
	if kind == NumericLiteral {
		return Value{
			Decls:      []Declaration{{Property: "font-size", Value: scale(raw)}},
			Kind:       kind,
			Resolution: Resolved,
		}
	}
	return Value{
		Decls:      []Declaration{{Property: "font-size", Value: raw}},
		Kind:       kind,
		Resolution: passThrough(raw),
	}
}

func scale(n string) string {
	return fmt.Sprintf("calc(%s * %s)", spacingUnit, n)
}

func passThrough(raw string) Resolution {
	if raw == "" {
		return Unrecognized
	}
	return PassThrough
}
