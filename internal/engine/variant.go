package engine

import "strings"

// VariantKind is the closed set of variant families.
type VariantKind int

// Variant kinds, in no particular order. Priorities live on Variant.
const (
	VariantNone VariantKind = iota
	VariantBreakpoint
	VariantPseudo
	VariantTheme
	VariantUnknown
)

// String returns the kind name used in reports.
func (k VariantKind) String() string {
	switch k {
	case VariantNone:
		return "none"
	case VariantBreakpoint:
		return "breakpoint"
	case VariantPseudo:
		return "pseudo"
	case VariantTheme:
		return "theme"
	default:
		return "unknown"
	}
}

// Variant describes how a qualified rule is wrapped and where it sorts.
type Variant struct {
	Name     string
	Kind     VariantKind
	MinWidth string // breakpoint threshold for the min-width media query
	Pseudo   string // pseudo-class suffix, e.g. ":hover"
	Ancestor string // ancestor selector prefix, e.g. ".dark"
	Priority int
}

// Priorities ascend with cascade precedence: unwrapped rules first, then
// breakpoints by width, then pseudo-states, then themes.
var variants = map[string]Variant{
	"sm":     {Name: "sm", Kind: VariantBreakpoint, MinWidth: "640px", Priority: 10},
	"md":     {Name: "md", Kind: VariantBreakpoint, MinWidth: "768px", Priority: 20},
	"lg":     {Name: "lg", Kind: VariantBreakpoint, MinWidth: "1024px", Priority: 30},
	"xl":     {Name: "xl", Kind: VariantBreakpoint, MinWidth: "1280px", Priority: 40},
	"2xl":    {Name: "2xl", Kind: VariantBreakpoint, MinWidth: "1536px", Priority: 50},
	"hover":  {Name: "hover", Kind: VariantPseudo, Pseudo: ":hover", Priority: 100},
	"focus":  {Name: "focus", Kind: VariantPseudo, Pseudo: ":focus", Priority: 101},
	"active": {Name: "active", Kind: VariantPseudo, Pseudo: ":active", Priority: 102},
	"dark":   {Name: "dark", Kind: VariantTheme, Ancestor: ".dark", Priority: 200},
}

// ParseVariant splits a raw token such as "md:16" into its variant and value.
// Only tokens with exactly one colon carry a variant; anything else is all value.
func ParseVariant(raw string) (variant, value string) {
	if strings.Count(raw, ":") != 1 {
		return "", raw
	}
	variant, value, _ = strings.Cut(raw, ":")
	return variant, value
}

// LookupVariant returns the variant registered under name. An empty name is
// VariantNone; names outside the closed set are VariantUnknown with priority 0.
func LookupVariant(name string) Variant {
	if name == "" {
		return Variant{Kind: VariantNone}
	}
	if v, ok := variants[name]; ok {
		return v
	}
	return Variant{Name: name, Kind: VariantUnknown}
}
