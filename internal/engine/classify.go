package engine

import "regexp"

// ValueKind is the closed classification of a raw value token.
type ValueKind int

const (
	// NumericLiteral is a bare non-negative integer such as "8".
	NumericLiteral ValueKind = iota
	// UnitValue is a number carrying a unit, such as "8px" or "1.5rem".
	UnitValue
	// ColorToken names a design-system color with a defined --color-* variable.
	ColorToken
	// RawLiteral is anything else and is emitted verbatim.
	RawLiteral
)

// String returns the kind name used in reports.
func (k ValueKind) String() string {
	switch k {
	case NumericLiteral:
		return "numeric"
	case UnitValue:
		return "unit"
	case ColorToken:
		return "color-token"
	default:
		return "raw"
	}
}

var (
	numericLiteral = regexp.MustCompile(`^\d+$`)
	unitValue      = regexp.MustCompile(`^-?(\d+\.?\d*|\.\d+)([a-zA-Z]+|%)$`)
)

// ColorSource answers whether a design-system color variable exists.
type ColorSource interface {
	// HasColor reports whether --color-<token> resolves to a non-empty value.
	HasColor(token string) bool
}

// Classify tags raw as it applies to property. Color tokens are only
// recognized on color properties, and take precedence over digits so a
// token named "500" still resolves to its variable.
func Classify(property, raw string, colors ColorSource) ValueKind {
	if _, ok := colorProperties[property]; ok && colors != nil && raw != "" && colors.HasColor(raw) {
		return ColorToken
	}
	switch {
	case numericLiteral.MatchString(raw):
		return NumericLiteral
	case unitValue.MatchString(raw):
		return UnitValue
	default:
		return RawLiteral
	}
}
