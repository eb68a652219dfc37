package engine

import (
	"fmt"
	"strings"
)

// ClassName is the canonical identity of one generated utility.
type ClassName struct {
	Variant  string // variant prefix as written, empty when absent
	Property string // shorthand as written on the attribute
	Value    string // raw value after the variant is stripped
}

// String returns the DOM-facing class name, e.g. "md:p-4".
func (c ClassName) String() string {
	base := c.Property + "-" + c.Value
	if c.Variant == "" {
		return base
	}
	return c.Variant + ":" + base
}

// Selector returns the stylesheet selector for the class, e.g. `.md\:p-4`.
// Removing the escapes yields String() again.
func (c ClassName) Selector() string {
	return "." + escapeIdent(c.String())
}

// escapeIdent backslash-escapes everything that cannot appear literally in
// a CSS identifier. A leading digit is written as a hex escape.
func escapeIdent(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i, r := range s {
		switch {
		case i == 0 && r >= '0' && r <= '9':
			fmt.Fprintf(&b, `\%x `, r)
		case r == '-' || r == '_' || r >= 0x80,
			r >= 'a' && r <= 'z',
			r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('\\')
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Rule is one serialized CSS rule with its ordering key.
type Rule struct {
	Identity   string // DOM-facing class name
	Priority   int
	Text       string
	Variant    VariantKind
	Category   PropertyCategory
	Resolution Resolution
}

const (
	blockIndent = "    "
	declIndent  = "      "
)

// BuildRule renders the declaration block for class and wraps it according
// to the variant. Priority depends only on the variant.
func BuildRule(class ClassName, physical []string, value Value, variant Variant) Rule {
	decls := value.Decls
	if !value.IsMulti() {
		decls = make([]Declaration, 0, len(physical))
		for _, property := range physical {
			decls = append(decls, Declaration{Property: property, Value: value.Single})
		}
	}

	body := renderDeclarations(decls)
	selector := class.Selector()

	var text string
	switch variant.Kind {
	case VariantBreakpoint:
		text = fmt.Sprintf("@media (min-width: %s) {\n%s\n}", variant.MinWidth, block(selector, body))
	case VariantPseudo:
		text = block(selector+variant.Pseudo, body)
	case VariantTheme:
		text = block(variant.Ancestor+" "+selector, body)
	default:
		text = block(selector, body)
	}

	category := CategoryLayout
	if len(decls) > 0 {
		category = categorizeProperty(decls[0].Property)
	}

	return Rule{
		Identity:   class.String(),
		Priority:   variant.Priority,
		Text:       text,
		Variant:    variant.Kind,
		Category:   category,
		Resolution: value.Resolution,
	}
}

func renderDeclarations(decls []Declaration) string {
	lines := make([]string, len(decls))
	for i, d := range decls {
		lines[i] = fmt.Sprintf("%s%s: %s;", declIndent, d.Property, d.Value)
	}
	return strings.Join(lines, "\n")
}

func block(selector, body string) string {
	return fmt.Sprintf("%s%s {\n%s\n%s}", blockIndent, selector, body, blockIndent)
}
