package engine

// ResolveProperty maps a shorthand to its canonical CSS property.
// Unknown shorthands are returned unchanged and treated as literal properties.
func ResolveProperty(shorthand string) string {
	if property, ok := propertyAliases[shorthand]; ok {
		return property
	}
	return shorthand
}

// ExpandProperty returns the physical longhands a canonical property
// stands for. Non-compound properties expand to themselves.
func ExpandProperty(property string) []string {
	if physical, ok := compoundProperties[property]; ok {
		out := make([]string, len(physical))
		copy(out, physical)
		return out
	}
	return []string{property}
}

// classifyProperty reports how a shorthand resolved: through the alias
// table, as a recognized literal CSS property, or not at all.
func classifyProperty(shorthand string) Resolution {
	if _, ok := propertyAliases[shorthand]; ok {
		return Resolved
	}
	if _, ok := compoundProperties[shorthand]; ok {
		return Resolved
	}
	if IsKnownProperty(shorthand) {
		return PassThrough
	}
	return Unrecognized
}
