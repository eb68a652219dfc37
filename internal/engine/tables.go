package engine

// spacingUnit is the base spacing variable every numeric scale value multiplies.
const spacingUnit = "var(--spacing)"

// propertyAliases maps attribute shorthands to canonical CSS properties.
// Shorthands missing from this table are used as literal property names.
var propertyAliases = map[string]string{
	"w":       "width",
	"h":       "height",
	"max-w":   "max-width",
	"max-h":   "max-height",
	"min-w":   "min-width",
	"min-h":   "min-height",
	"p":       "padding",
	"px":      "padding-x",
	"py":      "padding-y",
	"pt":      "padding-top",
	"pr":      "padding-right",
	"pb":      "padding-bottom",
	"pl":      "padding-left",
	"m":       "margin",
	"mx":      "margin-x",
	"my":      "margin-y",
	"mt":      "margin-top",
	"mr":      "margin-right",
	"mb":      "margin-bottom",
	"ml":      "margin-left",
	"bg":      "background-color",
	"text":    "color",
	"rounded": "border-radius",
	"fs":      "font-size",
	"fw":      "font-weight",
	"leading": "line-height",
	"aspect":  "aspect-ratio",
	"cols":    "grid-template-columns",
	"z":       "z-index",
}

// compoundProperties lists logical properties that stand for several
// physical longhands. Order is left before right, top before bottom.
var compoundProperties = map[string][]string{
	"padding-x": {"padding-left", "padding-right"},
	"padding-y": {"padding-top", "padding-bottom"},
	"margin-x":  {"margin-left", "margin-right"},
	"margin-y":  {"margin-top", "margin-bottom"},
	"inset-x":   {"left", "right"},
	"inset-y":   {"top", "bottom"},
}

// predefinedValues maps semantic tokens to literal values per property.
var predefinedValues = map[string]map[string]string{
	"aspect-ratio": {
		"square":    "1 / 1",
		"video":     "16 / 9",
		"portrait":  "3 / 4",
		"landscape": "4 / 3",
	},
	"font-weight": {
		"thin":       "100",
		"extralight": "200",
		"light":      "300",
		"normal":     "400",
		"medium":     "500",
		"semibold":   "600",
		"bold":       "700",
		"extrabold":  "800",
		"black":      "900",
	},
}

// fontSizes are the size tokens backed by --font-size-* and their paired
// --font-size-*--line-height variables.
var fontSizes = map[string]struct{}{
	"xs":   {},
	"sm":   {},
	"base": {},
	"lg":   {},
	"xl":   {},
	"2xl":  {},
	"3xl":  {},
	"4xl":  {},
	"5xl":  {},
	"6xl":  {},
	"7xl":  {},
	"8xl":  {},
	"9xl":  {},
}

// spacingProperties accept bare integers as multiples of the spacing unit.
var spacingProperties = map[string]struct{}{
	"width":          {},
	"height":         {},
	"max-width":      {},
	"max-height":     {},
	"min-width":      {},
	"min-height":     {},
	"padding":        {},
	"padding-top":    {},
	"padding-right":  {},
	"padding-bottom": {},
	"padding-left":   {},
	"margin":         {},
	"margin-top":     {},
	"margin-right":   {},
	"margin-bottom":  {},
	"margin-left":    {},
	"gap":            {},
	"border-radius":  {},
	"top":            {},
	"right":          {},
	"bottom":         {},
	"left":           {},
}

// colorProperties resolve design-system color tokens to --color-* variables.
var colorProperties = map[string]struct{}{
	"color":            {},
	"background-color": {},
	"border-color":     {},
}
