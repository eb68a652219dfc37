package engine

import (
	"sort"
	"strings"
)

// PropertyCategory groups related CSS properties for reporting.
type PropertyCategory string

// Property categories, assigned from the first declaration of a rule.
const (
	CategoryVisual      PropertyCategory = "Visual"
	CategoryLayout      PropertyCategory = "Layout"
	CategoryTypography  PropertyCategory = "Typography"
	CategoryEffects     PropertyCategory = "Effects"
	CategoryInteraction PropertyCategory = "Interaction"
	CategoryInternal    PropertyCategory = "Internal"
)

// propertyCategories maps CSS property names to categories. It doubles as
// the list of properties a shorthand may name literally.
var propertyCategories = map[string]PropertyCategory{
	// Visual
	"background":            CategoryVisual,
	"background-color":      CategoryVisual,
	"background-image":      CategoryVisual,
	"background-size":       CategoryVisual,
	"background-position":   CategoryVisual,
	"background-repeat":     CategoryVisual,
	"color":                 CategoryVisual,
	"border":                CategoryVisual,
	"border-color":          CategoryVisual,
	"border-radius":         CategoryVisual,
	"border-width":          CategoryVisual,
	"border-style":          CategoryVisual,
	"border-top":            CategoryVisual,
	"border-right":          CategoryVisual,
	"border-bottom":         CategoryVisual,
	"border-left":           CategoryVisual,
	"border-inline":         CategoryVisual,
	"border-block":          CategoryVisual,
	"box-shadow":            CategoryVisual,
	"opacity":               CategoryVisual,
	"outline":               CategoryVisual,
	"outline-color":         CategoryVisual,
	"outline-width":         CategoryVisual,
	"outline-style":         CategoryVisual,
	"fill":                  CategoryVisual,
	"stroke":                CategoryVisual,
	"stroke-width":          CategoryVisual,
	"background-clip":       CategoryVisual,
	"background-origin":     CategoryVisual,
	"background-attachment": CategoryVisual,
	"box-decoration-break":  CategoryVisual,
	"outline-offset":        CategoryVisual,
	"visibility":            CategoryVisual,
	"accent-color":          CategoryVisual,
	"caret-color":           CategoryVisual,
	"list-style":            CategoryVisual,
	"list-style-type":       CategoryVisual,
	"list-style-position":   CategoryVisual,

	// Layout
	"display":               CategoryLayout,
	"flex":                  CategoryLayout,
	"flex-direction":        CategoryLayout,
	"flex-wrap":             CategoryLayout,
	"flex-grow":             CategoryLayout,
	"flex-shrink":           CategoryLayout,
	"flex-basis":            CategoryLayout,
	"justify-content":       CategoryLayout,
	"align-items":           CategoryLayout,
	"align-self":            CategoryLayout,
	"align-content":         CategoryLayout,
	"gap":                   CategoryLayout,
	"row-gap":               CategoryLayout,
	"column-gap":            CategoryLayout,
	"grid":                  CategoryLayout,
	"grid-template-columns": CategoryLayout,
	"grid-template-rows":    CategoryLayout,
	"grid-template-areas":   CategoryLayout,
	"grid-column":           CategoryLayout,
	"grid-row":              CategoryLayout,
	"position":              CategoryLayout,
	"inset":                 CategoryLayout,
	"inset-block":           CategoryLayout,
	"inset-block-start":     CategoryLayout,
	"inset-block-end":       CategoryLayout,
	"inset-inline":          CategoryLayout,
	"inset-inline-start":    CategoryLayout,
	"inset-inline-end":      CategoryLayout,
	"top":                   CategoryLayout,
	"right":                 CategoryLayout,
	"bottom":                CategoryLayout,
	"left":                  CategoryLayout,
	"width":                 CategoryLayout,
	"height":                CategoryLayout,
	"inline-size":           CategoryLayout,
	"block-size":            CategoryLayout,
	"min-width":             CategoryLayout,
	"min-height":            CategoryLayout,
	"min-inline-size":       CategoryLayout,
	"min-block-size":        CategoryLayout,
	"max-width":             CategoryLayout,
	"max-height":            CategoryLayout,
	"max-inline-size":       CategoryLayout,
	"max-block-size":        CategoryLayout,
	"padding":               CategoryLayout,
	"padding-top":           CategoryLayout,
	"padding-right":         CategoryLayout,
	"padding-bottom":        CategoryLayout,
	"padding-left":          CategoryLayout,
	"padding-inline":        CategoryLayout,
	"padding-inline-start":  CategoryLayout,
	"padding-inline-end":    CategoryLayout,
	"padding-block":         CategoryLayout,
	"padding-block-start":   CategoryLayout,
	"padding-block-end":     CategoryLayout,
	"margin":                CategoryLayout,
	"margin-top":            CategoryLayout,
	"margin-right":          CategoryLayout,
	"margin-bottom":         CategoryLayout,
	"margin-left":           CategoryLayout,
	"margin-inline":         CategoryLayout,
	"margin-inline-start":   CategoryLayout,
	"margin-inline-end":     CategoryLayout,
	"margin-block":          CategoryLayout,
	"margin-block-start":    CategoryLayout,
	"margin-block-end":      CategoryLayout,
	"overflow":              CategoryLayout,
	"overflow-x":            CategoryLayout,
	"overflow-y":            CategoryLayout,
	"z-index":               CategoryLayout,
	"aspect-ratio":          CategoryLayout,
	"object-fit":            CategoryLayout,
	"object-position":       CategoryLayout,
	"box-sizing":            CategoryLayout,
	"float":                 CategoryLayout,
	"clear":                 CategoryLayout,
	"isolation":             CategoryLayout,
	"order":                 CategoryLayout,
	"place-items":           CategoryLayout,
	"place-content":         CategoryLayout,
	"place-self":            CategoryLayout,
	"justify-items":         CategoryLayout,
	"justify-self":          CategoryLayout,
	"vertical-align":        CategoryLayout,
	"table-layout":          CategoryLayout,
	"border-collapse":       CategoryLayout,
	"columns":               CategoryLayout,
	"contain":               CategoryLayout,

	// Typography
	"font-family":           CategoryTypography,
	"font-size":             CategoryTypography,
	"font-weight":           CategoryTypography,
	"font-style":            CategoryTypography,
	"font-variant":          CategoryTypography,
	"font-variant-numeric":  CategoryTypography,
	"line-height":           CategoryTypography,
	"letter-spacing":        CategoryTypography,
	"text-align":            CategoryTypography,
	"text-decoration":       CategoryTypography,
	"text-transform":        CategoryTypography,
	"text-overflow":         CategoryTypography,
	"white-space":           CategoryTypography,
	"word-break":            CategoryTypography,
	"word-wrap":             CategoryTypography,
	"hyphens":               CategoryTypography,
	"text-indent":           CategoryTypography,
	"text-wrap":             CategoryTypography,
	"text-shadow":           CategoryTypography,
	"text-underline-offset": CategoryTypography,
	"overflow-wrap":         CategoryTypography,
	"font":                  CategoryTypography,
	"content":               CategoryTypography,

	// Effects
	"transition":                 CategoryEffects,
	"transition-property":        CategoryEffects,
	"transition-duration":        CategoryEffects,
	"transition-timing-function": CategoryEffects,
	"transition-delay":           CategoryEffects,
	"transform":                  CategoryEffects,
	"transform-origin":           CategoryEffects,
	"animation":                  CategoryEffects,
	"animation-name":             CategoryEffects,
	"animation-duration":         CategoryEffects,
	"animation-timing-function":  CategoryEffects,
	"animation-delay":            CategoryEffects,
	"animation-iteration-count":  CategoryEffects,
	"animation-direction":        CategoryEffects,
	"filter":                     CategoryEffects,
	"backdrop-filter":            CategoryEffects,
	"mix-blend-mode":             CategoryEffects,
	"clip-path":                  CategoryEffects,
	"mask":                       CategoryEffects,
	"rotate":                     CategoryEffects,
	"scale":                      CategoryEffects,
	"translate":                  CategoryEffects,
	"will-change":                CategoryEffects,

	// Interaction
	"cursor":              CategoryInteraction,
	"pointer-events":      CategoryInteraction,
	"user-select":         CategoryInteraction,
	"resize":              CategoryInteraction,
	"appearance":          CategoryInteraction,
	"touch-action":        CategoryInteraction,
	"scroll-behavior":     CategoryInteraction,
	"scroll-snap-type":    CategoryInteraction,
	"scroll-snap-align":   CategoryInteraction,
	"overscroll-behavior": CategoryInteraction,
}

// familyPrefixes are property families recognized by prefix when the exact
// name is not listed above.
var familyPrefixes = []struct {
	prefix   string
	category PropertyCategory
}{
	{"flex-", CategoryLayout},
	{"grid-", CategoryLayout},
	{"padding-", CategoryLayout},
	{"margin-", CategoryLayout},
	{"inset-", CategoryLayout},
	{"overflow-", CategoryLayout},
	{"border-", CategoryVisual},
	{"outline-", CategoryVisual},
	{"background-", CategoryVisual},
	{"font-", CategoryTypography},
	{"text-", CategoryTypography},
	{"transition-", CategoryEffects},
	{"animation-", CategoryEffects},
	{"scroll-", CategoryInteraction},
}

// categorizeProperty determines the category of a CSS property
func categorizeProperty(name string) PropertyCategory {
	// Check exact match
	if cat, exists := propertyCategories[name]; exists {
		return cat
	}

	// Vendor-prefixed and custom properties
	if isInternalProperty(name) {
		return CategoryInternal
	}

	for _, family := range familyPrefixes {
		if strings.HasPrefix(name, family.prefix) {
			return family.category
		}
	}

	// Default to Layout for unknown properties
	return CategoryLayout
}

// IsKnownProperty reports whether name is a CSS property the engine
// recognizes, either listed, part of a known family, vendor-prefixed or custom.
func IsKnownProperty(name string) bool {
	if _, exists := propertyCategories[name]; exists {
		return true
	}
	if isInternalProperty(name) {
		return true
	}
	for _, family := range familyPrefixes {
		if strings.HasPrefix(name, family.prefix) {
			return true
		}
	}
	return false
}

func isInternalProperty(name string) bool {
	return strings.HasPrefix(name, "--") ||
		strings.HasPrefix(name, "-webkit-") ||
		strings.HasPrefix(name, "-moz-") ||
		strings.HasPrefix(name, "-ms-") ||
		strings.HasPrefix(name, "-o-")
}

// usesToken checks if a rule body references a design-system variable
func usesToken(text string) bool {
	return strings.Contains(text, "var(--")
}

// CategoryStats counts rules per category and how many reference tokens.
type CategoryStats struct {
	Category PropertyCategory
	Rules    int
	Tokens   int
}

// Categorize groups rules by category, sorted by category name.
func Categorize(rules []Rule) []CategoryStats {
	byCategory := make(map[PropertyCategory]*CategoryStats)
	for _, rule := range rules {
		stats, ok := byCategory[rule.Category]
		if !ok {
			stats = &CategoryStats{Category: rule.Category}
			byCategory[rule.Category] = stats
		}
		stats.Rules++
		if usesToken(rule.Text) {
			stats.Tokens++
		}
	}

	result := make([]CategoryStats, 0, len(byCategory))
	for _, stats := range byCategory {
		result = append(result, *stats)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Category < result[j].Category
	})
	return result
}
