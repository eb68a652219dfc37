package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassName(t *testing.T) {
	tests := []struct {
		name     string
		class    ClassName
		dom      string
		selector string
	}{
		{"plain", ClassName{Property: "p", Value: "4"}, "p-4", ".p-4"},
		{"variant", ClassName{Variant: "md", Property: "p", Value: "4"}, "md:p-4", `.md\:p-4`},
		{"decimal", ClassName{Property: "w", Value: "1.5rem"}, "w-1.5rem", `.w-1\.5rem`},
		{"percent", ClassName{Property: "w", Value: "50%"}, "w-50%", `.w-50\%`},
		{"leading digit", ClassName{Variant: "2xl", Property: "p", Value: "4"}, "2xl:p-4", `.\32 xl\:p-4`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.dom, tt.class.String())
			assert.Equal(t, tt.selector, tt.class.Selector())
		})
	}
}

func TestBuildRuleWrapping(t *testing.T) {
	class := ClassName{Property: "p", Value: "4"}
	value := Value{Single: "1rem"}

	tests := []struct {
		name     string
		variant  string
		text     string
		priority int
	}{
		{
			name:     "no variant",
			text:     "    .p-4 {\n      padding: 1rem;\n    }",
			priority: 0,
		},
		{
			name:     "breakpoint",
			variant:  "lg",
			text:     "@media (min-width: 1024px) {\n    .lg\\:p-4 {\n      padding: 1rem;\n    }\n}",
			priority: 30,
		},
		{
			name:     "hover",
			variant:  "hover",
			text:     "    .hover\\:p-4:hover {\n      padding: 1rem;\n    }",
			priority: 100,
		},
		{
			name:     "active",
			variant:  "active",
			text:     "    .active\\:p-4:active {\n      padding: 1rem;\n    }",
			priority: 102,
		},
		{
			name:     "dark",
			variant:  "dark",
			text:     "    .dark .dark\\:p-4 {\n      padding: 1rem;\n    }",
			priority: 200,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := class
			c.Variant = tt.variant
			rule := BuildRule(c, []string{"padding"}, value, LookupVariant(tt.variant))
			assert.Equal(t, tt.text, rule.Text)
			assert.Equal(t, tt.priority, rule.Priority)
			assert.Equal(t, c.String(), rule.Identity)
		})
	}
}

func TestBuildRuleMultiDeclarationIgnoresPhysical(t *testing.T) {
	value := Value{Decls: []Declaration{
		{Property: "font-size", Value: "var(--font-size-lg)"},
		{Property: "line-height", Value: "var(--font-size-lg--line-height)"},
	}}
	rule := BuildRule(ClassName{Property: "fs", Value: "lg"}, []string{"font-size"}, value, LookupVariant(""))

	want := "    .fs-lg {\n      font-size: var(--font-size-lg);\n      line-height: var(--font-size-lg--line-height);\n    }"
	assert.Equal(t, want, rule.Text)
	assert.Equal(t, CategoryTypography, rule.Category)
}
