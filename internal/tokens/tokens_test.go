package tokens

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		css   string
		want  map[string]string
		empty []string
	}{
		{
			name: "root block",
			css:  `:root { --color-primary: #3b82f6; --spacing: 0.25rem; }`,
			want: map[string]string{
				"--color-primary": "#3b82f6",
				"--spacing":       "0.25rem",
			},
		},
		{
			name: "theme and media blocks",
			css: `@theme {
  --color-accent: oklch(0.7 0.2 30);
}
@media (prefers-color-scheme: dark) {
  :root { --color-surface: #111; }
}`,
			want: map[string]string{
				"--color-accent":  "oklch(0.7 0.2 30)",
				"--color-surface": "#111",
			},
		},
		{
			name: "last definition wins",
			css:  `:root { --color-primary: red; } .theme { --color-primary: blue; }`,
			want: map[string]string{"--color-primary": "blue"},
		},
		{
			name: "whitespace collapses and important is dropped",
			css:  ":root { --font-stack:  Inter,\n    sans-serif !important; }",
			want: map[string]string{"--font-stack": "Inter, sans-serif"},
		},
		{
			name: "last declaration without semicolon",
			css:  `:root { --radius: 4px }`,
			want: map[string]string{"--radius": "4px"},
		},
		{
			name: "nested var reference",
			css:  `:root { --color-link: var(--color-primary, #00f); }`,
			want: map[string]string{"--color-link": "var(--color-primary, #00f)"},
		},
		{
			name:  "empty value",
			css:   `:root { --color-ghost: ; }`,
			empty: []string{"--color-ghost"},
		},
		{
			name: "regular properties are ignored",
			css:  `.btn { color: red; padding: 4px; }`,
			want: map[string]string{},
		},
	}

	p := NewParser(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := p.Parse([]byte(tt.css), "test.css")
			for name, value := range tt.want {
				got, ok := set.Lookup(name)
				assert.True(t, ok, "expected %s to be defined", name)
				assert.Equal(t, value, got)
			}
			for _, name := range tt.empty {
				_, ok := set.Lookup(name)
				assert.False(t, ok, "expected %s to be empty", name)
			}
			if len(tt.empty) == 0 {
				assert.Equal(t, len(tt.want), set.Len())
			}
		})
	}
}

func TestParseEmptyInput(t *testing.T) {
	set := NewParser(nil).Parse(nil, "")
	require.NotNil(t, set)
	assert.Equal(t, 0, set.Len())
}

func TestHasColor(t *testing.T) {
	set := NewSet()
	set.Define("--color-primary", "#3b82f6")
	set.Define("color-500", "#f00")
	set.Define("--color-blank", "   ")
	set.Define("--spacing", "0.25rem")

	assert.True(t, set.HasColor("primary"))
	assert.True(t, set.HasColor("500"))
	assert.False(t, set.HasColor("blank"))
	assert.False(t, set.HasColor("spacing"))
	assert.False(t, set.HasColor(""))
	assert.Equal(t, []string{"500", "primary"}, set.Colors())

	var missing *Set
	assert.False(t, missing.HasColor("primary"))
	assert.Equal(t, 0, missing.Len())
}

func TestMerge(t *testing.T) {
	base := NewSet()
	base.Define("--color-primary", "red")
	base.Define("--spacing", "0.25rem")

	inline := NewSet()
	inline.Define("--color-primary", "blue")

	merged := Merge(base, nil, inline)

	got, ok := merged.Lookup("--color-primary")
	require.True(t, ok)
	assert.Equal(t, "blue", got)
	assert.Equal(t, []string{"--color-primary", "--spacing"}, merged.Names())

	// inputs stay untouched
	got, _ = base.Lookup("--color-primary")
	assert.Equal(t, "red", got)
}
