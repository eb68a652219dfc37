// Package document holds an HTML document in memory and exposes the styled
// elements the engine consumes, plus the mutations that write results back:
// class attachment, stylesheet replacement and script injection.
package document

import (
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/yacobolo/twml/internal/engine"
)

const (
	// DefaultPrefix marks attributes that carry style declarations.
	DefaultPrefix = "data-tw-"
	// GeneratedStyleID is the id of the single style element holding
	// generated rules.
	GeneratedStyleID = "tw-generated-styles"
)

// Document is a parsed HTML document.
type Document struct {
	root   *html.Node
	prefix string
}

// Parse reads an HTML document. An empty prefix selects DefaultPrefix.
func Parse(r io.Reader, prefix string) (*Document, error) {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	root, err := html.Parse(r)
	if err != nil {
		return nil, errors.Wrap(err, "parse html")
	}
	return &Document{root: root, prefix: strings.ToLower(prefix)}, nil
}

// Prefix returns the attribute prefix in use.
func (d *Document) Prefix() string {
	return d.prefix
}

// Element is one element carrying at least one prefixed attribute.
type Element struct {
	node   *html.Node
	prefix string

	// Index is the position among styled elements, in document order.
	Index int
	// Tag is the lower-case element name.
	Tag string
	// Attributes lists the prefixed attributes in source order with the
	// prefix removed.
	Attributes []engine.Attribute
}

// StyledElements walks the tree in document order and returns every element
// with at least one prefixed attribute.
func (d *Document) StyledElements() []*Element {
	var elements []*Element
	walk(d.root, func(n *html.Node) {
		if n.Type != html.ElementNode {
			return
		}
		var attrs []engine.Attribute
		for _, a := range n.Attr {
			name, ok := d.shorthand(a)
			if !ok {
				continue
			}
			attrs = append(attrs, engine.Attribute{Name: name, Value: a.Val})
		}
		if len(attrs) == 0 {
			return
		}
		elements = append(elements, &Element{
			node:       n,
			prefix:     d.prefix,
			Index:      len(elements),
			Tag:        n.Data,
			Attributes: attrs,
		})
	})
	return elements
}

func (d *Document) shorthand(a html.Attribute) (string, bool) {
	if a.Namespace != "" {
		return "", false
	}
	name, ok := strings.CutPrefix(a.Key, d.prefix)
	if !ok || name == "" {
		return "", false
	}
	return name, true
}

// Apply removes the element's prefixed attributes and appends classes to
// its class attribute. Existing classes stay first and duplicates are
// dropped. An element that ends up with no classes gets no class attribute.
func (e *Element) Apply(classes []string) {
	kept := e.node.Attr[:0]
	existing := ""
	classAt := -1
	for _, a := range e.node.Attr {
		if a.Namespace == "" && strings.HasPrefix(a.Key, e.prefix) && len(a.Key) > len(e.prefix) {
			continue
		}
		if a.Namespace == "" && a.Key == "class" && classAt < 0 {
			existing = a.Val
			classAt = len(kept)
		}
		kept = append(kept, a)
	}

	merged := strings.Join(mergeClasses(strings.Fields(existing), classes), " ")
	switch {
	case classAt >= 0:
		kept[classAt].Val = merged
	case merged != "":
		kept = append(kept, html.Attribute{Key: "class", Val: merged})
	}
	e.node.Attr = kept
}

// Class returns the element's current class attribute.
func (e *Element) Class() string {
	for _, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == "class" {
			return a.Val
		}
	}
	return ""
}

func mergeClasses(existing, added []string) []string {
	seen := make(map[string]struct{}, len(existing)+len(added))
	out := make([]string, 0, len(existing)+len(added))
	for _, list := range [][]string{existing, added} {
		for _, c := range list {
			if _, dup := seen[c]; dup {
				continue
			}
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}
	return out
}

// InlineStyles returns the text of every style element except the
// generated one, in document order.
func (d *Document) InlineStyles() []string {
	var styles []string
	walk(d.root, func(n *html.Node) {
		if n.Type != html.ElementNode || n.DataAtom != atom.Style || isGenerated(n) {
			return
		}
		styles = append(styles, textContent(n))
	})
	return styles
}

// SetStylesheet replaces the generated style element. Any previous one is
// removed; an empty css leaves none behind. Every "</" is written as the
// CSS escape "<\/" so no value can close the raw-text element early.
func (d *Document) SetStylesheet(css string) {
	var stale []*html.Node
	walk(d.root, func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Style && isGenerated(n) {
			stale = append(stale, n)
		}
	})
	for _, n := range stale {
		n.Parent.RemoveChild(n)
	}

	if css == "" {
		return
	}
	style := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Style,
		Data:     "style",
		Attr:     []html.Attribute{{Key: "id", Val: GeneratedStyleID}},
	}
	style.AppendChild(&html.Node{Type: html.TextNode, Data: escapeRawText(css)})
	d.section(atom.Head).AppendChild(style)
}

// escapeRawText keeps css from ending its style element. The HTML tokenizer
// closes raw text at any "</style" regardless of case, and "\/" is the
// same character to a CSS parser.
func escapeRawText(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

// Stylesheet returns the content of the generated style element.
func (d *Document) Stylesheet() string {
	var css string
	walk(d.root, func(n *html.Node) {
		if css == "" && n.Type == html.ElementNode && n.DataAtom == atom.Style && isGenerated(n) {
			css = textContent(n)
		}
	})
	return css
}

// InjectScript appends an inline script to the body.
func (d *Document) InjectScript(src string) {
	script := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Script,
		Data:     "script",
	}
	script.AppendChild(&html.Node{Type: html.TextNode, Data: src})
	d.section(atom.Body).AppendChild(script)
}

// Render serializes the document.
func (d *Document) Render(w io.Writer) error {
	if err := html.Render(w, d.root); err != nil {
		return errors.Wrap(err, "render html")
	}
	return nil
}

// section returns the head or body element. html.Parse always creates
// both, but a missing one is added to the html element.
func (d *Document) section(a atom.Atom) *html.Node {
	var found, htmlNode *html.Node
	walk(d.root, func(n *html.Node) {
		if n.Type != html.ElementNode {
			return
		}
		if n.DataAtom == atom.Html && htmlNode == nil {
			htmlNode = n
		}
		if n.DataAtom == a && found == nil {
			found = n
		}
	})
	if found != nil {
		return found
	}
	if htmlNode == nil {
		htmlNode = d.root
	}
	found = &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	htmlNode.AppendChild(found)
	return found
}

func isGenerated(n *html.Node) bool {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == "id" && a.Val == GeneratedStyleID {
			return true
		}
	}
	return false
}

func textContent(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	}
	return b.String()
}

// walk visits n and its descendants depth-first in document order.
func walk(n *html.Node, visit func(*html.Node)) {
	visit(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}
