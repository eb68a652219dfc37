package twml

import (
	"io"
	"strconv"

	"go.uber.org/zap"

	"github.com/yacobolo/twml/internal/document"
	"github.com/yacobolo/twml/internal/engine"
	"github.com/yacobolo/twml/internal/tokens"
)

// RenderOptions configures a single-document pass.
type RenderOptions struct {
	// Prefix marks style attributes. Empty selects "data-tw-".
	Prefix string
	// Tokens are design tokens from configured stylesheets. Custom
	// properties declared in the document's own style elements override them.
	Tokens *tokens.Set
	// Script, when set, is injected into the body as an inline script.
	Script string
	// Logger receives debug output. Nil discards it.
	Logger *zap.Logger
}

// RenderResult is the outcome of one pass over one document.
type RenderResult struct {
	CSS string
	// Classes holds the class list attached to each styled element,
	// indexed in document order.
	Classes     [][]string
	Rules       []engine.Rule
	Diagnostics []engine.Diagnostic
	Tokens      int
}

// Render runs one generation pass over the document read from r and writes
// the rewritten document to w: prefixed attributes are replaced by class
// names and the generated stylesheet is placed in the head.
func Render(r io.Reader, w io.Writer, opts RenderOptions) (*RenderResult, error) {
	doc, err := document.Parse(r, opts.Prefix)
	if err != nil {
		return nil, err
	}
	result := renderDocument(doc, opts)
	if err := doc.Render(w); err != nil {
		return nil, err
	}
	return result, nil
}

func renderDocument(doc *document.Document, opts RenderOptions) *RenderResult {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	parser := tokens.NewParser(log)
	sets := []*tokens.Set{opts.Tokens}
	for i, style := range doc.InlineStyles() {
		sets = append(sets, parser.Parse([]byte(style), inlineSource(i)))
	}
	set := tokens.Merge(sets...)

	pass := engine.New(set).NewPass()
	elements := doc.StyledElements()
	result := &RenderResult{
		Classes: make([][]string, len(elements)),
		Tokens:  set.Len(),
	}
	for i, el := range elements {
		classes := pass.Process(el.Attributes)
		el.Apply(classes)
		result.Classes[i] = classes
	}

	result.CSS = pass.Stylesheet()
	result.Rules = pass.Rules()
	result.Diagnostics = pass.Diagnostics()

	doc.SetStylesheet(result.CSS)
	if opts.Script != "" {
		doc.InjectScript(opts.Script)
	}

	for _, d := range result.Diagnostics {
		log.Debug("Unrecognized utility",
			zap.String("class", d.Class),
			zap.String("reason", d.Reason))
	}
	return result
}

func inlineSource(i int) string {
	return "<style>#" + strconv.Itoa(i)
}
