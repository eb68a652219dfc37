package tokens

import (
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Parser extracts custom property declarations from stylesheets.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a token parser. A nil logger discards output.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("tokens")}
}

// Parse scans data and returns every custom property it declares. The
// scan works on the token stream, so declarations inside :root, @theme,
// @layer or @media blocks are all found. source only labels log entries.
func (p *Parser) Parse(data []byte, source string) *Set {
	set := NewSet()
	if len(data) == 0 {
		return set
	}

	lexer := css.NewLexer(parse.NewInputBytes(data))
	for {
		tt, text := lexer.Next()
		if tt == css.ErrorToken {
			if err := lexer.Err(); err != nil && err != io.EOF {
				p.log.Debug("CSS lex error", zap.String("source", source), zap.Error(err))
			}
			break
		}

		if !isCustomPropertyName(tt, text) {
			continue
		}
		name := string(text)

		if !expectColon(lexer) {
			continue
		}

		value, ok := readValue(lexer)
		if !ok {
			p.log.Debug("Unterminated custom property", zap.String("source", source), zap.String("name", name))
		}
		set.Define(name, value)
	}

	p.log.Debug("Parsed tokens",
		zap.String("source", source),
		zap.Int("bytes", len(data)),
		zap.Int("properties", set.Len()))
	return set
}

func isCustomPropertyName(tt css.TokenType, text []byte) bool {
	switch tt {
	case css.CustomPropertyNameToken:
		return true
	case css.IdentToken:
		return len(text) > 2 && text[0] == '-' && text[1] == '-'
	default:
		return false
	}
}

// expectColon skips whitespace and comments and reports whether the next
// token is a colon.
func expectColon(lexer *css.Lexer) bool {
	for {
		tt, _ := lexer.Next()
		switch tt {
		case css.WhitespaceToken, css.CommentToken:
			continue
		case css.ColonToken:
			return true
		default:
			return false
		}
	}
}

// readValue collects tokens up to the terminating semicolon or closing
// brace at nesting depth zero. Runs of whitespace collapse to one space.
// It reports false when input ends first.
func readValue(lexer *css.Lexer) (string, bool) {
	var b strings.Builder
	depth := 0
	space := false

	for {
		tt, text := lexer.Next()
		switch tt {
		case css.ErrorToken:
			return finishValue(b.String()), false
		case css.CommentToken:
			continue
		case css.WhitespaceToken:
			space = b.Len() > 0
			continue
		case css.SemicolonToken:
			if depth == 0 {
				return finishValue(b.String()), true
			}
		case css.RightBraceToken:
			if depth == 0 {
				return finishValue(b.String()), true
			}
			depth--
		case css.FunctionToken, css.LeftParenthesisToken, css.LeftBracketToken, css.LeftBraceToken:
			depth++
		case css.RightParenthesisToken, css.RightBracketToken:
			if depth > 0 {
				depth--
			}
		}

		if space {
			b.WriteByte(' ')
			space = false
		}
		b.Write(text)
	}
}

func finishValue(v string) string {
	v = strings.TrimSpace(v)
	if trimmed, ok := strings.CutSuffix(v, "!important"); ok {
		v = strings.TrimSpace(trimmed)
	}
	return v
}
