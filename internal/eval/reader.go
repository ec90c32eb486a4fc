package eval

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sourcecrate/tinyeval/internal/lexer"
	"github.com/sourcecrate/tinyeval/internal/token"
	"github.com/sourcecrate/tinyeval/internal/value"
)

// evalAt evaluates the single expression starting at pos in src and
// returns its value together with the offset just past it, so callers can
// keep advancing through a buffer that holds more than one expression.
func (e *Evaluator) evalAt(src string, pos int) (*value.Value, int, error) {
	switch lexer.Kind(src, pos) {
	case token.EOF:
		return nil, pos, fmt.Errorf("eval: unexpected end of expression")

	case token.RParen:
		return nil, pos, fmt.Errorf("eval: unexpected close parenthesis")

	case token.String:
		end := lexer.CloseString(src, pos)
		if end >= len(src) && src[end-1] != '"' {
			return nil, end, fmt.Errorf("eval: unexpected end of string")
		}
		return value.NewString(unescape(src[pos+1 : end-1])), end, nil

	case token.LParen:
		end := lexer.CloseBracket(src, pos)
		if end >= len(src) && src[end-1] != ')' {
			return nil, end, fmt.Errorf("eval: unexpected end of expression")
		}
		v, err := e.evalCombination(src[pos+1 : end-1])
		return v, end, err

	default: // token.Atom
		end := lexer.TokenEnd(src, pos)
		v, err := e.evalAtom(src[pos:end])
		return v, end, err
	}
}

// evalAtom classifies and resolves a bare (non-string, non-parenthesised)
// token: a numeric literal containing '.' is a Number, one without is an
// Integer, and anything that parses as neither is a symbol reference
// resolved against the current frame.
func (e *Evaluator) evalAtom(text string) (*value.Value, error) {
	if strings.Contains(text, ".") {
		if f, err := strconv.ParseFloat(text, 64); err == nil {
			return value.NewNumber(f), nil
		}
	} else {
		if i, err := strconv.ParseInt(text, 10, 64); err == nil {
			return value.NewInteger(i), nil
		}
	}
	if v, ok := e.current.Find(text); ok {
		return value.Retain(v), nil
	}
	return nil, fmt.Errorf("eval: unbound symbol")
}

// unescape applies the reader's minimal string escaping: a backslash
// causes the following byte to be included literally, with no further
// translation (so "\n" in source is a literal 'n', not a newline).
func unescape(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
