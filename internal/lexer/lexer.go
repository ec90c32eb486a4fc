// Package lexer locates token boundaries in parenthesised tinyeval source.
//
// Unlike a conventional tokenizer, lexer does not build a token stream: it
// exposes the handful of boundary-finding primitives the evaluator needs to
// repeatedly re-scan substrings of the same source buffer (including a
// closure body captured as source text and re-parsed on every call). Each
// primitive takes a byte offset into src and returns the offset just past
// the token it scanned, mirroring a cursor walking a C string.
package lexer

import "github.com/sourcecrate/tinyeval/internal/token"

// SkipWhitespace advances pos past any run of whitespace and returns the
// offset of the first non-whitespace byte, or len(src) if none remains.
func SkipWhitespace(src string, pos int) int {
	for pos < len(src) && token.IsSpace(src[pos]) {
		pos++
	}
	return pos
}

// CloseString expects src[pos] == '"' and returns the offset just past the
// matching closing quote. A single backslash escapes the following byte
// unconditionally: the escaped byte is consumed literally and never
// terminates the string, matching the reader's minimal escape handling (a
// bare '\' before end-of-input is also just consumed, same as any other
// escaped byte). If no closing quote is found, CloseString returns
// len(src); the caller detects the unterminated-string condition by
// comparing against len(src).
func CloseString(src string, pos int) int {
	n := len(src)
	if pos >= n || src[pos] != '"' {
		return pos
	}
	pos++ // step past the opening quote
	for pos < n {
		switch src[pos] {
		case '\\':
			pos++ // skip the escape marker
			if pos < n {
				pos++ // skip the escaped byte literally
			}
		case '"':
			return pos + 1
		default:
			pos++
		}
	}
	return n
}

// CloseBracket expects src[pos] == '(' and returns the offset just past the
// matching ')', tracking nesting depth and skipping over string contents
// via CloseString so that parentheses inside a string literal are not
// mistaken for structure. If the bracket never closes, CloseBracket returns
// len(src).
func CloseBracket(src string, pos int) int {
	n := len(src)
	if pos >= n || src[pos] != '(' {
		return pos
	}
	depth := 0
	for pos < n {
		switch src[pos] {
		case '"':
			pos = CloseString(src, pos)
			continue
		case '(':
			depth++
			pos++
		case ')':
			depth--
			pos++
			if depth == 0 {
				return pos
			}
		default:
			pos++
		}
	}
	return n
}

// TokenEnd expects pos to address a non-whitespace, non-')' byte and
// returns the offset just past the token starting there: the matching ')'
// for a combination, the matching closing '"' for a string, or the first
// subsequent whitespace/'('/')'/end-of-input for a bare atom.
func TokenEnd(src string, pos int) int {
	if pos >= len(src) {
		return pos
	}
	switch src[pos] {
	case '(':
		return CloseBracket(src, pos)
	case '"':
		return CloseString(src, pos)
	default:
		end := pos
		for end < len(src) && !token.IsSpace(src[end]) && src[end] != ')' && src[end] != '(' {
			end++
		}
		return end
	}
}

// Kind classifies the byte at pos without consuming anything, so the
// evaluator can decide how to dispatch before calling TokenEnd.
func Kind(src string, pos int) token.Kind {
	if pos >= len(src) {
		return token.EOF
	}
	switch src[pos] {
	case '(':
		return token.LParen
	case ')':
		return token.RParen
	case '"':
		return token.String
	default:
		return token.Atom
	}
}
