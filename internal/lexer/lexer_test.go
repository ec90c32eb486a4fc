package lexer

import (
	"testing"

	"github.com/sourcecrate/tinyeval/internal/token"
)

func TestSkipWhitespace(t *testing.T) {
	cases := []struct {
		src  string
		pos  int
		want int
	}{
		{"   abc", 0, 3},
		{"abc", 0, 0},
		{"", 0, 0},
		{"\t\r\n x", 0, 4},
	}
	for _, c := range cases {
		if got := SkipWhitespace(c.src, c.pos); got != c.want {
			t.Errorf("SkipWhitespace(%q, %d) = %d, want %d", c.src, c.pos, got, c.want)
		}
	}
}

func TestCloseString(t *testing.T) {
	cases := []struct {
		src  string
		want int
	}{
		{`"hello"`, 7},
		{`"he said \"hi\""`, 16},
		{`"unterminated`, 13},
		{`"\`, 2},
	}
	for _, c := range cases {
		if got := CloseString(c.src, 0); got != c.want {
			t.Errorf("CloseString(%q) = %d, want %d", c.src, got, c.want)
		}
	}
}

func TestCloseBracket(t *testing.T) {
	cases := []struct {
		src  string
		want int
	}{
		{"()", 2},
		{"(+ 1 2)", 7},
		{"(+ 1 (* 2 3))", 13},
		{`(display "(")`, 13},
		{"(unterminated", 13},
	}
	for _, c := range cases {
		if got := CloseBracket(c.src, 0); got != c.want {
			t.Errorf("CloseBracket(%q) = %d, want %d", c.src, got, c.want)
		}
	}
}

func TestTokenEnd(t *testing.T) {
	cases := []struct {
		src  string
		pos  int
		want int
	}{
		{"foo bar", 0, 3},
		{"foo)", 0, 3},
		{"(a b) c", 0, 5},
		{`"str" x`, 0, 5},
		{"123)", 0, 3},
	}
	for _, c := range cases {
		if got := TokenEnd(c.src, c.pos); got != c.want {
			t.Errorf("TokenEnd(%q, %d) = %d, want %d", c.src, c.pos, got, c.want)
		}
	}
}

func TestKind(t *testing.T) {
	cases := []struct {
		src  string
		pos  int
		want token.Kind
	}{
		{"(foo)", 0, token.LParen},
		{"foo)", 3, token.RParen},
		{`"s"`, 0, token.String},
		{"foo", 0, token.Atom},
		{"", 0, token.EOF},
	}
	for _, c := range cases {
		if got := Kind(c.src, c.pos); got != c.want {
			t.Errorf("Kind(%q, %d) = %v, want %v", c.src, c.pos, got, c.want)
		}
	}
}
