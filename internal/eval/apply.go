package eval

import (
	"fmt"
	"strings"

	"github.com/sourcecrate/tinyeval/internal/lexer"
	"github.com/sourcecrate/tinyeval/internal/value"
)

// keywords recognised at the head of a combination, matched
// case-insensitively.
var keywords = map[string]bool{
	"define": true, "lambda": true, "cond": true,
	"if": true, "and": true, "or": true,
}

func isKeyword(head string) (string, bool) {
	kw := strings.ToLower(head)
	return kw, keywords[kw]
}

// evalCombination evaluates the text between a combination's parentheses
// (already stripped of the '(' and ')' themselves).
func (e *Evaluator) evalCombination(inner string) (*value.Value, error) {
	pos := lexer.SkipWhitespace(inner, 0)
	if pos >= len(inner) {
		return value.NewNil(), nil
	}
	headEnd := lexer.TokenEnd(inner, pos)
	head := inner[pos:headEnd]

	if inner[pos] != '(' {
		if kw, ok := isKeyword(head); ok {
			return e.evalSpecialForm(kw, inner, headEnd)
		}
	}
	return e.evalApplication(inner, pos, headEnd)
}

// evalApplication resolves the procedure named by head (a parenthesised
// sub-expression or a bare symbol), evaluates every remaining token as an
// operand, and applies the procedure to them.
func (e *Evaluator) evalApplication(inner string, headStart, headEnd int) (*value.Value, error) {
	var proc *value.Value
	if inner[headStart] == '(' {
		v, _, err := e.evalAt(inner, headStart)
		if err != nil {
			return nil, err
		}
		proc = v
	} else {
		v, ok := e.current.Find(inner[headStart:headEnd])
		if !ok {
			return nil, fmt.Errorf("apply: unbound procedure")
		}
		proc = value.Retain(v)
	}
	defer value.Release(proc)

	if proc.Kind() != value.Procedure {
		return nil, fmt.Errorf("apply: operator is not a procedure")
	}

	var args []*value.Value
	defer func() {
		for _, a := range args {
			value.Release(a)
		}
	}()

	pos := headEnd
	for {
		pos = lexer.SkipWhitespace(inner, pos)
		if pos >= len(inner) {
			break
		}
		v, next, err := e.evalAt(inner, pos)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
		pos = next
	}

	return e.apply(proc, args)
}

// apply invokes proc (native or closure) with args, neither retaining nor
// releasing args — the caller owns that.
func (e *Evaluator) apply(proc *value.Value, args []*value.Value) (*value.Value, error) {
	p := proc.AsProc()
	if p == nil {
		return nil, fmt.Errorf("apply: operator is not a procedure")
	}
	if p.Closure != nil {
		return e.invokeClosure(p.Closure, args)
	}
	return p.Native(e, p.User, args)
}

// Call implements value.Host's Call method: it invokes proc (native or
// closure) with args, exposing the value model's "call" operation to
// native procedures and host code — e.g. a higher-order built-in that
// receives a Procedure as an operand and applies it.
func (e *Evaluator) Call(proc *value.Value, args []*value.Value) (*value.Value, error) {
	return e.apply(proc, args)
}

// invokeClosure binds args to c's parameters in a fresh frame parented to
// c's captured environment — not to the caller's current frame — so
// lexical scoping holds and nested calls cannot pollute each other's
// locals. The frame is discarded on return, per the design notes on
// cross-invocation pollution.
func (e *Evaluator) invokeClosure(c *value.Closure, args []*value.Value) (*value.Value, error) {
	if len(args) != len(c.Params) {
		return nil, fmt.Errorf("lambda: mismatch operand count")
	}

	saved := e.current
	frame := value.NewFrame(c.Env)
	e.current = frame
	for i, name := range c.Params {
		frame.Define(name, value.Retain(args[i]))
	}

	result, err := e.runProgram(c.Body)

	e.current = saved
	value.ReleaseFrame(frame)

	if err != nil {
		return nil, err
	}
	return result, nil
}
