package eval

import (
	"fmt"

	"github.com/sourcecrate/tinyeval/internal/lexer"
	"github.com/sourcecrate/tinyeval/internal/value"
)

// evalSpecialForm dispatches on a recognised keyword at the head of a
// combination. inner is the combination's full interior text (including
// the keyword itself); headEnd is the offset just past the keyword.
func (e *Evaluator) evalSpecialForm(kw, inner string, headEnd int) (*value.Value, error) {
	switch kw {
	case "define":
		return e.evalDefine(inner, headEnd)
	case "lambda":
		return e.evalLambda(inner, headEnd)
	case "cond":
		return e.evalCond(inner, headEnd)
	case "if":
		return e.evalIf(inner, headEnd)
	case "and":
		return e.evalAnd(inner, headEnd)
	case "or":
		return e.evalOr(inner, headEnd)
	default:
		return nil, fmt.Errorf("eval: unbound symbol")
	}
}

// evalDefine implements both define shapes. "(define name expr)" installs
// in the current frame; "(define (name params…) body…)" installs a
// closure in the global frame — an asymmetry preserved from the source
// language rather than normalised away (see the design notes).
func (e *Evaluator) evalDefine(inner string, pos int) (*value.Value, error) {
	pos = lexer.SkipWhitespace(inner, pos)
	if pos >= len(inner) {
		return nil, fmt.Errorf("define: unexpected end of expression")
	}

	if inner[pos] == '(' {
		end := lexer.CloseBracket(inner, pos)
		if end >= len(inner) && inner[end-1] != ')' {
			return nil, fmt.Errorf("define: unexpected end of procedure definition")
		}
		head := inner[pos+1 : end-1]

		hp := lexer.SkipWhitespace(head, 0)
		if hp >= len(head) {
			return nil, fmt.Errorf("define: unexpected end of procedure definition")
		}
		ne := lexer.TokenEnd(head, hp)
		name := head[hp:ne]
		params, err := parseParams(head[ne:])
		if err != nil {
			return nil, err
		}

		bodyStart := lexer.SkipWhitespace(inner, end)
		if bodyStart >= len(inner) {
			return nil, fmt.Errorf("define: unexpected end of procedure definition")
		}

		e.global.Define(name, value.NewClosure(params, inner[bodyStart:], e.current))
		return value.NewNil(), nil
	}

	ne := lexer.TokenEnd(inner, pos)
	name := inner[pos:ne]

	exprPos := lexer.SkipWhitespace(inner, ne)
	if exprPos >= len(inner) {
		return nil, fmt.Errorf("define: unexpected end of expression")
	}
	v, _, err := e.evalAt(inner, exprPos)
	if err != nil {
		return nil, err
	}
	e.current.Define(name, v)
	return value.NewNil(), nil
}

// evalLambda implements "(lambda (params…) body…)", capturing the
// current frame.
func (e *Evaluator) evalLambda(inner string, pos int) (*value.Value, error) {
	pos = lexer.SkipWhitespace(inner, pos)
	if pos >= len(inner) || inner[pos] != '(' {
		return nil, fmt.Errorf("lambda: invalid expression")
	}
	end := lexer.CloseBracket(inner, pos)
	if end >= len(inner) && inner[end-1] != ')' {
		return nil, fmt.Errorf("lambda: unexpected end of definition")
	}
	params, err := parseParams(inner[pos+1 : end-1])
	if err != nil {
		return nil, err
	}

	bodyStart := lexer.SkipWhitespace(inner, end)
	if bodyStart >= len(inner) {
		return nil, fmt.Errorf("lambda: unexpected end of definition")
	}

	return value.NewClosure(params, inner[bodyStart:], e.current), nil
}

// evalCond implements "(cond (pred expr…) … (else expr…))", evaluating
// predicates in source order and returning the first matching clause's
// consequent sequence.
func (e *Evaluator) evalCond(inner string, pos int) (*value.Value, error) {
	for {
		pos = lexer.SkipWhitespace(inner, pos)
		if pos >= len(inner) {
			return value.NewNil(), nil
		}
		if inner[pos] != '(' {
			return nil, fmt.Errorf("cond: unexpected conditional expression")
		}
		end := lexer.CloseBracket(inner, pos)
		if end >= len(inner) && inner[end-1] != ')' {
			return nil, fmt.Errorf("cond: unexpected conditional expression")
		}
		clause := inner[pos+1 : end-1]
		pos = end

		cp := lexer.SkipWhitespace(clause, 0)
		if cp >= len(clause) {
			return nil, fmt.Errorf("cond: unexpected conditional expression")
		}
		predEnd := lexer.TokenEnd(clause, cp)
		predText := clause[cp:predEnd]

		var matched bool
		if eqFold(predText, "else") {
			matched = true
		} else {
			predVal, next, err := e.evalAt(clause, cp)
			if err != nil {
				return nil, fmt.Errorf("cond: can't eval condition")
			}
			if predVal.Kind() != value.Boolean {
				value.Release(predVal)
				return nil, fmt.Errorf("cond: unexpected conditional result")
			}
			matched = predVal.AsBoolean()
			value.Release(predVal)
			predEnd = next
		}

		if matched {
			return e.runProgram(clause[predEnd:])
		}
	}
}

// evalIf implements "(if pred then else)", evaluating only the branch
// selected by pred — the other branch's text is skipped over, never
// evaluated, so side effects and non-termination in the untaken branch
// never happen.
func (e *Evaluator) evalIf(inner string, pos int) (*value.Value, error) {
	pos = lexer.SkipWhitespace(inner, pos)
	if pos >= len(inner) {
		return nil, fmt.Errorf("if: unexpected end of expression")
	}
	predVal, next, err := e.evalAt(inner, pos)
	if err != nil {
		return nil, err
	}
	if predVal.Kind() != value.Boolean {
		value.Release(predVal)
		return nil, fmt.Errorf("if: unexpected conditional result")
	}
	cond := predVal.AsBoolean()
	value.Release(predVal)
	pos = next

	thenPos := lexer.SkipWhitespace(inner, pos)
	if thenPos >= len(inner) {
		return nil, fmt.Errorf("if: unexpected end of expression")
	}
	thenEnd := lexer.TokenEnd(inner, thenPos)

	elsePos := lexer.SkipWhitespace(inner, thenEnd)
	if elsePos >= len(inner) {
		return nil, fmt.Errorf("if: unexpected end of expression")
	}

	if cond {
		v, _, err := e.evalAt(inner, thenPos)
		return v, err
	}
	v, _, err := e.evalAt(inner, elsePos)
	return v, err
}

// evalAnd implements short-circuit conjunction: "(and)" is #t.
func (e *Evaluator) evalAnd(inner string, pos int) (*value.Value, error) {
	result := true
	for {
		pos = lexer.SkipWhitespace(inner, pos)
		if pos >= len(inner) {
			break
		}
		v, next, err := e.evalAt(inner, pos)
		if err != nil {
			return nil, err
		}
		pos = next
		if v.Kind() != value.Boolean {
			value.Release(v)
			return nil, fmt.Errorf("and|or: operand is not a boolean value")
		}
		b := v.AsBoolean()
		value.Release(v)
		if !b {
			result = false
			break
		}
	}
	return value.NewBoolean(result), nil
}

// evalOr implements short-circuit disjunction: "(or)" is #f.
func (e *Evaluator) evalOr(inner string, pos int) (*value.Value, error) {
	result := false
	for {
		pos = lexer.SkipWhitespace(inner, pos)
		if pos >= len(inner) {
			break
		}
		v, next, err := e.evalAt(inner, pos)
		if err != nil {
			return nil, err
		}
		pos = next
		if v.Kind() != value.Boolean {
			value.Release(v)
			return nil, fmt.Errorf("and|or: operand is not a boolean value")
		}
		b := v.AsBoolean()
		value.Release(v)
		if b {
			result = true
			break
		}
	}
	return value.NewBoolean(result), nil
}

// parseParams splits s into a list of bare parameter names.
func parseParams(s string) ([]string, error) {
	var params []string
	pos := 0
	for {
		pos = lexer.SkipWhitespace(s, pos)
		if pos >= len(s) {
			return params, nil
		}
		if s[pos] == '(' || s[pos] == ')' || s[pos] == '"' {
			return nil, fmt.Errorf("lambda: invalid expression")
		}
		end := lexer.TokenEnd(s, pos)
		params = append(params, s[pos:end])
		pos = end
	}
}

func eqFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}
