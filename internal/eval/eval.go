// Package eval implements the tinyeval recursive tree-walking evaluator:
// the reader over parenthesised source, the special-form dispatch, and
// procedure application. Closure bodies are kept as source text and
// re-parsed on every invocation rather than pre-parsed into an AST — the
// spec this evaluator implements does not require pre-parsing, and keeping
// the reader as the single source of syntax means every code path (a
// top-level program, a lambda body, a cond clause consequent) runs through
// the same handful of functions below.
package eval

import (
	"io"
	"os"

	"github.com/sourcecrate/tinyeval/internal/builtin"
	"github.com/sourcecrate/tinyeval/internal/lexer"
	"github.com/sourcecrate/tinyeval/internal/store"
	"github.com/sourcecrate/tinyeval/internal/value"
)

// Evaluator interprets tinyeval source against a global environment.
//
// An Evaluator is single-threaded: it must not be called from more than one
// goroutine at a time, and its Values must not be shared with another
// Evaluator instance's goroutine. This mirrors the language's explicit
// non-goal of concurrency (no continuations, no tail calls, no threading).
type Evaluator struct {
	global  *value.Frame
	current *value.Frame
	output  io.Writer
	err     string
	store   store.Store
}

// Option configures an Evaluator at construction time.
type Option func(*Evaluator)

// WithOutput redirects the output "display" and "newline" write to. The
// default is os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(e *Evaluator) { e.output = w }
}

// WithGlobal injects a binding into the global frame before any source is
// evaluated, a convenience over calling Define after New returns.
func WithGlobal(name string, v *value.Value) Option {
	return func(e *Evaluator) { e.global.Define(name, v) }
}

// New allocates a fresh global frame, installs the built-in procedures,
// and applies opts.
func New(opts ...Option) *Evaluator {
	global := value.NewFrame(nil)
	e := &Evaluator{
		global:  global,
		current: global,
		output:  os.Stdout,
	}
	builtin.Register(global)
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Output implements value.Host so builtins can write through the
// Evaluator that invoked them.
func (e *Evaluator) Output() io.Writer { return e.output }

// Global returns the evaluator's global frame, for hosts that want to
// enumerate or persist top-level bindings (see the store package).
func (e *Evaluator) Global() *value.Frame { return e.global }

// Define installs a binding in the global frame, taking ownership of v
// (the caller should not release it afterward).
func (e *Evaluator) Define(name string, v *value.Value) {
	e.global.Define(name, v)
}

// Error returns the current pending error message, or "" if none.
func (e *Evaluator) Error() string { return e.err }

// SetError replaces the pending error slot. Passing "" clears it.
func (e *Evaluator) SetError(msg string) { e.err = msg }

// Eval clears the pending error slot, evaluates text as a sequence of
// top-level expressions, and returns the value of the last one. On
// failure the pending error slot is set and the returned value is nil;
// the host should not release a nil value.
func (e *Evaluator) Eval(text string) (*value.Value, error) {
	e.err = ""
	v, err := e.runProgram(text)
	if err != nil {
		e.err = err.Error()
		return nil, err
	}
	return v, nil
}

// Close tears the evaluator down. A closure defined at top level captures
// the global frame, and the global frame holds that closure as one of its
// own bindings — a reference cycle (see the design notes on refcount
// cycles). Close breaks it by disowning any top-level closure's self-
// capture before releasing the global frame, rather than relying on a
// weak-reference scheme.
func (e *Evaluator) Close() {
	for _, name := range e.global.Names() {
		v, ok := e.global.Find(name)
		if !ok {
			continue
		}
		if p := v.AsProc(); p != nil && p.Closure != nil && p.Closure.Env == e.global {
			value.ReleaseFrame(p.Closure.Env)
			p.Closure.Env = nil
		}
	}
	value.ReleaseFrame(e.global)
}

// runProgram evaluates src as a sequence of top-level expressions and
// returns the value of the last one (or Nil if src held none). It is used
// both by Eval and by closure invocation, since a closure's body is itself
// a sequence of expressions evaluated the same way.
func (e *Evaluator) runProgram(src string) (*value.Value, error) {
	pos := 0
	var result *value.Value
	for {
		pos = lexer.SkipWhitespace(src, pos)
		if pos >= len(src) {
			if result == nil {
				result = value.NewNil()
			}
			return result, nil
		}
		v, next, err := e.evalAt(src, pos)
		if err != nil {
			value.Release(result)
			return nil, err
		}
		value.Release(result)
		result = v
		pos = next
	}
}
