// Package tinyeval is the public API for embedding the evaluator: an
// Evaluator construction, symbol injection, top-level evaluation, and
// error inspection, built on top of the internal reader/environment/
// evaluator packages.
package tinyeval

import (
	"io"

	"github.com/sourcecrate/tinyeval/internal/eval"
	"github.com/sourcecrate/tinyeval/internal/store"
	"github.com/sourcecrate/tinyeval/internal/value"
)

// Evaluator embeds the expression language in a host program. It is
// single-threaded: do not call an Evaluator's methods from more than one
// goroutine at a time.
type Evaluator struct {
	inner *eval.Evaluator
}

// Value is a tagged, reference-counted runtime value: Nil, Boolean,
// Integer, Number, String, Procedure, or Userdata.
type Value = value.Value

// Kind is the tag of a Value's variant.
type Kind = value.Kind

// The Kind constants a Value may report from its Kind method.
const (
	Nil       = value.Nil
	Boolean   = value.Boolean
	Integer   = value.Integer
	Number    = value.Number
	String    = value.String
	Procedure = value.Procedure
	Userdata  = value.Userdata
)

// Host is the minimal evaluator surface a native procedure may call back
// into.
type Host = value.Host

// NativeFunc is a host-supplied procedure, installed into an Evaluator
// with NewProcedure and Define.
type NativeFunc = value.NativeFunc

// NewNil returns the distinguished unspecified value.
func NewNil() *Value { return value.NewNil() }

// NewBoolean constructs a Boolean value.
func NewBoolean(b bool) *Value { return value.NewBoolean(b) }

// NewInteger constructs an Integer value.
func NewInteger(i int64) *Value { return value.NewInteger(i) }

// NewNumber constructs a Number value.
func NewNumber(n float64) *Value { return value.NewNumber(n) }

// NewString constructs a String value.
func NewString(s string) *Value { return value.NewString(s) }

// NewUserdata constructs an opaque Userdata value the evaluator never
// dereferences.
func NewUserdata(ptr any) *Value { return value.NewUserdata(ptr) }

// NewProcedure constructs a Procedure value wrapping a native callback
// and an opaque user pointer passed back to fn on every call.
func NewProcedure(fn NativeFunc, user any) *Value { return value.NewNative(fn, user) }

// Retain increments v's refcount and returns v.
func Retain(v *Value) *Value { return value.Retain(v) }

// Release decrements v's refcount, freeing variant-specific resources
// once it reaches zero.
func Release(v *Value) { value.Release(v) }

// Option configures an Evaluator at construction time.
type Option = eval.Option

// WithOutput redirects the output "display" and "newline" write to.
func WithOutput(w io.Writer) Option { return eval.WithOutput(w) }

// WithGlobal injects a binding into the global frame before any source
// is evaluated.
func WithGlobal(name string, v *Value) Option { return eval.WithGlobal(name, v) }

// Store is a persistence backend for PersistGlobal/LoadGlobal. See
// package store for the Memory and SQLite implementations.
type Store = store.Store

// WithStore attaches a persistence backend so PersistGlobal and
// LoadGlobal become available.
func WithStore(s Store) Option { return eval.WithStore(s) }

// New constructs an Evaluator with the built-in procedures installed and
// opts applied.
func New(opts ...Option) *Evaluator {
	return &Evaluator{inner: eval.New(opts...)}
}

// Define installs a binding in the global frame, taking ownership of v.
func (e *Evaluator) Define(name string, v *Value) { e.inner.Define(name, v) }

// Global returns the names currently bound directly in the global frame.
func (e *Evaluator) Global() []string { return e.inner.Global().Names() }

// Call invokes a Procedure value (native or closure) with args, neither
// retaining nor releasing them — the caller owns that. This is the host
// API's exposed "call" operation: a host embedding the evaluator can invoke
// a procedure value it obtained from Eval or from a native callback's
// arguments without writing a throwaway application expression for it.
func (e *Evaluator) Call(proc *Value, args []*Value) (*Value, error) { return e.inner.Call(proc, args) }

// Eval evaluates text as a sequence of top-level expressions and returns
// the value of the last one. On failure the pending error slot is set
// and the returned value is nil.
func (e *Evaluator) Eval(text string) (*Value, error) { return e.inner.Eval(text) }

// Error returns the current pending error message, or "" if none.
func (e *Evaluator) Error() string { return e.inner.Error() }

// SetError replaces the pending error slot. Passing "" clears it.
func (e *Evaluator) SetError(msg string) { e.inner.SetError(msg) }

// PersistGlobal renders name's current global binding to source text and
// writes it through the configured store.
func (e *Evaluator) PersistGlobal(name string) error { return e.inner.PersistGlobal(name) }

// LoadGlobal reads name's source text from the configured store,
// evaluates it, and installs the result in the global frame.
func (e *Evaluator) LoadGlobal(name string) error { return e.inner.LoadGlobal(name) }

// Close tears the evaluator down, releasing the global frame.
func (e *Evaluator) Close() { e.inner.Close() }
