package tinyeval

import (
	"strings"
	"testing"

	"github.com/sourcecrate/tinyeval/internal/store"
)

func newMemoryStore() Store { return store.NewMemory() }

func TestEvalArithmetic(t *testing.T) {
	e := New()
	defer e.Close()

	v, err := e.Eval("(+ 1 2 3)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Kind() != Integer || v.AsInteger() != 6 {
		t.Errorf("(+ 1 2 3) = %v, want Integer 6", v)
	}
}

func TestDefineAndInjectedGlobal(t *testing.T) {
	e := New(WithGlobal("seed", NewInteger(10)))
	defer e.Close()

	v, err := e.Eval("(+ seed 1)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Kind() != Integer || v.AsInteger() != 11 {
		t.Errorf("(+ seed 1) = %v, want Integer 11", v)
	}
}

func TestHostNativeProcedure(t *testing.T) {
	e := New()
	defer e.Close()

	e.Define("double", NewProcedure(func(_ Host, _ any, args []*Value) (*Value, error) {
		return NewInteger(args[0].AsInteger() * 2), nil
	}, nil))

	v, err := e.Eval("(double 21)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Kind() != Integer || v.AsInteger() != 42 {
		t.Errorf("(double 21) = %v, want Integer 42", v)
	}
}

func TestCallDirect(t *testing.T) {
	e := New()
	defer e.Close()

	proc, err := e.Eval("(lambda (x) (* x x))")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	v, err := e.Call(proc, []*Value{NewInteger(6)})
	if err != nil {
		t.Fatalf("Call: unexpected error: %v", err)
	}
	if v.Kind() != Integer || v.AsInteger() != 36 {
		t.Errorf("Call(square, 6) = %v, want Integer 36", v)
	}
}

// TestCallFromNativeProcedure exercises the value model's "call" operation
// from inside a native procedure: a higher-order built-in that receives a
// Procedure as an operand and applies it via host.Call.
func TestCallFromNativeProcedure(t *testing.T) {
	e := New()
	defer e.Close()

	e.Define("apply-twice", NewProcedure(func(host Host, _ any, args []*Value) (*Value, error) {
		once, err := host.Call(args[0], []*Value{args[1]})
		if err != nil {
			return nil, err
		}
		twice, err := host.Call(args[0], []*Value{once})
		Release(once)
		return twice, err
	}, nil))

	v, err := e.Eval(`(apply-twice (lambda (x) (* x 2)) 3)`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Kind() != Integer || v.AsInteger() != 12 {
		t.Errorf("(apply-twice double 3) = %v, want Integer 12", v)
	}
}

func TestOutputRedirection(t *testing.T) {
	var out strings.Builder
	e := New(WithOutput(&out))
	defer e.Close()

	if _, err := e.Eval(`(display "hi") (newline)`); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.String() != "hi\n" {
		t.Errorf("output = %q, want %q", out.String(), "hi\n")
	}
}

func TestErrorInspection(t *testing.T) {
	e := New()
	defer e.Close()

	_, err := e.Eval("(+ 1 \"x\")")
	if err == nil {
		t.Fatal("expected an error")
	}
	if e.Error() != err.Error() {
		t.Errorf("Error() = %q, want %q", e.Error(), err.Error())
	}
	e.SetError("")
	if e.Error() != "" {
		t.Errorf("SetError(\"\") should clear the pending error")
	}
}

func TestPersistGlobalRoundTrip(t *testing.T) {
	e := New(WithStore(newMemoryStore()))
	defer e.Close()

	e.Eval("(define factor 7)")
	if err := e.PersistGlobal("factor"); err != nil {
		t.Fatalf("PersistGlobal: %v", err)
	}

	e.Define("factor", NewInteger(0))
	if err := e.LoadGlobal("factor"); err != nil {
		t.Fatalf("LoadGlobal: %v", err)
	}

	v, _ := e.Eval("factor")
	if v.Kind() != Integer || v.AsInteger() != 7 {
		t.Errorf("factor after reload = %v, want Integer 7", v)
	}
}
