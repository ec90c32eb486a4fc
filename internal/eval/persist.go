package eval

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sourcecrate/tinyeval/internal/store"
	"github.com/sourcecrate/tinyeval/internal/value"
)

// WithStore attaches s to the evaluator so PersistGlobal and LoadGlobal
// have somewhere to read and write. The zero value (no WithStore option)
// leaves persistence unavailable: PersistGlobal and LoadGlobal both fail.
func WithStore(s store.Store) Option {
	return func(e *Evaluator) { e.store = s }
}

// PersistGlobal renders the current value of name from the global frame
// to source text and writes it through the configured store. Persistence
// is always an explicit host action; Eval never persists on its own.
func (e *Evaluator) PersistGlobal(name string) error {
	if e.store == nil {
		return fmt.Errorf("store: no store configured")
	}
	v, ok := e.global.Find(name)
	if !ok {
		return fmt.Errorf("store: %q is not bound", name)
	}
	source, err := renderSource(v)
	if err != nil {
		return err
	}
	return e.store.Put(name, source)
}

// LoadGlobal reads name's source text from the configured store,
// evaluates it, and installs the result in the global frame under name.
func (e *Evaluator) LoadGlobal(name string) error {
	if e.store == nil {
		return fmt.Errorf("store: no store configured")
	}
	source, ok, err := e.store.Get(name)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("store: %q has never been persisted", name)
	}
	v, err := e.runProgram(source)
	if err != nil {
		return err
	}
	e.global.Define(name, v)
	return nil
}

// renderSource renders v as source text that, when evaluated, reconstructs
// an equivalent value — consistent with the evaluator's own closure-body-
// as-source-text representation.
func renderSource(v *value.Value) (string, error) {
	switch v.Kind() {
	case value.Nil:
		return "#!unspecific", nil
	case value.Boolean:
		if v.AsBoolean() {
			return "#t", nil
		}
		return "#f", nil
	case value.Integer:
		return strconv.FormatInt(v.AsInteger(), 10), nil
	case value.Number:
		// The reader only yields a Number for a literal containing '.', so
		// a whole-valued float must keep one to avoid reloading as Integer.
		s := strconv.FormatFloat(v.AsNumber(), 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s, nil
	case value.String:
		return quoteString(v.AsString()), nil
	case value.Procedure:
		p := v.AsProc()
		if p.Closure == nil {
			return "", fmt.Errorf("store: cannot persist a native procedure")
		}
		return fmt.Sprintf("(lambda (%s) %s)", strings.Join(p.Closure.Params, " "), p.Closure.Body), nil
	default:
		return "", fmt.Errorf("store: cannot persist a userdata value")
	}
}

// quoteString renders s as a tinyeval string literal, escaping the
// backslash and quote bytes the reader's unescape step treats specially.
func quoteString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		if s[i] == '"' || s[i] == '\\' {
			b.WriteByte('\\')
		}
		b.WriteByte(s[i])
	}
	b.WriteByte('"')
	return b.String()
}
