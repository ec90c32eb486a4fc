package value

import (
	"strings"
	"sync/atomic"
)

type binding struct {
	name  string
	value *Value
}

// Frame is one level of the lexical environment chain: an ordered list of
// name/value bindings plus a link to an enclosing (parent) frame. Frames
// are reference-counted like Values because a closure keeps its captured
// frame alive for the lifetime of the closure, independent of whether the
// frame that created it is still the evaluator's current frame.
type Frame struct {
	parent   *Frame
	bindings []binding
	refcount int32
}

// NewFrame allocates a fresh frame parented to parent (nil for the global
// frame).
func NewFrame(parent *Frame) *Frame {
	return &Frame{parent: parent, refcount: 1}
}

// RetainFrame increments f's refcount and returns f.
func RetainFrame(f *Frame) *Frame {
	if f == nil {
		return nil
	}
	atomic.AddInt32(&f.refcount, 1)
	return f
}

// ReleaseFrame decrements f's refcount, releasing every binding's value
// once it reaches zero. It does not recursively release f.parent: a frame
// references its parent but does not own it (the parent has its own
// independent owners — the evaluator's frame stack, or another closure). A
// release past zero is a caller bug and panics, matching Value's Release.
func ReleaseFrame(f *Frame) {
	if f == nil {
		return
	}
	switch n := atomic.AddInt32(&f.refcount, -1); {
	case n == 0:
		for _, b := range f.bindings {
			Release(b.value)
		}
		f.bindings = nil
	case n < 0:
		panic("value: release of a frame with a zero refcount")
	}
}

func sameName(a, b string) bool {
	return strings.EqualFold(a, b)
}

// Find searches f newest-binding-first, then follows the parent link,
// returning the first match. Name comparison is case-insensitive.
func (f *Frame) Find(name string) (*Value, bool) {
	for cur := f; cur != nil; cur = cur.parent {
		for i := len(cur.bindings) - 1; i >= 0; i-- {
			if sameName(cur.bindings[i].name, name) {
				return cur.bindings[i].value, true
			}
		}
	}
	return nil, false
}

// Define installs v under name in f: if f already binds name, the old
// value is released and replaced; otherwise the binding is appended. This
// single method implements both "define-global" and "define-local" from
// the environment design — the distinction is entirely which frame the
// evaluator calls Define on, not a difference in behavior.
func (f *Frame) Define(name string, v *Value) {
	for i := range f.bindings {
		if sameName(f.bindings[i].name, name) {
			old := f.bindings[i].value
			f.bindings[i].value = v
			Release(old)
			return
		}
	}
	f.bindings = append(f.bindings, binding{name: name, value: v})
}

// Names returns the bindings currently defined directly in f, oldest
// first. Used by the evaluator's Close to walk the global bindings and by
// the host API's Global to list them.
func (f *Frame) Names() []string {
	names := make([]string, len(f.bindings))
	for i, b := range f.bindings {
		names[i] = b.name
	}
	return names
}
