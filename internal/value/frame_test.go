package value

import "testing"

func TestFrameDefineAndFind(t *testing.T) {
	f := NewFrame(nil)
	f.Define("x", NewInteger(1))
	got, ok := f.Find("x")
	if !ok || got.AsInteger() != 1 {
		t.Fatalf("Find(x) = %v, %v, want 1, true", got, ok)
	}

	// Re-defining replaces rather than shadowing.
	f.Define("x", NewInteger(2))
	got, ok = f.Find("x")
	if !ok || got.AsInteger() != 2 {
		t.Fatalf("Find(x) after redefine = %v, %v, want 2, true", got, ok)
	}
}

func TestFrameCaseInsensitive(t *testing.T) {
	f := NewFrame(nil)
	f.Define("Foo", NewInteger(1))
	if _, ok := f.Find("foo"); !ok {
		t.Fatalf("Find should be case-insensitive")
	}
	if _, ok := f.Find("FOO"); !ok {
		t.Fatalf("Find should be case-insensitive")
	}
}

func TestFrameParentChain(t *testing.T) {
	parent := NewFrame(nil)
	parent.Define("x", NewInteger(10))
	child := NewFrame(parent)

	got, ok := child.Find("x")
	if !ok || got.AsInteger() != 10 {
		t.Fatalf("child should resolve x through parent, got %v, %v", got, ok)
	}

	child.Define("x", NewInteger(20))
	if got, _ := child.Find("x"); got.AsInteger() != 20 {
		t.Fatalf("child's own binding should shadow parent's")
	}
	if got, _ := parent.Find("x"); got.AsInteger() != 10 {
		t.Fatalf("defining in child must not affect parent, got %v", got.AsInteger())
	}
}

func TestFrameUnresolved(t *testing.T) {
	f := NewFrame(nil)
	if _, ok := f.Find("nope"); ok {
		t.Fatalf("Find of an unbound name should report ok=false")
	}
}

func TestFrameDoubleReleasePanics(t *testing.T) {
	f := NewFrame(nil)
	ReleaseFrame(f)
	defer func() {
		if recover() == nil {
			t.Fatal("second ReleaseFrame should panic")
		}
	}()
	ReleaseFrame(f)
}
