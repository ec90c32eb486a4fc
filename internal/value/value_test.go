package value

import "testing"

func TestConstructAndAccessors(t *testing.T) {
	if k := NewInteger(7).Kind(); k != Integer {
		t.Errorf("Kind() = %v, want Integer", k)
	}
	if n := NewInteger(7).AsInteger(); n != 7 {
		t.Errorf("AsInteger() = %d, want 7", n)
	}
	// Accessors never panic on a type mismatch; they return a zero value.
	if n := NewString("x").AsInteger(); n != 0 {
		t.Errorf("AsInteger() on a String = %d, want 0", n)
	}
	if s := NewInteger(7).AsString(); s != "" {
		t.Errorf("AsString() on an Integer = %q, want \"\"", s)
	}
	if (*Value)(nil).Kind() != Nil {
		t.Errorf("Kind() of a nil handle should be Nil")
	}
}

func TestDisplay(t *testing.T) {
	cases := []struct {
		v    *Value
		want string
	}{
		{NewNil(), "#!unspecific"},
		{NewBoolean(true), "#t"},
		{NewBoolean(false), "#f"},
		{NewInteger(42), "42"},
		{NewNumber(2.25), "2.25"},
		{NewString("hi"), "hi"},
		{NewUserdata(nil), "#[user-data]"},
	}
	for _, c := range cases {
		if got := c.v.Display(); got != c.want {
			t.Errorf("Display() = %q, want %q", got, c.want)
		}
	}
}

func TestRetainReleaseBalance(t *testing.T) {
	v := NewInteger(1)
	if v.refcount != 1 {
		t.Fatalf("fresh value refcount = %d, want 1", v.refcount)
	}
	Retain(v)
	if v.refcount != 2 {
		t.Fatalf("after Retain refcount = %d, want 2", v.refcount)
	}
	Release(v)
	if v.refcount != 1 {
		t.Fatalf("after Release refcount = %d, want 1", v.refcount)
	}
}

func TestDoubleReleasePanics(t *testing.T) {
	v := NewInteger(1)
	Release(v)
	defer func() {
		if recover() == nil {
			t.Fatal("second Release should panic")
		}
	}()
	Release(v)
}

func TestClosureRetainsEnv(t *testing.T) {
	env := NewFrame(nil)
	if env.refcount != 1 {
		t.Fatalf("fresh frame refcount = %d, want 1", env.refcount)
	}
	clo := NewClosure([]string{"x"}, "x", env)
	if env.refcount != 2 {
		t.Fatalf("frame refcount after capture = %d, want 2", env.refcount)
	}
	Release(clo)
	if env.refcount != 1 {
		t.Fatalf("frame refcount after closure release = %d, want 1", env.refcount)
	}
}
