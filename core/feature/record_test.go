package feature

import (
	"testing"
	"time"

	riverrors "github.com/Bantey17/river/pkg/errors"
)

func TestRecordCloneIsolation(t *testing.T) {
	r := Record{"a": Num(1), "b": Str("x")}
	c := r.Clone()
	c.Set("a", Num(99))
	c.Set("c", Bool(true))

	if v, _ := r.Float("a"); v != 1 {
		t.Errorf("original mutated through clone: a = %v", v)
	}
	if _, ok := r.Get("c"); ok {
		t.Error("key added to clone leaked into original")
	}
}

func TestRecordFloat(t *testing.T) {
	r := Record{
		"num":  Num(2.5),
		"flag": Bool(true),
		"name": Str("abc"),
	}

	if v, ok := r.Float("num"); !ok || v != 2.5 {
		t.Errorf("Float(num) = %v, %v", v, ok)
	}
	// Booleans coerce to 0/1 so they can feed numeric models directly.
	if v, ok := r.Float("flag"); !ok || v != 1 {
		t.Errorf("Float(flag) = %v, %v", v, ok)
	}
	if _, ok := r.Float("name"); ok {
		t.Error("Float(name) should fail for string values")
	}
	if _, ok := r.Float("missing"); ok {
		t.Error("Float(missing) should fail")
	}
}

func TestRecordKeysSorted(t *testing.T) {
	r := Record{"c": Num(3), "a": Num(1), "b": Num(2)}
	keys := r.Keys()
	want := []string{"a", "b", "c"}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("Keys() = %v, want %v", keys, want)
		}
	}
}

func TestRecordMerge(t *testing.T) {
	r := Record{"a": Num(1)}
	if err := r.Merge(Record{"b": Num(2), "c": Num(3)}); err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	if len(r) != 3 {
		t.Errorf("merged record has %d keys, want 3", len(r))
	}
}

func TestRecordMergeCollision(t *testing.T) {
	r := Record{"a": Num(1), "b": Num(2)}
	err := r.Merge(Record{"b": Num(99), "c": Num(3)})
	if err == nil {
		t.Fatal("expected collision error")
	}
	var cfgErr *riverrors.ConfigurationError
	if !riverrors.As(err, &cfgErr) {
		t.Fatalf("error type = %T, want *ConfigurationError", err)
	}

	// The failed merge must leave the receiver untouched.
	if v, _ := r.Float("b"); v != 2 {
		t.Errorf("b = %v after failed merge, want 2", v)
	}
	if _, ok := r.Get("c"); ok {
		t.Error("c was inserted despite the merge failing")
	}
}

func TestRecordEqual(t *testing.T) {
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	a := Record{"x": Num(1), "s": Str("hi"), "t": Time(ts)}
	b := Record{"x": Num(1), "s": Str("hi"), "t": Time(ts)}
	if !a.Equal(b) {
		t.Error("identical records reported unequal")
	}

	b.Set("x", Num(2))
	if a.Equal(b) {
		t.Error("records with differing values reported equal")
	}
	if a.Equal(Record{"x": Num(1)}) {
		t.Error("records with differing key sets reported equal")
	}
}

func TestRecordString(t *testing.T) {
	r := Record{"b": Str("x"), "a": Num(1)}
	if got := r.String(); got != "{a: 1, b: x}" {
		t.Errorf("String() = %q", got)
	}
}

func TestValueKinds(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		kind Kind
		str  string
	}{
		{"numeric", Num(3.14), KindNumeric, "3.14"},
		{"integer-valued", Num(7), KindNumeric, "7"},
		{"string", Str("hello"), KindString, "hello"},
		{"bool", Bool(true), KindBool, "true"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.v.Kind() != tt.kind {
				t.Errorf("Kind() = %v, want %v", tt.v.Kind(), tt.kind)
			}
			if tt.v.String() != tt.str {
				t.Errorf("String() = %q, want %q", tt.v.String(), tt.str)
			}
		})
	}
}

func TestValueFloatCoercion(t *testing.T) {
	if v, ok := Bool(false).Float(); !ok || v != 0 {
		t.Errorf("Bool(false).Float() = %v, %v", v, ok)
	}
	if _, ok := Str("1.5").Float(); ok {
		t.Error("string values must not coerce to float implicitly")
	}
	if _, ok := Time(time.Now()).Float(); ok {
		t.Error("time values must not coerce to float")
	}
}
