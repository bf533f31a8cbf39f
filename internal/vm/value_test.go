package vm

import "testing"

func TestIsFalsey(t *testing.T) {
	cases := []struct {
		v    Value
		want bool
	}{
		{Nil, true},
		{MakeBool(false), true},
		{MakeBool(true), false},
		{MakeNumber(0), false},
		{MakeNumber(1), false},
	}
	for _, c := range cases {
		if got := c.v.IsFalsey(); got != c.want {
			t.Errorf("IsFalsey(%v) = %v, want %v", c.v, got, c.want)
		}
	}
}

func TestEqualNumberNaN(t *testing.T) {
	nan := MakeNumber(nanValue())
	if Equal(nan, nan) {
		t.Error("NaN should not equal itself")
	}
}

func nanValue() float64 {
	var zero float64
	return zero / zero
}

func TestEqualObjectIdentity(t *testing.T) {
	h := NewHeap(nil)
	a := h.InternString("hi")
	b := h.InternString("hi")
	if a != b {
		t.Fatal("interning the same content twice should return the same object")
	}
	if !Equal(MakeObject(a), MakeObject(b)) {
		t.Error("interned strings with equal content should be value-equal")
	}
}

func TestPrintFormatsNumbersBoolsNil(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{Nil, "nil"},
		{MakeBool(true), "true"},
		{MakeBool(false), "false"},
		{MakeNumber(3), "3"},
		{MakeNumber(3.5), "3.5"},
	}
	for _, c := range cases {
		if got := Print(c.v); got != c.want {
			t.Errorf("Print(%v) = %q, want %q", c.v, got, c.want)
		}
	}
}
