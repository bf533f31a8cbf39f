package token

import "testing"

func TestLookupKeyword(t *testing.T) {
	cases := []struct {
		ident string
		want  Kind
		ok    bool
	}{
		{"class", Class, true},
		{"while", While, true},
		{"nil", Nil, true},
		{"Class", Invalid, false}, // case-sensitive
		{"classify", Invalid, false},
		{"", Invalid, false},
	}
	for _, c := range cases {
		got, ok := LookupKeyword(c.ident)
		if ok != c.ok {
			t.Errorf("LookupKeyword(%q) ok=%v, want %v", c.ident, ok, c.ok)
			continue
		}
		if ok && got != c.want {
			t.Errorf("LookupKeyword(%q) = %v, want %v", c.ident, got, c.want)
		}
	}
}

func TestKindString(t *testing.T) {
	if Class.String() != "class" {
		t.Errorf("Class.String() = %q, want class", Class.String())
	}
	if EOF.String() != "EOF" {
		t.Errorf("EOF.String() = %q, want EOF", EOF.String())
	}
}
