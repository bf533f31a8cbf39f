package vm

import "fmt"

// ValueKind identifies which variant of the tagged Value union is active.
type ValueKind uint8

const (
	// VKNil represents the nil value.
	VKNil ValueKind = iota
	// VKBool represents a boolean value.
	VKBool
	// VKNumber represents an IEEE-754 double.
	VKNumber
	// VKObject represents a reference to a heap-allocated Object.
	VKObject
)

// String returns a human-readable name for the value kind.
func (k ValueKind) String() string {
	switch k {
	case VKNil:
		return "nil"
	case VKBool:
		return "bool"
	case VKNumber:
		return "number"
	case VKObject:
		return "object"
	default:
		return fmt.Sprintf("ValueKind(%d)", k)
	}
}

// Value is the tagged sum described by the data model: nil, bool, number,
// or a reference to a heap object. Values are passed and stored by copy;
// the Obj field is the only variant that carries heap identity.
type Value struct {
	Kind ValueKind
	Bool bool
	Num  float64
	Obj  *Object
}

// Nil is the canonical nil value.
var Nil = Value{Kind: VKNil}

// MakeBool constructs a boolean Value.
func MakeBool(b bool) Value {
	return Value{Kind: VKBool, Bool: b}
}

// MakeNumber constructs a numeric Value.
func MakeNumber(n float64) Value {
	return Value{Kind: VKNumber, Num: n}
}

// MakeObject constructs a Value referencing a heap Object.
func MakeObject(o *Object) Value {
	return Value{Kind: VKObject, Obj: o}
}

// IsNil reports whether v is the nil value.
func (v Value) IsNil() bool {
	return v.Kind == VKNil
}

// IsFalsey implements the language's falsiness rule: only nil and false
// are falsey, everything else (including 0 and "") is truthy.
func (v Value) IsFalsey() bool {
	switch v.Kind {
	case VKNil:
		return true
	case VKBool:
		return !v.Bool
	default:
		return false
	}
}

// IsString reports whether v holds a String object.
func (v Value) IsString() bool {
	return v.Kind == VKObject && v.Obj != nil && v.Obj.Kind == ObjString
}

// AsString returns the underlying Go string of a String-valued Value. It
// panics if v is not a string; callers must check IsString first.
func (v Value) AsString() string {
	return v.Obj.Str
}

// Equal implements value equality per the data model: same variant
// required; numbers compare with Go's ==  (so NaN != NaN); objects compare
// by identity, which is sufficient for interned strings too.
func Equal(a, b Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case VKNil:
		return true
	case VKBool:
		return a.Bool == b.Bool
	case VKNumber:
		return a.Num == b.Num
	case VKObject:
		return a.Obj == b.Obj
	default:
		return false
	}
}

// Print renders v the way the PRINT opcode and REPL echo it: numbers use a
// %g-equivalent format, booleans/nil print their keywords, and objects
// delegate to their own printer.
func Print(v Value) string {
	switch v.Kind {
	case VKNil:
		return "nil"
	case VKBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case VKNumber:
		return formatNumber(v.Num)
	case VKObject:
		return v.Obj.String()
	default:
		return "<invalid>"
	}
}

func formatNumber(n float64) string {
	return fmt.Sprintf("%g", n)
}
