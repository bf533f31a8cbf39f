package vm

import "fmt"

// ObjectKind identifies which variant of the heap object union is active.
type ObjectKind uint8

const (
	// ObjString is an interned, immutable byte string.
	ObjString ObjectKind = iota
	// ObjFunction is a compiled function body.
	ObjFunction
	// ObjClosure pairs a Function with captured upvalues.
	ObjClosure
	// ObjUpvalue is a captured-variable cell, open or closed.
	ObjUpvalue
	// ObjClass is a class with a method table.
	ObjClass
	// ObjInstance is an instance of a Class with a field table.
	ObjInstance
	// ObjBoundMethod binds a receiver Value to a Closure.
	ObjBoundMethod
	// ObjNative is a VM-provided function.
	ObjNative
)

func (k ObjectKind) String() string {
	switch k {
	case ObjString:
		return "string"
	case ObjFunction:
		return "function"
	case ObjClosure:
		return "closure"
	case ObjUpvalue:
		return "upvalue"
	case ObjClass:
		return "class"
	case ObjInstance:
		return "instance"
	case ObjBoundMethod:
		return "bound method"
	case ObjNative:
		return "native"
	default:
		return fmt.Sprintf("ObjectKind(%d)", k)
	}
}

// NativeFn is the native function ABI (spec §6): it receives the
// arguments pushed for the call and returns the result Value.
type NativeFn func(args []Value) (Value, error)

// Object is every heap object's common header plus per-variant payload.
// All live objects are linked into the VM's intrusive list via Next; that
// list is the only authoritative heap enumeration, used by Sweep.
//
// A type-tag switch (rather than a Go interface per variant) is used
// throughout the hot paths — mark, blacken, print — to keep object
// dispatch a single flat switch instead of a dynamic interface call.
type Object struct {
	Kind   ObjectKind
	Marked bool
	Next   *Object

	// ObjString
	Str  string
	Hash uint32

	// ObjFunction
	Arity       int
	UpvalueCnt  int
	Chunk       *Chunk
	Name        *Object // *Object of Kind ObjString, or nil for the top-level script

	// ObjClosure
	Function *Object   // *Object of Kind ObjFunction
	Upvalues []*Object // each *Object of Kind ObjUpvalue

	// ObjUpvalue
	Location  *Value  // points into a live stack slot while open, or at Closed once closed
	SlotIndex int      // stack index Location refers to while open; used only to order the open list
	Closed    Value    // owned storage once closed
	nextOpen  *Object  // next node in the VM's open-upvalues list

	// ObjClass
	Methods *Table // name (ObjString) -> Value (ObjClosure)

	// ObjInstance
	Class  *Object // *Object of Kind ObjClass
	Fields *Table

	// ObjBoundMethod
	Receiver Value
	Method   *Object // *Object of Kind ObjClosure

	// ObjNative
	Native NativeFn

	// size is the payload size counted against bytes_allocated; recorded
	// at allocation time since variants shrink/grow differently.
	size int
}

// String renders o the way PRINT displays heap values.
func (o *Object) String() string {
	switch o.Kind {
	case ObjString:
		return o.Str
	case ObjFunction:
		if o.Name == nil {
			return "<script>"
		}
		return fmt.Sprintf("<fn %s>", o.Name.Str)
	case ObjClosure:
		return o.Function.String()
	case ObjUpvalue:
		return "<upvalue>"
	case ObjClass:
		return o.Name.Str
	case ObjInstance:
		return fmt.Sprintf("%s instance", o.Class.Name.Str)
	case ObjBoundMethod:
		return o.Method.Function.String()
	case ObjNative:
		return "<native fn>"
	default:
		return "<object>"
	}
}
