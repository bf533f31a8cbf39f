package vm

// CallFrame is a per-invocation activation record: the executing
// closure, an instruction pointer into that closure's function's chunk,
// and the base slot of this call's window into the shared value stack
// (§4.4).
type CallFrame struct {
	closure *Object // *Object of Kind ObjClosure
	ip      int
	base    int
}

// MaxFrames is the call-frame depth limit (§6 identifier limits).
const MaxFrames = 64

// MaxStack is the value stack's fixed capacity (§4.4: "at least 64*256").
const MaxStack = MaxFrames * 256
