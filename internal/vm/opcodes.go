package vm

// OpCode identifies a single bytecode instruction (§4.6).
type OpCode byte

const (
	OpConstant OpCode = iota
	OpNil
	OpTrue
	OpFalse

	OpNegate
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
	OpModulo

	OpNot
	OpEqual
	OpLess
	OpGreater

	OpPop

	OpDefineGlobal
	OpGetGlobal
	OpSetGlobal
	OpGetLocal
	OpSetLocal
	OpGetUpvalue
	OpSetUpvalue
	OpCloseUpvalue

	OpJump
	OpJumpIfFalse
	OpLoop

	OpClosure
	OpCall
	OpReturn

	OpClass
	OpMethod
	OpInherit
	OpGetProperty
	OpSetProperty
	OpGetSuper
	OpInvoke
	OpSuperInvoke

	OpPrint
)

// Name returns the disassembler-facing mnemonic for op.
func (op OpCode) Name() string {
	switch op {
	case OpConstant:
		return "OP_CONSTANT"
	case OpNil:
		return "OP_NIL"
	case OpTrue:
		return "OP_TRUE"
	case OpFalse:
		return "OP_FALSE"
	case OpNegate:
		return "OP_NEGATE"
	case OpAdd:
		return "OP_ADD"
	case OpSubtract:
		return "OP_SUBTRACT"
	case OpMultiply:
		return "OP_MULTIPLY"
	case OpDivide:
		return "OP_DIVIDE"
	case OpModulo:
		return "OP_MODULO"
	case OpNot:
		return "OP_NOT"
	case OpEqual:
		return "OP_EQUAL"
	case OpLess:
		return "OP_LESS"
	case OpGreater:
		return "OP_GREATER"
	case OpPop:
		return "OP_POP"
	case OpDefineGlobal:
		return "OP_DEFINE_GLOBAL"
	case OpGetGlobal:
		return "OP_GET_GLOBAL"
	case OpSetGlobal:
		return "OP_SET_GLOBAL"
	case OpGetLocal:
		return "OP_GET_LOCAL"
	case OpSetLocal:
		return "OP_SET_LOCAL"
	case OpGetUpvalue:
		return "OP_GET_UPVALUE"
	case OpSetUpvalue:
		return "OP_SET_UPVALUE"
	case OpCloseUpvalue:
		return "OP_CLOSE_UPVALUE"
	case OpJump:
		return "OP_JUMP"
	case OpJumpIfFalse:
		return "OP_JUMP_IF_FALSE"
	case OpLoop:
		return "OP_LOOP"
	case OpClosure:
		return "OP_CLOSURE"
	case OpCall:
		return "OP_CALL"
	case OpReturn:
		return "OP_RETURN"
	case OpClass:
		return "OP_CLASS"
	case OpMethod:
		return "OP_METHOD"
	case OpInherit:
		return "OP_INHERIT"
	case OpGetProperty:
		return "OP_GET_PROPERTY"
	case OpSetProperty:
		return "OP_SET_PROPERTY"
	case OpGetSuper:
		return "OP_GET_SUPER"
	case OpInvoke:
		return "OP_INVOKE"
	case OpSuperInvoke:
		return "OP_SUPER_INVOKE"
	case OpPrint:
		return "OP_PRINT"
	default:
		return "OP_UNKNOWN"
	}
}
