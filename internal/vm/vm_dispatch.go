package vm

import "fmt"

// run is the dispatch loop: a flat switch over the active frame's next
// opcode, reading operands inline per the widths in §4.6. The active
// frame is always frames[frameCount-1]; call/return swap it.
func (vm *VM) run() error {
	frame := &vm.frames[vm.frameCount-1]
	chunk := frame.closure.Function.Chunk

	readByte := func() byte {
		b := chunk.Code[frame.ip]
		frame.ip++
		return b
	}
	readShort := func() int {
		hi := chunk.Code[frame.ip]
		lo := chunk.Code[frame.ip+1]
		frame.ip += 2
		return int(hi)<<8 | int(lo)
	}
	readConstant := func() Value {
		return chunk.Constants[readByte()]
	}
	readString := func() *Object {
		return readConstant().Obj
	}

	for {
		op := OpCode(readByte())
		switch op {
		case OpConstant:
			vm.push(readConstant())

		case OpNil:
			vm.push(Nil)
		case OpTrue:
			vm.push(MakeBool(true))
		case OpFalse:
			vm.push(MakeBool(false))

		case OpPop:
			vm.pop()

		case OpGetLocal:
			slot := int(readByte())
			vm.push(vm.stack[frame.base+slot])
		case OpSetLocal:
			slot := int(readByte())
			vm.stack[frame.base+slot] = vm.peek(0)

		case OpGetUpvalue:
			slot := int(readByte())
			vm.push(*frame.closure.Upvalues[slot].Location)
		case OpSetUpvalue:
			slot := int(readByte())
			*frame.closure.Upvalues[slot].Location = vm.peek(0)

		case OpCloseUpvalue:
			vm.closeUpvalues(vm.stackTop - 1)
			vm.pop()

		case OpGetGlobal:
			name := readString()
			val, ok := vm.globals.Get(name)
			if !ok {
				return vm.runtimeError(frame, "Undefined variable '%s'.", name.Str)
			}
			vm.push(val)
		case OpDefineGlobal:
			name := readString()
			vm.globals.Set(name, vm.peek(0))
			vm.pop()
		case OpSetGlobal:
			name := readString()
			if vm.globals.Set(name, vm.peek(0)) {
				vm.globals.Delete(name)
				return vm.runtimeError(frame, "Undefined variable '%s'.", name.Str)
			}

		case OpEqual:
			b := vm.pop()
			a := vm.pop()
			vm.push(MakeBool(Equal(a, b)))
		case OpGreater:
			if err := vm.binaryNumberOp(frame, func(a, b float64) Value { return MakeBool(a > b) }); err != nil {
				return err
			}
		case OpLess:
			if err := vm.binaryNumberOp(frame, func(a, b float64) Value { return MakeBool(a < b) }); err != nil {
				return err
			}

		case OpAdd:
			if err := vm.add(frame); err != nil {
				return err
			}
		case OpSubtract:
			if err := vm.binaryNumberOp(frame, func(a, b float64) Value { return MakeNumber(a - b) }); err != nil {
				return err
			}
		case OpMultiply:
			if err := vm.binaryNumberOp(frame, func(a, b float64) Value { return MakeNumber(a * b) }); err != nil {
				return err
			}
		case OpDivide:
			if err := vm.binaryNumberOp(frame, func(a, b float64) Value { return MakeNumber(a / b) }); err != nil {
				return err
			}
		case OpModulo:
			if err := vm.modulo(frame); err != nil {
				return err
			}
		case OpNot:
			vm.push(MakeBool(vm.pop().IsFalsey()))
		case OpNegate:
			if vm.peek(0).Kind != VKNumber {
				return vm.runtimeError(frame, "Operand must be a number.")
			}
			vm.push(MakeNumber(-vm.pop().Num))

		case OpPrint:
			fmt.Fprintln(vm.Stdout, Print(vm.pop()))

		case OpJump:
			offset := readShort()
			frame.ip += offset
		case OpJumpIfFalse:
			offset := readShort()
			if vm.peek(0).IsFalsey() {
				frame.ip += offset
			}
		case OpLoop:
			offset := readShort()
			frame.ip -= offset

		case OpCall:
			argCount := int(readByte())
			if err := vm.callValue(vm.peek(argCount), argCount); err != nil {
				return err
			}
			frame = &vm.frames[vm.frameCount-1]
			chunk = frame.closure.Function.Chunk

		case OpInvoke:
			method := readString()
			argCount := int(readByte())
			if err := vm.invoke(method, argCount); err != nil {
				return err
			}
			frame = &vm.frames[vm.frameCount-1]
			chunk = frame.closure.Function.Chunk

		case OpSuperInvoke:
			method := readString()
			argCount := int(readByte())
			superclass := vm.pop().Obj
			if err := vm.invokeFromClass(superclass, method, argCount); err != nil {
				return err
			}
			frame = &vm.frames[vm.frameCount-1]
			chunk = frame.closure.Function.Chunk

		case OpClosure:
			fn := readConstant().Obj
			closure := vm.heap.newClosure(fn)
			vm.push(MakeObject(closure))
			for i := 0; i < fn.UpvalueCnt; i++ {
				isLocal := readByte()
				index := int(readByte())
				if isLocal != 0 {
					closure.Upvalues[i] = vm.captureUpvalue(frame.base + index)
				} else {
					closure.Upvalues[i] = frame.closure.Upvalues[index]
				}
			}

		case OpReturn:
			result := vm.pop()
			vm.closeUpvalues(frame.base)
			vm.frameCount--
			if vm.frameCount == 0 {
				vm.pop()
				return nil
			}
			vm.stackTop = frame.base
			vm.push(result)
			frame = &vm.frames[vm.frameCount-1]
			chunk = frame.closure.Function.Chunk

		case OpClass:
			name := readString()
			vm.push(MakeObject(vm.heap.newClass(name)))

		case OpInherit:
			superVal := vm.peek(1)
			if superVal.Kind != VKObject || superVal.Obj.Kind != ObjClass {
				return vm.runtimeError(frame, "Superclass must be a class.")
			}
			subclass := vm.peek(0).Obj
			superVal.Obj.Methods.Each(func(key *Object, val Value) {
				subclass.Methods.Set(key, val)
			})
			vm.pop()

		case OpMethod:
			name := readString()
			vm.defineMethod(name)

		case OpGetProperty:
			if vm.peek(0).Kind != VKObject || vm.peek(0).Obj.Kind != ObjInstance {
				return vm.runtimeError(frame, "Only instances have properties.")
			}
			instance := vm.peek(0).Obj
			name := readString()
			if val, ok := instance.Fields.Get(name); ok {
				vm.pop()
				vm.push(val)
				break
			}
			if err := vm.bindMethod(instance.Class, name); err != nil {
				return err
			}

		case OpSetProperty:
			if vm.peek(1).Kind != VKObject || vm.peek(1).Obj.Kind != ObjInstance {
				return vm.runtimeError(frame, "Only instances have fields.")
			}
			instance := vm.peek(1).Obj
			name := readString()
			instance.Fields.Set(name, vm.peek(0))
			val := vm.pop()
			vm.pop()
			vm.push(val)

		case OpGetSuper:
			name := readString()
			superclass := vm.pop().Obj
			if err := vm.bindMethod(superclass, name); err != nil {
				return err
			}

		default:
			return vm.runtimeError(frame, "Unknown opcode %d.", byte(op))
		}
	}
}

func (vm *VM) binaryNumberOp(frame *CallFrame, op func(a, b float64) Value) error {
	if vm.peek(0).Kind != VKNumber || vm.peek(1).Kind != VKNumber {
		return vm.runtimeError(frame, "Operands must be numbers.")
	}
	b := vm.pop().Num
	a := vm.pop().Num
	vm.push(op(a, b))
	return nil
}

func (vm *VM) modulo(frame *CallFrame) error {
	if vm.peek(0).Kind != VKNumber || vm.peek(1).Kind != VKNumber {
		return vm.runtimeError(frame, "Operands must be numbers.")
	}
	b := vm.pop().Num
	a := vm.pop().Num
	ib, ia := int64(b), int64(a)
	if ib == 0 {
		return vm.runtimeError(frame, "attempted modulo by zero")
	}
	vm.push(MakeNumber(float64(ia % ib)))
	return nil
}

func (vm *VM) add(frame *CallFrame) error {
	a, b := vm.peek(1), vm.peek(0)
	switch {
	case a.IsString() && b.IsString():
		// Both operands stay on the stack (and thus rooted) while the
		// concatenation allocates, per the hazard rule in §4.3; only
		// once the result has been pushed do the operands come off.
		result := vm.heap.internString(a.AsString() + b.AsString())
		vm.pop()
		vm.pop()
		vm.push(MakeObject(result))
	case a.Kind == VKNumber && b.Kind == VKNumber:
		vm.pop()
		vm.pop()
		vm.push(MakeNumber(a.Num + b.Num))
	default:
		return vm.runtimeError(frame, "Operands must be two numbers or two strings.")
	}
	return nil
}
