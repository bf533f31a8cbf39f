package vm

import "fmt"

// callValue dispatches CALL's callee: closures push a new frame,
// bound methods rebind the receiver into slot 0, classes construct (and
// run `init` if present), natives run immediately. Anything else is a
// runtime error (§4.6: "non-callable target in CALL").
func (vm *VM) callValue(callee Value, argCount int) error {
	frame := vm.currentFrame()
	if callee.Kind != VKObject {
		return vm.runtimeError(frame, "Can only call functions and classes.")
	}
	switch callee.Obj.Kind {
	case ObjClosure:
		return vm.call(callee.Obj, argCount)
	case ObjBoundMethod:
		bound := callee.Obj
		vm.stack[vm.stackTop-argCount-1] = bound.Receiver
		return vm.call(bound.Method, argCount)
	case ObjClass:
		class := callee.Obj
		instance := vm.heap.newInstance(class)
		vm.stack[vm.stackTop-argCount-1] = MakeObject(instance)
		if initializer, ok := class.Methods.Get(vm.initString); ok {
			return vm.call(initializer.Obj, argCount)
		}
		if argCount != 0 {
			return vm.runtimeError(frame, "Expected 0 arguments but got %d.", argCount)
		}
		return nil
	case ObjNative:
		native := callee.Obj
		args := vm.stack[vm.stackTop-argCount : vm.stackTop]
		result, err := native.Native(args)
		if err != nil {
			return vm.runtimeError(frame, "%s", err.Error())
		}
		vm.stackTop -= argCount + 1
		vm.push(result)
		return nil
	default:
		return vm.runtimeError(frame, "Can only call functions and classes.")
	}
}

// call verifies arity and pushes a new call frame for closure, failing
// on arity mismatch or call-stack overflow (§4.4).
func (vm *VM) call(closure *Object, argCount int) error {
	fn := closure.Function
	if argCount != fn.Arity {
		return vm.runtimeError(vm.currentFrame(), "Expected %d arguments but got %d.", fn.Arity, argCount)
	}
	if vm.frameCount == MaxFrames {
		return vm.runtimeError(vm.currentFrame(), "Stack overflow.")
	}
	vm.frames[vm.frameCount] = CallFrame{
		closure: closure,
		ip:      0,
		base:    vm.stackTop - argCount - 1,
	}
	vm.frameCount++
	return nil
}

// invoke fuses GET_PROPERTY + CALL: it checks field shadowing first (a
// field holding a callable value takes precedence over a method of the
// same name), then falls back to method lookup on the receiver's class
// (§4.6).
func (vm *VM) invoke(name *Object, argCount int) error {
	receiver := vm.peek(argCount)
	if receiver.Kind != VKObject || receiver.Obj.Kind != ObjInstance {
		return vm.runtimeError(vm.currentFrame(), "Only instances have methods.")
	}
	instance := receiver.Obj
	if val, ok := instance.Fields.Get(name); ok {
		vm.stack[vm.stackTop-argCount-1] = val
		return vm.callValue(val, argCount)
	}
	return vm.invokeFromClass(instance.Class, name, argCount)
}

// invokeFromClass looks up name directly on class's method table and
// calls it without materializing an intermediate BoundMethod (used by
// invoke and by SUPER_INVOKE).
func (vm *VM) invokeFromClass(class *Object, name *Object, argCount int) error {
	method, ok := class.Methods.Get(name)
	if !ok {
		return vm.runtimeError(vm.currentFrame(), "Undefined property '%s'.", name.Str)
	}
	return vm.call(method.Obj, argCount)
}

// bindMethod looks up name on class and, on success, replaces the
// instance on top of the stack with a BoundMethod wrapping it and the
// receiver (§4.6 GET_PROPERTY / GET_SUPER).
func (vm *VM) bindMethod(class *Object, name *Object) error {
	method, ok := class.Methods.Get(name)
	if !ok {
		return vm.runtimeError(vm.currentFrame(), "Undefined property '%s'.", name.Str)
	}
	bound := vm.heap.newBoundMethod(vm.peek(0), method.Obj)
	vm.pop()
	vm.push(MakeObject(bound))
	return nil
}

// defineMethod pops a Closure off the stack and installs it in the
// method table of the class sitting just below it (§4.6 METHOD).
func (vm *VM) defineMethod(name *Object) {
	method := vm.peek(0)
	class := vm.peek(1).Obj
	class.Methods.Set(name, method)
	vm.pop()
}

func (vm *VM) currentFrame() *CallFrame {
	return &vm.frames[vm.frameCount-1]
}

// runtimeError builds a RuntimeError carrying both the offending message
// and a newest-first stack trace, per §4.6/§7: each frame's instruction
// pointer minus one is looked up in its chunk's line array.
func (vm *VM) runtimeError(frame *CallFrame, format string, args ...interface{}) error {
	message := fmt.Sprintf(format, args...)
	var trace string
	for i := vm.frameCount - 1; i >= 0; i-- {
		f := &vm.frames[i]
		fn := f.closure.Function
		line := fn.Chunk.Lines[f.ip-1]
		name := "script"
		if fn.Name != nil {
			name = fn.Name.Str + "()"
		}
		trace += fmt.Sprintf("[line %d] in %s\n", line, name)
	}
	return &RuntimeError{Message: message, Trace: trace}
}
