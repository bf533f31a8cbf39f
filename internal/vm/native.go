package vm

import "time"

// defineNatives registers the one built-in native the spec names (§1,
// §6): `clock`, returning seconds elapsed since the Unix epoch as a
// double, the same ABI as clox's ObjectNative.
func (vm *VM) defineNatives() {
	vm.defineNative("clock", func(args []Value) (Value, error) {
		return MakeNumber(float64(time.Now().UnixNano()) / 1e9), nil
	})
}

func (vm *VM) defineNative(name string, fn NativeFn) {
	nameObj := vm.heap.internString(name)
	native := vm.heap.newNative(fn)
	vm.push(MakeObject(nameObj))
	vm.push(MakeObject(native))
	nativeVal := vm.pop()
	nameVal := vm.pop()
	vm.globals.Set(nameVal.Obj, nativeVal)
}
