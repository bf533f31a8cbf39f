package vm

import (
	"bytes"
	"testing"
)

// runScript assembles fn's chunk by calling build, wraps it as the
// top-level script Function (arity 0, no name), and runs it. These
// tests exercise the dispatch loop directly, hand-assembling bytecode
// instead of compiling source through internal/compiler.
func runScript(t *testing.T, build func(vm *VM, fn *Object)) (*VM, string) {
	t.Helper()
	vm := New()
	var buf bytes.Buffer
	vm.Stdout = &buf
	vm.Stderr = &buf

	fn := vm.heap.newFunction()
	build(vm, fn)
	fn.Chunk.Write(byte(OpNil), 1)
	fn.Chunk.Write(byte(OpReturn), 1)

	closure := vm.heap.newClosure(fn)
	vm.push(MakeObject(closure))
	vm.frames[0] = CallFrame{closure: closure, ip: 0, base: 0}
	vm.frameCount = 1

	if err := vm.run(); err != nil {
		t.Fatalf("run() error: %v", err)
	}
	return vm, buf.String()
}

func TestArithmeticAddition(t *testing.T) {
	_, output := runScript(t, func(vm *VM, fn *Object) {
		c := fn.Chunk
		one, _ := c.AddConstant(vm, MakeNumber(1))
		two, _ := c.AddConstant(vm, MakeNumber(2))
		c.Write(byte(OpConstant), 1)
		c.Write(byte(one), 1)
		c.Write(byte(OpConstant), 1)
		c.Write(byte(two), 1)
		c.Write(byte(OpAdd), 1)
		c.Write(byte(OpPrint), 1)
	})
	if output != "3\n" {
		t.Errorf("output = %q, want %q", output, "3\n")
	}
}

func TestStringInterningEquality(t *testing.T) {
	_, output := runScript(t, func(vm *VM, fn *Object) {
		c := fn.Chunk
		hi1 := vm.heap.InternString("hi")
		hi2 := vm.heap.InternString("hi")
		c1, _ := c.AddConstant(vm, MakeObject(hi1))
		c2, _ := c.AddConstant(vm, MakeObject(hi2))
		c.Write(byte(OpConstant), 1)
		c.Write(byte(c1), 1)
		c.Write(byte(OpConstant), 1)
		c.Write(byte(c2), 1)
		c.Write(byte(OpEqual), 1)
		c.Write(byte(OpPrint), 1)
	})
	if output != "true\n" {
		t.Errorf("output = %q, want %q", output, "true\n")
	}
}

func TestModuloByZeroIsRuntimeError(t *testing.T) {
	vm := New()
	var buf bytes.Buffer
	vm.Stdout = &buf
	vm.Stderr = &buf

	fn := vm.heap.newFunction()
	c := fn.Chunk
	zero, _ := c.AddConstant(vm, MakeNumber(0))
	ten, _ := c.AddConstant(vm, MakeNumber(10))
	c.Write(byte(OpConstant), 1)
	c.Write(byte(ten), 1)
	c.Write(byte(OpConstant), 1)
	c.Write(byte(zero), 1)
	c.Write(byte(OpModulo), 1)
	c.Write(byte(OpReturn), 1)

	closure := vm.heap.newClosure(fn)
	vm.push(MakeObject(closure))
	vm.frames[0] = CallFrame{closure: closure, ip: 0, base: 0}
	vm.frameCount = 1

	err := vm.run()
	if err == nil {
		t.Fatal("expected a runtime error for modulo by zero")
	}
}

func TestUndefinedGlobalReadIsRuntimeError(t *testing.T) {
	vm := New()
	fn := vm.heap.newFunction()
	c := fn.Chunk
	name := vm.heap.InternString("nope")
	idx, _ := c.AddConstant(vm, MakeObject(name))
	c.Write(byte(OpGetGlobal), 1)
	c.Write(byte(idx), 1)
	c.Write(byte(OpReturn), 1)

	closure := vm.heap.newClosure(fn)
	vm.push(MakeObject(closure))
	vm.frames[0] = CallFrame{closure: closure, ip: 0, base: 0}
	vm.frameCount = 1

	if err := vm.run(); err == nil {
		t.Fatal("expected a runtime error reading an undefined global")
	}
}
