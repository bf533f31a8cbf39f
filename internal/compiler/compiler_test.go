package compiler

import (
	"bytes"
	"strings"
	"testing"

	"lumen/internal/vm"
)

// run compiles and executes source against a fresh VM, returning
// (stdout, result).
func run(src string) (string, vm.InterpretResult) {
	v := vm.New()
	var out bytes.Buffer
	v.Stdout = &out
	v.Stderr = &out
	result := v.Interpret(Engine{}, src)
	return out.String(), result
}

func TestArithmeticPrint(t *testing.T) {
	out, result := run("print 1 + 2;")
	if result != vm.ResultOK {
		t.Fatalf("result = %v, output = %q", result, out)
	}
	if out != "3\n" {
		t.Errorf("output = %q, want %q", out, "3\n")
	}
}

func TestStringInterningIdentity(t *testing.T) {
	out, result := run(`var a = "hi"; var b = "hi"; print a == b;`)
	if result != vm.ResultOK {
		t.Fatalf("result = %v, output = %q", result, out)
	}
	if out != "true\n" {
		t.Errorf("output = %q, want %q", out, "true\n")
	}
}

func TestClosureCounter(t *testing.T) {
	src := `
	fun make() {
		var n = 0;
		fun inc() {
			n = n + 1;
			return n;
		}
		return inc;
	}
	var counter = make();
	print counter();
	print counter();
	print counter();
	`
	out, result := run(src)
	if result != vm.ResultOK {
		t.Fatalf("result = %v, output = %q", result, out)
	}
	if out != "1\n2\n3\n" {
		t.Errorf("output = %q, want %q", out, "1\n2\n3\n")
	}
}

func TestClassInheritanceAndInitializer(t *testing.T) {
	src := `
	class A {
		greet() {
			return "hi from A";
		}
	}
	class B < A {}
	print B().greet();

	class P {
		init(n) {
			this.n = n;
		}
	}
	print P(7).n;
	`
	out, result := run(src)
	if result != vm.ResultOK {
		t.Fatalf("result = %v, output = %q", result, out)
	}
	want := "hi from A\n7\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestSuperInvoke(t *testing.T) {
	src := `
	class A {
		method() {
			return "A";
		}
	}
	class B < A {
		method() {
			return super.method() + "B";
		}
	}
	print B().method();
	`
	out, result := run(src)
	if result != vm.ResultOK {
		t.Fatalf("result = %v, output = %q", result, out)
	}
	if out != "AB\n" {
		t.Errorf("output = %q, want %q", out, "AB\n")
	}
}

func TestWhileLoopPrintsSequence(t *testing.T) {
	src := `
	var i = 0;
	while (i < 3) {
		print i;
		i = i + 1;
	}
	`
	out, result := run(src)
	if result != vm.ResultOK {
		t.Fatalf("result = %v, output = %q", result, out)
	}
	if out != "0\n1\n2\n" {
		t.Errorf("output = %q, want %q", out, "0\n1\n2\n")
	}
}

func TestForLoopDesugaring(t *testing.T) {
	src := `
	for (var i = 0; i < 3; i = i + 1) {
		print i;
	}
	`
	out, result := run(src)
	if result != vm.ResultOK {
		t.Fatalf("result = %v, output = %q", result, out)
	}
	if out != "0\n1\n2\n" {
		t.Errorf("output = %q, want %q", out, "0\n1\n2\n")
	}
}

func TestAndOrShortCircuit(t *testing.T) {
	out, result := run(`print false and (1/0 == 1); print true or (1/0 == 1);`)
	if result != vm.ResultOK {
		t.Fatalf("result = %v, output = %q", result, out)
	}
	if out != "false\ntrue\n" {
		t.Errorf("output = %q, want %q", out, "false\ntrue\n")
	}
}

func TestModuloOperator(t *testing.T) {
	out, result := run(`print 10 % 3;`)
	if result != vm.ResultOK {
		t.Fatalf("result = %v, output = %q", result, out)
	}
	if out != "1\n" {
		t.Errorf("output = %q, want %q", out, "1\n")
	}
}

func TestReadLocalInOwnInitializerIsCompileError(t *testing.T) {
	_, result := run(`{ var a = a; }`)
	if result != vm.ResultCompileError {
		t.Errorf("result = %v, want ResultCompileError", result)
	}
}

func TestDuplicateLocalIsCompileError(t *testing.T) {
	_, result := run(`{ var a = 1; var a = 2; }`)
	if result != vm.ResultCompileError {
		t.Errorf("result = %v, want ResultCompileError", result)
	}
}

func TestReturnOutsideFunctionIsCompileError(t *testing.T) {
	_, result := run(`return 1;`)
	if result != vm.ResultCompileError {
		t.Errorf("result = %v, want ResultCompileError", result)
	}
}

func TestInitializerReturningValueIsCompileError(t *testing.T) {
	src := `
	class A {
		init() {
			return 1;
		}
	}
	`
	_, result := run(src)
	if result != vm.ResultCompileError {
		t.Errorf("result = %v, want ResultCompileError", result)
	}
}

func TestSelfInheritanceIsCompileError(t *testing.T) {
	_, result := run(`class A < A {}`)
	if result != vm.ResultCompileError {
		t.Errorf("result = %v, want ResultCompileError", result)
	}
}

func TestTooManyArgumentsIsCompileError(t *testing.T) {
	var b strings.Builder
	b.WriteString("fun f() {}\nf(")
	for i := 0; i < 256; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("1")
	}
	b.WriteString(");\n")

	_, result := run(b.String())
	if result != vm.ResultCompileError {
		t.Errorf("result = %v, want ResultCompileError", result)
	}
}

func TestWrongArityIsRuntimeError(t *testing.T) {
	_, result := run(`fun f(a, b) { return a + b; } f(1);`)
	if result != vm.ResultRuntimeError {
		t.Errorf("result = %v, want ResultRuntimeError", result)
	}
}

func TestCallingNonCallableIsRuntimeError(t *testing.T) {
	_, result := run(`var x = 1; x();`)
	if result != vm.ResultRuntimeError {
		t.Errorf("result = %v, want ResultRuntimeError", result)
	}
}

func TestPropertyOnNonInstanceIsRuntimeError(t *testing.T) {
	_, result := run(`var x = 1; print x.field;`)
	if result != vm.ResultRuntimeError {
		t.Errorf("result = %v, want ResultRuntimeError", result)
	}
}

func TestInheritingFromNonClassIsRuntimeError(t *testing.T) {
	_, result := run(`var x = 1; class B < x {}`)
	if result != vm.ResultRuntimeError {
		t.Errorf("result = %v, want ResultRuntimeError", result)
	}
}

func TestUndefinedGlobalIsRuntimeError(t *testing.T) {
	_, result := run(`print nope;`)
	if result != vm.ResultRuntimeError {
		t.Errorf("result = %v, want ResultRuntimeError", result)
	}
}
