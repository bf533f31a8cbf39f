// Package compiler implements the single-pass Pratt compiler described
// in spec §4.5: tokens flow directly into bytecode, with no intervening
// AST. It is the sole producer of the bytecode internal/vm executes.
package compiler

import (
	"fmt"

	"lumen/internal/scanner"
	"lumen/internal/token"
	"lumen/internal/vm"
)

// FunctionType distinguishes the kind of body currently being compiled,
// since the implicit end-of-body return differs (§4.5 initializer rule).
type FunctionType int

const (
	typeFunction FunctionType = iota
	typeScript
	typeMethod
	typeInitializer
)

// Local is one slot in a function frame's fixed-size local array
// (§4.5). Depth -1 means declared but not yet initialized.
type Local struct {
	name       token.Token
	depth      int
	isCaptured bool
}

// upvalueRef is one entry of a function frame's upvalue array (§4.5).
type upvalueRef struct {
	index   int
	isLocal bool
}

const maxLocals = 256
const maxUpvalues = 256

// funcState is one frame of the compiler's enclosing chain — one per
// nested function body currently being compiled (§4.5).
type funcState struct {
	enclosing *funcState
	function  *vm.Object // *vm.Object of Kind ObjFunction
	fnType    FunctionType

	locals       [maxLocals]Local
	localCount   int
	upvalues     [maxUpvalues]upvalueRef
	upvalueCount int
	scopeDepth   int
}

// classState is one frame of the compiler's class-nesting chain, tracking
// whether the class being compiled has a superclass (so `super` resolves;
// §4.5).
type classState struct {
	enclosing      *classState
	hasSuperclass  bool
}

// Compiler holds all per-compilation state: the token stream, the
// current/previous tokens (a one-token lookahead, matching the scanner
// contract in spec §6), panic-mode error tracking, and the function and
// class nesting chains.
type Compiler struct {
	vm      *vm.VM
	scanner *scanner.Scanner

	current  token.Token
	previous token.Token

	hadError  bool
	panicMode bool
	errors    []vm.CompileError

	fc *funcState
	cc *classState
}

// Engine adapts the package's Compile function to vm.Compiler so
// cmd/lumen can pass it straight to vm.VM.Interpret.
type Engine struct{}

func (Engine) Compile(v *vm.VM, source string) (*vm.Object, []vm.CompileError, bool) {
	return Compile(v, source)
}

// Compile scans and compiles source into a top-level script Function,
// returning (nil, errors, false) if any compile error was reported
// (§7: interpret() returns COMPILE_ERROR and the VM is left clean).
func Compile(v *vm.VM, source string) (*vm.Object, []vm.CompileError, bool) {
	c := &Compiler{
		vm:      v,
		scanner: scanner.New(source),
	}
	c.fc = c.newFuncState(nil, typeScript)
	c.advance()

	for !c.check(token.EOF) {
		c.declaration()
	}

	fn := c.endFunction()
	if c.hadError {
		return nil, c.errors, false
	}
	return fn, c.errors, true
}

func (c *Compiler) newFuncState(enclosing *funcState, fnType FunctionType) *funcState {
	fn := c.vm.Heap().NewFunction()
	fs := &funcState{enclosing: enclosing, function: fn, fnType: fnType}

	// Slot 0 is reserved: `this` for a method, anonymous padding
	// otherwise (§4.5).
	fs.localCount = 1
	name := ""
	if fnType == typeMethod || fnType == typeInitializer {
		name = "this"
	}
	fs.locals[0] = Local{name: token.Token{Lexeme: name}, depth: 0}

	if fnType != typeScript {
		fn.Name = c.vm.Heap().InternString(c.previous.Lexeme)
	}

	c.vm.PushCompilingFunction(fn)
	return fs
}

// endFunction finalizes the current function frame: emits the implicit
// trailing return, pops it off the compiler's GC-rooting stack and the
// enclosing chain, and returns the finished Function.
func (c *Compiler) endFunction() *vm.Object {
	c.emitReturn()
	fn := c.fc.function
	fn.UpvalueCnt = c.fc.upvalueCount
	c.vm.PopCompilingFunction()
	c.fc = c.fc.enclosing
	return fn
}

// --- token stream -----------------------------------------------------

func (c *Compiler) advance() {
	c.previous = c.current
	for {
		c.current = c.scanner.ScanToken()
		if c.current.Kind != token.Error {
			break
		}
		c.errorAtCurrent(c.current.Lexeme)
	}
}

func (c *Compiler) check(k token.Kind) bool {
	return c.current.Kind == k
}

func (c *Compiler) match(k token.Kind) bool {
	if !c.check(k) {
		return false
	}
	c.advance()
	return true
}

func (c *Compiler) consume(k token.Kind, message string) {
	if c.current.Kind == k {
		c.advance()
		return
	}
	c.errorAtCurrent(message)
}

// --- error reporting (panic mode, §7) ---------------------------------

func (c *Compiler) errorAtCurrent(message string) {
	c.errorAt(c.current, message)
}

func (c *Compiler) error(message string) {
	c.errorAt(c.previous, message)
}

func (c *Compiler) errorAt(tok token.Token, message string) {
	if c.panicMode {
		return
	}
	c.panicMode = true
	c.hadError = true

	where := tok.Lexeme
	if tok.Kind == token.EOF {
		where = "end"
	}
	if tok.Kind == token.Error {
		where = ""
	}
	c.errors = append(c.errors, vm.CompileError{Line: tok.Line, Where: where, Message: message})
}

// synchronize recovers from panic mode at the next statement boundary:
// a semicolon, or a statement-introducing keyword (§7).
func (c *Compiler) synchronize() {
	c.panicMode = false
	for c.current.Kind != token.EOF {
		if c.previous.Kind == token.Semicolon {
			return
		}
		switch c.current.Kind {
		case token.Class, token.Fun, token.Var, token.For, token.If, token.While, token.Print, token.Return:
			return
		}
		c.advance()
	}
}

func (c *Compiler) currentChunk() *vm.Chunk {
	return c.fc.function.Chunk
}

// --- bytecode emission helpers -----------------------------------------

func (c *Compiler) emitByte(b byte) {
	c.currentChunk().Write(b, c.previous.Line)
}

func (c *Compiler) emitOp(op vm.OpCode) {
	c.emitByte(byte(op))
}

func (c *Compiler) emitOpByte(op vm.OpCode, operand byte) {
	c.emitOp(op)
	c.emitByte(operand)
}

func (c *Compiler) emitReturn() {
	if c.fc.fnType == typeInitializer {
		c.emitOpByte(vm.OpGetLocal, 0)
	} else {
		c.emitOp(vm.OpNil)
	}
	c.emitOp(vm.OpReturn)
}

// emitConstant adds value to the current chunk's constant pool and
// emits CONSTANT referencing it, reporting a compile error past the
// 256-constant limit (§4.2, §6).
func (c *Compiler) emitConstant(value vm.Value) {
	idx, ok := c.currentChunk().AddConstant(c.vm, value)
	if !ok {
		c.error("Too many constants in one chunk.")
		return
	}
	c.emitOpByte(vm.OpConstant, byte(idx))
}

// emitJump writes op followed by a 2-byte placeholder operand, returning
// its offset for later patching.
func (c *Compiler) emitJump(op vm.OpCode) int {
	c.emitOp(op)
	return c.currentChunk().WriteJumpPlaceholder(c.previous.Line)
}

// patchJump backfills the jump at offset with the distance from just
// past its operand to the current end of the chunk, erroring past the
// 65535-byte limit (§4.5, §6).
func (c *Compiler) patchJump(offset int) {
	distance := len(c.currentChunk().Code) - offset - 2
	if !c.currentChunk().PatchJump(offset, distance) {
		c.error("Too much code to jump over.")
	}
}

// emitLoop emits LOOP with a backward 2-byte offset to loopStart.
func (c *Compiler) emitLoop(loopStart int) {
	c.emitOp(vm.OpLoop)
	offset := len(c.currentChunk().Code) - loopStart + 2
	if offset > 0xffff {
		c.error("Loop body too large.")
	}
	c.emitByte(byte(offset >> 8))
	c.emitByte(byte(offset))
}

func (c *Compiler) identifierConstant(name string) byte {
	idx, ok := c.currentChunk().AddConstant(c.vm, vm.MakeObject(c.vm.Heap().InternString(name)))
	if !ok {
		c.error("Too many constants in one chunk.")
	}
	return byte(idx)
}

// parsePrecedence is the Pratt engine: consume a prefix handler, then
// keep consuming infix handlers while the lookahead's precedence is at
// least prec (§4.5).
func (c *Compiler) parsePrecedence(prec Precedence) {
	c.advance()
	prefixRule := getRule(c.previous.Kind).prefix
	if prefixRule == nil {
		c.error("Expect expression.")
		return
	}

	canAssign := prec <= PrecAssignment
	prefixRule(c, canAssign)

	for prec <= getRule(c.current.Kind).precedence {
		c.advance()
		infixRule := getRule(c.previous.Kind).infix
		infixRule(c, canAssign)
	}
}

func (c *Compiler) expression() {
	c.parsePrecedence(PrecAssignment)
}

func (c *Compiler) errorf(format string, args ...interface{}) {
	c.error(fmt.Sprintf(format, args...))
}
