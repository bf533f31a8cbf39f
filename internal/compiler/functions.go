package compiler

import (
	"lumen/internal/token"
	"lumen/internal/vm"
)

func (c *Compiler) funDeclaration() {
	global := c.parseVariable("Expect function name.")
	c.markInitialized()
	c.function(typeFunction)
	c.defineVariable(global)
}

// function compiles a nested function body into its own funcState, then
// emits CLOSURE followed by one (isLocal, index) byte pair per captured
// upvalue so the VM can build the runtime Closure (§4.5, §4.6).
func (c *Compiler) function(fnType FunctionType) {
	c.fc = c.newFuncState(c.fc, fnType)
	c.beginScope()

	c.consume(token.LeftParen, "Expect '(' after function name.")
	if !c.check(token.RightParen) {
		for {
			c.fc.function.Arity++
			if c.fc.function.Arity > 255 {
				c.errorAtCurrent("Can't have more than 255 parameters.")
			}
			paramConst := c.parseVariable("Expect parameter name.")
			c.defineVariable(paramConst)
			if !c.match(token.Comma) {
				break
			}
		}
	}
	c.consume(token.RightParen, "Expect ')' after parameters.")
	c.consume(token.LeftBrace, "Expect '{' before function body.")
	c.block()

	fs := c.fc
	fn := c.endFunction()

	idx, ok := c.currentChunk().AddConstant(c.vm, vm.MakeObject(fn))
	if !ok {
		c.error("Too many constants in one chunk.")
		return
	}
	c.emitOpByte(vm.OpClosure, byte(idx))
	for i := 0; i < fs.upvalueCount; i++ {
		uv := fs.upvalues[i]
		if uv.isLocal {
			c.emitByte(1)
		} else {
			c.emitByte(0)
		}
		c.emitByte(byte(uv.index))
	}
}
