package compiler

import (
	"strconv"

	"lumen/internal/token"
	"lumen/internal/vm"
)

func (c *Compiler) grouping(_ bool) {
	c.expression()
	c.consume(token.RightParen, "Expect ')' after expression.")
}

func (c *Compiler) unary(_ bool) {
	opKind := c.previous.Kind
	c.parsePrecedence(PrecUnary)
	switch opKind {
	case token.Minus:
		c.emitOp(vm.OpNegate)
	case token.Bang:
		c.emitOp(vm.OpNot)
	}
}

func (c *Compiler) binary(_ bool) {
	opKind := c.previous.Kind
	r := getRule(opKind)
	c.parsePrecedence(r.precedence + 1)

	switch opKind {
	case token.Plus:
		c.emitOp(vm.OpAdd)
	case token.Minus:
		c.emitOp(vm.OpSubtract)
	case token.Star:
		c.emitOp(vm.OpMultiply)
	case token.Slash:
		c.emitOp(vm.OpDivide)
	case token.Percent:
		c.emitOp(vm.OpModulo)
	case token.BangEqual:
		c.emitOp(vm.OpEqual)
		c.emitOp(vm.OpNot)
	case token.EqualEqual:
		c.emitOp(vm.OpEqual)
	case token.Greater:
		c.emitOp(vm.OpGreater)
	case token.GreaterEqual:
		c.emitOp(vm.OpLess)
		c.emitOp(vm.OpNot)
	case token.Less:
		c.emitOp(vm.OpLess)
	case token.LessEqual:
		c.emitOp(vm.OpGreater)
		c.emitOp(vm.OpNot)
	}
}

// and implements short-circuit `and`: if the LHS (already on the stack)
// is falsey, skip the RHS and leave the LHS as the result (§4.5).
func (c *Compiler) and(_ bool) {
	endJump := c.emitJump(vm.OpJumpIfFalse)
	c.emitOp(vm.OpPop)
	c.parsePrecedence(PrecAnd)
	c.patchJump(endJump)
}

// or implements short-circuit `or` via the inverse pattern: jump past a
// second jump when the LHS is truthy, otherwise pop it and evaluate the
// RHS (§4.5).
func (c *Compiler) or(_ bool) {
	elseJump := c.emitJump(vm.OpJumpIfFalse)
	endJump := c.emitJump(vm.OpJump)

	c.patchJump(elseJump)
	c.emitOp(vm.OpPop)

	c.parsePrecedence(PrecOr)
	c.patchJump(endJump)
}

func (c *Compiler) number(_ bool) {
	n, err := strconv.ParseFloat(c.previous.Lexeme, 64)
	if err != nil {
		c.error("Invalid number literal.")
		return
	}
	c.emitConstant(vm.MakeNumber(n))
}

// stringLiteral strips the surrounding quotes the scanner leaves in the
// lexeme (spec §6) before interning.
func (c *Compiler) stringLiteral(_ bool) {
	raw := c.previous.Lexeme
	s := raw[1 : len(raw)-1]
	c.emitConstant(vm.MakeObject(c.vm.Heap().InternString(s)))
}

func (c *Compiler) literal(_ bool) {
	switch c.previous.Kind {
	case token.False:
		c.emitOp(vm.OpFalse)
	case token.Nil:
		c.emitOp(vm.OpNil)
	case token.True:
		c.emitOp(vm.OpTrue)
	}
}

func (c *Compiler) variable(canAssign bool) {
	c.namedVariable(c.previous, canAssign)
}

// namedVariable resolves name as local, upvalue, or global (in that
// order) and emits the matching GET/SET pair, gated by canAssign exactly
// as spec §4.5 describes.
func (c *Compiler) namedVariable(name token.Token, canAssign bool) {
	var getOp, setOp vm.OpCode
	var slot int

	if local := c.resolveLocal(c.fc, name.Lexeme); local != -1 {
		slot = local
		getOp, setOp = vm.OpGetLocal, vm.OpSetLocal
	} else if uv := c.resolveUpvalue(c.fc, name.Lexeme); uv != -1 {
		slot = uv
		getOp, setOp = vm.OpGetUpvalue, vm.OpSetUpvalue
	} else {
		slot = int(c.identifierConstant(name.Lexeme))
		getOp, setOp = vm.OpGetGlobal, vm.OpSetGlobal
	}

	if canAssign && c.match(token.Equal) {
		c.expression()
		c.emitOpByte(setOp, byte(slot))
	} else {
		c.emitOpByte(getOp, byte(slot))
	}
}

func (c *Compiler) this(_ bool) {
	if c.cc == nil {
		c.error("Can't use 'this' outside of a class.")
		return
	}
	c.namedVariable(token.Token{Kind: token.Identifier, Lexeme: "this"}, false)
}

// super compiles `super.name` (or, as an INVOKE fusion when followed by
// a call, `super.name(args)`): it pushes `this`, resolves `super` as an
// upvalue/local to get the superclass, then either binds or invokes
// directly on that superclass (§4.5, §4.6).
func (c *Compiler) super(_ bool) {
	if c.cc == nil {
		c.error("Can't use 'super' outside of a class.")
		return
	} else if !c.cc.hasSuperclass {
		c.error("Can't use 'super' in a class with no superclass.")
	}

	c.consume(token.Dot, "Expect '.' after 'super'.")
	c.consume(token.Identifier, "Expect superclass method name.")
	name := c.identifierConstant(c.previous.Lexeme)

	c.namedVariable(token.Token{Kind: token.Identifier, Lexeme: "this"}, false)
	if c.match(token.LeftParen) {
		argCount := c.argumentList()
		c.namedVariable(token.Token{Kind: token.Identifier, Lexeme: "super"}, false)
		c.emitOpByte(vm.OpSuperInvoke, name)
		c.emitByte(byte(argCount))
		return
	}
	c.namedVariable(token.Token{Kind: token.Identifier, Lexeme: "super"}, false)
	c.emitOpByte(vm.OpGetSuper, name)
}

func (c *Compiler) call(_ bool) {
	argCount := c.argumentList()
	c.emitOpByte(vm.OpCall, byte(argCount))
}

// dot compiles `.name`, `.name = expr`, and the `.name(args)` INVOKE
// fusion (§4.6).
func (c *Compiler) dot(canAssign bool) {
	c.consume(token.Identifier, "Expect property name after '.'.")
	name := c.identifierConstant(c.previous.Lexeme)

	if canAssign && c.match(token.Equal) {
		c.expression()
		c.emitOpByte(vm.OpSetProperty, name)
	} else if c.match(token.LeftParen) {
		argCount := c.argumentList()
		c.emitOpByte(vm.OpInvoke, name)
		c.emitByte(byte(argCount))
	} else {
		c.emitOpByte(vm.OpGetProperty, name)
	}
}

// argumentList parses a parenthesized comma-separated expression list
// (the `(` has already been consumed), enforcing the 255-argument limit
// with the corrected count-based wording from spec §9.
func (c *Compiler) argumentList() int {
	argCount := 0
	if !c.check(token.RightParen) {
		for {
			c.expression()
			if argCount == 255 {
				c.error("Can't have more than 255 arguments.")
			}
			argCount++
			if !c.match(token.Comma) {
				break
			}
		}
	}
	c.consume(token.RightParen, "Expect ')' after arguments.")
	return argCount
}
