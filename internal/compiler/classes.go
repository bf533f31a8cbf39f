package compiler

import (
	"lumen/internal/token"
	"lumen/internal/vm"
)

// classDeclaration compiles `class Name { ... }` and the optional
// `class Name < Super { ... }` inheritance clause (§4.5, §4.6).
//
// A superclass clause opens a synthetic scope holding a local named
// "super" bound to the superclass, so method bodies can resolve it as
// an upvalue exactly like any other enclosing local; that scope closes
// again after the class body.
func (c *Compiler) classDeclaration() {
	c.consume(token.Identifier, "Expect class name.")
	nameTok := c.previous
	nameConst := c.identifierConstant(nameTok.Lexeme)
	c.declareVariable()

	c.emitOpByte(vm.OpClass, nameConst)
	c.defineVariable(nameConst)

	cs := &classState{enclosing: c.cc}
	c.cc = cs

	if c.match(token.Less) {
		c.consume(token.Identifier, "Expect superclass name.")
		c.variable(false)
		if c.previous.Lexeme == nameTok.Lexeme {
			c.error("A class can't inherit from itself.")
		}

		c.beginScope()
		c.addLocal(token.Token{Kind: token.Identifier, Lexeme: "super"})
		c.defineVariable(0)

		c.namedVariable(nameTok, false)
		c.emitOp(vm.OpInherit)
		cs.hasSuperclass = true
	}

	c.namedVariable(nameTok, false)
	c.consume(token.LeftBrace, "Expect '{' before class body.")
	for !c.check(token.RightBrace) && !c.check(token.EOF) {
		c.method()
	}
	c.consume(token.RightBrace, "Expect '}' after class body.")
	c.emitOp(vm.OpPop)

	if cs.hasSuperclass {
		c.endScope()
	}
	c.cc = cs.enclosing
}

// method compiles one class-body method as a function body with slot 0
// bound to `this`, emitting METHOD to install it on the class's method
// table at runtime (§4.5, §4.6). `init` is special-cased so its implicit
// return yields `this` instead of nil.
func (c *Compiler) method() {
	c.consume(token.Identifier, "Expect method name.")
	nameTok := c.previous
	nameConst := c.identifierConstant(nameTok.Lexeme)

	fnType := typeMethod
	if nameTok.Lexeme == "init" {
		fnType = typeInitializer
	}
	c.function(fnType)
	c.emitOpByte(vm.OpMethod, nameConst)
}
