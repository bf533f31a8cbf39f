package compiler

import (
	"lumen/internal/token"
	"lumen/internal/vm"
)

func (c *Compiler) beginScope() {
	c.fc.scopeDepth++
}

// endScope pops every local declared in the scope just closed, emitting
// CLOSE_UPVALUE for captured locals and a plain POP otherwise (§4.5).
func (c *Compiler) endScope() {
	c.fc.scopeDepth--
	for c.fc.localCount > 0 && c.fc.locals[c.fc.localCount-1].depth > c.fc.scopeDepth {
		if c.fc.locals[c.fc.localCount-1].isCaptured {
			c.emitOp(vm.OpCloseUpvalue)
		} else {
			c.emitOp(vm.OpPop)
		}
		c.fc.localCount--
	}
}

// declareVariable registers the just-consumed identifier token as a new
// local in the current scope (no-op at global scope, where names resolve
// dynamically through the globals table instead). Declaring two locals
// with the same name in the same scope is a compile error.
func (c *Compiler) declareVariable() {
	if c.fc.scopeDepth == 0 {
		return
	}
	name := c.previous
	for i := c.fc.localCount - 1; i >= 0; i-- {
		local := c.fc.locals[i]
		if local.depth != -1 && local.depth < c.fc.scopeDepth {
			break
		}
		if local.name.Lexeme == name.Lexeme {
			c.error("Already a variable with this name in this scope.")
		}
	}
	c.addLocal(name)
}

func (c *Compiler) addLocal(name token.Token) {
	if c.fc.localCount == maxLocals {
		c.error("Too many local variables in function.")
		return
	}
	c.fc.locals[c.fc.localCount] = Local{name: name, depth: -1}
	c.fc.localCount++
}

func (c *Compiler) markInitialized() {
	if c.fc.scopeDepth == 0 {
		return
	}
	c.fc.locals[c.fc.localCount-1].depth = c.fc.scopeDepth
}

// defineVariable emits the global-definition instruction for a global,
// or simply marks a local initialized (declaration already reserved its
// slot) (§4.5).
func (c *Compiler) defineVariable(global byte) {
	if c.fc.scopeDepth > 0 {
		c.markInitialized()
		return
	}
	c.emitOpByte(vm.OpDefineGlobal, global)
}

// resolveLocal walks fs's locals from the top of the array looking for
// name, erroring if it finds the name still mid-initialization (reading
// a local in its own initializer, §4.5).
func (c *Compiler) resolveLocal(fs *funcState, name string) int {
	for i := fs.localCount - 1; i >= 0; i-- {
		local := &fs.locals[i]
		if local.name.Lexeme == name {
			if local.depth == -1 {
				c.error("Can't read local variable in its own initializer.")
			}
			return i
		}
	}
	return -1
}
