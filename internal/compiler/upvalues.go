package compiler

// resolveUpvalue walks fs's enclosing chain looking for name: if the
// immediately enclosing frame has it as a local, mark that local
// captured and record an upvalue referring to it directly; otherwise
// recurse upward and, if found above, record an upvalue referring to the
// parent's own upvalue slot (§4.5). Returns -1 if name is not found
// anywhere in the chain (making it a global).
func (c *Compiler) resolveUpvalue(fs *funcState, name string) int {
	if fs.enclosing == nil {
		return -1
	}

	if local := c.resolveLocal(fs.enclosing, name); local != -1 {
		fs.enclosing.locals[local].isCaptured = true
		return c.addUpvalue(fs, local, true)
	}

	if upvalue := c.resolveUpvalue(fs.enclosing, name); upvalue != -1 {
		return c.addUpvalue(fs, upvalue, false)
	}

	return -1
}

// addUpvalue de-duplicates on (index, isLocal) before appending a new
// entry, and enforces the 256-upvalue limit (§4.5, §6).
func (c *Compiler) addUpvalue(fs *funcState, index int, isLocal bool) int {
	for i := 0; i < fs.upvalueCount; i++ {
		uv := &fs.upvalues[i]
		if uv.index == index && uv.isLocal == isLocal {
			return i
		}
	}
	if fs.upvalueCount == maxUpvalues {
		c.error("Too many closure variables in function.")
		return 0
	}
	fs.upvalues[fs.upvalueCount] = upvalueRef{index: index, isLocal: isLocal}
	fs.upvalueCount++
	return fs.upvalueCount - 1
}
