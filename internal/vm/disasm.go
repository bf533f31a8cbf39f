package vm

import (
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"
)

// Disassemble writes a human-readable listing of every instruction in
// chunk to w, labeled name — the debug collaborator named in spec §2.
func Disassemble(w io.Writer, chunk *Chunk, name string) {
	fmt.Fprintf(w, "== %s ==\n", name)
	offset := 0
	for offset < len(chunk.Code) {
		offset = disassembleInstruction(w, chunk, offset)
	}
}

func disassembleInstruction(w io.Writer, chunk *Chunk, offset int) int {
	line := fmt.Sprintf("%4d", chunk.Lines[offset])
	if offset > 0 && chunk.Lines[offset] == chunk.Lines[offset-1] {
		line = "   |"
	}
	op := OpCode(chunk.Code[offset])
	header := fmt.Sprintf("%04d %s %s", offset, line, padName(op.Name()))

	switch op {
	case OpConstant, OpGetGlobal, OpDefineGlobal, OpSetGlobal, OpClass, OpGetProperty,
		OpSetProperty, OpMethod, OpGetSuper:
		idx := chunk.Code[offset+1]
		fmt.Fprintf(w, "%s %4d '%s'\n", header, idx, Print(chunk.Constants[idx]))
		return offset + 2
	case OpInvoke, OpSuperInvoke:
		idx := chunk.Code[offset+1]
		argCount := chunk.Code[offset+2]
		fmt.Fprintf(w, "%s (%d args) %4d '%s'\n", header, argCount, idx, Print(chunk.Constants[idx]))
		return offset + 3
	case OpGetLocal, OpSetLocal, OpGetUpvalue, OpSetUpvalue, OpCall:
		slot := chunk.Code[offset+1]
		fmt.Fprintf(w, "%s %4d\n", header, slot)
		return offset + 2
	case OpJump, OpJumpIfFalse, OpLoop:
		jump := int(chunk.Code[offset+1])<<8 | int(chunk.Code[offset+2])
		fmt.Fprintf(w, "%s %4d\n", header, jump)
		return offset + 3
	case OpClosure:
		idx := chunk.Code[offset+1]
		fnVal := chunk.Constants[idx]
		fmt.Fprintf(w, "%s %4d '%s'\n", header, idx, Print(fnVal))
		next := offset + 2
		if fnVal.Kind == VKObject && fnVal.Obj.Kind == ObjFunction {
			for i := 0; i < fnVal.Obj.UpvalueCnt; i++ {
				isLocal := chunk.Code[next]
				index := chunk.Code[next+1]
				kind := "upvalue"
				if isLocal != 0 {
					kind = "local"
				}
				fmt.Fprintf(w, "%04d      |                     %s %d\n", next, kind, index)
				next += 2
			}
		}
		return next
	default:
		fmt.Fprintf(w, "%s\n", header)
		return offset + 1
	}
}

// padName right-pads an opcode mnemonic to a fixed display width using
// go-runewidth, the teacher's column-alignment dependency, so the
// disassembler listing stays aligned even for any future multi-byte
// mnemonic.
func padName(name string) string {
	const width = 18
	w := runewidth.StringWidth(name)
	if w >= width {
		return name
	}
	return name + padSpaces(width-w)
}

func padSpaces(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
