package vm

import "testing"

func TestChunkWriteTracksLines(t *testing.T) {
	c := &Chunk{}
	c.Write(byte(OpNil), 1)
	c.Write(byte(OpPrint), 2)
	if len(c.Code) != 2 || len(c.Lines) != 2 {
		t.Fatalf("code/lines length mismatch: %d/%d", len(c.Code), len(c.Lines))
	}
	if c.Lines[0] != 1 || c.Lines[1] != 2 {
		t.Errorf("lines = %v, want [1 2]", c.Lines)
	}
}

func TestAddConstantRejectsOver256(t *testing.T) {
	c := &Chunk{}
	for i := 0; i < maxConstants; i++ {
		if _, ok := c.AddConstant(nil, MakeNumber(float64(i))); !ok {
			t.Fatalf("constant %d should be accepted", i)
		}
	}
	if _, ok := c.AddConstant(nil, MakeNumber(999)); ok {
		t.Error("257th constant should be rejected")
	}
}

func TestPatchJumpRejectsOver65535(t *testing.T) {
	c := &Chunk{}
	off := c.WriteJumpPlaceholder(1)
	if !c.PatchJump(off, 65535) {
		t.Error("65535-byte jump should be accepted")
	}
	if c.PatchJump(off, 65536) {
		t.Error("65536-byte jump should be rejected")
	}
}
