package vm

import "testing"

func TestCollectGarbageSweepsUnreachableObjects(t *testing.T) {
	vm := New()
	vm.heap.stressGC = false

	before := vm.heap.bytesAllocated
	garbage := vm.heap.newString("this string is not reachable from any root")
	_ = garbage
	afterAlloc := vm.heap.bytesAllocated
	if afterAlloc <= before {
		t.Fatal("allocating a string should increase bytes_allocated")
	}

	vm.heap.collectGarbage()

	if vm.heap.bytesAllocated >= afterAlloc {
		t.Errorf("bytes_allocated = %d, want less than %d after collecting an unreachable object", vm.heap.bytesAllocated, afterAlloc)
	}
}

func TestCollectGarbageKeepsRootedObjects(t *testing.T) {
	vm := New()
	rooted := vm.heap.newString("kept")
	vm.push(MakeObject(rooted))

	vm.heap.collectGarbage()

	if rooted.Marked {
		t.Error("sweep should clear the mark bit on surviving objects")
	}
	found := false
	for o := vm.heap.objects; o != nil; o = o.Next {
		if o == rooted {
			found = true
		}
	}
	if !found {
		t.Error("an object reachable from the value stack must survive collection")
	}
	vm.pop()
}

func TestCollectGarbagePrunesUnmarkedInternedStrings(t *testing.T) {
	vm := New()
	s := vm.heap.internString("ephemeral")
	hash := fnv1a32("ephemeral")

	vm.heap.collectGarbage()

	if vm.heap.strings.FindString("ephemeral", hash) != nil {
		t.Error("an interned string with no other root should be pruned by the weak sweep")
	}
	_ = s
}

func TestMarkObjectIsIdempotent(t *testing.T) {
	h := NewHeap(nil)
	o := h.newString("x")
	h.markObject(o)
	grayLen := len(h.gray)
	h.markObject(o)
	if len(h.gray) != grayLen {
		t.Error("marking an already-marked object should not grow the gray worklist")
	}
}
