package vm

// captureUpvalue returns the Upvalue for the stack slot at slotIndex,
// sharing an existing open one if the list already has it. The
// open-upvalues list is sorted by descending stack-slot index so the
// walk can stop as soon as it finds a slot at or below the target
// (§4.4). Go forbids ordering comparisons on pointers, so the list is
// ordered on the slot index rather than the *Value itself; Location
// still points directly at vm.stack[slotIndex] for O(1) reads/writes.
func (vm *VM) captureUpvalue(slotIndex int) *Object {
	var prev *Object
	uv := vm.openUpvalues

	for uv != nil && uv.SlotIndex > slotIndex {
		prev = uv
		uv = uv.nextOpen
	}
	if uv != nil && uv.SlotIndex == slotIndex {
		return uv
	}

	created := vm.heap.newUpvalue(&vm.stack[slotIndex])
	created.SlotIndex = slotIndex
	created.nextOpen = uv
	if prev == nil {
		vm.openUpvalues = created
	} else {
		prev.nextOpen = created
	}
	return created
}

// closeUpvalues closes every open upvalue whose slot index is at or
// above fromSlot: its current value is copied into its own storage, its
// location redirected there, and it is unlinked from the open list
// (§4.4). Called on every scope exit that leaves a captured local behind
// and on every return.
func (vm *VM) closeUpvalues(fromSlot int) {
	for vm.openUpvalues != nil && vm.openUpvalues.SlotIndex >= fromSlot {
		uv := vm.openUpvalues
		uv.Closed = *uv.Location
		uv.Location = &uv.Closed
		vm.openUpvalues = uv.nextOpen
	}
}
