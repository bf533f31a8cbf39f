package vm

// collectGarbage runs one tri-color mark-sweep cycle: mark every root,
// trace the gray worklist to black, prune the weak string table, then
// sweep the intrusive object list (§4.3).
func (h *Heap) collectGarbage() {
	if h.vm != nil {
		h.markRoots()
	}
	h.traceReferences()
	h.strings.removeUnmarkedKeys()
	h.sweep()
	h.nextGC = int(float64(h.bytesAllocated) * h.growFactor)
	if h.nextGC < initialNextGC {
		h.nextGC = initialNextGC
	}
}

// markRoots marks every root named in §4.3: the value stack, each active
// frame's closure, the open-upvalues list, the globals table, the
// compiler chain's in-progress functions, and the cached "init" string.
func (h *Heap) markRoots() {
	vm := h.vm
	for i := 0; i < vm.stackTop; i++ {
		h.markValue(vm.stack[i])
	}
	for i := 0; i < vm.frameCount; i++ {
		h.markObject(vm.frames[i].closure)
	}
	for uv := vm.openUpvalues; uv != nil; uv = uv.nextOpen {
		h.markObject(uv)
	}
	vm.globals.Each(func(key *Object, val Value) {
		h.markObject(key)
		h.markValue(val)
	})
	for _, fn := range vm.compilingFunctions {
		h.markObject(fn)
	}
	h.markObject(vm.initString)
}

// markValue marks v's underlying object, if it has one.
func (h *Heap) markValue(v Value) {
	if v.Kind == VKObject {
		h.markObject(v.Obj)
	}
}

// markObject sets o's mark bit and pushes it onto the gray worklist.
// Re-marking an already-marked object is a no-op, which is what keeps
// cyclic structures (closures <-> upvalues <-> values) from looping.
func (h *Heap) markObject(o *Object) {
	if o == nil || o.Marked {
		return
	}
	o.Marked = true
	h.gray = append(h.gray, o)
}

// traceReferences pops objects off the gray worklist and blackens them
// until none remain.
func (h *Heap) traceReferences() {
	for len(h.gray) > 0 {
		o := h.gray[len(h.gray)-1]
		h.gray = h.gray[:len(h.gray)-1]
		h.blacken(o)
	}
}

// blacken marks every object o directly references. Strings and Natives
// have no outgoing references and fall through to the default case.
func (h *Heap) blacken(o *Object) {
	switch o.Kind {
	case ObjFunction:
		h.markObject(o.Name)
		for _, c := range o.Chunk.Constants {
			h.markValue(c)
		}
	case ObjClosure:
		h.markObject(o.Function)
		for _, uv := range o.Upvalues {
			h.markObject(uv)
		}
	case ObjUpvalue:
		h.markValue(o.Closed)
	case ObjClass:
		h.markObject(o.Name)
		o.Methods.Each(func(key *Object, val Value) {
			h.markObject(key)
			h.markValue(val)
		})
	case ObjInstance:
		h.markObject(o.Class)
		o.Fields.Each(func(key *Object, val Value) {
			h.markObject(key)
			h.markValue(val)
		})
	case ObjBoundMethod:
		h.markValue(o.Receiver)
		h.markObject(o.Method)
	}
}

// sweep walks the intrusive object list once: marked objects are
// unmarked and kept, unmarked objects are unlinked, their payload size
// debited from bytes_allocated, and dropped (Go's own GC reclaims them
// once unreferenced — there is no manual free routine per variant here,
// since nothing but the Go runtime owns the backing memory).
func (h *Heap) sweep() {
	var prev *Object
	obj := h.objects
	for obj != nil {
		if obj.Marked {
			obj.Marked = false
			prev = obj
			obj = obj.Next
			continue
		}
		unreached := obj
		obj = obj.Next
		if prev == nil {
			h.objects = obj
		} else {
			prev.Next = obj
		}
		h.bytesAllocated -= unreached.size
	}
}
