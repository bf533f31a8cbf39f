package vm

import "fortio.org/safecast"

// Heap owns every object the VM allocates: the intrusive object list that
// is the authoritative enumeration for sweep, the interned-string pool,
// and the GC bookkeeping (§3, §4.1, §4.3).
type Heap struct {
	objects *Object // head of the intrusive next-pointer list
	strings Table   // interned string pool; weak, pruned before sweep

	bytesAllocated int
	nextGC         int
	stressGC       bool
	growFactor     float64

	gray []*Object // gray worklist; not itself GC-managed

	vm *VM // roots live in VM stacks/frames/globals/compiler chain
}

const initialNextGC = 1024 * 1024

// NewHeap constructs an empty heap bound to vm. vm may be nil for heap
// unit tests that don't need root scanning.
func NewHeap(vm *VM) *Heap {
	return &Heap{nextGC: initialNextGC, growFactor: defaultGrowFactor, vm: vm}
}

const defaultGrowFactor = 2.0

// allocate links a freshly-built object into the intrusive list, charges
// its payload size against bytes_allocated, and may trigger a collection
// if the heap has grown past next_gc (or stress mode is on).
func (h *Heap) allocate(o *Object, size int) *Object {
	o.size = size
	o.Next = h.objects
	h.objects = o

	h.bytesAllocated += size
	if h.stressGC || h.bytesAllocated > h.nextGC {
		h.collectGarbage()
	}
	return o
}

// newString allocates a fresh, not-yet-interned String object. Callers
// within this package go through internString instead; this exists so
// internString itself has something to insert on a cache miss.
func (h *Heap) newString(s string) *Object {
	obj := &Object{Kind: ObjString, Str: s, Hash: fnv1a32(s)}
	n, err := safecast.Conv[int](len(s))
	if err != nil {
		n = 0
	}
	return h.allocate(obj, n+stringHeaderSize)
}

func (h *Heap) newFunction() *Object {
	obj := &Object{Kind: ObjFunction, Chunk: &Chunk{}}
	return h.allocate(obj, functionHeaderSize)
}

func (h *Heap) newClosure(fn *Object) *Object {
	obj := &Object{
		Kind:     ObjClosure,
		Function: fn,
		Upvalues: make([]*Object, fn.UpvalueCnt),
	}
	return h.allocate(obj, closureHeaderSize+len(obj.Upvalues)*pointerSize)
}

func (h *Heap) newUpvalue(slot *Value) *Object {
	obj := &Object{Kind: ObjUpvalue, Location: slot}
	return h.allocate(obj, upvalueHeaderSize)
}

func (h *Heap) newClass(name *Object) *Object {
	obj := &Object{Kind: ObjClass, Name: name, Methods: &Table{}}
	return h.allocate(obj, classHeaderSize)
}

func (h *Heap) newInstance(class *Object) *Object {
	obj := &Object{Kind: ObjInstance, Class: class, Fields: &Table{}}
	return h.allocate(obj, instanceHeaderSize)
}

func (h *Heap) newBoundMethod(receiver Value, method *Object) *Object {
	obj := &Object{Kind: ObjBoundMethod, Receiver: receiver, Method: method}
	return h.allocate(obj, boundMethodHeaderSize)
}

func (h *Heap) newNative(fn NativeFn) *Object {
	obj := &Object{Kind: ObjNative, Native: fn}
	return h.allocate(obj, nativeHeaderSize)
}

// InternString is the compiler's entry point for turning a literal's
// bytes into a canonical String object (spec §6: string constants,
// identifiers used as global/field/method names).
func (h *Heap) InternString(s string) *Object {
	return h.internString(s)
}

// NewFunction allocates a fresh Function object with an empty Chunk, for
// the compiler to populate as it compiles a function body (§4.5).
func (h *Heap) NewFunction() *Object {
	return h.newFunction()
}

// NextGC reports the heap's current collection threshold, for the
// `bench` GC stress command and for tests.
func (h *Heap) NextGC() int {
	return h.nextGC
}

// CollectGarbage forces an immediate mark-sweep cycle regardless of the
// bytes_allocated/next_gc threshold, for the `bench` GC stress command.
func (h *Heap) CollectGarbage() {
	h.collectGarbage()
}

// StressGC reports whether forced-collection-on-every-grow is active.
func (h *Heap) StressGC() bool {
	return h.stressGC
}

// SetStressGC toggles forced-collection-on-every-grow directly on the
// heap (used by tests that construct a Heap without a VM).
func (h *Heap) SetStressGC(on bool) {
	h.stressGC = on
}

// SetGrowFactor overrides the multiplier applied to bytes_allocated when
// computing the next collection threshold (lumen.toml's
// [gc] heap_grow_factor), in place of the default 2.0.
func (h *Heap) SetGrowFactor(factor float64) {
	if factor <= 1.0 {
		return
	}
	h.growFactor = factor
}

// Rough, constant per-kind header sizes; precision doesn't matter, only
// that the gc-trigger heuristic grows monotonically with live payload.
const (
	stringHeaderSize      = 24
	functionHeaderSize    = 48
	closureHeaderSize     = 24
	upvalueHeaderSize     = 24
	classHeaderSize       = 32
	instanceHeaderSize    = 32
	boundMethodHeaderSize = 32
	nativeHeaderSize      = 16
	pointerSize           = 8
)
