package vm

// fnv1a32 computes the 32-bit FNV-1a hash of s, as clox's table.c does for
// every String it interns (§3, §4.1).
func fnv1a32(s string) uint32 {
	const (
		offsetBasis = 2166136261
		prime       = 16777619
	)
	hash := uint32(offsetBasis)
	for i := 0; i < len(s); i++ {
		hash ^= uint32(s[i])
		hash *= prime
	}
	return hash
}

// internString returns the canonical String object for s, allocating and
// interning a new one only on a cache miss. Every String-valued constant
// the compiler or VM produces (literals, concatenation results, class and
// field names) flows through here, which is what makes object-identity
// comparison sufficient for name lookup (§4.1).
func (h *Heap) internString(s string) *Object {
	hash := fnv1a32(s)
	if existing := h.strings.FindString(s, hash); existing != nil {
		return existing
	}
	obj := h.newString(s)
	// The new string must be rooted before insertion: Set may grow the
	// backing array, which cannot itself allocate in this implementation,
	// but we still push it onto the value stack first to mirror the
	// hazard discipline the collector relies on elsewhere (§4.3).
	if h.vm != nil {
		h.vm.push(MakeObject(obj))
	}
	h.strings.Set(obj, MakeBool(true))
	if h.vm != nil {
		h.vm.pop()
	}
	return obj
}
