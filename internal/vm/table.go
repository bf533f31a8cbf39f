package vm

// entry is one slot in a Table: an interned-String key and its Value.
// A tombstone is represented by a nil Key paired with a true Value, which
// keeps probe chains walkable after deletion (§4.1).
type entry struct {
	key *Object
	val Value
}

func (e entry) isTombstone() bool {
	return e.key == nil && e.val.Kind == VKBool && e.val.Bool
}

const tableMaxLoad = 0.75

// Table is an open-addressing hash map keyed by interned String objects,
// used for globals, class method tables, and instance field tables.
// Lookup probes until it finds the key by pointer equality (sufficient
// because keys always come through the intern pool) or an empty,
// non-tombstone slot.
type Table struct {
	count    int // occupied slots: live entries plus tombstones (grow recounts live only)
	entries  []entry
}

// Get looks up key and reports whether it was present.
func (t *Table) Get(key *Object) (Value, bool) {
	if len(t.entries) == 0 {
		return Value{}, false
	}
	idx := t.findSlot(key)
	e := t.entries[idx]
	if e.key == nil {
		return Value{}, false
	}
	return e.val, true
}

// Set stores val under key, growing the backing array first if the load
// factor would exceed 0.75. Reports true if key was not already present.
func (t *Table) Set(key *Object, val Value) bool {
	if len(t.entries) == 0 || float64(t.count+1) > float64(len(t.entries))*tableMaxLoad {
		t.grow()
	}
	idx := t.findSlot(key)
	e := &t.entries[idx]
	isNew := e.key == nil
	if isNew && !e.isTombstone() {
		t.count++
	}
	e.key = key
	e.val = val
	return isNew
}

// Delete tombstones key's slot so later probes can still walk past it.
// Reports whether key was present.
func (t *Table) Delete(key *Object) bool {
	if len(t.entries) == 0 {
		return false
	}
	idx := t.findSlot(key)
	e := &t.entries[idx]
	if e.key == nil {
		return false
	}
	e.key = nil
	e.val = MakeBool(true)
	return true
}

// FindString looks up an entry by content rather than pointer identity;
// only the intern pool calls this, since it is the one place a String has
// not yet been canonicalized.
func (t *Table) FindString(s string, hash uint32) *Object {
	if len(t.entries) == 0 {
		return nil
	}
	mask := uint32(len(t.entries) - 1)
	idx := hash & mask
	for {
		e := &t.entries[idx]
		if e.key == nil {
			if !e.isTombstone() {
				return nil
			}
		} else if e.key.Hash == hash && e.key.Str == s {
			return e.key
		}
		idx = (idx + 1) & mask
	}
}

// findSlot probes for key's slot: either the slot already holding it, or
// the first empty/tombstone slot (so inserts reuse tombstones without
// double-counting them).
func (t *Table) findSlot(key *Object) uint32 {
	mask := uint32(len(t.entries) - 1)
	idx := key.Hash & mask
	var tombstone *uint32
	for {
		e := &t.entries[idx]
		switch {
		case e.key == nil:
			if e.isTombstone() {
				if tombstone == nil {
					i := idx
					tombstone = &i
				}
			} else {
				if tombstone != nil {
					return *tombstone
				}
				return idx
			}
		case e.key == key:
			return idx
		}
		idx = (idx + 1) & mask
	}
}

func (t *Table) grow() {
	newCap := 8
	if len(t.entries) > 0 {
		newCap = len(t.entries) * 2
	}
	old := t.entries
	t.entries = make([]entry, newCap)
	t.count = 0
	for _, e := range old {
		if e.key == nil {
			continue
		}
		idx := t.findSlot(e.key)
		t.entries[idx] = e
		t.count++
	}
}

// Each calls fn for every live (non-tombstone) entry. Used by the GC to
// blacken a Class's method table or an Instance's field table, and by
// the globals-table root scan.
func (t *Table) Each(fn func(key *Object, val Value)) {
	for _, e := range t.entries {
		if e.key == nil {
			continue
		}
		fn(e.key, e.val)
	}
}

// removeUnmarkedKeys deletes every entry whose key is not marked. This is
// the weak-table sweep the interned-string pool runs after marking but
// before the main object sweep (§4.1, §4.3).
func (t *Table) removeUnmarkedKeys() {
	for i := range t.entries {
		e := &t.entries[i]
		if e.key != nil && !e.key.Marked {
			e.key = nil
			e.val = MakeBool(true)
		}
	}
}
