package vm

import "testing"

func key(h *Heap, s string) *Object {
	return h.InternString(s)
}

func TestTableSetGetDelete(t *testing.T) {
	h := NewHeap(nil)
	tbl := &Table{}

	a := key(h, "a")
	if !tbl.Set(a, MakeNumber(1)) {
		t.Fatal("first Set of a new key should report true")
	}
	if tbl.Set(a, MakeNumber(2)) {
		t.Fatal("Set of an existing key should report false")
	}
	got, ok := tbl.Get(a)
	if !ok || got.Num != 2 {
		t.Fatalf("Get(a) = %v, %v; want 2, true", got, ok)
	}

	if !tbl.Delete(a) {
		t.Fatal("Delete of a present key should report true")
	}
	if _, ok := tbl.Get(a); ok {
		t.Fatal("Get after Delete should report false")
	}
}

func TestTableTombstoneKeepsProbeChainWalkable(t *testing.T) {
	h := NewHeap(nil)
	tbl := &Table{}
	a, b, c := key(h, "a"), key(h, "b"), key(h, "c")
	tbl.Set(a, MakeNumber(1))
	tbl.Set(b, MakeNumber(2))
	tbl.Delete(a)
	tbl.Set(c, MakeNumber(3))

	if got, ok := tbl.Get(b); !ok || got.Num != 2 {
		t.Errorf("Get(b) after tombstoning a = %v, %v; want 2, true", got, ok)
	}
	if got, ok := tbl.Get(c); !ok || got.Num != 3 {
		t.Errorf("Get(c) = %v, %v; want 3, true", got, ok)
	}
}

func TestTableGrowsAndPreservesEntries(t *testing.T) {
	h := NewHeap(nil)
	tbl := &Table{}
	var keys []*Object
	for i := 0; i < 100; i++ {
		k := key(h, string(rune('a'))+string(rune(i)))
		keys = append(keys, k)
		tbl.Set(k, MakeNumber(float64(i)))
	}
	for i, k := range keys {
		got, ok := tbl.Get(k)
		if !ok || got.Num != float64(i) {
			t.Errorf("Get(keys[%d]) = %v, %v; want %d, true", i, got, ok, i)
		}
	}
}

func TestFindStringByContent(t *testing.T) {
	h := NewHeap(nil)
	tbl := &Table{}
	a := key(h, "needle")
	tbl.Set(a, MakeBool(true))
	if found := tbl.FindString("needle", fnv1a32("needle")); found != a {
		t.Error("FindString should locate the entry by content+hash")
	}
	if found := tbl.FindString("missing", fnv1a32("missing")); found != nil {
		t.Error("FindString should return nil for an absent key")
	}
}

func TestRemoveUnmarkedKeys(t *testing.T) {
	h := NewHeap(nil)
	tbl := &Table{}
	a, b := key(h, "a"), key(h, "b")
	tbl.Set(a, MakeBool(true))
	tbl.Set(b, MakeBool(true))
	a.Marked = true

	tbl.removeUnmarkedKeys()

	if _, ok := tbl.Get(a); !ok {
		t.Error("marked key should survive removeUnmarkedKeys")
	}
	if _, ok := tbl.Get(b); ok {
		t.Error("unmarked key should be pruned by removeUnmarkedKeys")
	}
}
