package vm

import (
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// heapDumpEntry is one row of a debug heap snapshot: enough to inspect
// population and rough shape of the live heap without reconstructing
// pointer identity (snapshots are write-only — spec.md's non-goal on
// persistent compiled artifacts rules out ever reloading one).
type heapDumpEntry struct {
	Kind string `msgpack:"kind"`
	Repr string `msgpack:"repr"`
	Size int    `msgpack:"size"`
}

// DumpHeap writes a msgpack-encoded snapshot of every live object in the
// intrusive object list to w, for the `--dump-heap` debug flag. It is
// never read back into a running VM.
func (h *Heap) DumpHeap(w io.Writer) error {
	var entries []heapDumpEntry
	for o := h.objects; o != nil; o = o.Next {
		entries = append(entries, heapDumpEntry{
			Kind: o.Kind.String(),
			Repr: o.String(),
			Size: o.size,
		})
	}
	enc := msgpack.NewEncoder(w)
	return enc.Encode(entries)
}

// BytesAllocated reports the heap's current bytes_allocated counter
// (§4.3 testable property 3), exposed for the `bench` GC stress command
// and for tests.
func (h *Heap) BytesAllocated() int {
	return h.bytesAllocated
}
