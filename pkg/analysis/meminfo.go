package analysis

import (
	"fmt"
	"runtime"
)

// MemorySnapshot holds a point-in-time reading of runtime memory statistics.
// It gives a run-level view of the heap around a probe run; it is not part of
// the sample contract.
type MemorySnapshot struct {
	HeapAlloc   uint64 // bytes in use by the application
	HeapObjects uint64 // number of allocated heap objects
	NumGC       uint32 // number of completed GC cycles
}

// TakeMemorySnapshot reads current runtime memory statistics.
func TakeMemorySnapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:   m.HeapAlloc,
		HeapObjects: m.HeapObjects,
		NumGC:       m.NumGC,
	}
}

// String returns a human-readable representation of the snapshot
func (s MemorySnapshot) String() string {
	return fmt.Sprintf("heap=%d bytes objects=%d gc=%d",
		s.HeapAlloc, s.HeapObjects, s.NumGC)
}
