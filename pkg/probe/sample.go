package probe

import "fmt"

// Region identifies one of the three process memory regions a Sample observes.
type Region int

const (
	StackRegion Region = iota
	HeapRegion
	StaticRegion
)

// String returns the string representation of the Region
func (r Region) String() string {
	switch r {
	case StackRegion:
		return "stack"
	case HeapRegion:
		return "heap"
	case StaticRegion:
		return "static"
	default:
		return "unknown"
	}
}

// Sample is one observation taken at a single recursion activation. It is
// constructed at activation entry, handed to the sink, and never mutated.
type Sample struct {
	Depth      int     `json:"depth"`
	StackAddr  uintptr `json:"stack"`
	HeapAddr   uintptr `json:"heap"`
	StaticAddr uintptr `json:"static"`
}

// Addr returns the sampled address for the given region.
func (s Sample) Addr(r Region) uintptr {
	switch r {
	case StackRegion:
		return s.StackAddr
	case HeapRegion:
		return s.HeapAddr
	case StaticRegion:
		return s.StaticAddr
	default:
		return 0
	}
}

// String renders the sample as a single line in emission format.
func (s Sample) String() string {
	return fmt.Sprintf("depth=%d stack=0x%x heap=0x%x static=0x%x",
		s.Depth, s.StackAddr, s.HeapAddr, s.StaticAddr)
}
