package probe

import (
	"errors"
	"fmt"
	"unsafe"
)

// staticMarker lives in the static region for the life of the process. Every
// sample in every run reports the same address for it.
var staticMarker int64 = 0x5ca1ab1e

var (
	// ErrInvalidDepth is returned when Run is asked for fewer than 1 activation.
	ErrInvalidDepth = errors.New("probe: max depth must be at least 1")
	// ErrOutOfMemory is returned when the allocator cannot satisfy an
	// activation's heap allocation.
	ErrOutOfMemory = errors.New("probe: heap allocation failed")
)

// Allocator produces one exclusively-owned heap value per activation.
// Injectable so allocation failure can be exercised; the default never fails.
type Allocator func() (*int64, error)

func defaultAllocator() (*int64, error) {
	return new(int64), nil
}

// Probe recursively samples the addresses of a frame-local value, a freshly
// allocated heap value, and the shared static marker at each recursion depth,
// emitting one Sample per activation to its sink.
type Probe struct {
	sink  Sink
	alloc Allocator

	// ledger holds heap values still owned by live activations, in
	// allocation order. Retaining the pointers here is what forces the
	// values onto the heap; the deferred release per activation pops them
	// in unwind order.
	ledger []*int64
}

// New creates a Probe emitting to the given sink with the default allocator.
func New(sink Sink) *Probe {
	return NewWithAllocator(sink, defaultAllocator)
}

// NewWithAllocator creates a Probe with a caller-supplied allocator.
func NewWithAllocator(sink Sink, alloc Allocator) *Probe {
	return &Probe{sink: sink, alloc: alloc}
}

// Frames of headroom reserved beyond maxDepth when pre-growing the stack.
const stackHeadroom = 16

// growStack walks the requested number of frames, each with a sizeable
// local, so any goroutine stack growth happens before sampling begins. If
// the runtime relocated the stack between activations, frame addresses
// captured before the move would lie in a different segment than those
// captured after it, and the stack projection would not be monotonic.
func growStack(frames int) byte {
	var pad [512]byte
	if frames > 0 {
		pad[0] = growStack(frames - 1)
	}
	return pad[0]
}

// Run performs exactly maxDepth nested activations, emitting one Sample per
// depth in increasing order. Every heap value is released as its activation
// unwinds, on success and failure paths alike.
func (p *Probe) Run(maxDepth int) error {
	if maxDepth < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidDepth, maxDepth)
	}
	growStack(maxDepth + stackHeadroom)
	return p.activate(1, maxDepth)
}

func (p *Probe) activate(depth, maxDepth int) error {
	// frameLocal exists only for the lifetime of this activation. Its
	// address is read once and never escapes, so it stays on this frame.
	var frameLocal int64

	heapVal, err := p.alloc()
	if err != nil {
		return fmt.Errorf("%w: depth %d: %v", ErrOutOfMemory, depth, err)
	}
	p.ledger = append(p.ledger, heapVal)
	defer p.release()

	s := Sample{
		Depth:      depth,
		StackAddr:  uintptr(unsafe.Pointer(&frameLocal)),
		HeapAddr:   uintptr(unsafe.Pointer(heapVal)),
		StaticAddr: uintptr(unsafe.Pointer(&staticMarker)),
	}
	if err := p.sink.Record(s); err != nil {
		return fmt.Errorf("probe: record sample at depth %d: %w", depth, err)
	}

	if depth < maxDepth {
		return p.activate(depth+1, maxDepth)
	}
	return nil
}

// release drops the most recently allocated heap value. Because it runs
// deferred, the deepest activation releases first, matching unwind order.
func (p *Probe) release() {
	last := len(p.ledger) - 1
	p.ledger[last] = nil
	p.ledger = p.ledger[:last]
}

// Outstanding reports how many heap values are still owned by live
// activations. It is 0 after Run returns, whatever the outcome.
func (p *Probe) Outstanding() int {
	return len(p.ledger)
}
