package analysis

import (
	"errors"
	"fmt"

	"github.com/addrscope/addrscope/pkg/probe"
)

// Trend classifies how a region's addresses evolve across recursion depth.
type Trend int

const (
	Increasing Trend = iota
	Decreasing
	Constant
	NonMonotonic
)

// String returns the string representation of the Trend
func (t Trend) String() string {
	switch t {
	case Increasing:
		return "increasing"
	case Decreasing:
		return "decreasing"
	case Constant:
		return "constant"
	case NonMonotonic:
		return "non-monotonic"
	default:
		return "unknown"
	}
}

// ErrInsufficientData is returned when a trend is requested for fewer than
// two samples.
var ErrInsufficientData = errors.New("analysis: need at least 2 samples")

// Report holds one trend per observed memory region.
type Report struct {
	Stack  Trend
	Heap   Trend
	Static Trend
}

// Trend returns the trend recorded for the given region.
func (r Report) Trend(region probe.Region) Trend {
	switch region {
	case probe.StackRegion:
		return r.Stack
	case probe.HeapRegion:
		return r.Heap
	default:
		return r.Static
	}
}

// Analyze derives the per-region growth trend from one probe run's samples,
// which must be ordered by depth ascending. It is a pure function.
func Analyze(samples []probe.Sample) (Report, error) {
	if len(samples) < 2 {
		return Report{}, fmt.Errorf("%w: got %d", ErrInsufficientData, len(samples))
	}
	return Report{
		Stack:  classify(samples, probe.StackRegion),
		Heap:   classify(samples, probe.HeapRegion),
		Static: classify(samples, probe.StaticRegion),
	}, nil
}

// classify compares each address to its predecessor in depth order.
func classify(samples []probe.Sample, region probe.Region) Trend {
	increasing, decreasing, constant := true, true, true
	for i := 1; i < len(samples); i++ {
		prev := samples[i-1].Addr(region)
		cur := samples[i].Addr(region)
		switch {
		case cur > prev:
			decreasing, constant = false, false
		case cur < prev:
			increasing, constant = false, false
		default:
			increasing, decreasing = false, false
		}
	}
	switch {
	case constant:
		return Constant
	case increasing:
		return Increasing
	case decreasing:
		return Decreasing
	default:
		return NonMonotonic
	}
}
