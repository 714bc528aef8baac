package probe

// Sink consumes Samples in emission order.
type Sink interface {
	Record(s Sample) error
}

// MemorySink buffers samples in memory for later analysis.
type MemorySink struct {
	samples []Sample
}

// NewMemorySink creates an empty MemorySink.
func NewMemorySink() *MemorySink {
	return &MemorySink{samples: []Sample{}}
}

// Record appends a sample to the buffer.
func (m *MemorySink) Record(s Sample) error {
	m.samples = append(m.samples, s)
	return nil
}

// Samples returns all recorded samples in emission order.
func (m *MemorySink) Samples() []Sample {
	return m.samples
}

// Clear discards all recorded samples.
func (m *MemorySink) Clear() {
	m.samples = []Sample{}
}

// MultiSink fans each sample out to every wrapped sink, in order.
type MultiSink struct {
	sinks []Sink
}

// NewMultiSink creates a MultiSink over the given sinks.
func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

// Record forwards the sample to each wrapped sink, stopping at the first error.
func (m *MultiSink) Record(s Sample) error {
	for _, sink := range m.sinks {
		if err := sink.Record(s); err != nil {
			return err
		}
	}
	return nil
}
