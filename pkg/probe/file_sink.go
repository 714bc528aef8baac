package probe

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
)

// FileSink records samples to a file as JSON lines with optional compression,
// so a recorded run can be read back and re-analyzed later.
type FileSink struct {
	file        *os.File
	writer      io.Writer
	bufWriter   *bufio.Writer
	path        string
	compression CompressionType
	sampleCount int
}

// FileSinkOptions contains options for creating a file sink
type FileSinkOptions struct {
	Compression CompressionType
}

// DefaultFileSinkOptions returns default options for a file sink
func DefaultFileSinkOptions() FileSinkOptions {
	return FileSinkOptions{
		Compression: DefaultCompression,
	}
}

// NewFileSink creates a file sink at path with default options.
func NewFileSink(path string) (*FileSink, error) {
	return NewFileSinkWithOptions(path, DefaultFileSinkOptions())
}

// NewFileSinkWithOptions creates a file sink at path with the given options.
func NewFileSinkWithOptions(path string, options FileSinkOptions) (*FileSink, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}

	bufWriter := bufio.NewWriter(f)

	return &FileSink{
		file:        f,
		writer:      newCompressedWriter(bufWriter, options.Compression),
		bufWriter:   bufWriter,
		path:        path,
		compression: options.Compression,
		sampleCount: 0,
	}, nil
}

// Record writes one sample as a JSON line.
func (fs *FileSink) Record(s Sample) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}

	if _, err := fs.writer.Write(data); err != nil {
		return err
	}
	if _, err := fs.writer.Write([]byte{'\n'}); err != nil {
		return err
	}

	if err := fs.bufWriter.Flush(); err != nil {
		return err
	}

	fs.sampleCount++
	return nil
}

// Samples reads back every sample recorded to the file, in emission order.
func (fs *FileSink) Samples() []Sample {
	// Flush what the compressing writer is still holding before reading.
	closeCompressedWriter(fs.writer, fs.compression)
	fs.bufWriter.Flush()

	f, err := os.Open(fs.path)
	if err != nil {
		return nil
	}
	defer f.Close()

	reader, err := newCompressedReader(f, fs.compression)
	if err != nil {
		return nil
	}

	var samples []Sample
	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		var s Sample
		if err := json.Unmarshal(scanner.Bytes(), &s); err != nil {
			continue
		}
		samples = append(samples, s)
	}

	// Reopen the writer since we closed it.
	fs.writer = newCompressedWriter(fs.bufWriter, fs.compression)

	return samples
}

// Count reports how many samples have been recorded since the sink opened.
func (fs *FileSink) Count() int {
	return fs.sampleCount
}

// Close flushes and closes the file.
func (fs *FileSink) Close() error {
	if err := closeCompressedWriter(fs.writer, fs.compression); err != nil {
		return err
	}
	if err := fs.bufWriter.Flush(); err != nil {
		return err
	}
	return fs.file.Close()
}
