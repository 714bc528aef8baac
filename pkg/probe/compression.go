package probe

import (
	"io"

	"github.com/klauspost/compress/zstd"
)

// CompressionType defines the compression algorithm a FileSink uses.
type CompressionType int

const (
	// NoCompression indicates no compression
	NoCompression CompressionType = iota
	// ZstdCompression indicates Zstandard compression
	ZstdCompression
)

// DefaultCompression is the compression used when none is specified.
var DefaultCompression = ZstdCompression

// newCompressedWriter wraps w so that written data is compressed.
func newCompressedWriter(w io.Writer, ct CompressionType) io.Writer {
	if ct == NoCompression {
		return w
	}
	encoder, _ := zstd.NewWriter(w)
	return encoder
}

// newCompressedReader wraps r so that read data is decompressed.
func newCompressedReader(r io.Reader, ct CompressionType) (io.Reader, error) {
	if ct == NoCompression {
		return r, nil
	}
	return zstd.NewReader(r)
}

// closeCompressedWriter flushes and closes the compressing writer, if any.
func closeCompressedWriter(w io.Writer, ct CompressionType) error {
	if ct == NoCompression {
		return nil
	}
	if zw, ok := w.(*zstd.Encoder); ok {
		return zw.Close()
	}
	return nil
}
