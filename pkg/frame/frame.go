// Package frame reads and writes fixed-size message frames on a byte stream.
//
// The wire format is a raw concatenation of frames of a single pre-agreed
// size: no length prefix, no delimiter, no escaping. Both peers must be
// configured with the same size; the payload bytes are opaque to this layer.
package frame

import "io"

// Writer writes fixed-size frames to an underlying stream.
type Writer struct {
	w    io.Writer
	size int
}

// NewWriter creates a Writer that emits frames of exactly size bytes.
func NewWriter(w io.Writer, size int) (*Writer, error) {
	if size < 1 {
		return nil, ErrInvalidSize
	}
	return &Writer{w: w, size: size}, nil
}

// Size returns the configured frame size in bytes.
func (w *Writer) Size() int {
	return w.size
}

// WriteFrame writes one frame to the stream.
//
// If len(payload) differs from the configured size, WriteFrame fails with
// ErrPayloadSize before touching the stream. Otherwise it blocks until every
// byte is written or the stream reports an error. A short write surfaces as
// an error from the underlying writer, never as a silent partial frame.
func (w *Writer) WriteFrame(payload []byte) error {
	if len(payload) != w.size {
		return ErrPayloadSize
	}

	n, err := w.w.Write(payload)
	if err != nil {
		return err
	}
	if n != w.size {
		return io.ErrShortWrite
	}
	return nil
}

// Reader reads fixed-size frames from an underlying stream.
type Reader struct {
	r    io.Reader
	size int
}

// NewReader creates a Reader that consumes frames of exactly size bytes.
func NewReader(r io.Reader, size int) (*Reader, error) {
	if size < 1 {
		return nil, ErrInvalidSize
	}
	return &Reader{r: r, size: size}, nil
}

// Size returns the configured frame size in bytes.
func (r *Reader) Size() int {
	return r.size
}

// ReadFrame blocks until one full frame has been read and returns its payload
// in a freshly allocated buffer.
//
// A stream that ends cleanly on a frame boundary returns io.EOF. A stream
// that ends after some but not all of a frame's bytes returns
// ErrTruncatedFrame: the reader cannot rewind, so the stream is unusable
// afterwards. Any other error from the underlying reader passes through.
func (r *Reader) ReadFrame() ([]byte, error) {
	buf := make([]byte, r.size)
	if _, err := io.ReadFull(r.r, buf); err != nil {
		if err == io.ErrUnexpectedEOF {
			return nil, ErrTruncatedFrame
		}
		return nil, err
	}
	return buf, nil
}
