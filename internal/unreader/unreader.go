// Package unreader reads a stream in fixed-size portions and lets the consumer give back
// the part it didn't consume, so the next read returns it first.
package unreader

import "io"

type Reader struct {
	src     io.Reader
	buff    []byte
	pending []byte
}

func New(src io.Reader, buff []byte) *Reader {
	return &Reader{
		src:  src,
		buff: buff,
	}
}

// Read returns the pending data if there's any, otherwise the next portion of the source.
// The returned slice is valid until the next call.
func (r *Reader) Read() ([]byte, error) {
	if len(r.pending) > 0 {
		data := r.pending
		r.pending = nil
		return data, nil
	}

	n, err := r.src.Read(r.buff)

	return r.buff[:n], err
}

// Unread makes b the result of the next Read. The slice must stay intact until then.
func (r *Reader) Unread(b []byte) {
	r.pending = b
}

// Drain discards the pending data and everything left in the source, returning the
// number of bytes thrown away.
func (r *Reader) Drain() (int64, error) {
	n := int64(len(r.pending))
	r.pending = nil
	m, err := io.CopyBuffer(io.Discard, r.src, r.buff)

	return n + m, err
}
