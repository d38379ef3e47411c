// Package message assembles whole HTTP/1 messages out of the fragments reported by the
// parser. It's the simplest possible embedder: everything is stored, nothing is streamed.
package message

import (
	"strings"

	"github.com/indigo-web/httparse/http/method"
	"github.com/indigo-web/httparse/http/proto"
	"github.com/indigo-web/httparse/http/status"
	"github.com/indigo-web/httparse/httpparser"
	"github.com/indigo-web/httparse/kv"
)

// Message is a complete request or response. Strings and slices point into the collector's
// buffers and are valid only until the OnMessage callback returns. Use Clone to retain it.
type Message struct {
	Kind httpparser.Kind
	// Method is set for requests only.
	Method method.Method
	// Status and Reason are set for responses only.
	Status status.Code
	Reason string
	URL    string
	// Proto is Unknown for version pairs other than 0.9, 1.0 and 1.1. The version as it
	// is, is always available via Major and Minor.
	Proto        proto.Proto
	Major, Minor uint16
	Headers      *kv.Storage
	// Trailers are headers following the last chunk of a chunked body.
	Trailers *kv.Storage
	Body     []byte
	// Chunks holds sizes of all the body chunks, including the last zero-sized one.
	Chunks    []uint64
	KeepAlive bool
	Upgrade   bool
}

func (m *Message) Chunked() bool {
	return len(m.Chunks) > 0
}

// Version renders the protocol version as it appears on the wire.
func (m *Message) Version() string {
	return proto.Format(m.Major, m.Minor)
}

// Clone returns a deep copy, independent of the collector.
func (m *Message) Clone() *Message {
	clone := *m
	clone.Reason = strings.Clone(m.Reason)
	clone.URL = strings.Clone(m.URL)
	clone.Headers = cloneStorage(m.Headers)
	clone.Trailers = cloneStorage(m.Trailers)
	clone.Body = append([]byte(nil), m.Body...)
	clone.Chunks = append([]uint64(nil), m.Chunks...)

	return &clone
}

func cloneStorage(s *kv.Storage) *kv.Storage {
	clone := kv.NewPrealloc(s.Len())
	for key, value := range s.Pairs() {
		clone.Add(strings.Clone(key), strings.Clone(value))
	}

	return clone
}

func (m *Message) reset() {
	headers, trailers := m.Headers, m.Trailers
	chunks := m.Chunks[:0]
	*m = Message{
		Headers:  headers.Clear(),
		Trailers: trailers.Clear(),
		Chunks:   chunks,
	}
}
