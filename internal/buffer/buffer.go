// Package buffer joins fragments of fields spread among several input chunks. All the fields
// of a message are stored back to back in a single slice, so assembling a message allocates
// nothing once the buffer has grown enough.
package buffer

// Buffer is a single slice hosting non-interrelated byte sequences (segments). A segment is
// written by appending fragments and is completed by Finish. Completed segments stay valid
// until Clear.
type Buffer struct {
	memory  []byte
	begin   int
	maxSize int
}

func New(initialSize, maxSize int) Buffer {
	return Buffer{
		memory:  make([]byte, 0, initialSize),
		maxSize: maxSize,
	}
}

// Append writes the fragment into the current segment, unless the total size would exceed
// the limit. In the latter case nothing is written and false is returned.
func (b *Buffer) Append(fragment []byte) (ok bool) {
	if len(b.memory)+len(fragment) > b.maxSize {
		return false
	}

	b.memory = append(b.memory, fragment...)
	return true
}

// Finish completes the current segment, returning its value.
func (b *Buffer) Finish() []byte {
	segment := b.memory[b.begin:len(b.memory):len(b.memory)]
	b.begin = len(b.memory)

	return segment
}

// Len returns the number of bytes taken by all the segments.
func (b *Buffer) Len() int {
	return len(b.memory)
}

// Clear resets the buffer, so old segments may be overridden by new ones.
func (b *Buffer) Clear() {
	b.begin = 0
	b.memory = b.memory[:0]
}
