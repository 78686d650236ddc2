// Package buffer provides the growable byte buffer used as the abstract
// ByteBuffer collaborator in this module: the raw and canonical buffers
// inside an input stream.
package buffer

// Interface is the abstract ByteBuffer contract. A concrete Buffer
// satisfies it; callers that only need the contract can depend on
// Interface rather than on the concrete type.
type Interface interface {
	// Append adds data to the end of the buffer, growing it as needed.
	Append(data []byte)

	// Insert splices data into the buffer at the given offset, growing it
	// as needed. Panics if off is out of [0, Len()].
	Insert(off int, data []byte)

	// Discard removes length bytes starting at off, shifting the
	// remainder down. Panics if the range is out of bounds.
	Discard(off, length int)

	// Grow ensures the buffer has room for at least minCap bytes without
	// reallocating. It never shrinks the existing allocation.
	Grow(minCap int)

	// Bytes returns the buffer's current contents. The slice is valid
	// until the next mutating call.
	Bytes() []byte

	// Len returns the number of bytes currently stored.
	Len() int

	// Cap returns the number of bytes the buffer can hold before its next
	// growth.
	Cap() int
}

const defaultCapacity = 256

// Buffer is a growable byte array with a doubling growth policy that never
// shrinks, grounded on the teacher's bytes.Buffer-backed BufferStream
// (internal/BufferStream.go) but specialized to the explicit
// append/insert/discard/grow contract the spec requires rather than
// io.Reader/io.Writer semantics.
type Buffer struct {
	data []byte
}

// New creates an empty Buffer with a small default capacity.
func New() *Buffer {
	return &Buffer{data: make([]byte, 0, defaultCapacity)}
}

// NewWithCapacity creates an empty Buffer with at least the given capacity.
func NewWithCapacity(capacity int) *Buffer {
	if capacity < 0 {
		capacity = 0
	}
	return &Buffer{data: make([]byte, 0, capacity)}
}

// NewFromBytes creates a Buffer whose initial contents are a copy of data.
func NewFromBytes(data []byte) *Buffer {
	b := &Buffer{data: make([]byte, len(data))}
	copy(b.data, data)
	return b
}

// Append adds data to the end of the buffer.
func (b *Buffer) Append(data []byte) {
	if len(data) == 0 {
		return
	}

	b.Grow(len(b.data) + len(data))
	b.data = append(b.data, data...)
}

// Insert splices data into the buffer at offset off.
func (b *Buffer) Insert(off int, data []byte) {
	if off < 0 || off > len(b.data) {
		panic("buffer: insert offset out of range")
	}

	if len(data) == 0 {
		return
	}

	b.Grow(len(b.data) + len(data))
	b.data = b.data[:len(b.data)+len(data)]
	copy(b.data[off+len(data):], b.data[off:len(b.data)-len(data)])
	copy(b.data[off:], data)
}

// Discard removes length bytes starting at offset off.
func (b *Buffer) Discard(off, length int) {
	if length == 0 {
		return
	}

	if off < 0 || length < 0 || off+length > len(b.data) {
		panic("buffer: discard range out of bounds")
	}

	copy(b.data[off:], b.data[off+length:])
	b.data = b.data[:len(b.data)-length]
}

// Grow ensures the buffer can hold at least minCap bytes without
// reallocating, doubling its capacity (at least) until it does. It never
// reduces the existing allocation.
func (b *Buffer) Grow(minCap int) {
	if minCap <= cap(b.data) {
		return
	}

	newCap := cap(b.data)
	if newCap == 0 {
		newCap = defaultCapacity
	}

	for newCap < minCap {
		newCap *= 2
	}

	grown := make([]byte, len(b.data), newCap)
	copy(grown, b.data)
	b.data = grown
}

// Bytes returns the buffer's current contents.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Len returns the number of bytes currently stored.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Cap returns the buffer's current capacity.
func (b *Buffer) Cap() int {
	return cap(b.data)
}

// Reset empties the buffer without releasing its allocation.
func (b *Buffer) Reset() {
	b.data = b.data[:0]
}

// Truncate shortens the buffer to n bytes. Panics if n is out of
// [0, Len()].
func (b *Buffer) Truncate(n int) {
	if n < 0 || n > len(b.data) {
		panic("buffer: truncate length out of range")
	}

	b.data = b.data[:n]
}
