package ljson

import "go4.org/mem"

// Sentinel bytes placed one past the last addressable byte of a Source, so
// that scanner loops can run to completion without explicit bounds checks.
// A Source backed by a complete, static buffer reports TerminatorByte; a
// Source backed by a growing streaming buffer reports MoreInputByte until
// the underlying stream reaches end-of-file.
const (
	TerminatorByte byte = 0x00 // complete source, no more bytes will ever follow
	MoreInputByte  byte = 0x17 // ASCII ETB: streaming source awaiting more bytes
)

// A Source is a contiguous, random-access, sentinel-terminated byte
// sequence. Implementations must return TerminatorByte or MoreInputByte for
// any index at or beyond Length, and must never panic for an in-range
// index.
//
// All Scanner operations are pure functions of a Source and an offset, so a
// single Source may be shared freely across goroutines as long as nothing
// mutates it concurrently with a read.
type Source interface {
	// ByteAt returns the byte at index i. It returns a sentinel byte for any
	// i >= Length(); it never panics.
	ByteAt(i int) byte

	// Advance returns the next index after i. For a flat buffer this is
	// always i+1; a Source whose storage is fragmented (see package piece)
	// may use this hook to skip internal bookkeeping, though in practice
	// every Source in this module advances one byte at a time.
	Advance(i int) int

	// Length reports the number of bytes addressable without reading the
	// sentinel.
	Length() int
}

// A Slicer is an optional capability of a Source that can hand back a
// borrowed view of a byte range without copying, when the range happens to
// live in one contiguous backing array. Callers must treat the returned
// slice as read-only and must not retain it past the lifetime of the
// Source.
type Slicer interface {
	// Slice returns the bytes in [start, end). Implementations may return a
	// freshly allocated copy when the range is not contiguous in storage.
	Slice(start, end int) []byte
}

// StaticSource is a Source over a complete, immutable byte buffer.
type StaticSource struct {
	buf []byte
}

// NewStaticSource wraps buf as a Source. The caller must not mutate buf
// afterward; every Handle built over this Source borrows it directly.
func NewStaticSource(buf []byte) StaticSource { return StaticSource{buf: buf} }

// ByteAt implements Source.
func (s StaticSource) ByteAt(i int) byte {
	if i < 0 || i >= len(s.buf) {
		return TerminatorByte
	}
	return s.buf[i]
}

// Advance implements Source.
func (s StaticSource) Advance(i int) int { return i + 1 }

// Length implements Source.
func (s StaticSource) Length() int { return len(s.buf) }

// Slice implements Slicer with a zero-copy borrow.
func (s StaticSource) Slice(start, end int) []byte {
	if start < 0 {
		start = 0
	}
	if end > len(s.buf) {
		end = len(s.buf)
	}
	if start >= end {
		return nil
	}
	return s.buf[start:end]
}

// sliceBytes returns the bytes of src in [start, end), using the Slicer
// fast path when available and falling back to a byte-by-byte copy
// otherwise. The returned slice must be treated as read-only when it came
// from the fast path.
func sliceBytes(src Source, start, end int) []byte {
	if sl, ok := src.(Slicer); ok {
		return sl.Slice(start, end)
	}
	if end <= start {
		return nil
	}
	out := make([]byte, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, src.ByteAt(i))
	}
	return out
}

// bytesEqual reports whether the bytes of src in [start, end) equal want,
// without materialising the source range when the source supports Slicer.
func bytesEqual(src Source, start, end int, want []byte) bool {
	if end-start != len(want) {
		return false
	}
	if sl, ok := src.(Slicer); ok {
		got := sl.Slice(start, end)
		if got != nil || start == end {
			return mem.B(got).Equal(mem.B(want))
		}
	}
	for i := start; i < end; i++ {
		if src.ByteAt(i) != want[i-start] {
			return false
		}
	}
	return true
}
