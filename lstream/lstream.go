// Package lstream adapts the lazy scanner of package ljson to input that
// arrives incrementally from an io.Reader.
//
// A Buffer is an append-only byte buffer paired with the reader feeding
// it. It satisfies the ljson Source contract, reporting the "more input
// expected" sentinel past its last byte until the reader reaches
// end-of-file, after which it reports the terminator of a complete source.
// A scan that runs into the streaming sentinel fails with
// ljson.ErrInputExhausted; the Pump method recovers that failure, reads
// more bytes, and re-runs the scan. Scanner operations are pure functions
// of the source and a start offset, so re-running them is safe.
//
//	b := lstream.New(resp.Body)
//	v, err := b.ValueAt("owner", "login")
//
// The convenience methods Value, ValueAt, and Splice wrap themselves in
// Pump, so their callers never observe ErrInputExhausted. Code driving
// iterators or handle methods directly wraps the whole access in Pump and
// restarts it from scratch on retry:
//
//	var sum int64
//	err := b.Pump(func() error {
//	   sum = 0
//	   it := arr.Iter()
//	   for it.Next() {
//	      ...
//	   }
//	   return it.Err()
//	})
//
// A Buffer is not safe for concurrent use while a pump is in flight: the
// pump mutates the buffer. Between pumps it may be read freely.
package lstream

import (
	"context"
	"errors"
	"io"

	"github.com/golazy/ljson"
	"github.com/golazy/ljson/internal/ratelimit"
	"github.com/golazy/ljson/piece"
)

const defaultChunkSize = 4096

// A Buffer is a growing byte buffer fed from an io.Reader, usable as an
// ljson.Source.
type Buffer struct {
	r     io.Reader
	buf   []byte
	eof   bool
	chunk int
	ctx   context.Context
	lim   *ratelimit.Limiter
}

// An Option adjusts the construction of a Buffer.
type Option func(*Buffer)

// WithChunkSize sets the number of bytes requested from the reader per
// refill. The default is 4096.
func WithChunkSize(n int) Option {
	return func(b *Buffer) {
		if n > 0 {
			b.chunk = n
		}
	}
}

// WithReadLimit paces refills to at most perSecond reads per second. A
// zero or negative value, the default, disables pacing.
func WithReadLimit(perSecond float64) Option {
	return func(b *Buffer) { b.lim = ratelimit.New(perSecond) }
}

// WithContext sets the context governing paced refills. Cancelling it
// aborts a pump blocked on the read limiter. The default is
// context.Background.
func WithContext(ctx context.Context) Option {
	return func(b *Buffer) { b.ctx = ctx }
}

// New constructs a Buffer that consumes input from r.
func New(r io.Reader, opts ...Option) *Buffer {
	b := &Buffer{r: r, chunk: defaultChunkSize, ctx: context.Background()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// ByteAt satisfies the ljson Source contract. Past the last byte read so
// far it reports the streaming sentinel, or the terminator once the reader
// has reached end-of-file.
func (b *Buffer) ByteAt(i int) byte {
	if i >= 0 && i < len(b.buf) {
		return b.buf[i]
	}
	if b.eof {
		return ljson.TerminatorByte
	}
	return ljson.MoreInputByte
}

// Advance satisfies the ljson Source contract.
func (b *Buffer) Advance(i int) int { return i + 1 }

// Length reports the number of bytes read so far.
func (b *Buffer) Length() int { return len(b.buf) }

// Slice returns a read-only view of the bytes in [start, end) that have
// already been read.
func (b *Buffer) Slice(start, end int) []byte {
	if start < 0 {
		start = 0
	}
	if end > len(b.buf) {
		end = len(b.buf)
	}
	if start >= end {
		return nil
	}
	return b.buf[start:end]
}

// fill reads one chunk from the underlying reader, extending the buffer.
// Reaching end-of-file flips the sentinel to the terminator.
func (b *Buffer) fill() error {
	if b.lim != nil {
		if err := b.lim.Wait(b.ctx); err != nil {
			return err
		}
	}
	for {
		off := len(b.buf)
		b.buf = append(b.buf, make([]byte, b.chunk)...)
		n, err := b.r.Read(b.buf[off:])
		b.buf = b.buf[:off+n]
		if err == io.EOF {
			b.eof = true
			return nil
		} else if err != nil {
			return err
		} else if n > 0 {
			return nil
		}
		// A reader may legitimately return 0, nil; try again.
	}
}

// Pump runs f, and each time it fails with ljson.ErrInputExhausted reads
// more input and runs it again. f must be idempotent: it is re-executed
// from its original start each retry. If the input ends before f can
// complete, Pump reports a ParseError for the truncated document.
func (b *Buffer) Pump(f func() error) error {
	for {
		err := f()
		if !errors.Is(err, ljson.ErrInputExhausted) {
			return err
		}
		if b.eof {
			return b.truncated()
		}
		if ferr := b.fill(); ferr != nil {
			return ferr
		}
	}
}

func (b *Buffer) truncated() error {
	return ljson.Truncated(b, len(b.buf))
}

// Value returns the root value of the stream, reading input up to the
// value's closing byte. Reading through the whole value first is what
// makes later conversions on the returned handle safe: they scan only
// bytes that are already in the buffer.
func (b *Buffer) Value() (v any, err error) {
	return b.ValueAt()
}

// ValueAt returns the value reached by walking path from the root,
// reading input until every step resolves and the value's closing byte
// has arrived.
func (b *Buffer) ValueAt(path ...any) (v any, err error) {
	err = b.Pump(func() error {
		if _, err := ljson.SpanAt(b, path...); err != nil {
			return err
		}
		v, err = ljson.ValueAt(b, path...)
		return err
	})
	return v, err
}

// Splice edits the value at path in the streamed document. It reads input
// through the closing byte of the root value, since the suffix of the edit
// runs to the end of the document; the returned table views the buffer read
// so far.
func (b *Buffer) Splice(path []any, replacement []byte) (t *piece.Table, err error) {
	err = b.Pump(func() error {
		// The suffix of the edit spans the whole document, so the stream
		// must be complete before the table can be assembled.
		_, err := ljson.SpanAt(b)
		if err != nil {
			return err
		}
		t, err = ljson.Splice(b, path, replacement)
		return err
	})
	return t, err
}
