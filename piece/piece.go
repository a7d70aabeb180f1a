// Package piece implements a piece-table byte string: a logical sequence
// assembled from views over immutable backing buffers. Splicing produces a
// new table that shares the unchanged fragments of the original, so an
// edited document never copies the text it kept.
//
// A Table satisfies the byte source contract of package ljson (ByteAt,
// Advance, Length), which lets the scanner traverse an edited document
// without flattening it first. Reads past the end return the NUL sentinel
// of a complete source.
package piece

import (
	"io"
	"sort"
)

// A Table is an immutable logical byte string composed of fragments. Each
// fragment is a non-empty view over some backing buffer; the table is the
// concatenation of its fragments. Fragments are never nested tables: a
// table built from other tables takes over their leaf fragments, so the
// structure is always one level deep.
type Table struct {
	frags [][]byte
	cum   []int // cumulative end offset of each fragment
	size  int
}

// Of constructs a Table from the given fragments. Empty fragments are
// dropped; the fragment contents are not copied, and the caller must not
// mutate them afterward.
func Of(frags ...[]byte) *Table {
	t := &Table{}
	for _, f := range frags {
		t.push(f)
	}
	return t
}

// FromBytes constructs a single-fragment Table viewing buf.
func FromBytes(buf []byte) *Table { return Of(buf) }

// FromString constructs a single-fragment Table over the bytes of s.
func FromString(s string) *Table { return FromBytes([]byte(s)) }

func (t *Table) push(f []byte) {
	if len(f) == 0 {
		return
	}
	t.size += len(f)
	t.frags = append(t.frags, f)
	t.cum = append(t.cum, t.size)
}

// Length reports the number of bytes in the table. It satisfies the byte
// source contract; the sum of fragment lengths is maintained as the table
// is built, not recomputed.
func (t *Table) Length() int { return t.size }

// ByteAt returns the byte at logical offset i, or the NUL sentinel when i
// is out of range.
func (t *Table) ByteAt(i int) byte {
	fi, off := t.locate(i)
	if fi < 0 {
		return 0x00
	}
	return t.frags[fi][off]
}

// Advance returns the next logical offset after i. Logical offsets are
// dense integers; crossing a fragment boundary is handled by ByteAt.
func (t *Table) Advance(i int) int { return i + 1 }

// locate splits logical offset i into a fragment index and an offset
// within that fragment. It returns fragment -1 when i is out of range.
func (t *Table) locate(i int) (fi, off int) {
	if i < 0 || i >= t.size {
		return -1, 0
	}
	fi = sort.SearchInts(t.cum, i+1)
	start := 0
	if fi > 0 {
		start = t.cum[fi-1]
	}
	return fi, i - start
}

// Slice returns the bytes in [start, end). When the range lies within one
// fragment the result is a view of that fragment and must be treated as
// read-only; otherwise it is a fresh copy.
func (t *Table) Slice(start, end int) []byte {
	if start < 0 {
		start = 0
	}
	if end > t.size {
		end = t.size
	}
	if start >= end {
		return nil
	}
	fi, off := t.locate(start)
	if rest := t.frags[fi][off:]; len(rest) >= end-start {
		return rest[:end-start]
	}
	out := make([]byte, 0, end-start)
	for i := fi; i < len(t.frags) && len(out) < end-start; i++ {
		f := t.frags[i]
		if i == fi {
			f = f[off:]
		}
		if n := end - start - len(out); len(f) > n {
			f = f[:n]
		}
		out = append(out, f...)
	}
	return out
}

// Bytes returns a flattened copy of the table's contents.
func (t *Table) Bytes() []byte {
	out := make([]byte, 0, t.size)
	for _, f := range t.frags {
		out = append(out, f...)
	}
	return out
}

func (t *Table) String() string { return string(t.Bytes()) }

// WriteTo writes the table's contents to w, fragment by fragment.
func (t *Table) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, f := range t.frags {
		n, err := w.Write(f)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Splice returns a new table in which the logical byte range [start, end)
// of t is replaced by the contents of repl. Neither t nor repl is
// modified; the result shares their fragments. The fragments of repl are
// adopted directly, keeping the result one level deep.
//
// Splice panics if the range is not ordered or not within the table; range
// errors here are programming mistakes, not data-dependent conditions.
func (t *Table) Splice(start, end int, repl *Table) *Table {
	if start < 0 || end < start || end > t.size {
		panic("piece: splice range out of bounds")
	}
	out := &Table{}

	// Prefix: whole fragments before start, plus the head of the fragment
	// containing it.
	remain := start
	for _, f := range t.frags {
		if remain <= 0 {
			break
		}
		if len(f) > remain {
			f = f[:remain]
		}
		out.push(f)
		remain -= len(f)
	}

	if repl != nil {
		for _, f := range repl.frags {
			out.push(f)
		}
	}

	// Suffix: the tail of the fragment containing end, plus the fragments
	// after it.
	if end < t.size {
		fi, off := t.locate(end)
		out.push(t.frags[fi][off:])
		for _, f := range t.frags[fi+1:] {
			out.push(f)
		}
	}
	return out
}

// Insert returns a new table with the contents of repl inserted at logical
// offset pos.
func (t *Table) Insert(pos int, repl *Table) *Table { return t.Splice(pos, pos, repl) }

// Delete returns a new table with the logical byte range [start, end)
// removed.
func (t *Table) Delete(start, end int) *Table { return t.Splice(start, end, nil) }
