// Package cursor implements stepwise traversal over the values of a lazy
// JSON document. A Cursor keeps a stack of the handles it passed through,
// which costs nothing beyond the handles themselves, so moving back up
// never rescans the document.
package cursor

import (
	"fmt"

	"github.com/golazy/ljson"
)

// Path traverses a sequential path into the structure of v, where path
// elements are as documented for the Cursor.Down method. This is a
// convenience wrapper for creating a cursor, applying path, and retrieving
// its value.
func Path[T any](v any, path ...any) (T, error) {
	c := New(v).Down(path...)
	var result T
	if err := c.Err(); err != nil {
		return result, err
	}
	out, ok := c.Value().(T)
	if !ok {
		return result, fmt.Errorf("wrong value type %T", c.Value())
	}
	return out, nil
}

// A Cursor is a pointer that navigates into the structure of a lazy JSON
// value: an ljson handle, a bool, or an ljson.Null.
type Cursor struct {
	org any
	stk []any
	err error
}

// New constructs a new Cursor to traverse the structure of origin.
func New(origin any) *Cursor { return &Cursor{org: origin} }

// Origin returns the origin value of c.
func (c *Cursor) Origin() any { return c.org }

// AtOrigin reports whether c is at its origin.
func (c *Cursor) AtOrigin() bool { return len(c.stk) == 0 }

// Value reports the current value under the cursor.
func (c *Cursor) Value() any {
	if c.AtOrigin() {
		return c.org
	}
	return c.stk[len(c.stk)-1]
}

// Path reports the complete sequence of values from the origin to the
// current location in c.
func (c *Cursor) Path() []any {
	return append([]any{c.org}, c.stk...)
}

// Err reports the error from the most recent traversal operation, if any.
func (c *Cursor) Err() error { return c.err }

// Up moves the cursor one position upward in the structure, if possible.
// It returns c to permit chaining.
func (c *Cursor) Up() *Cursor {
	if n := len(c.stk); n > 0 {
		c.stk = c.stk[:n-1]
	}
	return c
}

// Reset resets the cursor to its origin and clears its error.
func (c *Cursor) Reset() { c.stk = c.stk[:0]; c.err = nil }

// Down traverses a sequential path into the structure of c starting from
// the current value, where path elements are either strings (denoting
// object keys), integers (denoting 1-based offsets into arrays), or
// functions (see below). If the path cannot be completely consumed,
// traversal stops and an error is recorded. Use Err to recover the error.
//
// If a path element is a string, the corresponding value must be an
// ljson.Object, and the string resolves the member with that name.
//
// If a path element is an integer, the corresponding value must be an
// ljson.Array, and the integer resolves to a 1-based index. Negative
// indices count backward from the end (-1 is last, -2 second last); they
// cost an extra scan to learn the length.
//
// If a path element is a function, the function is executed and its result
// becomes the next value in the sequence. The function must have a
// signature
//
//	func(any) (any, error)
//
// If the function reports an error, traversal stops and the error is
// recorded.
func (c *Cursor) Down(path ...any) *Cursor {
	c.err = nil // reset error
	cur := c.Value()
	for _, elt := range path {
		switch t := elt.(type) {
		case string:
			obj, ok := cur.(ljson.Object)
			if !ok {
				return c.setErrorf("cannot traverse %T with %q", cur, elt)
			}
			v, err := obj.Find(t)
			if err != nil {
				c.err = err
				return c
			}
			cur = c.push(v)

		case int:
			arr, ok := cur.(ljson.Array)
			if !ok {
				return c.setErrorf("cannot traverse %T with %v", cur, elt)
			}
			i := t
			if i < 0 {
				n, err := arr.Len()
				if err != nil {
					c.err = err
					return c
				}
				i += n + 1
			}
			v, err := arr.At(i)
			if err != nil {
				c.err = err
				return c
			}
			cur = c.push(v)

		case func(any) (any, error):
			next, err := t(cur)
			if err != nil {
				c.err = err
				return c
			}
			cur = c.push(next)

		default:
			return c.setErrorf("invalid path element %T", elt)
		}
	}
	return c
}

func (c *Cursor) push(v any) any { c.stk = append(c.stk, v); return v }

func (c *Cursor) setErrorf(msg string, args ...any) *Cursor {
	c.err = fmt.Errorf(msg, args...)
	return c
}
