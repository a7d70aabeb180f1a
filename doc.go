// Package ljson implements a lazy JSON reader. A document held in a
// contiguous byte buffer is exposed through numeric, string, array, and
// object views that scan only as far as each access requires; no tree of
// nodes is built, and every value is a small handle holding a reference to
// the source and the offset where the value begins.
//
// # Sources and handles
//
// A Source is a sentinel-terminated byte sequence. Wrap a complete buffer
// with NewStaticSource and construct the root value with Value:
//
//	src := ljson.NewStaticSource([]byte(`{"name": "aki", "tags": [1, 2]}`))
//	v, err := ljson.Value(src)
//
// Value returns an ljson.Object, ljson.Array, ljson.String, or
// ljson.Number handle, or a bool or ljson.Null for the constants. Navigate
// with a type switch, or walk a whole path at once:
//
//	v, err := ljson.ValueAt(src, "tags", 2)
//
// Path elements are object keys (strings) and 1-based array indices
// (ints). The verbatim text of any handle is available without decoding:
//
//	text, err := handle.JSON()
//
// # Numbers and strings
//
// A Number parses its text only when converted. Conversions widen as the
// text demands: int64, then big.Int, then float64, then an
// arbitrary-precision decimal. A String decodes escapes on the fly;
// HasEscape reports whether a zero-copy borrow of the body is possible,
// and Chars iterates decoded characters without materialising anything:
//
//	it := s.Chars()
//	for it.Next() {
//	   use(it.Rune())
//	}
//
// # Editing
//
// Splice replaces one value inside a document and returns a piece table
// sharing every byte it kept:
//
//	edited, err := ljson.Splice(src, []any{"tags", 2}, []byte("7"))
//
// The result is itself a Source and can be navigated or spliced again; see
// package piece.
//
// # Streaming
//
// Package lstream adapts the same scanner to a buffer fed incrementally
// from an io.Reader, retrying any access that runs past the bytes read so
// far. See its documentation for details.
package ljson
