package ljson

import (
	"github.com/golazy/ljson/piece"
)

// Splice returns a new document in which the value at path within src is
// replaced by replacement, which must be the serialised JSON text of a
// single value. The rest of the document is not re-serialised: the result
// is a piece table holding the prefix of src up to the replaced value, the
// replacement text, and the suffix of src after it. The original source is
// unchanged and the unchanged bytes are shared, not copied.
//
// The returned table is itself a Source, so the edited document can be
// navigated, and spliced again, without flattening.
func Splice(src Source, path []any, replacement []byte) (*piece.Table, error) {
	sp, err := SpanAt(src, path...)
	if err != nil {
		return nil, err
	}
	if t, ok := src.(*piece.Table); ok {
		return t.Splice(sp.Pos, sp.End, piece.FromBytes(replacement)), nil
	}
	return piece.Of(
		sliceBytes(src, 0, sp.Pos),
		replacement,
		sliceBytes(src, sp.End, src.Length()),
	), nil
}

// SpliceValue replaces the value at path with the JSON serialisation of a
// replacement Handle, preserving its verbatim text.
func SpliceValue(src Source, path []any, replacement Handle) (*piece.Table, error) {
	text, err := replacement.JSON()
	if err != nil {
		return nil, err
	}
	return Splice(src, path, text)
}

// SpliceString replaces the value at path with the JSON string form of s,
// quoting and escaping as needed.
func SpliceString(src Source, path []any, s string) (*piece.Table, error) {
	return Splice(src, path, []byte(Quote(s)))
}
