package ljson

import "fmt"

// walkPath returns the offset of the first byte of the value reached by
// walking path from the root value of src. Each step is either a string
// (object key) or a 1-based int (array index). Panic-based; a failed step
// faults with a KeyNotFoundError, including steps applied to a value of
// the wrong kind.
func walkPath(src Source, path []any) int {
	pos := firstValue(src, 0)
	for _, step := range path {
		switch s := step.(type) {
		case string:
			if byteAt(src, pos) != '{' {
				scanFail(&KeyNotFoundError{Key: s, Step: s})
			}
			v := findKey(src, pos, []byte(s), -1)
			if v < 0 {
				scanFail(&KeyNotFoundError{Key: s, Step: s})
			}
			pos = v
		case int:
			if byteAt(src, pos) != '[' {
				scanFail(&KeyNotFoundError{Step: s})
			}
			v, _ := arrayIndex(src, pos, s)
			if v < 0 {
				scanFail(&KeyNotFoundError{Step: s})
			}
			pos = v
		default:
			scanFail(fmt.Errorf("invalid path element %T", step))
		}
	}
	return pos
}

// SpanAt reports the byte range of the value reached by walking path from
// the root value of src. Unlike ValueAt it resolves spans for the literals
// true, false, and null as well, which makes it the primitive under Splice.
func SpanAt(src Source, path ...any) (sp Span, err error) {
	defer scanRecover(&err)
	pos := walkPath(src, path)
	end := endOfValue(src, pos)
	return Span{Pos: pos, End: end + 1}, nil
}
