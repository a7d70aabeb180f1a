package ljson

import (
	"fmt"
)

// The scanner is stateless: every operation takes a Source and an offset and
// returns a new offset. Malformed input and streaming exhaustion are
// reported by panicking with a scanFault, which the public entry points
// recover into an ordinary error. Keeping the byte loops free of error
// plumbing is what lets them run sentinel-terminated without bounds checks.

type scanFault struct{ err error }

func scanFail(err error) { panic(scanFault{err}) }

func scanFailf(src Source, pos int, code ParseErrorCode, msg string, args ...any) {
	scanFail(newParseError(src, pos, code, fmt.Sprintf(msg, args...)))
}

// scanRecover converts a scanFault panic into the error it carries. Any
// other panic is re-raised.
func scanRecover(errp *error) {
	if p := recover(); p != nil {
		f, ok := p.(scanFault)
		if !ok {
			panic(p)
		}
		*errp = f.err
	}
}

// byteAt reads a content byte, converting the "more input expected" sentinel
// into an exhaustion fault. Call sites that handle the sentinels explicitly
// read from the Source directly instead.
func byteAt(src Source, pos int) byte {
	b := src.ByteAt(pos)
	if b == MoreInputByte {
		scanFail(ErrInputExhausted)
	}
	return b
}

// skipWhitespace advances pos past any whitespace bytes.
func skipWhitespace(src Source, pos int) int {
	for isWhitespace(src.ByteAt(pos)) {
		pos = src.Advance(pos)
	}
	return pos
}

// skipNoise advances past the byte at pos, then past any whitespace and
// structural separators. This is the canonical step from the last byte of
// one token to the first byte of the next.
func skipNoise(src Source, pos int) int {
	pos = src.Advance(pos)
	for isValueNoise(src.ByteAt(pos)) {
		pos = src.Advance(pos)
	}
	return pos
}

// endOfValue returns the offset of the last byte of the value whose first
// byte is at pos.
func endOfValue(src Source, pos int) int {
	switch b := byteAt(src, pos); {
	case isStructuralBegin(b):
		return endOfCollection(src, pos)
	case b == '"':
		end, _ := endOfString(src, pos)
		return end
	case isNumberStart(b):
		return endOfNumber(src, pos)
	case b == 't', b == 'n':
		end := pos + 3
		_ = byteAt(src, end) // force exhaustion if the literal is cut short
		return end
	case b == 'f':
		end := pos + 4
		_ = byteAt(src, end)
		return end
	default:
		scanFailf(src, pos, CodeUnexpectedByte, "unexpected byte %q", b)
		return 0
	}
}

// endOfCollection returns the offset of the bracket matching the one at pos.
// It maintains a nesting counter and skips over primitive tokens wholesale,
// so string contents cannot confuse the bracket count.
func endOfCollection(src Source, pos int) int {
	depth, i := 1, pos
	for {
		i = skipNoise(src, i)
		switch b := src.ByteAt(i); {
		case b == MoreInputByte:
			scanFail(ErrInputExhausted)
		case b == TerminatorByte:
			scanFailf(src, pos, CodeUnbalanced, "unbalanced brackets")
		case isStructuralBegin(b):
			depth++
		case isStructuralEnd(b):
			depth--
			if depth == 0 {
				return i
			}
		default:
			i = endOfValue(src, i)
		}
	}
}

// endOfString returns the offset of the closing quote of the string whose
// opening quote is at pos, and reports whether any escape sequence occurred
// in the body. The byte after a backslash is consumed unconditionally, so a
// quote cannot end the string from inside an escape.
func endOfString(src Source, pos int) (end int, hasEscape bool) {
	i := src.Advance(pos)
	for {
		switch src.ByteAt(i) {
		case '"':
			return i, hasEscape
		case '\\':
			hasEscape = true
			i = src.Advance(i)
			switch src.ByteAt(i) {
			case TerminatorByte:
				scanFail(UnterminatedString(src, pos))
			case MoreInputByte:
				scanFail(ErrInputExhausted)
			}
		case TerminatorByte:
			scanFail(UnterminatedString(src, pos))
		case MoreInputByte:
			scanFail(ErrInputExhausted)
		}
		i = src.Advance(i)
	}
}

// endOfNumber returns the offset of the last byte of the numeric token
// beginning at pos. The token runs until whitespace, a structural close, a
// comma, or the terminator; validation of the digits themselves is deferred
// to the Number view.
func endOfNumber(src Source, pos int) int {
	for {
		next := src.Advance(pos)
		b := src.ByteAt(next)
		if b == MoreInputByte {
			scanFail(ErrInputExhausted)
		}
		if isWhitespace(b) || isStructuralEnd(b) || b == ',' || b == TerminatorByte {
			return pos
		}
		pos = next
	}
}

// firstValue returns the offset of the first byte of the value at or after
// pos, skipping leading whitespace.
func firstValue(src Source, pos int) int {
	pos = skipWhitespace(src, pos)
	if src.ByteAt(pos) == MoreInputByte {
		scanFail(ErrInputExhausted)
	}
	return pos
}

// findKey scans the members of the object whose opening brace is at pos for
// the named key and returns the offset of the first byte of its value, or -1
// if the object has no such member. Keys without escapes are compared
// byte-for-byte against key; keys with escapes are decoded first.
//
// If from >= 0 it must be the offset of a member key (a '"' byte) within the
// object, and the scan starts there instead of at the first member. Callers
// reading fields in declaration order can thread one lookup's end into the
// next lookup's start to amortise a sequence of lookups over a single pass.
func findKey(src Source, pos int, key []byte, from int) int {
	i := skipNoise(src, pos)
	if from >= 0 {
		i = from
	}
	for {
		switch b := byteAt(src, i); {
		case b == '}':
			return -1
		case b != '"':
			scanFailf(src, i, CodeUnexpectedByte, "unexpected byte %q in object", b)
		}
		keyEnd, esc := endOfString(src, i)
		var match bool
		if esc {
			match = matchEscapedKey(src, i, key)
		} else {
			match = bytesEqual(src, i+1, keyEnd, key)
		}
		val := skipNoise(src, keyEnd)
		if match {
			return val
		}
		i = skipNoise(src, endOfValue(src, val))
	}
}

// matchEscapedKey decodes the key string beginning at pos and compares its
// decoded bytes to key.
func matchEscapedKey(src Source, pos int, key []byte) bool {
	dec := decodeStringAt(src, pos)
	if len(dec) != len(key) {
		return false
	}
	for i, b := range key {
		if dec[i] != b {
			return false
		}
	}
	return true
}
