// Package escape handles quoting and unquoting of JSON string bodies.
//
// Unquoting is tolerant rather than strict: escape sequences that cannot be
// decoded are retained literally, and lone UTF-16 surrogates are preserved
// in their three-byte encoded form instead of being replaced. Bytes outside
// escape sequences are copied verbatim, whether or not they are valid
// UTF-8.
package escape

import (
	"unicode/utf8"

	"go4.org/mem"
)

// Unquote decodes a byte slice containing the body of a JSON string. The
// input must have the enclosing double quotation marks already removed.
//
// Escape sequences are replaced with their unescaped equivalents. A \u
// escape pair spelling a UTF-16 surrogate pair decodes to the single code
// point it denotes; a lone surrogate is encoded as the three bytes of its
// code unit. An unknown escape character, or a \u escape with fewer than
// four hex digits remaining, keeps its literal backslash.
func Unquote(src mem.RO) []byte {
	dec := make([]byte, 0, src.Len())
	for {
		i := mem.IndexByte(src, '\\')
		if i < 0 {
			return mem.Append(dec, src)
		}
		dec = mem.Append(dec, src.SliceTo(i))
		src = src.SliceFrom(i)

		if src.Len() < 2 {
			// A trailing backslash with nothing after it is kept.
			return append(dec, '\\')
		}
		switch e := src.At(1); e {
		case '"', '\\', '/':
			dec = append(dec, e)
			src = src.SliceFrom(2)
		case 'b':
			dec = append(dec, '\b')
			src = src.SliceFrom(2)
		case 'f':
			dec = append(dec, '\f')
			src = src.SliceFrom(2)
		case 'n':
			dec = append(dec, '\n')
			src = src.SliceFrom(2)
		case 'r':
			dec = append(dec, '\r')
			src = src.SliceFrom(2)
		case 't':
			dec = append(dec, '\t')
			src = src.SliceFrom(2)
		case 'u':
			r, n, ok := decodeUnicode(src)
			if !ok {
				dec = append(dec, '\\')
				src = src.SliceFrom(1)
			} else {
				dec = AppendRune(dec, r)
				src = src.SliceFrom(n)
			}
		default:
			// Unknown escape: keep the backslash, the escape character is
			// copied as an ordinary byte on the next pass.
			dec = append(dec, '\\')
			src = src.SliceFrom(1)
		}
	}
}

// decodeUnicode decodes the \uXXXX escape at the front of src, combining a
// surrogate pair written as two consecutive \u escapes into one code point.
// It reports the number of input bytes consumed.
func decodeUnicode(src mem.RO) (r rune, n int, ok bool) {
	v, ok := hex4(src, 2)
	if !ok {
		return 0, 0, false
	}
	if v >= 0xD800 && v <= 0xDBFF && src.Len() >= 12 &&
		src.At(6) == '\\' && src.At(7) == 'u' {
		if lo, ok := hex4(src, 8); ok && lo >= 0xDC00 && lo <= 0xDFFF {
			return 0x10000 + ((v - 0xD800) << 10) + (lo - 0xDC00), 12, true
		}
	}
	return v, 6, true
}

// hex4 decodes the four hex digits of src at offsets [i, i+4).
func hex4(src mem.RO, i int) (rune, bool) {
	if src.Len() < i+4 {
		return 0, false
	}
	var v rune
	for j := i; j < i+4; j++ {
		b := src.At(j)
		v <<= 4
		switch {
		case b >= '0' && b <= '9':
			v += rune(b - '0')
		case b >= 'a' && b <= 'f':
			v += rune(b - 'a' + 10)
		case b >= 'A' && b <= 'F':
			v += rune(b - 'A' + 10)
		default:
			return 0, false
		}
	}
	return v, true
}

// AppendRune appends the encoding of r to dst. Unlike utf8.AppendRune it
// encodes a surrogate code point as its three-byte form rather than
// substituting the replacement rune, so lone surrogates survive a decode
// and re-encode round trip.
func AppendRune(dst []byte, r rune) []byte {
	if r >= 0xD800 && r <= 0xDFFF {
		return append(dst,
			0xE0|byte(r>>12), 0x80|byte((r>>6)&0x3F), 0x80|byte(r&0x3F))
	}
	return utf8.AppendRune(dst, r)
}

var hexDigit = []byte("0123456789abcdef")

// Quote encodes src for inclusion in a JSON string, escaping quotation
// marks, backslashes, and control characters. The enclosing quotation marks
// are not added.
func Quote(src mem.RO) []byte {
	buf := make([]byte, 0, src.Len())
	for src.Len() != 0 {
		r, n := mem.DecodeRune(src)
		if n == 0 {
			n = 1
		}
		switch {
		case r == '"' || r == '\\':
			buf = append(buf, '\\', byte(r))
		case r == '\b':
			buf = append(buf, '\\', 'b')
		case r == '\f':
			buf = append(buf, '\\', 'f')
		case r == '\n':
			buf = append(buf, '\\', 'n')
		case r == '\r':
			buf = append(buf, '\\', 'r')
		case r == '\t':
			buf = append(buf, '\\', 't')
		case r < ' ':
			buf = append(buf, '\\', 'u', '0', '0', hexDigit[r>>4], hexDigit[r&15])
		case r < utf8.RuneSelf:
			buf = append(buf, byte(r))
		default:
			var rbuf [utf8.UTFMax]byte
			w := utf8.EncodeRune(rbuf[:], r)
			buf = append(buf, rbuf[:w]...)
		}
		src = src.SliceFrom(n)
	}
	return buf
}
