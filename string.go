package ljson

import (
	"unicode/utf8"

	"github.com/golazy/ljson/internal/escape"

	"go4.org/mem"
)

// The String view presents a JSON string as a sequence of Unicode
// characters while the bytes stay in their source form, escapes included.
// Positions are byte offsets into the body (the bytes between the quotes);
// a position inside an escape sequence or a multibyte character is not a
// character position.

// scan locates the closing quote of s and reports whether the body contains
// any escape sequence. Panic-based; callers recover at the public boundary.
func (s String) scan() (end int, hasEscape bool) {
	return endOfString(s.src, s.pos)
}

// Len reports the number of body bytes of s, that is, the bytes between the
// opening and closing quotes of its JSON form.
func (s String) Len() (n int, err error) {
	defer scanRecover(&err)
	end, _ := s.scan()
	return end - s.pos - 1, nil
}

// HasEscape reports whether the body of s contains any escape sequence.
func (s String) HasEscape() (esc bool, err error) {
	defer scanRecover(&err)
	_, esc = s.scan()
	return esc, nil
}

// RawBytes returns the body of s as a borrow over the source with ok true
// when the body contains no escapes, in which case the bytes are already
// the decoded form. When the body has escapes it returns nil and ok false;
// use Unescape to materialise the decoded form.
func (s String) RawBytes() (body []byte, ok bool, err error) {
	defer scanRecover(&err)
	end, esc := s.scan()
	if esc {
		return nil, false, nil
	}
	return sliceBytes(s.src, s.pos+1, end), true, nil
}

// Unescape returns the decoded form of s. Bodies without escapes are
// returned as a borrow over the source without copying; otherwise a fresh
// slice is built with each escape sequence replaced by its decoded bytes.
func (s String) Unescape() (dec []byte, err error) {
	defer scanRecover(&err)
	return decodeStringAt(s.src, s.pos), nil
}

// Text returns the decoded form of s as a string.
func (s String) Text() (string, error) {
	dec, err := s.Unescape()
	return string(dec), err
}

// decodeStringAt returns the decoded body of the string whose opening quote
// is at pos. Panic-based.
func decodeStringAt(src Source, pos int) []byte {
	end, esc := endOfString(src, pos)
	body := sliceBytes(src, pos+1, end)
	if !esc {
		return body
	}
	return escape.Unquote(mem.B(body))
}

// Chars returns a lazy iterator over the characters of s, decoding escape
// sequences as it goes. No part of the string is materialised.
func (s String) Chars() *Chars {
	return &Chars{src: s.src, open: s.pos}
}

// A Chars iterates the decoded characters of a String. Surrogate pairs
// written as two \u escapes yield a single code point; a lone surrogate
// yields its code unit as a rune.
type Chars struct {
	src   Source
	open  int // offset of the opening quote
	next  int // absolute offset of the next character
	end   int // absolute offset of the closing quote
	pos   int // absolute offset of the current character
	r     rune
	ready bool
	err   error
}

// Next advances to the next character, if any. Once Next returns false,
// check Err to distinguish the end of the string from a scan failure.
func (c *Chars) Next() bool {
	if c.err != nil {
		return false
	}
	if !c.ready {
		func() {
			defer scanRecover(&c.err)
			end, _ := endOfString(c.src, c.open)
			c.end = end
			c.next = c.open + 1
			c.ready = true
		}()
		if c.err != nil {
			return false
		}
	}
	if c.next >= c.end {
		return false
	}
	r, w := decodeChar(c.src, c.next, c.end)
	c.pos, c.r = c.next, r
	c.next += w
	return true
}

// Rune returns the character the iterator is positioned at.
func (c *Chars) Rune() rune { return c.r }

// Pos returns the body-relative byte position of the current character.
func (c *Chars) Pos() int { return c.pos - c.open - 1 }

// Err reports the scan error that stopped iteration, if any.
func (c *Chars) Err() error { return c.err }

// CharAt returns the character at body position pos. It reports
// ErrBadPosition if pos falls inside an escape sequence or a multibyte
// character. Validity is established by walking character widths from the
// start of the body, without decoding.
func (s String) CharAt(pos int) (r rune, err error) {
	defer scanRecover(&err)
	abs, end, err := s.seek(pos)
	if err != nil {
		return 0, err
	}
	r, _ = decodeChar(s.src, abs, end)
	return r, nil
}

// NextPos returns the position of the character following the one at body
// position pos. It reports ErrBadPosition if pos is not a character
// position. The returned position may equal the body length, meaning the
// character at pos was the last one.
func (s String) NextPos(pos int) (next int, err error) {
	defer scanRecover(&err)
	abs, end, err := s.seek(pos)
	if err != nil {
		return 0, err
	}
	_, w := decodeChar(s.src, abs, end)
	return pos + w, nil
}

// seek validates body position pos and returns its absolute offset along
// with the offset of the closing quote.
func (s String) seek(pos int) (abs, end int, err error) {
	end, _ = s.scan()
	body := s.pos + 1
	if pos < 0 || body+pos >= end {
		return 0, 0, ErrBadPosition
	}
	for i := body; i < body+pos; {
		_, w := decodeChar(s.src, i, end)
		i += w
		if i > body+pos {
			return 0, 0, ErrBadPosition
		}
	}
	return body + pos, end, nil
}

// decodeChar decodes the character at absolute offset pos, which must be
// less than end (the closing quote). It returns the character and the
// number of source bytes it spans.
//
// Escape handling follows the tolerant policy of the string view: an
// unknown escape, or a \u with fewer than four hex digits before end,
// yields a literal backslash of width one, so the following bytes are
// visited as ordinary characters. A \u escape whose value is a high
// surrogate immediately followed by a \u low surrogate spans both escapes
// and yields the combined code point. A lone surrogate is yielded as-is.
func decodeChar(src Source, pos, end int) (rune, int) {
	b := src.ByteAt(pos)
	if b != '\\' {
		if b < utf8.RuneSelf {
			return rune(b), 1
		}
		var buf [utf8.UTFMax]byte
		n := 0
		for n < utf8.UTFMax && pos+n < end {
			buf[n] = src.ByteAt(pos + n)
			n++
		}
		r, w := utf8.DecodeRune(buf[:n])
		if w == 0 {
			return utf8.RuneError, 1
		}
		return r, w
	}
	if pos+1 >= end {
		return '\\', 1
	}
	switch e := src.ByteAt(pos + 1); e {
	case '"', '\\', '/':
		return rune(e), 2
	case 'b':
		return '\b', 2
	case 'f':
		return '\f', 2
	case 'n':
		return '\n', 2
	case 'r':
		return '\r', 2
	case 't':
		return '\t', 2
	case 'u':
		v, ok := hex4(src, pos+2, end)
		if !ok {
			return '\\', 1
		}
		if isHighSurrogate(v) {
			if src.ByteAt(pos+6) == '\\' && src.ByteAt(pos+7) == 'u' {
				if lo, ok := hex4(src, pos+8, end); ok && isLowSurrogate(lo) {
					return 0x10000 + ((v - 0xD800) << 10) + (lo - 0xDC00), 12
				}
			}
		}
		return v, 6
	default:
		return '\\', 1
	}
}

// hex4 decodes four hex digits at pos, all of which must lie before end.
func hex4(src Source, pos, end int) (rune, bool) {
	if pos+4 > end {
		return 0, false
	}
	var v rune
	for i := 0; i < 4; i++ {
		b := src.ByteAt(pos + i)
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

func isHighSurrogate(r rune) bool { return r >= 0xD800 && r <= 0xDBFF }
func isLowSurrogate(r rune) bool  { return r >= 0xDC00 && r <= 0xDFFF }
