package ljson_test

import (
	"errors"
	"testing"

	"github.com/golazy/ljson"
	"github.com/google/go-cmp/cmp"
)

func str(t *testing.T, body string) ljson.String {
	t.Helper()
	src := ljson.NewStaticSource([]byte(`"` + body + `"`))
	v, err := ljson.Value(src)
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	s, ok := v.(ljson.String)
	if !ok {
		t.Fatalf("got %T, want string", v)
	}
	return s
}

func TestUnescape(t *testing.T) {
	tests := []struct {
		body, want string
	}{
		{``, ``},
		{`plain text`, `plain text`},
		{`a\nb\tc`, "a\nb\tc"},
		{`\"\\\/\b\f\n\r\t`, "\"\\/\b\f\n\r\t"},
		{`AǼꪜ`, "AǼꪜ"},
		{`snow ☃!`, "snow ☃!"},

		// A surrogate pair combines into one code point.
		{`\uD83D\uDE00`, "\U0001F600"},

		// A lone surrogate survives as its three-byte code unit form.
		{`\uDFAA`, "\xed\xbe\xaa"},
		{`\uD800x`, "\xed\xa0\x80x"},

		// Unknown escapes keep their backslash.
		{`\q`, `\q`},
		{`\x41`, `\x41`},

		// A truncated \u keeps its literal prefix.
		{`\u12`, `\u12`},
		{`\uZZZZ`, `\uZZZZ`},

		// Non-UTF-8 bytes outside escapes pass through untouched.
		{"raw \xff byte", "raw \xff byte"},
	}
	for _, tc := range tests {
		s := str(t, tc.body)
		dec, err := s.Unescape()
		if err != nil {
			t.Errorf("Unescape %#q: unexpected error: %v", tc.body, err)
		} else if string(dec) != tc.want {
			t.Errorf("Unescape %#q: got %#q, want %#q", tc.body, dec, tc.want)
		}
	}
}

func TestRawBytes(t *testing.T) {
	s := str(t, `no escapes here`)
	body, ok, err := s.RawBytes()
	if err != nil || !ok {
		t.Fatalf("RawBytes: ok=%v, err=%v; want borrow", ok, err)
	}
	if string(body) != "no escapes here" {
		t.Errorf("RawBytes: got %#q", body)
	}
	// The borrow equals the decoded form.
	dec, err := s.Unescape()
	if err != nil {
		t.Fatalf("Unescape: %v", err)
	}
	if string(dec) != string(body) {
		t.Errorf("borrow %#q differs from decoded %#q", body, dec)
	}

	if _, ok, err := str(t, `esc\naped`).RawBytes(); err != nil || ok {
		t.Errorf("RawBytes with escape: ok=%v, err=%v; want no borrow", ok, err)
	}

	esc, err := str(t, `esc\naped`).HasEscape()
	if err != nil || !esc {
		t.Errorf("HasEscape: got %v, %v; want true", esc, err)
	}
}

func TestChars(t *testing.T) {
	collect := func(body string) (rs []rune, pos []int) {
		t.Helper()
		it := str(t, body).Chars()
		for it.Next() {
			rs = append(rs, it.Rune())
			pos = append(pos, it.Pos())
		}
		if err := it.Err(); err != nil {
			t.Fatalf("Chars %#q: %v", body, err)
		}
		return rs, pos
	}

	rs, pos := collect(`a\nb`)
	if diff := cmp.Diff([]rune{'a', '\n', 'b'}, rs); diff != "" {
		t.Errorf("runes (-want, +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{0, 1, 3}, pos); diff != "" {
		t.Errorf("positions (-want, +got):\n%s", diff)
	}

	// A surrogate pair is one character spanning both escapes.
	rs, pos = collect(`x\uD83D\uDE00y`)
	if diff := cmp.Diff([]rune{'x', 0x1F600, 'y'}, rs); diff != "" {
		t.Errorf("runes (-want, +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{0, 1, 13}, pos); diff != "" {
		t.Errorf("positions (-want, +got):\n%s", diff)
	}

	// A lone surrogate is its code unit.
	rs, _ = collect(`\uDFAA`)
	if diff := cmp.Diff([]rune{0xDFAA}, rs); diff != "" {
		t.Errorf("runes (-want, +got):\n%s", diff)
	}

	// An unknown escape yields the backslash, then the character.
	rs, _ = collect(`\q`)
	if diff := cmp.Diff([]rune{'\\', 'q'}, rs); diff != "" {
		t.Errorf("runes (-want, +got):\n%s", diff)
	}

	// Iterating collects the same code points as the eager decode, for
	// inputs that are valid UTF-8 after decoding.
	const body = `mixed ☃ and 😀 text\n`
	dec, err := str(t, body).Unescape()
	if err != nil {
		t.Fatalf("Unescape: %v", err)
	}
	rs, _ = collect(body)
	if diff := cmp.Diff([]rune(string(dec)), rs); diff != "" {
		t.Errorf("Chars vs Unescape (-want, +got):\n%s", diff)
	}
}

func TestCharPositions(t *testing.T) {
	s := str(t, `a\u2603b`) // positions: a=0, snowman=1, b=7

	n, err := s.Len()
	if err != nil || n != 8 {
		t.Fatalf("Len: got %d, %v; want 8", n, err)
	}

	if r, err := s.CharAt(1); err != nil || r != 0x2603 {
		t.Errorf("CharAt(1): got %q, %v; want snowman", r, err)
	}
	if next, err := s.NextPos(1); err != nil || next != 7 {
		t.Errorf("NextPos(1): got %d, %v; want 7", next, err)
	}
	if next, err := s.NextPos(7); err != nil || next != 8 {
		t.Errorf("NextPos(7): got %d, %v; want 8", next, err)
	}

	// Positions inside the escape are invalid.
	for _, pos := range []int{2, 3, 6, -1, 8} {
		if _, err := s.CharAt(pos); !errors.Is(err, ljson.ErrBadPosition) {
			t.Errorf("CharAt(%d): got %v, want ErrBadPosition", pos, err)
		}
	}
}

func TestLoneSurrogateKey(t *testing.T) {
	// Iterating {"\uDFAA":0} yields one member whose key decodes to the
	// three-byte encoding of the lone surrogate U+DFAA.
	src := ljson.NewStaticSource([]byte(`{"\uDFAA":0}`))
	obj, ok := mustValue(t, src).(ljson.Object)
	if !ok {
		t.Fatal("root is not an object")
	}
	it := obj.Iter()
	if !it.Next() {
		t.Fatalf("no members: %v", it.Err())
	}
	key, err := it.Key().Unescape()
	if err != nil {
		t.Fatalf("Key: %v", err)
	}
	if string(key) != "\xed\xbe\xaa" {
		t.Errorf("key: got %#q, want \\xed\\xbe\\xaa", key)
	}
	if got := mustJSON(t, it.Value()); got != "0" {
		t.Errorf("value: got %s, want 0", got)
	}
	if it.Next() {
		t.Error("unexpected second member")
	}
}
