package ljson_test

import (
	"errors"
	"math"
	"math/big"
	"testing"

	"github.com/golazy/ljson"
	"github.com/shopspring/decimal"
)

func number(t *testing.T, text string) ljson.Number {
	t.Helper()
	src := ljson.NewStaticSource([]byte("[" + text + "]"))
	v := mustValue(t, src, 1)
	n, ok := v.(ljson.Number)
	if !ok {
		t.Fatalf("element: got %T, want number", v)
	}
	return n
}

func TestNumberInt(t *testing.T) {
	tests := []struct {
		text string
		want int64
	}{
		{"0", 0},
		{"-1", -1},
		{"5139", 5139},
		{"9223372036854775807", math.MaxInt64},
		{"-9223372036854775808", math.MinInt64},
	}
	for _, tc := range tests {
		n := number(t, tc.text)
		got, err := n.Int64()
		if err != nil {
			t.Errorf("Int64 %q: unexpected error: %v", tc.text, err)
		} else if got != tc.want {
			t.Errorf("Int64 %q: got %d, want %d", tc.text, got, tc.want)
		}
		v, err := n.Value()
		if err != nil {
			t.Errorf("Value %q: unexpected error: %v", tc.text, err)
		} else if !v.IsInt() {
			t.Errorf("Value %q: not an integer", tc.text)
		}
	}
}

func TestNumberBig(t *testing.T) {
	// One past MaxInt64 overflows the fixed accumulator and widens.
	n := number(t, "9223372036854775808")
	z, err := n.BigInt()
	if err != nil {
		t.Fatalf("BigInt: %v", err)
	}
	want := new(big.Int).Add(big.NewInt(math.MaxInt64), big.NewInt(1))
	if z.Cmp(want) != 0 {
		t.Errorf("BigInt: got %v, want %v", z, want)
	}

	var ice *ljson.InexactConversionError
	if _, err := n.Int64(); !errors.As(err, &ice) {
		t.Errorf("Int64: got %v, want InexactConversionError", err)
	}

	// Redundant leading zeroes bypass the fixed accumulator but still
	// parse as integers.
	z, err = number(t, "0017").BigInt()
	if err != nil {
		t.Fatalf("BigInt 0017: %v", err)
	}
	if z.Int64() != 17 {
		t.Errorf("BigInt 0017: got %v, want 17", z)
	}
}

func TestNumberFloat(t *testing.T) {
	tests := []struct {
		text string
		want float64
	}{
		{"2.5", 2.5},
		{"-0.001", -0.001},
		{"5e+9", 5e+9},
		{"3.6E+4", 3.6e4},
		{"1e308", 1e308},
	}
	for _, tc := range tests {
		got, err := number(t, tc.text).Float64()
		if err != nil {
			t.Errorf("Float64 %q: unexpected error: %v", tc.text, err)
		} else if got != tc.want {
			t.Errorf("Float64 %q: got %g, want %g", tc.text, got, tc.want)
		}
	}
}

func TestNegativeZero(t *testing.T) {
	for _, text := range []string{"-0", "-00", "-0.0"} {
		v, err := number(t, text).Value()
		if err != nil {
			t.Fatalf("Value %q: %v", text, err)
		}
		if v.IsInt() {
			t.Errorf("Value %q: integer, want float", text)
		}
		f, ok := v.Float64()
		if !ok || f != 0 || !math.Signbit(f) {
			t.Errorf("Value %q: got %g (ok=%v), want negative zero", text, f, ok)
		}
	}

	// Plain zero stays an integer.
	v, err := number(t, "0").Value()
	if err != nil || !v.IsInt() {
		t.Errorf("Value 0: v=%v err=%v, want integer", v, err)
	}
}

func TestNumberDecimal(t *testing.T) {
	// The magnitude underflows float64 and widens to decimal.
	n := number(t, "123.456e-789")
	v, err := n.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	want := decimal.RequireFromString("1.23456e-787")
	if got := v.Decimal(); !got.Equal(want) {
		t.Errorf("Decimal: got %v, want %v", got, want)
	}

	var ice *ljson.InexactConversionError
	if _, err := n.Float64(); !errors.As(err, &ice) {
		t.Errorf("Float64: got %v, want InexactConversionError", err)
	}

	// Long fractions widen to decimal rather than round.
	v, err = number(t, "0.12345678901234567890123").Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	want = decimal.RequireFromString("0.12345678901234567890123")
	if got := v.Decimal(); !got.Equal(want) {
		t.Errorf("Decimal: got %v, want %v", got, want)
	}
}

func TestNumberMalformed(t *testing.T) {
	for _, text := range []string{"-", "1.", "2e", "3e+", "12x4", "1.2.3"} {
		_, err := number(t, text).Value()
		var perr *ljson.ParseError
		if !errors.As(err, &perr) {
			t.Errorf("Value %q: got %v, want ParseError", text, err)
		} else if errors.Unwrap(perr) == nil {
			t.Errorf("Value %q: ParseError does not wrap its cause", text)
		}
	}
}

func TestNumberArith(t *testing.T) {
	add := func(a, b string) ljson.Numeric {
		t.Helper()
		v, err := number(t, a).Add(number(t, b))
		if err != nil {
			t.Fatalf("Add(%s, %s): %v", a, b, err)
		}
		return v
	}

	if got := add("2", "3"); got.String() != "5" {
		t.Errorf("2+3: got %v, want 5", got)
	}
	if got := add("2", "3.5"); got.String() != "5.5" {
		t.Errorf("2+3.5: got %v, want 5.5", got)
	}

	// Integer overflow promotes to big.Int.
	got := add("9223372036854775807", "1")
	z, ok := got.BigInt()
	if !ok {
		t.Fatalf("overflowed sum is not integral: %v", got)
	}
	want, _ := new(big.Int).SetString("9223372036854775808", 10)
	if z.Cmp(want) != 0 {
		t.Errorf("MaxInt64+1: got %v, want %v", z, want)
	}

	// Mixing big integers with floats settles on decimal.
	v, err := number(t, "9223372036854775808").Mul(number(t, "0.5"))
	if err != nil {
		t.Fatalf("Mul: %v", err)
	}
	if got, want := v.Decimal(), decimal.RequireFromString("4611686018427387904"); !got.Equal(want) {
		t.Errorf("big*0.5: got %v, want %v", got, want)
	}
}

func TestNumberCmp(t *testing.T) {
	pairs := []struct {
		a, b string
		want int
	}{
		{"1", "2", -1},
		{"2.5", "2.5", 0},
		{"9223372036854775808", "9223372036854775807", +1},
		{"1e3", "999", +1},
	}
	for _, tc := range pairs {
		av, err := number(t, tc.a).Value()
		if err != nil {
			t.Fatalf("Value %q: %v", tc.a, err)
		}
		bv, err := number(t, tc.b).Value()
		if err != nil {
			t.Fatalf("Value %q: %v", tc.b, err)
		}
		if got := av.Cmp(bv); got != tc.want {
			t.Errorf("Cmp(%s, %s): got %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}
