package ljson

import (
	"errors"
	"math"
	"math/big"
	"strconv"

	"github.com/shopspring/decimal"
)

// The Number view parses numeric text only when a conversion or arithmetic
// method is called. The parse widens in a fixed order: int64, then big.Int
// for overflow or redundant leading zeroes, then float64 once a fraction or
// exponent appears, then decimal.Decimal when float64 cannot hold the
// value. A bare -0 is detected before widening and becomes the float
// negative zero, distinguishing it from the integer 0.

type numKind byte

const (
	numInt numKind = iota
	numFloat
	numBig
	numDecimal
)

// A Numeric is the parsed value of a JSON number, tagged with the
// narrowest representation that holds it exactly.
type Numeric struct {
	kind numKind
	i    int64
	f    float64
	z    *big.Int
	d    decimal.Decimal
}

// Value parses the numeric text of n and returns its Numeric value.
func (n Number) Value() (v Numeric, err error) {
	defer scanRecover(&err)
	end := endOfNumber(n.src, n.pos)
	v, perr := parseNumeric(sliceBytes(n.src, n.pos, end+1))
	if perr != nil {
		return Numeric{}, wrapParseError(n.src, n.pos, CodeUnterminatedNumber, perr)
	}
	return v, nil
}

// Int64 converts n to an int64. It reports an InexactConversionError when
// the value is fractional or does not fit in 64 bits.
func (n Number) Int64() (int64, error) {
	v, err := n.Value()
	if err != nil {
		return 0, err
	}
	if i, ok := v.Int64(); ok {
		return i, nil
	}
	return 0, n.inexact("int64")
}

// Float64 converts n to a float64. It reports an InexactConversionError
// when the magnitude of the value overflows or underflows the type.
func (n Number) Float64() (float64, error) {
	v, err := n.Value()
	if err != nil {
		return 0, err
	}
	if f, ok := v.Float64(); ok {
		return f, nil
	}
	return 0, n.inexact("float64")
}

// BigInt converts n to an arbitrary-precision integer. It reports an
// InexactConversionError when the value is fractional.
func (n Number) BigInt() (*big.Int, error) {
	v, err := n.Value()
	if err != nil {
		return nil, err
	}
	if z, ok := v.BigInt(); ok {
		return z, nil
	}
	return nil, n.inexact("big.Int")
}

// Decimal converts n to an arbitrary-precision decimal. Every valid JSON
// number has an exact decimal form, so the conversion cannot be inexact.
func (n Number) Decimal() (decimal.Decimal, error) {
	if _, err := n.Value(); err != nil {
		return decimal.Decimal{}, err
	}
	text, err := n.JSON()
	if err != nil {
		return decimal.Decimal{}, err
	}
	return decimal.NewFromString(string(text))
}

// Add returns the sum of n and m.
func (n Number) Add(m Number) (Numeric, error) { return n.arith(m, Numeric.Add) }

// Sub returns the difference of n and m.
func (n Number) Sub(m Number) (Numeric, error) { return n.arith(m, Numeric.Sub) }

// Mul returns the product of n and m.
func (n Number) Mul(m Number) (Numeric, error) { return n.arith(m, Numeric.Mul) }

func (n Number) arith(m Number, op func(Numeric, Numeric) Numeric) (Numeric, error) {
	a, err := n.Value()
	if err != nil {
		return Numeric{}, err
	}
	b, err := m.Value()
	if err != nil {
		return Numeric{}, err
	}
	return op(a, b), nil
}

func (n Number) inexact(kind string) error {
	text, err := n.JSON()
	if err != nil {
		text = nil
	}
	return &InexactConversionError{Kind: kind, Text: string(text)}
}

var (
	errNumTruncated = errors.New("number is truncated")
	errNumSyntax    = errors.New("invalid number syntax")
)

// parseNumeric parses the verbatim numeric text per the widening order
// described on Numeric.
func parseNumeric(text []byte) (Numeric, error) {
	i, n := 0, len(text)
	neg := false
	if i < n && text[i] == '-' {
		neg = true
		i++
	}
	if i >= n || !isDigit(text[i]) {
		return Numeric{}, errNumTruncated
	}
	digStart := i
	for i < n && isDigit(text[i]) {
		i++
	}
	leadZero := text[digStart] == '0' && i > digStart+1
	intEnd := i

	var hasFrac, hasExp bool
	if i < n && text[i] == '.' {
		hasFrac = true
		i++
		fracStart := i
		for i < n && isDigit(text[i]) {
			i++
		}
		if i == fracStart {
			return Numeric{}, errNumTruncated
		}
	}
	if i < n && (text[i] == 'e' || text[i] == 'E') {
		hasExp = true
		i++
		if i < n && (text[i] == '+' || text[i] == '-') {
			i++
		}
		expStart := i
		for i < n && isDigit(text[i]) {
			i++
		}
		if i == expStart {
			return Numeric{}, errNumTruncated
		}
	}
	if i != n {
		return Numeric{}, errNumSyntax
	}

	// A bare -0 (leading zeroes included) becomes the float negative zero
	// before any widening applies.
	if neg && !hasFrac && !hasExp && allZero(text[digStart:intEnd]) {
		return Numeric{kind: numFloat, f: math.Copysign(0, -1)}, nil
	}

	s := string(text)
	if !hasFrac && !hasExp {
		if !leadZero {
			if v, err := strconv.ParseInt(s, 10, 64); err == nil {
				return Numeric{kind: numInt, i: v}, nil
			}
		}
		z, ok := new(big.Int).SetString(s, 10)
		if !ok {
			return Numeric{}, errNumSyntax
		}
		return Numeric{kind: numBig, z: z}, nil
	}

	if !hasExp {
		// Fraction only: float64 holds up to 15 significant digits exactly
		// enough; past that, widen to decimal.
		if countDigits(text) <= 15 {
			v, err := strconv.ParseFloat(s, 64)
			if err == nil {
				return Numeric{kind: numFloat, f: v}, nil
			}
		}
		return parseDecimal(s)
	}

	// Exponent present: hand the whole token to the platform parser, and
	// widen to decimal when the magnitude escapes float64.
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return parseDecimal(s)
	}
	if v == 0 {
		// ParseFloat rounds an underflowing magnitude to zero without an
		// error; a nonzero value is kept exactly as a decimal.
		if d, derr := parseDecimal(s); derr == nil && !d.d.IsZero() {
			return d, nil
		}
	}
	return Numeric{kind: numFloat, f: v}, nil
}

func parseDecimal(s string) (Numeric, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Numeric{}, errNumSyntax
	}
	return Numeric{kind: numDecimal, d: d}, nil
}

func allZero(digits []byte) bool {
	for _, b := range digits {
		if b != '0' {
			return false
		}
	}
	return true
}

func countDigits(text []byte) int {
	var n int
	for _, b := range text {
		if isDigit(b) {
			n++
		}
	}
	return n
}

// IsInt reports whether v holds an integer representation (int64 or
// big.Int). Note that -0 is a float, not an integer.
func (v Numeric) IsInt() bool { return v.kind == numInt || v.kind == numBig }

// Int64 returns v as an int64 when the value is integral and fits.
func (v Numeric) Int64() (int64, bool) {
	switch v.kind {
	case numInt:
		return v.i, true
	case numBig:
		if v.z.IsInt64() {
			return v.z.Int64(), true
		}
	case numFloat:
		if v.f == math.Trunc(v.f) && v.f >= math.MinInt64 && v.f < math.MaxInt64 {
			return int64(v.f), true
		}
	case numDecimal:
		if v.d.IsInteger() {
			z := v.d.BigInt()
			if z.IsInt64() {
				return z.Int64(), true
			}
		}
	}
	return 0, false
}

// Float64 returns v as a float64 when the magnitude neither overflows nor
// underflows the type. Precision beyond what float64 carries is rounded,
// as the platform parser would.
func (v Numeric) Float64() (float64, bool) {
	switch v.kind {
	case numInt:
		return float64(v.i), true
	case numFloat:
		return v.f, true
	case numBig:
		f, _ := new(big.Float).SetInt(v.z).Float64()
		return f, !math.IsInf(f, 0)
	default:
		f, err := strconv.ParseFloat(v.d.String(), 64)
		if err != nil {
			return 0, false
		}
		if f == 0 && !v.d.IsZero() {
			return 0, false
		}
		return f, true
	}
}

// BigInt returns v as an arbitrary-precision integer when the value is
// integral.
func (v Numeric) BigInt() (*big.Int, bool) {
	switch v.kind {
	case numInt:
		return big.NewInt(v.i), true
	case numBig:
		return new(big.Int).Set(v.z), true
	case numFloat:
		if v.f == math.Trunc(v.f) && !math.IsInf(v.f, 0) {
			z, _ := big.NewFloat(v.f).Int(nil)
			return z, true
		}
	case numDecimal:
		if v.d.IsInteger() {
			return v.d.BigInt(), true
		}
	}
	return nil, false
}

// Decimal returns v as a decimal. Integer and decimal values convert
// exactly; a float64 value converts to the shortest decimal that rounds back
// to it.
func (v Numeric) Decimal() decimal.Decimal {
	switch v.kind {
	case numInt:
		return decimal.NewFromInt(v.i)
	case numBig:
		return decimal.NewFromBigInt(v.z, 0)
	case numFloat:
		return decimal.NewFromFloat(v.f)
	default:
		return v.d
	}
}

// String renders v in the shortest form that round-trips its
// representation.
func (v Numeric) String() string {
	switch v.kind {
	case numInt:
		return strconv.FormatInt(v.i, 10)
	case numFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case numBig:
		return v.z.String()
	default:
		return v.d.String()
	}
}

// Arithmetic promotes both operands to the narrowest common representation
// and delegates to the built-in operation. Integer results that overflow
// int64 widen to big.Int; mixing a big integer with a float widens both to
// decimal so neither operand loses precision.

// Add returns v + w.
func (v Numeric) Add(w Numeric) Numeric {
	return apply(v, w,
		func(a, b int64) (int64, bool) {
			r := a + b
			return r, (a >= 0) == (b >= 0) && (r >= 0) != (a >= 0)
		},
		func(a, b float64) float64 { return a + b },
		new(big.Int).Add,
		decimal.Decimal.Add,
	)
}

// Sub returns v - w.
func (v Numeric) Sub(w Numeric) Numeric {
	return apply(v, w,
		func(a, b int64) (int64, bool) {
			r := a - b
			return r, (a >= 0) != (b >= 0) && (r >= 0) != (a >= 0)
		},
		func(a, b float64) float64 { return a - b },
		new(big.Int).Sub,
		decimal.Decimal.Sub,
	)
}

// Mul returns v * w.
func (v Numeric) Mul(w Numeric) Numeric {
	return apply(v, w,
		func(a, b int64) (int64, bool) {
			if a == 0 || b == 0 {
				return 0, false
			}
			if a == math.MinInt64 || b == math.MinInt64 {
				return 0, true
			}
			r := a * b
			return r, r/b != a
		},
		func(a, b float64) float64 { return a * b },
		new(big.Int).Mul,
		decimal.Decimal.Mul,
	)
}

// Cmp compares v and w, returning -1, 0, or +1.
func (v Numeric) Cmp(w Numeric) int {
	a, b, kind := promote(v, w)
	switch kind {
	case numInt:
		switch {
		case a.i < b.i:
			return -1
		case a.i > b.i:
			return +1
		}
		return 0
	case numFloat:
		switch {
		case a.f < b.f:
			return -1
		case a.f > b.f:
			return +1
		}
		return 0
	case numBig:
		return a.z.Cmp(b.z)
	default:
		return a.d.Cmp(b.d)
	}
}

func apply(v, w Numeric,
	iop func(a, b int64) (int64, bool),
	fop func(a, b float64) float64,
	zop func(a, b *big.Int) *big.Int,
	dop func(a, b decimal.Decimal) decimal.Decimal,
) Numeric {
	a, b, kind := promote(v, w)
	switch kind {
	case numInt:
		if r, overflow := iop(a.i, b.i); !overflow {
			return Numeric{kind: numInt, i: r}
		}
		z := zop(big.NewInt(a.i), big.NewInt(b.i))
		return Numeric{kind: numBig, z: z}
	case numFloat:
		return Numeric{kind: numFloat, f: fop(a.f, b.f)}
	case numBig:
		return Numeric{kind: numBig, z: zop(a.z, b.z)}
	default:
		return Numeric{kind: numDecimal, d: dop(a.d, b.d)}
	}
}

// promote converts both operands to the narrowest representation that
// holds either one.
func promote(v, w Numeric) (a, b Numeric, kind numKind) {
	kind = v.kind
	if w.kind > kind {
		kind = w.kind
	}
	// big.Int and float64 rank independently; their mix needs decimal.
	if (v.kind == numBig && w.kind == numFloat) || (v.kind == numFloat && w.kind == numBig) {
		kind = numDecimal
	}
	return widen(v, kind), widen(w, kind), kind
}

func widen(v Numeric, kind numKind) Numeric {
	if v.kind == kind {
		return v
	}
	switch kind {
	case numFloat:
		return Numeric{kind: numFloat, f: float64(v.i)}
	case numBig:
		return Numeric{kind: numBig, z: big.NewInt(v.i)}
	default:
		return Numeric{kind: numDecimal, d: v.Decimal()}
	}
}
