package ljson

// A Kind identifies which JSON value kind a Handle refers to.
type Kind byte

// Constants defining the valid Kind values.
const (
	BadKind    Kind = iota // not a handle kind
	NumberKind             // number
	StringKind             // string
	ArrayKind              // array
	ObjectKind             // object
)

var kindStr = [...]string{
	BadKind:    "invalid",
	NumberKind: "number",
	StringKind: "string",
	ArrayKind:  "array",
	ObjectKind: "object",
}

func (k Kind) String() string {
	if int(k) >= len(kindStr) {
		return kindStr[BadKind]
	}
	return kindStr[k]
}

// A Handle is a lazy reference to a single JSON value inside a Source. It
// carries only the Source and the offset of the value's first byte; nothing
// about the value is scanned until a method asks for it. A Handle is valid
// for as long as its Source lives.
//
// The concrete types are Number, String, Array, and Object. The literals
// true, false, and null are not handles: navigation returns them as a bool
// or a Null.
type Handle interface {
	// Kind reports the value kind of the handle.
	Kind() Kind

	// Offset reports the offset of the value's first byte in its Source.
	Offset() int

	// Source returns the Source the handle refers into.
	Source() Source

	// JSON returns the verbatim JSON text of the value, scanning only as far
	// as the value's last byte. The returned slice may alias the Source and
	// must be treated as read-only.
	JSON() ([]byte, error)

	// Span reports the byte range of the value within its Source.
	Span() (Span, error)
}

// handle carries the (source, offset) pair shared by all four handle kinds.
type handle struct {
	src Source
	pos int
}

func (h handle) Offset() int    { return h.pos }
func (h handle) Source() Source { return h.src }

func (h handle) JSON() (text []byte, err error) {
	defer scanRecover(&err)
	end := endOfValue(h.src, h.pos)
	return sliceBytes(h.src, h.pos, end+1), nil
}

func (h handle) Span() (sp Span, err error) {
	defer scanRecover(&err)
	end := endOfValue(h.src, h.pos)
	return Span{Pos: h.pos, End: end + 1}, nil
}

// A Number is a handle to a JSON number. Its text is parsed only when one of
// the conversion methods is called.
type Number struct{ handle }

// Kind satisfies the Handle interface.
func (Number) Kind() Kind { return NumberKind }

// A String is a handle to a JSON string. Its contents are decoded on
// demand; see HasEscape, RawBytes, Unescape, and Chars.
type String struct{ handle }

// Kind satisfies the Handle interface.
func (String) Kind() Kind { return StringKind }

// An Array is a handle to a JSON array.
type Array struct{ handle }

// Kind satisfies the Handle interface.
func (Array) Kind() Kind { return ArrayKind }

// An Object is a handle to a JSON object.
type Object struct{ handle }

// Kind satisfies the Handle interface.
func (Object) Kind() Kind { return ObjectKind }

// Null represents the JSON null constant.
type Null struct{}

func (Null) String() string { return "null" }

// Value returns the root value of src: a Handle for a number, string,
// array, or object, a bool for true or false, or a Null for null.
func Value(src Source) (v any, err error) {
	defer scanRecover(&err)
	return makeValue(src, firstValue(src, 0)), nil
}

// ValueAt returns the value of src reached by walking path from the root.
// Path elements are either strings, denoting object keys, or 1-based
// integers, denoting array indices. A missing key, an out-of-range index,
// or a step applied to a value of the wrong kind reports a
// KeyNotFoundError.
func ValueAt(src Source, path ...any) (v any, err error) {
	defer scanRecover(&err)
	return makeValue(src, walkPath(src, path)), nil
}

var (
	litTrue  = []byte("true")
	litFalse = []byte("false")
	litNull  = []byte("null")
)

// makeValue discriminates the value beginning at pos by its first byte.
// pos must already point at a non-whitespace byte.
func makeValue(src Source, pos int) any {
	switch b := byteAt(src, pos); {
	case b == '{':
		return Object{handle{src, pos}}
	case b == '[':
		return Array{handle{src, pos}}
	case b == '"':
		return String{handle{src, pos}}
	case isNumberStart(b):
		return Number{handle{src, pos}}
	case b == 't':
		requireLiteral(src, pos, litTrue)
		return true
	case b == 'f':
		requireLiteral(src, pos, litFalse)
		return false
	case b == 'n':
		requireLiteral(src, pos, litNull)
		return Null{}
	default:
		scanFailf(src, pos, CodeUnexpectedByte, "unexpected byte %q", b)
		return nil
	}
}

func requireLiteral(src Source, pos int, want []byte) {
	end := pos + len(want) - 1
	_ = byteAt(src, end)
	if !bytesEqual(src, pos, end+1, want) {
		scanFailf(src, pos, CodeUnexpectedByte, "unknown constant at offset %d", pos)
	}
}
