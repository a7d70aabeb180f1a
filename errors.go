package ljson

import (
	"errors"
	"fmt"
)

// ErrInputExhausted is reported when a scan reads the "more input expected"
// sentinel of a streaming Source. Consumers of the streaming adaptor never
// observe it: the pump in package lstream recovers it, extends the buffer,
// and retries the scan. Code reading a complete Source never sees it either,
// since a complete Source never reports MoreInputByte.
var ErrInputExhausted = errors.New("input exhausted")

// ErrBadPosition is reported by character-position operations on a String
// view when the given index falls inside the bytes of an escape sequence or
// a multibyte character.
var ErrBadPosition = errors.New("not a character position")

// ParseErrorCode classifies a ParseError.
type ParseErrorCode int

const (
	// CodeUnexpectedByte means the scanner found a byte that cannot begin a
	// value where one was expected.
	CodeUnexpectedByte ParseErrorCode = iota
	// CodeUnterminatedString means a string scan ran into the terminator
	// sentinel before the closing quote.
	CodeUnterminatedString
	// CodeUnterminatedNumber means a numeric token ended inside its fraction
	// or exponent, or contained bytes that cannot occur in a number.
	CodeUnterminatedNumber
	// CodeUnbalanced means a collection scan never saw its matching close
	// bracket.
	CodeUnbalanced
	// CodeTruncated means a streaming source ended before the value under
	// scan was complete.
	CodeTruncated
)

// A ParseError reports a syntax problem discovered while scanning. Offset is
// the byte offset in the source at which the problem was found. The line and
// column are computed lazily from the source, by counting newlines in the
// prefix, only when the error is formatted.
type ParseError struct {
	Offset int
	Code   ParseErrorCode
	Hint   string

	src Source
	err error
}

func newParseError(src Source, offset int, code ParseErrorCode, hint string) *ParseError {
	return &ParseError{Offset: offset, Code: code, Hint: hint, src: src}
}

// wrapParseError wraps an underlying cause, keeping it reachable through
// Unwrap while rendering its message as the hint.
func wrapParseError(src Source, offset int, code ParseErrorCode, err error) *ParseError {
	return &ParseError{Offset: offset, Code: code, Hint: err.Error(), src: src, err: err}
}

// UnterminatedString returns a ParseError reporting that the string whose
// opening quote is at offset has no closing quote.
func UnterminatedString(src Source, offset int) *ParseError {
	return newParseError(src, offset, CodeUnterminatedString, "unterminated string")
}

// UnterminatedNumber returns a ParseError reporting that the numeric token
// at offset is incomplete or malformed.
func UnterminatedNumber(src Source, offset int) *ParseError {
	return newParseError(src, offset, CodeUnterminatedNumber, "unterminated number")
}

// Truncated returns a ParseError reporting that the input ended before the
// value under scan was complete. It is produced by the streaming pump when
// the stream closes mid-value.
func Truncated(src Source, offset int) *ParseError {
	return newParseError(src, offset, CodeTruncated, "unexpected end of input")
}

// Location reports the line and column of e.Offset within its source.
func (e *ParseError) Location() LineCol {
	if e.src == nil {
		return LineCol{Line: 1}
	}
	return lineCol(e.src, e.Offset)
}

// Error satisfies the error interface.
func (e *ParseError) Error() string {
	lc := e.Location()
	return fmt.Sprintf("%s at line %d, column %d (offset %d)", e.Hint, lc.Line, lc.Column, e.Offset)
}

// Unwrap returns the underlying cause, if the error wraps one.
func (e *ParseError) Unwrap() error { return e.err }

// KeyNotFoundError is reported by object lookup and by the path resolver
// when a key is absent, and by the resolver when a path step's type does not
// match the value it is applied to.
type KeyNotFoundError struct {
	Key  string // the missing object key, or "" if the step was an index
	Step any    // the path step that failed, when raised by the resolver
}

func (e *KeyNotFoundError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("key %q not found", e.Key)
	}
	return fmt.Sprintf("path step %v not found", e.Step)
}

// IndexOutOfRangeError is reported by direct array indexing when the
// requested 1-based index is out of bounds.
type IndexOutOfRangeError struct {
	Index  int
	Length int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("index %d out of range (length %d)", e.Index, e.Length)
}

// InexactConversionError is reported by an explicit Number conversion that
// cannot represent the value without loss.
type InexactConversionError struct {
	Kind string // target kind: "int64", "float64", "big.Int"
	Text string // verbatim numeric text
}

func (e *InexactConversionError) Error() string {
	return fmt.Sprintf("%q does not fit in %s", e.Text, e.Kind)
}
