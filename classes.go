package ljson

// Character classes are the only byte interpretations the scanner performs
// outside of string and number bodies, which it treats as opaque once their
// boundaries are found.

func isWhitespace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// isValueNoise reports whether b separates two tokens without carrying
// information at the scanner level: whitespace plus the structural
// separators ',' and ':'.
func isValueNoise(b byte) bool {
	return isWhitespace(b) || b == ',' || b == ':'
}

func isStructuralBegin(b byte) bool { return b == '{' || b == '[' }
func isStructuralEnd(b byte) bool   { return b == '}' || b == ']' }

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isNumberStart(b byte) bool { return b == '-' || isDigit(b) }
