package ljson

// Collection views drive the scanner to produce child handles on demand.
// Iteration uses a two-phase step: from the offset of the token just
// consumed, skip past that token's end, skip noise, and either stop at the
// closing bracket or produce the next child.

// At returns the i'th element of a, counting from 1. It reports an
// IndexOutOfRangeError if i < 1 or the array has fewer than i elements.
func (a Array) At(i int) (v any, err error) {
	defer scanRecover(&err)
	pos, n := arrayIndex(a.src, a.pos, i)
	if pos < 0 {
		return nil, &IndexOutOfRangeError{Index: i, Length: n}
	}
	return makeValue(a.src, pos), nil
}

// Len reports the number of elements of a. It costs a scan of the whole
// array; the count is not cached.
func (a Array) Len() (n int, err error) {
	defer scanRecover(&err)
	_, n = arrayIndex(a.src, a.pos, 0)
	return n, nil
}

// arrayIndex returns the offset of the 1-based i'th element of the array
// whose opening bracket is at pos, along with the number of elements seen.
// If the array ends before the i'th element (always, when i < 1), it
// returns offset -1 and the total element count.
func arrayIndex(src Source, pos, i int) (int, int) {
	n := 0
	cur := skipNoise(src, pos)
	for {
		if byteAt(src, cur) == ']' {
			return -1, n
		}
		n++
		if n == i {
			return cur, n
		}
		cur = skipNoise(src, endOfValue(src, cur))
	}
}

// Iter returns an iterator over the elements of a in document order.
func (a Array) Iter() *ArrayIter {
	return &ArrayIter{src: a.src, cur: a.pos, first: true}
}

// An ArrayIter is a lazy iterator over the elements of an Array. Each call
// to Next scans just far enough to locate the next element.
type ArrayIter struct {
	src   Source
	cur   int // offset of the token most recently consumed
	first bool
	v     any
	done  bool
	err   error
}

// Next advances the iterator to the next element, if any. Once Next returns
// false, check Err to distinguish the end of the array from a scan failure.
func (it *ArrayIter) Next() bool {
	if it.done || it.err != nil {
		return false
	}
	it.step()
	return !it.done && it.err == nil
}

func (it *ArrayIter) step() {
	defer scanRecover(&it.err)
	var pos int
	if it.first {
		it.first = false
		pos = skipNoise(it.src, it.cur)
	} else {
		pos = skipNoise(it.src, endOfValue(it.src, it.cur))
	}
	if byteAt(it.src, pos) == ']' {
		it.done = true
		return
	}
	it.cur = pos
	it.v = makeValue(it.src, pos)
}

// Value returns the element the iterator is positioned at.
func (it *ArrayIter) Value() any { return it.v }

// Err reports the scan error that stopped iteration, if any.
func (it *ArrayIter) Err() error { return it.err }

// Find returns the value of the member of o with the given key, or a
// KeyNotFoundError if no such member exists. When a key occurs more than
// once, Find returns the first occurrence; a caller resolving fields with
// FindFrom and an advancing resume offset sees later occurrences shadow
// earlier ones.
func (o Object) Find(key string) (v any, err error) {
	v, _, err = o.FindFrom(key, -1)
	return v, err
}

// FindFrom behaves like Find but starts scanning at resume, which must be
// an offset previously returned by FindFrom (or negative, to start at the
// first member). On success it also returns the offset at which a
// subsequent FindFrom can resume, so that fields read in declaration order
// cost a single pass over the object.
func (o Object) FindFrom(key string, resume int) (v any, next int, err error) {
	defer scanRecover(&err)
	pos := findKey(o.src, o.pos, []byte(key), resume)
	if pos < 0 {
		return nil, -1, &KeyNotFoundError{Key: key}
	}
	next = skipNoise(o.src, endOfValue(o.src, pos))
	return makeValue(o.src, pos), next, nil
}

// Len reports the number of members of o. It costs a scan of the whole
// object; the count is not cached.
func (o Object) Len() (n int, err error) {
	defer scanRecover(&err)
	it := o.Iter()
	for it.Next() {
		n++
	}
	return n, it.Err()
}

// Iter returns an iterator over the members of o in declaration order.
func (o Object) Iter() *ObjectIter {
	return &ObjectIter{src: o.src, cur: o.pos, first: true}
}

// An ObjectIter is a lazy iterator over the members of an Object, yielding
// a key handle and a value for each member in declaration order.
type ObjectIter struct {
	src   Source
	cur   int // offset of the value token most recently consumed
	first bool
	key   String
	v     any
	done  bool
	err   error
}

// Next advances the iterator to the next member, if any. Once Next returns
// false, check Err to distinguish the end of the object from a scan
// failure.
func (it *ObjectIter) Next() bool {
	if it.done || it.err != nil {
		return false
	}
	it.step()
	return !it.done && it.err == nil
}

func (it *ObjectIter) step() {
	defer scanRecover(&it.err)
	var pos int
	if it.first {
		it.first = false
		pos = skipNoise(it.src, it.cur)
	} else {
		pos = skipNoise(it.src, endOfValue(it.src, it.cur))
	}
	switch b := byteAt(it.src, pos); {
	case b == '}':
		it.done = true
		return
	case b != '"':
		scanFailf(it.src, pos, CodeUnexpectedByte, "unexpected byte %q in object", b)
	}
	keyEnd, _ := endOfString(it.src, pos)
	val := skipNoise(it.src, keyEnd)
	it.key = String{handle{it.src, pos}}
	it.v = makeValue(it.src, val)
	it.cur = val
}

// Key returns the key handle of the member the iterator is positioned at.
func (it *ObjectIter) Key() String { return it.key }

// Value returns the value of the member the iterator is positioned at.
func (it *ObjectIter) Value() any { return it.v }

// Err reports the scan error that stopped iteration, if any.
func (it *ObjectIter) Err() error { return it.err }
