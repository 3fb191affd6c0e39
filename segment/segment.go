// Package segment provides Segment, a non-owning view over a range of a
// string. It is the tokenizing primitive used by the codec and the line
// parsers: every operation narrows or inspects the view without copying the
// underlying text.
package segment

// Segment is a view of buf[begin:end]. The zero value is an empty view.
//
// Invariant: 0 <= begin <= end <= len(buf).
type Segment struct {
	buf        string
	begin, end int

	// trailing is set when the most recent Split consumed a delimiter that
	// was the final byte of the view, so that one empty part remains.
	trailing bool
}

// New returns a Segment that views all of s.
func New(s string) Segment {
	return Segment{buf: s, end: len(s)}
}

// String returns a copy of the viewed text.
func (s Segment) String() string { return s.buf[s.begin:s.end] }

// Len returns the number of bytes in the view.
func (s Segment) Len() int { return s.end - s.begin }

// IsEmpty returns true when the view holds no bytes.
func (s Segment) IsEmpty() bool { return s.begin == s.end }

// At returns the byte at index i of the view. It panics when i is out of
// range.
func (s Segment) At(i int) byte {
	if i < 0 || s.begin+i >= s.end {
		panic("segment: index out of range")
	}
	return s.buf[s.begin+i]
}

// FirstChar returns the first byte of the view, or 0 when the view is empty.
func (s Segment) FirstChar() byte {
	if s.IsEmpty() {
		return 0
	}
	return s.buf[s.begin]
}

// LastChar returns the final byte of the view, or 0 when the view is empty.
func (s Segment) LastChar() byte {
	if s.IsEmpty() {
		return 0
	}
	return s.buf[s.end-1]
}

// CountChars returns the number of occurrences of c in the view.
func (s Segment) CountChars(c byte) int {
	var n int
	for i := s.begin; i < s.end; i++ {
		if s.buf[i] == c {
			n++
		}
	}
	return n
}

// ReadLeft removes and returns the first byte of the view. It returns 0 and
// leaves the view alone when it is already empty.
func (s *Segment) ReadLeft() byte {
	if s.begin == s.end {
		return 0
	}
	c := s.buf[s.begin]
	s.begin++
	return c
}

// ReadRight removes and returns the final byte of the view. It returns 0 and
// leaves the view alone when it is already empty.
func (s *Segment) ReadRight() byte {
	if s.begin == s.end {
		return 0
	}
	s.end--
	return s.buf[s.end]
}

// RemovePrefix drops up to n bytes from the front of the view.
func (s *Segment) RemovePrefix(n int) {
	if n <= 0 {
		return
	}
	if s.begin += n; s.begin > s.end {
		s.begin = s.end
	}
}

// RemoveSuffix drops up to n bytes from the back of the view.
func (s *Segment) RemoveSuffix(n int) {
	if n <= 0 {
		return
	}
	if s.end -= n; s.end < s.begin {
		s.end = s.begin
	}
}

// Trim removes leading and trailing white space.
func (s *Segment) Trim() {
	s.TrimLeft()
	s.TrimRight()
}

// TrimLeft removes leading white space, including carriage returns.
func (s *Segment) TrimLeft() {
	for s.begin < s.end && isSpace(s.buf[s.begin]) {
		s.begin++
	}
}

// TrimRight removes trailing white space, including carriage returns.
func (s *Segment) TrimRight() {
	for s.begin < s.end && isSpace(s.buf[s.end-1]) {
		s.end--
	}
}

// Match returns true when the view is exactly pattern. When caseSensitive is
// false, ASCII letters are compared without regard to case.
func (s Segment) Match(pattern string, caseSensitive bool) bool {
	return s.MatchSegment(New(pattern), caseSensitive)
}

// MatchSegment is like Match but takes its pattern as a Segment.
func (s Segment) MatchSegment(pattern Segment, caseSensitive bool) bool {
	l := s.Len()
	if l != pattern.Len() {
		return false
	}
	for i := 0; i < l; i++ {
		a, b := s.buf[s.begin+i], pattern.buf[pattern.begin+i]
		if a == b {
			continue
		}
		if caseSensitive || toLower(a) != toLower(b) {
			return false
		}
	}
	return true
}

// Split cuts the view at the first occurrence of delimiter. The text before
// the delimiter is stored in prefix, and the view continues with the text
// after it. Split returns false, with an empty prefix, once every part has
// been consumed. A view that ends with delimiter yields one final empty part,
// so splitting "a,b," on ',' produces "a", "b", and "" before returning
// false.
func (s *Segment) Split(delimiter byte, prefix *Segment) bool {
	if s.begin == s.end {
		if s.trailing {
			s.trailing = false
			*prefix = Segment{buf: s.buf, begin: s.end, end: s.end}
			return true
		}
		*prefix = Segment{}
		return false
	}

	i := s.begin
	for i < s.end && s.buf[i] != delimiter {
		i++
	}

	*prefix = Segment{buf: s.buf, begin: s.begin, end: i}

	if i < s.end {
		// Skip the delimiter itself.
		s.begin = i + 1
		s.trailing = s.begin == s.end
	} else {
		s.begin = s.end
		s.trailing = false
	}
	return true
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func toLower(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
