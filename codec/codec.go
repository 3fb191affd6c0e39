// Package codec converts the scalar values stored in tabkit tables to and from
// their text form.
//
//	int     -42
//	bool    yes | no              (decoding also accepts true | false)
//	string  "text"                (no escapes)
//	[]int   [1,2,3] | []
package codec

import (
	"math"
	"strconv"
	"strings"

	"github.com/gradekit/tabkit/segment"
	"github.com/zeebo/errs/v2"
)

var (
	// ErrSyntax classifies text that does not have the shape of the
	// requested type.
	ErrSyntax = errs.Tag("syntax")

	// ErrRange classifies integers that do not fit in 32 bits.
	ErrRange = errs.Tag("range")
)

// If x < posOverflowGuard any digit may be appended to x; if x equals it only
// digits up to posLastDigitGuard may be. The negative guards mirror these for
// accumulation below zero, where remainders are negative.
const (
	posOverflowGuard  = math.MaxInt32 / 10
	posLastDigitGuard = math.MaxInt32 % 10
	negOverflowGuard  = math.MinInt32 / 10
	negLastDigitGuard = math.MinInt32 % 10
)

// EncodeInt returns the decimal form of v.
func EncodeInt(v int) string { return strconv.Itoa(v) }

// EncodeBool returns "yes" or "no".
func EncodeBool(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

// EncodeString wraps v in double quotes. Embedded quotes are not escaped.
func EncodeString(v string) string { return `"` + v + `"` }

// EncodeInts returns v as a bracketed, comma separated list with no spaces.
func EncodeInts(v []int) string {
	var sb strings.Builder
	sb.Grow(2 + 4*len(v))
	sb.WriteByte('[')
	for i, n := range v {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(n))
	}
	sb.WriteByte(']')
	return sb.String()
}

// DecodeInt parses an optionally negative decimal integer. Surrounding white
// space is ignored. Values outside the signed 32-bit range are rejected rather
// than wrapped.
func DecodeInt(s segment.Segment) (int, error) {
	text := s.String()
	s.Trim()
	if s.IsEmpty() {
		return 0, ErrSyntax.Errorf("empty integer")
	}

	sign := 1
	if s.FirstChar() == '-' {
		sign = -1
		s.RemovePrefix(1)
		if s.IsEmpty() {
			return 0, ErrSyntax.Errorf("integer has no digits: %q", text)
		}
	}

	var result int
	for !s.IsEmpty() {
		c := s.ReadLeft()
		if c < '0' || c > '9' {
			return 0, ErrSyntax.Errorf("invalid integer: %q", text)
		}

		// For negative numbers the digit is negative or zero.
		digit := int(c-'0') * sign

		if result > posOverflowGuard || result < negOverflowGuard ||
			(result == posOverflowGuard && digit > posLastDigitGuard) ||
			(result == negOverflowGuard && digit < negLastDigitGuard) {
			return 0, ErrRange.Errorf("integer out of range: %q", text)
		}

		result = result*10 + digit
	}

	return result, nil
}

// DecodeString returns the text between a leading and a trailing double
// quote.
func DecodeString(s segment.Segment) (string, error) {
	text := s.String()
	s.Trim()
	if s.Len() < 2 || s.ReadLeft() != '"' || s.ReadRight() != '"' {
		return "", ErrSyntax.Errorf("string must be quoted: %q", text)
	}
	return s.String(), nil
}

// DecodeBool accepts true, yes, false and no. Matching is case sensitive.
func DecodeBool(s segment.Segment) (bool, error) {
	s.Trim()
	switch {
	case s.Match("true", true) || s.Match("yes", true):
		return true, nil
	case s.Match("false", true) || s.Match("no", true):
		return false, nil
	}
	return false, ErrSyntax.Errorf("invalid boolean: %q", s.String())
}

// DecodeInts parses a bracketed, comma separated list of integers. When any
// element fails to decode the whole list is rejected and nil is returned.
func DecodeInts(s segment.Segment) ([]int, error) {
	text := s.String()
	s.Trim()
	if s.Len() < 2 || s.ReadLeft() != '[' || s.ReadRight() != ']' {
		return nil, ErrSyntax.Errorf("list must be bracketed: %q", text)
	}

	if s.IsEmpty() {
		return []int{}, nil
	}

	result := make([]int, 0, s.CountChars(',')+1)

	var prefix segment.Segment
	for s.Split(',', &prefix) {
		v, err := DecodeInt(prefix)
		if err != nil {
			return nil, err
		}
		result = append(result, v)
	}

	return result, nil
}
