package table

import (
	"slices"

	"github.com/gradekit/tabkit/codec"
	"github.com/gradekit/tabkit/segment"
)

// Field binds one column to one field of a record of type T.
type Field[T any] interface {
	// Decode parses text into the field. The field is left unchanged when
	// text does not decode.
	Decode(rec *T, text segment.Segment) error

	// Encode returns the text form of the field.
	Encode(rec *T) string

	// EqualsDefault reports whether the field holds its default value.
	EqualsDefault(rec *T) bool

	// SetDefault stores the default value in the field.
	SetDefault(rec *T)
}

// Accessor returns the address of one field of a record.
type Accessor[T, C any] func(rec *T) *C

type field[T, C any] struct {
	get    Accessor[T, C]
	decode func(segment.Segment) (C, error)
	encode func(C) string
	equal  func(a, b C) bool
	def    C
}

// NewField returns a Field for a value of type C held in records of type T.
func NewField[T, C any](get Accessor[T, C], decode func(segment.Segment) (C, error), encode func(C) string, equal func(a, b C) bool, def C) Field[T] {
	return &field[T, C]{get: get, decode: decode, encode: encode, equal: equal, def: def}
}

func (f *field[T, C]) Decode(rec *T, text segment.Segment) error {
	v, err := f.decode(text)
	if err != nil {
		return err
	}
	*f.get(rec) = v
	return nil
}

func (f *field[T, C]) Encode(rec *T) string { return f.encode(*f.get(rec)) }

func (f *field[T, C]) EqualsDefault(rec *T) bool { return f.equal(*f.get(rec), f.def) }

func (f *field[T, C]) SetDefault(rec *T) { *f.get(rec) = f.def }

// DefaultInt is the default of integer columns registered without one.
const DefaultInt = -1

// Int binds an integer field. Its default is DefaultInt unless one is given.
func Int[T any](get Accessor[T, int], def ...int) Field[T] {
	d := DefaultInt
	if len(def) > 0 {
		d = def[0]
	}
	return NewField(get, codec.DecodeInt, codec.EncodeInt, equal[int], d)
}

// Bool binds a boolean field.
func Bool[T any](get Accessor[T, bool], def bool) Field[T] {
	return NewField(get, codec.DecodeBool, codec.EncodeBool, equal[bool], def)
}

// String binds a string field.
func String[T any](get Accessor[T, string], def string) Field[T] {
	return NewField(get, codec.DecodeString, codec.EncodeString, equal[string], def)
}

// Ints binds an integer list field. Its default is the empty list, and nil
// and empty lists are considered equal.
func Ints[T any](get Accessor[T, []int]) Field[T] {
	return NewField(get, codec.DecodeInts, codec.EncodeInts, slices.Equal[[]int], nil)
}

func equal[C comparable](a, b C) bool { return a == b }
