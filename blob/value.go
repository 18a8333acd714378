package blob

import (
	"bytes"
	"slices"
)

// Value is an owned value tree node, built by the caller and consumed by
// the encoder. The zero Value is invalid; use the constructors.
type Value struct {
	kind    Kind
	b       bool
	i       int64
	f       float64
	s       string
	arr     *Array
	file    *File
	entries []Entry
	items   []Value
}

// Entry is one key/value pair of an Object. Keys must not contain the
// path separator '/'; the encoder enforces this.
type Entry struct {
	Key   string
	Value Value
}

// Bool returns an owned Bool value.
func Bool(v bool) Value { return Value{kind: KindBool, b: v} }

// Int returns an owned Int value.
func Int(v int64) Value { return Value{kind: KindInt, i: v} }

// Float returns an owned Float value.
func Float(v float64) Value { return Value{kind: KindFloat, f: v} }

// String returns an owned String value.
func String(v string) Value { return Value{kind: KindString, s: v} }

// List returns an owned List of the given items, in order.
func List(items ...Value) Value { return Value{kind: KindList, items: items} }

// Object returns an owned Object of the given entries, in order. Duplicate
// keys are representable; path lookup resolves the first match.
func Object(entries ...Entry) Value { return Value{kind: KindObject, entries: entries} }

// Field pairs a key with a value for use in Object.
func Field(key string, v Value) Entry { return Entry{Key: key, Value: v} }

// ArrayValue wraps a typed array as a value.
func ArrayValue(a *Array) Value { return Value{kind: KindArray, arr: a} }

// FileValue wraps a file payload as a value.
func FileValue(f *File) Value { return Value{kind: KindFile, file: f} }

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// Equal reports deep value equality. Reader-backed File payloads have no
// observable bytes, so they only compare equal to themselves.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindBool:
		return v.b == o.b
	case KindInt:
		return v.i == o.i
	case KindFloat:
		return v.f == o.f
	case KindString:
		return v.s == o.s
	case KindArray:
		return v.arr.equal(o.arr)
	case KindFile:
		return v.file.equal(o.file)
	case KindObject:
		if len(v.entries) != len(o.entries) {
			return false
		}
		for i := range v.entries {
			if v.entries[i].Key != o.entries[i].Key ||
				!v.entries[i].Value.Equal(o.entries[i].Value) {
				return false
			}
		}
		return true
	case KindList:
		if len(v.items) != len(o.items) {
			return false
		}
		for i := range v.items {
			if !v.items[i].Equal(o.items[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Array is an owned typed multi-dimensional array: a dtype, an ordered
// shape, and a raw little-endian byte payload. The codec does not
// cross-check Data length against the shape-implied length; typed access
// (package tensor) validates on use.
type Array struct {
	DType DType
	Shape []uint64
	Data  []byte
}

// NewArray builds an owned array from its parts. No validation is
// performed here; see tensor.FromSlice for checked construction.
func NewArray(dtype DType, shape []uint64, data []byte) *Array {
	return &Array{DType: dtype, Shape: shape, Data: data}
}

// NumElements returns the product of the shape dimensions.
func (a *Array) NumElements() uint64 {
	n := uint64(1)
	for _, d := range a.Shape {
		n *= d
	}
	return n
}

// ExpectedSize returns the payload length the shape and dtype imply.
func (a *Array) ExpectedSize() uint64 {
	return a.NumElements() * uint64(a.DType.Size())
}

func (a *Array) equal(o *Array) bool {
	if a == nil || o == nil {
		return a == o
	}
	return a.DType == o.DType &&
		slices.Equal(a.Shape, o.Shape) &&
		bytes.Equal(a.Data, o.Data)
}
