package blob

import (
	"strings"
	"unsafe"
)

// View is a decoded value node. String and mimetype fields alias the input
// buffer (no copy), array and file payloads are sub-slices of it, and
// Object/List children are Views borrowing the same buffer.
//
// A View must not outlive the buffer it was decoded from, and the buffer
// must be treated as read-only while any derived View is alive. That
// relationship is structural, not runtime-checked; Blob exists to hold it
// for callers who want a single owning value.
type View struct {
	kind    Kind
	b       bool
	i       int64
	f       float64
	str     string
	arr     *ArrayView
	file    *FileView
	entries []EntryView
	items   []View
}

// EntryView is one decoded key/value pair of an Object. Key aliases the
// input buffer.
type EntryView struct {
	Key   string
	Value View
}

// ArrayView is a decoded typed array whose Data aliases the input buffer.
// Data length is trusted from the wire and not cross-checked against the
// shape; package tensor validates on typed access.
type ArrayView struct {
	DType DType
	Shape []uint64
	Data  []byte
}

// FileView is a decoded file payload whose Mimetype and Data alias the
// input buffer.
type FileView struct {
	Mimetype string
	Data     []byte
}

// Kind reports which variant v holds.
func (v View) Kind() Kind { return v.kind }

// AsBool returns the boolean and true, or false on kind mismatch.
func (v View) AsBool() (bool, bool) {
	return v.b, v.kind == KindBool
}

// AsInt returns the integer and true, or false on kind mismatch.
func (v View) AsInt() (int64, bool) {
	return v.i, v.kind == KindInt
}

// AsFloat returns the float and true, or false on kind mismatch.
func (v View) AsFloat() (float64, bool) {
	return v.f, v.kind == KindFloat
}

// AsString returns the string and true, or false on kind mismatch. The
// string aliases the input buffer.
func (v View) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

// AsArray returns the array view, or false on kind mismatch.
func (v View) AsArray() (*ArrayView, bool) {
	if v.kind != KindArray {
		return nil, false
	}
	return v.arr, true
}

// AsFile returns the file view, or false on kind mismatch.
func (v View) AsFile() (*FileView, bool) {
	if v.kind != KindFile {
		return nil, false
	}
	return v.file, true
}

// AsObject returns the entries in encoded order, or false on kind mismatch.
func (v View) AsObject() ([]EntryView, bool) {
	if v.kind != KindObject {
		return nil, false
	}
	return v.entries, true
}

// AsList returns the items in encoded order, or false on kind mismatch.
func (v View) AsList() ([]View, bool) {
	if v.kind != KindList {
		return nil, false
	}
	return v.items, true
}

// ToValue deep-copies the subtree into an owned Value detached from the
// input buffer, for callers who need data to outlive it.
func (v View) ToValue() Value {
	switch v.kind {
	case KindBool:
		return Bool(v.b)
	case KindInt:
		return Int(v.i)
	case KindFloat:
		return Float(v.f)
	case KindString:
		return String(cloneString(v.str))
	case KindArray:
		return ArrayValue(v.arr.ToArray())
	case KindFile:
		return FileValue(v.file.ToFile())
	case KindObject:
		entries := make([]Entry, len(v.entries))
		for i, e := range v.entries {
			entries[i] = Entry{Key: cloneString(e.Key), Value: e.Value.ToValue()}
		}
		return Object(entries...)
	case KindList:
		items := make([]Value, len(v.items))
		for i, it := range v.items {
			items[i] = it.ToValue()
		}
		return List(items...)
	default:
		return Value{}
	}
}

// NumElements returns the product of the shape dimensions.
func (a *ArrayView) NumElements() uint64 {
	n := uint64(1)
	for _, d := range a.Shape {
		n *= d
	}
	return n
}

// ExpectedSize returns the payload length the shape and dtype imply. The
// decoder does not require Data length to match this.
func (a *ArrayView) ExpectedSize() uint64 {
	return a.NumElements() * uint64(a.DType.Size())
}

// ToArray deep-copies the view into an owned Array.
func (a *ArrayView) ToArray() *Array {
	shape := make([]uint64, len(a.Shape))
	copy(shape, a.Shape)
	data := make([]byte, len(a.Data))
	copy(data, a.Data)
	return &Array{DType: a.DType, Shape: shape, Data: data}
}

// ToFile deep-copies the view into an owned bytes-backed File.
func (f *FileView) ToFile() *File {
	data := make([]byte, len(f.Data))
	copy(data, f.Data)
	return FileBytes(cloneString(f.Mimetype), data)
}

// byteString reinterprets b as a string without copying. Decoded strings
// alias the read-only input buffer, mirroring the borrowed payload slices.
func byteString(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(&b[0], len(b))
}

// cloneString copies s into fresh memory so owned trees never alias a
// decode buffer.
func cloneString(s string) string {
	return strings.Clone(s)
}
