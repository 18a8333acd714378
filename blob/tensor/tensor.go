// Package tensor provides typed access to blobfig arrays: mapping Go
// element types to dtype tags, reinterpreting decoded payloads as typed
// slices (zero-copy when alignment permits, copying otherwise), and
// converting to and from gonum dense matrices.
//
// Array payload lengths are trusted by the decoder and only validated
// here, at the point of typed access. All conversions cross-check dtype
// and the shape-implied length before touching payload bytes.
//
// Zero-copy reinterpretation reads payload bytes in host byte order; the
// wire format is little-endian, matching all targets this module is
// built for.
package tensor

import (
	"unsafe"

	"github.com/jonasrsv42/blobfig/blob"
)

// Element is the closed set of Go types storable in a blobfig array.
type Element interface {
	uint8 | int8 | uint16 | int16 | uint32 | int32 | uint64 | int64 | float32 | float64
}

// DTypeOf returns the dtype tag for element type T.
func DTypeOf[T Element]() blob.DType {
	var z T
	switch any(z).(type) {
	case uint8:
		return blob.DTypeU8
	case int8:
		return blob.DTypeI8
	case uint16:
		return blob.DTypeU16
	case int16:
		return blob.DTypeI16
	case uint32:
		return blob.DTypeU32
	case int32:
		return blob.DTypeI32
	case uint64:
		return blob.DTypeU64
	case int64:
		return blob.DTypeI64
	case float32:
		return blob.DTypeF32
	default:
		return blob.DTypeF64
	}
}

// Slice reinterprets the array payload as a []T without copying. The
// returned slice aliases the decode buffer and is only valid while that
// buffer is. Fails with a typed error when the dtype differs from T, the
// payload length disagrees with the shape-implied length, or the payload
// start is not aligned for T (use Values for the copying fallback).
func Slice[T Element](a *blob.ArrayView) ([]T, error) {
	n, err := check[T](a.DType, a.Shape, len(a.Data))
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	p := unsafe.Pointer(&a.Data[0])
	if uintptr(p)%unsafe.Alignof(*new(T)) != 0 {
		return nil, &blob.Error{
			Kind:   blob.ErrKindAlign,
			Msg:    "tensor: payload misaligned for element type",
			Offset: -1,
		}
	}
	return unsafe.Slice((*T)(p), n), nil
}

// Values returns the array elements as a fresh []T, copying the payload
// into aligned memory. Same validation as Slice, minus the alignment
// requirement.
func Values[T Element](a *blob.ArrayView) ([]T, error) {
	n, err := check[T](a.DType, a.Shape, len(a.Data))
	if err != nil {
		return nil, err
	}
	out := make([]T, n)
	if n > 0 {
		copy(unsafe.Slice((*byte)(unsafe.Pointer(&out[0])), len(a.Data)), a.Data)
	}
	return out, nil
}

// FromSlice builds an owned array from typed data, copying it into a raw
// byte payload. The shape must multiply out to len(data).
func FromSlice[T Element](shape []uint64, data []T) (*blob.Array, error) {
	n, ok := numElements(shape)
	if !ok || n != uint64(len(data)) {
		return nil, &blob.Error{
			Kind:   blob.ErrKindShape,
			Msg:    "tensor: shape does not match data length",
			Offset: -1,
		}
	}
	dtype := DTypeOf[T]()
	raw := make([]byte, len(data)*dtype.Size())
	if len(data) > 0 {
		copy(raw, unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), len(raw)))
	}
	shapeCopy := make([]uint64, len(shape))
	copy(shapeCopy, shape)
	return blob.NewArray(dtype, shapeCopy, raw), nil
}

// check validates dtype and shape-implied length for element type T and
// returns the element count.
func check[T Element](dtype blob.DType, shape []uint64, dataLen int) (int, error) {
	want := DTypeOf[T]()
	if dtype != want {
		return 0, &blob.Error{
			Kind:   blob.ErrKindType,
			Msg:    "tensor: dtype mismatch: expected " + want.String() + ", got " + dtype.String(),
			Offset: -1,
		}
	}
	n, ok := numElements(shape)
	if !ok || n*uint64(dtype.Size()) != uint64(dataLen) {
		return 0, &blob.Error{
			Kind:   blob.ErrKindShape,
			Msg:    "tensor: payload length does not match shape",
			Offset: -1,
		}
	}
	return int(n), nil
}

// numElements is the overflow-checked product of the shape dimensions.
func numElements(shape []uint64) (uint64, bool) {
	n := uint64(1)
	for _, d := range shape {
		if d != 0 && n > ^uint64(0)/d {
			return 0, false
		}
		n *= d
	}
	return n, true
}
