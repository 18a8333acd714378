package blob

import (
	"fmt"

	"github.com/jonasrsv42/blobfig/internal/format"
)

// Kind identifies which variant a Value or View holds. The numeric values
// are the wire tag bytes.
type Kind byte

const (
	KindInvalid Kind = 0
	KindBool    Kind = Kind(format.TagBool)
	KindInt     Kind = Kind(format.TagInt)
	KindFloat   Kind = Kind(format.TagFloat)
	KindString  Kind = Kind(format.TagString)
	KindArray   Kind = Kind(format.TagArray)
	KindFile    Kind = Kind(format.TagFile)
	KindObject  Kind = Kind(format.TagObject)
	KindList    Kind = Kind(format.TagList)
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "Bool"
	case KindInt:
		return "Int"
	case KindFloat:
		return "Float"
	case KindString:
		return "String"
	case KindArray:
		return "Array"
	case KindFile:
		return "File"
	case KindObject:
		return "Object"
	case KindList:
		return "List"
	default:
		return fmt.Sprintf("Kind(0x%02X)", byte(k))
	}
}

func (k Kind) valid() bool {
	return k >= KindBool && k <= KindList
}

// DType identifies the element type of an Array. The numeric values are
// the wire dtype tag bytes.
type DType byte

const (
	DTypeU8  DType = DType(format.DTypeU8)
	DTypeI8  DType = DType(format.DTypeI8)
	DTypeU16 DType = DType(format.DTypeU16)
	DTypeI16 DType = DType(format.DTypeI16)
	DTypeU32 DType = DType(format.DTypeU32)
	DTypeI32 DType = DType(format.DTypeI32)
	DTypeU64 DType = DType(format.DTypeU64)
	DTypeI64 DType = DType(format.DTypeI64)
	DTypeF32 DType = DType(format.DTypeF32)
	DTypeF64 DType = DType(format.DTypeF64)
)

// Size returns the width of one element in bytes, or 0 for an unknown tag.
func (d DType) Size() int {
	switch d {
	case DTypeU8, DTypeI8:
		return 1
	case DTypeU16, DTypeI16:
		return 2
	case DTypeU32, DTypeI32, DTypeF32:
		return 4
	case DTypeU64, DTypeI64, DTypeF64:
		return 8
	default:
		return 0
	}
}

func (d DType) String() string {
	switch d {
	case DTypeU8:
		return "u8"
	case DTypeI8:
		return "i8"
	case DTypeU16:
		return "u16"
	case DTypeI16:
		return "i16"
	case DTypeU32:
		return "u32"
	case DTypeI32:
		return "i32"
	case DTypeU64:
		return "u64"
	case DTypeI64:
		return "i64"
	case DTypeF32:
		return "f32"
	case DTypeF64:
		return "f64"
	default:
		return fmt.Sprintf("DType(0x%02X)", byte(d))
	}
}

func (d DType) valid() bool {
	return d >= DTypeU8 && d <= DTypeF64
}
