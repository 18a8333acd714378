// Package format houses the byte-level layout of the blobfig container
// format. The goal is to keep the wire vocabulary (magic, tags, field
// widths) in one place, independent from the public API, so the decoder
// and encoder packages cannot drift apart on constants.
package format

var (
	// Magic is the eight-byte signature at the start of every artifact.
	// Layout:
	//   0x00  'B' 'L' 'O' 'B' 'F' 'I' 'G' 0x00
	Magic = []byte{'B', 'L', 'O', 'B', 'F', 'I', 'G', 0}
)

const (
	// Version is the current format version, stored as u32 LE at offset 8.
	Version uint32 = 1

	// HeaderSize is the size of the full fixed prefix preceding the root
	// value: magic (8) + version (4) + flags (4) + root byte length (8).
	// Both sides of the codec treat this as the canonical skip distance;
	// the root value begins exactly here.
	HeaderSize = 24

	// VersionOffset, FlagsOffset, and RootSizeOffset locate the fixed
	// header fields after the magic.
	VersionOffset  = 8
	FlagsOffset    = 12
	RootSizeOffset = 16
)

// Value tag bytes. These are wire constants: never reused or renumbered
// across versions.
const (
	TagBool   byte = 0x01
	TagInt    byte = 0x02
	TagFloat  byte = 0x03
	TagString byte = 0x04
	TagArray  byte = 0x05
	TagFile   byte = 0x06
	TagObject byte = 0x07
	TagList   byte = 0x08
)

// DType tag bytes for typed-array element types. Wire constants.
const (
	DTypeU8  byte = 0x01
	DTypeI8  byte = 0x02
	DTypeU16 byte = 0x03
	DTypeI16 byte = 0x04
	DTypeU32 byte = 0x05
	DTypeI32 byte = 0x06
	DTypeU64 byte = 0x07
	DTypeI64 byte = 0x08
	DTypeF32 byte = 0x09
	DTypeF64 byte = 0x0A
)

const (
	// MaxKeyLen is the longest encodable object key in bytes (u16 prefix).
	MaxKeyLen = 65535

	// MaxMimetypeLen is the longest encodable file mimetype in bytes
	// (u16 prefix).
	MaxMimetypeLen = 65535

	// MaxDims is the highest representable array rank (u8 dimension count).
	MaxDims = 255
)
