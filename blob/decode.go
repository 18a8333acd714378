package blob

import (
	"bytes"
	"math"
	"unicode/utf8"

	"github.com/jonasrsv42/blobfig/internal/format"
)

// preallocGuard caps the capacity hinted to make() for wire-declared
// counts, so a hostile count field cannot force a huge allocation before
// its children are validated.
const preallocGuard = 1024

// Decode parses an artifact and returns the root View, which borrows from
// buf. buf must stay alive and unmodified for as long as any returned View
// (or slice or string obtained from one) is in use.
//
// Decoding is deterministic and copy-free: the same bytes always yield the
// same View tree or the same error at the same byte offset, and no string,
// array, or file payload bytes are copied out of buf.
func Decode(buf []byte) (View, error) {
	if len(buf) < format.HeaderSize {
		return View{}, decodeErrf(ErrKindTruncated, 0,
			"truncated input: %d bytes, header needs %d", len(buf), format.HeaderSize)
	}
	if !bytes.Equal(buf[:len(format.Magic)], format.Magic) {
		return View{}, decodeErrf(ErrKindMagic, 0, "invalid magic bytes, not a blobfig artifact")
	}
	if v := format.ReadU32(buf, format.VersionOffset); v != format.Version {
		return View{}, decodeErrf(ErrKindVersion, format.VersionOffset,
			"unsupported version %d, expected %d", v, format.Version)
	}

	// Flags and the root size field are part of the fixed 24-byte prefix
	// and are consumed here; the root value begins exactly at HeaderSize.
	// The root size is advisory for sequential decoding and is not
	// cross-checked against the buffer.
	c := &cursor{buf: buf, pos: format.HeaderSize}
	return c.value()
}

// cursor is a monotonically advancing read position over an immutable
// buffer. Every take bounds-checks before slicing; that check is what
// makes the zero-copy slices safe against truncated or hostile input.
type cursor struct {
	buf []byte
	pos int
}

func (c *cursor) take(n uint64) ([]byte, error) {
	if n > uint64(len(c.buf)-c.pos) {
		return nil, decodeErrf(ErrKindTruncated, c.pos,
			"truncated input: need %d bytes, %d remain", n, len(c.buf)-c.pos)
	}
	b := c.buf[c.pos : c.pos+int(n)]
	c.pos += int(n)
	return b, nil
}

func (c *cursor) u8() (byte, error) {
	b, err := c.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (c *cursor) u16() (uint16, error) {
	b, err := c.take(2)
	if err != nil {
		return 0, err
	}
	return format.ReadU16(b, 0), nil
}

func (c *cursor) u32() (uint32, error) {
	b, err := c.take(4)
	if err != nil {
		return 0, err
	}
	return format.ReadU32(b, 0), nil
}

func (c *cursor) u64() (uint64, error) {
	b, err := c.take(8)
	if err != nil {
		return 0, err
	}
	return format.ReadU64(b, 0), nil
}

// utf8Slice takes n bytes and validates them as UTF-8, reporting the
// offset where the region begins on failure.
func (c *cursor) utf8Slice(n uint64, what string) ([]byte, error) {
	start := c.pos
	b, err := c.take(n)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(b) {
		return nil, decodeErrf(ErrKindUTF8, start, "invalid UTF-8 in %s", what)
	}
	return b, nil
}

func (c *cursor) value() (View, error) {
	tagPos := c.pos
	tag, err := c.u8()
	if err != nil {
		return View{}, err
	}
	switch Kind(tag) {
	case KindBool:
		b, err := c.u8()
		if err != nil {
			return View{}, err
		}
		return View{kind: KindBool, b: b != 0}, nil

	case KindInt:
		u, err := c.u64()
		if err != nil {
			return View{}, err
		}
		return View{kind: KindInt, i: int64(u)}, nil

	case KindFloat:
		u, err := c.u64()
		if err != nil {
			return View{}, err
		}
		return View{kind: KindFloat, f: math.Float64frombits(u)}, nil

	case KindString:
		n, err := c.u32()
		if err != nil {
			return View{}, err
		}
		s, err := c.utf8Slice(uint64(n), "string")
		if err != nil {
			return View{}, err
		}
		return View{kind: KindString, str: byteString(s)}, nil

	case KindArray:
		a, err := c.arrayBody()
		if err != nil {
			return View{}, err
		}
		return View{kind: KindArray, arr: a}, nil

	case KindFile:
		f, err := c.fileBody()
		if err != nil {
			return View{}, err
		}
		return View{kind: KindFile, file: f}, nil

	case KindObject:
		n, err := c.u32()
		if err != nil {
			return View{}, err
		}
		entries := make([]EntryView, 0, min(int(n), preallocGuard))
		for range n {
			e, err := c.entry()
			if err != nil {
				return View{}, err
			}
			entries = append(entries, e)
		}
		return View{kind: KindObject, entries: entries}, nil

	case KindList:
		n, err := c.u32()
		if err != nil {
			return View{}, err
		}
		items := make([]View, 0, min(int(n), preallocGuard))
		for range n {
			v, err := c.value()
			if err != nil {
				return View{}, err
			}
			items = append(items, v)
		}
		return View{kind: KindList, items: items}, nil

	default:
		return View{}, decodeErrf(ErrKindTag, tagPos, "invalid value tag 0x%02X", tag)
	}
}

func (c *cursor) entry() (EntryView, error) {
	n, err := c.u16()
	if err != nil {
		return EntryView{}, err
	}
	key, err := c.utf8Slice(uint64(n), "key")
	if err != nil {
		return EntryView{}, err
	}
	v, err := c.value()
	if err != nil {
		return EntryView{}, err
	}
	return EntryView{Key: byteString(key), Value: v}, nil
}

func (c *cursor) arrayBody() (*ArrayView, error) {
	dtypePos := c.pos
	dt, err := c.u8()
	if err != nil {
		return nil, err
	}
	dtype := DType(dt)
	if !dtype.valid() {
		return nil, decodeErrf(ErrKindDType, dtypePos, "invalid dtype tag 0x%02X", dt)
	}
	ndim, err := c.u8()
	if err != nil {
		return nil, err
	}
	shape := make([]uint64, ndim)
	for i := range shape {
		if shape[i], err = c.u64(); err != nil {
			return nil, err
		}
	}
	// The payload length is trusted as declared; it is deliberately not
	// cross-checked against the shape-implied size. Typed access in
	// package tensor validates before reinterpreting.
	size, err := c.u64()
	if err != nil {
		return nil, err
	}
	data, err := c.take(size)
	if err != nil {
		return nil, err
	}
	return &ArrayView{DType: dtype, Shape: shape, Data: data}, nil
}

func (c *cursor) fileBody() (*FileView, error) {
	n, err := c.u16()
	if err != nil {
		return nil, err
	}
	mime, err := c.utf8Slice(uint64(n), "mimetype")
	if err != nil {
		return nil, err
	}
	size, err := c.u64()
	if err != nil {
		return nil, err
	}
	data, err := c.take(size)
	if err != nil {
		return nil, err
	}
	return &FileView{Mimetype: byteString(mime), Data: data}, nil
}
