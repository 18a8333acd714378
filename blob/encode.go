package blob

import (
	"bytes"
	"io"
	"math"
	"strings"

	"github.com/jonasrsv42/blobfig/internal/format"
)

// streamChunkSize is the transfer buffer used when copying a reader-backed
// file payload into the sink. Streaming memory is O(this constant)
// regardless of payload size.
const streamChunkSize = 8 * 1024

// Write encodes v as a complete artifact into w.
//
// The encode is two-pass: a pure size pass over the tree computes the root
// byte length for the header using declared sizes only (a streaming file
// source is never read to be measured), then the emit pass writes the
// bytes. Reader-backed File payloads are single-use and are consumed by
// this call.
//
// On failure w may hold a partial artifact; Write performs no rollback.
// Callers needing atomicity should write to a temporary location and
// rename, or use WriteFile.
func Write(w io.Writer, v Value) error {
	var hdr [format.HeaderSize]byte
	copy(hdr[:], format.Magic)
	format.PutU32(hdr[:], format.VersionOffset, format.Version)
	format.PutU32(hdr[:], format.FlagsOffset, 0)
	format.PutU64(hdr[:], format.RootSizeOffset, computeSize(v))
	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}
	return writeValue(w, v)
}

// Marshal encodes v into a fresh byte slice.
func Marshal(v Value) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(format.HeaderSize + int(computeSize(v)))
	if err := Write(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// computeSize returns the exact number of bytes v occupies when emitted.
// It is pure: recursive composite sizes sum tag/count/length-prefix
// overhead plus each child's size, and file sizes come from the declared
// size, never from reading the source.
func computeSize(v Value) uint64 {
	switch v.kind {
	case KindBool:
		return 1 + 1
	case KindInt, KindFloat:
		return 1 + 8
	case KindString:
		return 1 + 4 + uint64(len(v.s))
	case KindArray:
		return 1 + 1 + 1 + 8*uint64(len(v.arr.Shape)) + 8 + uint64(len(v.arr.Data))
	case KindFile:
		return 1 + 2 + uint64(len(v.file.Mimetype)) + 8 + v.file.Size()
	case KindObject:
		size := uint64(1 + 4)
		for _, e := range v.entries {
			size += 2 + uint64(len(e.Key)) + computeSize(e.Value)
		}
		return size
	case KindList:
		size := uint64(1 + 4)
		for _, it := range v.items {
			size += computeSize(it)
		}
		return size
	default:
		return 0
	}
}

// writeValue emits tag bytes and payloads in the same order computeSize
// assumed. Sink I/O errors propagate as-is.
func writeValue(w io.Writer, v Value) error {
	var scratch [9]byte
	switch v.kind {
	case KindBool:
		scratch[0] = format.TagBool
		scratch[1] = 0
		if v.b {
			scratch[1] = 1
		}
		_, err := w.Write(scratch[:2])
		return err

	case KindInt:
		scratch[0] = format.TagInt
		format.PutU64(scratch[:], 1, uint64(v.i))
		_, err := w.Write(scratch[:9])
		return err

	case KindFloat:
		scratch[0] = format.TagFloat
		format.PutU64(scratch[:], 1, math.Float64bits(v.f))
		_, err := w.Write(scratch[:9])
		return err

	case KindString:
		scratch[0] = format.TagString
		format.PutU32(scratch[:], 1, uint32(len(v.s)))
		if _, err := w.Write(scratch[:5]); err != nil {
			return err
		}
		_, err := io.WriteString(w, v.s)
		return err

	case KindArray:
		return writeArray(w, v.arr)

	case KindFile:
		return writeFile(w, v.file)

	case KindObject:
		scratch[0] = format.TagObject
		format.PutU32(scratch[:], 1, uint32(len(v.entries)))
		if _, err := w.Write(scratch[:5]); err != nil {
			return err
		}
		for _, e := range v.entries {
			// Key validation happens here, immediately before the key is
			// written; bytes already emitted for prior siblings stay in
			// the sink.
			if strings.Contains(e.Key, PathSeparator) {
				return errf(ErrKindKey, "key contains %q: %q", PathSeparator, e.Key)
			}
			if len(e.Key) > format.MaxKeyLen {
				return errf(ErrKindLimit, "key length %d exceeds %d", len(e.Key), format.MaxKeyLen)
			}
			format.PutU16(scratch[:], 0, uint16(len(e.Key)))
			if _, err := w.Write(scratch[:2]); err != nil {
				return err
			}
			if _, err := io.WriteString(w, e.Key); err != nil {
				return err
			}
			if err := writeValue(w, e.Value); err != nil {
				return err
			}
		}
		return nil

	case KindList:
		scratch[0] = format.TagList
		format.PutU32(scratch[:], 1, uint32(len(v.items)))
		if _, err := w.Write(scratch[:5]); err != nil {
			return err
		}
		for _, it := range v.items {
			if err := writeValue(w, it); err != nil {
				return err
			}
		}
		return nil

	default:
		return errf(ErrKindState, "cannot encode invalid value (zero Value?)")
	}
}

func writeArray(w io.Writer, a *Array) error {
	if !a.DType.valid() {
		return errf(ErrKindDType, "cannot encode unknown dtype 0x%02X", byte(a.DType))
	}
	if len(a.Shape) > format.MaxDims {
		return errf(ErrKindLimit, "array rank %d exceeds %d", len(a.Shape), format.MaxDims)
	}
	var scratch [8]byte
	hdr := []byte{format.TagArray, byte(a.DType), byte(len(a.Shape))}
	if _, err := w.Write(hdr); err != nil {
		return err
	}
	for _, dim := range a.Shape {
		format.PutU64(scratch[:], 0, dim)
		if _, err := w.Write(scratch[:8]); err != nil {
			return err
		}
	}
	format.PutU64(scratch[:], 0, uint64(len(a.Data)))
	if _, err := w.Write(scratch[:8]); err != nil {
		return err
	}
	_, err := w.Write(a.Data)
	return err
}

func writeFile(w io.Writer, f *File) error {
	if len(f.Mimetype) > format.MaxMimetypeLen {
		return errf(ErrKindLimit, "mimetype length %d exceeds %d", len(f.Mimetype), format.MaxMimetypeLen)
	}
	var scratch [8]byte
	scratch[0] = format.TagFile
	format.PutU16(scratch[:], 1, uint16(len(f.Mimetype)))
	if _, err := w.Write(scratch[:3]); err != nil {
		return err
	}
	if _, err := io.WriteString(w, f.Mimetype); err != nil {
		return err
	}
	size := f.Size()
	format.PutU64(scratch[:], 0, size)
	if _, err := w.Write(scratch[:8]); err != nil {
		return err
	}
	if f.src == nil {
		_, err := w.Write(f.data)
		return err
	}
	if f.consumed {
		return ErrSourceConsumed
	}
	f.consumed = true
	return streamPayload(w, f.src, size)
}

// streamPayload copies exactly size bytes from r to w through a fixed-size
// chunk buffer. A zero-byte read before size bytes have been transferred
// is a distinct stream error so callers can tell a bad size declaration
// from generic I/O failure.
func streamPayload(w io.Writer, r io.Reader, size uint64) error {
	chunk := make([]byte, streamChunkSize)
	remaining := size
	for remaining > 0 {
		n := uint64(len(chunk))
		if remaining < n {
			n = remaining
		}
		k, err := r.Read(chunk[:n])
		if k > 0 {
			if _, werr := w.Write(chunk[:k]); werr != nil {
				return werr
			}
			remaining -= uint64(k)
		}
		if err == io.EOF || (k == 0 && err == nil) {
			if remaining > 0 {
				return errf(ErrKindStream,
					"file source exhausted with %d of %d bytes unwritten", remaining, size)
			}
			return nil
		}
		if err != nil {
			return err
		}
	}
	return nil
}
