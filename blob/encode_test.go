package blob

import (
	"bytes"
	"errors"
	"io"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jonasrsv42/blobfig/internal/format"
)

func Test_WriteHeader(t *testing.T) {
	buf, err := Marshal(Bool(true))
	require.NoError(t, err)

	require.Equal(t, format.Magic, buf[:8])
	require.Equal(t, format.Version, format.ReadU32(buf, format.VersionOffset))
	require.Equal(t, uint32(0), format.ReadU32(buf, format.FlagsOffset))
	require.Equal(t, uint64(2), format.ReadU64(buf, format.RootSizeOffset))
	require.Len(t, buf, format.HeaderSize+2)
}

func Test_ComputeSize(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want uint64
	}{
		{"bool", Bool(true), 2},
		{"int", Int(-1), 9},
		{"float", Float(1.5), 9},
		{"string", String("abc"), 1 + 4 + 3},
		{"empty list", List(), 1 + 4},
		{"empty object", Object(), 1 + 4},
		{"object entry overhead", Object(Field("ab", Bool(false))), 1 + 4 + 2 + 2 + 2},
		{"array", ArrayValue(NewArray(DTypeF32, []uint64{2, 3}, make([]byte, 24))),
			1 + 1 + 1 + 16 + 8 + 24},
		{"file bytes", FileValue(FileBytes("a/b", []byte("xyz"))), 1 + 2 + 3 + 8 + 3},
		{"file reader", FileValue(FileReader("a/b", strings.NewReader("xyz"), 3)), 1 + 2 + 3 + 8 + 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, computeSize(tt.v))
			// The emitted bytes must match the size pass exactly.
			buf, err := Marshal(tt.v)
			require.NoError(t, err)
			require.Equal(t, tt.want, uint64(len(buf)-format.HeaderSize))
		})
	}
}

func Test_KeyRejection(t *testing.T) {
	t.Run("top level", func(t *testing.T) {
		_, err := Marshal(Object(Field("invalid/key", Int(1))))
		require.ErrorIs(t, err, ErrReservedKey)
		require.Contains(t, err.Error(), "invalid/key")
	})

	t.Run("nested", func(t *testing.T) {
		_, err := Marshal(Object(
			Field("valid", Object(Field("also/bad", Int(1)))),
		))
		require.ErrorIs(t, err, ErrReservedKey)
	})

	t.Run("prior siblings stay in the sink", func(t *testing.T) {
		var sink bytes.Buffer
		err := Write(&sink, Object(
			Field("ok", Int(1)),
			Field("bad/key", Int(2)),
		))
		require.ErrorIs(t, err, ErrReservedKey)
		// No rollback: header and first entry were already flushed.
		require.Greater(t, sink.Len(), format.HeaderSize)
	})
}

func Test_EncodeLimits(t *testing.T) {
	t.Run("key too long", func(t *testing.T) {
		_, err := Marshal(Object(Field(strings.Repeat("k", format.MaxKeyLen+1), Int(1))))
		require.ErrorIs(t, err, ErrLimit)
	})

	t.Run("mimetype too long", func(t *testing.T) {
		f := FileBytes(strings.Repeat("m", format.MaxMimetypeLen+1), nil)
		_, err := Marshal(FileValue(f))
		require.ErrorIs(t, err, ErrLimit)
	})

	t.Run("too many dimensions", func(t *testing.T) {
		a := NewArray(DTypeU8, make([]uint64, format.MaxDims+1), nil)
		_, err := Marshal(ArrayValue(a))
		require.ErrorIs(t, err, ErrLimit)
	})

	t.Run("unknown dtype", func(t *testing.T) {
		a := NewArray(DType(0xEE), []uint64{1}, []byte{0})
		_, err := Marshal(ArrayValue(a))
		require.ErrorIs(t, err, ErrBadDType)
	})

	t.Run("zero value", func(t *testing.T) {
		var v Value
		_, err := Marshal(v)
		var be *Error
		require.ErrorAs(t, err, &be)
		require.Equal(t, ErrKindState, be.Kind)
	})
}

// patternReader yields a deterministic byte pattern without holding the
// payload in memory, for exercising streamed file sources.
type patternReader struct {
	pos int
}

func (r *patternReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte((r.pos + i) * 31)
	}
	r.pos += len(p)
	return len(p), nil
}

// countingDiscard counts written bytes without retaining them.
type countingDiscard struct {
	n int64
}

func (w *countingDiscard) Write(p []byte) (int, error) {
	w.n += int64(len(p))
	return len(p), nil
}

func Test_StreamedFileRoundtrip(t *testing.T) {
	const size = 4<<20 + 17 // not chunk-aligned on purpose
	f := FileReader("application/x-model", io.LimitReader(&patternReader{}, size), size)

	buf, err := Marshal(Object(Field("model", FileValue(f))))
	require.NoError(t, err)

	v, err := Decode(buf)
	require.NoError(t, err)
	fv, err := v.FileAt("model")
	require.NoError(t, err)
	require.Equal(t, "application/x-model", fv.Mimetype)
	require.Len(t, fv.Data, size)

	// Spot-check the pattern at both ends.
	require.Equal(t, byte(0), fv.Data[0])
	last := size - 1
	require.Equal(t, byte(last*31), fv.Data[last])
}

// Test_StreamingBoundedMemory encodes a 256 MiB streamed payload into a
// discarding sink and requires the process heap to grow by no more than a
// few chunk buffers, pinning the O(chunk) streaming guarantee.
func Test_StreamingBoundedMemory(t *testing.T) {
	if testing.Short() {
		t.Skip("large streaming test")
	}
	const size = 256 << 20

	runtime.GC()
	var before runtime.MemStats
	runtime.ReadMemStats(&before)

	sink := &countingDiscard{}
	f := FileReader("application/octet-stream", io.LimitReader(&patternReader{}, size), size)
	err := Write(sink, FileValue(f))
	require.NoError(t, err)

	runtime.GC()
	var after runtime.MemStats
	runtime.ReadMemStats(&after)

	wantLen := int64(format.HeaderSize + 1 + 2 + len("application/octet-stream") + 8 + size)
	require.Equal(t, wantLen, sink.n)

	if after.HeapAlloc > before.HeapAlloc {
		growth := after.HeapAlloc - before.HeapAlloc
		require.Less(t, growth, uint64(16<<20),
			"streaming a 256 MiB payload grew the heap by %d bytes", growth)
	}
}

func Test_ShortSource(t *testing.T) {
	// Declared size exceeds what the reader can deliver.
	f := FileReader("text/plain", strings.NewReader("only ten b"), 1000)
	_, err := Marshal(FileValue(f))
	require.ErrorIs(t, err, ErrShortSource)
	require.NotErrorIs(t, err, ErrTruncated)
}

func Test_StreamedFileSingleUse(t *testing.T) {
	f := FileReader("text/plain", strings.NewReader("once"), 4)
	v1 := FileValue(f)
	_, err := Marshal(v1)
	require.NoError(t, err)

	// The source was consumed by the first encode.
	_, err = Marshal(FileValue(f))
	require.ErrorIs(t, err, ErrSourceConsumed)
}

func Test_BytesFileReusable(t *testing.T) {
	f := FileBytes("text/plain", []byte("again"))
	first, err := Marshal(FileValue(f))
	require.NoError(t, err)
	second, err := Marshal(FileValue(f))
	require.NoError(t, err)
	require.Equal(t, first, second)
}

// failAfter passes writes through until n bytes, then fails.
type failAfter struct {
	n   int
	err error
}

func (w *failAfter) Write(p []byte) (int, error) {
	if w.n <= 0 {
		return 0, w.err
	}
	if len(p) > w.n {
		p = p[:w.n]
	}
	w.n -= len(p)
	if w.n == 0 {
		return len(p), w.err
	}
	return len(p), nil
}

func Test_SinkErrorPropagatesAsIs(t *testing.T) {
	sinkErr := errors.New("disk full")
	err := Write(&failAfter{n: 30, err: sinkErr}, Object(Field("k", String("vvvvvvvvvv"))))
	require.ErrorIs(t, err, sinkErr)
	var be *Error
	require.False(t, errors.As(err, &be), "sink I/O failure must propagate untyped")
}

func Benchmark_StreamedEncode(b *testing.B) {
	const size = 8 << 20
	b.ReportAllocs()
	b.SetBytes(size)
	for b.Loop() {
		f := FileReader("application/octet-stream", io.LimitReader(&patternReader{}, size), size)
		if err := Write(&countingDiscard{}, FileValue(f)); err != nil {
			b.Fatal(err)
		}
	}
}
