package blob

import (
	"bytes"
	"io"
)

// File is an owned file payload: a mimetype plus either in-memory bytes or
// a single-pass readable source with an independently declared size. The
// two states form a closed sum; no third source kind exists.
type File struct {
	Mimetype string

	data     []byte
	src      io.Reader
	size     uint64
	consumed bool
}

// FileBytes builds a file payload from in-memory bytes. Bytes-backed files
// may be encoded any number of times.
func FileBytes(mimetype string, data []byte) *File {
	return &File{Mimetype: mimetype, data: data}
}

// FileReader builds a file payload from a single-pass readable source.
// size is the declared payload length in bytes and must be knowable
// without consuming the stream; the encoder transfers exactly size bytes
// and fails with ErrShortSource if r runs out early. A reader-backed File
// is single-use: it is invalidated by one encode pass.
func FileReader(mimetype string, r io.Reader, size uint64) *File {
	return &File{Mimetype: mimetype, src: r, size: size}
}

// Size returns the declared payload length in bytes without reading the
// source.
func (f *File) Size() uint64 {
	if f.src != nil {
		return f.size
	}
	return uint64(len(f.data))
}

// Bytes returns the in-memory payload, or nil for a reader-backed File.
func (f *File) Bytes() []byte { return f.data }

// Streamed reports whether the payload comes from a single-pass source.
func (f *File) Streamed() bool { return f.src != nil }

func (f *File) equal(o *File) bool {
	if f == nil || o == nil {
		return f == o
	}
	if f.Mimetype != o.Mimetype {
		return false
	}
	if f.src != nil || o.src != nil {
		return f == o
	}
	return bytes.Equal(f.data, o.data)
}
