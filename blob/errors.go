package blob

import "fmt"

// ErrKind classifies errors so callers can branch on intent rather than
// message text.
type ErrKind int

const (
	ErrKindMagic      ErrKind = iota // input does not start with the blobfig magic
	ErrKindVersion                   // artifact version is not supported
	ErrKindTruncated                 // insufficient bytes for a required field
	ErrKindTag                       // value tag byte outside the known enumeration
	ErrKindDType                     // dtype tag byte outside the known enumeration
	ErrKindUTF8                      // invalid UTF-8 in a string, key, or mimetype
	ErrKindKey                       // object key contains the reserved path separator
	ErrKindLimit                     // value exceeds a representable field width
	ErrKindStream                    // streaming file source exhausted before declared size
	ErrKindState                     // invalid operation for current state (e.g. consumed source)
	ErrKindNotFound                  // missing key or path
	ErrKindType                      // value kind or dtype differs from the requested one
	ErrKindShape                     // payload length disagrees with shape-implied length
	ErrKindAlign                     // payload start is misaligned for the element type
	ErrKindContiguous                // external array is not contiguous row-major
)

// Error is the typed error returned throughout the package. Decode errors
// carry the byte offset of the failure; Offset is -1 where no position
// applies.
type Error struct {
	Kind   ErrKind
	Msg    string
	Offset int64
	Err    error // optional underlying cause
}

func (e *Error) Error() string {
	s := e.Msg
	if e.Offset >= 0 {
		s = fmt.Sprintf("%s (at offset %d)", s, e.Offset)
	}
	if e.Err != nil {
		s = s + ": " + e.Err.Error()
	}
	return s
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same Kind, so sentinel comparisons like
// errors.Is(err, blob.ErrTruncated) work regardless of message or offset.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Sentinels for errors.Is checks.
var (
	// ErrBadMagic indicates the input is not a blobfig artifact.
	ErrBadMagic = &Error{Kind: ErrKindMagic, Msg: "blob: invalid magic bytes", Offset: -1}
	// ErrVersion indicates an unsupported format version.
	ErrVersion = &Error{Kind: ErrKindVersion, Msg: "blob: unsupported version", Offset: -1}
	// ErrTruncated indicates the buffer ended inside a required field.
	ErrTruncated = &Error{Kind: ErrKindTruncated, Msg: "blob: truncated input", Offset: -1}
	// ErrBadTag indicates an unknown value tag byte.
	ErrBadTag = &Error{Kind: ErrKindTag, Msg: "blob: invalid value tag", Offset: -1}
	// ErrBadDType indicates an unknown dtype tag byte.
	ErrBadDType = &Error{Kind: ErrKindDType, Msg: "blob: invalid dtype tag", Offset: -1}
	// ErrInvalidUTF8 indicates a malformed string, key, or mimetype region.
	ErrInvalidUTF8 = &Error{Kind: ErrKindUTF8, Msg: "blob: invalid UTF-8", Offset: -1}
	// ErrReservedKey indicates an object key containing the path separator.
	ErrReservedKey = &Error{Kind: ErrKindKey, Msg: "blob: reserved character in key", Offset: -1}
	// ErrLimit indicates a value the field widths cannot represent.
	ErrLimit = &Error{Kind: ErrKindLimit, Msg: "blob: field width exceeded", Offset: -1}
	// ErrShortSource indicates a streaming file source that ran out before
	// its declared size, distinct from generic sink/source I/O failure.
	ErrShortSource = &Error{Kind: ErrKindStream, Msg: "blob: file source exhausted before declared size", Offset: -1}
	// ErrSourceConsumed indicates a reader-backed File encoded twice.
	ErrSourceConsumed = &Error{Kind: ErrKindState, Msg: "blob: file source already consumed", Offset: -1}
	// ErrNotFound indicates a missing path or key.
	ErrNotFound = &Error{Kind: ErrKindNotFound, Msg: "blob: not found", Offset: -1}
	// ErrTypeMismatch indicates a value of a different kind than requested.
	ErrTypeMismatch = &Error{Kind: ErrKindType, Msg: "blob: type mismatch", Offset: -1}
	// ErrShapeMismatch indicates payload length inconsistent with shape.
	ErrShapeMismatch = &Error{Kind: ErrKindShape, Msg: "blob: shape mismatch", Offset: -1}
	// ErrMisaligned indicates a payload unfit for zero-copy typed viewing.
	ErrMisaligned = &Error{Kind: ErrKindAlign, Msg: "blob: payload misaligned for element type", Offset: -1}
	// ErrNotContiguous indicates an external array without a single
	// unambiguous row-major layout.
	ErrNotContiguous = &Error{Kind: ErrKindContiguous, Msg: "blob: array not contiguous", Offset: -1}
)

func decodeErrf(kind ErrKind, off int, msg string, args ...any) *Error {
	return &Error{Kind: kind, Msg: "blob: " + fmt.Sprintf(msg, args...), Offset: int64(off)}
}

func errf(kind ErrKind, msg string, args ...any) *Error {
	return &Error{Kind: kind, Msg: "blob: " + fmt.Sprintf(msg, args...), Offset: -1}
}
