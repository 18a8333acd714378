package blob

// Blob binds a decoded artifact's buffer and its root View into one owning
// value, so the two cannot be separated or outlive each other by accident.
// It is the loading-layer wrapper around Decode; it contains no codec
// logic of its own.
type Blob struct {
	f      closer // backing file when mmapped, nil otherwise
	data   []byte
	mapped bool
	root   View
}

type closer interface{ Close() error }

// FromBytes decodes data and returns a Blob wrapping it. data must stay
// alive and unmodified until Close; the Blob does not copy it.
func FromBytes(data []byte) (*Blob, error) {
	root, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return &Blob{data: data, root: root}, nil
}

// Root returns the decoded root View. It borrows from the Blob's buffer
// and is invalid after Close.
func (b *Blob) Root() View { return b.root }

// Bytes returns the underlying artifact bytes. Read-only.
func (b *Blob) Bytes() []byte { return b.data }

// Size returns the artifact length in bytes.
func (b *Blob) Size() int64 { return int64(len(b.data)) }
