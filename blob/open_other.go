//go:build !linux && !darwin

package blob

import (
	"fmt"
	"os"
)

// Open reads the artifact at path into memory and decodes it. On platforms
// without the mmap loader the whole file is buffered; Views alias that
// buffer until Close.
func Open(path string) (*Blob, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("blob: empty artifact file: %s", path)
	}

	root, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return &Blob{data: data, root: root}, nil
}

// Close drops the buffer. All Views derived from this Blob are invalid
// afterwards.
func (b *Blob) Close() error {
	b.data = nil
	b.root = View{}
	return nil
}
