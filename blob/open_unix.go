//go:build linux || darwin

package blob

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Open memory-maps the artifact at path read-only and decodes it. Views
// obtained from the returned Blob alias the mapping directly, so even
// multi-gigabyte file payloads cost no heap memory to access. The mapping
// stays valid until Close.
func Open(path string) (*Blob, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	sz := st.Size()
	if sz == 0 {
		_ = f.Close()
		return nil, fmt.Errorf("blob: empty artifact file: %s", path)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(sz), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("blob: mmap failed: %w", err)
	}

	root, err := Decode(data)
	if err != nil {
		_ = unix.Munmap(data)
		_ = f.Close()
		return nil, err
	}

	return &Blob{f: f, data: data, mapped: true, root: root}, nil
}

// Close releases the mapping and file. All Views derived from this Blob
// are invalid afterwards.
func (b *Blob) Close() error {
	var err error
	if b.mapped && b.data != nil {
		err = unix.Munmap(b.data)
	}
	b.data = nil
	b.root = View{}
	if b.f != nil {
		if cerr := b.f.Close(); err == nil {
			err = cerr
		}
		b.f = nil
	}
	return err
}
