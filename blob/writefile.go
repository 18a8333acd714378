package blob

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteFile encodes v and commits it to path atomically via a temp file in
// the same directory, fsync, and rename. This is the commit strategy for
// callers who need all-or-nothing artifacts; Write itself leaves partial
// bytes in the sink on failure.
func WriteFile(path string, v Value) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".blobfig-tmp-*")
	if err != nil {
		return fmt.Errorf("blob: create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	defer func() {
		if tmp != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if err := Write(tmp, v); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("blob: sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("blob: close temp file: %w", err)
	}
	tmp = nil

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("blob: rename temp file: %w", err)
	}
	return nil
}
