package blob

import (
	"errors"
	"strconv"
)

// SkipSubtree may be returned from a Walk callback to prune descent below
// the current node without stopping the walk.
var SkipSubtree = errors.New("blob: skip subtree")

// Walk visits v and every descendant depth-first in encoded order, calling
// fn with each node's '/'-joined path. The root is visited with the empty
// path. List elements get their decimal index as a path segment; those
// segments are informational and not resolvable with Get, which walks
// Objects only. Any other error from fn aborts the walk and is returned.
func Walk(v View, fn func(path string, v View) error) error {
	return walk("", v, fn)
}

func walk(path string, v View, fn func(path string, v View) error) error {
	if err := fn(path, v); err != nil {
		if errors.Is(err, SkipSubtree) {
			return nil
		}
		return err
	}
	switch v.kind {
	case KindObject:
		for _, e := range v.entries {
			if err := walk(joinPath(path, e.Key), e.Value, fn); err != nil {
				return err
			}
		}
	case KindList:
		for i, it := range v.items {
			if err := walk(joinPath(path, strconv.Itoa(i)), it, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

func joinPath(base, seg string) string {
	if base == "" {
		return seg
	}
	return base + PathSeparator + seg
}
