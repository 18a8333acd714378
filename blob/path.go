package blob

import "strings"

// PathSeparator delimits object keys in a path. It is part of the format
// contract: the encoder rejects keys containing it, which is what makes
// every encodable artifact fully path-addressable.
const PathSeparator = "/"

// Get resolves a '/'-delimited path against v and returns the nested View.
// Every non-final step must land on an Object; the first entry whose key
// equals the segment wins, in encoded order. The empty path resolves to v
// itself. ok is false when a step is not an Object or no key matches.
func (v View) Get(path string) (View, bool) {
	if path == "" {
		return v, true
	}
	cur := v
	for seg := range strings.SplitSeq(path, PathSeparator) {
		if cur.kind != KindObject {
			return View{}, false
		}
		found := false
		for _, e := range cur.entries {
			if e.Key == seg {
				cur = e.Value
				found = true
				break
			}
		}
		if !found {
			return View{}, false
		}
	}
	return cur, true
}

// Lookup is Get with a typed ErrNotFound carrying the path.
func (v View) Lookup(path string) (View, error) {
	node, ok := v.Get(path)
	if !ok {
		return View{}, errf(ErrKindNotFound, "path not found: %s", path)
	}
	return node, nil
}

// BoolAt resolves path and extracts a Bool.
func (v View) BoolAt(path string) (bool, error) {
	node, err := v.Lookup(path)
	if err != nil {
		return false, err
	}
	b, ok := node.AsBool()
	if !ok {
		return false, typeMismatch(path, KindBool, node.kind)
	}
	return b, nil
}

// IntAt resolves path and extracts an Int.
func (v View) IntAt(path string) (int64, error) {
	node, err := v.Lookup(path)
	if err != nil {
		return 0, err
	}
	i, ok := node.AsInt()
	if !ok {
		return 0, typeMismatch(path, KindInt, node.kind)
	}
	return i, nil
}

// FloatAt resolves path and extracts a Float.
func (v View) FloatAt(path string) (float64, error) {
	node, err := v.Lookup(path)
	if err != nil {
		return 0, err
	}
	f, ok := node.AsFloat()
	if !ok {
		return 0, typeMismatch(path, KindFloat, node.kind)
	}
	return f, nil
}

// StringAt resolves path and extracts a String (aliasing the buffer).
func (v View) StringAt(path string) (string, error) {
	node, err := v.Lookup(path)
	if err != nil {
		return "", err
	}
	s, ok := node.AsString()
	if !ok {
		return "", typeMismatch(path, KindString, node.kind)
	}
	return s, nil
}

// ArrayAt resolves path and extracts an Array view.
func (v View) ArrayAt(path string) (*ArrayView, error) {
	node, err := v.Lookup(path)
	if err != nil {
		return nil, err
	}
	a, ok := node.AsArray()
	if !ok {
		return nil, typeMismatch(path, KindArray, node.kind)
	}
	return a, nil
}

// FileAt resolves path and extracts a File view.
func (v View) FileAt(path string) (*FileView, error) {
	node, err := v.Lookup(path)
	if err != nil {
		return nil, err
	}
	f, ok := node.AsFile()
	if !ok {
		return nil, typeMismatch(path, KindFile, node.kind)
	}
	return f, nil
}

// ListAt resolves path and extracts a List.
func (v View) ListAt(path string) ([]View, error) {
	node, err := v.Lookup(path)
	if err != nil {
		return nil, err
	}
	l, ok := node.AsList()
	if !ok {
		return nil, typeMismatch(path, KindList, node.kind)
	}
	return l, nil
}

func typeMismatch(path string, want, got Kind) *Error {
	return errf(ErrKindType, "type mismatch at %q: expected %s, got %s", path, want, got)
}
