package blob

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Walk(t *testing.T) {
	v := testTree(t)

	var paths []string
	err := Walk(v, func(path string, _ View) error {
		paths = append(paths, path)
		return nil
	})
	require.NoError(t, err)

	require.Equal(t, "", paths[0], "root visits first with the empty path")
	require.Contains(t, paths, "config/enabled")
	require.Contains(t, paths, "config/threshold")
	require.Contains(t, paths, "items/0")
	require.Contains(t, paths, "items/1")
	require.Contains(t, paths, "readme")
}

func Test_WalkSkipSubtree(t *testing.T) {
	v := testTree(t)

	var paths []string
	err := Walk(v, func(path string, _ View) error {
		paths = append(paths, path)
		if path == "config" {
			return SkipSubtree
		}
		return nil
	})
	require.NoError(t, err)
	require.Contains(t, paths, "config")
	require.NotContains(t, paths, "config/enabled")
	require.Contains(t, paths, "count")
}

func Test_WalkAborts(t *testing.T) {
	v := testTree(t)
	boom := errors.New("boom")

	calls := 0
	err := Walk(v, func(path string, _ View) error {
		calls++
		if path == "config/enabled" {
			return boom
		}
		return nil
	})
	require.ErrorIs(t, err, boom)
	require.Greater(t, calls, 1)
}
