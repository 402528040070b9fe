package batch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	return path
}

func TestCollectNaturalOrderAndFilter(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"img10.jpg", "img2.png", "img1.JPG", "notes.txt", "sub/img3.png", ".hidden/img0.png"} {
		touch(t, filepath.Join(dir, n))
	}

	got, err := Collect([]string{dir}, false)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "img1.JPG"),
		filepath.Join(dir, "img2.png"),
		filepath.Join(dir, "img10.jpg"),
	}, got)

	got, err = Collect([]string{dir}, true)
	require.NoError(t, err)
	assert.Len(t, got, 4)
	assert.Contains(t, got, filepath.Join(dir, "sub", "img3.png"))
}

func TestCollectDeduplicatesAndKeepsExplicitFiles(t *testing.T) {
	dir := t.TempDir()
	a := touch(t, filepath.Join(dir, "a.png"))
	raw := touch(t, filepath.Join(dir, "scan.raw"))

	got, err := Collect([]string{a, dir, a, raw}, false)
	require.NoError(t, err)
	assert.Equal(t, []string{a, raw}, got)
}

func TestCollectErrors(t *testing.T) {
	_, err := Collect([]string{t.TempDir()}, true)
	assert.ErrorIs(t, err, ErrNoImages)

	_, err = Collect([]string{filepath.Join(t.TempDir(), "missing.png")}, false)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = New(nil)
	assert.ErrorIs(t, err, ErrNoImages)
}

func TestBatchNavigationClamps(t *testing.T) {
	b, err := New([]string{"a", "b", "c"})
	require.NoError(t, err)

	assert.False(t, b.Prev(), "prev at start must not move")
	assert.Equal(t, 0, b.Index())
	assert.True(t, b.Next())
	assert.True(t, b.Next())
	assert.True(t, b.AtEnd())
	assert.False(t, b.Next(), "next at end must not move")
	assert.Equal(t, "c", b.Current().Path)

	assert.True(t, b.Seek(-5))
	assert.Equal(t, 0, b.Index())
	assert.True(t, b.Seek(99))
	assert.Equal(t, 2, b.Index())
	assert.False(t, b.Seek(2))
}

func TestBatchStatusAndSummary(t *testing.T) {
	b, err := New([]string{"a", "b", "c", "d"})
	require.NoError(t, err)

	assert.Equal(t, 1, b.MarkCropped("a_1.png"))
	assert.Equal(t, 2, b.MarkCropped("a_2.png"))
	b.MarkRejected()
	assert.Equal(t, StatusCropped, b.Current().Status, "reject after a crop keeps the image cropped")

	b.Next()
	b.MarkRejected()
	assert.Equal(t, StatusRejected, b.Current().Status)

	s := b.Summary()
	assert.Equal(t, Summary{Total: 4, Pending: 2, Cropped: 1, Rejected: 1, Outputs: 2}, s)
	assert.Equal(t, "4 images: 1 cropped (2 files), 1 rejected, 2 pending", s.String())
}

func TestBatchNeighbors(t *testing.T) {
	b, err := New([]string{"a", "b", "c", "d", "e"})
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c"}, b.Neighbors(2))

	b.Seek(2)
	assert.Equal(t, []string{"d", "b", "e", "a"}, b.Neighbors(2))
	assert.Empty(t, b.Neighbors(0))
}
