package local

import (
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/hkmshb/jott/fs"
)

// recorder captures emitted events as "event path[ -> path]" strings.
type recorder struct {
	events []string
}

func (r *recorder) Emit(event fs.Event, obj, other fs.FSObject) {
	entry := string(event) + " " + obj.FilePath().Path()
	if other != nil {
		entry += " -> " + other.FilePath().Path()
	}
	r.events = append(r.events, entry)
}

func testNormalizer() fs.Normalizer {
	return fs.Normalizer{Syntax: fs.Posix, Home: "/home/alice", Username: "alice"}
}

func newTestFS(t *testing.T) (*FileSystem, *recorder) {
	rec := &recorder{}
	return NewFileSystem(afero.NewMemMapFs(), testNormalizer(), rec), rec
}

func TestFileConstructorRejectsFolder(t *testing.T) {
	l, _ := newTestFS(t)
	require.Nil(t, l.fsys.Mkdir("/a", 0o755))

	_, err := l.File("/a")
	require.True(t, errors.Is(err, fs.ErrInvalidPath))

	_, err = l.Folder("/a")
	require.Nil(t, err)
}

func TestFolderConstructorRejectsFile(t *testing.T) {
	l, _ := newTestFS(t)
	require.Nil(t, afero.WriteFile(l.fsys, "/a/f.txt", []byte("x"), 0o644))

	_, err := l.Folder("/a/f.txt")
	require.True(t, errors.Is(err, fs.ErrInvalidPath))

	_, err = l.File("/a/f.txt")
	require.Nil(t, err)
}

func TestFileOrFolderResolvesVariant(t *testing.T) {
	l, _ := newTestFS(t)
	require.Nil(t, afero.WriteFile(l.fsys, "/a/f.txt", []byte("x"), 0o644))

	obj, err := l.FileOrFolder("/a/f.txt")
	require.Nil(t, err)
	_, ok := obj.(*File)
	require.True(t, ok)

	obj, err = l.FileOrFolder("/a")
	require.Nil(t, err)
	_, ok = obj.(*Folder)
	require.True(t, ok)

	_, err = l.FileOrFolder("/missing")
	require.True(t, errors.Is(err, fs.ErrNotFound))
}

func TestNonLocalPathRejected(t *testing.T) {
	l, _ := newTestFS(t)
	_, err := l.File(`\\host\share\f.txt`)
	require.True(t, errors.Is(err, fs.ErrInvalidPath))
}

func TestTempFolder(t *testing.T) {
	l, _ := newTestFS(t)
	dir, err := l.TempFolder()
	require.Nil(t, err)
	require.True(t, dir.Exists())
	require.Equal(t, "jott-alice", dir.FilePath().Basename())
}
