package local

import (
	"errors"
	"io"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func TestAtomicWriterCommit(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.Nil(t, afero.WriteFile(fsys, "/f.txt", []byte("old"), 0o644))

	w, err := NewAtomicWriter(fsys, "/f.txt")
	require.Nil(t, err)
	_, err = w.Write([]byte("new"))
	require.Nil(t, err)

	// the target holds the old content until Commit
	data, err := afero.ReadFile(fsys, "/f.txt")
	require.Nil(t, err)
	require.Equal(t, "old", string(data))
	ok, _ := afero.Exists(fsys, "/f.txt"+TempSuffix)
	require.True(t, ok)

	require.Nil(t, w.Commit())
	data, err = afero.ReadFile(fsys, "/f.txt")
	require.Nil(t, err)
	require.Equal(t, "new", string(data))
	ok, _ = afero.Exists(fsys, "/f.txt"+TempSuffix)
	require.False(t, ok)
}

func TestAtomicWriterRollback(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.Nil(t, afero.WriteFile(fsys, "/f.txt", []byte("old"), 0o644))

	w, err := NewAtomicWriter(fsys, "/f.txt")
	require.Nil(t, err)
	_, err = w.Write([]byte("new"))
	require.Nil(t, err)
	require.Nil(t, w.Rollback())

	data, err := afero.ReadFile(fsys, "/f.txt")
	require.Nil(t, err)
	require.Equal(t, "old", string(data))
	ok, _ := afero.Exists(fsys, "/f.txt"+TempSuffix)
	require.False(t, ok)
}

func TestAtomicWriterRollbackAfterCommit(t *testing.T) {
	fsys := afero.NewMemMapFs()
	w, err := NewAtomicWriter(fsys, "/f.txt")
	require.Nil(t, err)
	_, err = w.Write([]byte("x"))
	require.Nil(t, err)
	require.Nil(t, w.Commit())

	// a deferred Rollback after a successful Commit must not undo it
	require.Nil(t, w.Rollback())
	ok, _ := afero.Exists(fsys, "/f.txt")
	require.True(t, ok)
}

func TestWriteRollsBackOnError(t *testing.T) {
	l, _ := newTestFS(t)
	f := mustFile(t, l, "/f.txt")
	require.Nil(t, f.Write("old"))

	boom := errors.New("boom")
	err := f.write(func(io.Writer) error { return boom })
	require.True(t, errors.Is(err, boom))

	text, err := f.Read()
	require.Nil(t, err)
	require.Equal(t, "old", text)
	ok, _ := afero.Exists(l.fsys, "/f.txt"+TempSuffix)
	require.False(t, ok)
}
