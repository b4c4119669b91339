package local

import (
	"os"

	"github.com/spf13/afero"
)

// TempSuffix is appended to a target path to form the temporary path an
// atomic write stages into. An orphaned temp file left by a crash is not
// cleaned up here; that is an external maintenance concern.
const TempSuffix = ".new-tmp"

// AtomicWriter stages a write to a sibling temporary file and renames it
// over the target on Commit, so the target is only ever seen in its prior
// or its fully written state. Exposed as a separate type to make the write
// path testable; File.Write and File.WriteBinary are the usual entry
// points.
type AtomicWriter struct {
	fsys afero.Fs
	path string
	tmp  string
	fh   afero.File
	done bool
}

func NewAtomicWriter(fsys afero.Fs, path string) (*AtomicWriter, error) {
	tmp := path + TempSuffix
	fh, err := fsys.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, wrapOSError(tmp, err)
	}
	return &AtomicWriter{fsys: fsys, path: path, tmp: tmp, fh: fh}, nil
}

func (w *AtomicWriter) Write(p []byte) (int, error) {
	return w.fh.Write(p)
}

// Commit forces the staged data to storage and renames it over the target.
// The rename is the only mutation of the visible path. Any failure discards
// the temporary file and leaves the target untouched.
func (w *AtomicWriter) Commit() error {
	if w.done {
		return nil
	}
	w.done = true
	if err := w.fh.Sync(); err != nil {
		w.fh.Close()
		w.fsys.Remove(w.tmp)
		return Fatal(err)
	}
	if err := w.fh.Close(); err != nil {
		w.fsys.Remove(w.tmp)
		return Fatal(err)
	}
	if err := w.fsys.Rename(w.tmp, w.path); err != nil {
		w.fsys.Remove(w.tmp)
		return wrapOSError(w.path, err)
	}
	return nil
}

// Rollback discards the staged write. Safe to defer alongside Commit; it
// does nothing once the write is committed.
func (w *AtomicWriter) Rollback() error {
	if w.done {
		return nil
	}
	w.done = true
	w.fh.Close()
	if err := w.fsys.Remove(w.tmp); err != nil && !os.IsNotExist(err) {
		return Fatal(err)
	}
	return nil
}
