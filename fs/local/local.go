package local

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/hkmshb/jott/fs"
)

// object is the state shared by File and Folder: the backing filesystem,
// the path, and the watcher to notify after mutations. Objects hold no open
// handle between calls.
type object struct {
	fsys    afero.Fs
	path    *fs.FilePath
	watcher fs.Watcher
}

func (o *object) FilePath() *fs.FilePath { return o.path }

func (o *object) stat() (os.FileInfo, error) {
	fi, err := o.fsys.Stat(o.path.Path())
	if err != nil {
		return nil, wrapOSError(o.path.Path(), err)
	}
	return fi, nil
}

// wrapOSError maps expected OS conditions onto the error taxonomy and wraps
// everything else as a generic failure.
func wrapOSError(path string, err error) error {
	switch {
	case os.IsNotExist(err):
		return fs.NotFoundError(path)
	case os.IsPermission(err):
		return fs.NotWritableError(path)
	}
	return Fatal(err)
}

func (o *object) MTime() (time.Time, error) {
	fi, err := o.stat()
	if err != nil {
		return time.Time{}, err
	}
	return fi.ModTime(), nil
}

func (o *object) CTime() (time.Time, error) {
	fi, err := o.stat()
	if err != nil {
		return time.Time{}, err
	}
	return changeTime(fi), nil
}

func (o *object) IsWritable() bool {
	if fi, err := o.fsys.Stat(o.path.Path()); err == nil {
		return fi.Mode().Perm()&0o200 != 0
	}
	// missing: writability is decided by the nearest existing ancestor
	for parent := o.path.Parent(); parent != nil; parent = parent.Parent() {
		if fi, err := o.fsys.Stat(parent.Path()); err == nil {
			return fi.Mode().Perm()&0o200 != 0
		}
	}
	return false
}

func (o *object) IsEqual(other fs.FSObject) bool {
	if o.path.Equal(other.FilePath()) {
		return true
	}
	fi, err := o.fsys.Stat(o.path.Path())
	if err != nil {
		return false
	}
	ofi, err := o.fsys.Stat(other.FilePath().Path())
	if err != nil {
		return false
	}
	if os.SameFile(fi, ofi) {
		return true
	}
	if !o.path.Syntax().CaseSensitive() {
		return strings.EqualFold(o.path.Path(), other.FilePath().Path())
	}
	return false
}

func (o *object) Parent() (fs.Folder, error) {
	return o.folderParent()
}

func (o *object) folderParent() (*Folder, error) {
	parent := o.path.Parent()
	if parent == nil {
		return nil, Fatalf("cannot get parent of %s", o.path)
	}
	return &Folder{object{fsys: o.fsys, path: parent, watcher: o.watcher}}, nil
}

func (o *object) emit(event fs.Event, obj, other fs.FSObject) {
	o.watcher.Emit(event, obj, other)
}

// cleanup prunes the parent folder if it just became empty. Failures
// (non-empty, missing, root) end the pruning.
func (o *object) cleanup() {
	parent, err := o.folderParent()
	if err != nil {
		return
	}
	_ = parent.Remove()
}

// moveNative renames within one backend. Case-only renames on a
// case-insensitive syntax go through an intermediate name because the
// destination spelling already resolves to the source.
func (o *object) moveNative(dst *object) error {
	src, target := o.path.Path(), dst.path.Path()
	log.Printf("rename %s to %s\n", src, target)
	if !o.path.Syntax().CaseSensitive() && src != target && strings.EqualFold(src, target) {
		tmp := src + "." + uuid.NewString() + ".tmp"
		if err := o.fsys.Rename(src, tmp); err != nil {
			return wrapOSError(src, err)
		}
		if err := o.fsys.Rename(tmp, target); err != nil {
			return wrapOSError(target, err)
		}
		return nil
	}
	if ok, _ := afero.Exists(o.fsys, target); ok {
		return fs.AlreadyExistsError(target)
	}
	if parent, err := dst.folderParent(); err == nil {
		if err := parent.Touch(); err != nil {
			return err
		}
	}
	if err := o.fsys.Rename(src, target); err != nil {
		return wrapOSError(src, err)
	}
	return nil
}
