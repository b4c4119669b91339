// Package local implements the jott file and folder capabilities on a local
// filesystem. The backend is an afero.Fs, which is the host filesystem in
// production and an in-memory filesystem in tests.
package local

import (
	"os"

	"github.com/spf13/afero"

	"github.com/hkmshb/jott/fs"
)

// FileSystem constructs File and Folder objects that share one backend
// filesystem, one normalizer and one watcher.
type FileSystem struct {
	fsys    afero.Fs
	norm    fs.Normalizer
	watcher fs.Watcher
}

// New returns a FileSystem on the host filesystem with the default
// normalizer and no observer.
func New() *FileSystem {
	return NewFileSystem(afero.NewOsFs(), fs.DefaultNormalizer(), nil)
}

// NewFileSystem wires an explicit backend, normalizer and watcher. A nil
// watcher means no notifications.
func NewFileSystem(fsys afero.Fs, norm fs.Normalizer, watcher fs.Watcher) *FileSystem {
	if watcher == nil {
		watcher = fs.NopWatcher
	}
	return &FileSystem{fsys: fsys, norm: norm, watcher: watcher}
}

// File returns a file object for path. The path may not name an existing
// folder, and must be local unless the platform supports shares.
func (l *FileSystem) File(path string) (*File, error) {
	fp, err := l.norm.FilePath(path)
	if err != nil {
		return nil, err
	}
	return l.fileAt(fp)
}

// Folder returns a folder object for path, under the same constraints as
// File.
func (l *FileSystem) Folder(path string) (*Folder, error) {
	fp, err := l.norm.FilePath(path)
	if err != nil {
		return nil, err
	}
	return l.folderAt(fp)
}

// FileOrFolder resolves an existing path to the matching variant.
func (l *FileSystem) FileOrFolder(path string) (fs.FSObject, error) {
	fp, err := l.norm.FilePath(path)
	if err != nil {
		return nil, err
	}
	fi, err := l.fsys.Stat(fp.Path())
	if err != nil {
		return nil, wrapOSError(fp.Path(), err)
	}
	if fi.IsDir() {
		return l.folderAt(fp)
	}
	return l.fileAt(fp)
}

func (l *FileSystem) fileAt(fp *fs.FilePath) (*File, error) {
	if err := l.check(fp); err != nil {
		return nil, err
	}
	if ok, _ := afero.DirExists(l.fsys, fp.Path()); ok {
		return nil, fs.InvalidPathError(fp.Path() + " is a folder")
	}
	return &File{object{fsys: l.fsys, path: fp, watcher: l.watcher}}, nil
}

func (l *FileSystem) folderAt(fp *fs.FilePath) (*Folder, error) {
	if err := l.check(fp); err != nil {
		return nil, err
	}
	if fi, err := l.fsys.Stat(fp.Path()); err == nil && !fi.IsDir() {
		return nil, fs.InvalidPathError(fp.Path() + " is a file")
	}
	return &Folder{object{fsys: l.fsys, path: fp, watcher: l.watcher}}, nil
}

func (l *FileSystem) check(fp *fs.FilePath) error {
	if !fp.IsLocal() && !fp.Syntax().SupportsShares() {
		return fs.InvalidPathError(fp.Path() + ": file system does not support non-local paths")
	}
	return nil
}

// TempFolder returns a per-user folder below the system temp directory,
// created 0700 when missing.
func (l *FileSystem) TempFolder() (*Folder, error) {
	name := l.norm.Username
	if name == "" {
		name = os.Getenv("USER")
	}
	if name == "" {
		name = "anonymous"
	}
	root, err := l.norm.FilePath(os.TempDir())
	if err != nil {
		return nil, err
	}
	fp, err := root.Child("jott-" + name)
	if err != nil {
		return nil, err
	}
	dir := &Folder{object{fsys: l.fsys, path: fp, watcher: l.watcher}}
	if err := dir.TouchMode(0o700); err != nil {
		return nil, err
	}
	if _, err := afero.ReadDir(l.fsys, fp.Path()); err != nil {
		return nil, Fatalf("temp folder %s is not accessible", fp)
	}
	return dir, nil
}

// FileOrFolder resolves an existing path on the host filesystem, the
// shorthand for callers that do not carry a FileSystem around.
func FileOrFolder(path string) (fs.FSObject, error) {
	l := New()
	fp, err := l.norm.FilePath(path)
	if err != nil {
		return nil, err
	}
	if IsFile(fp.Path()) {
		return l.fileAt(fp)
	}
	if ok, _ := afero.DirExists(l.fsys, fp.Path()); ok {
		return l.folderAt(fp)
	}
	return nil, fs.NotFoundError(fp.Path())
}
