package local

import (
	"fmt"
	"iter"
	"log"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/hkmshb/jott/fs"
)

// Folder is a local folder.
type Folder struct {
	object
}

// ensure Folder implements fs.Folder
var _ fs.Folder = (*Folder)(nil)

func (d *Folder) Exists() bool {
	ok, _ := afero.DirExists(d.fsys, d.path.Path())
	return ok
}

func (d *Folder) Touch() error {
	return d.TouchMode(0o755)
}

// TouchMode creates the folder and any missing ancestors with mode.
func (d *Folder) TouchMode(mode os.FileMode) error {
	if d.Exists() {
		return nil
	}
	if parent, err := d.folderParent(); err == nil {
		if err := parent.TouchMode(mode); err != nil {
			return err
		}
	}
	if err := d.fsys.Mkdir(d.path.Path(), mode); err != nil {
		if os.IsExist(err) {
			return nil
		}
		return wrapOSError(d.path.Path(), err)
	}
	d.emit(fs.Created, d, nil)
	return nil
}

func (d *Folder) File(relpath string) (fs.File, error) {
	fp, err := d.path.Child(relpath)
	if err != nil {
		return nil, err
	}
	return d.fileAt(fp)
}

func (d *Folder) Folder(relpath string) (fs.Folder, error) {
	fp, err := d.path.Child(relpath)
	if err != nil {
		return nil, err
	}
	return d.folderAt(fp)
}

func (d *Folder) fileAt(fp *fs.FilePath) (*File, error) {
	if ok, _ := afero.DirExists(d.fsys, fp.Path()); ok {
		return nil, fs.InvalidPathError(fp.Path() + " is a folder")
	}
	return &File{object{fsys: d.fsys, path: fp, watcher: d.watcher}}, nil
}

func (d *Folder) folderAt(fp *fs.FilePath) (*Folder, error) {
	if fi, err := d.fsys.Stat(fp.Path()); err == nil && !fi.IsDir() {
		return nil, fs.InvalidPathError(fp.Path() + " is a file")
	}
	return &Folder{object{fsys: d.fsys, path: fp, watcher: d.watcher}}, nil
}

// Child resolves an existing entry to a File or Folder.
func (d *Folder) Child(name string) (fs.FSObject, error) {
	fp, err := d.path.Child(name)
	if err != nil {
		return nil, err
	}
	fi, err := d.fsys.Stat(fp.Path())
	if err != nil {
		return nil, wrapOSError(fp.Path(), err)
	}
	if fi.IsDir() {
		return d.folderAt(fp)
	}
	return d.fileAt(fp)
}

// listNames returns the visible entry names sorted lexicographically.
// Hidden entries and editor temp files are filtered: names starting with
// "." or "~", or ending with "~".
func (d *Folder) listNames() ([]string, error) {
	infos, err := afero.ReadDir(d.fsys, d.path.Path())
	if err != nil {
		return nil, fs.NotFoundError(d.path.Path())
	}
	names := make([]string, 0, len(infos))
	for _, fi := range infos {
		name := fi.Name()
		if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "~") ||
			strings.HasSuffix(name, "~") {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// allNames lists every entry, without the hidden filter. Copy and removal
// must see the whole tree.
func (d *Folder) allNames() ([]string, error) {
	infos, err := afero.ReadDir(d.fsys, d.path.Path())
	if err != nil {
		return nil, fs.NotFoundError(d.path.Path())
	}
	names := make([]string, 0, len(infos))
	for _, fi := range infos {
		names = append(names, fi.Name())
	}
	return names, nil
}

func (d *Folder) isDir(fp *fs.FilePath) bool {
	ok, _ := afero.DirExists(d.fsys, fp.Path())
	return ok
}

func (d *Folder) ListFiles() ([]fs.File, error) {
	names, err := d.listNames()
	if err != nil {
		return nil, err
	}
	files := make([]fs.File, 0, len(names))
	for _, name := range names {
		fp, err := d.path.Child(name)
		if err != nil {
			return nil, err
		}
		if !d.isDir(fp) {
			files = append(files, &File{object{fsys: d.fsys, path: fp, watcher: d.watcher}})
		}
	}
	return files, nil
}

func (d *Folder) ListFolders() ([]fs.Folder, error) {
	names, err := d.listNames()
	if err != nil {
		return nil, err
	}
	folders := make([]fs.Folder, 0, len(names))
	for _, name := range names {
		fp, err := d.path.Child(name)
		if err != nil {
			return nil, err
		}
		if d.isDir(fp) {
			folders = append(folders, &Folder{object{fsys: d.fsys, path: fp, watcher: d.watcher}})
		}
	}
	return folders, nil
}

// Iterate yields the visible entries in lexical order. The name snapshot is
// taken here so a missing folder fails on the call, and the returned
// sequence can be ranged more than once.
func (d *Folder) Iterate() (iter.Seq[fs.FSObject], error) {
	names, err := d.listNames()
	if err != nil {
		return nil, err
	}
	return func(yield func(fs.FSObject) bool) {
		for _, name := range names {
			fp, err := d.path.Child(name)
			if err != nil {
				continue
			}
			var obj fs.FSObject
			if d.isDir(fp) {
				obj = &Folder{object{fsys: d.fsys, path: fp, watcher: d.watcher}}
			} else {
				obj = &File{object{fsys: d.fsys, path: fp, watcher: d.watcher}}
			}
			if !yield(obj) {
				return
			}
		}
	}, nil
}

func (d *Folder) NewUniqueFile(name string) (fs.File, error) {
	fp, err := d.uniqueChild(name)
	if err != nil {
		return nil, err
	}
	return d.fileAt(fp)
}

func (d *Folder) NewUniqueFolder(name string) (fs.Folder, error) {
	fp, err := d.uniqueChild(name)
	if err != nil {
		return nil, err
	}
	return d.folderAt(fp)
}

// uniqueChild finds a child name not yet in use, inserting a numeric suffix
// before the extension: name, name001, name002, ...
func (d *Folder) uniqueChild(name string) (*fs.FilePath, error) {
	ext := path.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for i := 0; i < 1000; i++ {
		candidate := name
		if i > 0 {
			candidate = fmt.Sprintf("%s%03d%s", stem, i, ext)
		}
		fp, err := d.path.Child(candidate)
		if err != nil {
			return nil, err
		}
		if ok, _ := afero.Exists(d.fsys, fp.Path()); ok {
			continue
		}
		return fp, nil
	}
	return nil, fs.NameSpaceExhaustedError(name)
}

// Remove deletes the folder only when it is empty; a populated folder fails
// with ErrNotEmpty and is left untouched.
func (d *Folder) Remove() error {
	if d.Exists() {
		infos, err := afero.ReadDir(d.fsys, d.path.Path())
		if err != nil {
			return wrapOSError(d.path.Path(), err)
		}
		if len(infos) > 0 {
			return fs.NotEmptyError(d.path.Path())
		}
		if err := d.fsys.Remove(d.path.Path()); err != nil {
			return wrapOSError(d.path.Path(), err)
		}
		d.emit(fs.Removed, d, nil)
	}
	d.cleanup()
	return nil
}

func (d *Folder) CopyTo(target fs.Folder) error {
	if d.path.Equal(target.FilePath()) {
		return Fatalf("cannot copy %s onto itself", d.path)
	}
	log.Printf("copy folder %s to %s\n", d.path, target.FilePath())
	if target.Exists() {
		return fs.AlreadyExistsError(target.FilePath().Path())
	}
	if err := d.copyTree(target); err != nil {
		return err
	}
	d.emit(fs.Created, target, nil)
	return nil
}

func (d *Folder) copyTree(target fs.Folder) error {
	if err := target.Touch(); err != nil {
		return err
	}
	names, err := d.allNames()
	if err != nil {
		return err
	}
	for _, name := range names {
		fp, err := d.path.Child(name)
		if err != nil {
			return err
		}
		if d.isDir(fp) {
			sub := &Folder{object{fsys: d.fsys, path: fp, watcher: d.watcher}}
			tsub, err := target.Folder(name)
			if err != nil {
				return err
			}
			if err := sub.copyTree(tsub); err != nil {
				return err
			}
		} else {
			src := &File{object{fsys: d.fsys, path: fp, watcher: d.watcher}}
			data, err := src.ReadBinary()
			if err != nil {
				return err
			}
			dst, err := target.File(name)
			if err != nil {
				return err
			}
			if err := dst.WriteBinary(data); err != nil {
				return err
			}
		}
	}
	return nil
}

func (d *Folder) MoveTo(target fs.Folder) (fs.Folder, error) {
	if lt, ok := target.(*Folder); ok && lt.fsys == d.fsys {
		if err := d.moveNative(&lt.object); err != nil {
			return nil, err
		}
		moved := &Folder{object{fsys: d.fsys, path: lt.path, watcher: d.watcher}}
		d.emit(fs.Moved, d, moved)
		d.cleanup()
		return moved, nil
	}
	log.Printf("cross-backend move %s to %s\n", d.path, target.FilePath())
	if target.Exists() {
		return nil, fs.AlreadyExistsError(target.FilePath().Path())
	}
	if err := d.copyTree(target); err != nil {
		return nil, err
	}
	if err := d.removeTree(); err != nil {
		return nil, err
	}
	d.emit(fs.Removed, d, nil)
	d.cleanup()
	return target, nil
}

func (d *Folder) removeTree() error {
	names, err := d.allNames()
	if err != nil {
		return err
	}
	for _, name := range names {
		fp, err := d.path.Child(name)
		if err != nil {
			return err
		}
		if d.isDir(fp) {
			sub := &Folder{object{fsys: d.fsys, path: fp, watcher: d.watcher}}
			if err := sub.removeTree(); err != nil {
				return err
			}
		} else if err := d.fsys.Remove(fp.Path()); err != nil {
			return wrapOSError(fp.Path(), err)
		}
	}
	if err := d.fsys.Remove(d.path.Path()); err != nil {
		return wrapOSError(d.path.Path(), err)
	}
	return nil
}
