package local

import (
	"io"
	"log"
	"os"
	"strings"

	"github.com/spf13/afero"

	"github.com/hkmshb/jott/fs"
)

// File is a local file.
type File struct {
	object
}

// ensure File implements fs.File
var _ fs.File = (*File)(nil)

func (f *File) Exists() bool {
	fi, err := f.fsys.Stat(f.path.Path())
	return err == nil && !fi.IsDir()
}

func (f *File) ReadBinary() ([]byte, error) {
	data, err := afero.ReadFile(f.fsys, f.path.Path())
	if err != nil {
		return nil, wrapOSError(f.path.Path(), err)
	}
	return data, nil
}

func (f *File) Read() (string, error) {
	data, err := f.ReadBinary()
	if err != nil {
		return "", err
	}
	text := strings.TrimPrefix(string(data), "\ufeff")
	text = strings.ReplaceAll(text, "\x00", "")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n"), nil
}

func (f *File) Write(text string) error {
	return f.WriteBinary([]byte(text))
}

func (f *File) WriteBinary(data []byte) error {
	return f.write(func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

func (f *File) write(fill func(io.Writer) error) error {
	existed := f.Exists()
	if !existed {
		if parent, err := f.folderParent(); err == nil {
			if err := parent.Touch(); err != nil {
				return err
			}
		}
	}
	w, err := NewAtomicWriter(f.fsys, f.path.Path())
	if err != nil {
		return err
	}
	if err := fill(w); err != nil {
		w.Rollback()
		return err
	}
	if err := w.Commit(); err != nil {
		return err
	}
	if existed {
		f.emit(fs.Changed, f, nil)
	} else {
		f.emit(fs.Created, f, nil)
	}
	return nil
}

// Touch creates the file empty when missing. Unlike Write this is a plain
// create, so a touched file does not end up with mtime earlier than ctime.
func (f *File) Touch() error {
	if f.Exists() {
		return nil
	}
	if parent, err := f.folderParent(); err == nil {
		if err := parent.Touch(); err != nil {
			return err
		}
	}
	fh, err := f.fsys.OpenFile(f.path.Path(), os.O_WRONLY|os.O_CREATE, 0o644)
	if err != nil {
		return wrapOSError(f.path.Path(), err)
	}
	if err := fh.Close(); err != nil {
		return Fatal(err)
	}
	f.emit(fs.Created, f, nil)
	return nil
}

func (f *File) Remove() error {
	if f.Exists() {
		if err := f.fsys.Remove(f.path.Path()); err != nil {
			return wrapOSError(f.path.Path(), err)
		}
		f.emit(fs.Removed, f, nil)
	}
	f.cleanup()
	return nil
}

func (f *File) CopyTo(target fs.File) error {
	if f.path.Equal(target.FilePath()) {
		return Fatalf("cannot copy %s onto itself", f.path)
	}
	log.Printf("copy %s to %s\n", f.path, target.FilePath())
	if target.Exists() {
		return fs.AlreadyExistsError(target.FilePath().Path())
	}
	lt, ok := target.(*File)
	if ok && lt.fsys == f.fsys {
		if err := f.copyNative(lt); err != nil {
			return err
		}
	} else {
		data, err := f.ReadBinary()
		if err != nil {
			return err
		}
		if err := target.WriteBinary(data); err != nil {
			return err
		}
	}
	f.emit(fs.Created, target, nil)
	return nil
}

// copyNative copies within one backend, preserving the modification time.
func (f *File) copyNative(dst *File) error {
	if parent, err := dst.folderParent(); err == nil {
		if err := parent.Touch(); err != nil {
			return err
		}
	}
	src, err := f.fsys.Open(f.path.Path())
	if err != nil {
		return wrapOSError(f.path.Path(), err)
	}
	defer src.Close()
	out, err := f.fsys.OpenFile(dst.path.Path(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return wrapOSError(dst.path.Path(), err)
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return Fatal(err)
	}
	if err := out.Close(); err != nil {
		return Fatal(err)
	}
	if fi, err := f.fsys.Stat(f.path.Path()); err == nil {
		_ = f.fsys.Chtimes(dst.path.Path(), fi.ModTime(), fi.ModTime())
	}
	return nil
}

func (f *File) MoveTo(target fs.File) (fs.File, error) {
	if lt, ok := target.(*File); ok && lt.fsys == f.fsys {
		if err := f.moveNative(&lt.object); err != nil {
			return nil, err
		}
		moved := &File{object{fsys: f.fsys, path: lt.path, watcher: f.watcher}}
		f.emit(fs.Moved, f, moved)
		f.cleanup()
		return moved, nil
	}
	log.Printf("cross-backend move %s to %s\n", f.path, target.FilePath())
	if err := f.CopyTo(target); err != nil {
		return nil, err
	}
	if err := f.Remove(); err != nil {
		return nil, err
	}
	return target, nil
}
