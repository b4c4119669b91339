package local

import (
	"github.com/hkmshb/jott/fs"
)

// ReadWithETag reads the file content together with the fingerprint a later
// WriteWithETag validates against. The modification time is captured before
// the content is read.
func (f *File) ReadWithETag() ([]byte, *fs.ETag, error) {
	fi, err := f.stat()
	if err != nil {
		return nil, nil, err
	}
	data, err := f.ReadBinary()
	if err != nil {
		return nil, nil, err
	}
	return data, &fs.ETag{MTime: fi.ModTime(), Sum: fs.SumContent(data)}, nil
}

// WriteWithETag writes data only when the file is unchanged since the read
// that produced etag. A missing target is written unconditionally: the etag
// protects existing content, not creation races. On a modification time
// mismatch the on-disk content is rehashed first, so a touch without an
// edit does not refuse the write; a real content change fails with
// ErrConcurrentModification and leaves the file alone.
//
// The check is optimistic. Two writers may both pass it and race on the
// final rename, last rename wins; closing that window would take a lock
// held across check and rename, which this backend does not do.
func (f *File) WriteWithETag(data []byte, etag *fs.ETag) (*fs.ETag, error) {
	if f.Exists() {
		if etag == nil {
			return nil, Fatalf("write to existing %s requires the etag of a prior read", f.path)
		}
		fi, err := f.stat()
		if err != nil {
			return nil, err
		}
		if !fi.ModTime().Equal(etag.MTime) {
			current, err := f.ReadBinary()
			if err != nil {
				return nil, err
			}
			if fs.SumContent(current) != etag.Sum {
				return nil, fs.ConcurrentModificationError(f.path.Path())
			}
		}
	}
	if err := f.WriteBinary(data); err != nil {
		return nil, err
	}
	fi, err := f.stat()
	if err != nil {
		return nil, err
	}
	return &fs.ETag{MTime: fi.ModTime(), Sum: fs.SumContent(data)}, nil
}
