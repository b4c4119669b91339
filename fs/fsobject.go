// Package fs provides a normalized, platform-independent path
// representation and the file/folder capability set built on it. Concrete
// backends live in subpackages; local is the only one implemented.
package fs

import (
	"crypto/sha256"
	"iter"
	"time"
)

// ETag fingerprints one prior read of one file: the modification time seen
// at read plus a digest of the content read. A later write validates it to
// detect external modification. The check is advisory, not exclusive; a
// window remains between validation and the rename that commits the write.
type ETag struct {
	MTime time.Time
	Sum   [sha256.Size]byte
}

// SumContent computes the content fingerprint used in ETags.
func SumContent(data []byte) [sha256.Size]byte {
	return sha256.Sum256(data)
}

// FSObject is the capability set common to files and folders. Objects are
// cheap values identified by their FilePath; they hold no open handle
// between calls, and several instances may reference the same physical
// path.
type FSObject interface {
	FilePath() *FilePath
	Exists() bool
	Parent() (Folder, error)
	CTime() (time.Time, error)
	MTime() (time.Time, error)
	IsWritable() bool
	// IsEqual reports whether the two objects name one and the same
	// physical path, e.g. two case spellings on a case-insensitive
	// backend. It does not compare content.
	IsEqual(other FSObject) bool
	Touch() error
	Remove() error
}

// File is a leaf entry holding content.
type File interface {
	FSObject
	// Read returns text content with byte order marks and NUL bytes
	// stripped and line ends normalized to \n.
	Read() (string, error)
	ReadBinary() ([]byte, error)
	Write(text string) error
	WriteBinary(data []byte) error
	// ReadWithETag reads the content together with a fingerprint for a
	// later conditional write.
	ReadWithETag() ([]byte, *ETag, error)
	// WriteWithETag refuses the write with ErrConcurrentModification when
	// the file changed since the read that produced etag. A missing
	// target is written unconditionally. Returns the etag of the newly
	// written content.
	WriteWithETag(data []byte, etag *ETag) (*ETag, error)
	// CopyTo copies content to target, which may live on another backend.
	CopyTo(target File) error
	// MoveTo moves the file, using the backend rename primitive when
	// source and target share a backend and copy-then-delete otherwise.
	MoveTo(target File) (File, error)
}

// Folder is a container entry.
type Folder interface {
	FSObject
	// File returns a file object for a relative path below this folder.
	File(path string) (File, error)
	// Folder returns a folder object for a relative path below this folder.
	Folder(path string) (Folder, error)
	// Child resolves an existing entry to the matching variant.
	Child(name string) (FSObject, error)
	ListFiles() ([]File, error)
	ListFolders() ([]Folder, error)
	// Iterate yields the visible entries in lexical order. The sequence
	// is restartable; listing failures surface on the call itself.
	Iterate() (iter.Seq[FSObject], error)
	// NewUniqueFile returns a file under this folder guaranteed not to
	// exist yet, inserting a numeric suffix before the extension when the
	// candidate name is taken.
	NewUniqueFile(name string) (File, error)
	NewUniqueFolder(name string) (Folder, error)
	CopyTo(target Folder) error
	MoveTo(target Folder) (Folder, error)
}
