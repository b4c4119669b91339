package fs

import (
	"errors"
	"fmt"
)

// Sentinel errors for the expected, recoverable filesystem conditions.
// Callers match them with errors.Is; anything outside this taxonomy is an
// unexpected I/O failure and propagates as a generic error.
var (
	ErrInvalidPath            = errors.New("invalid path")
	ErrNotAbsolutePath        = errors.New("not an absolute path")
	ErrEmptyPath              = errors.New("path reduces to empty")
	ErrNotAChild              = errors.New("not a child path")
	ErrNotAParent             = errors.New("not a parent path")
	ErrNoCommonAncestor       = errors.New("no common ancestor")
	ErrNotFound               = errors.New("no such file or folder")
	ErrAlreadyExists          = errors.New("already exists")
	ErrNotEmpty               = errors.New("folder not empty")
	ErrNotWritable            = errors.New("not writable")
	ErrNameSpaceExhausted     = errors.New("name space exhausted")
	ErrConcurrentModification = errors.New("file changed on disk")
)

func InvalidPathError(path string) error {
	return fmt.Errorf("%w: %s", ErrInvalidPath, path)
}

func NotAbsolutePathError(path string) error {
	return fmt.Errorf("%w: %s", ErrNotAbsolutePath, path)
}

func EmptyPathError(path string) error {
	return fmt.Errorf("%w: %s", ErrEmptyPath, path)
}

func NotAChildError(path string) error {
	return fmt.Errorf("%w: %s", ErrNotAChild, path)
}

func NotAParentError(path string) error {
	return fmt.Errorf("%w: %s", ErrNotAParent, path)
}

func NoCommonAncestorError(path, other string) error {
	return fmt.Errorf("%w between %s and %s", ErrNoCommonAncestor, path, other)
}

func NotFoundError(path string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, path)
}

func AlreadyExistsError(path string) error {
	return fmt.Errorf("%w: %s", ErrAlreadyExists, path)
}

func NotEmptyError(path string) error {
	return fmt.Errorf("%w: %s", ErrNotEmpty, path)
}

func NotWritableError(path string) error {
	return fmt.Errorf("%w: %s", ErrNotWritable, path)
}

func NameSpaceExhaustedError(name string) error {
	return fmt.Errorf("%w: %s", ErrNameSpaceExhausted, name)
}

func ConcurrentModificationError(path string) error {
	return fmt.Errorf("%w: %s", ErrConcurrentModification, path)
}
