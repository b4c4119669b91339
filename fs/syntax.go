package fs

import (
	"runtime"
	"strings"
)

// Syntax renders normalized path segments into a platform path string.
// Platform differences live here instead of being scattered through the
// normalizer as GOOS checks.
type Syntax interface {
	// Join renders segments as an absolute path string. It fails with
	// ErrNotAbsolutePath when the segments are not anchored in a way the
	// platform understands.
	Join(segs PathSegments) (string, error)
	Separator() string
	CaseSensitive() bool
	// SupportsShares reports whether \\host\share paths name reachable
	// filesystem locations on this platform.
	SupportsShares() bool
}

var (
	Posix   Syntax = posixSyntax{}
	Windows Syntax = windowsSyntax{}

	// Native is the syntax of the platform the process runs on.
	Native = nativeSyntax()
)

func nativeSyntax() Syntax {
	if runtime.GOOS == "windows" {
		return Windows
	}
	return Posix
}

type posixSyntax struct{}

func (posixSyntax) Join(segs PathSegments) (string, error) {
	switch {
	case segs.Share:
		return `\\` + strings.Join(segs.Names, `\`), nil
	case segs.Rooted && !driveRe.MatchString(segs.Names[0]):
		return "/" + strings.Join(segs.Names, "/"), nil
	}
	return "", NotAbsolutePathError(strings.Join(segs.Names, "/"))
}

func (posixSyntax) Separator() string { return "/" }

func (posixSyntax) CaseSensitive() bool { return true }

func (posixSyntax) SupportsShares() bool { return false }

type windowsSyntax struct{}

func (windowsSyntax) Join(segs PathSegments) (string, error) {
	switch {
	case segs.Share:
		return `\\` + strings.Join(segs.Names, `\`), nil
	case driveRe.MatchString(segs.Names[0]):
		return strings.Join(segs.Names, `\`), nil
	}
	return "", NotAbsolutePathError(strings.Join(segs.Names, `\`))
}

func (windowsSyntax) Separator() string { return `\` }

func (windowsSyntax) CaseSensitive() bool { return false }

func (windowsSyntax) SupportsShares() bool { return true }
