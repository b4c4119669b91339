package fs

import (
	"os"
	"os/user"
	"regexp"
	"slices"
	"strings"
	"sync"
)

var (
	uriRe   = regexp.MustCompile(`^\w{2,}:/`)
	shareRe = regexp.MustCompile(`^\\\\\w`)
	hostRe  = regexp.MustCompile(`^/\w`)
	driveRe = regexp.MustCompile(`^[a-zA-Z]:$`)
	sepRe   = regexp.MustCompile(`[/\\]+`)
)

// PathSegments is the canonical form every accepted path spelling reduces
// to: an ordered, non-empty list of names plus the anchoring flags. Share
// marks UNC/host-rooted paths, Rooted marks paths anchored at a drive or
// filesystem root.
type PathSegments struct {
	Names  []string
	Share  bool
	Rooted bool
}

func (s PathSegments) Equal(other PathSegments) bool {
	return s.Share == other.Share &&
		s.Rooted == other.Rooted &&
		slices.Equal(s.Names, other.Names)
}

// Normalizer turns path spellings into PathSegments. Home and Username feed
// tilde expansion so the normalizer never reads the process environment,
// except the documented $HOME fallback when Home is unset. A zero Syntax
// means Native.
type Normalizer struct {
	Syntax   Syntax
	Home     string
	Username string
}

var defaultNormalizer = sync.OnceValue(func() Normalizer {
	home, _ := os.UserHomeDir()
	name := os.Getenv("USER")
	if name == "" {
		if u, err := user.Current(); err == nil {
			name = u.Username
		}
	}
	return Normalizer{Syntax: Native, Home: home, Username: name}
})

// DefaultNormalizer uses the native syntax and the current user's home.
func DefaultNormalizer() Normalizer {
	return defaultNormalizer()
}

func (n Normalizer) syntax() Syntax {
	if n.Syntax == nil {
		return Native
	}
	return n.Syntax
}

// Normalize parses a local-syntax string, a file:// or smb:// URI, or a
// home-relative path into PathSegments. It is pure and never touches the
// filesystem; normalizing an already-canonical string returns the same
// segments.
func (n Normalizer) Normalize(path string) (PathSegments, error) {
	var names []string
	var share, rooted bool
	switch {
	case uriRe.MatchString(path):
		var err error
		names, share, err = splitFileURL(path)
		if err != nil {
			return PathSegments{}, err
		}
		rooted = true
	case strings.HasPrefix(path, "~"):
		path = n.expandHome(path)
		rooted = true
		names = splitNames(path)
	default:
		rooted = strings.HasPrefix(path, "/")
		share = shareRe.MatchString(path)
		names = splitNames(path)
	}
	return resolveNames(names, rooted, share)
}

// NormalizeNames resolves a pre-split name list the way Normalize resolves
// a string spelling: "." and ".." entries are folded by the same rules. The
// list is taken as anchored at a root; a list that folds away to nothing
// fails with ErrEmptyPath.
func NormalizeNames(names []string) (PathSegments, error) {
	return resolveNames(names, true, false)
}

// resolveNames walks the raw name list resolving "." and "..". A bare "."
// is dropped unless it is the only content so far; ".." pops the previous
// name unless that name is itself ".." or nothing is left, in which case
// the ".." is kept and the path loses its anchor.
func resolveNames(parts []string, rooted, share bool) (PathSegments, error) {
	names := make([]string, 0, len(parts))
	for _, name := range parts {
		switch {
		case name == "":
		case name == "." && len(names) > 0:
		case name == "..":
			if k := len(names); k > 0 && names[k-1] != ".." {
				names = names[:k-1]
			} else {
				names = append(names, name)
				rooted = false
			}
		default:
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return PathSegments{}, EmptyPathError(strings.Join(parts, "/"))
	}
	// shares and drive letters are anchors in their own right; folding
	// them into Rooted keeps all spellings of one location identical
	if share || driveRe.MatchString(names[0]) {
		rooted = true
	}
	return PathSegments{Names: names, Share: share, Rooted: rooted}, nil
}

func splitNames(path string) []string {
	path = strings.Trim(path, `/\`)
	if path == "" {
		return nil
	}
	return sepRe.Split(path, -1)
}

func splitFileURL(uri string) ([]string, bool, error) {
	s := strings.ReplaceAll(uri, `\`, "/")
	i := strings.Index(s, ":/")
	scheme, rest := s[:i], s[i+2:]
	if scheme != "file" && scheme != "smb" {
		return nil, false, InvalidPathError(uri)
	}
	var share bool
	switch {
	case strings.HasPrefix(rest, "/localhost/"):
		rest = rest[len("/localhost/"):]
	case scheme == "smb":
		share = true
	default:
		// file://host/... names a share; file:///... is local
		share = hostRe.MatchString(rest)
	}
	return splitNames(rest), share, nil
}

// expandHome resolves a leading ~ or ~user against the configured home
// directory, falling back to $HOME. It never fails; when no home can be
// determined the path is returned untouched.
func (n Normalizer) expandHome(path string) string {
	parts := splitNames(path)
	if len(parts) == 0 {
		parts = []string{"~"}
	}
	home := n.Home
	if home == "" {
		home = os.Getenv("HOME")
	}
	head := parts[0]
	var expanded string
	switch {
	case head == "~":
		expanded = home
	case n.Username != "" && head == "~"+n.Username:
		expanded = home
	default:
		if home != "" {
			// sibling of our own home, e.g. /home/<user>
			expanded = dirOf(home) + "/" + head[1:]
		}
	}
	if expanded == "" {
		return path
	}
	return expanded + "/" + strings.Join(parts[1:], "/")
}

func dirOf(path string) string {
	path = strings.TrimRight(path, `/\`)
	i := strings.LastIndexAny(path, `/\`)
	if i <= 0 {
		return path
	}
	return path[:i]
}
