package fs

import (
	"errors"
	"slices"
	"strings"
)

// FilePath is the canonical, immutable representation of an absolute
// filesystem location. Two FilePaths are equal iff their canonical string
// forms are equal. Derived paths are new values; nothing is shared mutably.
type FilePath struct {
	segs PathSegments
	path string
	norm Normalizer
}

// New builds a FilePath with the default normalizer.
func New(path string) (*FilePath, error) {
	return DefaultNormalizer().FilePath(path)
}

// FilePath normalizes path and renders its canonical string form. Relative
// input fails with ErrNotAbsolutePath.
func (n Normalizer) FilePath(path string) (*FilePath, error) {
	segs, err := n.Normalize(path)
	if err != nil {
		return nil, err
	}
	return n.fromSegments(segs)
}

func (n Normalizer) fromSegments(segs PathSegments) (*FilePath, error) {
	path, err := n.syntax().Join(segs)
	if err != nil {
		return nil, err
	}
	return &FilePath{segs: segs, path: path, norm: n}, nil
}

// Path returns the canonical string form.
func (p *FilePath) Path() string { return p.path }

func (p *FilePath) String() string { return p.path }

func (p *FilePath) Segments() PathSegments {
	return PathSegments{
		Names:  slices.Clone(p.segs.Names),
		Share:  p.segs.Share,
		Rooted: p.segs.Rooted,
	}
}

func (p *FilePath) Syntax() Syntax { return p.norm.syntax() }

// IsLocal reports whether the path is anchored at a local root rather than
// a UNC/host share.
func (p *FilePath) IsLocal() bool { return !p.segs.Share }

func (p *FilePath) Equal(other *FilePath) bool {
	return other != nil && p.path == other.path
}

func (p *FilePath) Basename() string {
	return p.segs.Names[len(p.segs.Names)-1]
}

// Dirname returns the canonical form of the parent path, or "" when the
// path has a single segment.
func (p *FilePath) Dirname() string {
	parent := p.Parent()
	if parent == nil {
		return ""
	}
	return parent.path
}

// Parent returns the containing path, or nil when the path has a single
// segment.
func (p *FilePath) Parent() *FilePath {
	if len(p.segs.Names) < 2 {
		return nil
	}
	segs := PathSegments{
		Names:  slices.Clone(p.segs.Names[:len(p.segs.Names)-1]),
		Share:  p.segs.Share,
		Rooted: p.segs.Rooted,
	}
	parent, err := p.norm.fromSegments(segs)
	if err != nil {
		return nil
	}
	return parent
}

// Join resolves path against this one. Absolute input replaces the whole
// path; relative input (upward or downward) is appended after
// re-normalization. Use Child to restrict to downward paths.
func (p *FilePath) Join(path string) (*FilePath, error) {
	abs, err := p.norm.FilePath(path)
	if err == nil {
		return abs, nil
	}
	if !errors.Is(err, ErrNotAbsolutePath) {
		return nil, err
	}
	names := append(slices.Clone(p.segs.Names), splitNames(path)...)
	segs, err := resolveNames(names, p.segs.Rooted, p.segs.Share)
	if err != nil {
		return nil, err
	}
	return p.norm.fromSegments(segs)
}

// Child resolves a relative path strictly below this one; input reaching
// upward fails with ErrNotAChild.
func (p *FilePath) Child(path string) (*FilePath, error) {
	sub, err := resolveNames(splitNames(path), false, false)
	if err != nil || sub.Share || sub.Names[0] == ".." {
		return nil, NotAChildError(path)
	}
	names := append(slices.Clone(p.segs.Names), sub.Names...)
	segs, err := resolveNames(names, p.segs.Rooted, p.segs.Share)
	if err != nil {
		return nil, err
	}
	if len(segs.Names) <= len(p.segs.Names) {
		return nil, NotAChildError(path)
	}
	return p.norm.fromSegments(segs)
}

// IsChildOf reports a strict descendant relationship; a path is never a
// child of itself.
func (p *FilePath) IsChildOf(parent *FilePath) bool {
	pn := parent.segs.Names
	if len(pn) >= len(p.segs.Names) {
		return false
	}
	if parent.segs.Share != p.segs.Share || parent.segs.Rooted != p.segs.Rooted {
		return false
	}
	return slices.Equal(p.segs.Names[:len(pn)], pn)
}

// RelativeTo returns the path of p relative to start. When p is not a
// descendant of start and allowUpward is false it fails with ErrNotAParent;
// with allowUpward it climbs to the nearest common ancestor, or fails with
// ErrNoCommonAncestor when the two paths have different roots.
func (p *FilePath) RelativeTo(start *FilePath, allowUpward bool) (string, error) {
	sep := p.norm.syntax().Separator()
	if allowUpward && !p.IsChildOf(start) {
		ancestor := p.CommonAncestor(start)
		if ancestor == nil {
			return "", NoCommonAncestorError(p.path, start.path)
		}
		rel, err := p.RelativeTo(ancestor, false)
		if err != nil {
			return "", err
		}
		up := len(start.segs.Names) - len(ancestor.segs.Names)
		return strings.Repeat(".."+sep, up) + rel, nil
	}
	sn := start.segs.Names
	if len(sn) > len(p.segs.Names) ||
		start.segs.Share != p.segs.Share ||
		start.segs.Rooted != p.segs.Rooted ||
		!slices.Equal(p.segs.Names[:len(sn)], sn) {
		return "", NotAParentError(start.path)
	}
	return strings.Join(p.segs.Names[len(sn):], sep), nil
}

// CommonAncestor returns the longest shared prefix of the two paths, or nil
// when they live under different roots, drives or shares.
func (p *FilePath) CommonAncestor(other *FilePath) *FilePath {
	if p.segs.Share != other.segs.Share ||
		p.segs.Rooted != other.segs.Rooted ||
		p.segs.Names[0] != other.segs.Names[0] {
		return nil
	}
	if p.IsChildOf(other) {
		return other
	}
	if other.IsChildOf(p) {
		return p
	}
	if p.Equal(other) {
		return p
	}
	limit := min(len(p.segs.Names), len(other.segs.Names))
	i := 1
	for i < limit && p.segs.Names[i] == other.segs.Names[i] {
		i++
	}
	segs := PathSegments{
		Names:  slices.Clone(p.segs.Names[:i]),
		Share:  p.segs.Share,
		Rooted: p.segs.Rooted,
	}
	ancestor, err := p.norm.fromSegments(segs)
	if err != nil {
		return nil
	}
	return ancestor
}

// UserPath contracts paths below the configured home directory to the
// ~-relative spelling; other paths come back unchanged.
func (p *FilePath) UserPath() string {
	if p.norm.Home == "" {
		return p.path
	}
	home, err := p.norm.FilePath(p.norm.Home)
	if err != nil || !p.IsChildOf(home) {
		return p.path
	}
	rel, err := p.RelativeTo(home, false)
	if err != nil {
		return p.path
	}
	return "~" + p.norm.syntax().Separator() + rel
}

// URI renders the path as a file:// URI.
func (p *FilePath) URI() string {
	if p.segs.Share {
		return "file://" + strings.Join(p.segs.Names, "/")
	}
	return "file:///" + strings.Join(p.segs.Names, "/")
}
