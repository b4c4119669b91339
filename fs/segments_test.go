package fs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func testNormalizer() Normalizer {
	return Normalizer{Syntax: Posix, Home: "/home/alice", Username: "alice"}
}

func TestNormalizeFormEquivalence(t *testing.T) {
	n := testNormalizer()

	local := PathSegments{Names: []string{"aa", "bb"}, Rooted: true}
	for _, spelling := range []string{
		"/aa/bb",
		"/aa//bb/",
		"/aa/./bb",
		"/aa/xx/../bb",
		"file:///aa/bb",
		"file://localhost/aa/bb",
	} {
		segs, err := n.Normalize(spelling)
		require.Nil(t, err, spelling)
		require.True(t, segs.Equal(local), spelling)
	}

	share := PathSegments{Names: []string{"host", "share", "aa"}, Share: true, Rooted: true}
	for _, spelling := range []string{
		`\\host\share\aa`,
		"smb://host/share/aa",
		"file://host/share/aa",
	} {
		segs, err := n.Normalize(spelling)
		require.Nil(t, err, spelling)
		require.True(t, segs.Equal(share), spelling)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	n := testNormalizer()
	for _, spelling := range []string{
		"/aa/bb",
		"smb://host/share/aa",
		"~/notes",
	} {
		first, err := n.Normalize(spelling)
		require.Nil(t, err)
		p, err := n.fromSegments(first)
		require.Nil(t, err)
		second, err := n.Normalize(p.Path())
		require.Nil(t, err)
		require.True(t, first.Equal(second), spelling)
	}
}

func TestNormalizeHome(t *testing.T) {
	n := testNormalizer()

	segs, err := n.Normalize("~/notes")
	require.Nil(t, err)
	require.True(t, segs.Equal(PathSegments{
		Names: []string{"home", "alice", "notes"}, Rooted: true,
	}))

	segs, err = n.Normalize("~alice/notes")
	require.Nil(t, err)
	require.Equal(t, []string{"home", "alice", "notes"}, segs.Names)

	segs, err = n.Normalize("~bob/notes")
	require.Nil(t, err)
	require.Equal(t, []string{"home", "bob", "notes"}, segs.Names)
}

func TestNormalizeHomeFallback(t *testing.T) {
	t.Setenv("HOME", "/home/envy")
	n := Normalizer{Syntax: Posix}
	segs, err := n.Normalize("~/notes")
	require.Nil(t, err)
	require.Equal(t, []string{"home", "envy", "notes"}, segs.Names)
}

func TestNormalizeUpwardReferences(t *testing.T) {
	n := testNormalizer()

	segs, err := n.Normalize("aa/../../bb")
	require.Nil(t, err)
	require.Equal(t, []string{"..", "bb"}, segs.Names)
	require.False(t, segs.Rooted)

	// "." is kept only while nothing else has been collected
	segs, err = n.Normalize("./aa")
	require.Nil(t, err)
	require.Equal(t, []string{".", "aa"}, segs.Names)
}

func TestNormalizeNames(t *testing.T) {
	n := testNormalizer()

	segs, err := NormalizeNames([]string{"aa", "xx", "..", "bb"})
	require.Nil(t, err)
	require.True(t, segs.Equal(PathSegments{Names: []string{"aa", "bb"}, Rooted: true}))

	// a pre-split list and its string spelling reduce to the same segments
	fromString, err := n.Normalize("/aa/xx/../bb")
	require.Nil(t, err)
	require.True(t, segs.Equal(fromString))

	segs, err = NormalizeNames([]string{"C:", "aa"})
	require.Nil(t, err)
	require.True(t, segs.Rooted)

	// climbing past the first name loses the anchor
	segs, err = NormalizeNames([]string{"..", "bb"})
	require.Nil(t, err)
	require.False(t, segs.Rooted)

	_, err = NormalizeNames(nil)
	require.True(t, errors.Is(err, ErrEmptyPath))

	_, err = NormalizeNames([]string{"aa", ".."})
	require.True(t, errors.Is(err, ErrEmptyPath))
}

func TestNormalizeErrors(t *testing.T) {
	n := testNormalizer()

	_, err := n.Normalize("http://host/page")
	require.True(t, errors.Is(err, ErrInvalidPath))

	_, err = n.Normalize("/aa/..")
	require.True(t, errors.Is(err, ErrEmptyPath))

	_, err = n.Normalize("")
	require.True(t, errors.Is(err, ErrEmptyPath))
}

func TestWindowsSyntax(t *testing.T) {
	n := Normalizer{Syntax: Windows}

	p, err := n.FilePath(`C:\aa\bb`)
	require.Nil(t, err)
	require.Equal(t, `C:\aa\bb`, p.Path())

	uri, err := n.FilePath("file:///C:/aa/bb")
	require.Nil(t, err)
	require.True(t, p.Equal(uri))

	_, err = n.FilePath("/aa/bb")
	require.True(t, errors.Is(err, ErrNotAbsolutePath))

	p, err = n.FilePath(`\\host\share\aa`)
	require.Nil(t, err)
	require.Equal(t, `\\host\share\aa`, p.Path())
}

func TestPosixSyntaxRejectsDrives(t *testing.T) {
	n := testNormalizer()
	_, err := n.FilePath("C:/aa")
	require.True(t, errors.Is(err, ErrNotAbsolutePath))
}
