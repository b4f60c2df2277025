package pathres

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_AbsolutePathWins(t *testing.T) {
	got, err := Resolve("/some/base", "/etc/passwd", 0)
	require.NoError(t, err)
	assert.Equal(t, "/etc/passwd", got)
}

func TestResolve_RelativeJoinsBase(t *testing.T) {
	got, err := Resolve("/some/base", "data.bin", 0)
	require.NoError(t, err)
	assert.Equal(t, "/some/base/data.bin", got)

	// A base path with a trailing separator gets exactly one joiner.
	got, err = Resolve("/some/base///", "data.bin", 0)
	require.NoError(t, err)
	assert.Equal(t, "/some/base/data.bin", got)
}

func TestResolve_EmptyBase(t *testing.T) {
	got, err := Resolve("", "data.bin", 0)
	require.NoError(t, err)
	assert.Equal(t, "data.bin", got)
}

func TestResolve_EmptyPath(t *testing.T) {
	_, err := Resolve("/some/base", "", 0)
	assert.ErrorIs(t, err, ErrEmptyPath)
}

func TestResolve_SeparatorCleanup(t *testing.T) {
	got, err := Resolve("//base", "sub//", 0)
	require.NoError(t, err)
	assert.Equal(t, "/base/sub", got)
}

func TestResolve_FileBaseUsesParent(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.ini")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	// An existing non-directory base stands in for its parent directory.
	got, err := Resolve(file, "data.bin", 0)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "data.bin"), got)

	// An explicit trailing separator disables the stat probe.
	got, err = Resolve(file+"/", "data.bin", 0)
	require.NoError(t, err)
	assert.Equal(t, file+"/data.bin", got)
}

func TestResolve_ConvertBackslash(t *testing.T) {
	got, err := Resolve("base\\dir", "sub\\data.bin", ConvertBackslash)
	require.NoError(t, err)
	assert.Equal(t, "base/dir/sub/data.bin", got)

	// Without the option, backslashes are ordinary characters.
	got, err = Resolve("", "sub\\data.bin", 0)
	require.NoError(t, err)
	assert.Equal(t, "sub\\data.bin", got)
}

func TestResolve_ForceRelative(t *testing.T) {
	got, err := Resolve("/base", "/data.bin", ForceRelative)
	require.NoError(t, err)
	assert.Equal(t, "/base/data.bin", got)
}

func TestResolve_CreateDirectory(t *testing.T) {
	dir := t.TempDir()

	got, err := Resolve(dir, "sub/data.bin", CreateDirectory)
	require.NoError(t, err)
	fi, err := os.Stat(filepath.Join(dir, "sub"))
	require.NoError(t, err)
	assert.True(t, fi.IsDir())
	assert.Equal(t, filepath.Join(dir, "sub/data.bin"), got)

	// CreateDirectory alone does not create missing intermediates...
	_, err = Resolve(dir, "a/b/data.bin", CreateDirectory)
	require.NoError(t, err, "creation is best-effort; resolution still succeeds")
	_, err = os.Stat(filepath.Join(dir, "a"))
	assert.Error(t, err)

	// ...CreatePath does.
	_, err = Resolve(dir, "a/b/data.bin", CreatePath)
	require.NoError(t, err)
	fi, err = os.Stat(filepath.Join(dir, "a/b"))
	require.NoError(t, err)
	assert.True(t, fi.IsDir())
}

func TestMakeDirectory(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, MakeDirectory(dir, "made", 0))
	fi, err := os.Stat(filepath.Join(dir, "made"))
	require.NoError(t, err)
	assert.True(t, fi.IsDir())

	// Existing directory is fine.
	require.NoError(t, MakeDirectory(dir, "made", 0))

	// Missing intermediates need CreatePath.
	require.Error(t, MakeDirectory(dir, "x/y/z", 0))
	require.NoError(t, MakeDirectory(dir, "x/y/z", CreatePath))
	fi, err = os.Stat(filepath.Join(dir, "x/y/z"))
	require.NoError(t, err)
	assert.True(t, fi.IsDir())
}
