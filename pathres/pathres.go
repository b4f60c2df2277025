// Package pathres resolves a file location from a base path and a path,
// with optional directory creation.
//
// The rules favor configuration-file ergonomics over strict POSIX joining:
// an absolute path wins outright, a base path that names an existing
// regular file stands in for its parent directory, and separator runs are
// cleaned up on both inputs before joining.
package pathres

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"syscall"
)

// Options alter how Resolve interprets and post-processes its inputs.
type Options uint32

const (
	// CreateDirectory creates the directory enclosing the resolved path,
	// mode 0777 before umask.
	CreateDirectory Options = 1 << iota

	// CreatePath creates the enclosing directory and every missing
	// intermediate, mode 0777 before umask. Implies CreateDirectory.
	CreatePath

	// ConvertBackslash treats '\' as a path separator and converts it to
	// '/' in the result.
	ConvertBackslash

	// ForceRelative strips one leading separator from path, forcing it to
	// resolve relative to basePath.
	ForceRelative
)

// ErrEmptyPath reports that the path argument was empty after cleanup.
var ErrEmptyPath = errors.New("pathres: empty path")

func isSep(c byte, opts Options) bool {
	return c == '/' || (c == '\\' && opts&ConvertBackslash != 0)
}

// dedupeLeading collapses a run of separators at the start of s down to one.
func dedupeLeading(s string, opts Options) string {
	for len(s) >= 2 && isSep(s[0], opts) && isSep(s[1], opts) {
		s = s[1:]
	}
	return s
}

// trimTrailing removes separators at the end of s, keeping at least one
// character. The second result reports whether anything was removed, which
// marks the string as an explicit directory path.
func trimTrailing(s string, opts Options) (string, bool) {
	trimmed := false
	for len(s) >= 2 && isSep(s[len(s)-1], opts) {
		s = s[:len(s)-1]
		trimmed = true
	}
	return s, trimmed
}

func convert(s string, opts Options) string {
	if opts&ConvertBackslash == 0 {
		return s
	}
	return strings.ReplaceAll(s, "\\", "/")
}

// parent cuts s at its last '/', excluding a separator in the first
// position. Returns "" when no usable separator exists.
func parent(s string) string {
	for i := len(s); i > 1; i-- {
		if s[i-1] == '/' {
			return s[:i-1]
		}
	}
	return ""
}

// Resolve combines basePath and path into a single location.
//
// After separator cleanup on both inputs, an absolute path is returned
// as-is and basePath is ignored. A relative path is appended to basePath,
// except that a basePath naming an existing non-directory is first replaced
// by its parent directory, so a data file can serve as the base for its
// siblings. An empty path after cleanup is ErrEmptyPath.
//
// With CreateDirectory or CreatePath set, the enclosing directory of the
// result is created on a best-effort basis; creation failures surface
// later, when the resolved path is opened.
func Resolve(basePath, path string, opts Options) (string, error) {
	base := dedupeLeading(basePath, opts)
	base, baseIsDir := trimTrailing(base, opts)

	p := dedupeLeading(path, opts)
	p, _ = trimTrailing(p, opts)

	if opts&ForceRelative != 0 && len(p) > 0 && isSep(p[0], opts) {
		p = p[1:]
	}
	if len(p) == 0 {
		return "", ErrEmptyPath
	}

	var result string
	if isSep(p[0], opts) {
		result = p
	} else {
		b := convert(base, opts)
		if !baseIsDir && b != "" {
			if fi, err := os.Stat(b); err == nil && !fi.IsDir() {
				b = parent(b)
			}
		}
		result = b
		if len(b) >= 1 && !isSep(b[len(b)-1], opts) {
			result += "/"
		}
		result += p
	}
	result = convert(result, opts)

	if opts&(CreateDirectory|CreatePath) != 0 {
		_ = createEnclosing(result, opts)
	}

	return result, nil
}

// MakeDirectory resolves basePath and path like Resolve, then creates the
// resolved directory itself, mode 0777 before umask. An existing directory
// is not an error. CreatePath additionally creates missing intermediates.
func MakeDirectory(basePath, path string, opts Options) error {
	dir, err := Resolve(basePath, path, opts&^(CreateDirectory|CreatePath))
	if err != nil {
		return err
	}
	if err := mkdirLenient(dir, opts); err != nil {
		return fmt.Errorf("pathres: create %s: %w", dir, err)
	}
	return nil
}

// mkdirLenient creates dir, tolerating an existing directory and, with
// CreatePath, missing parents.
func mkdirLenient(dir string, opts Options) error {
	err := os.Mkdir(dir, 0o777)
	if mkdirOK(err) {
		return nil
	}
	if errors.Is(err, fs.ErrNotExist) && opts&CreatePath != 0 {
		if perr := createEnclosing(dir, opts); perr != nil {
			return perr
		}
		err = os.Mkdir(dir, 0o777)
		if mkdirOK(err) {
			return nil
		}
	}
	return err
}

func mkdirOK(err error) bool {
	return err == nil || errors.Is(err, fs.ErrExist) || errors.Is(err, syscall.EISDIR)
}

// createEnclosing creates the directory containing path. A path without a
// separator lives in the current directory, which needs no creation.
func createEnclosing(path string, opts Options) error {
	idx := strings.LastIndexByte(path, '/')
	if idx < 0 {
		return nil
	}
	return mkdirLenient(path[:idx], opts)
}
