/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Package assets locates sound and image files that ship alongside the
// binary.
package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultDir is the directory name searched next to the executable and in
// the working directory.
const DefaultDir = "assets"

// Resolver maps logical asset names to files on disk.
type Resolver struct {
	dirs []string
}

// New returns a Resolver that looks in dir first (when set), then in an
// assets directory next to the running executable, then in one under the
// working directory.
func New(dir string) *Resolver {
	var dirs []string

	if dir != "" {
		dirs = append(dirs, dir)
	}

	if exe, err := os.Executable(); err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		dirs = append(dirs, filepath.Join(filepath.Dir(exe), DefaultDir))
	}

	if wd, err := os.Getwd(); err == nil {
		dirs = append(dirs, filepath.Join(wd, DefaultDir))
	}

	return &Resolver{dirs: dedupe(dirs)}
}

func dedupe(dirs []string) []string {
	seen := make(map[string]bool, len(dirs))
	out := dirs[:0]

	for _, d := range dirs {
		clean := filepath.Clean(d)
		if seen[clean] {
			continue
		}
		seen[clean] = true
		out = append(out, clean)
	}

	return out
}

// ErrBadName is returned for names that are empty or carry a path.
var ErrBadName = errors.New("file name must not contain a path")

func validName(name string) bool {
	return name != "" && name != "." && name != ".." &&
		name == filepath.Base(name) && !strings.ContainsAny(name, `/\`)
}

// Within joins name onto dir, refusing anything other than a bare file
// name so the result can never leave dir.
func Within(dir, name string) (string, error) {
	if !validName(name) {
		return "", fmt.Errorf("%w: %q", ErrBadName, name)
	}

	return filepath.Join(dir, name), nil
}

// Resolve returns the path of the first regular file called name in the
// search directories. Names containing path separators are refused.
func (r *Resolver) Resolve(name string) (string, bool) {
	if !validName(name) {
		return "", false
	}

	for _, dir := range r.dirs {
		path := filepath.Join(dir, name)

		info, err := os.Stat(path)
		if err == nil && info.Mode().IsRegular() {
			return path, true
		}
	}

	return "", false
}

// Dirs returns the search directories in lookup order.
func (r *Resolver) Dirs() []string {
	out := make([]string, len(r.dirs))
	copy(out, r.dirs)

	return out
}
