// Package discovery expands scan targets into concrete file lists.
//
// It recursively walks a project directory, skips .git and excluded paths,
// and returns a sorted list of regular files. The resolution core itself
// only consumes file paths; all directory handling lives here.
package discovery

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"
)

// Walker recursively discovers regular files under Root.
type Walker struct {
	// Root is the directory to walk.
	Root string
	// ExcludeGlobs holds doublestar patterns matched against the
	// slash-separated path relative to Root. Matching files and directories
	// are skipped entirely.
	ExcludeGlobs []string
}

// NewWalker creates a Walker rooted at root with no exclusions.
func NewWalker(root string) *Walker {
	return &Walker{Root: root}
}

// Walk traverses the Root directory and returns the absolute paths of all
// regular files, sorted by relative path. Directories named .git are always
// skipped.
func (w *Walker) Walk() ([]string, error) {
	absRoot, err := filepath.Abs(w.Root)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, err
	}
	// A single-file root needs no walking.
	if info.Mode().IsRegular() {
		return []string{absRoot}, nil
	}

	var files []string
	err = filepath.Walk(absRoot, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		rel, err := filepath.Rel(absRoot, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}

		if info.IsDir() && info.Name() == ".git" {
			return filepath.SkipDir
		}

		if w.excluded(filepath.ToSlash(rel)) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if !info.Mode().IsRegular() {
			return nil
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool {
		ri, _ := filepath.Rel(absRoot, files[i])
		rj, _ := filepath.Rel(absRoot, files[j])
		return ri < rj
	})
	return files, nil
}

// excluded reports whether the slash-separated relative path matches any
// exclude glob, either as a full path or by base name.
func (w *Walker) excluded(rel string) bool {
	for _, g := range w.ExcludeGlobs {
		g = strings.TrimSpace(g)
		if g == "" {
			continue
		}
		if ok, _ := doublestar.Match(g, rel); ok {
			return true
		}
		if ok, _ := doublestar.Match(g, filepath.Base(rel)); ok {
			return true
		}
	}
	return false
}
