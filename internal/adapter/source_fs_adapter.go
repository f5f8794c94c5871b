// Package adapter contains infrastructure adapters for the mockscan CLI.
package adapter

import (
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	m "mockscan.dev/pkg/mockscan/internal/model"
)

// SourceFSAdapter abstracts the filesystem operations the domain layer relies
// on when scanning a source tree, so the scan logic can be tested without
// touching the disk.
type SourceFSAdapter interface {
	// FindSources lists the regular files under root whose name ends with
	// the normalized suffix, in lexical walk order. Root must be a directory;
	// callers check it with FileInfo.
	FindSources(root m.Path, suffix string) ([]m.Path, error)

	// Open returns a reader for the file at path. Callers must close it.
	Open(path m.Path) (io.ReadCloser, error)

	// FileInfo returns metadata for a path. It is used to validate the scan root.
	FileInfo(path m.Path) (os.FileInfo, error)
}

// LocalSourceFSAdapter is the disk-backed SourceFSAdapter.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter instance ready to
// be wired into the workflow.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

// NormalizeSuffix drops everything up to and including the last dot, so both
// ".ts" and "ts" become "ts".
func NormalizeSuffix(suffix string) string {
	return suffix[strings.LastIndex(suffix, ".")+1:]
}

// SuffixPattern returns the recursive glob matching files with the given suffix.
func SuffixPattern(suffix string) string {
	return "**/*." + NormalizeSuffix(suffix)
}

// FindSources walks root and collects every file matching SuffixPattern(suffix).
// Hidden entries below root are not visited.
func (a *LocalSourceFSAdapter) FindSources(root m.Path, suffix string) ([]m.Path, error) {
	rootStr := string(root)
	fsys := os.DirFS(rootStr)
	pattern := SuffixPattern(suffix)

	var sources []m.Path

	err := doublestar.GlobWalk(fsys, pattern, func(path string, d fs.DirEntry) error {
		if isHidden(path) || isDir(fsys, path, d) {
			return nil
		}

		sources = append(sources, m.Path(filepath.Join(rootStr, filepath.FromSlash(path))))

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("glob %s under %s: %w", pattern, root, err)
	}

	slog.Debug("found sources", "root", rootStr, "pattern", pattern, "count", len(sources))

	return sources, nil
}

// Open opens the file at path for reading.
func (a *LocalSourceFSAdapter) Open(path m.Path) (io.ReadCloser, error) {
	// #nosec G304 - scanning user-selected files is the purpose of the tool
	return os.Open(string(path))
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalSourceFSAdapter) FileInfo(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

func isHidden(path string) bool {
	for _, part := range strings.Split(path, "/") {
		if strings.HasPrefix(part, ".") {
			return true
		}
	}

	return false
}

// isDir reports whether the entry is a directory, following symlinks.
func isDir(fsys fs.FS, path string, d fs.DirEntry) bool {
	if d != nil {
		if d.IsDir() {
			return true
		}

		if d.Type()&fs.ModeSymlink == 0 {
			return false
		}
	}

	info, err := fs.Stat(fsys, path)

	return err == nil && info.IsDir()
}
