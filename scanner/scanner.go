package scanner

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultExtension is the source extension linqfix analyzes.
const DefaultExtension = ".cs"

// FileInfo describes one discovered source file.
type FileInfo struct {
	Path string
	Size int64
}

// Scanner discovers source files under a root directory.
type Scanner struct {
	rootDir     string
	extensions  []string
	ignoreDirs  []string
	ignorePaths map[string]bool
}

// New returns a Scanner. With no extensions it defaults to .cs files.
func New(rootDir string, extensions ...string) *Scanner {
	if len(extensions) == 0 {
		extensions = []string{DefaultExtension}
	}
	return &Scanner{
		rootDir:     rootDir,
		extensions:  extensions,
		ignorePaths: make(map[string]bool),
	}
}

// IgnoreDir skips directories with the given base name (e.g. "bin").
func (s *Scanner) IgnoreDir(name string) {
	s.ignoreDirs = append(s.ignoreDirs, name)
}

// IgnorePath skips an exact file path.
func (s *Scanner) IgnorePath(path string) {
	s.ignorePaths[path] = true
}

// Scan walks the root directory and returns the matching files sorted by
// path, so processing order is deterministic.
func (s *Scanner) Scan() ([]FileInfo, error) {
	var files []FileInfo

	err := filepath.Walk(s.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if s.isIgnoredDir(info.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if s.isTargetFile(path) && !s.ignorePaths[path] {
			files = append(files, FileInfo{Path: path, Size: info.Size()})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

func (s *Scanner) isIgnoredDir(name string) bool {
	for _, dir := range s.ignoreDirs {
		if strings.EqualFold(name, dir) {
			return true
		}
	}
	return false
}

func (s *Scanner) isTargetFile(path string) bool {
	ext := filepath.Ext(path)
	for _, targetExt := range s.extensions {
		if ext == targetExt {
			return true
		}
	}
	return false
}
