package ingest

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/joseph-ayodele/invoice-extract/constants"
)

// Options controls directory listing.
type Options struct {
	Recursive   bool
	SkipHidden  bool
	IncludeExts []string // defaults to constants.AllowedExtensions
}

// FileResult records a walk error for one path.
type FileResult struct {
	Path string
	Err  string
}

type DirStats struct {
	Scanned uint32
	Matched uint32
	Failed  uint32
}

// ListDirectory walks root in lexical order and returns the invoice files to
// process. Unreadable entries are reported in the results and skipped.
func ListDirectory(root string, opts Options) ([]string, []FileResult, DirStats, error) {
	if strings.TrimSpace(root) == "" {
		return nil, nil, DirStats{}, errors.New("root path is required")
	}

	exts := constants.AllowedExtensions
	if len(opts.IncludeExts) > 0 {
		exts = map[string]struct{}{}
		for _, e := range opts.IncludeExts {
			if e = constants.NormalizeExt(strings.TrimSpace(e)); e != "" {
				exts[e] = struct{}{}
			}
		}
	}

	var (
		paths   []string
		results []FileResult
		stats   DirStats
	)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			results = append(results, FileResult{Path: path, Err: walkErr.Error()})
			stats.Failed++
			return nil // continue walking
		}
		if path == root {
			return nil
		}
		if d.IsDir() {
			if !opts.Recursive || (opts.SkipHidden && IsHidden(path)) {
				return filepath.SkipDir
			}
			return nil
		}
		stats.Scanned++
		if opts.SkipHidden && IsHidden(path) {
			return nil
		}
		if _, ok := exts[constants.NormalizeExt(filepath.Ext(path))]; !ok {
			return nil
		}
		stats.Matched++
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return paths, results, stats, fmt.Errorf("walk: %w", err)
	}
	return paths, results, stats, nil
}

// IsHidden checks if a file or directory is hidden (starts with '.').
func IsHidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}
