package discovery

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pkg/errors"

	"github.com/shinji-kodama/bulkrename/internal/model"
)

// List returns the paths of the direct children of dir whose names match
// pattern. Directories (and symlinks pointing at directories) are skipped;
// subdirectories are never entered.
//
// The returned order is whatever the filesystem produced and must be
// passed through Sort before use. An empty result is not an error.
//
// Errors:
//   - *model.InvalidPatternError when pattern is malformed or contains a
//     path separator
//   - *model.DirectoryNotFoundError when dir does not exist or is not a
//     directory
func List(dir, pattern string) ([]string, error) {
	if err := checkPattern(pattern); err != nil {
		return nil, err
	}

	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &model.DirectoryNotFoundError{Dir: dir, Err: err}
		}
		return nil, errors.Wrapf(err, "inspect source directory %s", dir)
	}
	if !info.IsDir() {
		return nil, &model.DirectoryNotFoundError{Dir: dir, Err: errors.New("not a directory")}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "read source directory %s", dir)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		// The pattern was validated above, so Match cannot fail here.
		matched, _ := doublestar.Match(pattern, entry.Name())
		if !matched {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		if entry.Type()&fs.ModeSymlink != 0 && pointsToDir(path) {
			continue
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// checkPattern rejects globs that doublestar cannot parse and globs that
// would need to look into subdirectories.
func checkPattern(pattern string) error {
	if pattern == "" {
		return &model.InvalidPatternError{Pattern: pattern, Reason: "pattern is empty"}
	}
	if strings.ContainsRune(pattern, '/') || strings.ContainsRune(pattern, filepath.Separator) {
		return &model.InvalidPatternError{
			Pattern: pattern,
			Reason:  "pattern must match file names only; subdirectories are not searched",
		}
	}
	if !doublestar.ValidatePattern(pattern) {
		return &model.InvalidPatternError{Pattern: pattern, Reason: "malformed glob"}
	}
	return nil
}

// pointsToDir reports whether the symlink at path resolves to a directory.
// Dangling links are treated as files: they can still be renamed.
func pointsToDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
