package rename

import (
	"io/fs"
	"os"
)

// FileSystem is the subset of filesystem operations the executor uses.
// Tests substitute implementations that fail on chosen paths.
type FileSystem interface {
	Rename(oldpath, newpath string) error
	Lstat(name string) (fs.FileInfo, error)
}

// OSFileSystem implements FileSystem with the os package.
type OSFileSystem struct{}

// Rename calls os.Rename.
func (OSFileSystem) Rename(oldpath, newpath string) error { return os.Rename(oldpath, newpath) }

// Lstat calls os.Lstat.
func (OSFileSystem) Lstat(name string) (fs.FileInfo, error) { return os.Lstat(name) }
