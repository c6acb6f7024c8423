package changes

import (
	"errors"
	"io/fs"
	"os"
	"syscall"
)

// PathChecker answers existence questions about repository-relative,
// slash-separated paths. A path that does not exist is reported as false with
// a nil error; any other failure is returned.
type PathChecker interface {
	IsDir(name string) (bool, error)
	IsFile(name string) (bool, error)
}

// FSChecker implements PathChecker on top of an fs.FS.
type FSChecker struct {
	fsys fs.FS
}

// NewFSChecker returns a checker that resolves paths inside fsys.
func NewFSChecker(fsys fs.FS) *FSChecker {
	return &FSChecker{fsys: fsys}
}

// NewOSChecker returns a checker rooted at the given workspace directory.
func NewOSChecker(root string) *FSChecker {
	if root == "" {
		root = "."
	}
	return NewFSChecker(os.DirFS(root))
}

// IsDir reports whether name exists and is a directory.
func (c *FSChecker) IsDir(name string) (bool, error) {
	info, err := c.stat(name)
	if err != nil || info == nil {
		return false, err
	}
	return info.IsDir(), nil
}

// IsFile reports whether name exists and is a regular file.
func (c *FSChecker) IsFile(name string) (bool, error) {
	info, err := c.stat(name)
	if err != nil || info == nil {
		return false, err
	}
	return info.Mode().IsRegular(), nil
}

func (c *FSChecker) stat(name string) (fs.FileInfo, error) {
	// Paths git reports that fs.FS cannot address (absolute, "..") are
	// outside the workspace and never qualify.
	if !fs.ValidPath(name) {
		return nil, nil
	}
	info, err := fs.Stat(c.fsys, name)
	if err != nil {
		// ENOTDIR: a leading segment of name is a file.
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
			return nil, nil
		}
		return nil, err
	}
	return info, nil
}
