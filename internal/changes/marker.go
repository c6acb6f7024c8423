package changes

import (
	"fmt"
	"path"
	"strings"
)

// FindMarkerDirectory walks directory from its first segment down to itself
// and returns the shallowest prefix that contains filename as a regular file.
// ok is false when no level contains it.
func FindMarkerDirectory(directory, filename string, checker PathChecker) (string, bool, error) {
	parts := strings.Split(directory, Separator)
	for i := 1; i <= len(parts); i++ {
		prefix := strings.Join(parts[:i], Separator)
		isFile, err := checker.IsFile(path.Join(prefix, filename))
		if err != nil {
			return "", false, fmt.Errorf("checking %s in %s: %w", filename, prefix, err)
		}
		if isFile {
			return prefix, true, nil
		}
	}
	return "", false, nil
}
