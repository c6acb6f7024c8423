package changes

import "strings"

// MatrixObject is one entry of the multi-value matrix: a directory and the
// short label consumers display for it.
type MatrixObject struct {
	Directory string `json:"directory"`
	Basename  string `json:"basename"`
}

// Matrix is the single-dimension job matrix.
type Matrix struct {
	Directory []string `json:"directory"`
}

// NewMatrix wraps dirs in a Matrix. The directory list is never nil so it
// always serializes as a JSON array.
func NewMatrix(dirs []string) Matrix {
	return Matrix{Directory: append([]string{}, dirs...)}
}

// Basename returns the last path segment of dir.
func Basename(dir string) string {
	trimmed := strings.TrimRight(dir, Separator)
	if i := strings.LastIndex(trimmed, Separator); i >= 0 && i < len(trimmed)-1 {
		return trimmed[i+1:]
	}
	if trimmed == "" {
		return dir
	}
	return trimmed
}

// Basenames maps Basename over dirs.
func Basenames(dirs []string) []string {
	names := make([]string, len(dirs))
	for i, d := range dirs {
		names[i] = Basename(d)
	}
	return names
}

// MatrixObjects pairs every directory with its basename.
func MatrixObjects(dirs []string) []MatrixObject {
	objects := make([]MatrixObject, 0, len(dirs))
	for _, d := range dirs {
		objects = append(objects, MatrixObject{Directory: d, Basename: Basename(d)})
	}
	return objects
}
