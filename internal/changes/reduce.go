package changes

import "strings"

// Separator splits the paths produced by git, on every platform.
const Separator = "/"

// Reduce maps a changed file path to its candidate directory.
//
// With depth > 0 the first depth segments are kept, and a path with depth or
// fewer segments yields no candidate. With depth == 0 the candidate is the
// path's parent directory, and a top-level file yields no candidate.
func Reduce(path string, depth int) (string, bool) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", false
	}

	parts := strings.Split(path, Separator)
	if depth > 0 && len(parts) <= depth {
		return "", false
	}

	keep := depth
	if depth <= 0 {
		keep = len(parts) - 1
	}
	if keep == 0 {
		return "", false
	}
	return strings.Join(parts[:keep], Separator), true
}

// Lines returns the non-empty, trimmed lines of a diff output.
func Lines(output string) []string {
	var lines []string
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
