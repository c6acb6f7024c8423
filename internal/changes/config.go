// Package changes reduces a list of changed files to the set of directories
// a CI matrix should fan out over.
package changes

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrConfiguration is returned when the directory selection options are
// missing, conflicting or malformed.
var ErrConfiguration = errors.New("invalid configuration")

// Selection decides how changed files map to directories. It is either a
// fixed depth (Depth > 0) or a marker file name (Marker != ""), never both.
type Selection struct {
	depth  int
	marker string
}

// NewSelection builds a Selection from the two mutually exclusive inputs.
// A levels value of 0 and an empty containing value both mean "unset".
func NewSelection(levels int, containing string) (Selection, error) {
	switch {
	case levels == 0 && containing == "":
		return Selection{}, fmt.Errorf("%w: one of directory_containing or directory_levels is required", ErrConfiguration)
	case levels != 0 && containing != "":
		return Selection{}, fmt.Errorf("%w: only one of directory_containing or directory_levels is allowed", ErrConfiguration)
	case levels < 0:
		return Selection{}, fmt.Errorf("%w: directory_levels must be a positive integer, got %d", ErrConfiguration, levels)
	}
	return Selection{depth: levels, marker: containing}, nil
}

// Depth returns the truncation depth, or 0 when directories are selected by
// marker file and the full parent directory is used.
func (s Selection) Depth() int { return s.depth }

// Marker returns the marker file name, or "" in depth mode.
func (s Selection) Marker() string { return s.marker }

func (s Selection) String() string {
	if s.marker != "" {
		return fmt.Sprintf("directories containing %q", s.marker)
	}
	return fmt.Sprintf("directories at depth %d", s.depth)
}

// Options holds the raw, uncompiled settings used to build a Config.
type Options struct {
	DirectoryContaining string
	DirectoryLevels     int
	Exclude             string
	ForceAllOnMatch     string
}

// Config is the validated, compiled configuration for one run.
type Config struct {
	Selection Selection
	// Exclude drops matching directories. Nil excludes nothing.
	Exclude *regexp.Regexp
	// ForceAll selects every directory when it matches a changed file. Nil
	// disables the check.
	ForceAll *regexp.Regexp
}

// NewConfig validates opts and compiles its patterns.
func NewConfig(opts Options) (Config, error) {
	sel, err := NewSelection(opts.DirectoryLevels, opts.DirectoryContaining)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{Selection: sel}

	if opts.Exclude != "" {
		cfg.Exclude, err = regexp.Compile(opts.Exclude)
		if err != nil {
			return Config{}, fmt.Errorf("%w: invalid exclude pattern: %v", ErrConfiguration, err)
		}
	}

	if opts.ForceAllOnMatch != "" {
		cfg.ForceAll, err = regexp.Compile(opts.ForceAllOnMatch)
		if err != nil {
			return Config{}, fmt.Errorf("%w: invalid force_all_on_match pattern: %v", ErrConfiguration, err)
		}
	}

	return cfg, nil
}
