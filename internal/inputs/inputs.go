// Package inputs handles parsing GitHub Action inputs from environment variables
// and an optional configuration file.
package inputs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dnd-it/find-changes/internal/changes"
	"github.com/dnd-it/find-changes/internal/event"
)

// Config holds all parsed input values. Empty strings mean "not set".
type Config struct {
	ConfigFile              string
	DirectoryContaining     string
	DirectoryLevels         string
	Exclude                 string
	ForceAllOnMatch         string
	FromOriginalBranchPoint string
	GitEngine               string

	EventName string
	EventPath string
	Workspace string
}

// Parse reads inputs and runner context from environment variables.
func Parse() *Config {
	return &Config{
		ConfigFile:              getEnv("CONFIG_FILE", ""),
		DirectoryContaining:     getEnv("DIRECTORY_CONTAINING", ""),
		DirectoryLevels:         getEnv("DIRECTORY_LEVELS", ""),
		Exclude:                 getEnv("EXCLUDE", ""),
		ForceAllOnMatch:         getEnv("FORCE_ALL_ON_MATCH", ""),
		FromOriginalBranchPoint: getEnv("FROM_ORIGINAL_BRANCH_POINT", ""),
		GitEngine:               getEnv("GIT_ENGINE", ""),

		EventName: os.Getenv("GITHUB_EVENT_NAME"),
		EventPath: os.Getenv("GITHUB_EVENT_PATH"),
		Workspace: os.Getenv("GITHUB_WORKSPACE"),
	}
}

// fileConfig is the shape of the optional configuration file.
type fileConfig struct {
	DirectoryContaining     string `json:"directory_containing" yaml:"directory_containing"`
	DirectoryLevels         int    `json:"directory_levels" yaml:"directory_levels"`
	Exclude                 string `json:"exclude" yaml:"exclude"`
	ForceAllOnMatch         string `json:"force_all_on_match" yaml:"force_all_on_match"`
	FromOriginalBranchPoint *bool  `json:"from_original_branch_point" yaml:"from_original_branch_point"`
	GitEngine               string `json:"git_engine" yaml:"git_engine"`
}

// LoadFile fills every unset field of c from the configuration file named by
// c.ConfigFile. Values already set take precedence. It is a no-op when no file
// is configured.
func (c *Config) LoadFile() error {
	if c.ConfigFile == "" {
		return nil
	}

	data, err := os.ReadFile(c.ConfigFile)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("configuration file not found: %s", c.ConfigFile)
		}
		return fmt.Errorf("failed to read configuration file: %w", err)
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(c.ConfigFile)) {
	case ".json":
		if err := json.Unmarshal(data, &fc); err != nil {
			return fmt.Errorf("invalid JSON in %s: %w", c.ConfigFile, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return fmt.Errorf("invalid YAML in %s: %w", c.ConfigFile, err)
		}
	default:
		return fmt.Errorf("unsupported file type. Use .json, .yaml, or .yml")
	}

	setDefault(&c.DirectoryContaining, fc.DirectoryContaining)
	if fc.DirectoryLevels != 0 {
		setDefault(&c.DirectoryLevels, strconv.Itoa(fc.DirectoryLevels))
	}
	setDefault(&c.Exclude, fc.Exclude)
	setDefault(&c.ForceAllOnMatch, fc.ForceAllOnMatch)
	if fc.FromOriginalBranchPoint != nil {
		setDefault(&c.FromOriginalBranchPoint, strconv.FormatBool(*fc.FromOriginalBranchPoint))
	}
	setDefault(&c.GitEngine, fc.GitEngine)
	return nil
}

// BuildChangesConfig converts raw input strings to a validated changes.Config.
func (c *Config) BuildChangesConfig() (changes.Config, error) {
	opts := changes.Options{
		DirectoryContaining: strings.TrimSpace(c.DirectoryContaining),
		Exclude:             c.Exclude,
		ForceAllOnMatch:     c.ForceAllOnMatch,
	}

	if s := strings.TrimSpace(c.DirectoryLevels); s != "" {
		levels, err := strconv.Atoi(s)
		if err != nil || levels <= 0 {
			return changes.Config{}, fmt.Errorf("%w: directory_levels must be a positive integer, got %q", changes.ErrConfiguration, c.DirectoryLevels)
		}
		opts.DirectoryLevels = levels
	}

	return changes.NewConfig(opts)
}

// EventContext returns the trigger context for branch point resolution.
func (c *Config) EventContext() (event.Context, error) {
	fromOriginal := false
	if c.FromOriginalBranchPoint != "" {
		v, err := strconv.ParseBool(c.FromOriginalBranchPoint)
		if err != nil {
			return event.Context{}, fmt.Errorf("%w: from_original_branch_point must be true or false, got %q", changes.ErrConfiguration, c.FromOriginalBranchPoint)
		}
		fromOriginal = v
	}
	return event.Context{
		EventName:               c.EventName,
		EventPath:               c.EventPath,
		FromOriginalBranchPoint: fromOriginal,
	}, nil
}

// WorkspaceDir returns the directory git and filesystem checks run in.
func (c *Config) WorkspaceDir() string {
	if c.Workspace == "" {
		return "."
	}
	return c.Workspace
}

func getEnv(name, defaultValue string) string {
	key := "INPUT_" + strings.ToUpper(name)
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func setDefault(dst *string, value string) {
	if *dst == "" && value != "" {
		*dst = value
	}
}
