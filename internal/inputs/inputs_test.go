package inputs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dnd-it/find-changes/internal/changes"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParse(t *testing.T) {
	t.Setenv("INPUT_DIRECTORY_LEVELS", "2")
	t.Setenv("INPUT_EXCLUDE", `^\.github`)
	t.Setenv("GITHUB_EVENT_NAME", "push")
	t.Setenv("GITHUB_EVENT_PATH", "/tmp/event.json")
	t.Setenv("GITHUB_WORKSPACE", "")

	cfg := Parse()
	if cfg.DirectoryLevels != "2" || cfg.Exclude != `^\.github` {
		t.Errorf("unexpected inputs %+v", cfg)
	}
	if cfg.EventName != "push" || cfg.EventPath != "/tmp/event.json" {
		t.Errorf("unexpected event context %+v", cfg)
	}
	if cfg.WorkspaceDir() != "." {
		t.Errorf("expected default workspace, got %s", cfg.WorkspaceDir())
	}
}

func TestBuildChangesConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
		depth   int
		marker  string
	}{
		{name: "levels", cfg: Config{DirectoryLevels: "1"}, depth: 1},
		{name: "containing", cfg: Config{DirectoryContaining: "Dockerfile"}, marker: "Dockerfile"},
		{name: "neither", cfg: Config{}, wantErr: true},
		{name: "both", cfg: Config{DirectoryLevels: "1", DirectoryContaining: "Dockerfile"}, wantErr: true},
		{name: "zero levels", cfg: Config{DirectoryLevels: "0"}, wantErr: true},
		{name: "non-numeric levels", cfg: Config{DirectoryLevels: "two"}, wantErr: true},
		{name: "bad exclude", cfg: Config{DirectoryLevels: "1", Exclude: "("}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.cfg.BuildChangesConfig()
			if tt.wantErr {
				if !errors.Is(err, changes.ErrConfiguration) {
					t.Fatalf("expected ErrConfiguration, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Selection.Depth() != tt.depth || got.Selection.Marker() != tt.marker {
				t.Errorf("unexpected selection %v", got.Selection)
			}
		})
	}
}

func TestEventContext(t *testing.T) {
	c := Config{EventName: "pull_request", EventPath: "e.json", FromOriginalBranchPoint: "true"}
	ctx, err := c.EventContext()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ctx.FromOriginalBranchPoint || ctx.EventName != "pull_request" || ctx.EventPath != "e.json" {
		t.Errorf("unexpected context %+v", ctx)
	}

	c.FromOriginalBranchPoint = "maybe"
	if _, err := c.EventContext(); !errors.Is(err, changes.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}

func TestLoadFile_YAML(t *testing.T) {
	path := writeFile(t, "find-changes.yml", `
directory_containing: Dockerfile
exclude: ^\.github
force_all_on_match: ^go\.work$
from_original_branch_point: true
git_engine: go-git
`)
	c := Config{ConfigFile: path, Exclude: "^vendor"}
	if err := c.LoadFile(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.DirectoryContaining != "Dockerfile" {
		t.Errorf("expected directory_containing from file, got %q", c.DirectoryContaining)
	}
	if c.Exclude != "^vendor" {
		t.Errorf("expected explicit exclude to win, got %q", c.Exclude)
	}
	if c.ForceAllOnMatch != `^go\.work$` || c.FromOriginalBranchPoint != "true" || c.GitEngine != "go-git" {
		t.Errorf("unexpected config %+v", c)
	}
}

func TestLoadFile_JSON(t *testing.T) {
	path := writeFile(t, "find-changes.json", `{"directory_levels": 2}`)
	c := Config{ConfigFile: path}
	if err := c.LoadFile(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.DirectoryLevels != "2" {
		t.Errorf("expected directory_levels 2, got %q", c.DirectoryLevels)
	}
}

func TestLoadFile_Errors(t *testing.T) {
	if err := (&Config{}).LoadFile(); err != nil {
		t.Fatalf("expected no-op without a file, got %v", err)
	}
	if err := (&Config{ConfigFile: "nonexistent.yml"}).LoadFile(); err == nil {
		t.Fatal("expected error for missing file")
	}
	if err := (&Config{ConfigFile: writeFile(t, "config.txt", "x")}).LoadFile(); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
	if err := (&Config{ConfigFile: writeFile(t, "config.json", "{")}).LoadFile(); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
	if err := (&Config{ConfigFile: writeFile(t, "config.yml", "directory_levels: [")}).LoadFile(); err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}
