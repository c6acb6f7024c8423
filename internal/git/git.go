// Package git lists changed and tracked files of the workspace repository.
package git

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/dnd-it/find-changes/internal/outputs"
)

// Engine names accepted by New.
const (
	EngineExec  = "exec"
	EngineGoGit = "go-git"
)

// Source produces newline-separated, repository-relative file paths.
type Source interface {
	// Diff lists files changed since base.
	Diff(ctx context.Context, base string) (string, error)
	// ListFiles lists every tracked file.
	ListFiles(ctx context.Context) (string, error)
}

// New returns the Source for the named engine, operating on workspace.
func New(engine, workspace string) (Source, error) {
	if workspace == "" {
		workspace = "."
	}
	switch engine {
	case "", EngineExec:
		return NewExec(workspace), nil
	case EngineGoGit:
		return NewGoGit(workspace), nil
	default:
		return nil, fmt.Errorf("unknown git engine %q, use %s or %s", engine, EngineExec, EngineGoGit)
	}
}

// Exec runs the git binary.
type Exec struct {
	Dir string
}

// NewExec returns an Exec working in dir.
func NewExec(dir string) *Exec {
	return &Exec{Dir: dir}
}

// MarkSafe marks the workspace as safe to avoid "dubious ownership" errors in
// containers. Failures are ignored.
func (e *Exec) MarkSafe(ctx context.Context) {
	safe := exec.CommandContext(ctx, "git", "config", "--global", "--add", "safe.directory", e.Dir)
	_ = safe.Run()
}

// Diff runs git diff --name-only against base.
func (e *Exec) Diff(ctx context.Context, base string) (string, error) {
	outputs.LogInfo("Finding changed packages")
	return e.run(ctx, "diff", "--name-only", base)
}

// ListFiles runs git ls-files.
func (e *Exec) ListFiles(ctx context.Context) (string, error) {
	outputs.LogInfo("Finding all files")
	return e.run(ctx, "ls-files")
}

func (e *Exec) run(ctx context.Context, args ...string) (string, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = e.Dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if stderr.Len() > 0 {
		outputs.LogDebug(fmt.Sprintf("Stderr from git: %s", stderr.String()))
	}
	if err != nil {
		return "", fmt.Errorf("git %s failed: %w", strings.Join(args, " "), err)
	}
	return stdout.String(), nil
}
