// Package cli wires inputs, change detection and outputs into the
// find-changes command.
package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dnd-it/find-changes/internal/changes"
	"github.com/dnd-it/find-changes/internal/git"
	"github.com/dnd-it/find-changes/internal/inputs"
	"github.com/dnd-it/find-changes/internal/outputs"
)

// Version is set at build time with -ldflags "-X github.com/dnd-it/find-changes/internal/cli.Version=...".
var Version = "dev"

// Exit codes.
const (
	ExitSuccess = 0
	ExitFailure = 1
)

// NewRootCmd builds the command. Flag defaults come from the INPUT_* variables
// so that flags override action inputs, and both override the config file.
func NewRootCmd() *cobra.Command {
	cfg := inputs.Parse()
	var fromOriginal bool

	cmd := &cobra.Command{
		Use:           "find-changes",
		Short:         "Find directories affected by a change",
		Long:          "find-changes diffs the workspace against the branch point of the triggering event and prints the changed directories as a job matrix.",
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("from-original-branch-point") {
				cfg.FromOriginalBranchPoint = strconv.FormatBool(fromOriginal)
			}
			return run(cmd.Context(), cfg)
		},
	}

	f := cmd.Flags()
	f.StringVar(&cfg.ConfigFile, "config", cfg.ConfigFile, "Configuration file (.yml, .yaml or .json)")
	f.StringVar(&cfg.DirectoryContaining, "directory-containing", cfg.DirectoryContaining, "Select the shallowest directory containing this file")
	f.StringVar(&cfg.DirectoryLevels, "directory-levels", cfg.DirectoryLevels, "Select directories at this depth")
	f.StringVar(&cfg.Exclude, "exclude", cfg.Exclude, "Regular expression of directories to exclude")
	f.StringVar(&cfg.ForceAllOnMatch, "force-all-on-match", cfg.ForceAllOnMatch, "Regular expression of changed files that select all directories")
	f.BoolVar(&fromOriginal, "from-original-branch-point", false, "Diff pull requests against their original base commit")
	f.StringVar(&cfg.GitEngine, "git-engine", cfg.GitEngine, fmt.Sprintf("Git implementation (%s, %s)", git.EngineExec, git.EngineGoGit))
	f.StringVar(&cfg.Workspace, "workspace", cfg.Workspace, "Repository directory (default $GITHUB_WORKSPACE or .)")
	f.StringVar(&cfg.EventName, "event-name", cfg.EventName, "Triggering event name (default $GITHUB_EVENT_NAME)")
	f.StringVar(&cfg.EventPath, "event-path", cfg.EventPath, "Event payload file (default $GITHUB_EVENT_PATH)")

	return cmd
}

// Run executes the command and returns the process exit code.
func Run() int {
	if err := NewRootCmd().Execute(); err != nil {
		outputs.LogError(err.Error())
		return ExitFailure
	}
	return ExitSuccess
}

func run(ctx context.Context, cfg *inputs.Config) error {
	if err := cfg.LoadFile(); err != nil {
		return err
	}

	changesCfg, err := cfg.BuildChangesConfig()
	if err != nil {
		return fmt.Errorf("invalid inputs: %w", err)
	}
	ev, err := cfg.EventContext()
	if err != nil {
		return fmt.Errorf("invalid inputs: %w", err)
	}
	outputs.LogInfo(fmt.Sprintf("Selecting %s", changesCfg.Selection))

	workspace := cfg.WorkspaceDir()
	src, err := git.New(cfg.GitEngine, workspace)
	if err != nil {
		return fmt.Errorf("invalid inputs: %w", err)
	}
	if e, ok := src.(*git.Exec); ok {
		e.MarkSafe(ctx)
	}

	res, err := Find(ctx, changesCfg, ev, src, changes.NewOSChecker(workspace), nil)
	if err != nil {
		return err
	}
	return WriteOutputs(res)
}
