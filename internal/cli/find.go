package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/dnd-it/find-changes/internal/changes"
	"github.com/dnd-it/find-changes/internal/event"
	"github.com/dnd-it/find-changes/internal/git"
	"github.com/dnd-it/find-changes/internal/outputs"
)

// Result is the outcome of one change detection run.
type Result struct {
	DiffBase    string
	ForceAll    bool
	Directories []string
}

// Find resolves the branch point, diffs against it and reduces the changed
// files to the sorted list of affected directories.
func Find(ctx context.Context, cfg changes.Config, ev event.Context, src git.Source, checker changes.PathChecker, load event.PayloadLoader) (Result, error) {
	diffBase, err := event.Resolve(ev, load)
	if err != nil {
		return Result{}, err
	}
	outputs.LogInfo(fmt.Sprintf("Using branch point of %q to determine changes", diffBase))

	diffOutput, err := src.Diff(ctx, diffBase)
	if err != nil {
		return Result{}, err
	}

	res := Result{DiffBase: diffBase}
	files := diffOutput
	if changes.MatchesForceAll(diffOutput, cfg.ForceAll) {
		outputs.LogNotice(fmt.Sprintf("Changed file matched %s, selecting all directories", cfg.ForceAll))
		res.ForceAll = true
		files, err = src.ListFiles(ctx)
		if err != nil {
			return Result{}, err
		}
	}

	candidates, err := changes.Extract(files, cfg.Selection.Depth(), checker)
	if err != nil {
		return Result{}, err
	}

	dirs, err := changes.Filter(candidates, cfg, checker)
	if err != nil {
		return Result{}, err
	}
	sort.Strings(dirs)
	res.Directories = dirs
	return res, nil
}

// WriteOutputs publishes res as step outputs.
func WriteOutputs(res Result) error {
	outputs.SetOutput("diff_base", res.DiffBase)
	outputs.SetBoolOutput("force_all", res.ForceAll)

	joined := strings.Join(res.Directories, " ")
	outputs.LogInfo(fmt.Sprintf("Changed directories: %s", joined))
	outputs.SetOutput("changed_directories", joined)
	outputs.SetBoolOutput("matrix_empty", len(res.Directories) == 0)

	matrix, err := outputs.SetJSONOutput("matrix", changes.NewMatrix(res.Directories))
	if err != nil {
		return err
	}
	outputs.LogInfo(fmt.Sprintf("Created matrix: %s", matrix))

	multi, err := outputs.SetJSONOutput("multivalue_matrix", changes.MatrixObjects(res.Directories))
	if err != nil {
		return err
	}
	outputs.LogInfo(fmt.Sprintf("Created multivalue matrix: %s", multi))
	return nil
}
