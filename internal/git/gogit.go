package git

import (
	"context"
	"fmt"
	"sort"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/dnd-it/find-changes/internal/outputs"
)

// GoGit reads the repository in-process. Unlike Exec it compares the base
// commit with the HEAD commit, so uncommitted work tree changes are not
// reported.
type GoGit struct {
	Dir string
}

// NewGoGit returns a GoGit reading the repository containing dir.
func NewGoGit(dir string) *GoGit {
	return &GoGit{Dir: dir}
}

func (g *GoGit) open() (*gogit.Repository, error) {
	repo, err := gogit.PlainOpenWithOptions(g.Dir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open repository at %s: %w", g.Dir, err)
	}
	return repo, nil
}

func commitTree(repo *gogit.Repository, rev string) (*object.Tree, error) {
	hash, err := repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", rev, err)
	}
	commit, err := repo.CommitObject(*hash)
	if err != nil {
		return nil, fmt.Errorf("failed to read commit %s: %w", hash, err)
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("failed to read tree of %s: %w", hash, err)
	}
	return tree, nil
}

// Diff lists the files that differ between base and HEAD, one per line.
// Deleted files are reported by their old name.
func (g *GoGit) Diff(ctx context.Context, base string) (string, error) {
	outputs.LogInfo("Finding changed packages")
	repo, err := g.open()
	if err != nil {
		return "", err
	}

	baseTree, err := commitTree(repo, base)
	if err != nil {
		return "", err
	}
	headTree, err := commitTree(repo, "HEAD")
	if err != nil {
		return "", err
	}

	diff, err := object.DiffTreeContext(ctx, baseTree, headTree)
	if err != nil {
		return "", fmt.Errorf("failed to diff %s against HEAD: %w", base, err)
	}

	seen := make(map[string]bool, len(diff))
	names := make([]string, 0, len(diff))
	for _, change := range diff {
		name := change.To.Name
		if name == "" {
			name = change.From.Name
		}
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return joinLines(names), nil
}

// ListFiles lists every file in the HEAD tree.
func (g *GoGit) ListFiles(ctx context.Context) (string, error) {
	outputs.LogInfo("Finding all files")
	repo, err := g.open()
	if err != nil {
		return "", err
	}
	tree, err := commitTree(repo, "HEAD")
	if err != nil {
		return "", err
	}

	var names []string
	err = tree.Files().ForEach(func(f *object.File) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		names = append(names, f.Name)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to list files: %w", err)
	}
	sort.Strings(names)
	return joinLines(names), nil
}

func joinLines(names []string) string {
	if len(names) == 0 {
		return ""
	}
	return strings.Join(names, "\n") + "\n"
}
