// Package event resolves the commit to diff against from the GitHub Actions
// event that triggered the run.
package event

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/dnd-it/find-changes/internal/outputs"
)

// Sentinel errors for branch point resolution.
var (
	ErrUnsupportedEvent       = errors.New("find-changes only works on pull_request and push events")
	ErrMissingPayload         = errors.New("could not find event payload file to determine branch point")
	ErrUnsupportedClosedEvent = errors.New("running find-changes on: pull_request: closed is not supported in v2 - please migrate workflow to on: push:")
	ErrIncompleteEventData    = errors.New("event payload is missing data required to determine branch point")
)

// Kind classifies an event name.
type Kind int

const (
	KindOther Kind = iota
	KindPullRequest
	KindPush
)

// KindOf maps a GITHUB_EVENT_NAME value to its Kind.
func KindOf(eventName string) Kind {
	switch eventName {
	case "pull_request", "pull_request_target":
		return KindPullRequest
	case "push":
		return KindPush
	default:
		return KindOther
	}
}

// Context is the trigger information for one run, assembled once at startup.
type Context struct {
	EventName string
	EventPath string
	// FromOriginalBranchPoint makes pull requests diff against the base
	// commit recorded when the pull request was opened instead of the
	// current tip of the default branch.
	FromOriginalBranchPoint bool
}

// Payload holds the fields of the webhook event document this package reads.
type Payload struct {
	Action      string       `json:"action"`
	Before      string       `json:"before"`
	Repository  *Repository  `json:"repository"`
	PullRequest *PullRequest `json:"pull_request"`
}

// Repository is the repository object of an event payload.
type Repository struct {
	DefaultBranch string `json:"default_branch"`
}

// PullRequest is the pull_request object of an event payload.
type PullRequest struct {
	Base *Ref `json:"base"`
}

// Ref is a commit reference inside a pull request.
type Ref struct {
	SHA string `json:"sha"`
}

// PayloadLoader reads the event payload stored at path.
type PayloadLoader func(path string) (*Payload, error)

// ReadPayload is the PayloadLoader reading a JSON document from disk.
func ReadPayload(path string) (*Payload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMissingPayload, err)
	}
	var p *Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON in %s: %w", ErrMissingPayload, path, err)
	}
	if p == nil {
		return nil, fmt.Errorf("%w: event payload does not provide data", ErrMissingPayload)
	}
	return p, nil
}

// Resolve returns the ref to diff against for ctx. A nil load uses
// ReadPayload.
func Resolve(ctx Context, load PayloadLoader) (string, error) {
	if load == nil {
		load = ReadPayload
	}

	kind := KindOf(ctx.EventName)
	if kind == KindOther {
		return "", ErrUnsupportedEvent
	}

	outputs.LogInfo(fmt.Sprintf("Reading event from %s", ctx.EventPath))
	if ctx.EventPath == "" {
		return "", ErrMissingPayload
	}
	payload, err := load(ctx.EventPath)
	if err != nil {
		return "", err
	}

	var ref string
	if kind == KindPullRequest {
		ref, err = pullRequestBranchPoint(payload, ctx.FromOriginalBranchPoint)
	} else {
		ref, err = pushBranchPoint(payload)
	}
	if err != nil {
		return "", err
	}

	outputs.LogInfo(fmt.Sprintf("Found branch point %s", ref))
	return ref, nil
}

func pullRequestBranchPoint(p *Payload, fromOriginal bool) (string, error) {
	if p.Action == "closed" {
		return "", ErrUnsupportedClosedEvent
	}
	if fromOriginal {
		if p.PullRequest != nil && p.PullRequest.Base != nil && p.PullRequest.Base.SHA != "" {
			return p.PullRequest.Base.SHA, nil
		}
		return "", fmt.Errorf("%w: pull_request.base.sha not set", ErrIncompleteEventData)
	}
	if p.Repository != nil && p.Repository.DefaultBranch != "" {
		return "origin/" + p.Repository.DefaultBranch, nil
	}
	return "", fmt.Errorf("%w: unable to determine pull request branch point, repository.default_branch not set", ErrIncompleteEventData)
}

func pushBranchPoint(p *Payload) (string, error) {
	if p.Before != "" {
		return p.Before, nil
	}
	return "", fmt.Errorf("%w: unable to determine push branch point, before not set", ErrIncompleteEventData)
}
