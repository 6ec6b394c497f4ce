// Package release bumps the version of the CWL tools and tags a release.
package release

import (
	"context"
	"time"
)

// Tag is a version-control tag and the commit it points to.
type Tag struct {
	Name       string
	Commit     string
	CommitDate time.Time
	// Generation is greater for a commit than for any of its ancestors. Zero
	// means unknown.
	Generation int
}

// Repository is the version-control interface a release needs.
type Repository interface {
	// IsDirty reports uncommitted changes to tracked files.
	IsDirty() (bool, error)
	CurrentBranch() (string, error)
	Fetch(ctx context.Context) error
	// CommitsBehind counts the commits of the remote branch that are not
	// reachable from the local branch.
	CommitsBehind(branch string) (int, error)
	// TrackingBranch returns the upstream of branch, or "" if none is set.
	TrackingBranch(branch string) (string, error)
	Tags() ([]Tag, error)

	Commit(paths []string, message string) error
	Push(ctx context.Context, branch string) error
	// CreateTag tags HEAD. A non-empty message creates an annotated tag.
	CreateTag(name string, message string) error
	PushTag(ctx context.Context, name string) error
}
