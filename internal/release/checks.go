package release

import (
	"context"
	"fmt"
)

// Settings configures a release.
type Settings struct {
	MainBranch     string
	RemoteName     string
	ToolsDir       string
	TemplatesDir   string
	TemplateSuffix string
}

// A Check is a precondition that must hold before anything is released.
type Check struct {
	Name string
	Run  func(ctx context.Context, repo Repository, settings Settings) error
}

// DefaultChecks are evaluated in order before every release.
var DefaultChecks = []Check{
	{Name: "clean", Run: checkClean},
	{Name: "branch", Run: checkBranch},
	{Name: "up-to-date", Run: checkUpToDate},
	{Name: "tracking-branch", Run: checkTrackingBranch},
}

// RunChecks runs the checks in order and stops at the first failure.
func RunChecks(
	ctx context.Context, repo Repository, settings Settings, checks []Check,
) error {
	for _, check := range checks {
		if err := check.Run(ctx, repo, settings); err != nil {
			return err
		}
	}
	return nil
}

func checkClean(_ context.Context, repo Repository, _ Settings) error {
	dirty, err := repo.IsDirty()
	if err != nil {
		return err
	}
	if dirty {
		return PreconditionError{
			Check:  "clean",
			Reason: "repo is dirty. Commit first, then rerun",
		}
	}
	return nil
}

func checkBranch(_ context.Context, repo Repository, settings Settings) error {
	branch, err := repo.CurrentBranch()
	if err != nil {
		return err
	}
	if branch != settings.MainBranch {
		return PreconditionError{
			Check: "branch",
			Reason: fmt.Sprintf(
				"the active branch is %s, not %s. Please switch to %s before performing a release",
				branch, settings.MainBranch, settings.MainBranch,
			),
		}
	}
	return nil
}

func checkUpToDate(ctx context.Context, repo Repository, settings Settings) error {
	err := repo.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", settings.RemoteName, err)
	}

	behind, err := repo.CommitsBehind(settings.MainBranch)
	if err != nil {
		return err
	}
	if behind != 0 {
		return PreconditionError{
			Check: "up-to-date",
			Reason: fmt.Sprintf(
				"branch is %d commits behind %s/%s. Pull before attempting release",
				behind, settings.RemoteName, settings.MainBranch,
			),
		}
	}
	return nil
}

func checkTrackingBranch(_ context.Context, repo Repository, settings Settings) error {
	tracking, err := repo.TrackingBranch(settings.MainBranch)
	if err != nil {
		return err
	}
	if tracking == "" {
		return PreconditionError{
			Check:  "tracking-branch",
			Reason: "please set a tracking branch before attempting release",
		}
	}
	return nil
}
