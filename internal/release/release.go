package release

import (
	"context"
	"fmt"
	"io"

	"github.com/Masterminds/semver"
	"github.com/cwlbump/cwlbump/internal/descriptor"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Options configures a single release run.
type Options struct {
	Bump     Bump
	Annotate bool
	// DryRun stops after computing the next version.
	DryRun bool
}

// Releaser creates releases of a repository of CWL tools.
type Releaser struct {
	Repo     Repository
	FS       afero.Fs
	Settings Settings
	// Checks default to DefaultChecks.
	Checks []Check
	Writer io.Writer
	Logger logrus.FieldLogger
}

// CommitMessage is the message of the commit that updates the tools. CI skips
// it because it runs for the tag pushed right after.
func CommitMessage(version *semver.Version) string {
	return fmt.Sprintf("Update docker image version in CWL tool to %s [skip-ci]", version)
}

// Run checks the preconditions, regenerates the tools at the next version,
// commits and pushes them if they changed, and finally tags the release.
func (r *Releaser) Run(ctx context.Context, opts Options) (next *semver.Version, err error) {
	checks := r.Checks
	if checks == nil {
		checks = DefaultChecks
	}
	err = RunChecks(ctx, r.Repo, r.Settings, checks)
	if err != nil {
		return
	}
	r.Logger.Debug("all release checks passed")

	tags, err := r.Repo.Tags()
	if err != nil {
		return
	}
	latest, current, err := LatestTag(tags)
	if err != nil {
		return
	}
	next, err = NextVersion(current, opts.Bump)
	if err != nil {
		return
	}
	tagName := TagName(next)
	for _, tag := range tags {
		if tag.Name == tagName {
			err = fmt.Errorf("tag %s already exists", tagName)
			return
		}
	}
	r.Logger.WithFields(logrus.Fields{
		"latest": latest.Name,
		"commit": latest.Commit,
		"bump":   opts.Bump,
	}).Debugf("next version is %s", next)

	fmt.Fprintf(r.Writer, "🏷  %s -> %s (%s)\n", latest.Name, tagName, opts.Bump)
	if opts.DryRun {
		return
	}

	fmt.Fprintf(r.Writer, "👷 Regenerating tools in %s ...\n", r.Settings.ToolsDir)
	results, err := descriptor.Generate(r.FS, r.Logger, descriptor.GenerateOptions{
		TemplatesDir: r.Settings.TemplatesDir,
		ToolsDir:     r.Settings.ToolsDir,
		Version:      next.String(),
		Suffix:       r.Settings.TemplateSuffix,
	})
	if err != nil {
		return
	}

	changed := 0
	for _, result := range results {
		if result.Changed {
			changed++
		}
	}
	if changed > 0 {
		fmt.Fprintf(r.Writer, "👷 Committing %d updated tools ...\n", changed)
		err = r.Repo.Commit([]string{r.Settings.ToolsDir}, CommitMessage(next))
		if err != nil {
			return
		}
		err = r.Repo.Push(ctx, r.Settings.MainBranch)
		if err != nil {
			return
		}
	} else {
		fmt.Fprintln(r.Writer, "✅ tools already up-to-date")
	}

	var message string
	if opts.Annotate {
		message = "Release " + tagName
	}
	fmt.Fprintf(r.Writer, "👷 Tagging %s ...\n", tagName)
	err = r.Repo.CreateTag(tagName, message)
	if err != nil {
		return
	}
	err = r.Repo.PushTag(ctx, tagName)
	if err != nil {
		return
	}
	fmt.Fprintf(r.Writer, "🎉 Released %s\n", tagName)

	return
}
