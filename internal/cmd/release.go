package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/cwlbump/cwlbump/internal/release"
	"github.com/cwlbump/cwlbump/internal/sysutil"
	"github.com/cwlbump/cwlbump/internal/utils"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newReleaseCmd(cwlbumpWriter io.Writer, localFS afero.Fs) *cobra.Command {
	var releaseCmd = &cobra.Command{
		Use:   "release",
		Short: "Tag a new release of the CWL tools",
		Long: `Tag a new release of the CWL tools.

The working tree must be clean, on the main branch, up-to-date with the remote
and tracking a remote branch. The tools are regenerated with the next version,
committed and pushed before the new tag is created and pushed.`,
		Args: cobra.NoArgs,
		Example: `  # Release a new minor version
  cwlbump release

  # Release a new major version with an annotated tag
  cwlbump release --major --annotate

  # Show the next version without changing anything
  cwlbump release --dry-run`,
		RunE: newRunRelease(cwlbumpWriter, localFS),
	}

	releaseCmd.Flags().Bool("major", false, "bump the major version instead of the minor version")
	releaseCmd.Flags().Bool("annotate", false, "create an annotated tag")
	releaseCmd.Flags().Bool("dry-run", false, "only run the checks and print the next version")
	releaseCmd.Flags().String("repo", ".", "path of the repository root")

	return releaseCmd
}

func newRunRelease(
	cwlbumpWriter io.Writer, localFS afero.Fs,
) func(*cobra.Command, []string) (err error) {
	return func(cmd *cobra.Command, args []string) (err error) {
		opts, repoDir, err := releaseFlags(cmd)
		if err != nil {
			return
		}

		values, err := utils.RequireConfigStrings(
			utils.MainBranchKey, utils.RemoteNameKey, utils.ToolsDirKey,
			utils.TemplatesDirKey, utils.TemplateSuffixKey,
		)
		if err != nil {
			return
		}
		settings := release.Settings{
			MainBranch:     values[0],
			RemoteName:     values[1],
			ToolsDir:       values[2],
			TemplatesDir:   values[3],
			TemplateSuffix: values[4],
		}

		repoDir, err = filepath.Abs(repoDir)
		if err != nil {
			return
		}
		repo, err := release.OpenGitRepository(repoDir, release.GitOptions{
			RemoteName:  settings.RemoteName,
			Token:       viper.GetString(utils.GitTokenKey),
			AuthorName:  viper.GetString(utils.GitAuthorNameKey),
			AuthorEmail: viper.GetString(utils.GitAuthorEmailKey),
		})
		if err != nil {
			return
		}

		if !opts.DryRun {
			err = checkToolsDir(filepath.Join(repoDir, settings.ToolsDir))
			if err != nil {
				return
			}
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		logger := newLogger(cmd)
		state, err := utils.NewState(localFS)
		if err != nil {
			return
		}
		if state.Release.Repository == repoDir {
			logger.Debugf("previous release was %s at %s",
				state.Release.Tag, state.Release.LastSuccess.Format(time.RFC3339))
		}

		releaser := &release.Releaser{
			Repo:     repo,
			FS:       afero.NewBasePathFs(localFS, repoDir),
			Settings: settings,
			Writer:   cwlbumpWriter,
			Logger:   logger,
		}
		next, err := releaser.Run(ctx, opts)
		if err != nil || opts.DryRun {
			return
		}

		state.Release.Repository = repoDir
		state.Release.Tag = release.TagName(next)
		state.Release.LastSuccess = time.Now()
		if err := state.Write(localFS); err != nil {
			logger.Warnf("could not record the release: %v", err)
		}

		return
	}
}

func releaseFlags(cmd *cobra.Command) (opts release.Options, repoDir string, err error) {
	major, err := cmd.Flags().GetBool("major")
	if err != nil {
		return
	}
	if major {
		opts.Bump = release.Major
	}
	opts.Annotate, err = cmd.Flags().GetBool("annotate")
	if err != nil {
		return
	}
	opts.DryRun, err = cmd.Flags().GetBool("dry-run")
	if err != nil {
		return
	}
	repoDir, err = cmd.Flags().GetString("repo")
	return
}

// checkToolsDir makes sure the tools can be written. A missing tools directory
// is created by the generator, so its parent must be writable instead.
func checkToolsDir(toolsDir string) (err error) {
	err = sysutil.CheckWritableDir(toolsDir)
	if errors.Is(err, fs.ErrNotExist) {
		err = sysutil.CheckWritableDir(filepath.Dir(toolsDir))
	}
	if err != nil {
		return fmt.Errorf("cannot write the tools: %w", err)
	}
	return
}
