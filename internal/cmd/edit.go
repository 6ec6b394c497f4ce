package cmd

import (
	"fmt"
	"io"

	"github.com/cwlbump/cwlbump/internal/descriptor"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func newEditCmd(cwlbumpWriter io.Writer, localFS afero.Fs) *cobra.Command {
	var editCmd = &cobra.Command{
		Use:   "edit NEW_VERSION DESCRIPTOR...",
		Short: "Set the docker image tag of CWL tools in place",
		Args:  checkArgs(2, noLimit, "please specify the new version and at least one tool"),
		Example: `  # Set the image tag of a single tool
  cwlbump edit 1.3.0 cwl/tool.cwl

  # Set the image tag of all tools
  cwlbump edit 1.3.0 cwl/*.cwl`,
		RunE: newRunEdit(cwlbumpWriter, localFS),
	}
	return editCmd
}

func newRunEdit(
	cwlbumpWriter io.Writer, localFS afero.Fs,
) func(*cobra.Command, []string) (err error) {
	return func(cmd *cobra.Command, args []string) (err error) {
		version, paths := args[0], args[1:]
		logger := newLogger(cmd)

		for _, path := range paths {
			var result descriptor.EditResult
			result, err = descriptor.EditFile(localFS, logger, path, version)
			if err != nil {
				return
			}

			if result.Changed {
				fmt.Fprintln(cwlbumpWriter, prependName(path, paths,
					fmt.Sprintf("👷 %s -> %s", result.OldImage, result.NewImage),
				))
			} else {
				fmt.Fprintln(cwlbumpWriter, prependName(path, paths,
					fmt.Sprintf("✅ %s is already up-to-date", result.OldImage),
				))
			}
		}

		return
	}
}
