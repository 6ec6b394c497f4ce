package cmd

import (
	"fmt"
	"io"

	"github.com/cwlbump/cwlbump/internal/descriptor"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func newInfoCmd(cwlbumpWriter io.Writer, localFS afero.Fs) *cobra.Command {
	var infoCmd = &cobra.Command{
		Use:   "info DESCRIPTOR...",
		Short: "Show the docker image of CWL tools",
		Args:  checkArgs(1, noLimit, "please specify at least one tool"),
		Example: `  # Show the docker image of a tool
  cwlbump info cwl/tool.cwl

  # Show the docker images of all tools
  cwlbump info cwl/*.cwl`,
		RunE: newRunInfo(cwlbumpWriter, localFS),
	}
	return infoCmd
}

func newRunInfo(
	cwlbumpWriter io.Writer, localFS afero.Fs,
) func(*cobra.Command, []string) (err error) {
	return func(cmd *cobra.Command, args []string) (err error) {
		for _, path := range args {
			err = info(cwlbumpWriter, localFS, path, args)
			if err != nil {
				return
			}
		}
		return
	}
}

func info(
	cwlbumpWriter io.Writer, localFS afero.Fs, path string, allPaths []string,
) (err error) {
	d, err := descriptor.ReadFile(localFS, path)
	if err != nil {
		return
	}
	loc, err := d.Locate()
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	fmt.Fprintln(cwlbumpWriter, prependName(path, allPaths,
		fmt.Sprintf("🐳 %s", loc.DockerPull),
	))
	fmt.Fprintln(cwlbumpWriter, prependName(path, allPaths,
		fmt.Sprintf("📍 %s (%s)", loc.Section, loc.Encoding),
	))

	return
}
