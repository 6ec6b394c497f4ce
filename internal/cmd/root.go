package cmd

import (
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	cfgFile     string
	verboseFlag bool
	versionFlag bool
)

// NewRootCmd returns the root command.
func NewRootCmd(cwlbumpWriter io.Writer, localFS afero.Fs) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cwlbump",
		Short: "cwlbump versions the docker images of your CWL tools",
		Example: `  # Render the CWL tools from their templates
  cwlbump generate cwl 1.3.0 template

  # Release a new minor version
  cwlbump release`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SilenceUsage = true
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if versionFlag {
				return printVersion(cwlbumpWriter)
			}

			return cmd.Help()
		},
	}

	// Flags
	rootCmd.Flags().BoolVar(&versionFlag, "version", false, "display the version of cwlbump")

	// Persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path of the config file (default is $HOME/.config/cwlbump/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "print debug logs")

	// Commands
	rootCmd.AddCommand(newEditCmd(cwlbumpWriter, localFS))
	rootCmd.AddCommand(newGenerateCmd(cwlbumpWriter, localFS))
	rootCmd.AddCommand(newInfoCmd(cwlbumpWriter, localFS))
	rootCmd.AddCommand(newReleaseCmd(cwlbumpWriter, localFS))
	rootCmd.AddCommand(newVersionCmd(cwlbumpWriter))

	return rootCmd
}
