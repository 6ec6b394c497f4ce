package cmd

import (
	"fmt"
	"io"

	"github.com/cwlbump/cwlbump/internal/descriptor"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func newGenerateCmd(cwlbumpWriter io.Writer, localFS afero.Fs) *cobra.Command {
	var generateCmd = &cobra.Command{
		Use:   "generate TOOL_DIR NEW_VERSION TEMPLATE_DIR",
		Short: "Render CWL tools from their templates",
		Args: checkArgs(3, 3,
			"please specify the tool directory, the new version and the template directory",
		),
		Example: `  # Render template/*.mustache into cwl/ with version 1.3.0
  cwlbump generate cwl 1.3.0 template

  # Also bundle the rendered tools into an archive
  cwlbump generate cwl 1.3.0 template --bundle tools.tar.gz`,
		RunE: newRunGenerate(cwlbumpWriter, localFS),
	}

	generateCmd.Flags().String("bundle", "", "write the rendered tools to this .tar.gz archive")
	generateCmd.Flags().String("suffix", descriptor.DefaultTemplateSuffix, "file suffix of the templates")

	return generateCmd
}

func newRunGenerate(
	cwlbumpWriter io.Writer, localFS afero.Fs,
) func(*cobra.Command, []string) (err error) {
	return func(cmd *cobra.Command, args []string) (err error) {
		toolsDir, version, templatesDir := args[0], args[1], args[2]
		if version == "" {
			return fmt.Errorf("the new version must not be empty")
		}

		bundle, err := cmd.Flags().GetString("bundle")
		if err != nil {
			return
		}
		suffix, err := cmd.Flags().GetString("suffix")
		if err != nil {
			return
		}

		results, err := descriptor.Generate(localFS, newLogger(cmd), descriptor.GenerateOptions{
			TemplatesDir: templatesDir,
			ToolsDir:     toolsDir,
			Version:      version,
			Suffix:       suffix,
		})
		if err != nil {
			return
		}

		var paths []string
		for _, result := range results {
			if result.Changed {
				fmt.Fprintf(cwlbumpWriter, "👷 Generated %s\n", result.Path)
			} else {
				fmt.Fprintf(cwlbumpWriter, "✅ %s is already up-to-date\n", result.Path)
			}
			paths = append(paths, result.Path)
		}

		if bundle == "" {
			return
		}
		if len(paths) == 0 {
			return fmt.Errorf("no tools to bundle")
		}
		err = descriptor.Bundle(localFS, paths, bundle)
		if err != nil {
			return
		}
		fmt.Fprintf(cwlbumpWriter, "📦 Bundled %d tools into %s\n", len(paths), bundle)

		return
	}
}
