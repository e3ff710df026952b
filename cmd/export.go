package cmd

import (
	"github.com/spf13/cobra"

	"github.com/julien-sobczak/mdwt/internal/core"
	"github.com/julien-sobczak/mdwt/internal/output"
)

var exportFlags buildFlags
var exportOutput string

func init() {
	exportFlags.register(exportCmd)
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", `destination file, "-" for stdout, or "clipboard" (default from configuration)`)
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Expand a document",
	Long:  `Expand the directives of a Markdown file and write the result to stdout, a file, or the clipboard.`,
	Args:  exactlyOneFile,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, config, err := runBuild(cmd, args[0], &exportFlags)
		if err != nil {
			return err
		}

		destination := config.ConfigFile.Build.Output
		if cmd.Flags().Changed("output") {
			destination = exportOutput
		}
		sink := output.Resolve(destination)
		if err := sink.Write(result.Content); err != nil {
			return err
		}
		if destination != output.Stdout && destination != "" {
			core.CurrentLogger().Infof("Document written to %s", sink)
		}
		return nil
	},
}
