package cmd

import (
	"github.com/spf13/cobra"

	"github.com/julien-sobczak/mdwt/internal/core"
	"github.com/julien-sobczak/mdwt/internal/output"
)

var buildCmdFlags buildFlags

func init() {
	buildCmdFlags.register(buildCmd)
	rootCmd.AddCommand(buildCmd)
}

var buildCmd = &cobra.Command{
	Use:   "build <file>",
	Short: "Expand a document in place",
	Long:  `Expand the directives of a Markdown file and overwrite the file with the result.`,
	Args:  exactlyOneFile,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, _, err := runBuild(cmd, args[0], &buildCmdFlags)
		if err != nil {
			return err
		}
		sink := output.NewFileSink(args[0])
		if err := sink.Write(result.Content); err != nil {
			return err
		}
		core.CurrentLogger().Infof("Document %s rebuilt", sink)
		return nil
	},
}
