package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/julien-sobczak/mdwt/internal/markdown"
)

var varsYAML bool

func init() {
	varsCmd.Flags().BoolVarP(&varsYAML, "yaml", "", false, "print the variables as a YAML document")
	rootCmd.AddCommand(varsCmd)
}

var varsCmd = &cobra.Command{
	Use:   "vars <file>",
	Short: "Show variables",
	Long:  `Show the variables collected from a document and all the files it includes.`,
	Args:  exactlyOneFile,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, _, err := runBuild(cmd, args[0], nil)
		if err != nil {
			return err
		}
		if varsYAML {
			text, err := result.Variables.AsYAML()
			if err != nil {
				return err
			}
			fmt.Print(text)
			return nil
		}
		fmt.Print(result.Variables.AsFrontMatter(markdown.FrontMatter("")))
		return nil
	},
}
