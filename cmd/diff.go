package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	godiffpatch "github.com/sourcegraph/go-diff-patch"
	"github.com/spf13/cobra"
)

var diffFlags buildFlags

func init() {
	diffFlags.register(diffCmd)
	rootCmd.AddCommand(diffCmd)
}

var diffCmd = &cobra.Command{
	Use:   "diff <file>",
	Short: "Show changes",
	Long:  `Show the changes "mdwt build" would apply on a document.`,
	Args:  exactlyOneFile,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, _, err := runBuild(cmd, args[0], &diffFlags)
		if err != nil {
			return err
		}
		source, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		patch := godiffpatch.GeneratePatch(filepath.ToSlash(args[0]), string(source), result.Content)
		printDiff(patch)
		return nil
	},
}

func printDiff(diff string) {
	for _, line := range strings.Split(diff, "\n") {
		if strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "---") {
			color.Red(line)
		} else if strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "+++") {
			color.Green(line)
		} else {
			fmt.Println(line)
		}
	}
}
