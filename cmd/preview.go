package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/julien-sobczak/mdwt/internal/core"
	"github.com/julien-sobczak/mdwt/internal/markdown"
	"github.com/julien-sobczak/mdwt/internal/output"
)

var previewFlags buildFlags
var previewOutput string
var previewNoBrowser bool

func init() {
	previewFlags.register(previewCmd)
	previewCmd.Flags().StringVarP(&previewOutput, "output", "o", "", "HTML file to generate (default to a temporary file)")
	previewCmd.Flags().BoolVarP(&previewNoBrowser, "no-browser", "", false, "only generate the HTML file")
	rootCmd.AddCommand(previewCmd)
}

var previewCmd = &cobra.Command{
	Use:   "preview <file>",
	Short: "Preview a document",
	Long:  `Expand a document, render it as HTML, and open the result in the default browser.`,
	Args:  exactlyOneFile,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, config, err := runBuild(cmd, args[0], &previewFlags)
		if err != nil {
			return err
		}

		_, body := markdown.SplitFrontMatter(result.Content)
		html, err := body.ToHTML(config.ConfigFile.Preview.Extensions...)
		if err != nil {
			return err
		}

		path := previewOutput
		if path == "" {
			base := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			path = filepath.Join(os.TempDir(), "mdwt", base+".html")
		}
		if err := output.NewFileSink(path).Write(html); err != nil {
			return err
		}
		core.CurrentLogger().Infof("Preview written to %s", path)

		if previewNoBrowser {
			fmt.Println(path)
			return nil
		}
		absolutePath, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		if err := browser.OpenURL("file://" + filepath.ToSlash(absolutePath)); err != nil {
			return fmt.Errorf("unable to open %s: %w", path, err)
		}
		return nil
	},
}
