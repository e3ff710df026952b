package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/julien-sobczak/mdwt/internal/core"
	"github.com/julien-sobczak/mdwt/internal/mdwt"
)

// errBuildFailed is returned once the diagnostics have already been printed.
var errBuildFailed = fmt.Errorf("build failed")

// buildFlags are the flags shared by the commands running a build.
type buildFlags struct {
	skipHeaders bool
	img2b64     bool
}

func (f *buildFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&f.skipHeaders, "skipheaders", "", false, "omit the front matter in the generated document")
	cmd.Flags().BoolVarP(&f.img2b64, "img2b64", "", false, "embed local images as base64 data URIs")
}

// options merges the configuration with the flags set explicitly on the command line.
func (f *buildFlags) options(cmd *cobra.Command, config *core.Config) mdwt.Options {
	options := mdwt.Options{
		SkipHeaders:  config.ConfigFile.Build.SkipHeaders,
		InlineImages: config.ConfigFile.Build.Img2B64,
	}
	if cmd.Flags().Changed("skipheaders") {
		options.SkipHeaders = f.skipHeaders
	}
	if cmd.Flags().Changed("img2b64") {
		options.InlineImages = f.img2b64
	}
	return options
}

// runBuild loads the configuration of the entry file and expands it.
// Diagnostics are printed on stderr.
func runBuild(cmd *cobra.Command, path string, flags *buildFlags) (*mdwt.Result, *core.Config, error) {
	config, err := core.ReadConfigForFile(path)
	if err != nil {
		return nil, nil, err
	}
	if config.Path != "" {
		core.CurrentLogger().Infof("Using configuration %s", config.Path)
	}

	options := mdwt.Options{}
	if flags != nil {
		options = flags.options(cmd, config)
	}

	result, err := mdwt.Build(path, options)
	printDiagnostics(os.Stderr, result.Diagnostics)
	if err != nil {
		return result, config, errBuildFailed
	}
	return result, config, nil
}

// printDiagnostics prints the build summary. Nothing is printed for a clean build.
func printDiagnostics(w io.Writer, diagnostics []string) {
	summary := mdwt.Summary(diagnostics)
	if summary == "" {
		return
	}
	header, details, _ := strings.Cut(summary, "\n")
	color.New(color.FgRed, color.Bold).Fprintln(w, header)
	if details != "" {
		color.New(color.FgYellow).Fprintln(w, details)
	}
}

// exactlyOneFile validates the positional arguments.
var exactlyOneFile = cobra.ExactArgs(1)
