// Package cli provides the Cobra command structure for fernparse.
package cli

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/fernlang/fern/internal/logging"
	"github.com/fernlang/fern/report"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root fernparse command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "fernparse",
		Short: "Parse Fern source files and report syntax problems",
		Long: `fernparse is the command line front end of the Fern parser.

It parses Fern source files into syntax trees, printing every syntax
problem as an annotated source snippet. Parsing is total: even badly broken
input produces a tree, so fernparse always has something to report on.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.AddCommand(newCheckCommand())
	rootCmd.AddCommand(newDumpCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	return rootCmd
}

// colorEnabled resolves a --color mode against the terminal on f.
func colorEnabled(mode string, f *os.File) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// newRenderer builds the diagnostic renderer, styled when color is on.
func newRenderer(color bool) *report.Renderer {
	if !color {
		return &report.Renderer{}
	}
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	warnStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	return &report.Renderer{
		StyleError:   func(s string) string { return errStyle.Render(s) },
		StyleWarning: func(s string) string { return warnStyle.Render(s) },
	}
}
