package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/fernlang/fern/encoding"
	"github.com/fernlang/fern/internal/config"
	"github.com/fernlang/fern/internal/logging"
	"github.com/fernlang/fern/parser"
	"github.com/fernlang/fern/report"
)

// ErrSyntaxFound signals a nonzero exit because files had syntax errors; it
// is not itself worth logging.
var ErrSyntaxFound = errors.New("syntax problems found")

type checkFlags struct {
	encoding string
	jobs     int
}

func newCheckCommand() *cobra.Command {
	flags := &checkFlags{}
	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Parse Fern files and report their diagnostics",
		Long: `Parse every matching Fern file and report its diagnostics.

Paths may be files or doublestar globs such as 'src/**/*.fern'.

Examples:
  fernparse check main.fern
  fernparse check 'src/**/*.fern'
  fernparse check --encoding iso-8859-7 legacy/**/*.fern`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.encoding, "encoding", "",
		"encoding for files that do not declare one")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0,
		"number of files parsed concurrently (0 = number of CPUs)")
	return cmd
}

type fileResult struct {
	path        string
	diagnostics []report.Diagnostic
}

func runCheck(cmd *cobra.Command, args []string, flags *checkFlags) error {
	logger := logging.Default()

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if flags.encoding != "" {
		cfg.Encoding = flags.encoding
	}
	if flags.jobs != 0 {
		cfg.Jobs = flags.jobs
	}

	var enc encoding.Encoding
	if cfg.Encoding != "" {
		if enc = encoding.Lookup(cfg.Encoding); enc == nil {
			return fmt.Errorf("unknown encoding %q", cfg.Encoding)
		}
	}

	paths, err := expandPaths(args, cfg)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return errors.New("no files matched")
	}
	logger.Debug("checking files", "count", len(paths), "jobs", cfg.Jobs)

	jobs := cfg.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	// Parse concurrently, one independent parser per file, but report in
	// input order.
	results := make([]fileResult, len(paths))
	var g errgroup.Group
	g.SetLimit(jobs)
	for i, path := range paths {
		g.Go(func() error {
			src, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			opts := []parser.Option{parser.WithPath(path)}
			if enc != nil {
				opts = append(opts, parser.WithEncoding(enc))
			}
			p := parser.New(src, opts...)
			p.Parse()
			results[i] = fileResult{path: path, diagnostics: p.Diagnostics()}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		return err
	}
	renderer := newRenderer(colorEnabled(colorMode, os.Stdout))

	var errorCount, warningCount int
	for _, res := range results {
		for _, d := range res.diagnostics {
			if errorCount+warningCount > 0 {
				fmt.Println()
			}
			if err := renderer.Render(os.Stdout, d); err != nil {
				return err
			}
			if d.Level == report.Error {
				errorCount++
			} else {
				warningCount++
			}
		}
	}

	logger.Debug("check finished",
		"files", len(paths), "errors", errorCount, "warnings", warningCount)
	if errorCount > 0 {
		return ErrSyntaxFound
	}
	return nil
}

// expandPaths resolves the path arguments: literal files stay as-is, and
// anything else is treated as a doublestar glob. The ignore globs from the
// config are applied to the result.
func expandPaths(args []string, cfg config.Config) ([]string, error) {
	var paths []string
	for _, arg := range args {
		if info, err := os.Stat(arg); err == nil && !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		matches, err := doublestar.FilepathGlob(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid glob %q: %w", arg, err)
		}
		paths = append(paths, matches...)
	}

	paths = slices.DeleteFunc(paths, cfg.Ignored)
	slices.Sort(paths)
	return slices.Compact(paths), nil
}
