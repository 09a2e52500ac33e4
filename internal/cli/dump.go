package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fernlang/fern/ast"
	"github.com/fernlang/fern/buffer"
	"github.com/fernlang/fern/parser"
)

func newDumpCommand() *cobra.Command {
	var showComments bool
	cmd := &cobra.Command{
		Use:   "dump [file]",
		Short: "Parse one Fern file and print its syntax tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(cmd, args[0], showComments)
		},
	}
	cmd.Flags().BoolVar(&showComments, "comments", false,
		"also list the comments found in the file")
	return cmd
}

func runDump(cmd *cobra.Command, path string, showComments bool) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	p := parser.New(src, parser.WithPath(path))
	program := p.Parse()

	buf := buffer.New()
	ast.PrettyPrint(buf, program)
	if _, err := os.Stdout.Write(buf.Bytes()); err != nil {
		return err
	}
	buf.Free()

	if showComments {
		for _, c := range p.Comments() {
			fmt.Printf("comment %s %d..%d %q\n", c.Kind, c.Start, c.End, c.Text())
		}
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		return err
	}
	renderer := newRenderer(colorEnabled(colorMode, os.Stderr))
	if err := renderer.RenderAll(os.Stderr, p.Report()); err != nil {
		return err
	}

	if p.Report().HasErrors() {
		return ErrSyntaxFound
	}
	return nil
}
