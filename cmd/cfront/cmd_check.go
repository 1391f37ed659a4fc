package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dhamidi/cfront/c/codebase"
	"github.com/dhamidi/cfront/c/parser"
	"github.com/dhamidi/cfront/format"
)

func newCheckCmd(g *globalOptions) *cobra.Command {
	var outputFormat string
	var colorMode string
	var maxErrors int
	var typedefs []string

	cmd := &cobra.Command{
		Use:   "check [path...]",
		Short: "Check C files and report every diagnostic",
		Long: `Check C files and report every diagnostic.

Directories are searched for files with a configured source extension.
Without arguments the current directory is checked. The command fails
when any diagnostic was reported.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("format") {
				g.cfg.Format = outputFormat
			}
			if cmd.Flags().Changed("color") {
				g.cfg.Color = colorMode
			}
			if cmd.Flags().Changed("max-errors") {
				g.cfg.MaxErrors = maxErrors
			}
			g.cfg.Typedefs = append(g.cfg.Typedefs, typedefs...)
			if err := g.cfg.Validate(); err != nil {
				return err
			}

			if len(args) == 0 {
				args = []string{"."}
			}
			paths, err := g.expandPaths(args)
			if err != nil {
				return err
			}

			diags, err := g.checkFiles(cmd, paths)
			if err != nil {
				return err
			}
			total := len(diags)
			if g.cfg.MaxErrors > 0 && total > g.cfg.MaxErrors {
				diags = diags[:g.cfg.MaxErrors]
			}

			out := cmd.OutOrStdout()
			enc, err := format.NewDiagnosticEncoder(g.cfg.Format, out, g.colored(out), version)
			if err != nil {
				return err
			}
			if err := enc.Encode(diags); err != nil {
				return fmt.Errorf("encode diagnostics: %w", err)
			}

			if total > 0 {
				return fmt.Errorf("%d errors in %d files: %w", total, len(paths), errDiagnostics)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format (text, json, sarif)")
	cmd.Flags().StringVar(&colorMode, "color", "auto", "colorize text output (auto, always, never)")
	cmd.Flags().IntVar(&maxErrors, "max-errors", 0, "stop reporting after this many diagnostics (0 for no limit)")
	cmd.Flags().StringSliceVarP(&typedefs, "typedef", "t", nil, "identifier to treat as a typedef name (repeatable)")

	return cmd
}

// expandPaths replaces directories by the source files below them.
func (g *globalOptions) expandPaths(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		st, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", arg, err)
		}
		if !st.IsDir() {
			paths = append(paths, arg)
			continue
		}
		found, err := codebase.New(arg, g.cfg).SourcePaths()
		if err != nil {
			return nil, err
		}
		paths = append(paths, found...)
	}
	return paths, nil
}

// checkFiles analyzes paths concurrently and returns the diagnostics in
// the order of paths.
func (g *globalOptions) checkFiles(cmd *cobra.Command, paths []string) ([]parser.Diagnostic, error) {
	results := make([][]parser.Diagnostic, len(paths))

	eg, ctx := errgroup.WithContext(cmd.Context())
	eg.SetLimit(runtime.NumCPU())
	for i, path := range paths {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read c file: %w", err)
			}
			results[i] = codebase.Analyze(path, data, g.cfg.Typedefs).Diagnostics
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	var all []parser.Diagnostic
	for _, r := range results {
		all = append(all, r...)
	}
	return all, nil
}
