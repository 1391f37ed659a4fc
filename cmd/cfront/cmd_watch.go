package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/dhamidi/cfront/c/codebase"
	"github.com/dhamidi/cfront/format"
)

func newWatchCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "watch [dir]",
		Short: "Recheck C files as they change",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			out := cmd.OutOrStdout()
			reporter := format.NewDiagnosticReporter(out, g.colored(out))

			c := codebase.New(dir, g.cfg)
			if err := c.ScanAll(ctx); err != nil {
				return err
			}
			if err := reporter.ReportAll(c.AllDiagnostics()); err != nil {
				return err
			}
			fmt.Fprintf(out, "watching %d files under %s\n", len(c.Files()), dir)

			w, err := codebase.NewWatcher(c, printChange(out, reporter))
			if err != nil {
				return fmt.Errorf("watch %s: %w", dir, err)
			}
			return w.Run(ctx)
		},
	}
}

// printChange reports each recheck on out. Write failures are logged and
// do not stop watching.
func printChange(out io.Writer, reporter *format.DiagnosticReporter) codebase.ChangeFunc {
	return func(path string, info *codebase.FileInfo) {
		var err error
		switch {
		case info == nil:
			_, err = fmt.Fprintf(out, "%s: removed\n", path)
		case len(info.Diagnostics) == 0:
			_, err = fmt.Fprintf(out, "%s: ok\n", path)
		default:
			err = reporter.ReportAll(info.Diagnostics)
		}
		if err != nil {
			log.Errorf("report %s: %s", path, err)
		}
	}
}
