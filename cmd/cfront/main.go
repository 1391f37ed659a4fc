package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/cfront/c/parser"
	"github.com/dhamidi/cfront/config"
	"github.com/dhamidi/cfront/format"
)

var version = "0.1.0"

var log = commonlog.GetLogger("cfront")

// errDiagnostics marks a run that completed but reported problems in its
// input.
var errDiagnostics = errors.New("diagnostics reported")

type globalOptions struct {
	configPath string
	verbose    int
	logFile    string
	cfg        *config.Config
}

func newRootCmd() *cobra.Command {
	g := &globalOptions{}

	cmd := &cobra.Command{
		Use:           "cfront",
		Short:         "Lex, parse and check C source files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.setup()
		},
	}

	cmd.PersistentFlags().StringVar(&g.configPath, "config", "", "settings file (default "+config.DefaultFile+" if present)")
	cmd.PersistentFlags().CountVarP(&g.verbose, "verbose", "v", "increase log verbosity")
	cmd.PersistentFlags().StringVar(&g.logFile, "log-file", "", "write logs to a file instead of stderr")

	cmd.AddCommand(newTokensCmd(g))
	cmd.AddCommand(newParseCmd(g))
	cmd.AddCommand(newCheckCmd(g))
	cmd.AddCommand(newWatchCmd(g))
	cmd.AddCommand(newLSPCmd(g))
	cmd.AddCommand(newGrammarCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func (g *globalOptions) setup() error {
	var logPath *string
	if g.logFile != "" {
		logPath = &g.logFile
	}
	commonlog.Configure(g.verbose, logPath)

	cfg, err := config.Load(g.configPath)
	if err != nil {
		return err
	}
	g.cfg = cfg
	return nil
}

// colored reports whether diagnostics written to w get colors.
func (g *globalOptions) colored(w io.Writer) bool {
	f, _ := w.(*os.File)
	return format.ColorEnabled(g.cfg.Color, f)
}

// reportDiagnostics prints diags to the command's error stream and turns
// them into errDiagnostics.
func (g *globalOptions) reportDiagnostics(cmd *cobra.Command, diags []parser.Diagnostic) error {
	if len(diags) == 0 {
		return nil
	}
	w := cmd.ErrOrStderr()
	if err := format.NewDiagnosticReporter(w, g.colored(w)).ReportAll(diags); err != nil {
		return err
	}
	return fmt.Errorf("%d errors: %w", len(diags), errDiagnostics)
}

// openSource opens path for reading, or standard input for "-".
func openSource(cmd *cobra.Command, path string) (string, io.ReadCloser, error) {
	if path == "-" {
		return "<stdin>", io.NopCloser(cmd.InOrStdin()), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return "", nil, fmt.Errorf("open c file: %w", err)
	}
	return path, f, nil
}

func readSource(cmd *cobra.Command, path string) (string, []byte, error) {
	name, r, err := openSource(cmd, path)
	if err != nil {
		return "", nil, err
	}
	defer r.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		return "", nil, fmt.Errorf("read c file: %w", err)
	}
	return name, data, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "cfront: %s\n", err)
		os.Exit(1)
	}
}
