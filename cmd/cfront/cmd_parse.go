package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/cfront/c/parser"
	"github.com/dhamidi/cfront/format"
)

func newParseCmd(g *globalOptions) *cobra.Command {
	var outputFormat string
	var expr bool
	var decl bool
	var typedefs []string
	var positions bool

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a C file and dump the syntax tree",
		Long: `Parse a C file and dump the syntax tree.

By default the input is a sequence of declarations and expression
statements. With --expr it is a single expression, with --decl a single
declaration. Use "-" to read standard input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if expr && decl {
				return errors.New("--expr and --decl are mutually exclusive")
			}

			enc, err := format.NewNodeEncoder(outputFormat, cmd.OutOrStdout(), positions)
			if err != nil {
				return err
			}

			name, r, err := openSource(cmd, args[0])
			if err != nil {
				return err
			}
			defer r.Close()

			opts := []parser.Option{
				parser.WithFile(name),
				parser.WithTypedefNames(g.cfg.Typedefs...),
				parser.WithTypedefNames(typedefs...),
			}
			var p *parser.Parser
			switch {
			case expr:
				p = parser.ParseExpression(r, opts...)
			case decl:
				p = parser.ParseDeclaration(r, opts...)
			default:
				p = parser.ParseUnit(r, opts...)
			}

			node, err := p.Finish()
			var perr *parser.Error
			if err != nil && !errors.As(err, &perr) {
				return err
			}
			if node != nil {
				if err := enc.Encode(node); err != nil {
					return fmt.Errorf("encode: %w", err)
				}
			}
			return g.reportDiagnostics(cmd, p.Diagnostics().All())
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "tree", "output format (tree, json)")
	cmd.Flags().BoolVar(&expr, "expr", false, "parse a single expression")
	cmd.Flags().BoolVar(&decl, "decl", false, "parse a single declaration")
	cmd.Flags().StringSliceVarP(&typedefs, "typedef", "t", nil, "identifier to treat as a typedef name (repeatable)")
	cmd.Flags().BoolVar(&positions, "positions", false, "include source spans in tree output")

	return cmd
}
