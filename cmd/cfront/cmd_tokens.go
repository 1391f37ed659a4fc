package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/cfront/c/parser"
	"github.com/dhamidi/cfront/format"
)

func newTokensCmd(g *globalOptions) *cobra.Command {
	var outputFormat string
	var whitespace bool
	var comments bool

	cmd := &cobra.Command{
		Use:   "tokens <file>",
		Short: "Lex a C file and dump its tokens",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("whitespace") {
				whitespace = g.cfg.IncludeWhitespace
			}
			if !cmd.Flags().Changed("comments") {
				comments = g.cfg.IncludeComments
			}

			enc, err := format.NewTokenEncoder(cmd.OutOrStdout(), outputFormat)
			if err != nil {
				return err
			}

			name, data, err := readSource(cmd, args[0])
			if err != nil {
				return err
			}

			diags := parser.NewDiagnostics()
			tokens := parser.Tokenize(parser.NewSourceFile(name, data), diags, whitespace, comments)
			if err := enc.Encode(tokens); err != nil {
				return fmt.Errorf("encode tokens: %w", err)
			}
			return g.reportDiagnostics(cmd, diags.All())
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format (text, json)")
	cmd.Flags().BoolVar(&whitespace, "whitespace", false, "include whitespace tokens")
	cmd.Flags().BoolVar(&comments, "comments", false, "include comment tokens")

	return cmd
}
