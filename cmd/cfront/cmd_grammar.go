package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/cfront/c/parser"
	"github.com/dhamidi/cfront/grammar"
)

func newGrammarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grammar",
		Short: "Reference grammar tools",
	}

	cmd.AddCommand(newGrammarCheckCmd())
	cmd.AddCommand(newGrammarShowCmd())
	cmd.AddCommand(newGrammarLexCmd())

	return cmd
}

func newGrammarCheckCmd() *cobra.Command {
	var startProduction string

	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Parse and verify an EBNF grammar file, or the built-in grammar",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := "c.ebnf"
			var r io.Reader = bytes.NewReader(grammar.Source())
			start := grammar.Start

			if len(args) == 1 {
				filename = args[0]
				f, err := os.Open(filename)
				if err != nil {
					return fmt.Errorf("open file: %w", err)
				}
				defer f.Close()
				r = f
				start = ""
			}
			if cmd.Flags().Changed("start") {
				start = startProduction
			}

			g, err := grammar.Check(filename, r, start)
			if err != nil {
				printErrors(cmd.OutOrStdout(), err)
				return fmt.Errorf("%s: %d errors", filename, len(grammar.Errors(err)))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d productions ok\n", filename, len(g))
			return nil
		},
	}

	cmd.Flags().StringVar(&startProduction, "start", "", "start production for verification (if empty, only checks syntax)")

	return cmd
}

func newGrammarShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the built-in grammar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := cmd.OutOrStdout().Write(grammar.Source())
			return err
		},
	}
}

func newGrammarLexCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lex <file>",
		Short: "Check identifier and literal tokens of a C file against the grammar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := grammar.Load()
			if err != nil {
				return err
			}
			name, data, err := readSource(cmd, args[0])
			if err != nil {
				return err
			}

			tokens := parser.Tokenize(parser.NewSourceFile(name, data), nil, false, false)
			mismatches, err := grammar.CrossCheck(g, tokens)
			if err != nil {
				return err
			}
			for _, m := range mismatches {
				fmt.Fprintln(cmd.OutOrStdout(), m)
			}
			if len(mismatches) > 0 {
				return fmt.Errorf("%d tokens disagree with the grammar", len(mismatches))
			}
			return nil
		},
	}
}

func printErrors(w io.Writer, err error) {
	for _, e := range grammar.Errors(err) {
		fmt.Fprintln(w, e)
	}
}
