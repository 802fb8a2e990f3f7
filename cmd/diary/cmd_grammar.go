package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/diary/grammar"
)

func newGrammarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grammar",
		Short: "Diary grammar tools",
	}

	cmd.AddCommand(newGrammarShowCmd())
	cmd.AddCommand(newGrammarCheckCmd())

	return cmd
}

func newGrammarShowCmd() *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the diary grammar in EBNF",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !list {
				_, err := fmt.Fprint(os.Stdout, grammar.Source)
				return err
			}
			g, err := grammar.Load()
			if err != nil {
				return err
			}
			fmt.Println(strings.Join(grammar.Productions(g), "\n"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&list, "productions", false, "list production names only")

	return cmd
}

func newGrammarCheckCmd() *cobra.Command {
	var startProduction string

	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Parse and verify an EBNF grammar file",
		Long: `Parse and verify an EBNF grammar file.

Without a file the built-in diary grammar is checked.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if len(args) == 0 {
				_, err = grammar.Check("diary.ebnf", strings.NewReader(grammar.Source), startProduction)
			} else {
				filename := args[0]
				f, openErr := os.Open(filename)
				if openErr != nil {
					return fmt.Errorf("open file: %w", openErr)
				}
				defer f.Close()
				_, err = grammar.Check(filename, f, startProduction)
			}
			if err != nil {
				for _, e := range grammar.Errors(err) {
					fmt.Println(e)
				}
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&startProduction, "start", grammar.Start, "start production for verification (if empty, only checks syntax)")

	return cmd
}
