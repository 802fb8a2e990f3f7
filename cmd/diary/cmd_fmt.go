package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/diary/format"
	"github.com/dhamidi/diary/parser"
)

func newFmtCmd(opts *globalOptions) *cobra.Command {
	var fmtOverwrite bool

	cmd := &cobra.Command{
		Use:   "fmt [file]",
		Short: "Rewrite a diary in canonical form",
		Long: `Print a diary in canonical form to stdout.

Meal labels are written on their own line, entries are indented by two
spaces and days are separated by a blank line. If no file is provided,
reads the diary from stdin.

Use -w to overwrite the file in place (requires a file argument).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := "-"
			if len(args) == 1 {
				name = args[0]
			} else if fmtOverwrite {
				return fmt.Errorf("-w requires a file argument")
			}

			source, err := readSource(name)
			if err != nil {
				return err
			}
			file := name
			if name == "-" {
				file = "<stdin>"
			}
			p := parser.New(parser.WithFile(file), parser.WithVocabulary(opts.vocab))
			doc, err := p.Document(source)
			if err != nil {
				if werr := format.WriteDiagnostic(os.Stderr, err, source); werr != nil {
					return fmt.Errorf("write diagnostic: %w", werr)
				}
				return fmt.Errorf("format: %s has errors", file)
			}

			var buf bytes.Buffer
			if err := format.NewTextEncoder(&buf).Encode(doc); err != nil {
				return fmt.Errorf("format: %w", err)
			}
			output := buf.Bytes()

			if fmtOverwrite {
				if string(output) == source {
					log.Debugf("%s already formatted", name)
					return nil
				}
				return os.WriteFile(name, output, 0644)
			}
			_, err = os.Stdout.Write(output)
			return err
		},
	}

	cmd.Flags().BoolVarP(&fmtOverwrite, "write", "w", false, "overwrite the file in place")

	return cmd
}
