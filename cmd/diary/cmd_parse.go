package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/diary/format"
)

func newParseCmd(opts *globalOptions) *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "parse [file...]",
		Short: "Parse diaries and dump the result",
		Long: `Parse one or more diary files and write them to stdout.

Files are parsed concurrently and written in argument order. Without a
file, or with "-", the diary is read from stdin.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := parseAll(args, opts.vocab)
			if err != nil {
				return err
			}

			var encoder format.Encoder
			switch outputFormat {
			case "json":
				encoder = format.NewJSONEncoder(os.Stdout)
			case "text":
				encoder = format.NewTextEncoder(os.Stdout)
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}

			for _, r := range results {
				if r.err != nil {
					if err := format.WriteDiagnostic(os.Stderr, r.err, r.source); err != nil {
						return fmt.Errorf("write diagnostic: %w", err)
					}
					continue
				}
				if err := encoder.Encode(r.doc); err != nil {
					return fmt.Errorf("encode: %w", err)
				}
			}
			if failed := countFailures(results); failed > 0 {
				return failureError(failed, len(results))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "output format (json, text)")

	return cmd
}
