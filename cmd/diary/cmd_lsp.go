package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/diary/lsp"
)

func newLSPCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		RunE: func(cmd *cobra.Command, args []string) error {
			server := lsp.NewServer(version, opts.vocab)
			return server.RunStdio()
		},
	}
}
