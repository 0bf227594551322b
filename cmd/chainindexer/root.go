package main

import (
	"github.com/spf13/cobra"

	"chain-lens/internal/config"
)

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chainindexer",
		Short: "chainindexer decodes and resolves a Bitcoin block directory",
	}

	if err := config.BindFlags(cmd.PersistentFlags(), v); err != nil {
		panic(err)
	}

	cmd.AddCommand(ingestCmd(), serveCmd())
	return cmd
}
