package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"chain-lens/internal/ingest"
	"chain-lens/internal/logging"
	"chain-lens/internal/snapshot"
)

func ingestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ingest",
		Short: "decode the block directory and persist a resolved-chain snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()

			logger, err := logging.New(cfg.LogLevel)
			if err != nil {
				return err
			}
			defer logger.Sync()

			result, err := ingest.Run(cfg.BlockDir, logger)
			if err != nil {
				return err
			}
			if !result.Resolved.Found {
				return fmt.Errorf("no chain reachable from genesis in %s", cfg.BlockDir)
			}

			db, err := snapshot.Open(cfg.SnapshotPath)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := snapshot.SaveResult(db, result.Store, result.Resolved); err != nil {
				return err
			}

			fmt.Printf("resolved tip %s at height %d\n",
				result.Resolved.TipHash.String(), result.Resolved.TipHeight)
			return nil
		},
	}
}
