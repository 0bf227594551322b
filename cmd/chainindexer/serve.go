package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"chain-lens/internal/httpapi"
	"chain-lens/internal/ingest"
	"chain-lens/internal/logging"
	"chain-lens/internal/snapshot"
	"chain-lens/pkg/query"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "serve the query API over HTTP, ingesting the block directory only if no snapshot exists",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()

			logger, err := logging.New(cfg.LogLevel)
			if err != nil {
				return err
			}
			defer logger.Sync()

			db, err := snapshot.Open(cfg.SnapshotPath)
			if err != nil {
				return err
			}
			defer db.Close()

			store, resolved, hit, err := snapshot.LoadResult(db)
			if err != nil {
				return err
			}

			if hit {
				logger.Info("loaded snapshot, skipping ingest",
					zap.String("tip_hash", resolved.TipHash.String()),
					zap.Int32("tip_height", resolved.TipHeight),
				)
			} else {
				result, err := ingest.Run(cfg.BlockDir, logger)
				if err != nil {
					return err
				}
				store, resolved = result.Store, result.Resolved
				if err := snapshot.SaveResult(db, store, resolved); err != nil {
					return err
				}
			}

			svc := query.New(store, resolved)
			router := httpapi.NewRouter(svc, logger)

			logger.Info("listening", zap.String("addr", cfg.BindAddr))
			return router.Run(cfg.BindAddr)
		},
	}
}
