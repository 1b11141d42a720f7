package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"speedsense/services/collector"
	"speedsense/services/store"
	"speedsense/utils"
)

func newCollectCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "collect",
		Short: "Run the upload collector (HTTP + SQLite)",
		RunE: func(_ *cobra.Command, _ []string) error {
			networkCfg, err := utils.LoadNetworkConfig(f.networkPath)
			if err != nil {
				utils.L().Fatal("load network config: %v", err)
			}
			cfg := networkCfg.Collector

			db, err := store.Open(cfg.DBPath)
			if err != nil {
				return err
			}
			defer db.Close()

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv := collector.NewServer(collector.Params{
				Addr:         cfg.ListenAddr,
				Store:        db,
				ReadTimeout:  time.Duration(cfg.ReadTimeoutSeconds) * time.Second,
				WriteTimeout: time.Duration(cfg.WriteTimeoutSeconds) * time.Second,
			})
			return srv.Run(ctx)
		},
	}
}
