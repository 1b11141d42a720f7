package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"speedsense/models"
	"speedsense/utils"
)

func newLiveCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "live",
		Short: "Stream the live sensor windows without recording",
		RunE: func(_ *cobra.Command, _ []string) error {
			sensorsCfg, networkCfg, err := loadConfigs(f)
			if err != nil {
				utils.L().Fatal("load config: %v", err)
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			p := buildPipeline(ctx, sensorsCfg, networkCfg)
			defer p.close()

			for _, k := range models.SensorKinds {
				if err := p.sensors.StartLiveUpdates(k); err != nil {
					stop()
					return err
				}
			}
			utils.L().Info("live updates running  (ws=%q, telemetry=%v)  press Ctrl+C to stop",
				networkCfg.Live.ListenAddr, networkCfg.Telemetry.Enabled)

			statsTicker := time.NewTicker(5 * time.Second)
			defer statsTicker.Stop()
			for {
				select {
				case <-ctx.Done():
					utils.L().Info("shutting down…")
					return nil
				case <-statsTicker.C:
					p.logStats()
				}
			}
		},
	}
}
