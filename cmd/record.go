package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"speedsense/controller"
	"speedsense/models"
	"speedsense/services/upload"
	"speedsense/utils"
)

func newRecordCmd(f *rootFlags) *cobra.Command {
	var (
		duration  time.Duration
		exportDir string
		noUpload  bool
	)

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record a session, then upload both sensor streams",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sensorsCfg, networkCfg, err := loadConfigs(f)
			if err != nil {
				utils.L().Fatal("load config: %v", err)
			}
			if duration <= 0 && sensorsCfg.Simulation.DurationSeconds > 0 {
				duration = time.Duration(sensorsCfg.Simulation.DurationSeconds) * time.Second
			}
			return runRecord(cmd, sensorsCfg, networkCfg, duration, exportDir, noUpload)
		},
	}
	cmd.Flags().DurationVar(&duration, "duration", 0, "stop recording after this long (default: until Ctrl+C)")
	cmd.Flags().StringVar(&exportDir, "export-dir", "", "also write the recorded streams as CSV into this directory")
	cmd.Flags().BoolVar(&noUpload, "no-upload", false, "skip the upload step")
	return cmd
}

func runRecord(cmd *cobra.Command, sensorsCfg *utils.SensorsConfig, networkCfg *utils.NetworkConfig,
	duration time.Duration, exportDir string, noUpload bool) error {

	sigCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	runCtx, cancelRun := context.WithCancel(context.Background())

	p := buildPipeline(runCtx, sensorsCfg, networkCfg)
	defer func() {
		cancelRun()
		p.close()
	}()

	uploader := upload.NewUploader(upload.Params{
		DeviceID: networkCfg.Upload.DeviceID,
		Timeout:  networkCfg.Upload.Timeout(),
	})
	rec := controller.NewRecordingController(controller.RecordingParams{
		Source:   p.source,
		Session:  p.session,
		Queue:    p.queue,
		Uploader: uploader,
		Endpoint: networkCfg.Upload.Endpoint,
		Interval: sensorsCfg.Motion.UpdateInterval(),
	})

	for _, k := range models.SensorKinds {
		if err := p.sensors.StartLiveUpdates(k); err != nil {
			return err
		}
	}
	if err := rec.StartRecording(); err != nil {
		return err
	}

	waitCtx := sigCtx
	if duration > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(sigCtx, duration)
		defer cancel()
		utils.L().Info("recording will auto-stop after %s", duration)
	}
	utils.L().Info("status: %s  (Ctrl+C to stop)", rec.Status())

	statsTicker := time.NewTicker(5 * time.Second)
	defer statsTicker.Stop()
	for waiting := true; waiting; {
		select {
		case <-waitCtx.Done():
			waiting = false
		case <-statsTicker.C:
			utils.L().Info("── stats ─────────────────────────")
			p.logStats()
			utils.L().Info("──────────────────────────────────")
		}
	}

	if err := rec.StopRecording(); err != nil {
		return err
	}
	utils.L().Info("status: %s", rec.Status())
	p.logStats()

	if exportDir != "" {
		if err := os.MkdirAll(exportDir, 0755); err != nil {
			return fmt.Errorf("create export dir: %w", err)
		}
		if err := rec.ExportCSV(exportDir); err != nil {
			return err
		}
	}

	if noUpload {
		return nil
	}

	results, err := rec.UploadAll(context.Background())
	if err != nil {
		return err
	}
	utils.L().Info("status: %s", rec.Status())

	failed := 0
	for res := range results {
		if !res.OK() {
			failed++
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), res.String())
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d uploads failed", failed, len(models.SensorKinds))
	}
	return nil
}
