package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"speedsense/utils"
)

// rootFlags are shared by every subcommand.
type rootFlags struct {
	sensorsPath string
	networkPath string
	logFile     string
	logLevel    string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var f rootFlags

	root := &cobra.Command{
		Use:           "speedsense",
		Short:         "Wrist motion logger and upload collector",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			lvl, err := utils.ParseLevel(f.logLevel)
			if err != nil {
				return err
			}
			utils.InitLogger(lvl, f.logFile)

			utils.L().Info("═══════════════════════════════════════════════════")
			utils.L().Info("  SpeedSense  ·  %s", cmd.Name())
			utils.L().Info("  GOMAXPROCS=%d  ·  PID=%d", runtime.GOMAXPROCS(0), os.Getpid())
			utils.L().Info("═══════════════════════════════════════════════════")
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			utils.L().Close()
		},
	}
	root.PersistentFlags().StringVar(&f.sensorsPath, "sensors", "config/sensors.yaml", "path to sensors.yaml")
	root.PersistentFlags().StringVar(&f.networkPath, "network", "config/network.yaml", "path to network.yaml")
	root.PersistentFlags().StringVar(&f.logFile, "log", "", "optional log file path (stdout is always included)")
	root.PersistentFlags().StringVar(&f.logLevel, "log-level", "info", "debug|info|warn|error")

	root.AddCommand(newRecordCmd(&f))
	root.AddCommand(newLiveCmd(&f))
	root.AddCommand(newCollectCmd(&f))
	return root
}

func loadConfigs(f *rootFlags) (*utils.SensorsConfig, *utils.NetworkConfig, error) {
	sensorsCfg, err := utils.LoadSensorsConfig(f.sensorsPath)
	if err != nil {
		return nil, nil, err
	}
	networkCfg, err := utils.LoadNetworkConfig(f.networkPath)
	if err != nil {
		return nil, nil, err
	}
	return sensorsCfg, networkCfg, nil
}
