package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseSensorsConfig_Defaults(t *testing.T) {
	cfg, err := ParseSensorsConfig([]byte("motion: {}\n"))
	require.NoError(t, err)
	require.Equal(t, SourceSimulate, cfg.Motion.Source)
	require.Equal(t, 10*time.Millisecond, cfg.Motion.UpdateInterval())
	require.Equal(t, 50, cfg.Motion.LiveCapacity)
	require.Equal(t, 115200, cfg.Motion.BaudRate)
}

func TestParseSensorsConfig_SerialNeedsPort(t *testing.T) {
	_, err := ParseSensorsConfig([]byte("motion:\n  source: serial\n"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "serial_port")

	cfg, err := ParseSensorsConfig([]byte("motion:\n  source: serial\n  serial_port: /dev/ttyACM0\n"))
	require.NoError(t, err)
	require.Equal(t, "/dev/ttyACM0", cfg.Motion.SerialPort)
}

func TestParseSensorsConfig_UnknownSource(t *testing.T) {
	_, err := ParseSensorsConfig([]byte("motion:\n  source: bluetooth\n"))
	require.Error(t, err)
}

func TestParseNetworkConfig_Defaults(t *testing.T) {
	cfg, err := ParseNetworkConfig([]byte("upload:\n  endpoint: http://example.com/data\n"))
	require.NoError(t, err)
	require.Equal(t, "http://example.com/data", cfg.Upload.Endpoint)
	require.Equal(t, "watch1234", cfg.Upload.DeviceID)
	require.Equal(t, 60*time.Second, cfg.Upload.Timeout())
	require.Equal(t, ":8080", cfg.Collector.ListenAddr)
	require.Equal(t, "speedsense/live", cfg.Telemetry.TopicPrefix)
	require.False(t, cfg.Telemetry.Enabled)
}

func TestParseNetworkConfig_TelemetryNeedsBroker(t *testing.T) {
	_, err := ParseNetworkConfig([]byte("telemetry:\n  enabled: true\n"))
	require.Error(t, err)
}

func TestLoadConfigs_FromDisk(t *testing.T) {
	dir := t.TempDir()
	sensorsPath := filepath.Join(dir, "sensors.yaml")
	require.NoError(t, os.WriteFile(sensorsPath, []byte("motion:\n  update_interval_ms: 20\n"), 0o644))

	cfg, err := LoadSensorsConfig(sensorsPath)
	require.NoError(t, err)
	require.Equal(t, 20*time.Millisecond, cfg.Motion.UpdateInterval())

	_, err = LoadNetworkConfig(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "read network config")
}

func TestParseConfig_BadYAML(t *testing.T) {
	_, err := ParseSensorsConfig([]byte("motion: [unterminated"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "parse sensors config")
}
