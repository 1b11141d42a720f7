package utils

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ─── Sensor-level configs ───────────────────────────────────────────────

const (
	SourceSimulate = "simulate"
	SourceSerial   = "serial"
)

type MotionConfig struct {
	Source           string `yaml:"source"` // simulate | serial
	UpdateIntervalMs int    `yaml:"update_interval_ms"`
	LiveCapacity     int    `yaml:"live_capacity"`
	SerialPort       string `yaml:"serial_port"`
	BaudRate         int    `yaml:"baud_rate"`
}

// UpdateInterval is the nominal delivery period requested from the source.
func (m MotionConfig) UpdateInterval() time.Duration {
	return time.Duration(m.UpdateIntervalMs) * time.Millisecond
}

type SimulationConfig struct {
	DurationSeconds int   `yaml:"duration_seconds"`
	Seed            int64 `yaml:"seed"`
}

// SensorsConfig is the top-level structure for sensors.yaml.
type SensorsConfig struct {
	Motion     MotionConfig     `yaml:"motion"`
	Simulation SimulationConfig `yaml:"simulation"`
}

// ─── Network configs ────────────────────────────────────────────────────

type UploadConfig struct {
	Endpoint       string `yaml:"endpoint"`
	DeviceID       string `yaml:"device_id"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

func (u UploadConfig) Timeout() time.Duration {
	return time.Duration(u.TimeoutSeconds) * time.Second
}

type TelemetryConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Broker      string `yaml:"broker"`
	ClientID    string `yaml:"client_id"`
	TopicPrefix string `yaml:"topic_prefix"`
}

type LiveConfig struct {
	ListenAddr string `yaml:"listen_addr"`
}

type CollectorConfig struct {
	ListenAddr          string `yaml:"listen_addr"`
	DBPath              string `yaml:"db_path"`
	ReadTimeoutSeconds  int    `yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds int    `yaml:"write_timeout_seconds"`
}

// NetworkConfig is the top-level structure for network.yaml.
type NetworkConfig struct {
	Upload    UploadConfig    `yaml:"upload"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Live      LiveConfig      `yaml:"live"`
	Collector CollectorConfig `yaml:"collector"`
}

// ─── Defaults ───────────────────────────────────────────────────────────

func (c *SensorsConfig) applyDefaults() {
	if c.Motion.Source == "" {
		c.Motion.Source = SourceSimulate
	}
	if c.Motion.UpdateIntervalMs <= 0 {
		c.Motion.UpdateIntervalMs = 10
	}
	if c.Motion.LiveCapacity <= 0 {
		c.Motion.LiveCapacity = 50
	}
	if c.Motion.BaudRate <= 0 {
		c.Motion.BaudRate = 115200
	}
}

func (c *SensorsConfig) validate() error {
	switch c.Motion.Source {
	case SourceSimulate:
	case SourceSerial:
		if c.Motion.SerialPort == "" {
			return fmt.Errorf("motion.serial_port is required when motion.source=%s", SourceSerial)
		}
	default:
		return fmt.Errorf("motion.source must be %q or %q, got %q", SourceSimulate, SourceSerial, c.Motion.Source)
	}
	return nil
}

func (c *NetworkConfig) applyDefaults() {
	if c.Upload.DeviceID == "" {
		c.Upload.DeviceID = "watch1234"
	}
	if c.Upload.TimeoutSeconds <= 0 {
		c.Upload.TimeoutSeconds = 60
	}
	if c.Telemetry.ClientID == "" {
		c.Telemetry.ClientID = "speedsense-logger"
	}
	if c.Telemetry.TopicPrefix == "" {
		c.Telemetry.TopicPrefix = "speedsense/live"
	}
	if c.Collector.ListenAddr == "" {
		c.Collector.ListenAddr = ":8080"
	}
	if c.Collector.DBPath == "" {
		c.Collector.DBPath = "data/speedsense.db"
	}
	if c.Collector.ReadTimeoutSeconds <= 0 {
		c.Collector.ReadTimeoutSeconds = 15
	}
	if c.Collector.WriteTimeoutSeconds <= 0 {
		c.Collector.WriteTimeoutSeconds = 15
	}
}

func (c *NetworkConfig) validate() error {
	if c.Telemetry.Enabled && c.Telemetry.Broker == "" {
		return fmt.Errorf("telemetry.broker is required when telemetry is enabled")
	}
	return nil
}

// ─── Loaders ────────────────────────────────────────────────────────────

// LoadSensorsConfig reads and parses sensors.yaml.
func LoadSensorsConfig(path string) (*SensorsConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sensors config: %w", err)
	}
	return ParseSensorsConfig(data)
}

// ParseSensorsConfig parses sensors.yaml content and fills in defaults.
func ParseSensorsConfig(data []byte) (*SensorsConfig, error) {
	var cfg SensorsConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse sensors config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid sensors config: %w", err)
	}
	return &cfg, nil
}

// LoadNetworkConfig reads and parses network.yaml.
func LoadNetworkConfig(path string) (*NetworkConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read network config: %w", err)
	}
	return ParseNetworkConfig(data)
}

// ParseNetworkConfig parses network.yaml content and fills in defaults.
func ParseNetworkConfig(data []byte) (*NetworkConfig, error) {
	var cfg NetworkConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse network config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid network config: %w", err)
	}
	return &cfg, nil
}
