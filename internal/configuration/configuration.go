package configuration

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"github.com/nostromo/mother/internal/file"
)

var defaultConfig = Config{
	Database:       "~/.config/mother/mother.db",
	LogFile:        "/tmp/mother-debug.log",
	RequestTimeout: 60,

	Terminal: &TerminalConfig{
		RevealIntervalMs:          30,
		AcknowledgementIntervalMs: 20,
		BootRevealIntervalMs:      15,
		BootIntervalMs:            800,
		ReplyLatencyMs:            1000,
	},

	Server: &ServerConfig{
		Address: "127.0.0.1:8037",
	},
}

// Config holds configuration for the mother tool.
type Config struct {
	// Path of the sqlite database holding persisted settings.
	Database string `json:"database"`
	// Debug log destination. The terminal UI owns stdout so we never log there.
	LogFile string `json:"log_file"`
	// Timeout for a single provider request, in seconds.
	RequestTimeout int `json:"request_timeout"`

	Terminal *TerminalConfig `json:"terminal"`
	Server   *ServerConfig   `json:"server"`
}

// TerminalConfig holds the pacing of the console.
type TerminalConfig struct {
	// Delay between two revealed characters of a standard reply.
	RevealIntervalMs int `json:"reveal_interval_ms"`
	// Delay between two revealed characters of an acknowledgement.
	AcknowledgementIntervalMs int `json:"acknowledgement_interval_ms"`
	// Delay between two revealed characters of a boot announcement.
	BootRevealIntervalMs int `json:"boot_reveal_interval_ms"`
	// Delay between two boot announcements.
	BootIntervalMs int `json:"boot_interval_ms"`
	// Artificial "thinking" delay before a provider reply is revealed.
	ReplyLatencyMs int `json:"reply_latency_ms"`
}

// ServerConfig holds configuration for mother serve.
type ServerConfig struct {
	Address string `json:"address"`
}

// Default returns a copy of the default configuration.
func Default() *Config {
	config := defaultConfig
	terminal := *defaultConfig.Terminal
	server := *defaultConfig.Server
	config.Terminal = &terminal
	config.Server = &server
	return &config
}

// Parse a configuration file.
func Parse(path string) (*Config, error) {
	path, err := file.ExpandPath(path)
	if err != nil {
		return nil, errors.Wrap(err, "expanding path")
	}

	if err := initializeIfNotPresent(path); err != nil {
		return nil, errors.Wrap(err, "initializing configuration")
	}
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading file")
	}

	// Unmarshal over the defaults so older files pick up new fields.
	config := Default()
	if err = json.Unmarshal(bytes, config); err != nil {
		return nil, errors.Wrap(err, "unmarshaling into config")
	}

	expandedDatabasePath, err := file.ExpandPath(config.Database)
	if err != nil {
		return nil, errors.Wrap(err, "expanding database path")
	}
	config.Database = expandedDatabasePath

	expandedLogFilePath, err := file.ExpandPath(config.LogFile)
	if err != nil {
		return nil, errors.Wrap(err, "expanding log file path")
	}
	config.LogFile = expandedLogFilePath
	return config, nil
}

// LoadEnvironment loads the given .env files into the process environment.
// Missing files are skipped; variables already set are never overridden.
func LoadEnvironment(paths ...string) error {
	for _, path := range paths {
		exists, err := file.Exists(path)
		if err != nil {
			return err
		}
		if !exists {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return errors.Wrapf(err, "loading %s", path)
		}
	}
	return nil
}

// RequestTimeoutDuration returns the provider request timeout.
func (c *Config) RequestTimeoutDuration() time.Duration {
	return time.Duration(c.RequestTimeout) * time.Second
}

// RevealInterval of a standard reply.
func (c *TerminalConfig) RevealInterval() time.Duration {
	return milliseconds(c.RevealIntervalMs)
}

// AcknowledgementInterval of an acknowledgement reply.
func (c *TerminalConfig) AcknowledgementInterval() time.Duration {
	return milliseconds(c.AcknowledgementIntervalMs)
}

// BootRevealInterval of a boot announcement.
func (c *TerminalConfig) BootRevealInterval() time.Duration {
	return milliseconds(c.BootRevealIntervalMs)
}

// BootInterval between two boot announcements.
func (c *TerminalConfig) BootInterval() time.Duration {
	return milliseconds(c.BootIntervalMs)
}

// ReplyLatency before a provider reply starts revealing.
func (c *TerminalConfig) ReplyLatency() time.Duration {
	return milliseconds(c.ReplyLatencyMs)
}

func milliseconds(value int) time.Duration {
	return time.Duration(value) * time.Millisecond
}

// save a configuration file.
func (c *Config) save(path string) error {
	bytes, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}

	err = os.WriteFile(path, bytes, 0644)
	if err != nil {
		return errors.Wrap(err, "writing file")
	}

	return nil
}

// initializeIfNotPresent initializes a config if it does not exist.
func initializeIfNotPresent(path string) error {
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return nil
	}

	// Create the directories.
	dir, _ := filepath.Split(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, "creating folders")
	}

	if err := Default().save(path); err != nil {
		return errors.Wrap(err, "saving default config")
	}
	return nil
}
