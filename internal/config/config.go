// Package config provides the configuration structure for the velvet-whisper
// service.
package config

import (
	"fmt"

	"github.com/book-expert/configurator"
	"github.com/book-expert/logger"
)

// Defaults applied when the TOML omits a value.
const (
	DefaultListenAddr         = ":8080"
	DefaultTextModel          = "gemini-2.5-flash"
	DefaultImageModel         = "gemini-2.5-flash-image"
	DefaultSpeechModel        = "gemini-2.5-flash-preview-tts"
	DefaultSampleRate         = 24000
	DefaultChannels           = 1
	DefaultCallTimeoutSeconds = 120
)

// ServerConfig holds the HTTP listener configuration.
type ServerConfig struct {
	ListenAddr string `toml:"listen_addr"`
}

// ProviderConfig selects the hosted provider models and per-call bounds. The
// narration audio format is fixed by the speech model: headerless mono PCM16
// at the configured sample rate.
type ProviderConfig struct {
	TextModel          string `toml:"text_model"`
	ImageModel         string `toml:"image_model"`
	SpeechModel        string `toml:"speech_model"`
	SampleRate         int    `toml:"sample_rate"`
	Channels           int    `toml:"channels"`
	CallTimeoutSeconds int    `toml:"call_timeout_seconds"`
}

// PathsConfig holds the configuration for file paths.
type PathsConfig struct {
	BaseLogsDir string `toml:"base_logs_dir"`
	DataDir     string `toml:"data_dir"`
}

// Config is the root configuration structure.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Provider ProviderConfig `toml:"provider"`
	Paths    PathsConfig    `toml:"paths"`
}

// Load loads the configuration for the service and fills defaults for any
// omitted values.
func Load(log *logger.Logger) (*Config, error) {
	var cfg Config

	err := configurator.Load(&cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration from configurator: %w", err)
	}

	cfg.ApplyDefaults()

	return &cfg, nil
}

// ApplyDefaults fills every zero-valued field with its default.
func (c *Config) ApplyDefaults() {
	if c.Server.ListenAddr == "" {
		c.Server.ListenAddr = DefaultListenAddr
	}

	if c.Provider.TextModel == "" {
		c.Provider.TextModel = DefaultTextModel
	}

	if c.Provider.ImageModel == "" {
		c.Provider.ImageModel = DefaultImageModel
	}

	if c.Provider.SpeechModel == "" {
		c.Provider.SpeechModel = DefaultSpeechModel
	}

	if c.Provider.SampleRate <= 0 {
		c.Provider.SampleRate = DefaultSampleRate
	}

	if c.Provider.Channels <= 0 {
		c.Provider.Channels = DefaultChannels
	}

	if c.Provider.CallTimeoutSeconds <= 0 {
		c.Provider.CallTimeoutSeconds = DefaultCallTimeoutSeconds
	}
}
