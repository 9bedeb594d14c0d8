package config

import "log/slog"

// Config is the docaudit server configuration.
type Config struct {
	Server ServerConfig `mapstructure:"server" yaml:"server"`
	Limits LimitsConfig `mapstructure:"limits" yaml:"limits"`
	Log    LogConfig    `mapstructure:"log" yaml:"log"`
}

// ServerConfig holds the HTTP listen settings.
type ServerConfig struct {
	Host string `mapstructure:"host" yaml:"host"`
	Port string `mapstructure:"port" yaml:"port"`
}

// LimitsConfig bounds the transport surface.
type LimitsConfig struct {
	// MaxUploadMB caps the size of one uploaded document in megabytes.
	MaxUploadMB int `mapstructure:"max_upload_mb" yaml:"max_upload_mb"`
}

// LogConfig controls structured logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `mapstructure:"level" yaml:"level"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: "8080",
		},
		Limits: LimitsConfig{
			MaxUploadMB: 50,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// MaxUploadBytes returns the upload cap in bytes.
func (c *Config) MaxUploadBytes() int64 {
	mb := c.Limits.MaxUploadMB
	if mb <= 0 {
		mb = DefaultConfig().Limits.MaxUploadMB
	}
	return int64(mb) << 20
}

// SlogLevel maps the configured level to a slog.Level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch c.Log.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
