package config

import (
	"time"

	"github.com/flowgate/flowgate/pkg/logger"
)

// Config is the full application configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"   validate:"required"`
	Database DatabaseConfig `koanf:"database" validate:"required"`
	Temporal TemporalConfig `koanf:"temporal" validate:"required"`
	Log      LogConfig      `koanf:"log"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host string `koanf:"host" validate:"required"`
	Port int    `koanf:"port" validate:"min=1,max=65535"`
}

// DatabaseConfig contains PostgreSQL connection settings.
type DatabaseConfig struct {
	ConnString string `koanf:"conn_string"`
	Host       string `koanf:"host"`
	Port       string `koanf:"port"`
	User       string `koanf:"user"`
	Password   string `koanf:"password"`
	Name       string `koanf:"name"`
	SSLMode    string `koanf:"ssl_mode"`
}

// TemporalConfig contains workflow engine connection settings.
type TemporalConfig struct {
	HostPort  string `koanf:"host_port"  validate:"required"`
	Namespace string `koanf:"namespace"  validate:"required"`
	TaskQueue string `koanf:"task_queue" validate:"required"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level      logger.LogLevel `koanf:"level"       validate:"oneof=debug info warn error disabled"`
	JSON       bool            `koanf:"json"`
	AddSource  bool            `koanf:"add_source"`
	TimeFormat string          `koanf:"time_format"`
}

// Default returns the configuration defaults; sources loaded on top of it
// override per key.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 5001,
		},
		Database: DatabaseConfig{
			Host:    "localhost",
			Port:    "5432",
			User:    "postgres",
			Name:    "flowgate",
			SSLMode: "disable",
		},
		Temporal: TemporalConfig{
			HostPort:  "localhost:7233",
			Namespace: "default",
			TaskQueue: "flowgate",
		},
		Log: LogConfig{
			Level:      logger.InfoLevel,
			TimeFormat: time.Kitchen,
		},
	}
}
