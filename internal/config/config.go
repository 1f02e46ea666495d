package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config aggregates application configuration values.
type Config struct {
	HTTP    HTTPConfig
	Source  SourceConfig
	Reader  ReaderConfig
	Graph   GraphConfig
	Logging LoggingConfig
}

// HTTPConfig governs HTTP server behaviour.
type HTTPConfig struct {
	Host              string
	Port              int
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
	AllowedOriginsCSV string
}

// SourceConfig selects where the community export comes from.
type SourceConfig struct {
	Kind string // reader|graph|file
	File string
}

// ReaderConfig describes the data reader service the reader source pulls from.
type ReaderConfig struct {
	BaseURL string
	Secret  string
	Timeout time.Duration
}

// GraphConfig describes connectivity to the graph store (Neptune/Neo4j).
type GraphConfig struct {
	URI            string
	Database       string
	Username       string
	Password       string
	MaxConnections int
}

// LoggingConfig controls structured logging settings.
type LoggingConfig struct {
	Level         string
	Format        string // text|json
	IncludeCaller bool
}

// Source kinds accepted by DATA_SOURCE.
const (
	SourceReader = "reader"
	SourceGraph  = "graph"
	SourceFile   = "file"
)

const (
	defaultHost             = "0.0.0.0"
	defaultPort             = 8080
	defaultReadTimeout      = 10 * time.Second
	defaultWriteTimeout     = 35 * time.Second
	defaultIdleTimeout      = 60 * time.Second
	defaultShutdownTimeout  = 10 * time.Second
	defaultReaderTimeout    = 30 * time.Second
	defaultLoggingLevel     = "info"
	defaultLoggingFormat    = "text"
	defaultGraphMaxSessions = 10
)

// Load reads configuration from an optional YAML file named by CONFIG_FILE,
// then from environment variables. Environment values win.
func Load() (Config, error) {
	cfg := Config{
		HTTP: HTTPConfig{
			Host:            defaultHost,
			Port:            defaultPort,
			ReadTimeout:     defaultReadTimeout,
			WriteTimeout:    defaultWriteTimeout,
			IdleTimeout:     defaultIdleTimeout,
			ShutdownTimeout: defaultShutdownTimeout,
		},
		Source: SourceConfig{Kind: SourceReader},
		Reader: ReaderConfig{Timeout: defaultReaderTimeout},
		Graph:  GraphConfig{MaxConnections: defaultGraphMaxSessions},
		Logging: LoggingConfig{
			Level:  defaultLoggingLevel,
			Format: defaultLoggingFormat,
		},
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := applyFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

type fileConfig struct {
	HTTP struct {
		Host           string `yaml:"host"`
		Port           int    `yaml:"port"`
		AllowedOrigins string `yaml:"allowed_origins"`
	} `yaml:"http"`
	Source struct {
		Kind string `yaml:"kind"`
		File string `yaml:"file"`
	} `yaml:"source"`
	Reader struct {
		BaseURL string        `yaml:"base_url"`
		Secret  string        `yaml:"secret"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"reader"`
	Graph struct {
		URI            string `yaml:"uri"`
		Database       string `yaml:"database"`
		Username       string `yaml:"username"`
		Password       string `yaml:"password"`
		MaxConnections int    `yaml:"max_connections"`
	} `yaml:"graph"`
	Logging struct {
		Level         string `yaml:"level"`
		Format        string `yaml:"format"`
		IncludeCaller bool   `yaml:"include_caller"`
	} `yaml:"logging"`
}

func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if fc.HTTP.Host != "" {
		cfg.HTTP.Host = fc.HTTP.Host
	}
	if fc.HTTP.Port != 0 {
		cfg.HTTP.Port = fc.HTTP.Port
	}
	if fc.HTTP.AllowedOrigins != "" {
		cfg.HTTP.AllowedOriginsCSV = fc.HTTP.AllowedOrigins
	}
	if fc.Source.Kind != "" {
		cfg.Source.Kind = fc.Source.Kind
	}
	if fc.Source.File != "" {
		cfg.Source.File = fc.Source.File
	}
	if fc.Reader.BaseURL != "" {
		cfg.Reader.BaseURL = fc.Reader.BaseURL
	}
	if fc.Reader.Secret != "" {
		cfg.Reader.Secret = fc.Reader.Secret
	}
	if fc.Reader.Timeout != 0 {
		cfg.Reader.Timeout = fc.Reader.Timeout
	}
	if fc.Graph.URI != "" {
		cfg.Graph.URI = fc.Graph.URI
	}
	if fc.Graph.Database != "" {
		cfg.Graph.Database = fc.Graph.Database
	}
	if fc.Graph.Username != "" {
		cfg.Graph.Username = fc.Graph.Username
	}
	if fc.Graph.Password != "" {
		cfg.Graph.Password = fc.Graph.Password
	}
	if fc.Graph.MaxConnections != 0 {
		cfg.Graph.MaxConnections = fc.Graph.MaxConnections
	}
	if fc.Logging.Level != "" {
		cfg.Logging.Level = fc.Logging.Level
	}
	if fc.Logging.Format != "" {
		cfg.Logging.Format = fc.Logging.Format
	}
	if fc.Logging.IncludeCaller {
		cfg.Logging.IncludeCaller = true
	}
	return nil
}

func applyEnv(cfg *Config) error {
	cfg.HTTP.Host = valueOrDefault("SERVER_HOST", cfg.HTTP.Host)
	port, err := parsePort("SERVER_PORT", cfg.HTTP.Port)
	if err != nil {
		return err
	}
	cfg.HTTP.Port = port

	for _, entry := range []struct {
		key    string
		target *time.Duration
	}{
		{"SERVER_READ_TIMEOUT", &cfg.HTTP.ReadTimeout},
		{"SERVER_WRITE_TIMEOUT", &cfg.HTTP.WriteTimeout},
		{"SERVER_IDLE_TIMEOUT", &cfg.HTTP.IdleTimeout},
		{"SERVER_SHUTDOWN_TIMEOUT", &cfg.HTTP.ShutdownTimeout},
		{"DATA_READER_TIMEOUT", &cfg.Reader.Timeout},
	} {
		if v := os.Getenv(entry.key); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("invalid %s: %w", entry.key, err)
			}
			*entry.target = d
		}
	}

	if v := os.Getenv("SERVER_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOriginsCSV = v
	}

	cfg.Source.Kind = valueOrDefault("DATA_SOURCE", cfg.Source.Kind)
	cfg.Source.File = valueOrDefault("EXPORT_FILE", cfg.Source.File)
	cfg.Reader.BaseURL = valueOrDefault("DATA_READER_URL", cfg.Reader.BaseURL)
	cfg.Reader.Secret = valueOrDefault("DATA_READER_SECRET", cfg.Reader.Secret)

	cfg.Graph.URI = valueOrDefault("GRAPH_URI", cfg.Graph.URI)
	cfg.Graph.Database = valueOrDefault("GRAPH_DATABASE", cfg.Graph.Database)
	cfg.Graph.Username = valueOrDefault("GRAPH_USERNAME", cfg.Graph.Username)
	cfg.Graph.Password = valueOrDefault("GRAPH_PASSWORD", cfg.Graph.Password)
	cfg.Graph.MaxConnections = parseIntWithDefault("GRAPH_MAX_CONNECTIONS", cfg.Graph.MaxConnections)

	cfg.Logging.Level = valueOrDefault("LOG_LEVEL", cfg.Logging.Level)
	cfg.Logging.Format = valueOrDefault("LOG_FORMAT", cfg.Logging.Format)
	cfg.Logging.IncludeCaller = parseBoolWithDefault("LOG_INCLUDE_CALLER", cfg.Logging.IncludeCaller)

	return nil
}

func validate(cfg Config) error {
	switch cfg.Source.Kind {
	case SourceReader, SourceGraph:
	case SourceFile:
		if cfg.Source.File == "" {
			return fmt.Errorf("EXPORT_FILE is required when DATA_SOURCE is %q", SourceFile)
		}
	default:
		return fmt.Errorf("unknown DATA_SOURCE %q", cfg.Source.Kind)
	}
	return nil
}

func valueOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseBoolWithDefault(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		val, err := strconv.ParseBool(v)
		if err != nil {
			return fallback
		}
		return val
	}
	return fallback
}

func parseIntWithDefault(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if val, err := strconv.Atoi(v); err == nil {
			return val
		}
	}
	return fallback
}

func parsePort(key string, fallback int) (int, error) {
	if v := os.Getenv(key); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid %s value %q: %w", key, v, err)
		}
		if port <= 0 || port > 65535 {
			return 0, fmt.Errorf("port %d is out of range", port)
		}
		return port, nil
	}
	return fallback, nil
}
