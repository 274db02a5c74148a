package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"go.yaml.in/yaml/v4"
)

const defaultConfigFile = "config.yaml"

type RateLimit struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

type Nudge struct {
	Email     string `yaml:"email"`
	From      string `yaml:"from"`
	Threshold int    `yaml:"threshold"`
}

type Config struct {
	APIBaseURL     string        `yaml:"api_base_url"`
	DBPath         string        `yaml:"db_path"`
	ListenAddr     string        `yaml:"listen_addr"`
	LogLevel       string        `yaml:"log_level"`
	LogFormat      string        `yaml:"log_format"`
	LogFile        string        `yaml:"log_file"`
	SyncCollection string        `yaml:"sync_collection"`
	SyncTimeout    time.Duration `yaml:"sync_timeout"`
	UseKeyring     bool          `yaml:"use_keyring"`
	RateLimit      RateLimit     `yaml:"rate_limit"`
	Nudge          Nudge         `yaml:"nudge"`
}

func Default() *Config {
	return &Config{
		APIBaseURL:     "http://localhost:8080",
		DBPath:         "lifemanager.db",
		ListenAddr:     ":8080",
		LogLevel:       "warn",
		LogFormat:      "text",
		SyncCollection: "users",
		SyncTimeout:    15 * time.Second,
		RateLimit:      RateLimit{RequestsPerSecond: 5, Burst: 10},
		Nudge:          Nudge{From: "onboarding@resend.dev", Threshold: 50},
	}
}

// Load reads the YAML file named by LIFEMANAGER_CONFIG, or config.yaml in the
// working directory. An explicitly named file must exist; a missing default
// file just means defaults. Environment variables override the file.
func Load() (*Config, error) {
	path, explicit := os.LookupEnv("LIFEMANAGER_CONFIG")
	if !explicit || path == "" {
		return load(defaultConfigFile, false)
	}
	return load(path, true)
}

// LoadFile is Load with an explicit path, which must exist.
func LoadFile(path string) (*Config, error) {
	return load(path, true)
}

func load(path string, explicit bool) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	cfg.APIBaseURL = getenv("LIFEMANAGER_API_BASE", cfg.APIBaseURL)
	cfg.DBPath = getenv("LIFEMANAGER_DB_PATH", cfg.DBPath)
	cfg.ListenAddr = getenv("LIFEMANAGER_LISTEN_ADDR", cfg.ListenAddr)
	cfg.LogLevel = getenv("LIFEMANAGER_LOG_LEVEL", cfg.LogLevel)
	cfg.LogFile = getenv("LIFEMANAGER_LOG_FILE", cfg.LogFile)
	cfg.Nudge.Email = getenv("LIFEMANAGER_NOTIFY_EMAIL", cfg.Nudge.Email)

	if v := os.Getenv("LIFEMANAGER_NUDGE_THRESHOLD"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("LIFEMANAGER_NUDGE_THRESHOLD must be a valid integer: %w", err)
		}
		cfg.Nudge.Threshold = n
	}
	return nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
