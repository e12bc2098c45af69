// Package config exposes strongly typed application configuration structs loaded from YAML.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// App captures process-wide runtime settings such as name, environment, metrics, and logging levels.
type App struct {
	Name        string `yaml:"name"`
	Env         string `yaml:"env"`
	MetricsAddr string `yaml:"metrics_addr"`
	LogLevel    string `yaml:"log_level"`
}

// Pipeline selects how the orchestrator hands a record to its consumers.
type Pipeline struct {
	Strategy string `yaml:"strategy"` // transfer|borrow|clone|share
}

// Store configures where the persist consumer writes records.
type Store struct {
	Driver   string `yaml:"driver"` // memory|leveldb|postgres|redis
	Path     string `yaml:"path"`
	DSN      string `yaml:"dsn"`
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
}

// Notify configures the transport used by the notify consumer.
type Notify struct {
	Driver  string   `yaml:"driver"` // log|memory|kafka|nsq|websocket
	Topic   string   `yaml:"topic"`
	Brokers []string `yaml:"brokers"`
	NSQAddr string   `yaml:"nsq_addr"`
	URL     string   `yaml:"url"`
}

// Audit configures the audit trail file and its rotation.
type Audit struct {
	Path       string `yaml:"path"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// Record holds the default transfer used when the CLI is run without overrides.
type Record struct {
	ID          string `yaml:"id"`
	Amount      string `yaml:"amount"`
	Source      string `yaml:"source_account"`
	Destination string `yaml:"destination_account"`
}

// Config collects every configuration leaf for easy marshaling from YAML.
type Config struct {
	App      App      `yaml:"app"`
	Pipeline Pipeline `yaml:"pipeline"`
	Store    Store    `yaml:"store"`
	Notify   Notify   `yaml:"notify"`
	Audit    Audit    `yaml:"audit"`
	Record   Record   `yaml:"record"`
}

// Default returns a configuration that keeps every sink in process.
func Default() *Config {
	return &Config{
		App:      App{Name: "txhandoff", Env: "dev", LogLevel: "info"},
		Pipeline: Pipeline{Strategy: "borrow"},
		Store:    Store{Driver: "memory"},
		Notify:   Notify{Driver: "log", Topic: "transfer_recorded"},
		Audit:    Audit{Path: "var/audit.jsonl", MaxSizeMB: 10, MaxBackups: 3, MaxAgeDays: 28},
		Record: Record{
			ID:          "TX-2024-001",
			Amount:      "1000.50",
			Source:      "ACC-001",
			Destination: "ACC-002",
		},
	}
}

// Load reads a YAML file from disk and hydrates a Config struct on top of Default.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	config := Default()
	if err := yaml.NewDecoder(file).Decode(config); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return config, nil
}

// Save persists a Config struct to disk as YAML.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// ApplyEnv loads .env files best-effort and lets TXHANDOFF_* variables
// override endpoints and secrets.
func ApplyEnv(cfg *Config, files ...string) {
	_ = godotenv.Load(files...)

	if v := os.Getenv("TXHANDOFF_LOG_LEVEL"); v != "" {
		cfg.App.LogLevel = v
	}
	if v := os.Getenv("TXHANDOFF_METRICS_ADDR"); v != "" {
		cfg.App.MetricsAddr = v
	}
	if v := os.Getenv("TXHANDOFF_STRATEGY"); v != "" {
		cfg.Pipeline.Strategy = v
	}
	if v := os.Getenv("TXHANDOFF_STORE_DSN"); v != "" {
		cfg.Store.DSN = v
	}
	if v := os.Getenv("TXHANDOFF_STORE_PASSWORD"); v != "" {
		cfg.Store.Password = v
	}
	if v := os.Getenv("TXHANDOFF_KAFKA_BROKERS"); v != "" {
		cfg.Notify.Brokers = splitList(v)
	}
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
