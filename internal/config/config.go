package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xxxsen/common/logger"
)

type Config struct {
	Port                   int              `json:"port"`
	JWTSecret              string           `json:"jwt_secret"`
	JWTTTLHours            int              `json:"jwt_ttl_hours"`
	Database               DatabaseConfig   `json:"database"`
	LogConfig              logger.LogConfig `json:"log_config"`
	FileStore              FileStoreConfig  `json:"file_store"`
	Mail                   MailConfig       `json:"mail"`
	Search                 SearchConfig     `json:"search"`
	CORSAllowlist          []string         `json:"cors_allowlist"`
	ContactRateLimitSecond int              `json:"contact_rate_limit_second"`
	UploadMaxBytes         int64            `json:"upload_max_bytes"`
	Properties             Properties       `json:"properties"`
}

// Properties are public site settings served to the frontend.
type Properties struct {
	SiteName     string `json:"site_name"`
	SiteURL      string `json:"site_url"`
	ContactEmail string `json:"contact_email"`
	ContactPhone string `json:"contact_phone"`
}

type DatabaseConfig struct {
	DSN      string `json:"dsn"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	DBName   string `json:"dbname"`
	SSLMode  string `json:"sslmode"`
}

type FileStoreConfig struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type MailConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
	From     string `json:"from"`
	Inbox    string `json:"inbox"`
}

type SearchConfig struct {
	CacheTTLSecond  int    `json:"cache_ttl_second"`
	CacheSize       int    `json:"cache_size"`
	HistorySize     int    `json:"history_size"`
	HistoryClients  int    `json:"history_clients"`
	HistoryTTLHours int    `json:"history_ttl_hours"`
	RefreshCron     string `json:"refresh_cron"`
}

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (cfg *Config) normalize() error {
	if cfg.JWTSecret == "" {
		return fmt.Errorf("jwt_secret is required")
	}
	if cfg.Port == 0 {
		return fmt.Errorf("port is required")
	}
	if cfg.Database.DSN == "" && cfg.Database.Host == "" {
		return fmt.Errorf("database.dsn or database.host is required")
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.JWTTTLHours == 0 {
		cfg.JWTTTLHours = 72
	}
	if cfg.LogConfig.Level == "" {
		cfg.LogConfig.Level = "info"
	}
	if cfg.FileStore.Type == "" {
		cfg.FileStore.Type = "local"
	}
	if cfg.FileStore.Type == "local" && cfg.FileStore.Data == nil {
		cfg.FileStore.Data = map[string]interface{}{"dir": "./data/uploads"}
	}
	if cfg.ContactRateLimitSecond == 0 {
		cfg.ContactRateLimitSecond = 30
	}
	if cfg.UploadMaxBytes == 0 {
		cfg.UploadMaxBytes = 5 * 1024 * 1024
	}
	if cfg.Properties.SiteName == "" {
		cfg.Properties.SiteName = "Business Directory"
	}
	if cfg.Search.CacheTTLSecond == 0 {
		cfg.Search.CacheTTLSecond = 300
	}
	if cfg.Search.CacheSize == 0 {
		cfg.Search.CacheSize = 100
	}
	if cfg.Search.HistorySize == 0 {
		cfg.Search.HistorySize = 10
	}
	if cfg.Search.HistoryClients == 0 {
		cfg.Search.HistoryClients = 1024
	}
	if cfg.Search.HistoryTTLHours == 0 {
		cfg.Search.HistoryTTLHours = 24 * 7
	}
	if cfg.Search.RefreshCron == "" {
		cfg.Search.RefreshCron = "*/10 * * * *"
	}
	return nil
}
