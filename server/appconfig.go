package server

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// AppConfig defines application configuration loaded from files and environment.
type AppConfig struct {
	Env      string         `koanf:"env"`
	Addr     string         `koanf:"addr"`
	Database DatabaseConfig `koanf:"database"`
	Token    TokenConfig    `koanf:"token"`
	Debug    DebugConfig    `koanf:"debug"`
}

type DatabaseConfig struct {
	DSN string `koanf:"dsn"`
}

type TokenConfig struct {
	// Type is "bearer" or "mac".
	Type string `koanf:"type"`
	// Rotate retires refresh tokens on use.
	Rotate bool `koanf:"rotate"`
}

// DebugConfig configures remote token introspection against another
// authorization server.
type DebugConfig struct {
	TokenPath    string `koanf:"token_path"`
	DebugPath    string `koanf:"debug_path"`
	ClientID     string `koanf:"client_id"`
	ClientSecret string `koanf:"client_secret"`
	// DisableCache forces remote introspection on every presentation.
	DisableCache bool `koanf:"disable_cache"`
	// CachePath is the BuntDB file for cached introspection results;
	// empty means in-memory only.
	CachePath string `koanf:"cache_path"`
	// ValkeyAddr switches the introspection cache to a shared Valkey
	// instance when set.
	ValkeyAddr string `koanf:"valkey_addr"`
}

var (
	cfgOnce sync.Once
	cfgInst *AppConfig
)

// GetConfig loads and returns the singleton AppConfig. Loading order:
// 1) config/config.yaml (optional)
// 2) config/config.<APP_ENV>.yaml (optional), APP_ENV defaults to "local"
// 3) Environment variables with prefix OAUTH2_ mapped using __ as nested separator, e.g. OAUTH2_DATABASE__DSN
func GetConfig() *AppConfig {
	cfgOnce.Do(func() {
		k := koanf.New(".")
		// Config directory (CONFIG_DIR) default ./config
		configDir := os.Getenv("CONFIG_DIR")
		if configDir == "" {
			configDir = "config"
		}
		// Whether to load files (default: disabled to keep tests isolated)
		loadFiles := strings.EqualFold(os.Getenv("APP_CONFIG_FILES"), "1") || strings.EqualFold(os.Getenv("APP_CONFIG_FILES"), "true")
		// 1) base file
		if loadFiles {
			base := filepath.Join(configDir, "config.yaml")
			if _, err := os.Stat(base); err == nil {
				if err := k.Load(file.Provider(base), yaml.Parser()); err != nil {
					log.Printf("config: failed loading base: %v", err)
				}
			}
		}
		// 2) env-specific file
		envName := os.Getenv("APP_ENV")
		if envName == "" {
			envName = "local"
		}
		if loadFiles {
			envFile := filepath.Join(configDir, "config."+envName+".yaml")
			if _, err := os.Stat(envFile); err == nil {
				if err := k.Load(file.Provider(envFile), yaml.Parser()); err != nil {
					log.Printf("config: failed loading env file: %v", err)
				}
			}
		}
		// 3) env vars: OAUTH2_ prefix, __ delim for nesting
		_ = k.Load(env.Provider("OAUTH2_", "__", func(s string) string {
			// OAUTH2_DATABASE__DSN -> database.dsn
			return s
		}), nil)

		var c AppConfig
		if err := k.Unmarshal("", &c); err != nil {
			log.Printf("config: unmarshal error: %v", err)
		}
		if c.Env == "" {
			c.Env = envName
		}
		if c.Addr == "" {
			c.Addr = ":9096"
		}
		cfgInst = &c
	})
	return cfgInst
}

// DBDSN returns the effective Postgres DSN (config first, then env).
func (c *AppConfig) DBDSN() string {
	if c != nil && c.Database.DSN != "" {
		return strings.TrimSpace(c.Database.DSN)
	}
	dsn := strings.TrimSpace(os.Getenv("OAUTH2_DB_DSN"))
	if dsn == "" {
		dsn = strings.TrimSpace(os.Getenv("MIGRATE_DSN"))
	}
	return dsn
}
