package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config is the full service configuration, unmarshalled from the
// config file and SKILLPROOF_* environment variables by viper.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	DB      DBConfig      `mapstructure:"db"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Storage StorageConfig `mapstructure:"storage"`
	LLM     LLMConfig     `mapstructure:"llm"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type DBConfig struct {
	// Driver selects the database backend: "postgres" or "sqlite".
	Driver string `mapstructure:"driver"`
	// DSN is the postgres connection string, or the sqlite file path.
	DSN string `mapstructure:"dsn"`
}

type AuthConfig struct {
	// JWTSecret signs access tokens. Required.
	JWTSecret string        `mapstructure:"jwt-secret"`
	TokenTTL  time.Duration `mapstructure:"token-ttl"`
}

type StorageConfig struct {
	// UploadDir is the root for stored resume files.
	UploadDir string `mapstructure:"upload-dir"`
}

type LLMConfig struct {
	// Provider selects the LLM backend: "gemini", "openai", "anthropic", "mock".
	Provider  string `mapstructure:"provider"`
	APIKey    string `mapstructure:"api-key"`
	Model     string `mapstructure:"model"`
	BaseURL   string `mapstructure:"base-url"`
	MaxTokens int    `mapstructure:"max-tokens"`
}

// Defaults registers fallback values on the given viper instance.
func Defaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8000")
	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.dsn", "skillproof.db")
	v.SetDefault("auth.token-ttl", 24*time.Hour)
	v.SetDefault("storage.upload-dir", "uploads")
	v.SetDefault("llm.provider", "gemini")
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.max-tokens", 8192)
}

// Validate checks the invariants the rest of the process relies on.
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt-secret (SKILLPROOF_AUTH_JWT_SECRET) is required")
	}
	switch c.DB.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unknown db driver: %q", c.DB.Driver)
	}
	if c.DB.DSN == "" {
		return fmt.Errorf("db.dsn is required")
	}
	return nil
}
