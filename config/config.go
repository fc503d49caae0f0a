package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
)

type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Database   DatabaseConfig   `koanf:"database"`
	JWT        JWTConfig        `koanf:"jwt"`
	OAuth      OAuthConfig      `koanf:"oauth"`
	Cloudinary CloudinaryConfig `koanf:"cloudinary"`
	Logger     LoggerConfig     `koanf:"logger"`
	Moderation ModerationConfig `koanf:"moderation"`
}

type ServerConfig struct {
	Port         string        `koanf:"port"`
	Env          string        `koanf:"env"`
	ReadTimeout  time.Duration `koanf:"readtimeout"`
	WriteTimeout time.Duration `koanf:"writetimeout"`
}

type DatabaseConfig struct {
	DSN             string        `koanf:"dsn"`
	MaxIdleConns    int           `koanf:"maxidleconns"`
	MaxOpenConns    int           `koanf:"maxopenconns"`
	ConnMaxLifetime time.Duration `koanf:"connmaxlifetime"`
}

type JWTConfig struct {
	AccessSecret  string        `koanf:"accesssecret"`
	RefreshSecret string        `koanf:"refreshsecret"`
	AccessExpiry  time.Duration `koanf:"accessexpiry"`
	RefreshExpiry time.Duration `koanf:"refreshexpiry"`
	Issuer        string        `koanf:"issuer"`
}

type OAuthConfig struct {
	GoogleClientID     string `koanf:"googleclientid"`
	GoogleClientSecret string `koanf:"googleclientsecret"`
	GoogleRedirectURL  string `koanf:"googleredirecturl"`
}

type CloudinaryConfig struct {
	CloudName string `koanf:"cloudname"`
	APIKey    string `koanf:"apikey"`
	APISecret string `koanf:"apisecret"`
}

type LoggerConfig struct {
	Debug      bool   `koanf:"debug"`
	File       string `koanf:"file"` // empty disables file logging
	MaxSize    int    `koanf:"maxsize"` // megabytes
	MaxAge     int    `koanf:"maxage"` // days
	MaxBackups int    `koanf:"maxbackups"`
	Compress   bool   `koanf:"compress"`
}

type ModerationConfig struct {
	SeedAdminEmail    string `koanf:"seedadminemail"`
	SeedAdminPassword string `koanf:"seedadminpassword"`
}

func defaults() Config {
	return Config{
		Server: ServerConfig{
			Port:         "8080",
			Env:          "development",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			DSN:             "gameforge:gameforge@tcp(localhost:3306)/gameforge?charset=utf8mb4&parseTime=True&loc=Local",
			MaxIdleConns:    10,
			MaxOpenConns:    100,
			ConnMaxLifetime: time.Hour,
		},
		JWT: JWTConfig{
			AccessSecret:  "change-me-in-production",
			RefreshSecret: "change-me-refresh",
			AccessExpiry:  15 * time.Minute,
			RefreshExpiry: 168 * time.Hour,
			Issuer:        "gameforge",
		},
		Logger: LoggerConfig{
			MaxSize:    50,
			MaxAge:     14,
			MaxBackups: 5,
			Compress:   true,
		},
		Moderation: ModerationConfig{
			SeedAdminEmail: "admin@gameforge.local",
		},
	}
}

// Load reads configuration: struct defaults, then an optional config.json,
// then GAMEFORGE_* environment overrides (GAMEFORGE_DATABASE_DSN etc).
func Load() (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(structs.Provider(defaults(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("loading default config: %w", err)
	}

	path := os.Getenv("GAMEFORGE_CONFIG")
	if path == "" {
		path = "config.json"
	}
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), json.Parser()); err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("GAMEFORGE_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, "GAMEFORGE_")), "_", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env config: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, nil
}
