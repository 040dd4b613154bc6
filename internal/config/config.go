package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds process configuration read from the environment and an
// optional .env file in the working directory.
type Config struct {
	Env      string
	Port     string
	LogLevel string
	// LogFormat is "console" or "json"
	LogFormat string

	DBDriver    string
	DBPath      string
	DatabaseURL string

	PokemonTCGAPIKey    string
	PokemonTCGBaseURL   string
	PokemonTCGTimeout   time.Duration
	PokemonTCGRateLimit float64

	CORSAllowedOrigins []string
	MaxUploadBytes     int64
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DB_PATH", "./card_inventory.db")
	v.SetDefault("POKEMON_TCG_BASE_URL", "https://api.pokemontcg.io/v2")
	v.SetDefault("POKEMON_TCG_TIMEOUT", "10s")
	v.SetDefault("POKEMON_TCG_RATE_LIMIT", 5.0)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000")
	v.SetDefault("MAX_UPLOAD_BYTES", 10<<20)
}

// Load reads configuration. A missing .env file is not an error.
func Load() (*Config, error) {
	return loadFile(".env")
}

// loadFile is Load with an explicit env file path. Errors other than the
// file not existing are returned.
func loadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.Is(err, os.ErrNotExist) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
	}
	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)

	env := v.GetString("APP_ENV")
	logFormat := v.GetString("LOG_FORMAT")
	if logFormat == "" {
		logFormat = "console"
		if env == "production" {
			logFormat = "json"
		}
	}

	origins := splitList(v.GetString("CORS_ALLOWED_ORIGINS"))
	if frontend := strings.TrimSpace(v.GetString("FRONTEND_URL")); frontend != "" && !contains(origins, frontend) {
		origins = append([]string{frontend}, origins...)
	}

	timeout := v.GetDuration("POKEMON_TCG_TIMEOUT")
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Config{
		Env:                 env,
		Port:                v.GetString("PORT"),
		LogLevel:            v.GetString("LOG_LEVEL"),
		LogFormat:           logFormat,
		DBDriver:            strings.ToLower(v.GetString("DB_DRIVER")),
		DBPath:              v.GetString("DB_PATH"),
		DatabaseURL:         v.GetString("DATABASE_URL"),
		PokemonTCGAPIKey:    v.GetString("POKEMON_TCG_API_KEY"),
		PokemonTCGBaseURL:   strings.TrimRight(v.GetString("POKEMON_TCG_BASE_URL"), "/"),
		PokemonTCGTimeout:   timeout,
		PokemonTCGRateLimit: v.GetFloat64("POKEMON_TCG_RATE_LIMIT"),
		CORSAllowedOrigins:  origins,
		MaxUploadBytes:      v.GetInt64("MAX_UPLOAD_BYTES"),
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
