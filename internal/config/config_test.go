package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg := fromViper(viper.New())

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "https://api.pokemontcg.io/v2", cfg.PokemonTCGBaseURL)
	assert.Equal(t, 10*time.Second, cfg.PokemonTCGTimeout)
	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:3000"}, cfg.CORSAllowedOrigins)
	assert.Empty(t, cfg.PokemonTCGAPIKey)
}

func TestFromViper_Environment(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("POKEMON_TCG_API_KEY", "secret")
	t.Setenv("POKEMON_TCG_TIMEOUT", "3s")
	t.Setenv("POKEMON_TCG_BASE_URL", "http://catalog.local/v2/")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("FRONTEND_URL", "https://app.example")
	t.Setenv("DB_DRIVER", "Postgres")

	cfg := fromViper(viper.New())

	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "secret", cfg.PokemonTCGAPIKey)
	assert.Equal(t, 3*time.Second, cfg.PokemonTCGTimeout)
	assert.Equal(t, "http://catalog.local/v2", cfg.PokemonTCGBaseURL)
	assert.Equal(t, []string{"https://app.example", "https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "postgres", cfg.DBDriver)
}

func TestLoadFile(t *testing.T) {
	t.Setenv("POKEMON_TCG_API_KEY", "")
	dir := t.TempDir()

	t.Run("missing file uses defaults", func(t *testing.T) {
		cfg, err := loadFile(filepath.Join(dir, "absent.env"))
		require.NoError(t, err)
		assert.Equal(t, "8080", cfg.Port)
	})

	t.Run("values from file", func(t *testing.T) {
		path := filepath.Join(dir, "app.env")
		require.NoError(t, os.WriteFile(path, []byte("POKEMON_TCG_API_KEY=from-file\n"), 0o600))

		cfg, err := loadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "from-file", cfg.PokemonTCGAPIKey)
	})

	t.Run("unreadable file is an error", func(t *testing.T) {
		path := filepath.Join(dir, "dir.env")
		require.NoError(t, os.Mkdir(path, 0o755))

		cfg, err := loadFile(path)
		assert.Error(t, err)
		assert.Nil(t, cfg)
	})
}
