package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Storage: StorageBolt,
		Server:  ServerConfig{Host: "0.0.0.0", Port: "8081"},
		Auth: AuthConfig{
			Users:   map[string]string{"admin": "secret"},
			APIKeys: map[string]string{"key": "admin"},
		},
		BoltDB: BoltDBConfig{FilePath: "data/biblio.db", BucketName: "livres"},
	}
}

func TestInitConfig(t *testing.T) {
	t.Run("valid bolt config", func(t *testing.T) {
		cfg := validConfig()
		require.NoError(t, InitConfig(cfg, "abc123", "v1.2.3", "2024-01-01"))
		assert.Equal(t, "abc123", cfg.GitCommit)
		assert.Equal(t, "v1.2.3", cfg.GitTag)
	})

	t.Run("storage defaults to bolt", func(t *testing.T) {
		cfg := validConfig()
		cfg.Storage = ""
		require.NoError(t, InitConfig(cfg, "", "", ""))
		assert.Equal(t, StorageBolt, cfg.Storage)
	})

	t.Run("unknown storage backend", func(t *testing.T) {
		cfg := validConfig()
		cfg.Storage = "postgres"
		assert.Error(t, InitConfig(cfg, "", "", ""))
	})

	t.Run("missing server address", func(t *testing.T) {
		cfg := validConfig()
		cfg.Server.Port = ""
		assert.Error(t, InitConfig(cfg, "", "", ""))
	})

	t.Run("redis storage requires an address", func(t *testing.T) {
		cfg := validConfig()
		cfg.Storage = StorageRedis
		assert.Error(t, InitConfig(cfg, "", "", ""))

		cfg.Redis.Host, cfg.Redis.Port = "localhost", "6379"
		assert.NoError(t, InitConfig(cfg, "", "", ""))
	})

	t.Run("bolt storage requires a file path", func(t *testing.T) {
		cfg := validConfig()
		cfg.BoltDB.FilePath = ""
		assert.Error(t, InitConfig(cfg, "", "", ""))
	})

	t.Run("credentials are mandatory", func(t *testing.T) {
		cfg := validConfig()
		cfg.Auth.APIKeys = nil
		assert.Error(t, InitConfig(cfg, "", "", ""))
	})
}

func TestValidateBookPayload(t *testing.T) {
	assert.EqualError(t, ValidateBookPayload(&Book{Auteur: "Dick"}), "titre is required")
	assert.EqualError(t, ValidateBookPayload(&Book{Titre: "Ubik"}), "auteur is required")
	assert.EqualError(t, ValidateBookPayload(&Book{Titre: "Ubik", Auteur: "Dick", Note: 6}), "note must be between 0 and 5")
	assert.NoError(t, ValidateBookPayload(&Book{Titre: "Ubik", Auteur: "Dick", Note: 5}))
}
