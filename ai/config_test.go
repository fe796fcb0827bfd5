package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotNil(t, cfg)
	assert.Equal(t, DefaultEmbeddingModel, cfg.EmbeddingModel)
	assert.Empty(t, cfg.APIKey, "API key has no default")
}

func TestNewConfig(t *testing.T) {
	t.Run("with no options", func(t *testing.T) {
		cfg := NewConfig()

		assert.NotNil(t, cfg)
		assert.Equal(t, DefaultEmbeddingModel, cfg.EmbeddingModel)
	})

	t.Run("with api key", func(t *testing.T) {
		cfg := NewConfig(WithAPIKey("secret"))

		assert.Equal(t, "secret", cfg.APIKey)
	})

	t.Run("with custom model", func(t *testing.T) {
		cfg := NewConfig(WithEmbeddingModel("text-embedding-004"))

		assert.Equal(t, "text-embedding-004", cfg.EmbeddingModel)
	})

	t.Run("with multiple options", func(t *testing.T) {
		cfg := NewConfig(
			WithAPIKey("secret"),
			WithEmbeddingModel("text-embedding-004"),
		)

		assert.Equal(t, "secret", cfg.APIKey)
		assert.Equal(t, "text-embedding-004", cfg.EmbeddingModel)
	})
}

func TestConfig_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		cfg := NewConfig(WithAPIKey("secret"))
		require.NoError(t, cfg.Validate())
	})

	t.Run("missing api key", func(t *testing.T) {
		cfg := NewConfig()
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "APIKey")
	})

	t.Run("missing model", func(t *testing.T) {
		cfg := NewConfig(WithAPIKey("secret"), WithEmbeddingModel(""))
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "EmbeddingModel")
	})
}
