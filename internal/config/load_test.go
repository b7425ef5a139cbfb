package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("default load", func(t *testing.T) {
		expectedConfig := getDefaultDirectSendConfig()

		actualConfig, err := Load()
		require.NoError(t, err, "error loading config")

		assert.Equal(t, expectedConfig, actualConfig)
	})

	t.Run("partial file override", func(t *testing.T) {
		expectedConfig := getDefaultDirectSendConfig()

		actualConfig, err := Load("./test_files/")
		require.NoError(t, err, "error loading config")

		assert.Equal(t, expectedConfig.Engine.GCInterval, actualConfig.Engine.GCInterval)

		assert.Equal(t, "DEBUG", actualConfig.LogLevel)
		assert.Equal(t, "json", actualConfig.LogFormat)
		assert.Equal(t, ":9090", actualConfig.ApiAddr)
		assert.Equal(t, 8, actualConfig.Engine.SignaturesTotal)
		assert.Equal(t, 5, actualConfig.Engine.SignaturesRequired)
		assert.Equal(t, "nats://gossip:4222", actualConfig.Gossip.NatsURL)
	})

	t.Run("missing config path", func(t *testing.T) {
		_, err := Load("./does-not-exist/")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrConfigPath)
	})
}
