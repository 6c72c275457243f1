package storage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mauricevan/bedrijfsbeheer3.0-sub006/internal/config"
	"github.com/mauricevan/bedrijfsbeheer3.0-sub006/internal/storage"
	"github.com/mauricevan/bedrijfsbeheer3.0-sub006/internal/storage/memory"
)

func TestOpen(t *testing.T) {
	ctx := context.Background()

	t.Run("Memory", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.Storage.Backend = storage.BackendMemory

		store, err := storage.Open(ctx, cfg)
		require.NoError(t, err)
		defer store.Close()

		assert.IsType(t, &memory.Store{}, store)
	})

	t.Run("Unknown", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.Storage.Backend = "etcd"

		_, err := storage.Open(ctx, cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "etcd")
	})
}
