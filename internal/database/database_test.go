package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/liqma/backend/config"
	"github.com/liqma/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestOpenSQLiteAndMigrate(t *testing.T) {
	cfg := &config.Config{
		Env:        config.Test,
		DBDriver:   "sqlite",
		SQLitePath: filepath.Join(t.TempDir(), "liqma.db"),
	}
	log := zap.NewNop()

	db, err := Open(cfg, log)
	require.NoError(t, err)
	require.NoError(t, RunMigrations(db, log))
	assert.NoError(t, HealthCheck(context.Background(), db))

	for _, table := range []interface{}{&models.User{}, &models.Recipe{}, &models.RecipeLike{}} {
		assert.True(t, db.Migrator().HasTable(table))
	}

	// migrations are idempotent
	assert.NoError(t, RunMigrations(db, log))
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(&config.Config{DBDriver: "mongo"}, zap.NewNop())
	assert.Error(t, err)
}

func TestNewRedisClientDisabledWithoutURL(t *testing.T) {
	client, err := NewRedisClient(&config.Config{}, zap.NewNop())
	require.NoError(t, err)
	assert.Nil(t, client)
}

func TestNewRedisClientWithoutURL(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	client, err := NewRedisClient(&config.Config{}, zap.New(core))
	require.NoError(t, err)
	assert.Nil(t, client)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "redis not configured; featured cache disabled", entries[0].Message)
}
