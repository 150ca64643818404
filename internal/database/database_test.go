package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipebox/backend/config"
	"github.com/pageza/recipebox/backend/internal/model"
)

func TestNewSQLiteAndMigrate(t *testing.T) {
	cfg := &config.Config{
		DBDriver:   config.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "recipes.db"),
	}

	db, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	require.NoError(t, HealthCheck(context.Background(), db))
	require.NoError(t, RunMigrations(db, "does-not-matter-for-sqlite"))
	assert.True(t, db.Migrator().HasTable(&model.Recipe{}))

	recipe := model.Recipe{Title: "Toast"}
	require.NoError(t, db.Create(&recipe).Error)

	var loaded model.Recipe
	require.NoError(t, db.First(&loaded, "id = ?", recipe.ID).Error)
	assert.Equal(t, "Toast", loaded.Title)
	assert.Equal(t, model.StringArray{}, loaded.Ingredients)
	assert.Equal(t, model.Comments{}, loaded.Comments)
}

func TestNewRejectsUnknownDriver(t *testing.T) {
	_, err := New(&config.Config{DBDriver: "mongo"})
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestNewRedisClient(t *testing.T) {
	srv := miniredis.RunT(t)

	client, err := NewRedisClient(&config.Config{RedisURL: srv.Addr()})
	require.NoError(t, err)
	assert.NoError(t, client.Close())

	client, err = NewRedisClient(&config.Config{RedisURL: "redis://" + srv.Addr() + "/0"})
	require.NoError(t, err)
	assert.NoError(t, client.Close())
}

func TestNewRedisClientErrors(t *testing.T) {
	_, err := NewRedisClient(&config.Config{})
	assert.Error(t, err)

	_, err = NewRedisClient(&config.Config{RedisURL: "redis://%zz"})
	assert.ErrorContains(t, err, "parse")
}
