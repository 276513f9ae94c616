package database

import (
	"testing"

	"github.com/mynews-app/backend/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testModel struct {
	ID    uint   `gorm:"primaryKey"`
	Email string `gorm:"uniqueIndex"`
}

func sqliteConfig() config.Config {
	return config.Config{
		Database: config.DatabaseConfig{
			Driver:      "sqlite",
			DSN:         ":memory:",
			AutoMigrate: true,
		},
	}
}

func TestProvideDatabase_Sqlite(t *testing.T) {
	db, err := ProvideDatabase(sqliteConfig(), WithModels(&testModel{}), nil)

	require.NoError(t, err)
	require.NotNil(t, db)
	assert.True(t, db.Migrator().HasTable(&testModel{}))
}

func TestProvideDatabase_UnsupportedDriver(t *testing.T) {
	cfg := sqliteConfig()
	cfg.Database.Driver = "mongodb"

	db, err := ProvideDatabase(cfg, nil, nil)

	require.Error(t, err)
	assert.Nil(t, db)
	assert.Contains(t, err.Error(), "unsupported database driver")
}

func TestProvideDatabase_TranslatesDuplicateKey(t *testing.T) {
	db, err := ProvideDatabase(sqliteConfig(), WithModels(&testModel{}), nil)
	require.NoError(t, err)

	require.NoError(t, db.Create(&testModel{Email: "a@x.com"}).Error)

	err = db.Create(&testModel{Email: "a@x.com"}).Error
	require.Error(t, err)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestProvideDatabase_NoAutoMigrate(t *testing.T) {
	cfg := sqliteConfig()
	cfg.Database.AutoMigrate = false

	db, err := ProvideDatabase(cfg, WithModels(&testModel{}), nil)

	require.NoError(t, err)
	assert.False(t, db.Migrator().HasTable(&testModel{}))
}
