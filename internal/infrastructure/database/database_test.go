package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/sangkips/ledgerbook/internal/config"
)

func TestOpenAndMigrateSQLite(t *testing.T) {
	log := zaptest.NewLogger(t)
	cfg := &config.DatabaseConfig{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "ledger.db")}

	db, err := Open(cfg, false, log)
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db, log))

	for _, table := range []string{"sessions", "preferences", "idempotency_keys"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(&config.DatabaseConfig{Driver: "oracle"}, false, zaptest.NewLogger(t))
	assert.Error(t, err)
}
