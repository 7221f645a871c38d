package service

import (
	"path/filepath"
	"testing"

	"github.com/Diapolo10/5G00EV25-3001-server/internal/config"
	"github.com/Diapolo10/5G00EV25-3001-server/internal/db"
	"github.com/Diapolo10/5G00EV25-3001-server/internal/ws"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// testDB opens a throwaway SQLite database so the suite needs no server.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := db.ConnectSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	return gdb
}

func testConfig() config.Config {
	return config.Config{
		Port:             "0",
		DatabaseDSN:      "test",
		Env:              "test",
		MinMessageLength: config.DefaultMinMessageLength,
		MaxMessageLength: config.DefaultMaxMessageLength,
	}
}

func testHub() *ws.Hub { return ws.NewHub() }
