package sql

import (
	"context"
	stdSQL "database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const setupSQL = `
	CREATE TABLE IF NOT EXISTS "customers"
	(
		[Id] INTEGER PRIMARY KEY AUTOINCREMENT NOT NULL,
		[Name] NVARCHAR(40)  NOT NULL,
		[Number] NUMERIC(10,2) NOT NULL,
		[F1] REAL NOT NULL,
		[Avatar] BLOB,
		[Note] TEXT DEFAULT 'none'
	);
	INSERT INTO customers (Id, Name, Number, F1, Avatar, Note) VALUES
	(1, 'name', 10.2, 1.5, x'00ff', NULL),
	(2, 'name2', 10.2, 2.25, NULL, 'vip');
`

// setupDB writes a database file built from setup and returns its path
func setupDB(t *testing.T, setup string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ci.db")
	db, err := stdSQL.Open(DriverName, path)
	require.Nil(t, err)
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	_, err = db.ExecContext(ctx, setup)
	require.Nil(t, err)
	return path
}
