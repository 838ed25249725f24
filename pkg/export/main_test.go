package export

import (
	"context"
	stdSQL "database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rest-go/sqlitejson/pkg/sql"
)

const (
	usersSQL = `
CREATE TABLE users(id INTEGER PRIMARY KEY, name TEXT);
INSERT INTO users VALUES (1, 'Alice'), (2, 'Bob');
`
	setupSQL = `
CREATE TABLE IF NOT EXISTS "customers"
(
    [Id] INTEGER PRIMARY KEY AUTOINCREMENT NOT NULL,
    [FirstName] NVARCHAR(40)  NOT NULL,
    [Email] NVARCHAR(60),
    [Active] BOOL NOT NULL
);
CREATE TABLE IF NOT EXISTS "invoices"
(
    [Id] INTEGER PRIMARY KEY AUTOINCREMENT NOT NULL,
    [CustomerId] INTEGER  NOT NULL,
    [InvoiceDate] DATETIME  NOT NULL,
    [Total] NUMERIC(10,2)  NOT NULL,
    [Receipt] BLOB,
    FOREIGN KEY ([CustomerId]) REFERENCES "customers" ([Id])
);
CREATE INDEX [IFK_InvoiceCustomerId] ON "invoices" ([CustomerId]);
CREATE VIEW "active_customers" AS SELECT * FROM customers WHERE Active = 1;
CREATE TABLE "order items" ("select" INTEGER, "group" TEXT DEFAULT 'none');
CREATE TABLE "empty" (a INTEGER, b REAL, c TEXT);

INSERT INTO customers (Id, FirstName, Email, Active) VALUES
    (1, 'first name', 'a@b.com', 1),
    (2, 'I''m a "quoted" <name>', NULL, 0);
INSERT INTO invoices (Id, CustomerId, InvoiceDate, Total, Receipt) VALUES
    (1, 1, '2023-01-02 03:04:05', 3.1415926, x'00ff10'),
    (2, 1, '2023-01-02 03:04:05', 1.5, NULL);
INSERT INTO "order items" VALUES (1, 'a'), (2, 'b'), (3, NULL);
`
)

// setupDB writes a database file built from setup and returns its path
func setupDB(t *testing.T, setup string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ci.db")
	db, err := stdSQL.Open(sql.DriverName, path)
	require.Nil(t, err)
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	_, err = db.ExecContext(ctx, setup)
	require.Nil(t, err)
	return path
}

func newExporter(t *testing.T, setup string, opts ...Option) *Exporter {
	t.Helper()
	e, err := New(setupDB(t, setup), opts...)
	require.Nil(t, err)
	t.Cleanup(func() { e.Close() })
	return e
}
