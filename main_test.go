package main

import (
	"context"
	stdSQL "database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rest-go/sqlitejson/pkg/sql"
)

const setupSQL = `
CREATE TABLE users(id INTEGER PRIMARY KEY, name TEXT, avatar BLOB);
INSERT INTO users VALUES (1, 'Alice', x'6869'), (2, 'Bob', NULL);
CREATE TABLE tags(name TEXT);
`

func setupDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ci.db")
	db, err := stdSQL.Open(sql.DriverName, path)
	require.Nil(t, err)
	defer db.Close()
	_, err = db.Exec(setupSQL)
	require.Nil(t, err)
	return path
}

func TestRun(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.json")
	cfg := &Config{
		DB:     DBConfig{Path: setupDB(t)},
		Output: OutputConfig{Path: out, BlobEncoding: "text"},
	}
	require.Nil(t, run(context.Background(), cfg))

	data, err := os.ReadFile(out)
	require.Nil(t, err)
	assert.Contains(t, string(data), `"users":[{"id":1,"name":"Alice","avatar":"hi"},{"id":2,"name":"Bob","avatar":null}]`)
	assert.Contains(t, string(data), `"tags":[]`)
	assert.Equal(t, byte('\n'), data[len(data)-1])
}

func TestRunTables(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.json")
	cfg := &Config{
		DB:     DBConfig{Path: setupDB(t), Tables: []string{"tags"}},
		Output: OutputConfig{Path: out},
	}
	require.Nil(t, run(context.Background(), cfg))

	data, err := os.ReadFile(out)
	require.Nil(t, err)
	assert.Equal(t, `{"database_schema":{"tags":[{"cid":0,"name":"name","type":"TEXT","notnull":0,"dflt_value":null,"pk":0}]},"data":{"tags":[]}}`+"\n", string(data))
}

func TestRunErrors(t *testing.T) {
	t.Run("missing database leaves no output", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "out.json")
		cfg := &Config{
			DB:     DBConfig{Path: filepath.Join(t.TempDir(), "missing.db")},
			Output: OutputConfig{Path: out},
		}
		err := run(context.Background(), cfg)
		assert.True(t, errors.Is(err, sql.KindOpen))
		assert.Equal(t, 2, exitCode(err))
		_, statErr := os.Stat(out)
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("invalid blob encoding", func(t *testing.T) {
		cfg := &Config{
			DB:     DBConfig{Path: setupDB(t)},
			Output: OutputConfig{BlobEncoding: "hex"},
		}
		err := run(context.Background(), cfg)
		assert.NotNil(t, err)
		assert.Equal(t, 1, exitCode(err))
	})

	t.Run("canceled context", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "out.json")
		cfg := &Config{
			DB:     DBConfig{Path: setupDB(t)},
			Output: OutputConfig{Path: out},
		}
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := run(ctx, cfg)
		assert.Equal(t, 3, exitCode(err))
		_, statErr := os.Stat(out)
		assert.True(t, os.IsNotExist(statErr))
	})
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, exitCode(nil))
	assert.Equal(t, 1, exitCode(errors.New("boom")))
	assert.Equal(t, 2, exitCode(sql.NewError(sql.KindOpen, "open")))
	assert.Equal(t, 3, exitCode(sql.NewError(sql.KindQuery, "query")))
	assert.Equal(t, 4, exitCode(sql.NewError(sql.KindSchema, "schema")))
}
