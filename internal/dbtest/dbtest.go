// Package dbtest opens throwaway SQLite databases with the full schema for
// package tests.
package dbtest

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"dinefinder/internal/db"
)

var seq atomic.Int64

// Open returns a migrated SQLite database under t.TempDir().
func Open(t testing.TB) *sql.DB {
	t.Helper()

	sqlDB, err := db.OpenSQLite(filepath.Join(t.TempDir(), "dinefinder.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	return sqlDB
}

func now() int64 { return time.Now().UTC().UnixMilli() }

// User inserts a user named name and returns its id.
func User(t testing.TB, sqlDB *sql.DB, name string) int64 {
	t.Helper()
	var id int64
	email := fmt.Sprintf("user%d@example.com", seq.Add(1))
	err := sqlDB.QueryRow(
		`INSERT INTO users (name, email, created_at) VALUES (?, ?, ?) RETURNING id`,
		name, email, now(),
	).Scan(&id)
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return id
}

// Owner inserts an owner account and returns its id.
func Owner(t testing.TB, sqlDB *sql.DB, name string) int64 {
	t.Helper()
	var id int64
	email := fmt.Sprintf("owner%d@example.com", seq.Add(1))
	err := sqlDB.QueryRow(
		`INSERT INTO owners (name, email, created_at) VALUES (?, ?, ?) RETURNING id`,
		name, email, now(),
	).Scan(&id)
	if err != nil {
		t.Fatalf("seed owner: %v", err)
	}
	return id
}

// Restaurant inserts an unclaimed restaurant. Pass id 0 to let the database
// assign one.
func Restaurant(t testing.TB, sqlDB *sql.DB, id int64, name, city string) int64 {
	t.Helper()
	ts := now()
	var (
		out int64
		err error
	)
	if id == 0 {
		err = sqlDB.QueryRow(
			`INSERT INTO restaurants (name, city, created_at, updated_at) VALUES (?, ?, ?, ?) RETURNING id`,
			name, city, ts, ts,
		).Scan(&out)
	} else {
		err = sqlDB.QueryRow(
			`INSERT INTO restaurants (id, name, city, created_at, updated_at) VALUES (?, ?, ?, ?, ?) RETURNING id`,
			id, name, city, ts, ts,
		).Scan(&out)
	}
	if err != nil {
		t.Fatalf("seed restaurant: %v", err)
	}
	return out
}
