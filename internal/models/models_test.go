package models

import (
	"database/sql"
	"testing"

	"github.com/sasfit/sasback/internal/database"
)

// testDB creates a fresh in-memory SQLite database with migrations applied.
func testDB(t testing.TB) *sql.DB {
	t.Helper()

	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := database.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("run migrations: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

// seedUser creates a user with a unique email and returns it.
func seedUser(t testing.TB, db *sql.DB, email string) *User {
	t.Helper()
	u, err := CreateUser(db, email, "password123", "Test")
	if err != nil {
		t.Fatalf("seed user %s: %v", email, err)
	}
	return u
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
func stringPtr(v string) *string  { return &v }
