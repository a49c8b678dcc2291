package models

import (
	"errors"
	"testing"
)

func TestCreateUser(t *testing.T) {
	db := testDB(t)

	t.Run("basic create", func(t *testing.T) {
		u, err := CreateUser(db, " ana@example.com ", "password123", "Ana")
		if err != nil {
			t.Fatalf("create user: %v", err)
		}
		if u.Email != "ana@example.com" {
			t.Errorf("email = %q, want ana@example.com", u.Email)
		}
		if u.Name != "Ana" {
			t.Errorf("name = %q, want Ana", u.Name)
		}
		if u.PasswordHash == "password123" || u.PasswordHash == "" {
			t.Error("password should be stored hashed")
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := CreateUser(db, "ana@example.com", "other", "")
		if !errors.Is(err, ErrDuplicateEmail) {
			t.Errorf("err = %v, want ErrDuplicateEmail", err)
		}
	})

	t.Run("case insensitive duplicate", func(t *testing.T) {
		_, err := CreateUser(db, "ANA@example.com", "other", "")
		if !errors.Is(err, ErrDuplicateEmail) {
			t.Errorf("err = %v, want ErrDuplicateEmail", err)
		}
	})
}

func TestAuthenticate(t *testing.T) {
	db := testDB(t)
	seedUser(t, db, "luis@example.com")

	t.Run("valid credentials", func(t *testing.T) {
		u, err := Authenticate(db, "luis@example.com", "password123")
		if err != nil {
			t.Fatalf("authenticate: %v", err)
		}
		if u.Email != "luis@example.com" {
			t.Errorf("email = %q", u.Email)
		}
	})

	t.Run("email lookup ignores case", func(t *testing.T) {
		if _, err := Authenticate(db, "LUIS@EXAMPLE.COM", "password123"); err != nil {
			t.Fatalf("authenticate: %v", err)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := Authenticate(db, "luis@example.com", "wrong-password")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := Authenticate(db, "nadie@example.com", "password123")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})
}

func TestUpdatePassword(t *testing.T) {
	db := testDB(t)
	u := seedUser(t, db, "eva@example.com")

	if err := UpdatePassword(db, u.ID, "new-secret-1"); err != nil {
		t.Fatalf("update password: %v", err)
	}
	if _, err := Authenticate(db, "eva@example.com", "password123"); !errors.Is(err, ErrNotFound) {
		t.Errorf("old password still accepted: %v", err)
	}
	if _, err := Authenticate(db, "eva@example.com", "new-secret-1"); err != nil {
		t.Errorf("new password rejected: %v", err)
	}
	if err := UpdatePassword(db, 9999, "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing user err = %v, want ErrNotFound", err)
	}

	n, err := CountUsers(db)
	if err != nil {
		t.Fatalf("count users: %v", err)
	}
	if n != 1 {
		t.Errorf("count = %d, want 1", n)
	}
}
