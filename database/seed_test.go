package database

import (
	"os"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/crypto/bcrypt"
)

func setupSeededDB(t *testing.T) {
	dbPath := "test_" + time.Now().Format("20060102150405.000000000") + ".db"

	t.Cleanup(func() {
		CloseDB()
		os.Remove(dbPath)
	})

	if err := InitializeDatabase(dbPath); err != nil {
		t.Fatalf("Failed to initialize test database: %v", err)
	}

	if err := Seed(GetDB(), "changeme"); err != nil {
		t.Fatalf("Failed to seed database: %v", err)
	}
}

func TestSeedBootstrapsAdminAndChampionshipData(t *testing.T) {
	setupSeededDB(t)
	db := GetDB()

	// Admin account with a working bcrypt hash
	var role, hash string
	err := db.QueryRow("SELECT role, password_hash FROM users WHERE username = 'admin'").Scan(&role, &hash)
	if err != nil {
		t.Fatalf("Failed to look up seeded admin: %v", err)
	}

	if role != "admin" {
		t.Errorf("Expected seeded admin role 'admin', got %s", role)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte("changeme")); err != nil {
		t.Errorf("Seeded admin hash does not match the supplied password: %v", err)
	}

	// Championship data
	counts := map[string]int{
		"teams":    6,
		"pilots":   14,
		"circuits": 2,
		"events":   2,
	}
	for table, want := range counts {
		var got int
		if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&got); err != nil {
			t.Fatalf("Failed to count %s: %v", table, err)
		}
		if got != want {
			t.Errorf("Expected %d seeded %s, got %d", want, table, got)
		}
	}

	// Every seeded pilot belongs to a seeded team
	var orphans int
	err = db.QueryRow("SELECT COUNT(*) FROM pilots WHERE team_id IS NULL").Scan(&orphans)
	if err != nil {
		t.Fatalf("Failed to count unassigned pilots: %v", err)
	}
	if orphans != 0 {
		t.Errorf("Expected no unassigned seeded pilots, got %d", orphans)
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	setupSeededDB(t)
	db := GetDB()

	// A second pass must not duplicate rows or reset the admin password
	var hashBefore string
	if err := db.QueryRow("SELECT password_hash FROM users WHERE username = 'admin'").Scan(&hashBefore); err != nil {
		t.Fatalf("Failed to read admin hash: %v", err)
	}

	if err := Seed(db, "different-password"); err != nil {
		t.Fatalf("Second seed pass failed: %v", err)
	}

	var users, teams int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&users); err != nil {
		t.Fatalf("Failed to count users: %v", err)
	}
	if err := db.QueryRow("SELECT COUNT(*) FROM teams").Scan(&teams); err != nil {
		t.Fatalf("Failed to count teams: %v", err)
	}

	if users != 1 {
		t.Errorf("Expected 1 user after reseeding, got %d", users)
	}
	if teams != 6 {
		t.Errorf("Expected 6 teams after reseeding, got %d", teams)
	}

	var hashAfter string
	if err := db.QueryRow("SELECT password_hash FROM users WHERE username = 'admin'").Scan(&hashAfter); err != nil {
		t.Fatalf("Failed to read admin hash: %v", err)
	}
	if hashAfter != hashBefore {
		t.Error("Expected reseeding to leave the admin password untouched")
	}
}
