package repositories

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/tc2000/fantasy/database"
	"github.com/tc2000/fantasy/models"
	_ "github.com/mattn/go-sqlite3"
)

func setupTestDB(t *testing.T) *sql.DB {
	// Create a temporary database for testing
	dbPath := "test_" + time.Now().Format("20060102150405.000000000") + ".db"

	// Clean up function
	t.Cleanup(func() {
		database.CloseDB()
		os.Remove(dbPath)
	})

	// Initialize test database using the actual migration system
	if err := database.InitializeDatabase(dbPath); err != nil {
		t.Fatalf("Failed to initialize test database: %v", err)
	}

	return database.GetDB()
}

func TestUserRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	// Test Create
	user := &models.User{
		Username:     "lucas",
		Email:        "lucas@example.com",
		PasswordHash: "$2a$10$notarealhash",
		Role:         models.RoleUser,
	}

	err := repo.Create(ctx, user)
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	if user.ID == 0 {
		t.Error("Expected user ID to be set after creation")
	}

	// Test GetByUsername
	retrieved, err := repo.GetByUsername(ctx, "lucas")
	if err != nil {
		t.Fatalf("Failed to get user by username: %v", err)
	}

	if retrieved.ID != user.ID {
		t.Errorf("Expected ID %d, got %d", user.ID, retrieved.ID)
	}
	if retrieved.Role != models.RoleUser {
		t.Errorf("Expected role %s, got %s", models.RoleUser, retrieved.Role)
	}
	if retrieved.LastLogin != nil {
		t.Error("Expected no last login on a fresh account")
	}

	// Test GetByID
	retrieved, err = repo.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("Failed to get user by ID: %v", err)
	}

	if retrieved.Username != "lucas" {
		t.Errorf("Expected username lucas, got %s", retrieved.Username)
	}

	// Test duplicate username
	err = repo.Create(ctx, &models.User{
		Username:     "lucas",
		PasswordHash: "$2a$10$notarealhash",
		Role:         models.RoleUser,
	})
	if err == nil {
		t.Error("Expected error when creating duplicate username")
	}

	// Test UpdateLastLogin
	when := time.Now()
	if err := repo.UpdateLastLogin(ctx, user.ID, when); err != nil {
		t.Fatalf("Failed to update last login: %v", err)
	}

	retrieved, err = repo.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("Failed to get user after login update: %v", err)
	}

	if retrieved.LastLogin == nil {
		t.Error("Expected last login to be set")
	}

	// Test missing user
	_, err = repo.GetByUsername(ctx, "nobody")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for missing user, got %v", err)
	}
}

func TestTeamRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTeamRepository(db)
	ctx := context.Background()

	// Test Create
	team := &models.Team{
		Name:        "Escudería Norte",
		BaseCountry: "Argentina",
	}

	err := repo.Create(ctx, team)
	if err != nil {
		t.Fatalf("Failed to create team: %v", err)
	}

	if team.ID == 0 {
		t.Error("Expected team ID to be set after creation")
	}

	// Test GetByID
	retrieved, err := repo.GetByID(ctx, team.ID)
	if err != nil {
		t.Fatalf("Failed to get team by ID: %v", err)
	}

	if retrieved.Name != team.Name {
		t.Errorf("Expected name %s, got %s", team.Name, retrieved.Name)
	}

	// Test GetAll
	teams, err := repo.GetAll(ctx)
	if err != nil {
		t.Fatalf("Failed to get all teams: %v", err)
	}

	if len(teams) != 1 {
		t.Errorf("Expected 1 team, got %d", len(teams))
	}

	// Test Update
	team.Name = "Escudería Sur"
	err = repo.Update(ctx, team)
	if err != nil {
		t.Fatalf("Failed to update team: %v", err)
	}

	updated, err := repo.GetByID(ctx, team.ID)
	if err != nil {
		t.Fatalf("Failed to get updated team: %v", err)
	}

	if updated.Name != "Escudería Sur" {
		t.Errorf("Expected updated name 'Escudería Sur', got %s", updated.Name)
	}

	// Test Count
	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Failed to count teams: %v", err)
	}

	if count != 1 {
		t.Errorf("Expected count 1, got %d", count)
	}

	// Test Delete
	err = repo.Delete(ctx, team.ID)
	if err != nil {
		t.Fatalf("Failed to delete team: %v", err)
	}

	// Verify deletion
	_, err = repo.GetByID(ctx, team.ID)
	if err == nil {
		t.Error("Expected error when getting deleted team")
	}
}

func TestPilotRepository(t *testing.T) {
	db := setupTestDB(t)
	teams := NewTeamRepository(db)
	repo := NewPilotRepository(db)
	ctx := context.Background()

	team := &models.Team{Name: "Equipo Azul"}
	if err := teams.Create(ctx, team); err != nil {
		t.Fatalf("Failed to create team: %v", err)
	}

	// Test Create with a team
	pilot := &models.Pilot{
		Name:      "Juan Pérez",
		TeamID:    &team.ID,
		CarNumber: 7,
	}

	err := repo.Create(ctx, pilot)
	if err != nil {
		t.Fatalf("Failed to create pilot: %v", err)
	}

	if pilot.ID == 0 {
		t.Error("Expected pilot ID to be set after creation")
	}

	// Test GetByID resolves the team name
	retrieved, err := repo.GetByID(ctx, pilot.ID)
	if err != nil {
		t.Fatalf("Failed to get pilot by ID: %v", err)
	}

	if retrieved.TeamName != "Equipo Azul" {
		t.Errorf("Expected team name 'Equipo Azul', got %s", retrieved.TeamName)
	}

	// Test Create without a team
	loner := &models.Pilot{
		Name:      "Pedro Gómez",
		CarNumber: 22,
	}

	if err := repo.Create(ctx, loner); err != nil {
		t.Fatalf("Failed to create unassigned pilot: %v", err)
	}

	retrieved, err = repo.GetByID(ctx, loner.ID)
	if err != nil {
		t.Fatalf("Failed to get unassigned pilot: %v", err)
	}

	if retrieved.TeamID != nil {
		t.Error("Expected unassigned pilot to have no team ID")
	}
	if retrieved.TeamName != "Sin equipo" {
		t.Errorf("Expected fallback team name 'Sin equipo', got %s", retrieved.TeamName)
	}

	// Test GetAll
	pilots, err := repo.GetAll(ctx)
	if err != nil {
		t.Fatalf("Failed to get all pilots: %v", err)
	}

	if len(pilots) != 2 {
		t.Errorf("Expected 2 pilots, got %d", len(pilots))
	}

	// Test duplicate car number
	err = repo.Create(ctx, &models.Pilot{Name: "Otro", CarNumber: 7})
	if err == nil {
		t.Error("Expected error when reusing a car number")
	}

	// Test Update reassigns the team away
	pilot.TeamID = nil
	pilot.Name = "Juan P. Pérez"
	if err := repo.Update(ctx, pilot); err != nil {
		t.Fatalf("Failed to update pilot: %v", err)
	}

	updated, err := repo.GetByID(ctx, pilot.ID)
	if err != nil {
		t.Fatalf("Failed to get updated pilot: %v", err)
	}

	if updated.Name != "Juan P. Pérez" {
		t.Errorf("Expected updated name 'Juan P. Pérez', got %s", updated.Name)
	}
	if updated.TeamID != nil {
		t.Error("Expected pilot to be unassigned after update")
	}

	// Test Delete
	if err := repo.Delete(ctx, pilot.ID); err != nil {
		t.Fatalf("Failed to delete pilot: %v", err)
	}

	if _, err := repo.GetByID(ctx, pilot.ID); err == nil {
		t.Error("Expected error when getting deleted pilot")
	}
}

func TestCircuitAndEventRepositories(t *testing.T) {
	db := setupTestDB(t)
	circuits := NewCircuitRepository(db)
	events := NewEventRepository(db)
	ctx := context.Background()

	// Test circuit Create
	circuit := &models.Circuit{
		Name:     "Autódromo de Buenos Aires",
		Location: "Buenos Aires",
		LengthKM: 3.3,
		Laps:     40,
	}

	if err := circuits.Create(ctx, circuit); err != nil {
		t.Fatalf("Failed to create circuit: %v", err)
	}

	if circuit.ID == 0 {
		t.Error("Expected circuit ID to be set after creation")
	}

	all, err := circuits.GetAll(ctx)
	if err != nil {
		t.Fatalf("Failed to get all circuits: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("Expected 1 circuit, got %d", len(all))
	}

	// Test event Create defaults status to scheduled
	event := &models.RaceEvent{
		Name:      "Fecha 1",
		CircuitID: circuit.ID,
		StartAt:   time.Now().Add(48 * time.Hour),
	}

	if err := events.Create(ctx, event); err != nil {
		t.Fatalf("Failed to create event: %v", err)
	}

	retrieved, err := events.GetByID(ctx, event.ID)
	if err != nil {
		t.Fatalf("Failed to get event by ID: %v", err)
	}

	if retrieved.Status != models.EventScheduled {
		t.Errorf("Expected status %s, got %s", models.EventScheduled, retrieved.Status)
	}
	if retrieved.ResultsPublished {
		t.Error("Expected results to start unpublished")
	}

	// Test event Update
	event.Status = models.EventRunning
	event.ResultsPublished = false
	if err := events.Update(ctx, event); err != nil {
		t.Fatalf("Failed to update event: %v", err)
	}

	updated, err := events.GetByID(ctx, event.ID)
	if err != nil {
		t.Fatalf("Failed to get updated event: %v", err)
	}

	if updated.Status != models.EventRunning {
		t.Errorf("Expected status %s, got %s", models.EventRunning, updated.Status)
	}
}

func TestAuditRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAuditRepository(db)

	// Test Create with an actor
	actorID := 42
	entry := &models.AuditEntry{
		ActorID:      &actorID,
		ActorIP:      "10.0.0.9",
		Action:       "TEAM_CREATE",
		ResourceType: "team",
		ResourceID:   "3",
		Details:      `{"name":"Equipo Azul"}`,
		Result:       models.AuditSuccess,
	}

	if err := repo.Create(entry); err != nil {
		t.Fatalf("Failed to create audit entry: %v", err)
	}

	if entry.ID == 0 {
		t.Error("Expected audit entry ID to be set after creation")
	}

	// Test Create without an actor stores NULL
	anonymous := &models.AuditEntry{
		ActorIP: "10.0.0.9",
		Action:  "LOGIN_FAIL",
		Result:  models.AuditFail,
	}

	if err := repo.Create(anonymous); err != nil {
		t.Fatalf("Failed to create anonymous audit entry: %v", err)
	}

	var storedActor sql.NullInt64
	row := db.QueryRow("SELECT actor_id FROM audit_log WHERE id = ?", anonymous.ID)
	if err := row.Scan(&storedActor); err != nil {
		t.Fatalf("Failed to read back audit entry: %v", err)
	}

	if storedActor.Valid {
		t.Error("Expected NULL actor for anonymous entry")
	}

	row = db.QueryRow("SELECT actor_id FROM audit_log WHERE id = ?", entry.ID)
	if err := row.Scan(&storedActor); err != nil {
		t.Fatalf("Failed to read back audit entry: %v", err)
	}

	if !storedActor.Valid || storedActor.Int64 != 42 {
		t.Errorf("Expected actor 42, got %+v", storedActor)
	}
}
