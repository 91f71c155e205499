package database

import (
	"database/sql"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type seedTeam struct {
	name        string
	baseCountry string
}

type seedPilot struct {
	name      string
	team      string
	carNumber int
}

type seedCircuit struct {
	name     string
	location string
	lengthKM float64
	laps     int
}

type seedEvent struct {
	name    string
	circuit string
	startAt time.Time
}

var seedTeams = []seedTeam{
	{"Toyota Gazoo Racing YPF Infinia", "Argentina"},
	{"Honda Racing Team", "Argentina"},
	{"YPF Elaion AURO Pro Racing", "Argentina"},
	{"Axion Energy Sport", "Argentina"},
	{"Fiat", "Argentina"},
	{"Chevrolet", "Argentina"},
}

var seedPilots = []seedPilot{
	{"Matías Rossi", "Toyota Gazoo Racing YPF Infinia", 163},
	{"Emiliano Stang", "Toyota Gazoo Racing YPF Infinia", 137},
	{"Franco Vivian", "YPF Elaion AURO Pro Racing", 132},
	{"Leonel Pernía", "Honda Racing Team", 106},
	{"Franco Morillo", "Honda Racing Team", 84},
	{"Facundo Aldrighetti", "YPF Elaion AURO Pro Racing", 68},
	{"Ulises Campillay", "YPF Elaion AURO Pro Racing", 72},
	{"Gabriel P. de León", "Toyota Gazoo Racing YPF Infinia", 74},
	{"Marcelo Ciarrocchi", "Toyota Gazoo Racing YPF Infinia", 76},
	{"Tiago Pernía", "Honda Racing Team", 46},
	{"Matías Capurro", "Axion Energy Sport", 38},
	{"Nicolás Palau", "Fiat", 26},
	{"Mateo Polakovich", "Fiat", 30},
	{"Figgo Bessone", "Chevrolet", 22},
}

var seedCircuits = []seedCircuit{
	{"Autódromo Oscar Cabalén", "Córdoba, Argentina", 3.2, 20},
	{"Autódromo Termas de Río Hondo", "Santiago del Estero, Argentina", 4.8, 25},
}

var seedEvents = []seedEvent{
	{"Ronda Córdoba", "Autódromo Oscar Cabalén", time.Date(2025, 11, 10, 14, 0, 0, 0, time.UTC)},
	{"Ronda Termas", "Autódromo Termas de Río Hondo", time.Date(2025, 11, 24, 14, 0, 0, 0, time.UTC)},
}

// Seed bootstraps a fresh database with the admin account and the initial
// championship data (teams, pilots, circuits, events). Idempotent: a store
// that already has users is left untouched, so restarting never duplicates
// rows or resets the admin password.
func Seed(db *sql.DB, adminPassword string) error {
	var users int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&users); err != nil {
		return fmt.Errorf("failed to check for existing users: %w", err)
	}
	if users > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()

	if _, err := tx.Exec(
		`INSERT INTO users (username, email, password_hash, role, created_at) VALUES (?, ?, ?, 'admin', ?)`,
		"admin", "admin@tc2000.local", string(hash), now,
	); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	teamIDs := make(map[string]int64, len(seedTeams))
	for _, team := range seedTeams {
		res, err := tx.Exec(
			`INSERT INTO teams (name, base_country, created_at) VALUES (?, ?, ?)`,
			team.name, team.baseCountry, now,
		)
		if err != nil {
			return fmt.Errorf("failed to seed team %s: %w", team.name, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get seeded team ID: %w", err)
		}
		teamIDs[team.name] = id
	}

	for _, pilot := range seedPilots {
		if _, err := tx.Exec(
			`INSERT INTO pilots (name, team_id, car_number, current_score, created_at) VALUES (?, ?, ?, 0, ?)`,
			pilot.name, teamIDs[pilot.team], pilot.carNumber, now,
		); err != nil {
			return fmt.Errorf("failed to seed pilot %s: %w", pilot.name, err)
		}
	}

	circuitIDs := make(map[string]int64, len(seedCircuits))
	for _, circuit := range seedCircuits {
		res, err := tx.Exec(
			`INSERT INTO circuits (name, location, length_km, laps, created_at) VALUES (?, ?, ?, ?, ?)`,
			circuit.name, circuit.location, circuit.lengthKM, circuit.laps, now,
		)
		if err != nil {
			return fmt.Errorf("failed to seed circuit %s: %w", circuit.name, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get seeded circuit ID: %w", err)
		}
		circuitIDs[circuit.name] = id
	}

	for _, event := range seedEvents {
		if _, err := tx.Exec(
			`INSERT INTO events (name, circuit_id, start_at, status, results_published, created_at) VALUES (?, ?, ?, 'scheduled', 0, ?)`,
			event.name, circuitIDs[event.circuit], event.startAt, now,
		); err != nil {
			return fmt.Errorf("failed to seed event %s: %w", event.name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed transaction: %w", err)
	}

	return nil
}
