package repositories

import (
	"database/sql"
)

// Repositories struct holds all repository interfaces
type Repositories struct {
	User    UserRepository
	Team    TeamRepository
	Pilot   PilotRepository
	Circuit CircuitRepository
	Event   EventRepository
	Audit   AuditRepository
}

// NewRepositories creates and initializes all repositories
func NewRepositories(db *sql.DB) *Repositories {
	return &Repositories{
		User:    NewUserRepository(db),
		Team:    NewTeamRepository(db),
		Pilot:   NewPilotRepository(db),
		Circuit: NewCircuitRepository(db),
		Event:   NewEventRepository(db),
		Audit:   NewAuditRepository(db),
	}
}
