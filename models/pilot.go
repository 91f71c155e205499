package models

import (
	"time"
)

// Pilot represents a racing driver. TeamID is nullable: a pilot may be
// temporarily unassigned, in which case TeamName falls back to "Sin equipo".
type Pilot struct {
	ID           int       `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	TeamID       *int      `json:"team_id,omitempty" db:"team_id"`
	TeamName     string    `json:"team" db:"-"`
	CarNumber    int       `json:"car_number" db:"car_number"`
	CurrentScore int       `json:"current_score" db:"current_score"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// PilotForm represents form data for creating/updating pilots
type PilotForm struct {
	Name      string `json:"name"`
	TeamID    *int   `json:"team_id"`
	CarNumber int    `json:"car_number"`
}

// Validate validates the pilot form data
func (f *PilotForm) Validate() []string {
	var errors []string

	if f.Name == "" {
		errors = append(errors, "Name is required")
	}

	if len(f.Name) > 100 {
		errors = append(errors, "Name must be less than 100 characters")
	}

	if f.CarNumber <= 0 {
		errors = append(errors, "Car number must be positive")
	}

	if f.TeamID != nil && *f.TeamID <= 0 {
		errors = append(errors, "Team ID must be positive")
	}

	return errors
}
