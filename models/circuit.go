package models

import (
	"time"
)

// Circuit represents a race track
type Circuit struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Location  string    `json:"location" db:"location"`
	LengthKM  float64   `json:"length_km" db:"length_km"`
	Laps      int       `json:"laps" db:"laps"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CircuitForm represents form data for creating circuits
type CircuitForm struct {
	Name     string  `json:"name"`
	Location string  `json:"location"`
	LengthKM float64 `json:"length_km"`
	Laps     int     `json:"laps"`
}

// Validate validates the circuit form data
func (f *CircuitForm) Validate() []string {
	var errors []string

	if f.Name == "" {
		errors = append(errors, "Name is required")
	}

	if f.LengthKM <= 0 {
		errors = append(errors, "Length must be positive")
	}

	if f.Laps <= 0 {
		errors = append(errors, "Laps must be positive")
	}

	return errors
}
