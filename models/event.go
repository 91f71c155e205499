package models

import (
	"time"
)

// Race event status values
const (
	EventScheduled = "scheduled"
	EventRunning   = "running"
	EventFinished  = "finished"
)

// RaceEvent represents a championship round held at a circuit
type RaceEvent struct {
	ID               int       `json:"id" db:"id"`
	Name             string    `json:"name" db:"name"`
	CircuitID        int       `json:"circuit_id" db:"circuit_id"`
	StartAt          time.Time `json:"start_at" db:"start_at"`
	Status           string    `json:"status" db:"status"`
	ResultsPublished bool      `json:"results_published" db:"results_published"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
}

// RaceEventForm represents form data for creating/updating race events
type RaceEventForm struct {
	Name      string    `json:"name"`
	CircuitID int       `json:"circuit_id"`
	StartAt   time.Time `json:"start_at"`
	Status    string    `json:"status"`
}

// Validate validates the race event form data
func (f *RaceEventForm) Validate() []string {
	var errors []string

	if f.Name == "" {
		errors = append(errors, "Name is required")
	}

	if f.CircuitID <= 0 {
		errors = append(errors, "Circuit ID must be positive")
	}

	if f.StartAt.IsZero() {
		errors = append(errors, "Start time is required")
	}

	if f.Status != "" && f.Status != EventScheduled && f.Status != EventRunning && f.Status != EventFinished {
		errors = append(errors, "Status must be one of scheduled, running, finished")
	}

	return errors
}
