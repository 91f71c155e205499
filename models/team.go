package models

import (
	"time"
)

// Team represents a racing team
type Team struct {
	ID          int       `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	BaseCountry string    `json:"base_country" db:"base_country"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// TeamForm represents form data for creating/updating teams
type TeamForm struct {
	Name        string `json:"name"`
	BaseCountry string `json:"base_country"`
}

// Validate validates the team form data
func (f *TeamForm) Validate() []string {
	var errors []string

	if f.Name == "" {
		errors = append(errors, "Name is required")
	}

	if len(f.Name) > 100 {
		errors = append(errors, "Name must be less than 100 characters")
	}

	if len(f.BaseCountry) > 100 {
		errors = append(errors, "Base country must be less than 100 characters")
	}

	return errors
}
