package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tc2000/fantasy/models"
)

// PilotRepository interface defines pilot database operations
type PilotRepository interface {
	GetAll(ctx context.Context) ([]models.Pilot, error)
	GetByID(ctx context.Context, id int) (*models.Pilot, error)
	Create(ctx context.Context, pilot *models.Pilot) error
	Update(ctx context.Context, pilot *models.Pilot) error
	Delete(ctx context.Context, id int) error
}

// pilotRepository implements PilotRepository interface
type pilotRepository struct {
	db *sql.DB
}

// NewPilotRepository creates a new pilot repository
func NewPilotRepository(db *sql.DB) PilotRepository {
	return &pilotRepository{db: db}
}

// GetAll retrieves all pilots with their team name resolved. Pilots without
// a team keep the "Sin equipo" placeholder.
func (r *pilotRepository) GetAll(ctx context.Context) ([]models.Pilot, error) {
	query := `
		SELECT p.id, p.name, p.team_id, t.name, p.car_number, p.current_score, p.created_at
		FROM pilots p
		LEFT JOIN teams t ON t.id = p.team_id
		ORDER BY p.car_number ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query pilots: %w", err)
	}
	defer rows.Close()

	var pilots []models.Pilot
	for rows.Next() {
		pilot, err := scanPilot(rows)
		if err != nil {
			return nil, err
		}
		pilots = append(pilots, *pilot)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pilots: %w", err)
	}

	return pilots, nil
}

// GetByID retrieves a pilot by ID
func (r *pilotRepository) GetByID(ctx context.Context, id int) (*models.Pilot, error) {
	query := `
		SELECT p.id, p.name, p.team_id, t.name, p.car_number, p.current_score, p.created_at
		FROM pilots p
		LEFT JOIN teams t ON t.id = p.team_id
		WHERE p.id = ?
	`

	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get pilot: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("failed to get pilot: %w", err)
		}
		return nil, fmt.Errorf("pilot with ID %d %w", id, ErrNotFound)
	}

	return scanPilot(rows)
}

// Create creates a new pilot
func (r *pilotRepository) Create(ctx context.Context, pilot *models.Pilot) error {
	query := `
		INSERT INTO pilots (name, team_id, car_number, current_score, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	if pilot.CreatedAt.IsZero() {
		pilot.CreatedAt = time.Now()
	}

	var teamID sql.NullInt64
	if pilot.TeamID != nil {
		teamID = sql.NullInt64{Int64: int64(*pilot.TeamID), Valid: true}
	}

	result, err := r.db.ExecContext(ctx, query,
		pilot.Name,
		teamID,
		pilot.CarNumber,
		pilot.CurrentScore,
		pilot.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create pilot: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted ID: %w", err)
	}

	pilot.ID = int(id)
	return nil
}

// Update updates an existing pilot
func (r *pilotRepository) Update(ctx context.Context, pilot *models.Pilot) error {
	query := `
		UPDATE pilots
		SET name = ?, team_id = ?, car_number = ?, current_score = ?
		WHERE id = ?
	`

	var teamID sql.NullInt64
	if pilot.TeamID != nil {
		teamID = sql.NullInt64{Int64: int64(*pilot.TeamID), Valid: true}
	}

	result, err := r.db.ExecContext(ctx, query,
		pilot.Name,
		teamID,
		pilot.CarNumber,
		pilot.CurrentScore,
		pilot.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update pilot: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("pilot with ID %d not found", pilot.ID)
	}

	return nil
}

// Delete deletes a pilot by ID
func (r *pilotRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM pilots WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete pilot: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("pilot with ID %d not found", id)
	}

	return nil
}

// scanPilot scans a pilot row with the joined team name
func scanPilot(rows *sql.Rows) (*models.Pilot, error) {
	var pilot models.Pilot
	var teamID sql.NullInt64
	var teamName sql.NullString

	err := rows.Scan(
		&pilot.ID,
		&pilot.Name,
		&teamID,
		&teamName,
		&pilot.CarNumber,
		&pilot.CurrentScore,
		&pilot.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan pilot: %w", err)
	}

	if teamID.Valid {
		id := int(teamID.Int64)
		pilot.TeamID = &id
	}
	if teamName.Valid {
		pilot.TeamName = teamName.String
	} else {
		pilot.TeamName = "Sin equipo"
	}

	return &pilot, nil
}
