package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tc2000/fantasy/models"
)

// TeamRepository interface defines racing team database operations
type TeamRepository interface {
	GetAll(ctx context.Context) ([]models.Team, error)
	GetByID(ctx context.Context, id int) (*models.Team, error)
	Create(ctx context.Context, team *models.Team) error
	Update(ctx context.Context, team *models.Team) error
	Delete(ctx context.Context, id int) error
	Count(ctx context.Context) (int, error)
}

// teamRepository implements TeamRepository interface
type teamRepository struct {
	db *sql.DB
}

// NewTeamRepository creates a new team repository
func NewTeamRepository(db *sql.DB) TeamRepository {
	return &teamRepository{db: db}
}

// GetAll retrieves all racing teams
func (r *teamRepository) GetAll(ctx context.Context) ([]models.Team, error) {
	query := `
		SELECT id, name, base_country, created_at
		FROM teams
		ORDER BY name ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query teams: %w", err)
	}
	defer rows.Close()

	var teams []models.Team
	for rows.Next() {
		var team models.Team
		var baseCountry sql.NullString

		err := rows.Scan(&team.ID, &team.Name, &baseCountry, &team.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}

		if baseCountry.Valid {
			team.BaseCountry = baseCountry.String
		}

		teams = append(teams, team)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating teams: %w", err)
	}

	return teams, nil
}

// GetByID retrieves a racing team by ID
func (r *teamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	query := `
		SELECT id, name, base_country, created_at
		FROM teams
		WHERE id = ?
	`

	var team models.Team
	var baseCountry sql.NullString

	err := r.db.QueryRowContext(ctx, query, id).Scan(&team.ID, &team.Name, &baseCountry, &team.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("team with ID %d %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get team: %w", err)
	}

	if baseCountry.Valid {
		team.BaseCountry = baseCountry.String
	}

	return &team, nil
}

// Create creates a new racing team
func (r *teamRepository) Create(ctx context.Context, team *models.Team) error {
	query := `
		INSERT INTO teams (name, base_country, created_at)
		VALUES (?, ?, ?)
	`

	if team.CreatedAt.IsZero() {
		team.CreatedAt = time.Now()
	}

	result, err := r.db.ExecContext(ctx, query, team.Name, team.BaseCountry, team.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create team: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted ID: %w", err)
	}

	team.ID = int(id)
	return nil
}

// Update updates an existing racing team
func (r *teamRepository) Update(ctx context.Context, team *models.Team) error {
	query := `
		UPDATE teams
		SET name = ?, base_country = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query, team.Name, team.BaseCountry, team.ID)
	if err != nil {
		return fmt.Errorf("failed to update team: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("team with ID %d not found", team.ID)
	}

	return nil
}

// Delete deletes a racing team by ID
func (r *teamRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM teams WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("team with ID %d not found", id)
	}

	return nil
}

// Count returns the total number of racing teams
func (r *teamRepository) Count(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM teams`

	var count int
	err := r.db.QueryRowContext(ctx, query).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count teams: %w", err)
	}

	return count, nil
}
