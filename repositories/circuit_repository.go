package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tc2000/fantasy/models"
)

// CircuitRepository interface defines circuit database operations
type CircuitRepository interface {
	GetAll(ctx context.Context) ([]models.Circuit, error)
	GetByID(ctx context.Context, id int) (*models.Circuit, error)
	Create(ctx context.Context, circuit *models.Circuit) error
}

// circuitRepository implements CircuitRepository interface
type circuitRepository struct {
	db *sql.DB
}

// NewCircuitRepository creates a new circuit repository
func NewCircuitRepository(db *sql.DB) CircuitRepository {
	return &circuitRepository{db: db}
}

// GetAll retrieves all circuits
func (r *circuitRepository) GetAll(ctx context.Context) ([]models.Circuit, error) {
	query := `
		SELECT id, name, location, length_km, laps, created_at
		FROM circuits
		ORDER BY name ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query circuits: %w", err)
	}
	defer rows.Close()

	var circuits []models.Circuit
	for rows.Next() {
		var circuit models.Circuit
		var location sql.NullString

		err := rows.Scan(
			&circuit.ID,
			&circuit.Name,
			&location,
			&circuit.LengthKM,
			&circuit.Laps,
			&circuit.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan circuit: %w", err)
		}

		if location.Valid {
			circuit.Location = location.String
		}

		circuits = append(circuits, circuit)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating circuits: %w", err)
	}

	return circuits, nil
}

// GetByID retrieves a circuit by ID
func (r *circuitRepository) GetByID(ctx context.Context, id int) (*models.Circuit, error) {
	query := `
		SELECT id, name, location, length_km, laps, created_at
		FROM circuits
		WHERE id = ?
	`

	var circuit models.Circuit
	var location sql.NullString

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&circuit.ID,
		&circuit.Name,
		&location,
		&circuit.LengthKM,
		&circuit.Laps,
		&circuit.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("circuit with ID %d %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get circuit: %w", err)
	}

	if location.Valid {
		circuit.Location = location.String
	}

	return &circuit, nil
}

// Create creates a new circuit
func (r *circuitRepository) Create(ctx context.Context, circuit *models.Circuit) error {
	query := `
		INSERT INTO circuits (name, location, length_km, laps, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	if circuit.CreatedAt.IsZero() {
		circuit.CreatedAt = time.Now()
	}

	result, err := r.db.ExecContext(ctx, query,
		circuit.Name,
		circuit.Location,
		circuit.LengthKM,
		circuit.Laps,
		circuit.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create circuit: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted ID: %w", err)
	}

	circuit.ID = int(id)
	return nil
}
