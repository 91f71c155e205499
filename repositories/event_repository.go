package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tc2000/fantasy/models"
)

// EventRepository interface defines race event database operations
type EventRepository interface {
	GetAll(ctx context.Context) ([]models.RaceEvent, error)
	GetByID(ctx context.Context, id int) (*models.RaceEvent, error)
	Create(ctx context.Context, event *models.RaceEvent) error
	Update(ctx context.Context, event *models.RaceEvent) error
}

// eventRepository implements EventRepository interface
type eventRepository struct {
	db *sql.DB
}

// NewEventRepository creates a new race event repository
func NewEventRepository(db *sql.DB) EventRepository {
	return &eventRepository{db: db}
}

// GetAll retrieves all race events ordered by start time
func (r *eventRepository) GetAll(ctx context.Context) ([]models.RaceEvent, error) {
	query := `
		SELECT id, name, circuit_id, start_at, status, results_published, created_at
		FROM events
		ORDER BY start_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []models.RaceEvent
	for rows.Next() {
		var event models.RaceEvent

		err := rows.Scan(
			&event.ID,
			&event.Name,
			&event.CircuitID,
			&event.StartAt,
			&event.Status,
			&event.ResultsPublished,
			&event.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}

		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}

	return events, nil
}

// GetByID retrieves a race event by ID
func (r *eventRepository) GetByID(ctx context.Context, id int) (*models.RaceEvent, error) {
	query := `
		SELECT id, name, circuit_id, start_at, status, results_published, created_at
		FROM events
		WHERE id = ?
	`

	var event models.RaceEvent

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&event.ID,
		&event.Name,
		&event.CircuitID,
		&event.StartAt,
		&event.Status,
		&event.ResultsPublished,
		&event.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("event with ID %d %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	return &event, nil
}

// Create creates a new race event
func (r *eventRepository) Create(ctx context.Context, event *models.RaceEvent) error {
	query := `
		INSERT INTO events (name, circuit_id, start_at, status, results_published, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	if event.Status == "" {
		event.Status = models.EventScheduled
	}

	result, err := r.db.ExecContext(ctx, query,
		event.Name,
		event.CircuitID,
		event.StartAt,
		event.Status,
		event.ResultsPublished,
		event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted ID: %w", err)
	}

	event.ID = int(id)
	return nil
}

// Update updates an existing race event
func (r *eventRepository) Update(ctx context.Context, event *models.RaceEvent) error {
	query := `
		UPDATE events
		SET name = ?, circuit_id = ?, start_at = ?, status = ?, results_published = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		event.Name,
		event.CircuitID,
		event.StartAt,
		event.Status,
		event.ResultsPublished,
		event.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("event with ID %d not found", event.ID)
	}

	return nil
}
