package repositories

import (
	"database/sql"
	"time"

	"github.com/tc2000/fantasy/models"
)

// AuditRepository handles the append-only audit trail. The core only ever
// writes; reading the trail back is a reporting concern outside this service.
type AuditRepository interface {
	Create(entry *models.AuditEntry) error
}

type sqliteAuditRepository struct {
	db *sql.DB
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(db *sql.DB) AuditRepository {
	return &sqliteAuditRepository{db: db}
}

// Create appends a new audit entry. ActorID nil is stored as NULL.
func (r *sqliteAuditRepository) Create(entry *models.AuditEntry) error {
	query := `
		INSERT INTO audit_log (actor_id, actor_ip, action, resource_type, resource_id, details, result, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	var actorID sql.NullInt64
	if entry.ActorID != nil {
		actorID = sql.NullInt64{Int64: int64(*entry.ActorID), Valid: true}
	}

	result, err := r.db.Exec(
		query,
		actorID,
		entry.ActorIP,
		entry.Action,
		entry.ResourceType,
		entry.ResourceID,
		entry.Details,
		entry.Result,
		entry.CreatedAt,
	)
	if err != nil {
		return err
	}

	if id, err := result.LastInsertId(); err == nil {
		entry.ID = id
	}

	return nil
}
