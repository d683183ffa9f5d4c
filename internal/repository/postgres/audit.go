package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/pratik-mahalle/cloudmgr/internal/domain/audit"
	"github.com/pratik-mahalle/cloudmgr/internal/pkg/errors"
)

// AuditRepository implements audit.Repository
type AuditRepository struct {
	db *DB
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(db *DB) audit.Repository {
	return &AuditRepository{db: db}
}

// insertEntry appends an entry inside the caller's transaction
func insertEntry(ctx context.Context, tx *sql.Tx, db *DB, e *audit.Entry) error {
	details, err := json.Marshal(e.Details)
	if err != nil {
		return errors.DatabaseError("Failed to encode action log details", err)
	}

	var resourceID interface{}
	if e.ResourceID != nil {
		resourceID = *e.ResourceID
	}

	query := db.Rebind(`
		INSERT INTO action_logs (timestamp, resource_id, resource_name, user_email, action, status, provider, details)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`)

	err = tx.QueryRowContext(ctx, query,
		e.Timestamp.Unix(), resourceID, e.ResourceName, e.UserEmail, e.Action, e.Status, e.Provider, string(details),
	).Scan(&e.ID)
	if err != nil {
		return errors.DatabaseError("Failed to write action log", err)
	}

	return nil
}

// List returns entries newest first. The resource name is the current one
// while the resource exists and the recorded snapshot afterwards.
func (r *AuditRepository) List(ctx context.Context, limit int) ([]*audit.Entry, error) {
	query := `
		SELECT l.id, l.timestamp, l.resource_id, COALESCE(res.name, l.resource_name),
			l.user_email, l.action, l.status, l.provider, l.details
		FROM action_logs l
		LEFT JOIN resources res ON res.id = l.resource_id
		ORDER BY l.timestamp DESC, l.id DESC
	`
	var args []interface{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	return r.query(ctx, r.db.Rebind(query), args...)
}

// ListByResource returns the entries attached to a resource, oldest first
func (r *AuditRepository) ListByResource(ctx context.Context, resourceID int64) ([]*audit.Entry, error) {
	query := r.db.Rebind(`
		SELECT id, timestamp, resource_id, resource_name, user_email, action, status, provider, details
		FROM action_logs
		WHERE resource_id = ?
		ORDER BY id
	`)

	return r.query(ctx, query, resourceID)
}

func (r *AuditRepository) query(ctx context.Context, query string, args ...interface{}) ([]*audit.Entry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list action logs", err)
	}
	defer rows.Close()

	entries := []*audit.Entry{}
	for rows.Next() {
		var e audit.Entry
		var ts int64
		var resourceID sql.NullInt64
		var details string

		if err := rows.Scan(
			&e.ID, &ts, &resourceID, &e.ResourceName, &e.UserEmail, &e.Action, &e.Status, &e.Provider, &details,
		); err != nil {
			return nil, errors.DatabaseError("Failed to scan action log", err)
		}

		e.Timestamp = unixTime(ts)
		if resourceID.Valid {
			id := resourceID.Int64
			e.ResourceID = &id
		}
		e.Details = map[string]interface{}{}
		if details != "" {
			if err := json.Unmarshal([]byte(details), &e.Details); err != nil {
				return nil, errors.DatabaseError("Failed to decode action log details", err)
			}
		}

		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to list action logs", err)
	}

	return entries, nil
}
