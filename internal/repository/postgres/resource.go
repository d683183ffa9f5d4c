package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/pratik-mahalle/cloudmgr/internal/domain/audit"
	"github.com/pratik-mahalle/cloudmgr/internal/domain/resource"
	"github.com/pratik-mahalle/cloudmgr/internal/pkg/errors"
)

const resourceColumns = `id, name, provider, type, region, external_id, status,
	cpu, memory, storage, cost_per_month, uptime, tags, created_at, updated_at`

// ResourceRepository implements resource.Repository
type ResourceRepository struct {
	db *DB
}

// NewResourceRepository creates a new resource repository
func NewResourceRepository(db *DB) resource.Repository {
	return &ResourceRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanResource(row rowScanner) (*resource.Resource, error) {
	var res resource.Resource
	var tags string
	var createdAt, updatedAt int64

	err := row.Scan(
		&res.ID, &res.Name, &res.Provider, &res.Type, &res.Region, &res.ExternalID, &res.Status,
		&res.CPU, &res.Memory, &res.Storage, &res.CostPerMonth, &res.Uptime, &tags, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	res.Tags = []string{}
	if tags != "" {
		if err := json.Unmarshal([]byte(tags), &res.Tags); err != nil {
			return nil, fmt.Errorf("decode tags of resource %d: %w", res.ID, err)
		}
	}
	res.CreatedAt = unixTime(createdAt)
	res.UpdatedAt = unixTime(updatedAt)

	return &res, nil
}

func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Create inserts the resource and its create entry in one transaction
func (r *ResourceRepository) Create(ctx context.Context, res *resource.Resource, entry *audit.Entry) error {
	now := time.Now().UTC().Truncate(time.Second)
	res.CreatedAt = now
	res.UpdatedAt = now

	tags, err := encodeTags(res.Tags)
	if err != nil {
		return errors.DatabaseError("Failed to encode tags", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.DatabaseError("Failed to start transaction", err)
	}
	defer tx.Rollback()

	query := r.db.Rebind(`
		INSERT INTO resources (name, provider, type, region, external_id, status,
			cpu, memory, storage, cost_per_month, uptime, tags, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`)

	var id int64
	err = tx.QueryRowContext(ctx, query,
		res.Name, res.Provider, res.Type, res.Region, res.ExternalID, res.Status,
		res.CPU, res.Memory, res.Storage, res.CostPerMonth, res.Uptime, tags, now.Unix(), now.Unix(),
	).Scan(&id)
	if err != nil {
		return errors.DatabaseError("Failed to create resource", err)
	}

	if entry != nil {
		entry.ResourceID = &id
		if err := insertEntry(ctx, tx, r.db, entry); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.DatabaseError("Failed to commit resource", err)
	}

	res.ID = id
	return nil
}

// GetByID retrieves a resource by ID
func (r *ResourceRepository) GetByID(ctx context.Context, id int64) (*resource.Resource, error) {
	query := r.db.Rebind(`SELECT ` + resourceColumns + ` FROM resources WHERE id = ?`)

	res, err := scanResource(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Resource")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get resource", err)
	}

	return res, nil
}

// List retrieves resources matching the filter, oldest first
func (r *ResourceRepository) List(ctx context.Context, filter resource.Filter) ([]*resource.Resource, error) {
	var where []string
	var args []interface{}

	if filter.Provider != "" {
		where = append(where, "provider = ?")
		args = append(args, filter.Provider)
	}
	if filter.Type != "" {
		where = append(where, "type = ?")
		args = append(args, filter.Type)
	}
	if filter.Region != "" {
		where = append(where, "region = ?")
		args = append(args, filter.Region)
	}
	if filter.Status != "" {
		where = append(where, "status = ?")
		args = append(args, filter.Status)
	}

	query := `SELECT ` + resourceColumns + ` FROM resources`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id"

	rows, err := r.db.QueryContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list resources", err)
	}
	defer rows.Close()

	resources := []*resource.Resource{}
	for rows.Next() {
		res, err := scanResource(rows)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan resource", err)
		}
		resources = append(resources, res)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to list resources", err)
	}

	return resources, nil
}

// UpdateStatus persists a refreshed status
func (r *ResourceRepository) UpdateStatus(ctx context.Context, id int64, status resource.Status) error {
	query := r.db.Rebind(`UPDATE resources SET status = ?, updated_at = ? WHERE id = ?`)

	result, err := r.db.ExecContext(ctx, query, status, time.Now().Unix(), id)
	if err != nil {
		return errors.DatabaseError("Failed to update resource status", err)
	}

	return expectOneRow(result)
}

// Update writes the mutable fields and the update entry in one transaction.
// The external ID is never rewritten.
func (r *ResourceRepository) Update(ctx context.Context, res *resource.Resource, entry *audit.Entry) error {
	res.UpdatedAt = time.Now().UTC().Truncate(time.Second)

	tags, err := encodeTags(res.Tags)
	if err != nil {
		return errors.DatabaseError("Failed to encode tags", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.DatabaseError("Failed to start transaction", err)
	}
	defer tx.Rollback()

	query := r.db.Rebind(`
		UPDATE resources
		SET name = ?, region = ?, status = ?, tags = ?, updated_at = ?
		WHERE id = ?
	`)

	result, err := tx.ExecContext(ctx, query,
		res.Name, res.Region, res.Status, tags, res.UpdatedAt.Unix(), res.ID,
	)
	if err != nil {
		return errors.DatabaseError("Failed to update resource", err)
	}
	if err := expectOneRow(result); err != nil {
		return err
	}

	if entry != nil {
		id := res.ID
		entry.ResourceID = &id
		if err := insertEntry(ctx, tx, r.db, entry); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.DatabaseError("Failed to commit resource update", err)
	}

	return nil
}

// Delete removes the resource and its history, then records the delete entry
// detached from the resource, all in one transaction.
func (r *ResourceRepository) Delete(ctx context.Context, id int64, entry *audit.Entry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.DatabaseError("Failed to start transaction", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, r.db.Rebind(`DELETE FROM action_logs WHERE resource_id = ?`), id); err != nil {
		return errors.DatabaseError("Failed to delete resource history", err)
	}

	result, err := tx.ExecContext(ctx, r.db.Rebind(`DELETE FROM resources WHERE id = ?`), id)
	if err != nil {
		return errors.DatabaseError("Failed to delete resource", err)
	}
	if err := expectOneRow(result); err != nil {
		return err
	}

	if entry != nil {
		entry.ResourceID = nil
		if err := insertEntry(ctx, tx, r.db, entry); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.DatabaseError("Failed to commit resource delete", err)
	}

	return nil
}

// CountByProviderType returns the number of stored resources per provider and type
func (r *ResourceRepository) CountByProviderType(ctx context.Context) (map[resource.Provider]map[resource.Type]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT provider, type, COUNT(*) FROM resources GROUP BY provider, type`)
	if err != nil {
		return nil, errors.DatabaseError("Failed to count resources", err)
	}
	defer rows.Close()

	counts := make(map[resource.Provider]map[resource.Type]int)
	for rows.Next() {
		var p resource.Provider
		var t resource.Type
		var n int
		if err := rows.Scan(&p, &t, &n); err != nil {
			return nil, errors.DatabaseError("Failed to scan resource count", err)
		}
		if counts[p] == nil {
			counts[p] = make(map[resource.Type]int)
		}
		counts[p][t] = n
	}

	return counts, rows.Err()
}

func expectOneRow(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("Resource")
	}
	return nil
}
