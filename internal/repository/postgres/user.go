package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/pratik-mahalle/cloudmgr/internal/domain/user"
	"github.com/pratik-mahalle/cloudmgr/internal/pkg/errors"
)

// UserRepository implements user.Repository
type UserRepository struct {
	db *DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *DB) user.Repository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	now := time.Now().UTC().Truncate(time.Second)
	u.CreatedAt = now

	var lastLogin interface{}
	if u.LastLogin != nil {
		lastLogin = u.LastLogin.Unix()
	}

	query := r.db.Rebind(`
		INSERT INTO users (email, name, password_hash, role, status, avatar, last_login, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`)

	err := r.db.QueryRowContext(ctx, query,
		u.Email, u.Name, u.PasswordHash, u.Role, u.Status, u.Avatar, lastLogin, now.Unix(),
	).Scan(&u.ID)
	if err != nil {
		return errors.DatabaseError("Failed to create user", err)
	}

	return nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	query := r.db.Rebind(`
		SELECT id, email, name, password_hash, role, status, avatar, last_login, created_at
		FROM users WHERE email = ?
	`)

	u, err := scanUser(r.db.QueryRowContext(ctx, query, email))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("User")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get user", err)
	}

	return u, nil
}

// List retrieves all users ordered by ID
func (r *UserRepository) List(ctx context.Context) ([]*user.User, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, email, name, password_hash, role, status, avatar, last_login, created_at
		FROM users ORDER BY id
	`)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list users", err)
	}
	defer rows.Close()

	users := []*user.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan user", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to list users", err)
	}

	return users, nil
}

// Count returns the number of users
func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, errors.DatabaseError("Failed to count users", err)
	}
	return n, nil
}

func scanUser(row rowScanner) (*user.User, error) {
	var u user.User
	var lastLogin sql.NullInt64
	var createdAt int64

	if err := row.Scan(
		&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Role, &u.Status, &u.Avatar, &lastLogin, &createdAt,
	); err != nil {
		return nil, err
	}

	if lastLogin.Valid {
		t := unixTime(lastLogin.Int64)
		u.LastLogin = &t
	}
	u.CreatedAt = unixTime(createdAt)

	return &u, nil
}
