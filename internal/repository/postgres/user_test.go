package postgres_test

import (
	"context"
	"testing"

	"github.com/pratik-mahalle/cloudmgr/internal/domain/user"
	"github.com/pratik-mahalle/cloudmgr/internal/pkg/errors"
	"github.com/pratik-mahalle/cloudmgr/internal/repository/postgres"
	"github.com/pratik-mahalle/cloudmgr/internal/testutil"
)

func TestUserRepository_Create(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(db)

	tests := []struct {
		name    string
		user    *user.User
		wantErr bool
	}{
		{
			name:    "create user successfully",
			user:    &user.User{Email: "ops@example.com", Name: "Ops", PasswordHash: "x", Role: user.RoleDevOps, Status: user.StatusActive},
			wantErr: false,
		},
		{
			name:    "duplicate email",
			user:    &user.User{Email: "ops@example.com", Name: "Ops 2", PasswordHash: "x", Role: user.RoleViewer, Status: user.StatusActive},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.Create(context.Background(), tt.user)
			if (err != nil) != tt.wantErr {
				t.Errorf("Create() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && tt.user.ID == 0 {
				t.Error("Create() did not set user ID")
			}
		})
	}
}

func TestUserRepository_GetByEmailListCount(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(db)
	ctx := context.Background()

	n, err := repo.Count(ctx)
	if err != nil || n != 0 {
		t.Fatalf("Count() = %d, %v; want 0", n, err)
	}

	for _, email := range []string{"a@example.com", "b@example.com"} {
		if err := repo.Create(ctx, &user.User{Email: email, PasswordHash: "x", Role: user.RoleViewer, Status: user.StatusActive}); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	u, err := repo.GetByEmail(ctx, "b@example.com")
	if err != nil {
		t.Fatalf("GetByEmail() error = %v", err)
	}
	if u.Email != "b@example.com" || u.LastLogin != nil {
		t.Errorf("GetByEmail() = %+v", u)
	}

	if _, err := repo.GetByEmail(ctx, "missing@example.com"); !errors.IsNotFound(err) {
		t.Errorf("GetByEmail() missing error = %v, want not found", err)
	}

	users, err := repo.List(ctx)
	if err != nil || len(users) != 2 {
		t.Fatalf("List() = %d users, %v; want 2", len(users), err)
	}
	if users[0].Email != "a@example.com" {
		t.Errorf("List()[0] = %s, want a@example.com", users[0].Email)
	}

	if n, _ := repo.Count(ctx); n != 2 {
		t.Errorf("Count() = %d, want 2", n)
	}
}
