package services

import (
	"context"

	"github.com/pratik-mahalle/cloudmgr/internal/domain/user"
	"github.com/pratik-mahalle/cloudmgr/internal/pkg/errors"
	"github.com/pratik-mahalle/cloudmgr/internal/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

// UserService implements user.Service
type UserService struct {
	repo   user.Repository
	logger *logger.Logger
}

// NewUserService creates a new user service
func NewUserService(repo user.Repository, log *logger.Logger) user.Service {
	return &UserService{
		repo:   repo,
		logger: log,
	}
}

// List returns all users, seeding the default admin on an empty table
func (s *UserService) List(ctx context.Context) ([]*user.User, error) {
	if err := s.EnsureSeed(ctx); err != nil {
		return nil, err
	}
	return s.repo.List(ctx)
}

// EnsureSeed creates the default admin if no user exists
func (s *UserService) EnsureSeed(ctx context.Context) error {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(user.SeedPassword), bcrypt.DefaultCost)
	if err != nil {
		return errors.Internal("Failed to hash seed password", err)
	}

	admin := &user.User{
		Email:        user.SeedEmail,
		Name:         user.SeedName,
		PasswordHash: string(hash),
		Role:         user.RoleAdmin,
		Status:       user.StatusActive,
		Avatar:       user.SeedAvatar,
	}
	if err := s.repo.Create(ctx, admin); err != nil {
		s.logger.ErrorWithErr(err, "Failed to seed admin user")
		return err
	}

	s.logger.With("email", admin.Email).Info("Seeded default admin user")
	return nil
}
