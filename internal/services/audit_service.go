package services

import (
	"context"

	"github.com/pratik-mahalle/cloudmgr/internal/domain/audit"
	"github.com/pratik-mahalle/cloudmgr/internal/pkg/logger"
)

// AuditService implements audit.Service
type AuditService struct {
	repo   audit.Repository
	logger *logger.Logger
}

// NewAuditService creates a new audit service
func NewAuditService(repo audit.Repository, log *logger.Logger) audit.Service {
	return &AuditService{
		repo:   repo,
		logger: log,
	}
}

// List returns the most recent entries, newest first
func (s *AuditService) List(ctx context.Context, limit int) ([]*audit.Entry, error) {
	entries, err := s.repo.List(ctx, limit)
	if err != nil {
		s.logger.ErrorWithErr(err, "Failed to list action logs")
		return nil, err
	}
	return entries, nil
}

// ForResource returns the history of one resource
func (s *AuditService) ForResource(ctx context.Context, resourceID int64) ([]*audit.Entry, error) {
	return s.repo.ListByResource(ctx, resourceID)
}
