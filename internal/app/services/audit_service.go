package services

import (
	"context"

	"github.com/edudesk/edudesk/internal/app/models"
	"github.com/edudesk/edudesk/internal/app/repositories"
	"github.com/edudesk/edudesk/internal/pkg/logger"
)

// AuditService records mutating API calls and pages through them for the
// super-admin console.
type AuditService struct {
	logs *repositories.Repository[models.AuditLog]
}

// NewAuditService creates an audit service.
func NewAuditService(repos *repositories.Registry) *AuditService {
	return &AuditService{logs: repos.AuditLogs}
}

// Record appends an audit entry. Audit failures are logged and swallowed so
// they never fail the request they describe.
func (s *AuditService) Record(ctx context.Context, entry models.AuditLog) {
	if _, err := s.logs.Add(ctx, entry); err != nil {
		logger.Error().Err(err).Str("path", entry.Path).Msg("failed to record audit log")
	}
}

// Page returns one page of audit entries, newest first, plus the total count.
func (s *AuditService) Page(ctx context.Context, page, limit int) ([]models.AuditLog, int) {
	all := s.logs.List(ctx)

	// Reverse into newest-first order; records persist oldest-first.
	for i, j := 0, len(all)-1; i < j; i, j = i+1, j-1 {
		all[i], all[j] = all[j], all[i]
	}

	total := len(all)
	start := (page - 1) * limit
	if start < 0 || start >= total {
		return []models.AuditLog{}, total
	}
	end := start + limit
	if end > total {
		end = total
	}
	return all[start:end], total
}
