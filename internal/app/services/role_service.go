package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/edudesk/edudesk/internal/app/models"
	"github.com/edudesk/edudesk/internal/app/repositories"
	"github.com/edudesk/edudesk/internal/pkg/apperrors"
	"github.com/edudesk/edudesk/internal/pkg/auth"
)

// RoleService manages console accounts and their role assignments.
type RoleService struct {
	roles *repositories.Repository[models.UserRole]
}

// NewRoleService creates a role service.
func NewRoleService(repos *repositories.Registry) *RoleService {
	return &RoleService{roles: repos.UserRoles}
}

// sanitize strips the password hash before a record leaves the service.
func sanitize(account models.UserRole) models.UserRole {
	account.PasswordHash = ""
	return account
}

// FindByEmail looks an account up by its email, case-insensitively. The
// returned record keeps its password hash; it is for internal use only.
func (s *RoleService) FindByEmail(ctx context.Context, email string) (models.UserRole, bool) {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, account := range s.roles.List(ctx) {
		if strings.ToLower(account.Email) == email {
			return account, true
		}
	}
	return models.UserRole{}, false
}

// Create adds a console account with a hashed password.
func (s *RoleService) Create(ctx context.Context, email, displayName, role, password string) (models.UserRole, error) {
	if _, exists := s.FindByEmail(ctx, email); exists {
		return models.UserRole{}, apperrors.ErrEmailTaken
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.UserRole{}, fmt.Errorf("failed to hash password: %w", err)
	}

	account, err := s.roles.Add(ctx, models.UserRole{
		Email:        strings.ToLower(strings.TrimSpace(email)),
		DisplayName:  displayName,
		Role:         role,
		PasswordHash: hash,
	})
	if err != nil {
		return models.UserRole{}, fmt.Errorf("failed to create role assignment: %w", err)
	}
	return sanitize(account), nil
}

// Update changes the display name and/or role of an account.
func (s *RoleService) Update(ctx context.Context, id, displayName, role string) (models.UserRole, error) {
	patch := map[string]interface{}{}
	if displayName != "" {
		patch["displayName"] = displayName
	}
	if role != "" {
		patch["role"] = role
	}

	account, found, err := s.roles.Update(ctx, id, patch)
	if err != nil {
		return models.UserRole{}, fmt.Errorf("failed to update role assignment: %w", err)
	}
	if !found {
		return models.UserRole{}, apperrors.ErrRoleNotFound
	}
	return sanitize(account), nil
}

// Delete removes an account.
func (s *RoleService) Delete(ctx context.Context, id string) error {
	ok, err := s.roles.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete role assignment: %w", err)
	}
	if !ok {
		return apperrors.ErrRoleNotFound
	}
	return nil
}

// Page returns one page of accounts, password hashes stripped, plus the
// total count.
func (s *RoleService) Page(ctx context.Context, page, limit int) ([]models.UserRole, int) {
	all := s.roles.List(ctx)
	total := len(all)

	start := (page - 1) * limit
	if start < 0 || start >= total {
		return []models.UserRole{}, total
	}
	end := start + limit
	if end > total {
		end = total
	}

	out := make([]models.UserRole, 0, end-start)
	for _, account := range all[start:end] {
		out = append(out, sanitize(account))
	}
	return out, total
}
