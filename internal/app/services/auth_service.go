package services

import (
	"context"

	"github.com/edudesk/edudesk/internal/pkg/apperrors"
	"github.com/edudesk/edudesk/internal/pkg/auth"
)

// AuthService handles console login. The wider authentication protocol lives
// outside this system; only what the super-admin console needs is here.
type AuthService struct {
	roles *RoleService
	jwt   *auth.JWTService
}

// NewAuthService creates an auth service.
func NewAuthService(roles *RoleService, jwt *auth.JWTService) *AuthService {
	return &AuthService{roles: roles, jwt: jwt}
}

// Login verifies credentials and issues an access token. Unknown emails and
// wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (token string, expiresIn int, role string, err error) {
	account, ok := s.roles.FindByEmail(ctx, email)
	if !ok || !auth.CheckPassword(account.PasswordHash, password) {
		return "", 0, "", apperrors.ErrInvalidCredentials
	}

	token, expiresIn, err = s.jwt.GenerateToken(account.Email, account.Role)
	if err != nil {
		return "", 0, "", err
	}
	return token, expiresIn, account.Role, nil
}
