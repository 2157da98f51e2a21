package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/edudesk/edudesk/internal/app/models"
	"github.com/edudesk/edudesk/internal/app/repositories"
	"github.com/edudesk/edudesk/internal/pkg/apperrors"
	"github.com/edudesk/edudesk/internal/pkg/auth"
	"github.com/edudesk/edudesk/internal/store"
)

func TestRoleCreate(t *testing.T) {
	reg := repositories.NewRegistry(store.NewMemory())
	roles := NewRoleService(reg)
	ctx := context.Background()

	account, err := roles.Create(ctx, "Admin@Edudesk.Local", "Admin", models.RoleSuperAdmin, "s3cret-pass")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if account.Email != "admin@edudesk.local" {
		t.Errorf("Email = %q, want lowercased", account.Email)
	}
	if account.PasswordHash != "" {
		t.Error("PasswordHash leaked in response")
	}

	// The stored record keeps a verifiable hash.
	stored, ok := roles.FindByEmail(ctx, "admin@edudesk.local")
	if !ok {
		t.Fatal("FindByEmail() not found")
	}
	if !auth.CheckPassword(stored.PasswordHash, "s3cret-pass") {
		t.Error("stored hash does not verify the original password")
	}

	// Duplicate emails are rejected case-insensitively.
	if _, err := roles.Create(ctx, "ADMIN@edudesk.local", "Other", models.RoleStaff, "whatever-pass"); !errors.Is(err, apperrors.ErrEmailTaken) {
		t.Errorf("duplicate Create() error = %v, want %v", err, apperrors.ErrEmailTaken)
	}
}

func TestRoleUpdateAndDelete(t *testing.T) {
	reg := repositories.NewRegistry(store.NewMemory())
	roles := NewRoleService(reg)
	ctx := context.Background()

	account, err := roles.Create(ctx, "staff@edudesk.local", "Staff", models.RoleStaff, "s3cret-pass")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	updated, err := roles.Update(ctx, account.ID, "", models.RoleAdmin)
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Role != models.RoleAdmin {
		t.Errorf("Role = %q, want %q", updated.Role, models.RoleAdmin)
	}
	if updated.DisplayName != "Staff" {
		t.Errorf("DisplayName = %q, want untouched Staff", updated.DisplayName)
	}

	if _, err := roles.Update(ctx, "missing", "x", ""); !errors.Is(err, apperrors.ErrRoleNotFound) {
		t.Errorf("Update(missing) error = %v, want %v", err, apperrors.ErrRoleNotFound)
	}

	if err := roles.Delete(ctx, account.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := roles.Delete(ctx, account.ID); !errors.Is(err, apperrors.ErrRoleNotFound) {
		t.Errorf("second Delete() error = %v, want %v", err, apperrors.ErrRoleNotFound)
	}
}

func TestLogin(t *testing.T) {
	reg := repositories.NewRegistry(store.NewMemory())
	roles := NewRoleService(reg)
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "test",
	})
	authService := NewAuthService(roles, jwtService)
	ctx := context.Background()

	if _, err := roles.Create(ctx, "admin@edudesk.local", "Admin", models.RoleSuperAdmin, "s3cret-pass"); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	token, expiresIn, role, err := authService.Login(ctx, "admin@edudesk.local", "s3cret-pass")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if role != models.RoleSuperAdmin {
		t.Errorf("role = %q, want %q", role, models.RoleSuperAdmin)
	}
	if expiresIn != 3600 {
		t.Errorf("expiresIn = %d, want 3600", expiresIn)
	}

	claims, err := jwtService.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.Email != "admin@edudesk.local" || claims.Role != models.RoleSuperAdmin {
		t.Errorf("claims = %s/%s, want admin@edudesk.local/super_admin", claims.Email, claims.Role)
	}

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "admin@edudesk.local", "nope"},
		{"unknown email", "ghost@edudesk.local", "s3cret-pass"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, _, err := authService.Login(ctx, tt.email, tt.password); !errors.Is(err, apperrors.ErrInvalidCredentials) {
				t.Errorf("Login() error = %v, want %v", err, apperrors.ErrInvalidCredentials)
			}
		})
	}
}

func TestAuditPageNewestFirst(t *testing.T) {
	reg := repositories.NewRegistry(store.NewMemory())
	audit := NewAuditService(reg)
	ctx := context.Background()

	for _, path := range []string{"/api/students", "/api/teachers", "/api/books"} {
		audit.Record(ctx, models.AuditLog{Actor: "admin", Method: "POST", Path: path, Status: 201})
	}

	page, total := audit.Page(ctx, 1, 2)
	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}
	if len(page) != 2 || page[0].Path != "/api/books" || page[1].Path != "/api/teachers" {
		t.Errorf("page 1 = %+v, want newest first", page)
	}

	page, _ = audit.Page(ctx, 2, 2)
	if len(page) != 1 || page[0].Path != "/api/students" {
		t.Errorf("page 2 = %+v, want the oldest entry", page)
	}

	if page, _ := audit.Page(ctx, 5, 2); len(page) != 0 {
		t.Errorf("out-of-range page = %+v, want empty", page)
	}
}
