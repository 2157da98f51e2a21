package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edudesk/edudesk/internal/app/models/dto"
	"github.com/edudesk/edudesk/internal/app/services"
	"github.com/edudesk/edudesk/internal/middleware"
	"github.com/edudesk/edudesk/internal/pkg/helpers"
)

// SuperAdminController serves the console: audit logs, backups and role
// assignments. List endpoints use the {items|logs|backups, pagination}
// envelope.
type SuperAdminController struct {
	audit   *services.AuditService
	backups *services.BackupService
	roles   *services.RoleService
}

// NewSuperAdminController creates a SuperAdminController.
func NewSuperAdminController(audit *services.AuditService, backups *services.BackupService, roles *services.RoleService) *SuperAdminController {
	return &SuperAdminController{audit: audit, backups: backups, roles: roles}
}

// AuditLogs returns one page of audit entries, newest first.
func (c *SuperAdminController) AuditLogs(ctx *gin.Context) {
	page, limit := helpers.ParsePaginationParams(ctx)
	logs, total := c.audit.Page(ctx.Request.Context(), page, limit)
	ctx.JSON(http.StatusOK, dto.AuditLogPage{
		Logs:       logs,
		Pagination: helpers.NewPaginationInfo(total, page, limit),
	})
}

// ListBackups returns one page of backups, newest first.
func (c *SuperAdminController) ListBackups(ctx *gin.Context) {
	page, limit := helpers.ParsePaginationParams(ctx)
	backups, total := c.backups.Page(ctx.Request.Context(), page, limit)
	ctx.JSON(http.StatusOK, dto.BackupPage{
		Backups:    backups,
		Pagination: helpers.NewPaginationInfo(total, page, limit),
	})
}

// CreateBackup snapshots all collections.
func (c *SuperAdminController) CreateBackup(ctx *gin.Context) {
	var req dto.CreateBackupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil && ctx.Request.ContentLength > 0 {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			middleware.BindingErrorDetail("Invalid backup request", err)))
		return
	}

	backup, err := c.backups.Create(ctx.Request.Context(), req.Name, ctx.GetString(middleware.ContextEmail))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(backup))
}

// RestoreBackup replaces live collections with a snapshot's contents.
func (c *SuperAdminController) RestoreBackup(ctx *gin.Context) {
	backup, err := c.backups.Restore(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{
		"restored": true,
		"backup":   backup.Name,
	}))
}

// ListRoles returns one page of console accounts.
func (c *SuperAdminController) ListRoles(ctx *gin.Context) {
	page, limit := helpers.ParsePaginationParams(ctx)
	accounts, total := c.roles.Page(ctx.Request.Context(), page, limit)
	ctx.JSON(http.StatusOK, dto.ItemPage{
		Items:      accounts,
		Pagination: helpers.NewPaginationInfo(total, page, limit),
	})
}

// CreateRole creates a console account with an assigned role.
func (c *SuperAdminController) CreateRole(ctx *gin.Context) {
	var req dto.CreateRoleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			middleware.BindingErrorDetail("Invalid role request", err)))
		return
	}

	account, err := c.roles.Create(ctx.Request.Context(), req.Email, req.DisplayName, req.Role, req.Password)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(account))
}

// UpdateRole changes an account's role or display name.
func (c *SuperAdminController) UpdateRole(ctx *gin.Context) {
	var req dto.UpdateRoleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			middleware.BindingErrorDetail("Invalid role request", err)))
		return
	}

	account, err := c.roles.Update(ctx.Request.Context(), ctx.Param("id"), req.DisplayName, req.Role)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(account))
}

// DeleteRole removes a console account.
func (c *SuperAdminController) DeleteRole(ctx *gin.Context) {
	if err := c.roles.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"deleted": true}))
}
