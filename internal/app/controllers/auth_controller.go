package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edudesk/edudesk/internal/app/models/dto"
	"github.com/edudesk/edudesk/internal/app/services"
	"github.com/edudesk/edudesk/internal/middleware"
)

// AuthController handles console login.
type AuthController struct {
	auth *services.AuthService
}

// NewAuthController creates an AuthController.
func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

// Login verifies credentials and returns a bearer token.
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			middleware.BindingErrorDetail("Invalid login request", err)))
		return
	}

	token, expiresIn, role, err := c.auth.Login(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
		Role:        role,
	}))
}
