// Package controllers holds the gin handlers. EntityController is generic:
// one implementation serves every entity collection, bound to its repository
// at construction.
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edudesk/edudesk/internal/app/models/dto"
	"github.com/edudesk/edudesk/internal/app/repositories"
	"github.com/edudesk/edudesk/internal/middleware"
	"github.com/edudesk/edudesk/internal/pkg/apperrors"
)

// EntityController serves the generic CRUD surface for one collection.
type EntityController[E any] struct {
	repo *repositories.Repository[E]
	name string
}

// NewEntityController creates a controller over a repository. name is the
// resource path segment, used only in error messages.
func NewEntityController[E any](repo *repositories.Repository[E], name string) *EntityController[E] {
	return &EntityController[E]{repo: repo, name: name}
}

// List returns the whole collection in insertion order.
func (c *EntityController[E]) List(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(c.repo.List(ctx.Request.Context())))
}

// Get returns one record by id.
func (c *EntityController[E]) Get(ctx *gin.Context) {
	entity, ok := c.repo.GetByID(ctx.Request.Context(), ctx.Param("id"))
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.NewNotFoundError(c.name+" not found"))
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(entity))
}

// Create validates the payload against the entity's binding tags and adds
// the record. Any id or timestamps in the payload are overwritten by the
// repository.
func (c *EntityController[E]) Create(ctx *gin.Context) {
	var entity E
	if err := ctx.ShouldBindJSON(&entity); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			middleware.BindingErrorDetail("Invalid "+c.name+" data", err)))
		return
	}

	created, err := c.repo.Add(ctx.Request.Context(), entity)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(created))
}

// Update shallow-merges the request body over the stored record. The body is
// a partial document; id and createdAt cannot be changed through it.
func (c *EntityController[E]) Update(ctx *gin.Context) {
	var patch map[string]interface{}
	if err := ctx.ShouldBindJSON(&patch); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			middleware.BindingErrorDetail("Invalid "+c.name+" patch", err)))
		return
	}

	updated, found, err := c.repo.Update(ctx.Request.Context(), ctx.Param("id"), patch)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if !found {
		middleware.HandleAPIError(ctx, apperrors.NewNotFoundError(c.name+" not found"))
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(updated))
}

// Delete removes a record by id.
func (c *EntityController[E]) Delete(ctx *gin.Context) {
	ok, err := c.repo.Delete(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.NewNotFoundError(c.name+" not found"))
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"deleted": true}))
}

// Mount registers the CRUD routes for this controller on a router group.
func (c *EntityController[E]) Mount(group *gin.RouterGroup, path string) {
	resource := group.Group("/" + path)
	{
		resource.GET("", c.List)
		resource.GET("/:id", c.Get)
		resource.POST("", c.Create)
		resource.PUT("/:id", c.Update)
		resource.DELETE("/:id", c.Delete)
	}
}
