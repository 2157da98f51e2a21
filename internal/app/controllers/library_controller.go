package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edudesk/edudesk/internal/app/models/dto"
	"github.com/edudesk/edudesk/internal/app/services"
	"github.com/edudesk/edudesk/internal/middleware"
)

// LibraryController handles the lending flow that spans the books and
// book_issues collections. Plain CRUD on both collections stays with the
// generic entity controllers; these handlers exist because issuing and
// returning must sequence two writes.
type LibraryController struct {
	library *services.LibraryService
}

// NewLibraryController creates a LibraryController.
func NewLibraryController(library *services.LibraryService) *LibraryController {
	return &LibraryController{library: library}
}

// IssueBook creates a lending record and decrements the book's availability.
func (c *LibraryController) IssueBook(ctx *gin.Context) {
	var req dto.IssueBookRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			middleware.BindingErrorDetail("Invalid issue request", err)))
		return
	}

	issue, err := c.library.IssueBook(ctx.Request.Context(), req.BookID, req.StudentID, req.DueDate)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(issue))
}

// ReturnBook closes a lending record and restores availability.
func (c *LibraryController) ReturnBook(ctx *gin.Context) {
	var req dto.ReturnBookRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			middleware.BindingErrorDetail("Invalid return request", err)))
		return
	}

	issue, err := c.library.ReturnBook(ctx.Request.Context(), ctx.Param("id"), req.FineAmount)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(issue))
}
