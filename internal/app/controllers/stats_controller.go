package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/edudesk/edudesk/internal/app/models/dto"
	"github.com/edudesk/edudesk/internal/app/services"
)

// StatsController exposes the aggregation layer.
type StatsController struct {
	stats *services.StatsService
}

// NewStatsController creates a StatsController.
func NewStatsController(stats *services.StatsService) *StatsController {
	return &StatsController{stats: stats}
}

// Dashboard returns the headline counters for the dashboard screen.
func (c *StatsController) Dashboard(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(c.stats.Dashboard(ctx.Request.Context())))
}

// Attendance returns attendance counts for the date query parameter,
// defaulting to today.
func (c *StatsController) Attendance(ctx *gin.Context) {
	date := ctx.Query("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid date").
				WithField("date").WithDetails("Expected YYYY-MM-DD")))
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(c.stats.AttendanceForDate(ctx.Request.Context(), date)))
}

// Grades returns the letter-grade distribution on the default scale.
func (c *StatsController) Grades(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(c.stats.GradeDistribution(ctx.Request.Context(), nil)))
}

// Finance returns revenue, pending fees and the per-status breakdown.
func (c *StatsController) Finance(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(c.stats.Finance(ctx.Request.Context())))
}
