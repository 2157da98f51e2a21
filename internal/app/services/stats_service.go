// Package services holds the business layer between the HTTP surface and the
// repositories: derived statistics, the library lending flow and the
// super-admin console operations.
package services

import (
	"context"
	"time"

	"github.com/edudesk/edudesk/internal/app/models"
	"github.com/edudesk/edudesk/internal/app/repositories"
)

// dateLayout is the calendar-date form attendance and transaction dates use.
const dateLayout = "2006-01-02"

// DashboardStats is the aggregate view the dashboard screen renders.
type DashboardStats struct {
	TotalStudents  int     `json:"totalStudents"`
	TotalTeachers  int     `json:"totalTeachers"`
	AttendanceRate float64 `json:"attendanceRate"`
	MonthlyRevenue float64 `json:"monthlyRevenue"`
	PendingFees    float64 `json:"pendingFees"`
}

// AttendanceStats summarizes attendance records for one calendar date.
// TotalStudents counts the records marked for that date, not the roster.
type AttendanceStats struct {
	Date           string  `json:"date"`
	PresentCount   int     `json:"presentCount"`
	AbsentCount    int     `json:"absentCount"`
	LateCount      int     `json:"lateCount"`
	TotalStudents  int     `json:"totalStudents"`
	AttendanceRate float64 `json:"attendanceRate"`
}

// GradeThreshold maps a letter to the minimum percentage that earns it.
type GradeThreshold struct {
	Letter     string  `json:"letter"`
	MinPercent float64 `json:"minPercent"`
}

// DefaultGradeThresholds is the standard A-F scale. Thresholds must be
// ordered from highest to lowest; anything below the last entry is an F.
var DefaultGradeThresholds = []GradeThreshold{
	{Letter: "A", MinPercent: 90},
	{Letter: "B", MinPercent: 80},
	{Letter: "C", MinPercent: 70},
	{Letter: "D", MinPercent: 60},
}

// GradeBucket is one letter-grade slot in a distribution.
type GradeBucket struct {
	Letter     string  `json:"letter"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// StatusCount counts transactions sharing a status.
type StatusCount struct {
	Status     string  `json:"status"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// FinanceSummary aggregates the transactions collection.
type FinanceSummary struct {
	TotalRevenue  float64       `json:"totalRevenue"`
	PendingAmount float64       `json:"pendingAmount"`
	ByStatus      []StatusCount `json:"byStatus"`
}

// StatsService computes read-only views over the repositories. Every call
// re-scans the source collections; nothing is cached and nothing is mutated,
// so the same repository state and clock always produce the same output.
type StatsService struct {
	repos *repositories.Registry
	now   func() time.Time
}

// NewStatsService creates a stats service with the real clock.
func NewStatsService(repos *repositories.Registry) *StatsService {
	return &StatsService{repos: repos, now: time.Now}
}

// WithClock overrides the time source for deterministic tests.
func (s *StatsService) WithClock(now func() time.Time) *StatsService {
	s.now = now
	return s
}

// Dashboard computes the headline numbers. When no attendance has been
// marked today the rate reports 0 rather than NaN.
func (s *StatsService) Dashboard(ctx context.Context) DashboardStats {
	now := s.now()
	today := now.Format(dateLayout)

	attendance := s.AttendanceForDate(ctx, today)

	var monthlyRevenue, pendingFees float64
	for _, tx := range s.repos.Transactions.List(ctx) {
		switch tx.Status {
		case models.TransactionPaid:
			if tx.CreatedAt.Year() == now.Year() && tx.CreatedAt.Month() == now.Month() {
				monthlyRevenue += tx.Amount
			}
		case models.TransactionPending, models.TransactionOverdue:
			pendingFees += tx.Amount
		}
	}

	return DashboardStats{
		TotalStudents:  s.repos.Students.Count(ctx),
		TotalTeachers:  s.repos.Teachers.Count(ctx),
		AttendanceRate: attendance.AttendanceRate,
		MonthlyRevenue: monthlyRevenue,
		PendingFees:    pendingFees,
	}
}

// AttendanceForDate filters attendance records to one date and counts each
// status. The rate is 0 when no records are marked, never NaN.
func (s *StatsService) AttendanceForDate(ctx context.Context, date string) AttendanceStats {
	stats := AttendanceStats{Date: date}
	for _, record := range s.repos.Attendance.List(ctx) {
		if record.Date != date {
			continue
		}
		stats.TotalStudents++
		switch record.Status {
		case models.AttendancePresent:
			stats.PresentCount++
		case models.AttendanceAbsent:
			stats.AbsentCount++
		case models.AttendanceLate:
			stats.LateCount++
		}
	}
	if stats.TotalStudents > 0 {
		stats.AttendanceRate = float64(stats.PresentCount) / float64(stats.TotalStudents) * 100
	}
	return stats
}

// GradeDistribution buckets every grade record by letter. A nil thresholds
// slice uses the default A-F scale; bucket percentages are of the total
// record count, and the per-bucket counts always sum to that total.
func (s *StatsService) GradeDistribution(ctx context.Context, thresholds []GradeThreshold) []GradeBucket {
	if thresholds == nil {
		thresholds = DefaultGradeThresholds
	}

	buckets := make([]GradeBucket, 0, len(thresholds)+1)
	for _, t := range thresholds {
		buckets = append(buckets, GradeBucket{Letter: t.Letter})
	}
	buckets = append(buckets, GradeBucket{Letter: "F"})

	grades := s.repos.Grades.List(ctx)
	for _, grade := range grades {
		percent := grade.Percentage
		if grade.TotalMarks > 0 {
			percent = grade.Marks / grade.TotalMarks * 100
		}

		placed := false
		for i, t := range thresholds {
			if percent >= t.MinPercent {
				buckets[i].Count++
				placed = true
				break
			}
		}
		if !placed {
			buckets[len(buckets)-1].Count++
		}
	}

	if total := len(grades); total > 0 {
		for i := range buckets {
			buckets[i].Percentage = float64(buckets[i].Count) / float64(total) * 100
		}
	}
	return buckets
}

// Finance aggregates transactions: total revenue over paid entries, pending
// amount over pending and overdue entries, and a per-status count breakdown.
func (s *StatsService) Finance(ctx context.Context) FinanceSummary {
	summary := FinanceSummary{}
	counts := map[string]int{}
	order := []string{}

	transactions := s.repos.Transactions.List(ctx)
	for _, tx := range transactions {
		switch tx.Status {
		case models.TransactionPaid:
			summary.TotalRevenue += tx.Amount
		case models.TransactionPending, models.TransactionOverdue:
			summary.PendingAmount += tx.Amount
		}
		if _, seen := counts[tx.Status]; !seen {
			order = append(order, tx.Status)
		}
		counts[tx.Status]++
	}

	total := len(transactions)
	for _, status := range order {
		sc := StatusCount{Status: status, Count: counts[status]}
		if total > 0 {
			sc.Percentage = float64(sc.Count) / float64(total) * 100
		}
		summary.ByStatus = append(summary.ByStatus, sc)
	}
	return summary
}
