// Package seed creates the default console account and, when enabled, a
// small demo dataset so a fresh instance has something to show.
package seed

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/edudesk/edudesk/internal/app/models"
	"github.com/edudesk/edudesk/internal/app/repositories"
	"github.com/edudesk/edudesk/internal/app/services"
	"github.com/edudesk/edudesk/internal/pkg/logger"
)

const (
	defaultAdminEmail = "admin@edudesk.local"
	// Overridable so deployments never ship the default.
	adminPasswordEnv = "EDUDESK_ADMIN_PASSWORD"
)

// EnsureDefaultAdmin creates the initial super-admin account when no console
// accounts exist yet. Without it the console endpoints would be unreachable.
func EnsureDefaultAdmin(ctx context.Context, repos *repositories.Registry, roles *services.RoleService) error {
	if repos.UserRoles.Count(ctx) > 0 {
		return nil
	}

	password := os.Getenv(adminPasswordEnv)
	if password == "" {
		password = "change-me-now"
		logger.Warn().Str("email", defaultAdminEmail).Msg("seeding default super-admin with the default password; set " + adminPasswordEnv)
	}

	account, err := roles.Create(ctx, defaultAdminEmail, "Default Administrator", models.RoleSuperAdmin, password)
	if err != nil {
		return fmt.Errorf("failed to seed default super-admin: %w", err)
	}
	logger.Info().Str("email", account.Email).Msg("default super-admin created")
	return nil
}

// DemoData loads a small consistent dataset across the entity collections.
// It is idempotent per collection: collections that already hold records are
// left alone.
func DemoData(ctx context.Context, repos *repositories.Registry) error {
	today := time.Now().UTC().Format("2006-01-02")

	if repos.Students.Count(ctx) == 0 {
		students := []models.Student{
			{FirstName: "Aisha", LastName: "Khan", Grade: "10", RollNumber: "10-01", Status: "active", GuardianName: "Farah Khan"},
			{FirstName: "Diego", LastName: "Morales", Grade: "10", RollNumber: "10-02", Status: "active"},
			{FirstName: "Mei", LastName: "Lin", Grade: "9", RollNumber: "9-07", Status: "active"},
		}
		ids := make([]string, 0, len(students))
		for _, s := range students {
			created, err := repos.Students.Add(ctx, s)
			if err != nil {
				return fmt.Errorf("failed to seed students: %w", err)
			}
			ids = append(ids, created.ID)
		}

		if repos.Attendance.Count(ctx) == 0 {
			marks := []string{models.AttendancePresent, models.AttendanceLate, models.AttendanceAbsent}
			for i, id := range ids {
				if _, err := repos.Attendance.Add(ctx, models.AttendanceRecord{
					StudentID: id,
					Date:      today,
					Status:    marks[i%len(marks)],
				}); err != nil {
					return fmt.Errorf("failed to seed attendance: %w", err)
				}
			}
		}

		if repos.Transactions.Count(ctx) == 0 {
			fees := []models.Transaction{
				{StudentID: ids[0], Amount: 250, Type: "tuition", Status: models.TransactionPaid, PaidDate: today},
				{StudentID: ids[1], Amount: 250, Type: "tuition", Status: models.TransactionPending, DueDate: today},
				{StudentID: ids[2], Amount: 120, Type: "lab", Status: models.TransactionOverdue, DueDate: today},
			}
			for _, t := range fees {
				if _, err := repos.Transactions.Add(ctx, t); err != nil {
					return fmt.Errorf("failed to seed transactions: %w", err)
				}
			}
		}

		if repos.Grades.Count(ctx) == 0 {
			results := []models.Grade{
				{StudentID: ids[0], Subject: "Mathematics", Marks: 92, TotalMarks: 100},
				{StudentID: ids[1], Subject: "Mathematics", Marks: 78, TotalMarks: 100},
				{StudentID: ids[2], Subject: "Mathematics", Marks: 55, TotalMarks: 100},
			}
			for _, g := range results {
				if _, err := repos.Grades.Add(ctx, g); err != nil {
					return fmt.Errorf("failed to seed grades: %w", err)
				}
			}
		}
	}

	if repos.Teachers.Count(ctx) == 0 {
		teacher, err := repos.Teachers.Add(ctx, models.Teacher{
			FirstName: "Rohan", LastName: "Iyer", Subject: "Mathematics", Status: "active",
		})
		if err != nil {
			return fmt.Errorf("failed to seed teachers: %w", err)
		}

		if repos.Courses.Count(ctx) == 0 {
			course, err := repos.Courses.Add(ctx, models.Course{
				Name: "Mathematics 10", Code: "MATH10", TeacherID: teacher.ID, Grade: "10",
			})
			if err != nil {
				return fmt.Errorf("failed to seed courses: %w", err)
			}

			if repos.ClassSchedules.Count(ctx) == 0 {
				if _, err := repos.ClassSchedules.Add(ctx, models.ClassSchedule{
					CourseID: course.ID, TeacherID: teacher.ID,
					DayOfWeek: "Monday", StartTime: "09:00", EndTime: "10:00", Room: "B-204",
				}); err != nil {
					return fmt.Errorf("failed to seed class schedules: %w", err)
				}
			}

			if repos.Assignments.Count(ctx) == 0 {
				if _, err := repos.Assignments.Add(ctx, models.Assignment{
					CourseID: course.ID, Title: "Quadratic equations worksheet", DueDate: today, TotalMarks: 20,
				}); err != nil {
					return fmt.Errorf("failed to seed assignments: %w", err)
				}
			}
		}
	}

	if repos.Books.Count(ctx) == 0 {
		books := []models.Book{
			{Title: "A Brief History of Time", Author: "Stephen Hawking", Category: "Science", Quantity: 3, Available: 3},
			{Title: "The Pearl", Author: "John Steinbeck", Category: "Fiction", Quantity: 2, Available: 2},
		}
		for _, b := range books {
			if _, err := repos.Books.Add(ctx, b); err != nil {
				return fmt.Errorf("failed to seed books: %w", err)
			}
		}
	}

	if repos.Announcements.Count(ctx) == 0 {
		if _, err := repos.Announcements.Add(ctx, models.Announcement{
			Title: "Welcome back", Body: "The new term starts today.", Audience: "all", PostedBy: "admin",
		}); err != nil {
			return fmt.Errorf("failed to seed announcements: %w", err)
		}
	}

	logger.Info().Msg("demo dataset seeded")
	return nil
}
