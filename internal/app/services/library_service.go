package services

import (
	"context"
	"fmt"
	"time"

	"github.com/edudesk/edudesk/internal/app/models"
	"github.com/edudesk/edudesk/internal/app/repositories"
	"github.com/edudesk/edudesk/internal/pkg/apperrors"
)

// LibraryService sequences the two-collection lending flow: creating an
// issue decrements the book's available count and returning it restores the
// count. The store has no cross-collection transaction, so the service is the
// one place that orders the two writes; a crash between them can leave the
// counts out of step, mirroring the lenient source system.
type LibraryService struct {
	books  *repositories.Repository[models.Book]
	issues *repositories.Repository[models.BookIssue]
	now    func() time.Time
}

// NewLibraryService creates a library service.
func NewLibraryService(repos *repositories.Registry) *LibraryService {
	return &LibraryService{
		books:  repos.Books,
		issues: repos.BookIssues,
		now:    time.Now,
	}
}

// WithClock overrides the time source for tests.
func (s *LibraryService) WithClock(now func() time.Time) *LibraryService {
	s.now = now
	return s
}

// IssueBook lends a copy of a book to a student. The book must exist and
// have at least one available copy.
func (s *LibraryService) IssueBook(ctx context.Context, bookID, studentID, dueDate string) (models.BookIssue, error) {
	book, ok := s.books.GetByID(ctx, bookID)
	if !ok {
		return models.BookIssue{}, apperrors.ErrBookNotFound
	}
	if book.Available <= 0 {
		return models.BookIssue{}, apperrors.ErrBookUnavailable
	}

	issue, err := s.issues.Add(ctx, models.BookIssue{
		BookID:     bookID,
		StudentID:  studentID,
		IssuedDate: s.now().UTC().Format(dateLayout),
		DueDate:    dueDate,
		Status:     models.BookIssueActive,
	})
	if err != nil {
		return models.BookIssue{}, fmt.Errorf("failed to create book issue: %w", err)
	}

	if _, _, err := s.books.Update(ctx, bookID, map[string]interface{}{
		"available": book.Available - 1,
	}); err != nil {
		return issue, fmt.Errorf("issue created but failed to decrement availability: %w", err)
	}
	return issue, nil
}

// ReturnBook closes an active issue, records the return date and optional
// fine, and restores the book's available count. The count is not pushed
// past Quantity even if the collections have drifted.
func (s *LibraryService) ReturnBook(ctx context.Context, issueID string, fineAmount float64) (models.BookIssue, error) {
	issue, ok := s.issues.GetByID(ctx, issueID)
	if !ok {
		return models.BookIssue{}, apperrors.ErrIssueNotFound
	}
	if issue.Status != models.BookIssueActive {
		return models.BookIssue{}, apperrors.ErrIssueNotActive
	}

	patch := map[string]interface{}{
		"status":     models.BookIssueReturned,
		"returnDate": s.now().UTC().Format(dateLayout),
	}
	if fineAmount > 0 {
		patch["fineAmount"] = fineAmount
	}

	updated, _, err := s.issues.Update(ctx, issueID, patch)
	if err != nil {
		return models.BookIssue{}, fmt.Errorf("failed to close book issue: %w", err)
	}

	if book, ok := s.books.GetByID(ctx, issue.BookID); ok {
		available := book.Available + 1
		if available > book.Quantity {
			available = book.Quantity
		}
		if _, _, err := s.books.Update(ctx, issue.BookID, map[string]interface{}{
			"available": available,
		}); err != nil {
			return updated, fmt.Errorf("issue closed but failed to restore availability: %w", err)
		}
	}
	return updated, nil
}
