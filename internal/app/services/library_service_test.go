package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/edudesk/edudesk/internal/app/models"
	"github.com/edudesk/edudesk/internal/app/repositories"
	"github.com/edudesk/edudesk/internal/pkg/apperrors"
	"github.com/edudesk/edudesk/internal/store"
)

func newLibrary(t *testing.T) (*LibraryService, *repositories.Registry) {
	t.Helper()
	reg := repositories.NewRegistry(store.NewMemory())
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	return NewLibraryService(reg).WithClock(func() time.Time { return now }), reg
}

func TestIssueBook(t *testing.T) {
	lib, reg := newLibrary(t)
	ctx := context.Background()

	book := mustAdd(t, reg.Books, models.Book{Title: "The Pearl", Quantity: 2, Available: 2})

	issue, err := lib.IssueBook(ctx, book.ID, "student-1", "2026-03-29")
	if err != nil {
		t.Fatalf("IssueBook() error = %v", err)
	}
	if issue.Status != models.BookIssueActive {
		t.Errorf("Status = %q, want %q", issue.Status, models.BookIssueActive)
	}
	if issue.IssuedDate != "2026-03-15" {
		t.Errorf("IssuedDate = %q, want 2026-03-15", issue.IssuedDate)
	}

	got, _ := reg.Books.GetByID(ctx, book.ID)
	if got.Available != 1 {
		t.Errorf("Available = %d, want 1 after issue", got.Available)
	}
}

func TestIssueBookErrors(t *testing.T) {
	lib, reg := newLibrary(t)
	ctx := context.Background()

	gone := mustAdd(t, reg.Books, models.Book{Title: "Out of stock", Quantity: 1, Available: 0})

	tests := []struct {
		name    string
		bookID  string
		wantErr error
	}{
		{"unknown book", "missing", apperrors.ErrBookNotFound},
		{"no copies left", gone.ID, apperrors.ErrBookUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := lib.IssueBook(ctx, tt.bookID, "student-1", "")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("IssueBook() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if n := reg.BookIssues.Count(ctx); n != 0 {
		t.Errorf("BookIssues.Count() = %d, want 0 after failed issues", n)
	}
}

func TestReturnBook(t *testing.T) {
	lib, reg := newLibrary(t)
	ctx := context.Background()

	book := mustAdd(t, reg.Books, models.Book{Title: "The Pearl", Quantity: 2, Available: 2})
	issue, err := lib.IssueBook(ctx, book.ID, "student-1", "2026-03-29")
	if err != nil {
		t.Fatalf("IssueBook() error = %v", err)
	}

	returned, err := lib.ReturnBook(ctx, issue.ID, 1.5)
	if err != nil {
		t.Fatalf("ReturnBook() error = %v", err)
	}
	if returned.Status != models.BookIssueReturned {
		t.Errorf("Status = %q, want %q", returned.Status, models.BookIssueReturned)
	}
	if returned.ReturnDate != "2026-03-15" {
		t.Errorf("ReturnDate = %q, want 2026-03-15", returned.ReturnDate)
	}
	if returned.FineAmount != 1.5 {
		t.Errorf("FineAmount = %v, want 1.5", returned.FineAmount)
	}

	got, _ := reg.Books.GetByID(ctx, book.ID)
	if got.Available != 2 {
		t.Errorf("Available = %d, want 2 after return", got.Available)
	}

	// A second return of the same issue is rejected.
	if _, err := lib.ReturnBook(ctx, issue.ID, 0); !errors.Is(err, apperrors.ErrIssueNotActive) {
		t.Errorf("second ReturnBook() error = %v, want %v", err, apperrors.ErrIssueNotActive)
	}
}

func TestReturnBookClampsAvailabilityAtQuantity(t *testing.T) {
	lib, reg := newLibrary(t)
	ctx := context.Background()

	// Drifted data: full shelf but an active issue on record.
	book := mustAdd(t, reg.Books, models.Book{Title: "Drifted", Quantity: 1, Available: 1})
	issue := mustAdd(t, reg.BookIssues, models.BookIssue{
		BookID: book.ID, StudentID: "student-1", Status: models.BookIssueActive,
	})

	if _, err := lib.ReturnBook(ctx, issue.ID, 0); err != nil {
		t.Fatalf("ReturnBook() error = %v", err)
	}

	got, _ := reg.Books.GetByID(ctx, book.ID)
	if got.Available != 1 {
		t.Errorf("Available = %d, want clamped at Quantity 1", got.Available)
	}
}

func TestReturnBookUnknownIssue(t *testing.T) {
	lib, _ := newLibrary(t)
	if _, err := lib.ReturnBook(context.Background(), "missing", 0); !errors.Is(err, apperrors.ErrIssueNotFound) {
		t.Errorf("ReturnBook() error = %v, want %v", err, apperrors.ErrIssueNotFound)
	}
}
