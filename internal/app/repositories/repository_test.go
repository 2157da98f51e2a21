package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/edudesk/edudesk/internal/app/models"
	"github.com/edudesk/edudesk/internal/store"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func seqIDs(prefix string) func(time.Time) string {
	n := 0
	return func(time.Time) string {
		n++
		return prefix + string(rune('0'+n))
	}
}

func newStudentRepo(t *testing.T, now time.Time) (*Repository[models.Student], store.Store) {
	t.Helper()
	st := store.NewMemory()
	repo := New[models.Student](st, models.CollectionStudents,
		WithClock[models.Student](fixedClock(now)),
		WithIDGenerator[models.Student](seqIDs("s")),
	)
	return repo, st
}

func TestAddStampsIdentityAndTimestamps(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	repo, _ := newStudentRepo(t, now)
	ctx := context.Background()

	created, err := repo.Add(ctx, models.Student{
		Meta:      models.Meta{ID: "spoofed", CreatedAt: now.Add(-time.Hour)},
		FirstName: "Aisha", LastName: "Khan", Grade: "10",
	})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	if created.ID != "s1" {
		t.Errorf("ID = %q, want generated id, not caller-supplied", created.ID)
	}
	if !created.CreatedAt.Equal(now) {
		t.Errorf("CreatedAt = %v, want %v", created.CreatedAt, now)
	}
	if !created.UpdatedAt.Equal(created.CreatedAt) {
		t.Errorf("UpdatedAt = %v, want equal to CreatedAt %v", created.UpdatedAt, created.CreatedAt)
	}
}

func TestAddAppendsInInsertionOrder(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	repo, _ := newStudentRepo(t, now)
	ctx := context.Background()

	for _, name := range []string{"first", "second", "third"} {
		if _, err := repo.Add(ctx, models.Student{FirstName: name, LastName: "x", Grade: "9"}); err != nil {
			t.Fatalf("Add(%s) error = %v", name, err)
		}
	}

	got := repo.List(ctx)
	if len(got) != 3 {
		t.Fatalf("List() len = %d, want 3", len(got))
	}
	for i, want := range []string{"first", "second", "third"} {
		if got[i].FirstName != want {
			t.Errorf("List()[%d].FirstName = %q, want %q", i, got[i].FirstName, want)
		}
	}
}

func TestGetByID(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	repo, _ := newStudentRepo(t, now)
	ctx := context.Background()

	created, err := repo.Add(ctx, models.Student{FirstName: "Mei", LastName: "Lin", Grade: "9"})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	got, ok := repo.GetByID(ctx, created.ID)
	if !ok {
		t.Fatalf("GetByID(%q) not found", created.ID)
	}
	if got.FirstName != "Mei" {
		t.Errorf("FirstName = %q, want Mei", got.FirstName)
	}

	if _, ok := repo.GetByID(ctx, "missing"); ok {
		t.Error("GetByID(missing) = found, want not found")
	}
}

func TestUpdateShallowMergesAndProtectsManagedFields(t *testing.T) {
	created0 := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	st := store.NewMemory()
	clock := created0
	repo := New[models.Student](st, models.CollectionStudents,
		WithClock[models.Student](func() time.Time { return clock }),
		WithIDGenerator[models.Student](seqIDs("s")),
	)
	ctx := context.Background()

	created, err := repo.Add(ctx, models.Student{FirstName: "Diego", LastName: "Morales", Grade: "10", Phone: "555"})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	clock = created0.Add(time.Hour)
	updated, found, err := repo.Update(ctx, created.ID, map[string]interface{}{
		"grade":     "11",
		"id":        "hijacked",
		"createdAt": "1999-01-01T00:00:00Z",
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if !found {
		t.Fatal("Update() found = false, want true")
	}

	if updated.Grade != "11" {
		t.Errorf("Grade = %q, want 11", updated.Grade)
	}
	if updated.Phone != "555" {
		t.Errorf("Phone = %q, want untouched 555", updated.Phone)
	}
	if updated.ID != created.ID {
		t.Errorf("ID = %q, want unchanged %q", updated.ID, created.ID)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("CreatedAt = %v, want unchanged %v", updated.CreatedAt, created.CreatedAt)
	}
	if !updated.UpdatedAt.After(updated.CreatedAt) {
		t.Errorf("UpdatedAt = %v, want after CreatedAt %v", updated.UpdatedAt, updated.CreatedAt)
	}
}

func TestUpdateMissingIDReportsNotFound(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	repo, _ := newStudentRepo(t, now)

	_, found, err := repo.Update(context.Background(), "missing", map[string]interface{}{"grade": "12"})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if found {
		t.Error("Update(missing) found = true, want false")
	}
}

func TestDelete(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	repo, _ := newStudentRepo(t, now)
	ctx := context.Background()

	created, err := repo.Add(ctx, models.Student{FirstName: "Aisha", LastName: "Khan", Grade: "10"})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	ok, err := repo.Delete(ctx, created.ID)
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if !ok {
		t.Error("Delete() = false, want true")
	}
	if n := repo.Count(ctx); n != 0 {
		t.Errorf("Count() after delete = %d, want 0", n)
	}

	ok, err = repo.Delete(ctx, created.ID)
	if err != nil {
		t.Fatalf("Delete() second call error = %v", err)
	}
	if ok {
		t.Error("Delete() of absent id = true, want false")
	}
}

func TestCorruptCollectionReadsAsEmpty(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	repo, st := newStudentRepo(t, now)
	ctx := context.Background()

	if err := st.Set(ctx, models.CollectionStudents, []byte("{not json")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	if got := repo.List(ctx); len(got) != 0 {
		t.Errorf("List() over corrupt payload len = %d, want 0", len(got))
	}
	if n := repo.Count(ctx); n != 0 {
		t.Errorf("Count() over corrupt payload = %d, want 0", n)
	}

	// Writes recover the collection.
	if _, err := repo.Add(ctx, models.Student{FirstName: "New", LastName: "Start", Grade: "8"}); err != nil {
		t.Fatalf("Add() after corruption error = %v", err)
	}
	if n := repo.Count(ctx); n != 1 {
		t.Errorf("Count() after recovery = %d, want 1", n)
	}
}

func TestRepositoriesShareOneStoreButNotCollections(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	st := store.NewMemory()
	students := New[models.Student](st, models.CollectionStudents, WithClock[models.Student](fixedClock(now)))
	teachers := New[models.Teacher](st, models.CollectionTeachers, WithClock[models.Teacher](fixedClock(now)))
	ctx := context.Background()

	if _, err := students.Add(ctx, models.Student{FirstName: "A", LastName: "B", Grade: "9"}); err != nil {
		t.Fatalf("students.Add() error = %v", err)
	}

	if n := teachers.Count(ctx); n != 0 {
		t.Errorf("teachers.Count() = %d, want 0", n)
	}
}
