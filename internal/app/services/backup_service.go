package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/edudesk/edudesk/internal/app/models"
	"github.com/edudesk/edudesk/internal/app/repositories"
	"github.com/edudesk/edudesk/internal/pkg/apperrors"
	"github.com/edudesk/edudesk/internal/pkg/logger"
	"github.com/edudesk/edudesk/internal/queue"
)

// snapshotCollections is everything a backup captures: the entity
// collections plus the console's own role assignments. Audit logs and the
// backups collection itself are excluded.
var snapshotCollections = append(append([]string{}, models.EntityCollections...), models.CollectionUserRoles)

// BackupService snapshots and restores collection state. Snapshots are plain
// records in the backups collection, so they travel with whatever store
// backend is configured. After each snapshot a prune job is enqueued for the
// worker to apply the retention limit.
type BackupService struct {
	repos     *repositories.Registry
	jobs      queue.Queue
	retention int
	now       func() time.Time
}

// NewBackupService creates a backup service. jobs may be nil when no worker
// is running, e.g. in tests.
func NewBackupService(repos *repositories.Registry, jobs queue.Queue, retention int) *BackupService {
	if retention < 1 {
		retention = 10
	}
	return &BackupService{repos: repos, jobs: jobs, retention: retention, now: time.Now}
}

// WithClock overrides the time source for tests.
func (s *BackupService) WithClock(now func() time.Time) *BackupService {
	s.now = now
	return s
}

// Create snapshots every snapshot collection into one backup record.
func (s *BackupService) Create(ctx context.Context, name, createdBy string) (models.Backup, error) {
	if name == "" {
		name = "backup-" + s.now().UTC().Format("20060102-150405")
	}

	st := s.repos.Store()
	collections := make(map[string]string, len(snapshotCollections))
	itemCount := 0
	sizeBytes := 0

	for _, key := range snapshotCollections {
		data, ok, err := st.Get(ctx, key)
		if err != nil {
			return models.Backup{}, fmt.Errorf("failed to snapshot collection %s: %w", key, err)
		}
		if !ok {
			continue
		}
		collections[key] = string(data)
		sizeBytes += len(data)
		itemCount += countRecords(ctx, s.repos, key)
	}

	backup, err := s.repos.Backups.Add(ctx, models.Backup{
		Name:        name,
		CreatedBy:   createdBy,
		Collections: collections,
		ItemCount:   itemCount,
		SizeBytes:   sizeBytes,
	})
	if err != nil {
		return models.Backup{}, fmt.Errorf("failed to persist backup: %w", err)
	}

	if s.jobs != nil {
		job := queue.Job{Type: queue.JobBackupPrune, BackupID: backup.ID, RequestedBy: createdBy, EnqueuedAt: s.now()}
		if err := s.jobs.Publish(ctx, job); err != nil {
			logger.Warn().Err(err).Msg("failed to enqueue backup prune job")
		}
	}
	return backup, nil
}

// countRecords reports the record count of one collection without caring
// about its element type.
func countRecords(ctx context.Context, repos *repositories.Registry, key string) int {
	switch key {
	case models.CollectionStudents:
		return repos.Students.Count(ctx)
	case models.CollectionTeachers:
		return repos.Teachers.Count(ctx)
	case models.CollectionCourses:
		return repos.Courses.Count(ctx)
	case models.CollectionClassSchedules:
		return repos.ClassSchedules.Count(ctx)
	case models.CollectionAssignments:
		return repos.Assignments.Count(ctx)
	case models.CollectionAttendance:
		return repos.Attendance.Count(ctx)
	case models.CollectionTransactions:
		return repos.Transactions.Count(ctx)
	case models.CollectionAnnouncements:
		return repos.Announcements.Count(ctx)
	case models.CollectionBooks:
		return repos.Books.Count(ctx)
	case models.CollectionBookIssues:
		return repos.BookIssues.Count(ctx)
	case models.CollectionExams:
		return repos.Exams.Count(ctx)
	case models.CollectionGrades:
		return repos.Grades.Count(ctx)
	case models.CollectionUserRoles:
		return repos.UserRoles.Count(ctx)
	default:
		return 0
	}
}

// Restore replaces the live collections with the payloads captured in the
// named backup. Collections absent from the snapshot are left untouched.
func (s *BackupService) Restore(ctx context.Context, backupID string) (models.Backup, error) {
	backup, ok := s.repos.Backups.GetByID(ctx, backupID)
	if !ok {
		return models.Backup{}, apperrors.ErrBackupNotFound
	}

	st := s.repos.Store()
	for key, payload := range backup.Collections {
		if err := st.Set(ctx, key, []byte(payload)); err != nil {
			return backup, fmt.Errorf("failed to restore collection %s: %w", key, err)
		}
	}
	logger.Info().Str("backup", backup.Name).Int("collections", len(backup.Collections)).Msg("backup restored")
	return backup, nil
}

// Page returns one page of backups, newest first, plus the total count.
func (s *BackupService) Page(ctx context.Context, page, limit int) ([]models.Backup, int) {
	all := s.repos.Backups.List(ctx)
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	total := len(all)
	start := (page - 1) * limit
	if start < 0 || start >= total {
		return []models.Backup{}, total
	}
	end := start + limit
	if end > total {
		end = total
	}
	return all[start:end], total
}

// Prune deletes the oldest backups beyond the retention limit and returns
// how many were removed. The worker calls this after every snapshot.
func (s *BackupService) Prune(ctx context.Context) (int, error) {
	all := s.repos.Backups.List(ctx)
	if len(all) <= s.retention {
		return 0, nil
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].CreatedAt.Before(all[j].CreatedAt)
	})

	removed := 0
	for _, backup := range all[:len(all)-s.retention] {
		ok, err := s.repos.Backups.Delete(ctx, backup.ID)
		if err != nil {
			return removed, fmt.Errorf("failed to prune backup %s: %w", backup.ID, err)
		}
		if ok {
			removed++
		}
	}
	return removed, nil
}
