package repositories

import (
	"github.com/edudesk/edudesk/internal/app/models"
	"github.com/edudesk/edudesk/internal/store"
)

// Registry holds one typed repository per collection, all sharing a single
// store adapter. It is passed explicitly to services and controllers so tests
// can build one over an in-memory store.
type Registry struct {
	Students       *Repository[models.Student]
	Teachers       *Repository[models.Teacher]
	Courses        *Repository[models.Course]
	ClassSchedules *Repository[models.ClassSchedule]
	Assignments    *Repository[models.Assignment]
	Attendance     *Repository[models.AttendanceRecord]
	Transactions   *Repository[models.Transaction]
	Announcements  *Repository[models.Announcement]
	Books          *Repository[models.Book]
	BookIssues     *Repository[models.BookIssue]
	Exams          *Repository[models.Exam]
	Grades         *Repository[models.Grade]
	AuditLogs      *Repository[models.AuditLog]
	Backups        *Repository[models.Backup]
	UserRoles      *Repository[models.UserRole]

	store store.Store
}

// NewRegistry builds the full repository set over one store.
func NewRegistry(st store.Store) *Registry {
	return &Registry{
		Students:       New[models.Student](st, models.CollectionStudents),
		Teachers:       New[models.Teacher](st, models.CollectionTeachers),
		Courses:        New[models.Course](st, models.CollectionCourses),
		ClassSchedules: New[models.ClassSchedule](st, models.CollectionClassSchedules),
		Assignments:    New[models.Assignment](st, models.CollectionAssignments),
		Attendance:     New[models.AttendanceRecord](st, models.CollectionAttendance),
		Transactions:   New[models.Transaction](st, models.CollectionTransactions),
		Announcements:  New[models.Announcement](st, models.CollectionAnnouncements),
		Books:          New[models.Book](st, models.CollectionBooks),
		BookIssues:     New[models.BookIssue](st, models.CollectionBookIssues),
		Exams:          New[models.Exam](st, models.CollectionExams),
		Grades:         New[models.Grade](st, models.CollectionGrades),
		AuditLogs:      New[models.AuditLog](st, models.CollectionAuditLogs),
		Backups:        New[models.Backup](st, models.CollectionBackups),
		UserRoles:      New[models.UserRole](st, models.CollectionUserRoles),
		store:          st,
	}
}

// Store exposes the underlying store adapter for store-level operations such
// as backup snapshots.
func (r *Registry) Store() store.Store {
	return r.store
}
