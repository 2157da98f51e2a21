package models

import "time"

// Collection keys. These are the fixed, well-known names the store adapter is
// keyed by; every repository is bound to exactly one of them.
const (
	CollectionStudents       = "students"
	CollectionTeachers       = "teachers"
	CollectionCourses        = "courses"
	CollectionClassSchedules = "class_schedules"
	CollectionAssignments    = "assignments"
	CollectionAttendance     = "attendance"
	CollectionTransactions   = "transactions"
	CollectionAnnouncements  = "announcements"
	CollectionBooks          = "books"
	CollectionBookIssues     = "book_issues"
	CollectionExams          = "exams"
	CollectionGrades         = "grades"
	CollectionAuditLogs      = "audit_logs"
	CollectionBackups        = "backups"
	CollectionUserRoles      = "user_roles"
)

// EntityCollections lists the collections exposed as generic CRUD resources
// under /api. Super-admin collections are managed separately.
var EntityCollections = []string{
	CollectionStudents,
	CollectionTeachers,
	CollectionCourses,
	CollectionClassSchedules,
	CollectionAssignments,
	CollectionAttendance,
	CollectionTransactions,
	CollectionAnnouncements,
	CollectionBooks,
	CollectionBookIssues,
	CollectionExams,
	CollectionGrades,
}

// Meta carries the identity and audit fields shared by every record. ID is
// assigned once at creation and never changes; UpdatedAt is refreshed on every
// create and update, so UpdatedAt >= CreatedAt always holds.
type Meta struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Attendance statuses.
const (
	AttendancePresent = "present"
	AttendanceAbsent  = "absent"
	AttendanceLate    = "late"
)

// Transaction statuses.
const (
	TransactionPaid    = "paid"
	TransactionPending = "pending"
	TransactionOverdue = "overdue"
)

// Book issue statuses.
const (
	BookIssueActive   = "issued"
	BookIssueReturned = "returned"
)

// Student is an enrolled student record.
type Student struct {
	Meta
	FirstName    string `json:"firstName" binding:"required"`
	LastName     string `json:"lastName" binding:"required"`
	Grade        string `json:"grade" binding:"required"`
	RollNumber   string `json:"rollNumber"`
	Status       string `json:"status"`
	Email        string `json:"email" binding:"omitempty,email"`
	GuardianName string `json:"guardianName"`
	Phone        string `json:"phone"`
}

// Teacher is a staff member record.
type Teacher struct {
	Meta
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Subject   string `json:"subject"`
	Email     string `json:"email" binding:"omitempty,email"`
	Phone     string `json:"phone"`
	Status    string `json:"status"`
}

// Course groups students under a teacher for a subject.
type Course struct {
	Meta
	Name        string `json:"name" binding:"required"`
	Code        string `json:"code"`
	TeacherID   string `json:"teacherId"`
	Grade       string `json:"grade"`
	Description string `json:"description"`
}

// ClassSchedule is a weekly timetable slot. CourseID and TeacherID are soft
// references; the schedule survives deletion of either.
type ClassSchedule struct {
	Meta
	CourseID  string `json:"courseId" binding:"required"`
	TeacherID string `json:"teacherId"`
	DayOfWeek string `json:"dayOfWeek" binding:"required"`
	StartTime string `json:"startTime" binding:"required"`
	EndTime   string `json:"endTime" binding:"required"`
	Room      string `json:"room"`
}

// Assignment is coursework with a due date.
type Assignment struct {
	Meta
	CourseID    string `json:"courseId" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate"`
	TotalMarks  int    `json:"totalMarks"`
}

// AttendanceRecord marks one student on one calendar date. Date uses the
// YYYY-MM-DD form so records can be filtered by plain string equality.
type AttendanceRecord struct {
	Meta
	StudentID string `json:"studentId" binding:"required"`
	Date      string `json:"date" binding:"required"`
	Status    string `json:"status" binding:"required,oneof=present absent late"`
	Remarks   string `json:"remarks"`
}

// Transaction is a fee or payment entry against a student.
type Transaction struct {
	Meta
	StudentID string  `json:"studentId" binding:"required"`
	Amount    float64 `json:"amount" binding:"required,gt=0"`
	Type      string  `json:"type"`
	Status    string  `json:"status" binding:"required,oneof=paid pending overdue"`
	DueDate   string  `json:"dueDate"`
	PaidDate  string  `json:"paidDate,omitempty"`
}

// Announcement is a broadcast message to an audience group.
type Announcement struct {
	Meta
	Title    string `json:"title" binding:"required"`
	Body     string `json:"body" binding:"required"`
	Audience string `json:"audience"`
	PostedBy string `json:"postedBy"`
}

// Book is a library holding. Available tracks copies currently on the shelf;
// the repository does not enforce Available <= Quantity, the library service
// keeps the two in step when issues are created and returned.
type Book struct {
	Meta
	Title     string `json:"title" binding:"required"`
	Author    string `json:"author"`
	ISBN      string `json:"isbn"`
	Category  string `json:"category"`
	Quantity  int    `json:"quantity" binding:"required,gte=0"`
	Available int    `json:"available"`
	Status    string `json:"status"`
}

// BookIssue is a lending record referencing a book and a student.
type BookIssue struct {
	Meta
	BookID     string  `json:"bookId" binding:"required"`
	StudentID  string  `json:"studentId" binding:"required"`
	IssuedDate string  `json:"issuedDate"`
	DueDate    string  `json:"dueDate"`
	ReturnDate string  `json:"returnDate,omitempty"`
	Status     string  `json:"status"`
	FineAmount float64 `json:"fineAmount,omitempty"`
}

// Exam is a scheduled examination for a course.
type Exam struct {
	Meta
	Name       string `json:"name" binding:"required"`
	CourseID   string `json:"courseId"`
	Date       string `json:"date"`
	TotalMarks int    `json:"totalMarks"`
}

// Grade is a scored result for a student in a subject.
type Grade struct {
	Meta
	StudentID  string  `json:"studentId" binding:"required"`
	Subject    string  `json:"subject" binding:"required"`
	Marks      float64 `json:"marks" binding:"gte=0"`
	TotalMarks float64 `json:"totalMarks" binding:"required,gt=0"`
	Percentage float64 `json:"percentage"`
	Grade      string  `json:"grade"`
	Comments   string  `json:"comments,omitempty"`
}

// AuditLog records one mutating API call for the super-admin console.
type AuditLog struct {
	Meta
	Actor  string `json:"actor"`
	Method string `json:"method"`
	Path   string `json:"path"`
	Entity string `json:"entity"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// Backup is a snapshot of every entity collection at a point in time, stored
// as serialized collection payloads keyed by collection name. The backups
// collection itself is excluded from the snapshot.
type Backup struct {
	Meta
	Name        string            `json:"name"`
	CreatedBy   string            `json:"createdBy"`
	Collections map[string]string `json:"collections"`
	ItemCount   int               `json:"itemCount"`
	SizeBytes   int               `json:"sizeBytes"`
}

// UserRole is a console account with an assigned role. PasswordHash is a
// bcrypt hash; responses strip it before serialization.
type UserRole struct {
	Meta
	Email        string `json:"email" binding:"required,email"`
	DisplayName  string `json:"displayName"`
	Role         string `json:"role" binding:"required,oneof=super_admin admin staff"`
	PasswordHash string `json:"passwordHash,omitempty"`
}

// Roles assignable through the super-admin console.
const (
	RoleSuperAdmin = "super_admin"
	RoleAdmin      = "admin"
	RoleStaff      = "staff"
)
