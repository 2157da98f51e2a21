package dto

import "time"

// APIResponse is the standard success/error envelope for entity and stats
// endpoints.
type APIResponse struct {
	Success   bool         `json:"success"`
	Data      interface{}  `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

// NewSuccessResponse wraps data in the success envelope.
func NewSuccessResponse(data interface{}) APIResponse {
	return APIResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// NewErrorResponse wraps an error detail in the envelope.
func NewErrorResponse(detail *ErrorDetail) APIResponse {
	return APIResponse{
		Success:   false,
		Error:     detail,
		Timestamp: time.Now(),
	}
}

// Pagination is the pagination block used by super-admin list responses.
type Pagination struct {
	CurrentPage     int  `json:"currentPage"`
	TotalPages      int  `json:"totalPages"`
	TotalItems      int  `json:"totalItems"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}

// AuditLogPage is the envelope for GET /api/super-admin/audit/logs.
type AuditLogPage struct {
	Logs       interface{} `json:"logs"`
	Pagination Pagination  `json:"pagination"`
}

// BackupPage is the envelope for GET /api/super-admin/backup.
type BackupPage struct {
	Backups    interface{} `json:"backups"`
	Pagination Pagination  `json:"pagination"`
}

// ItemPage is the generic envelope for the remaining super-admin lists.
type ItemPage struct {
	Items      interface{} `json:"items"`
	Pagination Pagination  `json:"pagination"`
}
