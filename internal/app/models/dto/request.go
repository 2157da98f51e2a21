package dto

// LoginRequest is the console login payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued access token.
type LoginResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ExpiresIn   int    `json:"expiresIn"`
	Role        string `json:"role"`
}

// CreateRoleRequest creates a console account with an assigned role.
type CreateRoleRequest struct {
	Email       string `json:"email" binding:"required,email"`
	DisplayName string `json:"displayName"`
	Role        string `json:"role" binding:"required,oneof=super_admin admin staff"`
	Password    string `json:"password" binding:"required,min=8"`
}

// UpdateRoleRequest changes the role or display name of an account.
type UpdateRoleRequest struct {
	DisplayName string `json:"displayName"`
	Role        string `json:"role" binding:"omitempty,oneof=super_admin admin staff"`
}

// CreateBackupRequest optionally names a snapshot.
type CreateBackupRequest struct {
	Name string `json:"name"`
}

// IssueBookRequest creates a lending record and decrements availability.
type IssueBookRequest struct {
	BookID    string `json:"bookId" binding:"required"`
	StudentID string `json:"studentId" binding:"required"`
	DueDate   string `json:"dueDate"`
}

// ReturnBookRequest closes a lending record.
type ReturnBookRequest struct {
	FineAmount float64 `json:"fineAmount" binding:"gte=0"`
}
