package models

// UserRole represents the roles known to the lesson-plan workflow.
type UserRole string

const (
	RoleTeacher UserRole = "TEACHER"
	RoleManager UserRole = "MANAGER"
	RoleAdmin   UserRole = "ADMIN"
)

// Profile is the authenticated user's profile as seen by the workflow.
// GradeLabel carries the legacy "Lớp N" label; GradeID is preferred when set.
type Profile struct {
	UserID     string   `json:"userId"`
	FullName   string   `json:"fullName"`
	Role       UserRole `json:"role"`
	GradeID    *int64   `json:"gradeId,omitempty"`
	GradeLabel string   `json:"gradeLabel,omitempty"`
}

// Page is one page of a paginated list.
type Page[T any] struct {
	Items        []T `json:"items"`
	CurrentPage  int `json:"currentPage"`
	TotalPages   int `json:"totalPages"`
	TotalRecords int `json:"totalRecords"`
}

// TotalPagesFor computes the page count for a record total.
func TotalPagesFor(total, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}
