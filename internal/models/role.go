package models

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Role is a named permission level. Roles are seeded at startup and never
// mutated afterwards.
type Role struct {
	ID   string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name string `json:"name" gorm:"uniqueIndex;type:varchar(20);not null" validate:"required,oneof=admin user"`
}
