package models

import "time"

// User represents a registered account. A user can act as both buyer and
// seller; ownership is expressed through Product.SellerID.
type User struct {
	ID           string     `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Email        string     `json:"email" gorm:"uniqueIndex;type:varchar(255);not null" validate:"required,email"`
	Username     string     `json:"username" gorm:"uniqueIndex;type:varchar(100);not null" validate:"required,min=3,max=100"`
	PasswordHash string     `json:"-" gorm:"type:varchar(255);not null"`
	AvatarURL    string     `json:"avatar_url" gorm:"type:varchar(500)" validate:"omitempty,max=500"`
	RoleID       string     `json:"-" gorm:"type:varchar(36);not null"`
	Role         Role       `json:"role" gorm:"foreignKey:RoleID"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLogin    *time.Time `json:"last_login"`
}
