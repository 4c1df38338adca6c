package models

import (
	"time"
)

type UserRole string

const (
	RoleUser      UserRole = "user"
	RoleModerator UserRole = "moderator"
	RoleAdmin     UserRole = "admin"
)

type User struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"not null"`
	Role      UserRole  `json:"role" gorm:"default:'user'"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Actor is the resolved identity performing an operation. A nil *Actor
// means the request is anonymous.
type Actor struct {
	ID    uint     `json:"id"`
	Email string   `json:"email"`
	Role  UserRole `json:"role"`
}

func (u *User) Actor() *Actor {
	return &Actor{ID: u.ID, Email: u.Email, Role: u.Role}
}
