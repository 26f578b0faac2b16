package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleTeacher UserRole = "teacher"
	RoleAdmin   UserRole = "admin"
)

// User is the shared identity row every school record hangs off.
// The student service owns student profiles; user rows are shared with
// the other record types, so only the columns this service writes are
// modeled here.
type User struct {
	ID    int64    `json:"userId" gorm:"primaryKey;autoIncrement"`
	Name  string   `json:"name" gorm:"not null;size:100"`
	Email string   `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Role  UserRole `json:"role" gorm:"size:20;default:student"`

	// Status
	IsActive      bool `json:"isActive" gorm:"default:true"`
	EmailVerified bool `json:"isEmailVerified" gorm:"default:false"`

	// Set by the status-change operation
	StatusLastReviewedAt *time.Time `json:"-"`
	StatusLastReviewerID *int64     `json:"-"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (User) TableName() string {
	return "users"
}
