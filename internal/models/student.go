package models

import (
	"time"
)

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

// StudentProfile holds the student-specific columns keyed by the user id.
// Every optional field is a pointer: absent input is stored as NULL,
// never as an empty string.
type StudentProfile struct {
	UserID int64 `json:"-" gorm:"primaryKey"`

	Gender             *Gender    `json:"gender" gorm:"size:10"`
	Phone              *string    `json:"phone" gorm:"size:20"`
	Dob                *time.Time `json:"dob" gorm:"type:date"`
	CurrentAddress     *string    `json:"currentAddress" gorm:"size:50"`
	PermanentAddress   *string    `json:"permanentAddress" gorm:"size:50"`
	FatherName         *string    `json:"fatherName" gorm:"size:50"`
	FatherPhone        *string    `json:"fatherPhone" gorm:"size:20"`
	MotherName         *string    `json:"motherName" gorm:"size:50"`
	MotherPhone        *string    `json:"motherPhone" gorm:"size:20"`
	GuardianName       *string    `json:"guardianName" gorm:"size:50"`
	GuardianPhone      *string    `json:"guardianPhone" gorm:"size:20"`
	RelationOfGuardian *string    `json:"relationOfGuardian" gorm:"size:30"`
	Class              *string    `json:"class" gorm:"column:class_name;size:50"`
	Section            *string    `json:"section" gorm:"size:50"`
	AdmissionDate      *time.Time `json:"admissionDate" gorm:"type:date"`
	Roll               *int       `json:"roll"`
	SystemAccess       *bool      `json:"systemAccess"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (StudentProfile) TableName() string {
	return "student_profiles"
}

// Student is the full record returned by detail lookups: the shared
// user row flattened together with its student profile.
type Student struct {
	ID       int64  `json:"userId"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	IsActive bool   `json:"isActive"`

	StudentProfile `gorm:"embedded"`
}

// StudentSummary is the row shape of list queries.
type StudentSummary struct {
	ID           int64   `json:"userId"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Class        *string `json:"class"`
	Section      *string `json:"section"`
	Roll         *int    `json:"roll"`
	SystemAccess *bool   `json:"systemAccess"`
	IsActive     bool    `json:"isActive"`
}
