package repositories

import (
	"context"

	"github.com/campus-suite/student-service/internal/models"
)

// ===== FILTER AND RESULT STRUCTS =====

type StudentFilters struct {
	Name    *string `json:"name"`
	Class   *string `json:"class"`
	Section *string `json:"section"`
	Roll    *int    `json:"roll"`
	Limit   int     `json:"limit"`
	Offset  int     `json:"offset"`
}

// WriteResult is the uniform outcome of the two persistence operations.
// Insert and Update share this shape so the service treats both paths
// the same way; UserID carries the assigned identity on insert.
type WriteResult struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
	UserID  int64  `json:"user_id"`
}

// ===== REPOSITORY INTERFACES =====

// StudentRepository owns the student rows (shared user row + profile).
type StudentRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	List(ctx context.Context, filters StudentFilters) ([]*models.StudentSummary, error)

	// Insert creates the user row plus its student profile and reports
	// the assigned identity. Update rewrites both rows for an existing
	// identity. Both run inside the ambient transaction when one is open.
	Insert(ctx context.Context, user *models.User, profile *models.StudentProfile) (*WriteResult, error)
	Update(ctx context.Context, user *models.User, profile *models.StudentProfile) (*WriteResult, error)

	// SetStatus flips the active flag and records the acting reviewer.
	// Returns the number of affected rows.
	SetStatus(ctx context.Context, id int64, status bool, reviewerID int64) (int64, error)

	// Delete removes the student record. Hard delete, returns the
	// number of affected rows.
	Delete(ctx context.Context, id int64) (int64, error)
}

// UserRepository is the shared identity lookup used across record
// types; the student service only reads through it.
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// Repository aggregates the sub-repositories plus transaction support.
type Repository interface {
	Student() StudentRepository
	User() UserRepository

	// WithTransaction runs fn against a Repository bound to one
	// database transaction; fn returning an error rolls it back.
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	Ping(ctx context.Context) error
	Close() error
}
