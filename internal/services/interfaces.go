package services

import (
	"bytes"
	"context"

	"github.com/campus-suite/student-service/internal/models"
	"github.com/campus-suite/student-service/internal/repositories"
	"github.com/campus-suite/student-service/internal/validator"
)

// ===== REQUEST/RESPONSE DTOs =====

// Use validator types for the request shapes
type CreateStudentRequest = validator.StudentCreateRequest
type UpdateStudentRequest = validator.StudentUpdateRequest

// MessageResponse is the uniform success payload of write operations
type MessageResponse struct {
	Message string `json:"message"`
}

type StudentListResponse struct {
	Students []*models.StudentSummary `json:"students"`
}

// ===== SERVICE INTERFACES =====

// StudentService runs the validate-then-persist pipeline behind every
// student operation.
type StudentService interface {
	GetAll(ctx context.Context, filters repositories.StudentFilters) (*StudentListResponse, error)
	GetDetail(ctx context.Context, rawID string) (*models.Student, error)
	Create(ctx context.Context, req *CreateStudentRequest) (*MessageResponse, error)
	Update(ctx context.Context, rawID string, req *CreateStudentRequest) (*MessageResponse, error)
	SetStatus(ctx context.Context, rawID string, status validator.Flag, reviewerID int64) (*MessageResponse, error)
	Delete(ctx context.Context, rawID string) (*MessageResponse, error)
}

// RosterService exports student rosters as spreadsheets
type RosterService interface {
	ExportRoster(ctx context.Context, filters repositories.StudentFilters) (*bytes.Buffer, error)
}

// Notifier is the best-effort side channel for student lifecycle
// signals. Implementations: direct SMTP, or events published for the
// mail worker and downstream consumers. Failures never fail the
// operation that triggered them.
type Notifier interface {
	SendAccountVerification(ctx context.Context, userID int64, email string) error
	NotifyStatusChanged(ctx context.Context, userID int64, active bool) error
	NotifyDeleted(ctx context.Context, userID int64, email string) error
}

// ServiceManager wires and owns all services
type ServiceManager interface {
	Student() StudentService
	Roster() RosterService

	Initialize(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
