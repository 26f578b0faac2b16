package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/campus-suite/student-service/internal/models"
	"github.com/campus-suite/student-service/internal/repositories"
	"github.com/campus-suite/student-service/internal/validator"
)

// Operation result messages. Fixed strings: unexpected failures never
// leak their cause to the caller.
const (
	msgStudentAddedAndMailSent = "Student added and verification email sent successfully."
	msgStudentAddedMailFailed  = "Student added, but failed to send verification email."
	msgEmailExists             = "Email already exists"
	msgStudentNotFound         = "Student not found"
	msgStudentsNotFound        = "Students not found"
	msgStatusChanged           = "Student status changed successfully"
	msgStudentDeleted          = "Student deleted successfully"
	msgUnableToDisable         = "Unable to disable student"
	msgUnableToDelete          = "Unable to delete student"
	msgUnableToAdd             = "Unable to add student"
	msgUnableToUpdate          = "Unable to update student"
	msgInternalError           = "Internal Server Error"
)

// notifyTimeout bounds the best-effort verification notification so a
// hanging dispatcher cannot hang the create operation.
const notifyTimeout = 5 * time.Second

type studentService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	notifier  Notifier
}

func NewStudentService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator, notifier Notifier) StudentService {
	return &studentService{
		repo:      repo,
		logger:    logger,
		validator: v,
		notifier:  notifier,
	}
}

// GetAll returns student summaries matching the filters.
func (s *studentService) GetAll(ctx context.Context, filters repositories.StudentFilters) (*StudentListResponse, error) {
	students, err := s.repo.Student().List(ctx, filters)
	if err != nil {
		s.logger.Error("Failed to list students", "error", err)
		return nil, NewUnexpectedError(msgInternalError)
	}

	if len(students) == 0 {
		return nil, NewNotFoundError(msgStudentsNotFound)
	}

	return &StudentListResponse{Students: students}, nil
}

// GetDetail returns the full student record for an identity.
func (s *studentService) GetDetail(ctx context.Context, rawID string) (*models.Student, error) {
	id, errs := validator.CoerceID(rawID)
	if len(errs) > 0 {
		return nil, NewValidationError(errs.Messages()...)
	}

	return s.checkStudentID(ctx, id)
}

// Create runs the full pipeline: validate, uniqueness check, persist,
// then the best-effort verification notification. The record is never
// rolled back because notification failed; persistence has committed
// by that point.
func (s *studentService) Create(ctx context.Context, req *CreateStudentRequest) (*MessageResponse, error) {
	s.logger.Info("Adding student")

	if errs := s.validator.ValidateStudentCreate(req); len(errs) > 0 {
		return nil, NewValidationError(errs.Messages()...)
	}

	user, profile, err := buildStudentRecord(req)
	if err != nil {
		s.logger.Error("Failed to build student record", "error", err)
		return nil, NewUnexpectedError(msgUnableToAdd)
	}

	// Uniqueness check and persist share one transaction; the unique
	// index on users.email backstops the remaining race window.
	var result *repositories.WriteResult
	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		existing, err := tx.User().GetByEmail(ctx, user.Email)
		if err != nil && !repositories.IsNotFoundError(err) {
			return err
		}
		if existing != nil {
			return NewConflictError(msgEmailExists)
		}

		result, err = tx.Student().Insert(ctx, user, profile)
		return err
	})
	if err != nil {
		if se, ok := AsServiceError(err); ok {
			return nil, se
		}
		if repositories.IsDuplicateKeyError(err) {
			return nil, NewConflictError(msgEmailExists)
		}
		s.logger.Error("Failed to add student", "error", err, "email", user.Email)
		return nil, NewUnexpectedError(msgUnableToAdd)
	}
	if !result.OK {
		return nil, NewConflictError(result.Message)
	}

	s.logger.Info("Student added", "user_id", result.UserID)

	notifyCtx, cancel := context.WithTimeout(ctx, notifyTimeout)
	defer cancel()
	if err := s.notifier.SendAccountVerification(notifyCtx, result.UserID, user.Email); err != nil {
		s.logger.Error("Failed to send verification notification", "error", err, "user_id", result.UserID)
		return &MessageResponse{Message: msgStudentAddedMailFailed}, nil
	}

	return &MessageResponse{Message: msgStudentAddedAndMailSent}, nil
}

// Update revalidates the full payload and rewrites the record. A
// student may keep its own email; any other record holding it is a
// conflict.
func (s *studentService) Update(ctx context.Context, rawID string, req *CreateStudentRequest) (*MessageResponse, error) {
	id, idErrs := validator.CoerceID(rawID)

	updateReq := &UpdateStudentRequest{StudentCreateRequest: *req, UserID: id}
	errs := mergeIDErrors(idErrs, s.validator.ValidateStudentUpdate(updateReq))
	if len(errs) > 0 {
		return nil, NewValidationError(errs.Messages()...)
	}
	// normalize ran on the copy inside updateReq
	*req = updateReq.StudentCreateRequest

	if _, err := s.checkStudentID(ctx, id); err != nil {
		return nil, err
	}

	user, profile, err := buildStudentRecord(req)
	if err != nil {
		s.logger.Error("Failed to build student record", "error", err, "user_id", id)
		return nil, NewUnexpectedError(msgUnableToUpdate)
	}
	user.ID = id

	var result *repositories.WriteResult
	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		existing, err := tx.User().GetByEmail(ctx, user.Email)
		if err != nil && !repositories.IsNotFoundError(err) {
			return err
		}
		if existing != nil && existing.ID != id {
			return NewConflictError(msgEmailExists)
		}

		result, err = tx.Student().Update(ctx, user, profile)
		return err
	})
	if err != nil {
		if se, ok := AsServiceError(err); ok {
			return nil, se
		}
		if repositories.IsNotFoundError(err) {
			return nil, NewNotFoundError(msgStudentNotFound)
		}
		if repositories.IsDuplicateKeyError(err) {
			return nil, NewConflictError(msgEmailExists)
		}
		s.logger.Error("Failed to update student", "error", err, "user_id", id)
		return nil, NewUnexpectedError(msgUnableToUpdate)
	}
	if !result.OK {
		return nil, NewConflictError(result.Message)
	}

	s.logger.Info("Student updated", "user_id", id)
	return &MessageResponse{Message: result.Message}, nil
}

// SetStatus flips the active flag, recording which reviewer did it.
func (s *studentService) SetStatus(ctx context.Context, rawID string, status validator.Flag, reviewerID int64) (*MessageResponse, error) {
	id, idErrs := validator.CoerceID(rawID)

	req := &validator.StudentStatusRequest{
		UserID:     id,
		ReviewerID: reviewerID,
		Status:     status,
	}
	errs := mergeIDErrors(idErrs, s.validator.ValidateStudentStatus(req))
	if len(errs) > 0 {
		return nil, NewValidationError(errs.Messages()...)
	}

	if _, err := s.checkStudentID(ctx, id); err != nil {
		return nil, err
	}

	affected, err := s.repo.Student().SetStatus(ctx, id, *status.Val, reviewerID)
	if err != nil {
		s.logger.Error("Failed to set student status", "error", err, "user_id", id)
		return nil, NewUnexpectedError(msgInternalError)
	}
	if affected <= 0 {
		// Identity was confirmed one query ago; a zero count here
		// smells like a stale read rather than a business outcome.
		s.logger.Warn("Status change affected no rows", "user_id", id, "reviewer_id", reviewerID)
		return nil, NewConflictError(msgUnableToDisable)
	}

	s.logger.Info("Student status changed", "user_id", id, "status", *status.Val, "reviewer_id", reviewerID)

	notifyCtx, cancel := context.WithTimeout(ctx, notifyTimeout)
	defer cancel()
	if err := s.notifier.NotifyStatusChanged(notifyCtx, id, *status.Val); err != nil {
		s.logger.Warn("Failed to notify status change", "error", err, "user_id", id)
	}

	return &MessageResponse{Message: msgStatusChanged}, nil
}

// Delete removes the record. Hard delete, irreversible.
func (s *studentService) Delete(ctx context.Context, rawID string) (*MessageResponse, error) {
	id, errs := validator.CoerceID(rawID)
	if len(errs) > 0 {
		return nil, NewValidationError(errs.Messages()...)
	}

	student, err := s.checkStudentID(ctx, id)
	if err != nil {
		return nil, err
	}

	affected, err := s.repo.Student().Delete(ctx, id)
	if err != nil {
		s.logger.Error("Failed to delete student", "error", err, "user_id", id)
		return nil, NewUnexpectedError(msgInternalError)
	}
	if affected <= 0 {
		s.logger.Warn("Delete affected no rows", "user_id", id)
		return nil, NewConflictError(msgUnableToDelete)
	}

	s.logger.Info("Student deleted", "user_id", id)

	notifyCtx, cancel := context.WithTimeout(ctx, notifyTimeout)
	defer cancel()
	if err := s.notifier.NotifyDeleted(notifyCtx, id, student.Email); err != nil {
		s.logger.Warn("Failed to notify deletion", "error", err, "user_id", id)
	}

	return &MessageResponse{Message: msgStudentDeleted}, nil
}

// checkStudentID verifies the target identity exists before any
// uniqueness or persistence work runs, returning the current record.
func (s *studentService) checkStudentID(ctx context.Context, id int64) (*models.Student, error) {
	student, err := s.repo.Student().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, NewNotFoundError(msgStudentNotFound)
		}
		s.logger.Error("Failed to check student identity", "error", err, "user_id", id)
		return nil, NewUnexpectedError(msgInternalError)
	}
	return student, nil
}
