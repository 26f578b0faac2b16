package services

import (
	"context"
	"log/slog"

	"github.com/campus-suite/student-service/internal/repositories"
	"github.com/campus-suite/student-service/internal/validator"
)

type defaultServiceManager struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	notifier  Notifier

	student StudentService
	roster  RosterService
}

func NewDefaultServiceManager(repo repositories.Repository, logger *slog.Logger, v *validator.Validator, notifier Notifier) ServiceManager {
	return &defaultServiceManager{
		repo:      repo,
		logger:    logger,
		validator: v,
		notifier:  notifier,
	}
}

func (m *defaultServiceManager) Initialize(ctx context.Context) error {
	m.student = NewStudentService(m.repo, m.logger, m.validator, m.notifier)
	m.roster = NewRosterService(m.repo, m.logger)

	return m.repo.Ping(ctx)
}

func (m *defaultServiceManager) Student() StudentService {
	return m.student
}

func (m *defaultServiceManager) Roster() RosterService {
	return m.roster
}

func (m *defaultServiceManager) Shutdown(ctx context.Context) error {
	return nil
}
