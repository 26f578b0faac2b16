package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/campus-suite/student-service/internal/repositories"
)

type rosterService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewRosterService(repo repositories.Repository, logger *slog.Logger) RosterService {
	return &rosterService{
		repo:   repo,
		logger: logger,
	}
}

var rosterHeaders = []string{"User ID", "Name", "Email", "Class", "Section", "Roll", "System Access", "Active"}

// ExportRoster renders the filtered student list as an xlsx workbook.
func (s *rosterService) ExportRoster(ctx context.Context, filters repositories.StudentFilters) (*bytes.Buffer, error) {
	students, err := s.repo.Student().List(ctx, filters)
	if err != nil {
		s.logger.Error("Failed to list students for export", "error", err)
		return nil, NewUnexpectedError(msgInternalError)
	}
	if len(students) == 0 {
		return nil, NewNotFoundError(msgStudentsNotFound)
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Students"
	f.SetSheetName(f.GetSheetName(0), sheet)

	for col, header := range rosterHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to build header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for i, st := range students {
		row := i + 2
		values := []interface{}{
			st.ID,
			st.Name,
			st.Email,
			strOrEmpty(st.Class),
			strOrEmpty(st.Section),
			intOrEmpty(st.Roll),
			boolOrEmpty(st.SystemAccess),
			st.IsActive,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, fmt.Errorf("failed to build cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("failed to write row %d: %w", row, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("Failed to render roster workbook", "error", err)
		return nil, NewUnexpectedError(msgInternalError)
	}

	s.logger.Info("Roster exported", "students", len(students))
	return buf, nil
}

func strOrEmpty(s *string) interface{} {
	if s == nil {
		return ""
	}
	return *s
}

func intOrEmpty(n *int) interface{} {
	if n == nil {
		return ""
	}
	return *n
}

func boolOrEmpty(b *bool) interface{} {
	if b == nil {
		return ""
	}
	return *b
}
