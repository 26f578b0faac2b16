package services

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/campus-suite/student-service/internal/repositories"
	"github.com/campus-suite/student-service/internal/validator"
)

func TestRosterService_ExportRoster(t *testing.T) {
	repo := newMockRepository()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	ctx := context.Background()

	// Seed one student through the full pipeline.
	svc := NewStudentService(repo, logger, validator.New(), &mockNotifier{})
	req := validCreateRequest()
	req.Class = strPtr("Grade 9")
	req.Section = strPtr("B")
	mustCreate(t, svc, req)

	roster := NewRosterService(repo, logger)
	buf, err := roster.ExportRoster(ctx, repositories.StudentFilters{})
	if err != nil {
		t.Fatalf("ExportRoster failed: %v", err)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("Export is not a readable workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Students")
	if err != nil {
		t.Fatalf("Missing Students sheet: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Expected header plus one row, got %d rows", len(rows))
	}
	if rows[0][0] != "User ID" || rows[0][1] != "Name" {
		t.Errorf("Unexpected header row: %v", rows[0])
	}
	if rows[1][1] != "Ana" || rows[1][2] != "ana@example.com" {
		t.Errorf("Unexpected data row: %v", rows[1])
	}
	if rows[1][3] != "Grade 9" || rows[1][4] != "B" {
		t.Errorf("Class and section not exported: %v", rows[1])
	}
}

func TestRosterService_ExportRoster_Empty(t *testing.T) {
	repo := newMockRepository()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	roster := NewRosterService(repo, logger)
	_, err := roster.ExportRoster(context.Background(), repositories.StudentFilters{})
	se := wantKind(t, err, KindNotFound)
	if se.Messages[0] != "Students not found" {
		t.Errorf("Got message %q", se.Messages[0])
	}
}
