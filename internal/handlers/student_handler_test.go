package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/campus-suite/student-service/internal/models"
	"github.com/campus-suite/student-service/internal/repositories"
	"github.com/campus-suite/student-service/internal/services"
	"github.com/campus-suite/student-service/internal/utils"
	"github.com/campus-suite/student-service/internal/validator"
)

type stubStudentService struct {
	list   *services.StudentListResponse
	detail *models.Student
	resp   *services.MessageResponse
	err    error

	gotFilters  repositories.StudentFilters
	gotRawID    string
	gotCreate   *services.CreateStudentRequest
	gotStatus   validator.Flag
	gotReviewer int64
}

func (s *stubStudentService) GetAll(_ context.Context, filters repositories.StudentFilters) (*services.StudentListResponse, error) {
	s.gotFilters = filters
	return s.list, s.err
}

func (s *stubStudentService) GetDetail(_ context.Context, rawID string) (*models.Student, error) {
	s.gotRawID = rawID
	return s.detail, s.err
}

func (s *stubStudentService) Create(_ context.Context, req *services.CreateStudentRequest) (*services.MessageResponse, error) {
	s.gotCreate = req
	return s.resp, s.err
}

func (s *stubStudentService) Update(_ context.Context, rawID string, req *services.CreateStudentRequest) (*services.MessageResponse, error) {
	s.gotRawID = rawID
	return s.resp, s.err
}

func (s *stubStudentService) SetStatus(_ context.Context, rawID string, status validator.Flag, reviewerID int64) (*services.MessageResponse, error) {
	s.gotRawID = rawID
	s.gotStatus = status
	s.gotReviewer = reviewerID
	return s.resp, s.err
}

func (s *stubStudentService) Delete(_ context.Context, rawID string) (*services.MessageResponse, error) {
	s.gotRawID = rawID
	return s.resp, s.err
}

type stubRosterService struct {
	buf *bytes.Buffer
	err error
}

func (s *stubRosterService) ExportRoster(_ context.Context, _ repositories.StudentFilters) (*bytes.Buffer, error) {
	return s.buf, s.err
}

func newTestRouter(svc *stubStudentService, roster *stubRosterService) *gin.Engine {
	gin.SetMode(gin.TestMode)

	logger := utils.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stdout, nil)))
	h := NewStudentHandler(svc, roster, logger)

	router := gin.New()
	// Stands in for the auth middleware in tests.
	router.Use(func(c *gin.Context) {
		c.Set("user_id", int64(99))
		c.Next()
	})

	students := router.Group("/api/v1/students")
	students.GET("", h.ListStudents)
	students.GET("/export", h.ExportStudents)
	students.GET("/:id", h.GetStudentDetail)
	students.POST("", h.AddStudent)
	students.PUT("/:id", h.UpdateStudent)
	students.POST("/:id/status", h.SetStudentStatus)
	students.DELETE("/:id", h.DeleteStudent)
	return router
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestListStudents(t *testing.T) {
	svc := &stubStudentService{
		list: &services.StudentListResponse{Students: []*models.StudentSummary{
			{ID: 1, Name: "Ana", Email: "ana@example.com"},
		}},
	}
	router := newTestRouter(svc, &stubRosterService{})

	w := doRequest(router, http.MethodGet, "/api/v1/students?name=Ana&className=Grade%209&roll=17", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	if svc.gotFilters.Name == nil || *svc.gotFilters.Name != "Ana" {
		t.Errorf("Name filter not passed: %+v", svc.gotFilters)
	}
	if svc.gotFilters.Class == nil || *svc.gotFilters.Class != "Grade 9" {
		t.Errorf("Class filter not passed: %+v", svc.gotFilters)
	}
	if svc.gotFilters.Roll == nil || *svc.gotFilters.Roll != 17 {
		t.Errorf("Roll filter not passed: %+v", svc.gotFilters)
	}

	var resp services.StudentListResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Invalid JSON response: %v", err)
	}
	if len(resp.Students) != 1 || resp.Students[0].Name != "Ana" {
		t.Errorf("Unexpected body: %s", w.Body.String())
	}
}

func TestListStudents_BadRoll(t *testing.T) {
	svc := &stubStudentService{}
	router := newTestRouter(svc, &stubRosterService{})

	w := doRequest(router, http.MethodGet, "/api/v1/students?roll=abc", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", w.Code)
	}
}

func TestServiceErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"validation", services.NewValidationError("Name is required", "Invalid email address"), http.StatusBadRequest},
		{"not found", services.NewNotFoundError("Student not found"), http.StatusNotFound},
		{"conflict", services.NewConflictError("Email already exists"), http.StatusBadRequest},
		{"unexpected", services.NewUnexpectedError("Internal Server Error"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &stubStudentService{err: tc.err}
			router := newTestRouter(svc, &stubRosterService{})

			w := doRequest(router, http.MethodGet, "/api/v1/students/1", "")
			if w.Code != tc.wantStatus {
				t.Fatalf("Expected %d, got %d: %s", tc.wantStatus, w.Code, w.Body.String())
			}

			var resp ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("Invalid JSON response: %v", err)
			}
			if resp.Message == "" {
				t.Error("Error response must carry a message")
			}
		})
	}
}

func TestServiceErrorMapping_ValidationDetails(t *testing.T) {
	svc := &stubStudentService{err: services.NewValidationError("Name is required", "Invalid email address")}
	router := newTestRouter(svc, &stubRosterService{})

	w := doRequest(router, http.MethodPost, "/api/v1/students", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", w.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Invalid JSON response: %v", err)
	}
	if len(resp.Details) != 2 {
		t.Errorf("Expected both violations in details, got %v", resp.Details)
	}
}

func TestAddStudent(t *testing.T) {
	svc := &stubStudentService{resp: &services.MessageResponse{Message: "Student added and verification email sent successfully."}}
	router := newTestRouter(svc, &stubRosterService{})

	w := doRequest(router, http.MethodPost, "/api/v1/students", `{"name":"Ana","email":"ana@example.com"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp services.MessageResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Invalid JSON response: %v", err)
	}
	if resp.Message != "Student added and verification email sent successfully." {
		t.Errorf("Got message %q", resp.Message)
	}
}

func TestAddStudent_RollAsString(t *testing.T) {
	svc := &stubStudentService{resp: &services.MessageResponse{Message: "Student added and verification email sent successfully."}}
	router := newTestRouter(svc, &stubRosterService{})

	// Clients send roll as a quoted number; binding must coerce it
	// instead of rejecting the whole body.
	w := doRequest(router, http.MethodPost, "/api/v1/students",
		`{"name":"Ana","email":"ana@example.com","roll":"5"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if svc.gotCreate == nil {
		t.Fatal("Request never reached the service")
	}
	if svc.gotCreate.Roll.Val == nil || *svc.gotCreate.Roll.Val != 5 {
		t.Errorf("Roll not coerced, got %+v", svc.gotCreate.Roll)
	}
}

func TestSetStudentStatus_NonBooleanReachesService(t *testing.T) {
	svc := &stubStudentService{err: services.NewValidationError("Status must be true or false")}
	router := newTestRouter(svc, &stubRosterService{})

	w := doRequest(router, http.MethodPost, "/api/v1/students/5/status", `{"status":"abc"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", w.Code)
	}

	// The flag reaches validation marked invalid rather than failing
	// the generic body bind.
	if !svc.gotStatus.Invalid {
		t.Errorf("Expected invalid flag to pass through, got %+v", svc.gotStatus)
	}
	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Invalid JSON response: %v", err)
	}
	if len(resp.Details) != 1 || resp.Details[0] != "Status must be true or false" {
		t.Errorf("Got details %v", resp.Details)
	}
}

func TestAddStudent_MalformedBody(t *testing.T) {
	svc := &stubStudentService{}
	router := newTestRouter(svc, &stubRosterService{})

	w := doRequest(router, http.MethodPost, "/api/v1/students", `{not json`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", w.Code)
	}
}

func TestSetStudentStatus(t *testing.T) {
	svc := &stubStudentService{resp: &services.MessageResponse{Message: "Student status changed successfully"}}
	router := newTestRouter(svc, &stubRosterService{})

	w := doRequest(router, http.MethodPost, "/api/v1/students/5/status", `{"status":false}`)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	if svc.gotRawID != "5" {
		t.Errorf("Raw identity not passed through, got %q", svc.gotRawID)
	}
	if svc.gotStatus.Val == nil || *svc.gotStatus.Val != false {
		t.Errorf("Status not passed, got %+v", svc.gotStatus)
	}
	if svc.gotReviewer != 99 {
		t.Errorf("Reviewer must come from the authenticated user, got %d", svc.gotReviewer)
	}
}

func TestSetStudentStatus_Unauthenticated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := utils.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stdout, nil)))
	h := NewStudentHandler(&stubStudentService{}, &stubRosterService{}, logger)

	router := gin.New()
	router.POST("/api/v1/students/:id/status", h.SetStudentStatus)

	w := doRequest(router, http.MethodPost, "/api/v1/students/5/status", `{"status":true}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("Expected 401, got %d", w.Code)
	}
}

func TestDeleteStudent(t *testing.T) {
	svc := &stubStudentService{resp: &services.MessageResponse{Message: "Student deleted successfully"}}
	router := newTestRouter(svc, &stubRosterService{})

	w := doRequest(router, http.MethodDelete, "/api/v1/students/3", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if svc.gotRawID != "3" {
		t.Errorf("Raw identity not passed through, got %q", svc.gotRawID)
	}
}

func TestExportStudents(t *testing.T) {
	roster := &stubRosterService{buf: bytes.NewBufferString("xlsx-bytes")}
	router := newTestRouter(&stubStudentService{}, roster)

	w := doRequest(router, http.MethodGet, "/api/v1/students/export", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "spreadsheetml") {
		t.Errorf("Unexpected content type %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "attachment") {
		t.Errorf("Unexpected content disposition %q", cd)
	}
	if w.Body.String() != "xlsx-bytes" {
		t.Errorf("Body not streamed through")
	}
}
