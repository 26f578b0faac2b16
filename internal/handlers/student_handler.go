package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campus-suite/student-service/internal/repositories"
	"github.com/campus-suite/student-service/internal/services"
	"github.com/campus-suite/student-service/internal/utils"
	"github.com/campus-suite/student-service/internal/validator"
)

type StudentHandler struct {
	BaseHandler
	service services.StudentService
	roster  services.RosterService
}

func NewStudentHandler(service services.StudentService, roster services.RosterService, logger utils.Logger) *StudentHandler {
	return &StudentHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
		roster:      roster,
	}
}

// ===== STUDENT ENDPOINTS =====

// ListStudents returns student summaries, optionally filtered
// @Summary List students
// @Description Get student summaries with optional name, class, section and roll filters
// @Tags students
// @Accept json
// @Produce json
// @Param name query string false "Filter by name (partial match)"
// @Param className query string false "Filter by class"
// @Param section query string false "Filter by section"
// @Param roll query int false "Filter by roll number"
// @Success 200 {object} services.StudentListResponse
// @Failure 404 {object} ErrorResponse "No students found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /students [get]
func (h *StudentHandler) ListStudents(c *gin.Context) {
	h.LogRequest(c, "Listing students")

	filters := repositories.StudentFilters{}
	if name := c.Query("name"); name != "" {
		filters.Name = &name
	}
	if class := c.Query("className"); class != "" {
		filters.Class = &class
	}
	if section := c.Query("section"); section != "" {
		filters.Section = &section
	}
	if rollStr := c.Query("roll"); rollStr != "" {
		roll, err := strconv.Atoi(rollStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Message: "Validation failed",
				Details: []string{"Roll must be a valid number"},
			})
			return
		}
		filters.Roll = &roll
	}

	students, err := h.service.GetAll(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, students)
}

// AddStudent creates a student and sends the verification email
// @Summary Add student
// @Description Validate and persist a new student, then send the account verification email
// @Tags students
// @Accept json
// @Produce json
// @Param student body services.CreateStudentRequest true "Student payload"
// @Success 200 {object} services.MessageResponse
// @Failure 400 {object} ErrorResponse "Validation failure or duplicate email"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /students [post]
func (h *StudentHandler) AddStudent(c *gin.Context) {
	h.LogRequest(c, "Adding student")

	var req services.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
		})
		return
	}

	resp, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetStudentDetail returns the full record for one student
// @Summary Get student detail
// @Description Get the full student record by identity
// @Tags students
// @Accept json
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} models.Student
// @Failure 400 {object} ErrorResponse "Invalid identity"
// @Failure 404 {object} ErrorResponse "Student not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /students/{id} [get]
func (h *StudentHandler) GetStudentDetail(c *gin.Context) {
	h.LogRequest(c, "Getting student detail", "id", c.Param("id"))

	student, err := h.service.GetDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, student)
}

// UpdateStudent rewrites a student record
// @Summary Update student
// @Description Revalidate the full payload and rewrite the student record
// @Tags students
// @Accept json
// @Produce json
// @Param id path int true "Student ID"
// @Param student body services.CreateStudentRequest true "Student payload"
// @Success 200 {object} services.MessageResponse
// @Failure 400 {object} ErrorResponse "Validation failure or duplicate email"
// @Failure 404 {object} ErrorResponse "Student not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /students/{id} [put]
func (h *StudentHandler) UpdateStudent(c *gin.Context) {
	h.LogRequest(c, "Updating student", "id", c.Param("id"))

	var req services.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
		})
		return
	}

	resp, err := h.service.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

type studentStatusRequest struct {
	Status validator.Flag `json:"status"`
}

// SetStudentStatus enables or disables a student account
// @Summary Set student status
// @Description Flip the active flag of a student, recording the reviewer
// @Tags students
// @Accept json
// @Produce json
// @Param id path int true "Student ID"
// @Param status body studentStatusRequest true "New status"
// @Success 200 {object} services.MessageResponse
// @Failure 400 {object} ErrorResponse "Invalid identity or missing status"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Student not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /students/{id}/status [post]
func (h *StudentHandler) SetStudentStatus(c *gin.Context) {
	h.LogRequest(c, "Setting student status", "id", c.Param("id"))

	reviewerID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "User not authenticated",
		})
		return
	}

	var req studentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
		})
		return
	}

	resp, err := h.service.SetStatus(c.Request.Context(), c.Param("id"), req.Status, reviewerID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// DeleteStudent removes a student record
// @Summary Delete student
// @Description Permanently remove the student record
// @Tags students
// @Accept json
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} services.MessageResponse
// @Failure 400 {object} ErrorResponse "Invalid identity"
// @Failure 404 {object} ErrorResponse "Student not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /students/{id} [delete]
func (h *StudentHandler) DeleteStudent(c *gin.Context) {
	h.LogRequest(c, "Deleting student", "id", c.Param("id"))

	resp, err := h.service.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ExportStudents downloads the filtered roster as a spreadsheet
// @Summary Export students
// @Description Download the student roster as an xlsx workbook
// @Tags students
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param name query string false "Filter by name (partial match)"
// @Param className query string false "Filter by class"
// @Param section query string false "Filter by section"
// @Success 200 {file} file
// @Failure 404 {object} ErrorResponse "No students found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /students/export [get]
func (h *StudentHandler) ExportStudents(c *gin.Context) {
	h.LogRequest(c, "Exporting students")

	filters := repositories.StudentFilters{}
	if name := c.Query("name"); name != "" {
		filters.Name = &name
	}
	if class := c.Query("className"); class != "" {
		filters.Class = &class
	}
	if section := c.Query("section"); section != "" {
		filters.Section = &section
	}

	buf, err := h.roster.ExportRoster(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("students-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
