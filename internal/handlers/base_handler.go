package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campus-suite/student-service/internal/services"
	"github.com/campus-suite/student-service/internal/utils"
)

// ErrorResponse is the uniform error payload. Validation failures carry
// every violation in Details; everything else is a single message.
type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

func (h *BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	utils.LoggerFromContext(c, h.logger).Info(msg, args...)
}

func (h *BaseHandler) LogError(c *gin.Context, err error, msg string, args ...any) {
	args = append(args, "error", err)
	utils.LoggerFromContext(c, h.logger).Error(msg, args...)
}

// handleServiceError maps service errors to HTTP status codes. Every
// handler funnels failures through here so the wire contract stays
// uniform.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	se, ok := services.AsServiceError(err)
	if !ok {
		h.LogError(c, err, "Unexpected service error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Internal Server Error",
		})
		return
	}

	switch se.Kind {
	case services.KindValidation:
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: se.Messages,
		})
	case services.KindNotFound:
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: se.Messages[0],
		})
	case services.KindConflict:
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: se.Messages[0],
		})
	default:
		h.LogError(c, se, "Unexpected service error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: se.Messages[0],
		})
	}
}
