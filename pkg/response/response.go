package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Status    int               `json:"status"`
	Message   string            `json:"message"`
	Timestamp int64             `json:"timestamp"` // epoch millis
	RequestID string            `json:"request_id,omitempty"`
	Details   map[string]string `json:"details,omitempty"`
}

// Success writes data as the response body.
func Success[T any](ctx *gin.Context, status int, data T) {
	if status == 0 {
		status = http.StatusOK
	}
	ctx.JSON(status, data)
}

// NoContent answers with an empty 204.
func NoContent(ctx *gin.Context) {
	ctx.Status(http.StatusNoContent)
}

// Error aborts the request with an ErrorResponse.
func Error(ctx *gin.Context, status int, message string, details map[string]string) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	ctx.AbortWithStatusJSON(status, ErrorResponse{
		Status:    status,
		Message:   message,
		Timestamp: time.Now().UnixMilli(),
		RequestID: ctx.GetString("request_id"),
		Details:   details,
	})
}
