package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/task-tracker/internal/application"
	"github.com/oksasatya/task-tracker/internal/interface/middleware"
	"github.com/oksasatya/task-tracker/pkg/response"
)

// pathID parses a positive integer path parameter, answering 400 otherwise.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, name+" must be a positive integer", map[string]string{name: "must be a positive integer"})
		return 0, false
	}
	return id, true
}

func identity(c *gin.Context) string {
	return c.GetString(middleware.CtxUserEmail)
}

// parseDate reads an already validated YYYY-MM-DD value as a UTC midnight.
func parseDate(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	d, err := time.ParseInLocation(application.DateLayout, *s, time.UTC)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// pageQuery selects one page of a listing. Size 0 means the configured default.
type pageQuery struct {
	Page int `form:"page" binding:"min=0"`
	Size int `form:"size" binding:"omitempty,min=1,max=100"`
}

func pageSize(size, def int) int {
	if size == 0 {
		return def
	}
	return size
}
