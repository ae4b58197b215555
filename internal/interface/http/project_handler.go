package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/task-tracker/internal/application"
	"github.com/oksasatya/task-tracker/pkg/response"
)

type ProjectHandler struct {
	Svc             *application.ProjectService
	Logger          *logrus.Logger
	DefaultPageSize int
}

func NewProjectHandler(svc *application.ProjectService, logger *logrus.Logger, defaultPageSize int) *ProjectHandler {
	return &ProjectHandler{Svc: svc, Logger: logger, DefaultPageSize: defaultPageSize}
}

type projectRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description"`
}

func (r projectRequest) input() application.ProjectInput {
	return application.ProjectInput{Title: r.Title, Description: r.Description}
}

// Create POST /api/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	p, err := h.Svc.Create(c.Request.Context(), req.input(), identity(c))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, p)
}

// List GET /api/projects?page=&size=
func (h *ProjectHandler) List(c *gin.Context) {
	var q pageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}
	page, err := h.Svc.ListMine(c.Request.Context(), identity(c), q.Page, pageSize(q.Size, h.DefaultPageSize))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, page)
}

// Get GET /api/projects/:id
func (h *ProjectHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	p, err := h.Svc.Get(c.Request.Context(), id, identity(c))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

// Update PUT /api/projects/:id replaces title and description.
func (h *ProjectHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	p, err := h.Svc.Update(c.Request.Context(), id, req.input(), identity(c))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

// Delete DELETE /api/projects/:id
func (h *ProjectHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), id, identity(c)); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.NoContent(c)
}
