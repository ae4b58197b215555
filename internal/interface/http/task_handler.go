package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/task-tracker/internal/application"
	"github.com/oksasatya/task-tracker/internal/domain/entity"
	repo "github.com/oksasatya/task-tracker/internal/domain/repository"
	"github.com/oksasatya/task-tracker/pkg/response"
)

type TaskHandler struct {
	Svc             *application.TaskService
	Logger          *logrus.Logger
	DefaultPageSize int
}

func NewTaskHandler(svc *application.TaskService, logger *logrus.Logger, defaultPageSize int) *TaskHandler {
	return &TaskHandler{Svc: svc, Logger: logger, DefaultPageSize: defaultPageSize}
}

type createTaskRequest struct {
	Title       string             `json:"title" binding:"required,max=255"`
	Description string             `json:"description"`
	DueDate     *string            `json:"dueDate" binding:"omitempty,isodate"`
	Status      *entity.TaskStatus `json:"status" binding:"omitempty,taskstatus"`
}

type patchTaskRequest struct {
	Title       *string            `json:"title" binding:"omitempty,max=255"`
	Description *string            `json:"description"`
	DueDate     *string            `json:"dueDate" binding:"omitempty,isodate"`
	Status      *entity.TaskStatus `json:"status" binding:"omitempty,taskstatus"`
}

type listTasksQuery struct {
	Page      int                `form:"page" binding:"min=0"`
	Size      int                `form:"size" binding:"omitempty,min=1,max=100"`
	Status    *entity.TaskStatus `form:"status" binding:"omitempty,taskstatus"`
	SortTitle string             `form:"sortTitle"`
}

// sort is a two-way switch: "sortTitle=sort" orders by title, any other
// value keeps the due date order.
func (q listTasksQuery) sort() repo.TaskSort {
	if q.SortTitle == "sort" {
		return repo.SortByTitle
	}
	return repo.SortByDueDate
}

// Create POST /api/tasks/project/:projectId
func (h *TaskHandler) Create(c *gin.Context) {
	projectID, ok := pathID(c, "projectId")
	if !ok {
		return
	}
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	due, err := parseDate(req.DueDate)
	if err != nil {
		bindError(c, err)
		return
	}
	t, err := h.Svc.Create(c.Request.Context(), projectID, application.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     due,
		Status:      req.Status,
	}, identity(c))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, t)
}

// List GET /api/tasks/project/:projectId?status=&page=&size=&sortTitle=
func (h *TaskHandler) List(c *gin.Context) {
	projectID, ok := pathID(c, "projectId")
	if !ok {
		return
	}
	var q listTasksQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}
	page, err := h.Svc.ListTasks(c.Request.Context(), projectID, identity(c), application.TaskListInput{
		Status: q.Status,
		Sort:   q.sort(),
		Page:   q.Page,
		Size:   pageSize(q.Size, h.DefaultPageSize),
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, page)
}

// Get GET /api/tasks/:taskId
func (h *TaskHandler) Get(c *gin.Context) {
	taskID, ok := pathID(c, "taskId")
	if !ok {
		return
	}
	t, err := h.Svc.Get(c.Request.Context(), taskID, identity(c))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, t)
}

// Update PATCH /api/tasks/:taskId overwrites only the fields present in the body.
func (h *TaskHandler) Update(c *gin.Context) {
	taskID, ok := pathID(c, "taskId")
	if !ok {
		return
	}
	var req patchTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	due, err := parseDate(req.DueDate)
	if err != nil {
		bindError(c, err)
		return
	}
	t, err := h.Svc.Update(c.Request.Context(), taskID, application.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     due,
		Status:      req.Status,
	}, identity(c))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, t)
}

// Delete DELETE /api/tasks/:taskId
func (h *TaskHandler) Delete(c *gin.Context) {
	taskID, ok := pathID(c, "taskId")
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), taskID, identity(c)); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.NoContent(c)
}
