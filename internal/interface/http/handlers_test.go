package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/task-tracker/internal/infrastructure/sqlite"
	"github.com/oksasatya/task-tracker/internal/interface/middleware"
	"github.com/oksasatya/task-tracker/internal/router"
	"github.com/oksasatya/task-tracker/pkg/helpers"
	"github.com/oksasatya/task-tracker/pkg/response"
	"github.com/oksasatya/task-tracker/pkg/validation"
)

func newServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()
	old := helpers.PasswordCost
	helpers.PasswordCost = bcrypt.MinCost
	t.Cleanup(func() { helpers.PasswordCost = old })

	db, err := sqlite.Open(sqlite.MemoryPath, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	r := gin.New()
	r.Use(middleware.RequestIDMiddleware())
	reg := router.NewRegistry(r)
	for _, m := range router.NewModules(router.Deps{
		Store:           sqlite.NewStore(db),
		JWT:             helpers.NewJWTManager("test-secret", "task-tracker", time.Hour),
		Logger:          helpers.NewNopLogger(),
		DefaultPageSize: 10,
	}) {
		reg.Add(m)
	}
	reg.RegisterAll()
	return r
}

func do(t *testing.T, r http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func register(t *testing.T, r http.Handler, email string) string {
	t.Helper()
	w := do(t, r, http.MethodPost, "/api/auth/register", "", gin.H{"email": email, "password": "secret-pw", "firstName": "Ana"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[map[string]any](t, w)["token"].(string)
}

type projectBody struct {
	ID                 int64   `json:"id"`
	Title              string  `json:"title"`
	Description        string  `json:"description"`
	TotalTasks         int     `json:"totalTasks"`
	CompletedTasks     int     `json:"completedTasks"`
	ProgressPercentage float64 `json:"progressPercentage"`
}

type taskBody struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	DueDate     *string `json:"dueDate"`
	Status      string  `json:"status"`
	ProjectID   int64   `json:"projectId"`
}

type pageBody[T any] struct {
	Content          []T   `json:"content"`
	Number           int   `json:"number"`
	Size             int   `json:"size"`
	TotalElements    int64 `json:"totalElements"`
	TotalPages       int   `json:"totalPages"`
	NumberOfElements int   `json:"numberOfElements"`
	First            bool  `json:"first"`
	Last             bool  `json:"last"`
	Empty            bool  `json:"empty"`
}

func TestAuthEndpoints(t *testing.T) {
	r := newServer(t)
	token := register(t, r, "ana@example.com")

	w := do(t, r, http.MethodPost, "/api/auth/register", "", gin.H{"email": "ana@example.com", "password": "other"})
	assert.Equal(t, http.StatusConflict, w.Code)
	errBody := decode[response.ErrorResponse](t, w)
	assert.Equal(t, "email is already in use", errBody.Message)
	assert.Equal(t, http.StatusConflict, errBody.Status)
	assert.NotZero(t, errBody.Timestamp)
	assert.NotEmpty(t, errBody.RequestID)

	// the first token keeps working after the rejected duplicate
	w = do(t, r, http.MethodGet, "/api/users/me", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ana@example.com", decode[map[string]any](t, w)["email"])

	w = do(t, r, http.MethodPost, "/api/auth/login", "", gin.H{"email": "ana@example.com", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid email or password", decode[response.ErrorResponse](t, w).Message)

	w = do(t, r, http.MethodPost, "/api/auth/login", "", gin.H{"email": "ana@example.com", "password": "secret-pw"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, decode[map[string]any](t, w)["token"])

	w = do(t, r, http.MethodPost, "/api/auth/register", "", gin.H{"email": "not-an-email", "password": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	errBody = decode[response.ErrorResponse](t, w)
	assert.Equal(t, "email must be a valid email", errBody.Message)
	assert.Equal(t, "must be a valid email", errBody.Details["email"])

	w = do(t, r, http.MethodPost, "/api/auth/logout", token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r := newServer(t)

	w := do(t, r, http.MethodGet, "/api/projects", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(t, r, http.MethodGet, "/api/projects", "forged", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "session invalid, please re-authenticate", decode[response.ErrorResponse](t, w).Message)
}

func TestUserProfile(t *testing.T) {
	r := newServer(t)
	token := register(t, r, "ana@example.com")

	w := do(t, r, http.MethodPatch, "/api/users/me", token, gin.H{"lastName": "Lopez"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode[map[string]any](t, w)
	assert.Equal(t, "Ana", body["firstName"])
	assert.Equal(t, "Lopez", body["lastName"])
	assert.NotContains(t, w.Body.String(), "password")
}

func TestProjectLifecycle(t *testing.T) {
	r := newServer(t)
	ana := register(t, r, "ana@example.com")
	bob := register(t, r, "bob@example.com")

	w := do(t, r, http.MethodPost, "/api/projects", ana, gin.H{"title": "Launch", "description": "v1"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	p := decode[projectBody](t, w)
	assert.Equal(t, "Launch", p.Title)
	assert.Zero(t, p.TotalTasks)

	w = do(t, r, http.MethodPost, "/api/projects", ana, gin.H{"description": "no title"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "title is required", decode[response.ErrorResponse](t, w).Message)

	projectPath := "/api/projects/" + itoa(p.ID)
	w = do(t, r, http.MethodGet, projectPath, bob, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "you do not have permission to do that", decode[response.ErrorResponse](t, w).Message)

	w = do(t, r, http.MethodPut, projectPath, ana, gin.H{"title": "Relaunch"})
	require.Equal(t, http.StatusOK, w.Code)
	updated := decode[projectBody](t, w)
	assert.Equal(t, "Relaunch", updated.Title)
	assert.Empty(t, updated.Description)

	w = do(t, r, http.MethodGet, "/api/projects?page=0&size=5", ana, nil)
	require.Equal(t, http.StatusOK, w.Code)
	page := decode[pageBody[projectBody]](t, w)
	assert.Equal(t, int64(1), page.TotalElements)
	assert.Equal(t, 5, page.Size)

	w = do(t, r, http.MethodGet, "/api/projects?size=500", ana, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodGet, "/api/projects/abc", ana, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodDelete, projectPath, bob, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = do(t, r, http.MethodDelete, projectPath, ana, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, r, http.MethodGet, projectPath, ana, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "project not found with id: "+itoa(p.ID), decode[response.ErrorResponse](t, w).Message)
}

func TestTaskLifecycle(t *testing.T) {
	r := newServer(t)
	ana := register(t, r, "ana@example.com")
	bob := register(t, r, "bob@example.com")

	w := do(t, r, http.MethodPost, "/api/projects", ana, gin.H{"title": "Launch"})
	require.Equal(t, http.StatusCreated, w.Code)
	p := decode[projectBody](t, w)
	tasksPath := "/api/tasks/project/" + itoa(p.ID)

	w = do(t, r, http.MethodPost, tasksPath, ana, gin.H{"title": "Charlie", "dueDate": "2025-03-01"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	charlie := decode[taskBody](t, w)
	assert.Equal(t, "PENDING", charlie.Status)
	require.NotNil(t, charlie.DueDate)
	assert.Equal(t, "2025-03-01", *charlie.DueDate)
	assert.Equal(t, p.ID, charlie.ProjectID)

	for _, body := range []gin.H{
		{"title": "Alpha", "status": "COMPLETED"},
		{"title": "Bravo", "dueDate": "2025-01-15"},
	} {
		w = do(t, r, http.MethodPost, tasksPath, ana, body)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w = do(t, r, http.MethodPost, tasksPath, ana, gin.H{"title": "bad date", "dueDate": "01/02/2025"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = do(t, r, http.MethodPost, tasksPath, ana, gin.H{"title": "bad status", "status": "DONE"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "status must be one of PENDING, IN_PROGRESS, COMPLETED", decode[response.ErrorResponse](t, w).Message)
	w = do(t, r, http.MethodPost, tasksPath, bob, gin.H{"title": "intruder"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	titles := func(query string) []string {
		t.Helper()
		w := do(t, r, http.MethodGet, tasksPath+query, ana, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var out []string
		for _, task := range decode[pageBody[taskBody]](t, w).Content {
			out = append(out, task.Title)
		}
		return out
	}
	assert.Equal(t, []string{"Bravo", "Charlie", "Alpha"}, titles(""))
	assert.Equal(t, []string{"Alpha", "Bravo", "Charlie"}, titles("?sortTitle=sort"))
	assert.Equal(t, []string{"Bravo", "Charlie", "Alpha"}, titles("?sortTitle=title"))
	assert.Equal(t, []string{"Bravo", "Charlie", "Alpha"}, titles("?sortTitle=false"))
	assert.Equal(t, []string{"Bravo", "Charlie", "Alpha"}, titles("?sortTitle="))
	assert.Equal(t, []string{"Alpha"}, titles("?status=COMPLETED"))

	w = do(t, r, http.MethodGet, tasksPath+"?page=5&size=10", ana, nil)
	require.Equal(t, http.StatusOK, w.Code)
	page := decode[pageBody[taskBody]](t, w)
	assert.Empty(t, page.Content)
	assert.True(t, page.Empty)
	assert.Equal(t, int64(3), page.TotalElements)
	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, 5, page.Number)
	assert.Contains(t, w.Body.String(), `"content":[]`)

	// a page index whose offset overflows still reads as a page past the end
	w = do(t, r, http.MethodGet, tasksPath+"?page=92233720368547759&size=100", ana, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	huge := decode[pageBody[taskBody]](t, w)
	assert.Empty(t, huge.Content)
	assert.Equal(t, int64(3), huge.TotalElements)
	assert.Equal(t, 1, huge.TotalPages)
	assert.Equal(t, 92233720368547759, huge.Number)
	assert.True(t, huge.Last)

	w = do(t, r, http.MethodGet, tasksPath+"?status=DONE", ana, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	taskPath := "/api/tasks/" + itoa(charlie.ID)
	w = do(t, r, http.MethodPatch, taskPath, ana, gin.H{"status": "IN_PROGRESS"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	patched := decode[taskBody](t, w)
	assert.Equal(t, "IN_PROGRESS", patched.Status)
	assert.Equal(t, "Charlie", patched.Title)
	require.NotNil(t, patched.DueDate)
	assert.Equal(t, "2025-03-01", *patched.DueDate)

	w = do(t, r, http.MethodPatch, taskPath, ana, gin.H{"title": "   "})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	blank := decode[taskBody](t, w)
	assert.Equal(t, "   ", blank.Title)
	assert.Equal(t, "IN_PROGRESS", blank.Status)

	w = do(t, r, http.MethodGet, taskPath, bob, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(t, r, http.MethodGet, "/api/projects/"+itoa(p.ID), ana, nil)
	require.Equal(t, http.StatusOK, w.Code)
	view := decode[projectBody](t, w)
	assert.Equal(t, 3, view.TotalTasks)
	assert.Equal(t, 1, view.CompletedTasks)
	assert.Equal(t, 33.33, view.ProgressPercentage)

	w = do(t, r, http.MethodDelete, taskPath, ana, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = do(t, r, http.MethodGet, taskPath, ana, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "task not found with id: "+itoa(charlie.ID), decode[response.ErrorResponse](t, w).Message)

	// deleting the project takes the remaining tasks with it
	w = do(t, r, http.MethodGet, tasksPath, ana, nil)
	remaining := decode[pageBody[taskBody]](t, w).Content
	require.Len(t, remaining, 2)
	w = do(t, r, http.MethodDelete, "/api/projects/"+itoa(p.ID), ana, nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	w = do(t, r, http.MethodGet, "/api/tasks/"+itoa(remaining[0].ID), ana, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealth(t *testing.T) {
	r := newServer(t)
	w := do(t, r, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
