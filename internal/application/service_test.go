package application_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/task-tracker/internal/application"
	"github.com/oksasatya/task-tracker/internal/domain/entity"
	repo "github.com/oksasatya/task-tracker/internal/domain/repository"
	"github.com/oksasatya/task-tracker/internal/infrastructure/sqlite"
	"github.com/oksasatya/task-tracker/pkg/helpers"
)

const (
	ana = "ana@example.com"
	bob = "bob@example.com"
)

type fixture struct {
	store    repo.Store
	auth     *application.AuthService
	users    *application.UserService
	projects *application.ProjectService
	tasks    *application.TaskService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
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
	store := sqlite.NewStore(db)
	logger := helpers.NewNopLogger()
	guard := application.NewGuard(store.Projects, store.Tasks)
	return &fixture{
		store:    store,
		auth:     application.NewAuthService(store.Users, nil, helpers.NewJWTManager("test-secret", "task-tracker", time.Hour), nil, logger),
		users:    application.NewUserService(store.Users, logger),
		projects: application.NewProjectService(store.Projects, store.Users, guard, logger),
		tasks:    application.NewTaskService(store.Tasks, guard, logger),
	}
}

func (f *fixture) register(t *testing.T, email string) *application.AuthResponse {
	t.Helper()
	res, err := f.auth.Register(context.Background(), application.RegisterInput{Email: email, Password: "secret-pw", FirstName: "First", LastName: "Last"})
	require.NoError(t, err)
	return res
}

func (f *fixture) project(t *testing.T, owner, title string) application.ProjectView {
	t.Helper()
	p, err := f.projects.Create(context.Background(), application.ProjectInput{Title: title}, owner)
	require.NoError(t, err)
	return p
}

func (f *fixture) task(t *testing.T, owner string, projectID int64, in application.TaskInput) application.TaskDTO {
	t.Helper()
	task, err := f.tasks.Create(context.Background(), projectID, in, owner)
	require.NoError(t, err)
	return task
}

func status(s entity.TaskStatus) *entity.TaskStatus { return &s }
func str(s string) *string                          { return &s }
func day(s string) *time.Time {
	d, err := time.ParseInLocation(application.DateLayout, s, time.UTC)
	if err != nil {
		panic(err)
	}
	return &d
}

func TestAuth_RegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	first := f.register(t, ana)
	assert.Equal(t, ana, first.Email)
	assert.NotEmpty(t, first.Token)

	_, err := f.auth.Register(ctx, application.RegisterInput{Email: ana, Password: "other"})
	assert.ErrorIs(t, err, application.ErrConflict)

	claims, err := f.auth.VerifyToken(ctx, first.Token)
	require.NoError(t, err)
	assert.Equal(t, ana, claims.Email)

	res, err := f.auth.Login(ctx, ana, "secret-pw")
	require.NoError(t, err)
	assert.NotEqual(t, first.Token, res.Token)

	_, err = f.auth.Login(ctx, ana, "wrong")
	assert.ErrorIs(t, err, application.ErrUnauthorized)
	_, err = f.auth.Login(ctx, "nobody@example.com", "secret-pw")
	assert.ErrorIs(t, err, application.ErrUnauthorized)

	_, err = f.auth.VerifyToken(ctx, "garbage")
	assert.ErrorIs(t, err, application.ErrInvalidToken)
}

func TestAuth_RegisterValidates(t *testing.T) {
	f := newFixture(t)
	_, err := f.auth.Register(context.Background(), application.RegisterInput{Email: " ", Password: "x"})
	var verr *application.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "email", verr.Field)
	assert.ErrorIs(t, err, application.ErrValidation)
}

func TestUser_ProfilePartialUpdate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.register(t, ana)

	u, err := f.users.UpdateProfile(ctx, ana, application.ProfilePatch{LastName: str("Lopez")})
	require.NoError(t, err)
	assert.Equal(t, "First", u.FirstName)
	assert.Equal(t, "Lopez", u.LastName)

	u, err = f.users.Profile(ctx, ana)
	require.NoError(t, err)
	assert.Equal(t, "Lopez", u.LastName)

	_, err = f.users.Profile(ctx, "ghost@example.com")
	assert.ErrorIs(t, err, application.ErrNotFound)
}

func TestProject_ProgressPercentage(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.register(t, ana)
	p := f.project(t, ana, "Launch")

	f.task(t, ana, p.ID, application.TaskInput{Title: "a", Status: status(entity.TaskCompleted)})
	f.task(t, ana, p.ID, application.TaskInput{Title: "b", Status: status(entity.TaskInProgress)})
	f.task(t, ana, p.ID, application.TaskInput{Title: "c"})

	got, err := f.projects.Get(ctx, p.ID, ana)
	require.NoError(t, err)
	assert.Equal(t, 3, got.TotalTasks)
	assert.Equal(t, 1, got.CompletedTasks)
	assert.Equal(t, 33.33, got.ProgressPercentage)

	empty := f.project(t, ana, "Empty")
	assert.Zero(t, empty.ProgressPercentage)
	assert.Zero(t, empty.TotalTasks)
}

func TestProject_NonOwnerIsDenied(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.register(t, ana)
	f.register(t, bob)
	p := f.project(t, ana, "Private")
	task := f.task(t, ana, p.ID, application.TaskInput{Title: "secret"})

	_, err := f.projects.Get(ctx, p.ID, bob)
	assert.ErrorIs(t, err, application.ErrAccessDenied)
	_, err = f.projects.Update(ctx, p.ID, application.ProjectInput{Title: "mine"}, bob)
	assert.ErrorIs(t, err, application.ErrAccessDenied)
	assert.ErrorIs(t, f.projects.Delete(ctx, p.ID, bob), application.ErrAccessDenied)

	_, err = f.tasks.Create(ctx, p.ID, application.TaskInput{Title: "x"}, bob)
	assert.ErrorIs(t, err, application.ErrAccessDenied)
	_, err = f.tasks.ListTasks(ctx, p.ID, bob, application.TaskListInput{Size: 10})
	assert.ErrorIs(t, err, application.ErrAccessDenied)
	_, err = f.tasks.Get(ctx, task.ID, bob)
	assert.ErrorIs(t, err, application.ErrAccessDenied)
	_, err = f.tasks.Update(ctx, task.ID, application.TaskPatch{Title: str("x")}, bob)
	assert.ErrorIs(t, err, application.ErrAccessDenied)
	assert.ErrorIs(t, f.tasks.Delete(ctx, task.ID, bob), application.ErrAccessDenied)

	// identity comparison is exact
	_, err = f.projects.Get(ctx, p.ID, "ANA@example.com")
	assert.ErrorIs(t, err, application.ErrAccessDenied)

	// the owner still sees everything unchanged
	got, err := f.tasks.Get(ctx, task.ID, ana)
	require.NoError(t, err)
	assert.Equal(t, "secret", got.Title)
}

func TestProject_NotFound(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.register(t, ana)

	_, err := f.projects.Get(ctx, 404, ana)
	var nerr *application.NotFoundError
	require.ErrorAs(t, err, &nerr)
	assert.Equal(t, "project not found with id: 404", nerr.Error())

	_, err = f.tasks.Create(ctx, 404, application.TaskInput{Title: "x"}, ana)
	assert.ErrorIs(t, err, application.ErrNotFound)
}

func TestProject_UpdateOverwritesAndValidates(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.register(t, ana)
	p, err := f.projects.Create(ctx, application.ProjectInput{Title: "Launch", Description: "v1"}, ana)
	require.NoError(t, err)

	got, err := f.projects.Update(ctx, p.ID, application.ProjectInput{Title: "Relaunch"}, ana)
	require.NoError(t, err)
	assert.Equal(t, "Relaunch", got.Title)
	assert.Empty(t, got.Description)

	_, err = f.projects.Update(ctx, p.ID, application.ProjectInput{Title: "  "}, ana)
	assert.ErrorIs(t, err, application.ErrValidation)
	_, err = f.projects.Create(ctx, application.ProjectInput{}, ana)
	assert.ErrorIs(t, err, application.ErrValidation)
}

func TestProject_DeleteCascadesToTasks(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.register(t, ana)
	p := f.project(t, ana, "Doomed")
	task := f.task(t, ana, p.ID, application.TaskInput{Title: "goes too"})

	require.NoError(t, f.projects.Delete(ctx, p.ID, ana))

	_, err := f.projects.Get(ctx, p.ID, ana)
	assert.ErrorIs(t, err, application.ErrNotFound)
	_, err = f.tasks.Get(ctx, task.ID, ana)
	var nerr *application.NotFoundError
	require.ErrorAs(t, err, &nerr)
	assert.Equal(t, "task", nerr.Resource)
}

func TestProject_ListMinePages(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.register(t, ana)
	f.register(t, bob)
	for _, title := range []string{"one", "two", "three"} {
		f.project(t, ana, title)
	}
	f.project(t, bob, "bob's")

	page, err := f.projects.ListMine(ctx, ana, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.TotalElements)
	assert.Equal(t, 2, page.TotalPages)
	assert.True(t, page.First)
	assert.False(t, page.Last)
	require.Len(t, page.Content, 2)
	assert.Equal(t, "three", page.Content[0].Title)
}

func TestTask_CreateDefaultsAndValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.register(t, ana)
	p := f.project(t, ana, "Launch")

	task := f.task(t, ana, p.ID, application.TaskInput{Title: "write", DueDate: day("2025-12-01")})
	assert.Equal(t, entity.TaskPending, task.Status)
	assert.Equal(t, p.ID, task.ProjectID)
	require.NotNil(t, task.DueDate)
	assert.Equal(t, "2025-12-01", *task.DueDate)

	_, err := f.tasks.Create(ctx, p.ID, application.TaskInput{Title: ""}, ana)
	assert.ErrorIs(t, err, application.ErrValidation)
	_, err = f.tasks.Create(ctx, p.ID, application.TaskInput{Title: "x", Status: status("DONE")}, ana)
	assert.ErrorIs(t, err, application.ErrValidation)
}

func TestTask_PartialUpdatePreservesOtherFields(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.register(t, ana)
	p := f.project(t, ana, "Launch")
	task := f.task(t, ana, p.ID, application.TaskInput{Title: "write", Description: "the docs", DueDate: day("2025-12-01")})

	got, err := f.tasks.Update(ctx, task.ID, application.TaskPatch{Status: status(entity.TaskCompleted)}, ana)
	require.NoError(t, err)
	assert.Equal(t, entity.TaskCompleted, got.Status)
	assert.Equal(t, "write", got.Title)
	assert.Equal(t, "the docs", got.Description)
	require.NotNil(t, got.DueDate)
	assert.Equal(t, "2025-12-01", *got.DueDate)

	stored, err := f.tasks.Get(ctx, task.ID, ana)
	require.NoError(t, err)
	assert.Equal(t, got, stored)

	// a present field overwrites, even with a blank title
	got, err = f.tasks.Update(ctx, task.ID, application.TaskPatch{Title: str(" ")}, ana)
	require.NoError(t, err)
	assert.Equal(t, " ", got.Title)
	assert.Equal(t, "the docs", got.Description)
	assert.Equal(t, entity.TaskCompleted, got.Status)

	_, err = f.tasks.Update(ctx, task.ID, application.TaskPatch{Status: status("DONE")}, ana)
	assert.ErrorIs(t, err, application.ErrValidation)
}

func TestTask_ListFiltersSortsAndPages(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.register(t, ana)
	p := f.project(t, ana, "Launch")
	f.task(t, ana, p.ID, application.TaskInput{Title: "Charlie", DueDate: day("2025-03-01")})
	f.task(t, ana, p.ID, application.TaskInput{Title: "Alpha", Status: status(entity.TaskCompleted)})
	f.task(t, ana, p.ID, application.TaskInput{Title: "Bravo", DueDate: day("2025-01-15")})

	titles := func(in application.TaskListInput) []string {
		t.Helper()
		page, err := f.tasks.ListTasks(ctx, p.ID, ana, in)
		require.NoError(t, err)
		out := []string{}
		for _, task := range page.Content {
			out = append(out, task.Title)
		}
		return out
	}

	assert.Equal(t, []string{"Bravo", "Charlie", "Alpha"}, titles(application.TaskListInput{Size: 10}))
	assert.Equal(t, []string{"Alpha", "Bravo", "Charlie"}, titles(application.TaskListInput{Sort: repo.SortByTitle, Size: 10}))
	assert.Equal(t, []string{"Alpha"}, titles(application.TaskListInput{Status: status(entity.TaskCompleted), Size: 10}))

	page, err := f.tasks.ListTasks(ctx, p.ID, ana, application.TaskListInput{Page: 5, Size: 10})
	require.NoError(t, err)
	assert.Empty(t, page.Content)
	assert.NotNil(t, page.Content)
	assert.Equal(t, int64(3), page.TotalElements)
	assert.Equal(t, 1, page.TotalPages)
	assert.True(t, page.Last)

	_, err = f.tasks.ListTasks(ctx, p.ID, ana, application.TaskListInput{Status: status("DONE"), Size: 10})
	assert.ErrorIs(t, err, application.ErrValidation)
}

func TestTask_DeleteThenNotFound(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.register(t, ana)
	p := f.project(t, ana, "Launch")
	task := f.task(t, ana, p.ID, application.TaskInput{Title: "x"})

	require.NoError(t, f.tasks.Delete(ctx, task.ID, ana))
	err := f.tasks.Delete(ctx, task.ID, ana)
	assert.True(t, errors.Is(err, application.ErrNotFound))

	view, err := f.projects.Get(ctx, p.ID, ana)
	require.NoError(t, err)
	assert.Zero(t, view.TotalTasks)
}
