package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/oksasatya/task-tracker/config"
	"github.com/oksasatya/task-tracker/internal/application"
	"github.com/oksasatya/task-tracker/internal/domain/entity"
	"github.com/oksasatya/task-tracker/internal/infrastructure"
	"github.com/oksasatya/task-tracker/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)
	ctx := context.Background()

	store, closeStore, err := infrastructure.OpenStore(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer closeStore()

	jwt := helpers.NewJWTManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	auth := application.NewAuthService(store.Users, nil, jwt, nil, logger)
	guard := application.NewGuard(store.Projects, store.Tasks)
	projects := application.NewProjectService(store.Projects, store.Users, guard, logger)
	tasks := application.NewTaskService(store.Tasks, guard, logger)

	email := "demo@example.com"
	password := "password123"
	res, err := auth.Register(ctx, application.RegisterInput{
		Email:     email,
		Password:  password,
		FirstName: "Demo",
		LastName:  "User",
	})
	if errors.Is(err, application.ErrConflict) {
		fmt.Printf("user %s already exists, nothing to seed\n", email)
		if res, err = auth.Login(ctx, email, password); err != nil {
			log.Fatalf("demo user exists with a different password: %v", err)
		}
		fmt.Printf("token=%s\n", res.Token)
		return
	}
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: email=%s password=%s\n", email, password)

	p, err := projects.Create(ctx, application.ProjectInput{
		Title:       "Website relaunch",
		Description: "Ship the new marketing site",
	}, email)
	if err != nil {
		log.Fatalf("failed to seed project: %v", err)
	}

	due := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, 7)
	done := entity.TaskCompleted
	doing := entity.TaskInProgress
	for _, in := range []application.TaskInput{
		{Title: "Write copy", Description: "Landing page and pricing", Status: &done},
		{Title: "Design mockups", DueDate: &due, Status: &doing},
		{Title: "Set up analytics"},
	} {
		t, err := tasks.Create(ctx, p.ID, in, email)
		if err != nil {
			log.Fatalf("failed to seed task %q: %v", in.Title, err)
		}
		fmt.Printf("seeded task: id=%d title=%s status=%s\n", t.ID, t.Title, t.Status)
	}
	fmt.Printf("seeded project: id=%d title=%s\n", p.ID, p.Title)
	fmt.Printf("token=%s\n", res.Token)
}
