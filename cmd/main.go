package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/oksasatya/task-tracker/config"
	"github.com/oksasatya/task-tracker/internal/container"
	"github.com/oksasatya/task-tracker/internal/infrastructure"
	"github.com/oksasatya/task-tracker/internal/interface/middleware"
	"github.com/oksasatya/task-tracker/internal/router"
	"github.com/oksasatya/task-tracker/pkg/helpers"
	"github.com/oksasatya/task-tracker/pkg/validation"
)

const shutdownTimeout = 10 * time.Second

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	gin.SetMode(cfg.GinMode)
	validation.Init()

	ctx := context.Background()

	store, closeStore, err := infrastructure.OpenStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("failed to open store: %v", err)
	}

	// Redis session registry is optional
	if cfg.SessionsEnabled() {
		rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Fatalf("failed to connect to redis: %v", err)
		}
		container.SetRedis(rdb)
	} else {
		logger.Warn("REDIS_ADDR not set, tokens cannot be revoked before expiry")
	}

	// Provide infra singletons to container for registry auto-wiring
	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetStore(store)
	container.SetJWT(helpers.NewJWTManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL))

	// Gin engine and global middleware
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP())
	corsCfg := cors.Config{
		AllowOrigins:     cfg.CORSOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	r.Use(cors.New(corsCfg))
	if cfg.HTTPLogEnabled {
		r.Use(middleware.AccessLog(logger))
	}

	// Registry: auto-register modules using container
	reg := router.NewRegistry(r)
	router.InitModules(reg)
	reg.RegisterAll()

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		logger.Infof("server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown: stop accepting requests, drain, then release the store
	wait := gfshutdown.GracefulShutdown(ctx, shutdownTimeout, map[string]gfshutdown.Operation{
		"http-server": func(ctx context.Context) error {
			logger.Info("shutting down server")
			err := srv.Shutdown(ctx)
			closeStore()
			if rdb := container.GetRedis(); rdb != nil {
				_ = rdb.Close()
			}
			return err
		},
	})
	code := <-wait
	logger.WithField("exit_code", code).Info("server exited")
	os.Exit(code)
}
