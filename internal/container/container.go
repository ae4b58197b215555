package container

import (
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/task-tracker/config"
	"github.com/oksasatya/task-tracker/internal/domain/repository"
	"github.com/oksasatya/task-tracker/pkg/helpers"
)

// app-level container to share constructed components across packages
// Router can auto-wire modules from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	store       repository.Store
	redisClient *redis.Client

	jwtManager *helpers.JWTManager
	sessions   *helpers.SessionStore
)

func SetConfig(c *config.Config)         { cfg = c }
func GetConfig() *config.Config          { return cfg }
func SetLogger(l *logrus.Logger)         { logger = l }
func SetStore(s repository.Store)        { store = s }
func GetStore() repository.Store         { return store }
func SetJWT(m *helpers.JWTManager)       { jwtManager = m }
func GetJWT() *helpers.JWTManager        { return jwtManager }
func GetSessions() *helpers.SessionStore { return sessions }
func GetRedis() *redis.Client            { return redisClient }

// GetLogger never returns nil so callers can log unconditionally.
func GetLogger() *logrus.Logger {
	if logger == nil {
		logger = helpers.NewNopLogger()
	}
	return logger
}

// SetRedis installs the Redis client and the session registry built on it.
// A nil client disables sessions.
func SetRedis(r *redis.Client) {
	redisClient = r
	if r == nil {
		sessions = nil
		return
	}
	sessions = helpers.NewSessionStore(r)
}
