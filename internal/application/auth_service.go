package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/task-tracker/internal/domain/entity"
	repo "github.com/oksasatya/task-tracker/internal/domain/repository"
	"github.com/oksasatya/task-tracker/pkg/helpers"
)

// Authenticator verifies a credential pair and returns the matching user.
// Implementations return ErrUnauthorized on any mismatch.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (*entity.User, error)
}

// PasswordAuthenticator checks bcrypt hashes stored in the user repository.
type PasswordAuthenticator struct {
	Users repo.UserRepository
}

func (a *PasswordAuthenticator) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := a.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("load user by email: %w", err)
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrUnauthorized
	}
	return u, nil
}

// SessionRegistry tracks issued tokens by session id so they can be revoked
// before they expire. *helpers.SessionStore is the Redis implementation.
type SessionRegistry interface {
	Create(ctx context.Context, sid, email string, ttl time.Duration) error
	Active(ctx context.Context, sid string) (bool, error)
	Revoke(ctx context.Context, sid string) error
}

type AuthService struct {
	Users    repo.UserRepository
	Auth     Authenticator
	JWT      *helpers.JWTManager
	Sessions SessionRegistry // nil means stateless tokens
	Logger   *logrus.Logger
}

func NewAuthService(users repo.UserRepository, auth Authenticator, jwt *helpers.JWTManager, sessions SessionRegistry, logger *logrus.Logger) *AuthService {
	if auth == nil {
		auth = &PasswordAuthenticator{Users: users}
	}
	return &AuthService{Users: users, Auth: auth, JWT: jwt, Sessions: sessions, Logger: logger}
}

type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

type AuthResponse struct {
	Token     string    `json:"token"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Register creates a user and issues its first token.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResponse, error) {
	if strings.TrimSpace(in.Email) == "" {
		return nil, invalid("email", "is required")
	}
	if in.Password == "" {
		return nil, invalid("password", "is required")
	}
	_, err := s.Users.GetByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return nil, ErrConflict
	case !errors.Is(err, repo.ErrNotFound):
		return nil, fmt.Errorf("check email: %w", err)
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &entity.User{
		Email:     in.Email,
		Password:  hash,
		FirstName: in.FirstName,
		LastName:  in.LastName,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	if s.Logger != nil {
		s.Logger.WithField("user_id", u.ID).Info("user registered")
	}
	return s.issue(ctx, u)
}

// Login authenticates the credentials and issues a token bound to the email.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	u, err := s.Auth.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return s.issue(ctx, u)
}

// Logout revokes the session behind a token. Stateless tokens stay valid until expiry.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if s.Sessions == nil || sessionID == "" {
		return nil
	}
	if err := s.Sessions.Revoke(ctx, sessionID); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

// VerifyToken returns the claims of a valid, unrevoked token.
func (s *AuthService) VerifyToken(ctx context.Context, token string) (*helpers.Claims, error) {
	claims, err := s.JWT.ParseToken(token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if s.Sessions != nil {
		ok, err := s.Sessions.Active(ctx, claims.SessionID)
		if err != nil {
			return nil, fmt.Errorf("lookup session: %w", err)
		}
		if !ok {
			return nil, ErrInvalidToken
		}
	}
	return claims, nil
}

func (s *AuthService) issue(ctx context.Context, u *entity.User) (*AuthResponse, error) {
	sid := uuid.NewString()
	token, exp, err := s.JWT.GenerateToken(u.Email, sid)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate token failed")
		}
		return nil, fmt.Errorf("generate token: %w", err)
	}
	if s.Sessions != nil {
		if err := s.Sessions.Create(ctx, sid, u.Email, time.Until(exp)); err != nil {
			return nil, fmt.Errorf("store session: %w", err)
		}
	}
	return &AuthResponse{Token: token, Email: u.Email, ExpiresAt: exp}, nil
}

var _ SessionRegistry = (*helpers.SessionStore)(nil)
