package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/task-tracker/internal/domain/entity"
	repo "github.com/oksasatya/task-tracker/internal/domain/repository"
)

type UserService struct {
	Users  repo.UserRepository
	Logger *logrus.Logger
}

func NewUserService(users repo.UserRepository, logger *logrus.Logger) *UserService {
	return &UserService{Users: users, Logger: logger}
}

// Profile returns the user behind identity.
func (s *UserService) Profile(ctx context.Context, identity string) (UserDTO, error) {
	u, err := s.resolve(ctx, identity)
	if err != nil {
		return UserDTO{}, err
	}
	return toUserDTO(u), nil
}

// UpdateProfile overwrites only the names present in the patch.
func (s *UserService) UpdateProfile(ctx context.Context, identity string, in ProfilePatch) (UserDTO, error) {
	u, err := s.resolve(ctx, identity)
	if err != nil {
		return UserDTO{}, err
	}
	if in.FirstName != nil {
		u.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		u.LastName = *in.LastName
	}
	if err := s.Users.Update(ctx, u); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return UserDTO{}, notFound("user", identity)
		}
		return UserDTO{}, fmt.Errorf("update user %d: %w", u.ID, err)
	}
	if s.Logger != nil {
		s.Logger.WithField("user_id", u.ID).Debug("profile updated")
	}
	return toUserDTO(u), nil
}

func (s *UserService) resolve(ctx context.Context, identity string) (*entity.User, error) {
	return resolveUser(ctx, s.Users, identity)
}

// resolveUser maps an authenticated identity to its user record.
func resolveUser(ctx context.Context, users repo.UserRepository, identity string) (*entity.User, error) {
	u, err := users.GetByEmail(ctx, identity)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, notFound("user", identity)
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	return u, nil
}
