package service

import (
	"context"

	commonerrors "github.com/mcguiretech/truapi/internal/common/errors"
	"github.com/mcguiretech/truapi/internal/common/identifier"
	"github.com/mcguiretech/truapi/internal/common/logger"
	"github.com/mcguiretech/truapi/internal/user/domain"
	"github.com/mcguiretech/truapi/internal/user/repository"
)

type CreateInput struct {
	Username    string
	Email       string
	DisplayName string
}

// UpdateInput carries the mutable fields of a user. Nil means "leave as is".
type UpdateInput struct {
	Email       *string
	DisplayName *string
}

type UserService struct {
	repo repository.Repository
	log  *logger.Logger
}

func NewUserService(repo repository.Repository, log *logger.Logger) *UserService {
	return &UserService{repo: repo, log: log}
}

func (s *UserService) Create(ctx context.Context, input CreateInput) (domain.User, error) {
	user := domain.New(input.Username, input.Email, input.DisplayName)

	if err := s.repo.Save(ctx, user); err != nil {
		s.log.WithFields(ctx, logger.Fields{"action": "user_create", "user_id": string(user.ID)}).
			Errorf("save failed: %v", err)
		return domain.User{}, err
	}

	s.log.WithFields(ctx, logger.Fields{"action": "user_create", "user_id": string(user.ID)}).
		Info("user created")
	return user, nil
}

func (s *UserService) Get(ctx context.Context, id identifier.ID) (domain.User, error) {
	user, err := s.repo.Get(ctx, repository.Filter{ID: id})
	if err != nil {
		return domain.User{}, err
	}
	if user == nil {
		return domain.User{}, commonerrors.ErrUserNotFound
	}
	return *user, nil
}

func (s *UserService) List(ctx context.Context, filter repository.Filter) ([]domain.User, error) {
	return s.repo.List(ctx, filter)
}

func (s *UserService) Update(ctx context.Context, id identifier.ID, input UpdateInput) (domain.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return domain.User{}, err
	}

	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.DisplayName != nil {
		user.DisplayName = *input.DisplayName
	}

	if err := s.repo.Save(ctx, user); err != nil {
		s.log.WithFields(ctx, logger.Fields{"action": "user_update", "user_id": string(id)}).
			Errorf("save failed: %v", err)
		return domain.User{}, err
	}

	s.log.WithFields(ctx, logger.Fields{"action": "user_update", "user_id": string(id)}).
		Info("user updated")
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id identifier.ID) error {
	exists, err := s.repo.Exists(ctx, repository.Filter{ID: id})
	if err != nil {
		return err
	}
	if !exists {
		return commonerrors.ErrUserNotFound
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.log.WithFields(ctx, logger.Fields{"action": "user_delete", "user_id": string(id)}).
			Errorf("delete failed: %v", err)
		return err
	}

	s.log.WithFields(ctx, logger.Fields{"action": "user_delete", "user_id": string(id)}).
		Info("user deleted")
	return nil
}
