package service

import (
	"context"

	commonerrors "github.com/mcguiretech/truapi/internal/common/errors"
	"github.com/mcguiretech/truapi/internal/common/identifier"
	"github.com/mcguiretech/truapi/internal/common/logger"
	"github.com/mcguiretech/truapi/internal/settings/domain"
	"github.com/mcguiretech/truapi/internal/settings/repository"
)

type SetInput struct {
	Scope  domain.Scope
	Key    string
	Value  string
	UserID identifier.ID
}

type SettingsService struct {
	repo repository.Repository
	log  *logger.Logger
}

func NewSettingsService(repo repository.Repository, log *logger.Logger) *SettingsService {
	return &SettingsService{repo: repo, log: log}
}

// Set stores a fresh setting. Earlier values for the same scope and key are
// kept; Get reads whichever matches first. A user-scoped request without an
// owner degrades to an app-scoped setting.
func (s *SettingsService) Set(ctx context.Context, input SetInput) (domain.Setting, error) {
	var setting domain.Setting
	switch input.Scope {
	case domain.ScopeApp:
		setting = domain.App(input.Key, input.Value)
	case domain.ScopeUser:
		if input.UserID == "" {
			setting = domain.App(input.Key, input.Value)
		} else {
			setting = domain.User(input.UserID, input.Key, input.Value)
		}
	default:
		return domain.Setting{}, commonerrors.ErrInvalidSettingScope
	}

	if err := s.repo.Save(ctx, setting); err != nil {
		s.log.WithFields(ctx, logger.Fields{"action": "setting_set", "key": input.Key}).
			Errorf("save failed: %v", err)
		return domain.Setting{}, err
	}

	s.log.WithFields(ctx, logger.Fields{"action": "setting_set", "key": input.Key, "scope": string(setting.Scope)}).
		Info("setting stored")
	return setting, nil
}

func (s *SettingsService) Get(ctx context.Context, filter repository.Filter) (domain.Setting, error) {
	setting, err := s.repo.Get(ctx, filter)
	if err != nil {
		return domain.Setting{}, err
	}
	if setting == nil {
		return domain.Setting{}, commonerrors.ErrSettingNotFound
	}
	return *setting, nil
}

func (s *SettingsService) List(ctx context.Context, filter repository.Filter) ([]domain.Setting, error) {
	return s.repo.List(ctx, filter)
}
