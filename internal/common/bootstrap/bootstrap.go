package bootstrap

import (
	"github.com/mcguiretech/truapi/internal/common/config"
	"github.com/mcguiretech/truapi/internal/common/db"
	commonerrors "github.com/mcguiretech/truapi/internal/common/errors"
	"github.com/mcguiretech/truapi/internal/common/logger"
	settingsrepo "github.com/mcguiretech/truapi/internal/settings/repository"
	settingssvc "github.com/mcguiretech/truapi/internal/settings/service"
	userrepo "github.com/mcguiretech/truapi/internal/user/repository"
	usersvc "github.com/mcguiretech/truapi/internal/user/service"
)

// App holds the wired application graph. Close releases whatever persistence
// resources the environment selected.
type App struct {
	Config config.Config
	Log    *logger.Logger

	Users    *usersvc.UserService
	Settings *settingssvc.SettingsService

	UserRepo     userrepo.Repository
	SettingsRepo settingsrepo.Repository

	closers []func()
}

func NewApp(cfg config.Config, log *logger.Logger) (*App, error) {
	app := &App{Config: cfg, Log: log}

	users, err := app.newUserRepository(cfg, log)
	if err != nil {
		return nil, err
	}
	app.UserRepo = users
	app.SettingsRepo = settingsrepo.NewMemoryRepository()

	app.Users = usersvc.NewUserService(app.UserRepo, log)
	app.Settings = settingssvc.NewSettingsService(app.SettingsRepo, log)

	return app, nil
}

// newUserRepository picks the storage adapter from the environment: tests run
// in memory, development on a local sqlite file, production against postgres.
// Production without DATABASE_URL is a configuration error, not a silent
// fallback.
func (a *App) newUserRepository(cfg config.Config, log *logger.Logger) (userrepo.Repository, error) {
	switch cfg.NormalizedEnvironment() {
	case config.EnvTest:
		return userrepo.NewMemoryRepository(), nil

	case config.EnvDevelopment:
		database, err := db.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() { _ = database.Close() })
		log.Infof("using sqlite storage at %s", cfg.SQLitePath)
		return userrepo.NewSQLiteRepository(database), nil

	case config.EnvProduction:
		if cfg.DatabaseURL == "" {
			return nil, commonerrors.ErrRepositoryNotConfigured
		}
		if err := db.ApplyMigrations(log, cfg.DatabaseURL, cfg.MigrationsDir); err != nil {
			return nil, err
		}
		pool := db.NewPool(log, cfg.DatabaseURL)
		a.closers = append(a.closers, pool.Close)
		return userrepo.NewPgRepository(pool), nil

	default:
		log.Warnf("unknown environment %q, using in-memory storage", cfg.Environment)
		return userrepo.NewMemoryRepository(), nil
	}
}

func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}
