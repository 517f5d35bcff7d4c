package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mcguiretech/truapi/internal/common/bootstrap"
	"github.com/mcguiretech/truapi/internal/common/config"
	commonhttp "github.com/mcguiretech/truapi/internal/common/http"
	"github.com/mcguiretech/truapi/internal/common/jwtverify"
	"github.com/mcguiretech/truapi/internal/common/logger"
	srv "github.com/mcguiretech/truapi/internal/common/server"
	settingshttp "github.com/mcguiretech/truapi/internal/settings/http"
	userhttp "github.com/mcguiretech/truapi/internal/user/http"
)

func main() {
	log, err := logger.New(os.Getenv("LOG_DIR"), "truapi", os.Getenv("LOG_LEVEL"))
	if err != nil {
		os.Stderr.WriteString(fmt.Sprintf("failed to initialize logger: %v\n", err))
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	app, err := bootstrap.NewApp(cfg, log)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	userHandler := userhttp.NewHandler(app.Users, log, cfg.RequestTimeout)
	settingsHandler := settingshttp.NewHandler(app.Settings, log, cfg.RequestTimeout)

	api := http.NewServeMux()
	api.Handle("/api/users", userHandler)
	api.Handle("/api/users/", userHandler)
	api.Handle("/api/settings", settingsHandler)
	api.Handle("/api/settings/", settingsHandler)

	var protected http.Handler = api
	if cfg.JWTSecret != "" {
		protected = jwtverify.Middleware(cfg.JWTSecret, log)(api)
	}

	mux := http.NewServeMux()
	mux.Handle("/api/", protected)
	mux.HandleFunc("/health", commonhttp.HealthHandler(log))
	mux.Handle("/metrics", promhttp.Handler())

	baseHandler := commonhttp.BuildBaseHandler(log, mux)

	serverConfig := srv.DefaultServerConfig(cfg.HTTPPort)
	server := srv.NewServer(serverConfig, baseHandler)

	shutdownHooks := []srv.ShutdownHook{
		func(ctx context.Context) error {
			log.Info("closing storage")
			app.Close()
			return nil
		},
	}

	srv.StartWithGracefulShutdownAndHooks(server, log, "truapi", shutdownHooks)
}
