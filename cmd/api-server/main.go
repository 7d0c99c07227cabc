package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chordfund.app/api-server/core/config"
	"chordfund.app/api-server/core/db"
	"chordfund.app/api-server/core/db/sqlc"
	"chordfund.app/api-server/core/observability"
	"chordfund.app/api-server/internal/http/handler"
	"chordfund.app/api-server/internal/http/router"
	"chordfund.app/api-server/internal/mail"
	"chordfund.app/api-server/internal/service"
	"chordfund.app/api-server/internal/store"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const serviceName = "chordfund-api"

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	shutdownLogs, err := observability.Setup(ctx, serviceName, cfg.OTLPEndpoint)
	if err != nil {
		return fmt.Errorf("setting up observability: %w", err)
	}
	defer func() {
		if err := shutdownLogs(context.Background()); err != nil {
			slog.Warn("failed to flush logs", "error", err)
		}
	}()

	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer pool.Close()

	stores := store.New(sqlc.New(pool))
	mailer := mail.NewClient(cfg.Mail.Endpoint, cfg.Mail.APIKey)

	authService := service.NewAuthService(stores.Users, stores.Sessions, cfg.WorkOS)
	identity := service.NewIdentityProvider(authService)
	inviteService := service.NewInviteService(
		stores.TeamMembers,
		stores.Projects,
		stores.Users,
		mailer,
		cfg.AppBaseURL,
		cfg.Mail.From,
	)
	projectService := service.NewProjectService(stores.Projects, stores.TeamMembers)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(otelgin.Middleware(serviceName))

	api := engine.Group("/api")
	router.AuthRouter(api.Group("/auth"), handler.NewAuthHandler(authService, cfg.AppBaseURL, cfg.IsProduction()))
	router.InviteRouter(api.Group("/invites"), handler.NewInviteHandler(inviteService, identity, cfg.AppBaseURL))
	router.ProjectRouter(api.Group("/projects"), handler.NewProjectHandler(projectService, authService))

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", srv.Addr, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
