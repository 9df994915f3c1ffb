package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	"taskboard/internal/app"
	"taskboard/internal/cache"
	"taskboard/internal/config"
	"taskboard/internal/storage"
	cache_utils "taskboard/internal/util/cache"
	env_utils "taskboard/internal/util/env"
	"taskboard/internal/util/logger"

	"github.com/gin-gonic/gin"
)

// @title Taskboard Backend API
// @version 1.0
// @description API for projects, members and tasks

// @host localhost:4005
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	log := logger.GetLogger()

	newPassword := flag.String("new-password", "", "Set a new password for the user")
	email := flag.String("email", "", "Email of the user to reset password")
	flag.Parse()

	env, err := config.LoadEnv()
	if err != nil {
		log.Error("Failed to load environment", "error", err)
		os.Exit(1)
	}

	if env.EnvMode == env_utils.EnvModeProduction {
		gin.SetMode(gin.ReleaseMode)
		logger.SetProductionMode()
		log = logger.GetLogger()
	}

	db, err := storage.NewDatabase(env.DatabaseDsn)
	if err != nil {
		log.Error("Failed to open database", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	if err := storage.RunMigrations(ctx, db); err != nil {
		cancel()
		log.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	cancel()

	cacheClient, err := cache.NewClient(env)
	if err != nil {
		log.Error("Failed to connect to cache", "error", err)
		os.Exit(1)
	}
	if cacheClient != nil {
		defer cacheClient.Close()
	}
	testCacheConnection(log, cache_utils.NewCacheUtil[string](cacheClient, "tb_health:"))

	application := app.New(env, db, cacheClient, log)

	if *newPassword != "" {
		resetPassword(log, application, *email, *newPassword)
	}

	go generateSwaggerDocs(log, env)

	startServerWithGracefulShutdown(log, application)
}

func testCacheConnection(log *slog.Logger, cacheUtil *cache_utils.CacheUtil[string]) {
	if !cacheUtil.IsEnabled() {
		log.Info("Cache is disabled, memberships are read from the database")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := cacheUtil.Ping(ctx); err != nil {
		log.Error("Failed to connect to cache", "error", err)
		os.Exit(1)
	}

	log.Info("Cache connection test successful")
}

func startServerWithGracefulShutdown(log *slog.Logger, application *app.App) {
	go func() {
		if err := application.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("listen:", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info("Shutdown signal received")

	// The context is used to inform the server it has 10 seconds to finish
	// the request it is currently handling
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := application.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown:", "error", err)
	}

	log.Info("Server gracefully stopped")
}

// Keep in mind: docs appear after second launch, because Swagger
// is generated into Go files.
func generateSwaggerDocs(log *slog.Logger, env *config.EnvVariables) {
	if env.EnvMode == env_utils.EnvModeProduction {
		return
	}

	cmd := exec.Command("swag", "init", "-d", env.BackendRootPath, "-g", "cmd/main.go", "-o", "swagger")

	output, err := cmd.CombinedOutput()
	if err != nil {
		log.Warn("Failed to generate Swagger docs", "error", err, "output", string(output))
		return
	}

	log.Info("Swagger documentation generated successfully")
}

func resetPassword(log *slog.Logger, application *app.App, email string, newPassword string) {
	log.Info("Found reset password command - resetting password...")

	if email == "" {
		log.Info("No email provided, please provide an email via --email=\"some@email.com\" flag")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := application.UserService.ChangeUserPasswordByEmail(ctx, email, newPassword); err != nil {
		log.Error("Failed to reset password", "error", err)
		os.Exit(1)
	}

	log.Info("Password reset successfully")
	os.Exit(0)
}
