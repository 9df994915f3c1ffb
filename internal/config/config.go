package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	env_utils "taskboard/internal/util/env"
	"taskboard/internal/util/logger"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	TaskDeletionPolicyOrphan  = "orphan"
	TaskDeletionPolicyCascade = "cascade"
)

type EnvVariables struct {
	DatabaseDsn     string            `env:"DATABASE_DSN"            env-required:"true"`
	EnvMode         env_utils.EnvMode `env:"ENV_MODE"                env-required:"true"`
	BackendRootPath string            `env:"BACKEND_ROOT_PATH"`
	HttpPort        string            `env:"HTTP_PORT"               env-default:"4005"`
	// auth
	JwtSecret string        `env:"JWT_SECRET" env-required:"true"`
	JwtExpire time.Duration `env:"JWT_EXPIRE" env-default:"720h"`
	// cache, disabled when host is empty
	ValkeyHost     string `env:"VALKEY_HOST"`
	ValkeyPort     string `env:"VALKEY_PORT"             env-default:"6379"`
	ValkeyUsername string `env:"VALKEY_USERNAME"`
	ValkeyPassword string `env:"VALKEY_PASSWORD"`
	ValkeyIsSsl    bool   `env:"VALKEY_IS_SSL"           env-default:"false"`
	// what happens to tasks of a deleted project
	TasksOnProjectDelete string `env:"TASKS_ON_PROJECT_DELETE" env-default:"orphan"`
}

func (e *EnvVariables) IsCacheEnabled() bool {
	return e.ValkeyHost != ""
}

// LoadEnv reads an optional .env file and then the process environment.
// The result is passed explicitly to storage, cache and the identity provider.
func LoadEnv() (*EnvVariables, error) {
	log := logger.GetLogger()

	cwd, err := os.Getwd()
	if err != nil {
		log.Warn("could not get current working directory", "error", err)
		cwd = "."
	}

	backendRoot := findModuleRoot(cwd)

	envPaths := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(backendRoot, ".env"),
	}

	for _, path := range envPaths {
		if err := godotenv.Load(path); err == nil {
			log.Info("Successfully loaded .env", "path", path)
			break
		}
	}

	var env EnvVariables
	if err := cleanenv.ReadEnv(&env); err != nil {
		return nil, fmt.Errorf("configuration could not be loaded: %w", err)
	}

	if env.BackendRootPath == "" {
		env.BackendRootPath = backendRoot
	}

	if err := env.Validate(); err != nil {
		return nil, err
	}

	log.Info("Environment variables loaded successfully!", "mode", env.EnvMode)

	return &env, nil
}

func (e *EnvVariables) Validate() error {
	if e.DatabaseDsn == "" {
		return errors.New("DATABASE_DSN is empty")
	}

	if !e.EnvMode.IsValid() {
		return fmt.Errorf("ENV_MODE is invalid: %q", e.EnvMode)
	}

	if e.JwtSecret == "" {
		return errors.New("JWT_SECRET is empty")
	}

	if e.JwtExpire <= 0 {
		return errors.New("JWT_EXPIRE must be positive")
	}

	if e.TasksOnProjectDelete != TaskDeletionPolicyOrphan &&
		e.TasksOnProjectDelete != TaskDeletionPolicyCascade {
		return fmt.Errorf("TASKS_ON_PROJECT_DELETE is invalid: %q", e.TasksOnProjectDelete)
	}

	return nil
}

func findModuleRoot(from string) string {
	root := from
	for {
		if _, err := os.Stat(filepath.Join(root, "go.mod")); err == nil {
			return root
		}

		parent := filepath.Dir(root)
		if parent == root {
			return from
		}

		root = parent
	}
}
