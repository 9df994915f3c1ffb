package app_testing

import (
	"testing"
	"time"

	"taskboard/internal/app"
	"taskboard/internal/config"
	env_utils "taskboard/internal/util/env"
	"taskboard/internal/util/logger"
	test_utils "taskboard/internal/util/testing"

	"github.com/gin-gonic/gin"
)

const testJwtSecret = "taskboard-test-secret"

// NewTestApp builds the full API on the shared test database with the
// cache disabled. Tests are skipped when no database is available.
func NewTestApp(t *testing.T) *app.App {
	return NewTestAppWithEnv(t, func(*config.EnvVariables) {})
}

func NewTestAppWithEnv(t *testing.T, configure func(env *config.EnvVariables)) *app.App {
	t.Helper()

	gin.SetMode(gin.TestMode)
	db := test_utils.StartTestDatabase(t)

	env := &config.EnvVariables{
		DatabaseDsn:          "test",
		EnvMode:              env_utils.EnvModeProduction,
		BackendRootPath:      t.TempDir(),
		HttpPort:             "0",
		JwtSecret:            testJwtSecret,
		JwtExpire:            time.Hour,
		TasksOnProjectDelete: config.TaskDeletionPolicyOrphan,
	}
	configure(env)

	return app.New(env, db, nil, logger.GetLogger())
}
