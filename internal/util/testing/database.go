package test_utils

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"taskboard/internal/storage"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

var (
	databaseOnce sync.Once
	database     *gorm.DB
	databaseErr  error
)

// StartTestDatabase returns a migrated database shared by all tests of the
// package. TEST_DATABASE_DSN points it to an existing server, otherwise a
// PostgreSQL container is started. The test is skipped when neither works.
func StartTestDatabase(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		testcontainers.SkipIfProviderIsNotHealthy(t)
	}

	databaseOnce.Do(func() {
		database, databaseErr = openTestDatabase(dsn)
	})

	if databaseErr != nil {
		t.Skipf("test database is not available: %v", databaseErr)
	}

	return database
}

func openTestDatabase(dsn string) (*gorm.DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if dsn == "" {
		container, err := postgres.Run(ctx,
			"postgres:16-alpine",
			postgres.WithDatabase("taskboard_test"),
			postgres.WithUsername("test_user"),
			postgres.WithPassword("test_password"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(60*time.Second),
			),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to start postgres container: %w", err)
		}

		dsn, err = container.ConnectionString(ctx, "sslmode=disable")
		if err != nil {
			return nil, fmt.Errorf("failed to get connection string: %w", err)
		}
	}

	db, err := storage.NewDatabase(dsn)
	if err != nil {
		return nil, err
	}

	if err := storage.RunMigrations(ctx, db); err != nil {
		return nil, err
	}

	return db, nil
}
