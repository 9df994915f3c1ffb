package test_utils

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/valkey-io/valkey-go"
)

var (
	valkeyOnce    sync.Once
	valkeyAddress string
	valkeyErr     error
)

// StartTestValkey returns a client to a Valkey server shared by all tests of the
// package. TEST_VALKEY_ADDR points it to an existing server, otherwise a
// container is started. The test is skipped when neither works.
func StartTestValkey(t *testing.T) valkey.Client {
	t.Helper()

	address := os.Getenv("TEST_VALKEY_ADDR")
	if address == "" {
		testcontainers.SkipIfProviderIsNotHealthy(t)
	}

	valkeyOnce.Do(func() {
		if address != "" {
			valkeyAddress = address
			return
		}
		valkeyAddress, valkeyErr = startValkeyContainer()
	})

	if valkeyErr != nil {
		t.Skipf("test valkey is not available: %v", valkeyErr)
	}

	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress:  []string{valkeyAddress},
		DisableCache: true,
	})
	if err != nil {
		t.Skipf("test valkey is not available: %v", err)
	}
	t.Cleanup(client.Close)

	return client
}

func startValkeyContainer() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "valkey/valkey:8-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		return "", fmt.Errorf("failed to start valkey container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get valkey host: %w", err)
	}

	port, err := container.MappedPort(ctx, "6379/tcp")
	if err != nil {
		return "", fmt.Errorf("failed to get valkey port: %w", err)
	}

	return host + ":" + port.Port(), nil
}
