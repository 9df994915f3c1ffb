package cache

import (
	"crypto/tls"

	"taskboard/internal/config"

	"github.com/valkey-io/valkey-go"
)

// NewClient connects to Valkey. It returns a nil client when caching is
// disabled, which the cache utils treat as a permanent miss.
func NewClient(env *config.EnvVariables) (valkey.Client, error) {
	if !env.IsCacheEnabled() {
		return nil, nil
	}

	options := valkey.ClientOption{
		InitAddress: []string{env.ValkeyHost + ":" + env.ValkeyPort},
		Password:    env.ValkeyPassword,
		Username:    env.ValkeyUsername,
	}

	if env.ValkeyIsSsl {
		options.TLSConfig = &tls.Config{
			ServerName: env.ValkeyHost,
		}
	}

	return valkey.NewClient(options)
}
