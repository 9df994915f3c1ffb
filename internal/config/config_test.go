package config

import (
	"testing"
	"time"

	env_utils "taskboard/internal/util/env"

	"github.com/stretchr/testify/assert"
)

func validEnv() *EnvVariables {
	return &EnvVariables{
		DatabaseDsn:          "postgres://localhost/taskboard",
		EnvMode:              env_utils.EnvModeDevelopment,
		JwtSecret:            "secret",
		JwtExpire:            time.Hour,
		TasksOnProjectDelete: TaskDeletionPolicyOrphan,
	}
}

func Test_Validate_WithCompleteEnv_ReturnsNoError(t *testing.T) {
	assert.NoError(t, validEnv().Validate())
}

func Test_Validate_WithInvalidValues_ReturnsError(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(env *EnvVariables)
	}{
		{"empty dsn", func(env *EnvVariables) { env.DatabaseDsn = "" }},
		{"unknown mode", func(env *EnvVariables) { env.EnvMode = "staging" }},
		{"empty jwt secret", func(env *EnvVariables) { env.JwtSecret = "" }},
		{"zero expiry", func(env *EnvVariables) { env.JwtExpire = 0 }},
		{"unknown deletion policy", func(env *EnvVariables) { env.TasksOnProjectDelete = "archive" }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			env := validEnv()
			tc.mutate(env)
			assert.Error(t, env.Validate())
		})
	}
}

func Test_IsCacheEnabled_DependsOnValkeyHost(t *testing.T) {
	env := validEnv()
	assert.False(t, env.IsCacheEnabled())

	env.ValkeyHost = "localhost"
	assert.True(t, env.IsCacheEnabled())
}
