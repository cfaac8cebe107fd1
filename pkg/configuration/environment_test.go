package configuration

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnv_MissingFilesAreSkipped(t *testing.T) {
	n, err := LoadEnv([]string{"/nonexistent/.env", "/also/nonexistent/.env.local"})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestLoadEnv_ReadsExistingFile(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("TEST_LOAD_ENV_MARKER=yes\n"), 0o644))
	t.Cleanup(func() { _ = os.Unsetenv("TEST_LOAD_ENV_MARKER") })

	n, err := LoadEnv([]string{envPath})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "yes", os.Getenv("TEST_LOAD_ENV_MARKER"))
}

func TestDatabaseOptions_ConnectionString(t *testing.T) {
	opts := DatabaseOptions{
		Name:     "inmovista",
		Host:     "db.internal",
		Port:     "5433",
		User:     "svc",
		Password: "secret",
	}
	assert.Equal(
		t,
		"host=db.internal port=5433 user=svc dbname=inmovista password=secret sslmode=disable",
		opts.ConnectionString(),
	)
}

func TestLeadRateLimitOptions_Validate(t *testing.T) {
	valid := LeadRateLimitOptions{Window: 10 * time.Minute, Limit: 5, Storage: "memory"}
	require.NoError(t, valid.Validate())

	cases := []struct {
		name string
		opts LeadRateLimitOptions
	}{
		{"zero limit", LeadRateLimitOptions{Window: time.Minute, Limit: 0, Storage: "memory"}},
		{"zero window", LeadRateLimitOptions{Window: 0, Limit: 5, Storage: "memory"}},
		{"unknown storage", LeadRateLimitOptions{Window: time.Minute, Limit: 5, Storage: "etcd"}},
		{"redis without url", LeadRateLimitOptions{Window: time.Minute, Limit: 5, Storage: "redis"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Error(t, tc.opts.Validate())
		})
	}

	redis := LeadRateLimitOptions{Window: time.Minute, Limit: 5, Storage: "redis", RedisURL: "redis://localhost:6379/0"}
	assert.NoError(t, redis.Validate())
}

func TestLogrusLogLevel(t *testing.T) {
	cases := map[string]logrus.Level{
		"silent":  logrus.PanicLevel,
		"error":   logrus.ErrorLevel,
		"warn":    logrus.WarnLevel,
		"info":    logrus.InfoLevel,
		"debug":   logrus.DebugLevel,
		"bogus":   logrus.ErrorLevel,
		"":        logrus.ErrorLevel,
	}
	for input, want := range cases {
		c := &Configuration{LogLevel: input}
		assert.Equal(t, want, c.LogrusLogLevel(), "level %q", input)
	}
}
