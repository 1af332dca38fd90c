package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o644))
	return dir
}

func TestLoadConfigDefaults(t *testing.T) {
	uploads := filepath.Join(t.TempDir(), "uploads")
	dir := writeConfig(t, `
jwt:
  secret: short-secret
storage:
  local_path: `+uploads+`
`)

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "5000", cfg.Server.Port)
	assert.Equal(t, 168*time.Hour, cfg.JWT.ExpireTime)
	assert.Equal(t, time.Minute, cfg.Assessment.SweepInterval())
	assert.Equal(t, 5*time.Minute, cfg.Assessment.Grace())
	assert.Equal(t, 24, cfg.Assessment.DefaultDeadlineHours)
	assert.Equal(t, 10*time.Minute, cfg.Cache.JobTTL())
	assert.Empty(t, cfg.Auth.AdminSignupKey)

	// 本地存储目录会被自动创建
	info, err := os.Stat(uploads)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	dir := writeConfig(t, `
jwt:
  secret: from-file
storage:
  type: minio
assessment:
  grace_minutes: 15
`)
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("ADMIN_SIGNUP_KEY", "letmein")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.JWT.Secret)
	assert.Equal(t, "letmein", cfg.Auth.AdminSignupKey)
	assert.Equal(t, 15*time.Minute, cfg.Assessment.Grace())
}

func TestLoadConfigRejectsWeakSecrets(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("SERVER_MODE", "")
	_, err := LoadConfig(writeConfig(t, "storage:\n  type: minio\n"))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "server:\n  mode: release\njwt:\n  secret: too-short\nstorage:\n  type: minio\n"))
	assert.ErrorContains(t, err, "too short")
}

func TestAssessmentDurations(t *testing.T) {
	a := AssessmentConfig{SweepIntervalSeconds: 30, GraceMinutes: -1}
	assert.Equal(t, 30*time.Second, a.SweepInterval())
	assert.Zero(t, a.Grace())
}
