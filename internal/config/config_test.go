package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikita2423/approval-bff/internal/config"
)

// TestDefault 默认配置齐备
func TestDefault(t *testing.T) {
	cfg := config.Default()

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "http://localhost:3000", cfg.Upstream.CaseAPIURL)
	assert.Equal(t, "http://localhost:8000", cfg.Upstream.InferenceURL)
	assert.Equal(t, "http://localhost:8000", cfg.Upstream.CatalogueURL)
	assert.NotEmpty(t, cfg.Log.Level)
	assert.False(t, cfg.IsProduction())
}

// TestLoad_FromFile 配置文件覆盖默认值
func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
env: production
server:
  port: 9090
upstream:
  case_api_url: http://cases.internal:3000
  inference_url: http://inference.internal:8000
store:
  audit_db_path: /tmp/audit.db
rate_limit:
  enabled: true
  rps: 20
  burst: 40
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Env)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "http://cases.internal:3000", cfg.Upstream.CaseAPIURL)
	assert.Equal(t, "/tmp/audit.db", cfg.Store.AuditDBPath)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, float64(20), cfg.RateLimit.RPS)

	// 未覆盖的字段仍取默认值
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
}

// TestLoad_MissingFile 指定的配置文件不存在时报错
func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

// TestLoad_EnvOverride 环境变量覆盖配置
func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("APP_SERVER_PORT", "7070")

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
}

// TestIsProduction_Nil nil 配置不视为生产环境
func TestIsProduction_Nil(t *testing.T) {
	var cfg *config.Config
	assert.False(t, cfg.IsProduction())
}
