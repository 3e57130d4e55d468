package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "meridian.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadDefault(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "meridian-node", cfg.Node.Name)
	assert.Equal(t, DefaultDataDir, cfg.Node.DataDir)
	assert.Equal(t, DefaultListenAddr, cfg.API.ListenAddr)
	assert.Equal(t, DefaultMaxBodyBytes, cfg.API.GetMaxBodyBytes())
	assert.Equal(t, DefaultRequestTimeoutMs, cfg.API.GetRequestTimeoutMs())
	assert.True(t, cfg.API.IsMetricsEnabled())
	assert.Equal(t, filepath.Join(DefaultDataDir, "badger"), cfg.StoragePath())
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfigFile(t, `{
		"node": {"name": "testnet-1", "dataDir": "/var/lib/meridian"},
		"log": {"level": "debug", "toConsole": false},
		"storage": {"inMemory": true},
		"api": {"listenAddr": ":8080", "metricsEnabled": false, "maxBodyBytes": 1024}
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "testnet-1", cfg.Node.Name)
	assert.Equal(t, "/var/lib/meridian", cfg.Node.DataDir)
	assert.Equal(t, ":8080", cfg.API.ListenAddr)
	assert.False(t, cfg.API.IsMetricsEnabled())
	assert.Equal(t, int64(1024), cfg.API.GetMaxBodyBytes())
	assert.True(t, cfg.Storage.InMemory)
	assert.Equal(t, filepath.Join("/var/lib/meridian", "badger"), cfg.StoragePath())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/meridian.json")
	assert.Error(t, err)
}

func TestLoadMalformedFile(t *testing.T) {
	path := writeConfigFile(t, `{"node": `)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg.Node.DataDir = ""
	assert.Error(t, cfg.Validate())

	cfg = Default()
	bad := int64(-1)
	cfg.API.MaxBodyBytes = &bad
	assert.Error(t, cfg.Validate())

	cfg = Default()
	badTimeout := 0
	cfg.API.RequestTimeoutMs = &badTimeout
	assert.Error(t, cfg.Validate())
}

func TestLogConfigOptionalFields(t *testing.T) {
	cfg, err := Load(writeConfigFile(t, `{
		"log": {"level": "debug", "toConsole": false, "maxSizeMb": 7}
	}`))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	require.NotNil(t, cfg.Log.ToConsole)
	assert.False(t, *cfg.Log.ToConsole)
	require.NotNil(t, cfg.Log.MaxSizeMB)
	assert.Equal(t, 7, *cfg.Log.MaxSizeMB)
	// 未出现在文件中的可选字段保持未设置
	assert.Nil(t, cfg.Log.MaxBackups)
	assert.Empty(t, cfg.Log.FilePath)
}
