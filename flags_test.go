package main

import (
	"os"
	"path/filepath"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZephyrDeng/pprof-toptext-mcp/topreport"
)

func TestParseFlagsDefaults(t *testing.T) {
	f, err := parseFlags(nil)
	require.NoError(t, err)

	assert.Equal(t, "info", f.Log.Level)
	assert.Equal(t, "logfmt", f.Log.Format)
	assert.Empty(t, f.ConfigPath)
	assert.False(t, f.Version)
}

func TestParseFlags(t *testing.T) {
	f, err := parseFlags([]string{"--log-level", "debug", "--log-format", "json", "--config-path", "/tmp/c.yaml"})
	require.NoError(t, err)

	assert.Equal(t, "/tmp/c.yaml", f.ConfigPath)

	l := log.New()
	f.Log.configureLogger(l)
	assert.Equal(t, log.DebugLevel, l.GetLevel())
	assert.IsType(t, &log.JSONFormatter{}, l.Formatter)
}

func TestParseFlagsRejectsUnknownLevel(t *testing.T) {
	_, err := parseFlags([]string{"--log-level", "trace"})
	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, topreport.DefaultConfig(), cfg)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cum_minimum: 20\n"), 0o644))
	cfg, err = loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, topreport.Config{SumMaximum: topreport.SumMaximum, CumMinimum: 20}, cfg)
}
