package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSV(t *testing.T) {
	assert.Nil(t, CSV(""))
	assert.Equal(t, []string{"kafka:9092", "kafka2:9092"}, CSV(" kafka:9092, ,kafka2:9092 "))
}

func TestEnvDefaults(t *testing.T) {
	t.Setenv("POS_TEST_INT", "42")
	t.Setenv("POS_TEST_BAD_INT", "x")
	t.Setenv("POS_TEST_BOOL", "true")

	assert.Equal(t, 42, EnvIntDefault("POS_TEST_INT", 1))
	assert.Equal(t, 1, EnvIntDefault("POS_TEST_BAD_INT", 1))
	assert.Equal(t, 7, EnvIntDefault("POS_TEST_MISSING", 7))
	assert.True(t, EnvBoolDefault("POS_TEST_BOOL", false))
	assert.False(t, EnvBoolDefault("POS_TEST_MISSING", false))
	assert.Equal(t, "def", EnvDefault("POS_TEST_MISSING", "def"))
}

func TestLoad_ReadsDotenvWithoutOverridingEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("KAFKA_BROKERS=a:1,b:2\nSERVER_PORT=9000\n"), 0o600))

	t.Setenv("SERVER_PORT", "8181")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("KAFKA_BROKERS", "")
	os.Unsetenv("KAFKA_BROKERS")
	t.Cleanup(func() { os.Unsetenv("KAFKA_BROKERS") })

	cfg := Load(path)

	assert.Equal(t, 8181, cfg.ServerPort)
	assert.Equal(t, []string{"a:1", "b:2"}, cfg.KafkaBrokers)
	assert.Equal(t, "info", cfg.LogLevel)
}
