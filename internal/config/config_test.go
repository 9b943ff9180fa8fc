package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Run("Reads the file and fills defaults", func(t *testing.T) {
		// Given: a file naming only the role and peer
		path := writeConfig(t, "role: initiator\npeer:\n  host: 10.0.0.2\n  port: 4000\n")

		// When: it is loaded
		conf, err := Load(path)

		// Then: unset keys take their defaults
		require.NoError(t, err)
		assert.Equal(t, "initiator", conf.Role)
		assert.Equal(t, "10.0.0.2:4000", conf.Peer.Addr())
		assert.Equal(t, "localhost:3000", conf.Listen.Addr())
		assert.Equal(t, TransportTCP, conf.Transport)
		assert.Equal(t, "info", conf.LogLevel)
		assert.Equal(t, uint64(10), conf.Dial.MaxRetries)
		assert.Equal(t, 500*time.Millisecond, conf.Dial.InitialInterval)
		assert.Equal(t, 5*time.Second, conf.Dial.MaxInterval)
		assert.False(t, conf.Redis.Enabled)
		assert.Equal(t, "tictactoe:rounds", conf.Redis.Channel)
		assert.Equal(t, "localhost:6379", conf.Redis.GetRedisAddr())
	})

	t.Run("Environment overrides the file", func(t *testing.T) {
		path := writeConfig(t, "role: initiator\ntransport: tcp\n")
		t.Setenv("TTT_ROLE", "responder")
		t.Setenv("TTT_TRANSPORT", "websocket")
		t.Setenv("TTT_LISTEN_PORT", "4100")

		conf, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, "responder", conf.Role)
		assert.Equal(t, TransportWebSocket, conf.Transport)
		assert.Equal(t, 4100, conf.Listen.Port)
	})

	t.Run("Missing file falls back to the environment", func(t *testing.T) {
		t.Setenv("TTT_ROLE", "responder")
		t.Setenv("TTT_REDIS_ENABLED", "true")

		conf, err := Load(filepath.Join(t.TempDir(), "absent.yml"))

		require.NoError(t, err)
		assert.Equal(t, "responder", conf.Role)
		assert.True(t, conf.Redis.Enabled)
	})

	t.Run("Role is required", func(t *testing.T) {
		path := writeConfig(t, "name: alice\n")

		_, err := Load(path)

		require.Error(t, err)
	})
}

func TestMustLoad_Panics(t *testing.T) {
	path := writeConfig(t, "name: alice\n")

	assert.Panics(t, func() { MustLoad(path) })
}

func TestUsage(t *testing.T) {
	out := &strings.Builder{}
	called := false

	Usage(out, "tictactoe-p2p", func() { called = true })()

	assert.True(t, called)
	assert.Contains(t, out.String(), "tictactoe-p2p")
	assert.Contains(t, out.String(), "TTT_ROLE")
	assert.Contains(t, out.String(), "TTT_PEER_HOST")
}
