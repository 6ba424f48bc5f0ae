package redis

import (
	"net"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setRedisEnv points the client env vars at the given miniredis instance.
func setRedisEnv(t *testing.T, mr *miniredis.Miniredis) {
	t.Helper()

	host, port, err := net.SplitHostPort(mr.Addr())
	require.NoError(t, err, "failed to split miniredis address")

	t.Setenv("REDIS_HOST", host)
	t.Setenv("REDIS_PORT", port)
	t.Setenv("REDIS_PASSWORD", "")
	t.Setenv("REDIS_DB", "")
}

// TestNewRedisClient_Success は環境変数の接続先にPingが通ることを検証します。
func TestNewRedisClient_Success(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to start miniredis")
	defer mr.Close()

	setRedisEnv(t, mr)

	rdb, err := NewRedisClient()
	require.NoError(t, err)
	defer func() { _ = rdb.Close() }()

	assert.Equal(t, mr.Addr(), rdb.Options().Addr)
	assert.Equal(t, 0, rdb.Options().DB)
}

// TestNewRedisClient_DBIndex はREDIS_DBが論理DB番号として反映されることを検証します。
func TestNewRedisClient_DBIndex(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to start miniredis")
	defer mr.Close()

	setRedisEnv(t, mr)
	t.Setenv("REDIS_DB", "2")

	rdb, err := NewRedisClient()
	require.NoError(t, err)
	defer func() { _ = rdb.Close() }()

	assert.Equal(t, 2, rdb.Options().DB)
}

// TestNewRedisClient_InvalidDBIndexFallsBack は不正なREDIS_DBがDB 0へフォールバックすることを検証します。
func TestNewRedisClient_InvalidDBIndexFallsBack(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to start miniredis")
	defer mr.Close()

	setRedisEnv(t, mr)
	t.Setenv("REDIS_DB", "not-a-number")

	rdb, err := NewRedisClient()
	require.NoError(t, err)
	defer func() { _ = rdb.Close() }()

	assert.Equal(t, 0, rdb.Options().DB)
}

// TestNewRedisClient_Unreachable は接続不能時にエラーが返されることを検証します。
func TestNewRedisClient_Unreachable(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to start miniredis")

	setRedisEnv(t, mr)
	mr.Close() // bring the server down before connecting

	_, err = NewRedisClient()
	assert.Error(t, err)
}
