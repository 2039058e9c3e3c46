package redis

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisClient_Unreachable(t *testing.T) {
	t.Parallel()

	// reserve a port and release it so nothing is listening there
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	rdb, err := NewRedisClient(context.Background(), addr, "")

	assert.Nil(t, rdb)
	assert.ErrorContains(t, err, "redis ping "+addr)
}
