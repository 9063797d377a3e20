package commands

import (
	"context"
	"net"
	"strconv"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapdb/internal/profile"
	"github.com/leapstack-labs/leapdb/internal/testutil"

	// Register the adapters pinged in these tests.
	_ "github.com/leapstack-labs/leapdb/pkg/adapters/redis"
)

func TestFirstLine(t *testing.T) {
	assert.Equal(t, "one line", firstLine("one line"))
	assert.Equal(t, "first", firstLine("first\nsecond"))
	assert.Equal(t, "", firstLine(""))
}

func TestPingProfile_UnknownType(t *testing.T) {
	p := profile.Profile{Name: "warehouse", Type: "duckdb"}

	status, latency := pingProfile(context.Background(), testutil.NewTestLogger(t), p)
	assert.Contains(t, status, "unknown adapter type")
	assert.Empty(t, latency)
}

func TestPingProfile_Redis(t *testing.T) {
	s := miniredis.RunT(t)
	host, portStr, err := net.SplitHostPort(s.Addr())
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	p := profile.Profile{Name: "cache", Type: "redis", Host: host, Port: port}

	status, latency := pingProfile(context.Background(), testutil.NewTestLogger(t), p)
	assert.Equal(t, "ok", status)
	assert.NotEmpty(t, latency)
}

func TestPingProfile_Unreachable(t *testing.T) {
	// A fresh miniredis that is immediately stopped gives a port nothing
	// listens on.
	s := miniredis.RunT(t)
	host, portStr, err := net.SplitHostPort(s.Addr())
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)
	s.Close()

	p := profile.Profile{Name: "cache", Type: "redis", Host: host, Port: port}

	status, latency := pingProfile(context.Background(), testutil.NewTestLogger(t), p)
	assert.NotEqual(t, "ok", status)
	assert.Empty(t, latency)
}

func TestNewPingCommand(t *testing.T) {
	cmd := NewPingCommand()
	assert.Equal(t, "ping", cmd.Use)
	assert.NotNil(t, cmd.RunE)
	assert.NotNil(t, cmd.Flags().Lookup("all"))
}
