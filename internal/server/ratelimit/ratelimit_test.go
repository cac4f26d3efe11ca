package ratelimit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Match(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		endpoint string
		method   string
		wantRPM  int
	}{
		{"/interview/start", "POST", 10},
		{"/interview/answer", "POST", 20},
		{"/auth/register", "POST", 15},
		{"/auth/login", "POST", 15},
		{"/sessions", "GET", 60},
		{"/sessions/abc/turns", "POST", 60},
		{"/somewhere/else", "GET", cfg.Default.RequestsPerMinute},
	}

	for _, tt := range tests {
		ec := cfg.Match(tt.endpoint, tt.method)
		require.NotNil(t, ec, "endpoint %s", tt.endpoint)
		assert.Equal(t, tt.wantRPM, ec.RequestsPerMinute, "endpoint %s", tt.endpoint)
	}
}

func TestConfig_Match_HealthUnlimited(t *testing.T) {
	assert.Nil(t, DefaultConfig().Match("/health", "GET"))
}

func TestConfig_Match_MethodMismatch(t *testing.T) {
	// GET on an interview route falls through to the default quota.
	cfg := DefaultConfig()
	ec := cfg.Match("/interview/start", "GET")
	require.NotNil(t, ec)
	assert.Equal(t, cfg.Default.RequestsPerMinute, ec.RequestsPerMinute)
}

func TestLimiter_BurstThenDeny(t *testing.T) {
	cfg := &Config{
		Endpoints: []EndpointConfig{
			{Pattern: "/interview/start", Method: "POST", RequestsPerMinute: 60, Burst: 3},
		},
		Default: EndpointConfig{Pattern: "*", RequestsPerMinute: 60, Burst: 3},
	}
	l := NewLimiter(cfg)
	defer l.Stop()

	for i := 0; i < 3; i++ {
		allowed, info := l.Allow("1.2.3.4", "/interview/start", "POST")
		assert.True(t, allowed, "request %d within burst", i)
		assert.Equal(t, 60, info.Limit)
	}

	allowed, info := l.Allow("1.2.3.4", "/interview/start", "POST")
	assert.False(t, allowed)
	assert.Equal(t, 0, info.Remaining)
	assert.Greater(t, info.RetryAfter.Seconds(), 0.0)
}

func TestLimiter_ClientsIsolated(t *testing.T) {
	cfg := &Config{
		Default: EndpointConfig{Pattern: "*", RequestsPerMinute: 60, Burst: 1},
	}
	l := NewLimiter(cfg)
	defer l.Stop()

	allowed, _ := l.Allow("client-a", "/x", "GET")
	assert.True(t, allowed)
	allowed, _ = l.Allow("client-a", "/x", "GET")
	assert.False(t, allowed)

	// A different client still has its full budget.
	allowed, _ = l.Allow("client-b", "/x", "GET")
	assert.True(t, allowed)
}

func TestLimiter_HealthNeverLimited(t *testing.T) {
	l := NewLimiter(DefaultConfig())
	defer l.Stop()

	for i := 0; i < 100; i++ {
		allowed, info := l.Allow("1.2.3.4", "/health", "GET")
		assert.True(t, allowed)
		assert.Equal(t, -1, info.Limit)
	}
}
