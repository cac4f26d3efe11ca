package ratelimit

import (
	"os"
	"strconv"
	"strings"
)

// EndpointConfig defines the quota for one route pattern. A trailing "*"
// in Pattern matches any suffix.
type EndpointConfig struct {
	Pattern           string
	Method            string // empty matches any method
	RequestsPerMinute int
	Burst             int
}

// Config holds the limiter's endpoint quotas plus a default for routes
// that match nothing else.
type Config struct {
	Endpoints []EndpointConfig
	Default   EndpointConfig
}

// DefaultConfig returns the quotas for the interview API. Generation
// endpoints hit the LLM backend and get the tightest budget; auth
// endpoints are limited to slow down credential stuffing.
func DefaultConfig() *Config {
	return &Config{
		Endpoints: []EndpointConfig{
			{Pattern: "/interview/start", Method: "POST", RequestsPerMinute: 10, Burst: 3},
			{Pattern: "/interview/answer", Method: "POST", RequestsPerMinute: 20, Burst: 5},
			{Pattern: "/interview/feedback", Method: "POST", RequestsPerMinute: 10, Burst: 3},
			{Pattern: "/auth/*", Method: "POST", RequestsPerMinute: 15, Burst: 5},
			{Pattern: "/sessions*", Method: "", RequestsPerMinute: 60, Burst: 20},
		},
		Default: EndpointConfig{Pattern: "*", RequestsPerMinute: 120, Burst: 30},
	}
}

// LoadConfig builds the config from DefaultConfig with optional
// RATE_LIMIT_RPM / RATE_LIMIT_BURST overrides applied to the default
// quota.
func LoadConfig() *Config {
	cfg := DefaultConfig()
	if v := os.Getenv("RATE_LIMIT_RPM"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Default.RequestsPerMinute = n
		}
	}
	if v := os.Getenv("RATE_LIMIT_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Default.Burst = n
		}
	}
	return cfg
}

// Match returns the quota for the given endpoint and method, or nil when
// the endpoint is unlimited. The health check is never rate limited.
func (c *Config) Match(endpoint, method string) *EndpointConfig {
	if endpoint == "/health" {
		return nil
	}
	for i := range c.Endpoints {
		ec := &c.Endpoints[i]
		if ec.Method != "" && ec.Method != method {
			continue
		}
		if matchPattern(ec.Pattern, endpoint) {
			return ec
		}
	}
	return &c.Default
}

func matchPattern(pattern, endpoint string) bool {
	if prefix, ok := strings.CutSuffix(pattern, "*"); ok {
		return strings.HasPrefix(endpoint, prefix)
	}
	return pattern == endpoint
}
