package config

import (
	"strings"
	"time"
)

// ServerConfig holds the HTTP server configuration
type ServerConfig struct {
	// Listen address, e.g. ":8080"
	Address string `mapstructure:"address" validate:"required"`

	// Application name, first segment of the context root
	AppName string `mapstructure:"app_name" validate:"required,excludesall=/ "`

	// Application version; its major component forms the second segment
	Version string `mapstructure:"version" validate:"required"`

	// Per-client request rate limiting
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`

	ReadTimeout     time.Duration `mapstructure:"read_timeout" validate:"required"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"required"`

	// PID file guarding against two servers sharing one database file
	PIDFile string `mapstructure:"pid_file"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	// Maximum requests per second
	Requests int `mapstructure:"requests" validate:"min=1"`

	// Burst size for token bucket
	Burst int `mapstructure:"burst" validate:"min=1"`
}

// MajorVersion returns the first dot-separated component of the version,
// without a leading "v"
func (s ServerConfig) MajorVersion() string {
	major := strings.TrimPrefix(strings.TrimSpace(s.Version), "v")
	if i := strings.Index(major, "."); i >= 0 {
		major = major[:i]
	}
	return major
}

// ContextRoot returns the URL prefix every route is served under,
// e.g. "/garage/v1"
func (s ServerConfig) ContextRoot() string {
	return "/" + s.AppName + "/v" + s.MajorVersion()
}
