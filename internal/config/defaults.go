// Package config loads wireframe settings from Viper (flags, config file,
// WIREFRAME_* environment variables) into typed, validated structs.
// All default values are defined here.
package config

import "time"

// EnvPrefix is the prefix of environment variables read by Viper.
const EnvPrefix = "WIREFRAME"

// ConfigFileName is the config file searched for in . and the global config dir.
const ConfigFileName = ".wireframe"

// Server defaults
const (
	DefaultServerPort = 8080
	DefaultServerHost = "127.0.0.1"
)

// DefaultAllowedOrigins are the browser origins the HTTP API accepts by default.
var DefaultAllowedOrigins = []string{"http://localhost:3000", "http://localhost:5173"}

// DefaultGenerateDelay separates backend calls when generating every screen of a workflow.
const DefaultGenerateDelay = 2 * time.Second

// DefaultLLMTimeout bounds a single backend call made by the HTTP completer.
const DefaultLLMTimeout = 120 * time.Second

// DefaultLogLevel is used when log.level is not set.
const DefaultLogLevel = "info"

// DefaultTelemetryEndpoint is the PostHog ingestion host.
const DefaultTelemetryEndpoint = "https://us.i.posthog.com"
