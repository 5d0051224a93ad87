package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

var validate = validator.New()

// ServerConfig holds settings for `wireframe serve`.
type ServerConfig struct {
	Host           string   `validate:"required"`
	Port           int      `validate:"min=1,max=65535"`
	AllowedOrigins []string `validate:"dive,required"`
}

// Addr returns host:port.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// TelemetryConfig holds anonymous usage reporting settings. Telemetry is opt-in.
type TelemetryConfig struct {
	Enabled  bool
	APIKey   string `validate:"required_if=Enabled true"`
	Endpoint string `validate:"omitempty,url"`
}

// GenerateConfig holds CLI generation settings.
type GenerateConfig struct {
	Delay time.Duration `validate:"min=0"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `validate:"oneof=debug info warn error"`
}

// LoadServerConfig reads server.* keys.
func LoadServerConfig() (ServerConfig, error) {
	cfg := ServerConfig{
		Host:           getStringWithDefault("server.host", DefaultServerHost),
		Port:           getIntWithDefault("server.port", DefaultServerPort),
		AllowedOrigins: DefaultAllowedOrigins,
	}
	if viper.IsSet("server.allowedOrigins") {
		cfg.AllowedOrigins = viper.GetStringSlice("server.allowedOrigins")
	}
	if err := validate.Struct(cfg); err != nil {
		return ServerConfig{}, formatError("server", err)
	}
	return cfg, nil
}

// LoadTelemetryConfig reads telemetry.* keys.
func LoadTelemetryConfig() (TelemetryConfig, error) {
	cfg := TelemetryConfig{
		Enabled:  getBoolWithDefault("telemetry.enabled", false),
		APIKey:   strings.TrimSpace(viper.GetString("telemetry.apiKey")),
		Endpoint: getStringWithDefault("telemetry.endpoint", DefaultTelemetryEndpoint),
	}
	if err := validate.Struct(cfg); err != nil {
		return TelemetryConfig{}, formatError("telemetry", err)
	}
	return cfg, nil
}

// LoadGenerateConfig reads generate.* keys.
func LoadGenerateConfig() (GenerateConfig, error) {
	cfg := GenerateConfig{
		Delay: getDurationWithDefault("generate.delay", DefaultGenerateDelay),
	}
	if err := validate.Struct(cfg); err != nil {
		return GenerateConfig{}, formatError("generate", err)
	}
	return cfg, nil
}

// LoadLogConfig reads log.* keys.
func LoadLogConfig() (LogConfig, error) {
	cfg := LogConfig{
		Level: strings.ToLower(getStringWithDefault("log.level", DefaultLogLevel)),
	}
	if err := validate.Struct(cfg); err != nil {
		return LogConfig{}, formatError("log", err)
	}
	return cfg, nil
}

// formatError turns validator errors into "section.field: rule" messages.
func formatError(section string, err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("invalid %s config: %w", section, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := section + "." + strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s: failed %s=%s (got %v)", field, fe.Tag(), fe.Param(), fe.Value()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s: failed %s (got %v)", field, fe.Tag(), fe.Value()))
		}
	}
	return fmt.Errorf("invalid %s config: %s", section, strings.Join(msgs, "; "))
}

// Helper functions for Viper with defaults

func getIntWithDefault(key string, defaultVal int) int {
	if viper.IsSet(key) {
		return viper.GetInt(key)
	}
	return defaultVal
}

func getBoolWithDefault(key string, defaultVal bool) bool {
	if viper.IsSet(key) {
		return viper.GetBool(key)
	}
	return defaultVal
}

func getStringWithDefault(key string, defaultVal string) string {
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultVal
}

func getDurationWithDefault(key string, defaultVal time.Duration) time.Duration {
	if viper.IsSet(key) {
		return viper.GetDuration(key)
	}
	return defaultVal
}
