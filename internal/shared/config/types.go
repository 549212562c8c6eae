// Package config defines the typed configuration structures shared across
// the application. Values are loaded by internal/infrastructure/config.
package config

import "fmt"

type ServerConfig struct {
	Host    string `mapstructure:"host"`
	Port    int    `mapstructure:"port"`
	Mode    string `mapstructure:"mode"`
	BaseURL string `mapstructure:"base_url"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type AuthConfig struct {
	// JWTSecret signs admin bearer tokens (HS256).
	JWTSecret string `mapstructure:"jwt_secret"`
}

// PaymentConfig carries orchestration-level settings. Gateway credentials
// live in the provider registry rows, not here.
type PaymentConfig struct {
	// CallbackBaseURL is the externally reachable base URL gateways redirect
	// back to after the customer completes payment.
	CallbackBaseURL string `mapstructure:"callback_base_url"`
	// IntentTTLMinutes is how long a pending intent may sit before the
	// expiry scheduler cancels it.
	IntentTTLMinutes int `mapstructure:"intent_ttl_minutes"`
	// GatewayTimeoutSeconds bounds every outbound gateway HTTP call.
	GatewayTimeoutSeconds int `mapstructure:"gateway_timeout_seconds"`
}
