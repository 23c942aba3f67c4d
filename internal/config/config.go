// Package config loads and validates application configuration.
package config

// Config holds all application configuration.
// Settings are organized into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains all authentication settings.
type AuthConfig struct {
	// JWTSecret signs bearer tokens; it must be long enough for HMAC-SHA256.
	JWTSecret string `mapstructure:"jwt_secret" validate:"required,min=32"`

	// TokenLifetimeMinutes is the bearer token expiry window.
	TokenLifetimeMinutes int `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`

	// BcryptCost is the bcrypt work factor used when hashing passwords.
	BcryptCost int `mapstructure:"bcrypt_cost" validate:"required,gte=4,lte=31"`
}
