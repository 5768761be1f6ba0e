// Package config loads application settings from the process environment.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// DatabaseConfig holds database connection configuration.
type DatabaseConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	Name        string
	MinPoolSize int
	MaxPoolSize int
}

// DSN returns the database connection string.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.Host, c.Port, c.User, c.Password, c.Name)
}

// AuthConfig holds authentication and token signing configuration.
type AuthConfig struct {
	SecretKey          string
	Algorithm          string
	TokenExpireMinutes int
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Debug          bool
	AllowedOrigins []string
	APIPrefix      string
}

// Settings is the aggregate application configuration.
type Settings struct {
	Database DatabaseConfig
	Auth     AuthConfig
	App      AppConfig
}

// Load reads settings from environment variables, applying defaults for
// anything unset.
func Load() (*Settings, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("POSTGRES_HOST", "localhost")
	v.SetDefault("POSTGRES_PORT", 5432)
	v.SetDefault("POSTGRES_USER", "postgres")
	v.SetDefault("POSTGRES_PASSWORD", "postgres")
	v.SetDefault("POSTGRES_DB", "stack_radar")
	v.SetDefault("DB_MIN_POOL_SIZE", 5)
	v.SetDefault("DB_MAX_POOL_SIZE", 20)
	v.SetDefault("SECRET_KEY", "your-secret-key-change-in-production")
	v.SetDefault("JWT_ALGORITHM", "HS256")
	v.SetDefault("ACCESS_TOKEN_EXPIRE_MINUTES", 1440)
	v.SetDefault("DEBUG", false)
	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000")
	v.SetDefault("API_V1_PREFIX", "/api/v1")

	settings := &Settings{
		Database: DatabaseConfig{
			Host:        v.GetString("POSTGRES_HOST"),
			Port:        v.GetInt("POSTGRES_PORT"),
			User:        v.GetString("POSTGRES_USER"),
			Password:    v.GetString("POSTGRES_PASSWORD"),
			Name:        v.GetString("POSTGRES_DB"),
			MinPoolSize: v.GetInt("DB_MIN_POOL_SIZE"),
			MaxPoolSize: v.GetInt("DB_MAX_POOL_SIZE"),
		},
		Auth: AuthConfig{
			SecretKey:          v.GetString("SECRET_KEY"),
			Algorithm:          v.GetString("JWT_ALGORITHM"),
			TokenExpireMinutes: v.GetInt("ACCESS_TOKEN_EXPIRE_MINUTES"),
		},
		App: AppConfig{
			Debug:          v.GetBool("DEBUG"),
			AllowedOrigins: splitOrigins(v.GetString("ALLOWED_ORIGINS")),
			APIPrefix:      v.GetString("API_V1_PREFIX"),
		},
	}

	if settings.Database.MaxPoolSize < settings.Database.MinPoolSize {
		return nil, fmt.Errorf("DB_MAX_POOL_SIZE (%d) must be >= DB_MIN_POOL_SIZE (%d)",
			settings.Database.MaxPoolSize, settings.Database.MinPoolSize)
	}

	return settings, nil
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
