package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Session  SessionConfig  `mapstructure:"session"`
	JWT      JWTConfig      `mapstructure:"jwt"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

type DatabaseConfig struct {
	// Backend selects the persistence collaborator: "mongo" or
	// "memory" (local development, no external store).
	Backend string `mapstructure:"backend"`
	URI     string `mapstructure:"uri"`
	Name    string `mapstructure:"name"`
}

// SessionConfig selects the durable session slot backend.
type SessionConfig struct {
	// Backend: "file", "redis", or "memory".
	Backend   string `mapstructure:"backend"`
	FilePath  string `mapstructure:"file_path"`
	RedisAddr string `mapstructure:"redis_addr"`
}

// JWTConfig defines JWT specific configuration
type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Environment variables override the file, nested keys flattened:
	// session.redis_addr -> SESSION_REDIS_ADDR
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	viper.SetDefault("server.address", ":8080")
	viper.SetDefault("database.backend", "mongo")
	viper.SetDefault("database.uri", "mongodb://localhost:27017")
	viper.SetDefault("database.name", "fit_fusion")
	viper.SetDefault("session.backend", "file")
	viper.SetDefault("session.file_path", ".fitness_user.json")
	viper.SetDefault("session.redis_addr", "localhost:6379")
	viper.SetDefault("jwt.expiration", "1h")

	err = viper.ReadInConfig()
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		// No config file; defaults and env vars are enough.
		err = nil
	} else if err != nil {
		return
	}

	err = viper.Unmarshal(&config)
	return
}
