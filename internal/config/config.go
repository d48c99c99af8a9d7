// Package config loads the backend configuration. Values can be set in an
// optional yaml file or through TRIZ_* environment variables, with the
// environment taking precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the backend.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Cloudinary CloudinaryConfig `mapstructure:"cloudinary"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Address          string   `mapstructure:"address"`
	CORSAllowOrigins []string `mapstructure:"corsAllowOrigins"` // Origin globs allowed for CORS, empty disables CORS
	EnablePprof      bool     `mapstructure:"enablePprof"`
}

// DatabaseConfig contains database settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path"` // Path of the SQLite database file
}

// CloudinaryConfig contains the credentials for the avatar media host.
// Avatar upload endpoints are disabled when the credentials are unset.
type CloudinaryConfig struct {
	CloudName string `mapstructure:"cloudName"`
	APIKey    string `mapstructure:"apiKey"`
	APISecret string `mapstructure:"apiSecret"`
}

// ConfigPaths defines the paths to look for a config file.
var ConfigPaths = []string{
	".",
	"./configs",
}

// Load reads the configuration from file and environment.
func Load() (Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	for _, path := range ConfigPaths {
		v.AddConfigPath(path)
	}

	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.corsAllowOrigins", []string{})
	v.SetDefault("server.enablePprof", false)
	v.SetDefault("database.path", "data/finance.db")
	v.SetDefault("cloudinary.cloudName", "")
	v.SetDefault("cloudinary.apiKey", "")
	v.SetDefault("cloudinary.apiSecret", "")

	// The config file is optional, the environment alone is enough
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("TRIZ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("unable to decode config: %w", err)
	}

	return config, nil
}
