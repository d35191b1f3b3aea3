// Package config reads the backend configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

var ErrAPIURLMissing = errors.New("environment variable API_URL must be set")

type Config struct {
	APIURL           *url.URL
	GinMode          string
	LogFormat        string // "human" or "json". Empty selects based on GinMode
	CorsAllowOrigins []string
	EnablePprof      bool
	DataDir          string
	DatabaseFile     string
	Port             int
	CatchUpOnStart   bool          // Run the recurring rule catch-up once when the backend starts
	CatchUpInterval  time.Duration // Run the catch-up periodically. 0 disables it
}

// DatabasePath returns the path of the sqlite database file.
func (c Config) DatabasePath() string {
	return filepath.Join(c.DataDir, c.DatabaseFile)
}

// HumanLogs reports if logs should be written in a human readable format.
func (c Config) HumanLogs() bool {
	return c.LogFormat == "human" || (c.LogFormat == "" && c.GinMode == "debug")
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("DATA_DIR", "data")
	v.SetDefault("DATABASE_FILE", "gorm.db")
	v.SetDefault("PORT", 8080)
	v.SetDefault("CATCH_UP_ON_START", true)
	v.SetDefault("CATCH_UP_INTERVAL", "0s")

	return v
}

// Load reads the configuration from environment variables.
func Load() (Config, error) {
	v := newViper()

	raw := v.GetString("API_URL")
	if raw == "" {
		return Config{}, ErrAPIURLMissing
	}

	apiURL, err := url.Parse(raw)
	if err != nil {
		return Config{}, fmt.Errorf("environment variable API_URL must be a valid URL: %w", err)
	}

	interval, err := time.ParseDuration(v.GetString("CATCH_UP_INTERVAL"))
	if err != nil {
		return Config{}, fmt.Errorf("environment variable CATCH_UP_INTERVAL must be a duration: %w", err)
	}

	return Config{
		APIURL:           apiURL,
		GinMode:          v.GetString("GIN_MODE"),
		LogFormat:        v.GetString("LOG_FORMAT"),
		CorsAllowOrigins: strings.Fields(v.GetString("CORS_ALLOW_ORIGINS")),
		EnablePprof:      v.GetBool("ENABLE_PPROF"),
		DataDir:          v.GetString("DATA_DIR"),
		DatabaseFile:     v.GetString("DATABASE_FILE"),
		Port:             v.GetInt("PORT"),
		CatchUpOnStart:   v.GetBool("CATCH_UP_ON_START"),
		CatchUpInterval:  interval,
	}, nil
}
