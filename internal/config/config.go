// Package config loads service and CLI settings from an optional YAML file
// and CREC_* environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	PatternsFile    string
	SpeakersFile    string
	SpeakersURL     string
	Port            string
	DocumentTimeout time.Duration
	Workers         int
	InputFormat     string
}

const (
	FormatText = "text"
	FormatHTML = "html"
)

// Load reads path (may be empty) and the environment. Environment variables
// win over the file: CREC_PATTERNS_FILE maps to patterns_file, and so on.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	v.SetDefault("patterns_file", "")
	v.SetDefault("speakers_file", "")
	v.SetDefault("speakers_url", "")
	v.SetDefault("port", "8080")
	v.SetDefault("document_timeout", "40s")
	v.SetDefault("workers", 4)
	v.SetDefault("input_format", FormatText)

	v.SetEnvPrefix("CREC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := Config{
		PatternsFile:    v.GetString("patterns_file"),
		SpeakersFile:    v.GetString("speakers_file"),
		SpeakersURL:     v.GetString("speakers_url"),
		Port:            v.GetString("port"),
		DocumentTimeout: v.GetDuration("document_timeout"),
		Workers:         v.GetInt("workers"),
		InputFormat:     strings.ToLower(v.GetString("input_format")),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.InputFormat != FormatText && c.InputFormat != FormatHTML {
		return fmt.Errorf("input_format must be %q or %q, got %q", FormatText, FormatHTML, c.InputFormat)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.DocumentTimeout <= 0 {
		return fmt.Errorf("document_timeout must be positive")
	}
	return nil
}
