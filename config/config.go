package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	LogLevel int `yaml:"log_level"`

	Server     ServerConfig     `yaml:"server"`
	SoundCloud SoundCloudConfig `yaml:"soundcloud"`
}

type ServerConfig struct {
	Port string `yaml:"port"`

	// MaxInFlight bounds concurrent extractions.
	MaxInFlight int `yaml:"max_in_flight"`
}

type SoundCloudConfig struct {
	ClientID string `yaml:"client_id"`
}

func Load(path string) (*Config, error) {
	config := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		// A missing config file is fine; everything has a default or
		// an environment override.
		if !os.IsNotExist(err) {
			return nil, err
		}
	} else {
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, err
		}
	}

	// Set defaults if not provided
	if config.Server.Port == "" {
		config.Server.Port = "4001"
	}

	if config.Server.MaxInFlight <= 0 {
		config.Server.MaxInFlight = 4
	}

	// Environment overrides
	if port := os.Getenv("PORT"); port != "" {
		if _, err := strconv.Atoi(port); err == nil {
			config.Server.Port = port
		}
	}

	if clientID := os.Getenv("SOUNDCLOUD_CLIENT_ID"); clientID != "" {
		config.SoundCloud.ClientID = clientID
	}

	return config, nil
}
