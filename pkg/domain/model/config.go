package model

import "time"

// Config represents the CLI configuration file
type Config struct {
	ServerURL string `yaml:"server_url,omitempty"`
	Token     string `yaml:"token,omitempty"`
	IconURL   string `yaml:"icon_url,omitempty"`
	Timeout   string `yaml:"timeout,omitempty"` // Go duration format, e.g. "10s"
}

// GetTimeout parses Timeout. Zero means no timeout.
func (c *Config) GetTimeout() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	return time.ParseDuration(c.Timeout)
}
