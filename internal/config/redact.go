package config

import (
	"fmt"

	"go.yaml.in/yaml/v3"
)

const redacted = "********"

// Redacted returns a copy of c with secrets masked.
func (c Config) Redacted() Config {
	if c.Database.Password != "" {
		c.Database.Password = redacted
	}
	if c.Install.AdminPassword != "" {
		c.Install.AdminPassword = redacted
	}
	c.Bundler.Command = append([]string(nil), c.Bundler.Command...)
	return c
}

// YAML renders the redacted configuration.
func (c Config) YAML() ([]byte, error) {
	out, err := yaml.Marshal(c.Redacted())
	if err != nil {
		return nil, fmt.Errorf("marshaling configuration: %w", err)
	}
	return out, nil
}
