// Package config loads the backend configuration file used by the CLI.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gitter-badger/quark/pkg/connector"
	"github.com/gitter-badger/quark/pkg/dbcapabilities"
)

// Backend describes one configured database endpoint.
type Backend struct {
	Type     string `yaml:"type"`
	URL      string `yaml:"url"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// Config is the top-level configuration file: named backends.
type Config struct {
	Backends map[string]Backend `yaml:"backends"`
}

// Load reads and validates the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates configuration data.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every configured backend before any connection attempt.
func (c *Config) Validate() error {
	if len(c.Backends) == 0 {
		return fmt.Errorf("%w: no backends configured", connector.ErrInvalidConfiguration)
	}
	for name, b := range c.Backends {
		id, ok := dbcapabilities.ParseID(b.Type)
		if !ok {
			return fmt.Errorf("backend %q: %w: unknown backend type %q",
				name, connector.ErrInvalidConfiguration, b.Type)
		}
		ep := connector.Endpoint{URL: b.URL, Username: b.Username, Password: b.Password}
		if err := ep.Validate(id); err != nil {
			return fmt.Errorf("backend %q: %w", name, err)
		}
	}
	return nil
}

// Backend returns the named backend.
func (c *Config) Backend(name string) (Backend, error) {
	b, ok := c.Backends[name]
	if !ok {
		return Backend{}, fmt.Errorf("%w: backend %q not configured",
			connector.ErrInvalidConfiguration, name)
	}
	return b, nil
}

// Endpoint builds the connector endpoint for a backend.
func (b Backend) Endpoint() connector.Endpoint {
	return connector.Endpoint{URL: b.URL, Username: b.Username, Password: b.Password}
}
