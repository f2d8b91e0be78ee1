// CLAUDE:SUMMARY Service configuration: portal endpoint, scan bounds, optional archive path; yaml-loadable.
package bulletin

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hazyhaar/bulletin/fetch"
	"github.com/hazyhaar/bulletin/scan"
)

// DefaultBaseURL is the institution's report runner.
const DefaultBaseURL = "http://14.99.184.178:8080/birt/run"

// Config configures the bulletin service.
type Config struct {
	// Fetch settings for the report portal.
	Fetch fetch.Config `yaml:"fetch"`

	// Scan bounds and worker count.
	Scan scan.Config `yaml:"scan"`

	// DBPath is the optional run-archive database. Empty disables
	// archiving.
	DBPath string `yaml:"db_path"`
}

func (c *Config) defaults() {
	if c.Fetch.BaseURL == "" {
		c.Fetch.BaseURL = DefaultBaseURL
	}
}

func defaultConfig() *Config {
	c := &Config{}
	c.defaults()
	return c
}

// LoadConfig reads a YAML config file. Missing keys keep their
// defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.defaults()
	return &cfg, nil
}
