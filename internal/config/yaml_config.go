package config

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultCategories are seeded when no config file lists any.
var DefaultCategories = []string{
	"Work",
	"Personal",
	"Reading",
	"Tools",
	"Entertainment",
	"Other",
}

// YAMLConfig represents the structure of the optional config.yaml file.
type YAMLConfig struct {
	Categories []string `yaml:"categories"`
}

// LoadYAMLConfig loads the YAML configuration file at path.
// Returns nil without error if the config file doesn't exist.
func LoadYAMLConfig(path string) (*YAMLConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Config file is optional
			return nil, nil
		}
		return nil, err
	}

	var cfg YAMLConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// SeedCategories returns the category names to seed, trimmed and de-duplicated.
// Falls back to DefaultCategories when the file is absent or lists none.
func (c *YAMLConfig) SeedCategories() []string {
	if c == nil || len(c.Categories) == 0 {
		return DefaultCategories
	}

	seen := make(map[string]bool, len(c.Categories))
	var names []string
	for _, n := range c.Categories {
		n = strings.TrimSpace(n)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		names = append(names, n)
	}
	if len(names) == 0 {
		return DefaultCategories
	}
	return names
}
