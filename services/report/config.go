package report

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileConfig is the launchpadctl config file. Flags override file values.
type FileConfig struct {
	APIBaseURL string `yaml:"api_base_url"`
	Bucket     string `yaml:"bucket"`
	DBDSN      string `yaml:"db_dsn"`
	Token      string `yaml:"token"`
}

// LoadFile reads a yaml config file. A missing path yields a zero config.
func LoadFile(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return FileConfig{}, fmt.Errorf("read config: %w", err)
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
