package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/abdidvp/sclkraft/internal/domain"
	"gopkg.in/yaml.v3"
)

// FileName is the project config file looked up at the project root.
const FileName = ".sclkraft.yaml"

// YAMLLoader implements domain.ConfigLoader by reading .sclkraft.yaml.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads .sclkraft.yaml from projectPath.
// Returns DefaultConfig if the file does not exist.
func (l *YAMLLoader) Load(projectPath string) (domain.ProjectConfig, error) {
	data, err := os.ReadFile(filepath.Join(projectPath, FileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultConfig(), nil
		}
		return domain.ProjectConfig{}, err
	}

	var cfg domain.ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("parsing %s: %w", FileName, err)
	}

	if err := cfg.Validate(); err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("invalid %s: %w", FileName, err)
	}

	return mergeConfig(domain.DefaultConfig(), cfg), nil
}

// mergeConfig overlays explicit values on top of the defaults.
func mergeConfig(base, override domain.ProjectConfig) domain.ProjectConfig {
	result := override
	if len(override.Extensions) == 0 {
		result.Extensions = base.Extensions
	}
	return result
}

// Render serializes a config back to YAML.
func Render(cfg domain.ProjectConfig) ([]byte, error) {
	return yaml.Marshal(cfg)
}
