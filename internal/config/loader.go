package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LocalConfigPath is the working-directory config location.
const LocalConfigPath = "configs/dino.yaml"

// LoadDino loads Dino Runner configuration.
// Search order: customPath -> ~/.dinorun/configs/dino.yaml -> ./configs/dino.yaml -> embedded default
func LoadDino(customPath string) (DinoConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DinoConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := ParseDino(data)
		if err != nil {
			return DinoConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := UserConfigPath("dino.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := ParseDino(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(LocalConfigPath); err == nil {
		if cfg, err := ParseDino(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := ParseDino(defaultDinoYAML)
	if err != nil {
		return DefaultDinoConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// ParseDino decodes YAML on top of the hardcoded defaults, so a partial file
// only overrides the keys it names.
func ParseDino(data []byte) (DinoConfig, error) {
	cfg := DefaultDinoConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DinoConfig{}, err
	}
	if cfg.Variant == VariantClassic {
		ApplyClassicVariant(&cfg)
	}
	return cfg, nil
}

// UserConfigPath returns the path to a user config file, or empty if home is unavailable.
func UserConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".dinorun", "configs", filename)
}

// ResolvePath returns the file LoadDino would read for customPath, or empty
// when the embedded default would be used.
func ResolvePath(customPath string) string {
	if customPath != "" {
		return customPath
	}
	if p := UserConfigPath("dino.yaml"); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	if _, err := os.Stat(LocalConfigPath); err == nil {
		return LocalConfigPath
	}
	return ""
}
