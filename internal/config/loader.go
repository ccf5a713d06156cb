package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const crusherFile = "crusher.yaml"

// LoadCrusher loads the crusher configuration.
// Search order: customPath -> ~/.crusher/configs/crusher.yaml -> ./configs/crusher.yaml -> embedded default.
// Files are layered over the defaults, so a partial file only overrides the keys it names.
func LoadCrusher(customPath string) (CrusherConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultCrusherConfig(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseCrusher(data)
		if err != nil {
			return DefaultCrusherConfig(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(crusherFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseCrusher(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", crusherFile)); err == nil {
		if cfg, err := parseCrusher(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parseCrusher(defaultCrusherYAML)
	if err != nil {
		return DefaultCrusherConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parseCrusher decodes data over the hardcoded defaults and validates the result.
func parseCrusher(data []byte) (CrusherConfig, error) {
	cfg := DefaultCrusherConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects values the game cannot run with.
func (c CrusherConfig) Validate() error {
	if c.Arena.FailLineRatio <= 0 || c.Arena.FailLineRatio >= 1 {
		return fmt.Errorf("arena.fail_line_ratio must be in (0, 1), got %v", c.Arena.FailLineRatio)
	}
	if c.Arena.SpawnAttempts < 1 {
		return fmt.Errorf("arena.spawn_attempts must be positive, got %d", c.Arena.SpawnAttempts)
	}
	if c.Physics.LetterMass <= 0 || c.Physics.PenaltyMass <= 0 {
		return fmt.Errorf("physics masses must be positive")
	}
	if c.Combo.Cap < 1 {
		return fmt.Errorf("combo.cap must be positive, got %d", c.Combo.Cap)
	}
	for name, p := range c.Difficulties {
		if !name.Valid() {
			return fmt.Errorf("unknown difficulty %q", name)
		}
		if p.AwakeningThreshold < 1 {
			return fmt.Errorf("difficulties.%s.awakening_threshold must be at least 1", name)
		}
	}
	return nil
}

// WriteDefault writes the embedded default config to path, creating parent
// directories. An existing file is left untouched.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config %s already exists", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	if err := os.WriteFile(path, defaultCrusherYAML, 0o644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}

// UserConfigFile returns ~/.crusher/configs/crusher.yaml, or empty if home is unavailable.
func UserConfigFile() string {
	return userConfigPath(crusherFile)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".crusher", "configs", filename)
}
