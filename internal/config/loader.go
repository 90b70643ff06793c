package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

const (
	appDir   = "blockdrop"
	fileName = "blocks.yaml"
)

// LoadBlocks loads the block engine configuration and validates it.
// Search order: customPath -> $XDG_CONFIG_HOME/blockdrop/blocks.yaml ->
// ~/.blockdrop/configs/blocks.yaml -> ./configs/blocks.yaml -> embedded default.
// Files are read on top of the defaults, so they only need the keys they change.
func LoadBlocks(customPath string) (BlocksConfig, error) {
	cfg, err := loadBlocks(customPath)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadBlocks(customPath string) (BlocksConfig, error) {
	// Try custom path first
	if customPath != "" {
		cfg := DefaultBlocksConfig()
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Then the user and local config directories; unreadable files are skipped
	for _, path := range searchPaths() {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		cfg := DefaultBlocksConfig()
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg := DefaultBlocksConfig()
	if err := yaml.Unmarshal(defaultBlocksYAML, &cfg); err != nil {
		return DefaultBlocksConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// searchPaths lists the candidate files after an explicit path, in order.
func searchPaths() []string {
	var paths []string
	if p, err := xdg.SearchConfigFile(filepath.Join(appDir, fileName)); err == nil {
		paths = append(paths, p)
	}
	if p := userConfigPath(fileName); p != "" {
		paths = append(paths, p)
	}
	return append(paths, filepath.Join("configs", fileName))
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, "."+appDir, "configs", filename)
}

// Marshal renders cfg as YAML.
func Marshal(cfg BlocksConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: cannot encode: %w", err)
	}
	return data, nil
}

// Save writes cfg to the user's XDG config directory, creating it if
// needed, and returns the file path.
func Save(cfg BlocksConfig) (string, error) {
	path, err := xdg.ConfigFile(filepath.Join(appDir, fileName))
	if err != nil {
		return "", fmt.Errorf("config: cannot resolve config path: %w", err)
	}
	data, err := Marshal(cfg)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("config: cannot write %s: %w", path, err)
	}
	return path, nil
}
