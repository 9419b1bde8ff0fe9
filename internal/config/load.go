package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables read after the config file.
const (
	EnvConfig     = "CUBEVIEW_CONFIG"
	EnvLogLevel   = "CUBEVIEW_LOG_LEVEL"
	EnvLogFile    = "CUBEVIEW_LOG_FILE"
	EnvSpeed      = "CUBEVIEW_AUTO_ROTATE_SPEED"
	EnvFullscreen = "CUBEVIEW_FULLSCREEN"
)

// envFile is loaded into the process environment when present.
var envFile = ".env"

// Load loads configuration with priority: defaults < file < environment < flags.
func Load() (*Config, error) {
	if err := loadEnvFile(envFile); err != nil {
		return nil, fmt.Errorf("loading %s: %w", envFile, err)
	}

	// Start with defaults
	cfg := Default()

	// Explicit path takes priority over the search locations
	configPath := ConfigPath()
	if configPath == "" {
		configPath = os.Getenv(EnvConfig)
	}
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	// Apply CLI flags (highest priority)
	applyFlags(cfg)

	return cfg, nil
}

// loadEnvFile populates the environment from a dotenv file. A missing file
// is not an error; variables already set win over the file.
func loadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// applyEnv applies CUBEVIEW_* overrides.
func applyEnv(cfg *Config) error {
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		cfg.Logging.LogFile = v
	}
	if v := os.Getenv(EnvSpeed); v != "" {
		speed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSpeed, err)
		}
		cfg.Viewer.AutoRotateSpeed = speed
	}
	if v := os.Getenv(EnvFullscreen); v != "" {
		full, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvFullscreen, err)
		}
		cfg.Window.Fullscreen = full
	}
	return nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "CubeView")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "CubeView")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "cubeview")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "cubeview")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
// Relative face image paths are resolved against the file's directory.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return err
	}
	dir := filepath.Dir(path)
	for i, f := range cfg.Viewer.Faces {
		if f.Image != "" && !filepath.IsAbs(f.Image) {
			cfg.Viewer.Faces[i].Image = filepath.Join(dir, f.Image)
		}
	}
	return nil
}
