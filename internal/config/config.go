// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package config handles the launcher configuration file: the container
// runtime to drive, image and container names, the Python interpreter used
// for the local runner, and how consent prompts are shown.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	RuntimeDocker = "docker"
	RuntimePodman = "podman"

	PromptStyleTUI   = "tui"
	PromptStylePlain = "plain"
)

// Config represents the top-level launcher configuration.
type Config struct {
	// ContainerRuntime is the engine binary used by the docker runner.
	ContainerRuntime string `yaml:"container_runtime,omitempty"`

	// Image is the tag built and run by the docker runner.
	Image string `yaml:"image,omitempty"`

	// ContainerName is passed to `run --name`.
	ContainerName string `yaml:"container_name,omitempty"`

	// Port is published on the host and used by the web UI.
	Port int `yaml:"port,omitempty"`

	// Python is the interpreter used for import probes, pip and streamlit.
	Python string `yaml:"python,omitempty"`

	// AppDir is the application directory the local runner requires.
	AppDir string `yaml:"app_dir,omitempty"`

	// LaunchDelay is the pause before the web UI starts.
	LaunchDelay *time.Duration `yaml:"launch_delay,omitempty"`

	// PromptStyle selects "tui" or "plain" consent prompts on a terminal.
	PromptStyle string `yaml:"prompt_style,omitempty"`
}

// Default returns the built-in settings.
func Default() Config {
	delay := 2 * time.Second
	return Config{
		ContainerRuntime: RuntimeDocker,
		Image:            "ai-semantic-search",
		ContainerName:    "ai-search-app",
		Port:             8501,
		Python:           "python3",
		AppDir:           "app",
		LaunchDelay:      &delay,
		PromptStyle:      PromptStyleTUI,
	}
}

// withDefaults fills every unset field from Default.
func (c Config) withDefaults() Config {
	d := Default()
	if c.ContainerRuntime == "" {
		c.ContainerRuntime = d.ContainerRuntime
	}
	if c.Image == "" {
		c.Image = d.Image
	}
	if c.ContainerName == "" {
		c.ContainerName = d.ContainerName
	}
	if c.Port == 0 {
		c.Port = d.Port
	}
	if c.Python == "" {
		c.Python = d.Python
	}
	if c.AppDir == "" {
		c.AppDir = d.AppDir
	}
	if c.LaunchDelay == nil {
		c.LaunchDelay = d.LaunchDelay
	}
	if c.PromptStyle == "" {
		c.PromptStyle = d.PromptStyle
	}
	return c
}

// Delay returns the configured launch delay.
func (c Config) Delay() time.Duration {
	if c.LaunchDelay == nil {
		return 0
	}
	return *c.LaunchDelay
}

// Validate reports settings the launcher cannot work with.
func (c Config) Validate() error {
	switch c.ContainerRuntime {
	case RuntimeDocker, RuntimePodman:
	default:
		return fmt.Errorf("container runtime must be '%s' or '%s', got '%s'", RuntimeDocker, RuntimePodman, c.ContainerRuntime)
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	switch c.PromptStyle {
	case PromptStyleTUI, PromptStylePlain:
	default:
		return fmt.Errorf("prompt style must be '%s' or '%s', got '%s'", PromptStyleTUI, PromptStylePlain, c.PromptStyle)
	}
	if strings.TrimSpace(c.Python) == "" {
		return fmt.Errorf("python interpreter must not be empty")
	}
	return nil
}

func DefaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(configDir, "ai-search-launcher", "config.yaml"), nil
}

// LoadConfig reads the default config file. A missing file yields defaults.
func LoadConfig() (Config, error) {
	configPath, err := DefaultConfigPath()
	if err != nil {
		return Config{}, err
	}
	return LoadFrom(configPath)
}

// LoadFrom reads the config file at path and applies defaults.
func LoadFrom(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes YAML config data. source is only used in error messages.
func Parse(data []byte, source string) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file %s: %w", source, err)
	}
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config file %s: %w", source, err)
	}
	return cfg, nil
}

func EnsureConfigDir() error {
	configPath, err := DefaultConfigPath()
	if err != nil {
		return err
	}
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil { // rwxr-x---
		return fmt.Errorf("failed to create config directory %s: %w", configDir, err)
	}
	return nil
}

func SaveConfig(cfg Config) error {
	configPath, err := DefaultConfigPath()
	if err != nil {
		return err
	}
	if err := EnsureConfigDir(); err != nil {
		return err
	}
	return SaveTo(configPath, cfg)
}

// SaveTo validates cfg and writes it to path.
func SaveTo(path string, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}
	// rw-r-----
	if err := os.WriteFile(path, data, 0640); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}
	return nil
}

// ResolvePath expands a leading "~/" to the user's home directory.
func ResolvePath(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path, fmt.Errorf("could not get user home directory to resolve path '%s': %w", path, err)
	}

	return filepath.Join(homeDir, path[2:]), nil
}
