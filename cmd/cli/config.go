// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"fmt"
	"strings"

	"ai-search-launcher/internal/config"
	"ai-search-launcher/internal/logger"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// configCmd is the parent command for all configuration-related subcommands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage launcher configuration",
	Long: `Provides subcommands to inspect and change the launcher configuration:
the container runtime, the Python interpreter and how prompts are shown.`,
}

func saveConfig(c config.Config) error {
	var err error
	if flagConfig != "" {
		err = config.SaveTo(flagConfig, c)
	} else {
		err = config.SaveConfig(c)
	}
	if err != nil {
		logger.Error("Saving configuration failed", "error", err)
		return fmt.Errorf("error saving configuration: %w", err)
	}
	logger.Info("Configuration saved", "runtime", c.ContainerRuntime, "python", c.Python, "prompt_style", c.PromptStyle)
	return nil
}

func configPath() string {
	if flagConfig != "" {
		return flagConfig
	}
	p, err := config.DefaultConfigPath()
	if err != nil {
		return "(unknown)"
	}
	return p
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		dimColor.Printf("# %s\n", configPath())
		fmt.Print(string(data))
		return nil
	},
}

// Runtime configuration commands
var configSetRuntimeCmd = &cobra.Command{
	Use:   "set-runtime <runtime>",
	Short: "Set the container runtime (docker or podman)",
	Long: `Sets the container engine used by 'launcher docker'.
Valid values are 'docker' or 'podman'.

Examples:
  launcher config set-runtime docker    # Use Docker (default)
  launcher config set-runtime podman    # Use Podman`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{config.RuntimeDocker, config.RuntimePodman},
	RunE: func(cmd *cobra.Command, args []string) error {
		c := cfg
		c.ContainerRuntime = strings.ToLower(args[0])
		if err := saveConfig(c); err != nil {
			return err
		}
		successColor.Printf("Container runtime set to: %s\n", c.ContainerRuntime)
		return nil
	},
}

var configGetRuntimeCmd = &cobra.Command{
	Use:   "get-runtime",
	Short: "Show the configured container runtime",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Current container runtime: %s\n", identifierColor.Sprint(cfg.ContainerRuntime))
		fmt.Printf("Commands will use: %s build / %s run\n", cfg.ContainerRuntime, cfg.ContainerRuntime)
	},
}

var configSetPythonCmd = &cobra.Command{
	Use:   "set-python <interpreter>",
	Short: "Set the Python interpreter used by 'launcher local'",
	Long: `Sets the interpreter used for import checks, pip installs and streamlit.
A path starting with '~/' is expanded.`,
	Example: "  launcher config set-python ~/.venvs/search/bin/python",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		python, err := config.ResolvePath(args[0])
		if err != nil {
			return err
		}
		c := cfg
		c.Python = python
		if err := saveConfig(c); err != nil {
			return err
		}
		successColor.Printf("Python interpreter set to: %s\n", python)
		return nil
	},
}

var configSetPromptStyleCmd = &cobra.Command{
	Use:       "set-prompt-style <tui|plain>",
	Short:     "Choose terminal dialogs or plain y/n line prompts",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{config.PromptStyleTUI, config.PromptStylePlain},
	RunE: func(cmd *cobra.Command, args []string) error {
		c := cfg
		c.PromptStyle = strings.ToLower(args[0])
		if err := saveConfig(c); err != nil {
			return err
		}
		successColor.Printf("Prompt style set to: %s\n", c.PromptStyle)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetRuntimeCmd)
	configCmd.AddCommand(configGetRuntimeCmd)
	configCmd.AddCommand(configSetPythonCmd)
	configCmd.AddCommand(configSetPromptStyleCmd)
}
