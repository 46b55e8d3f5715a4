// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"ai-search-launcher/internal/config"
	"ai-search-launcher/internal/console"
	"ai-search-launcher/internal/logger"
	"ai-search-launcher/internal/prompt"
	"ai-search-launcher/internal/runner"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	statusColor     = console.StatusColor
	errorColor      = console.ErrorColor
	successColor    = console.SuccessColor
	identifierColor = console.IdentifierColor
	dimColor        = console.DimColor
)

var (
	flagYes            bool
	flagNonInteractive bool
	flagVerbose        bool
	flagWorkdir        string
	flagConfig         string

	// cfg is loaded once in PersistentPreRunE.
	cfg     config.Config
	workdir string
)

var rootCmd = &cobra.Command{
	Use:   "launcher",
	Short: "Launcher for the AI Semantic Search application",
	Long: `Builds and runs the AI Semantic Search application.

  launcher docker   build the image with the container engine and run it on port 8501
  launcher local    install missing Python dependencies and start the Streamlit UI

Settings are read from ~/.config/ai-search-launcher/config.yaml when present.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger.InitLogger(flagVerbose)

		var err error
		if flagConfig != "" {
			cfg, err = config.LoadFrom(flagConfig)
		} else {
			cfg, err = config.LoadConfig()
		}
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		workdir, err = filepath.Abs(flagWorkdir)
		if err != nil {
			return fmt.Errorf("failed to resolve working directory %s: %w", flagWorkdir, err)
		}
		logger.Info("Launcher started", "command", cmd.CommandPath(), "workdir", workdir)
		return nil
	},
}

// RunCLI executes the command tree. Ctrl+C cancels the command context, which
// the flows treat as a graceful stop.
func RunCLI() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err == nil {
		return
	}

	var exitErr *runner.ExitError
	if errors.As(err, &exitErr) {
		logger.Info("Exiting", "code", exitErr.Code, "reason", exitErr.Reason)
	} else {
		errorColor.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(exitCode(err))
}

// exitCode maps a command error to the process exit status. Flow errors
// carry their own code; anything else is 1.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *runner.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&flagYes, "yes", "y", false, "answer yes to every prompt")
	pf.BoolVar(&flagNonInteractive, "non-interactive", false, "answer no to every prompt")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "mirror debug logs to stderr")
	pf.StringVarP(&flagWorkdir, "workdir", "C", ".", "project root to run in")
	pf.StringVar(&flagConfig, "config", "", "config file (default ~/.config/ai-search-launcher/config.yaml)")
	rootCmd.MarkFlagsMutuallyExclusive("yes", "non-interactive")

	rootCmd.AddCommand(dockerCmd)
	rootCmd.AddCommand(localCmd)
	rootCmd.AddCommand(serveFallbackCmd)
	rootCmd.AddCommand(configCmd)
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// newExecutor returns the process executor for the flows.
func newExecutor() runner.Executor {
	return runner.NewLocalExecutor(isTerminal(os.Stderr))
}

// workFS is the project root as seen by the flows.
func workFS() afero.Fs {
	return afero.NewBasePathFs(afero.NewOsFs(), workdir)
}

func promptMode() prompt.Mode {
	switch {
	case flagYes:
		return prompt.AssumeYes
	case flagNonInteractive:
		return prompt.AssumeNo
	default:
		return prompt.Ask
	}
}

func newPrompter() prompt.Prompter {
	return prompt.Select(promptMode(), cfg.PromptStyle, isTerminal(os.Stdin), os.Stdin, os.Stdout)
}
