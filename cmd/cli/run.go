// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"fmt"
	"os"
	"time"

	"ai-search-launcher/internal/config"
	"ai-search-launcher/internal/containerrun"
	"ai-search-launcher/internal/localrun"
	"ai-search-launcher/internal/web"

	"github.com/spf13/cobra"
)

var (
	flagEngine      string
	flagPython      string
	flagLaunchDelay time.Duration
	flagServePort   int
	flagServeAddr   string
)

var dockerCmd = &cobra.Command{
	Use:     "docker",
	Aliases: []string{"container"},
	Short:   "Build the application image and run it with the container engine",
	Long: `Checks the container engine, lists existing images, builds the image from the
project root and runs it with port 8501 published. If the build fails and the
project has no Dockerfile, a minimal Streamlit Dockerfile is written and the
build is retried once. Cleanup commands are printed at the end.`,
	Example: "  launcher docker\n  launcher docker --engine podman",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := cfg
		if flagEngine != "" {
			c.ContainerRuntime = flagEngine
			if err := c.Validate(); err != nil {
				return err
			}
		}
		r := &containerrun.Runner{
			Exec: newExecutor(),
			FS:   workFS(),
			Out:  os.Stdout,
			Opts: containerrun.OptionsFrom(c, workdir),
		}
		return r.Run(cmd.Context())
	},
}

var localCmd = &cobra.Command{
	Use:   "local",
	Short: "Install missing Python dependencies and start the Streamlit UI",
	Long: `Requires an 'app' directory in the project root. Checks that the application's
Python modules import, offers to install the missing ones (PyTorch is tried
from the CPU-only wheel index, then the default index, then a pinned version),
and starts the UI on http://localhost:8501. If installation fails a simplified
keyword search page can be started instead.`,
	Example: "  launcher local\n  launcher local --yes --python .venv/bin/python",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := cfg
		if flagPython != "" {
			c.Python = flagPython
		}
		if cmd.Flags().Changed("launch-delay") {
			c.LaunchDelay = &flagLaunchDelay
		}
		r := &localrun.Runner{
			Exec:   newExecutor(),
			FS:     workFS(),
			Out:    os.Stdout,
			Prompt: newPrompter(),
			Opts:   localrun.OptionsFrom(c, workdir),
		}
		return r.Run(cmd.Context())
	},
}

var serveFallbackCmd = &cobra.Command{
	Use:   "serve-fallback",
	Short: "Serve the keyword search fallback page without Python",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		port := flagServePort
		if port == 0 {
			port = cfg.Port
		}
		addr := fmt.Sprintf("%s:%d", flagServeAddr, port)
		statusColor.Printf("Serving keyword search on http://%s (Ctrl+C to stop)\n", addr)
		if err := web.Serve(cmd.Context(), addr); err != nil {
			return err
		}
		statusColor.Println("\n👋 Fallback server stopped")
		return nil
	},
}

func init() {
	dockerCmd.Flags().StringVar(&flagEngine, "engine", "", fmt.Sprintf("container engine (%s or %s), overrides config", config.RuntimeDocker, config.RuntimePodman))
	_ = dockerCmd.RegisterFlagCompletionFunc("engine", cobra.FixedCompletions(
		[]string{config.RuntimeDocker, config.RuntimePodman}, cobra.ShellCompDirectiveNoFileComp))

	localCmd.Flags().StringVar(&flagPython, "python", "", "Python interpreter, overrides config")
	localCmd.Flags().DurationVar(&flagLaunchDelay, "launch-delay", 2*time.Second, "pause before the UI starts")

	serveFallbackCmd.Flags().IntVarP(&flagServePort, "port", "p", 0, "port to listen on (0 uses the configured port)")
	serveFallbackCmd.Flags().StringVar(&flagServeAddr, "address", "localhost", "address to bind")
}
