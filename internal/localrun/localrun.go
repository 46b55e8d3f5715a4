// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package localrun implements the local runner: check the app directory,
// probe Python dependencies, install the missing ones with consent, and
// launch the Streamlit UI in the foreground. When installation fails the
// operator may run a keyword-search fallback page instead.
package localrun

import (
	"context"
	"fmt"
	"io"
	"path"
	"strconv"
	"time"

	"ai-search-launcher/internal/config"
	"ai-search-launcher/internal/console"
	"ai-search-launcher/internal/deps"
	"ai-search-launcher/internal/fallback"
	"ai-search-launcher/internal/logger"
	"ai-search-launcher/internal/prompt"
	"ai-search-launcher/internal/runner"

	"github.com/spf13/afero"
)

// EntryPoint is the application script inside the app directory.
const EntryPoint = "main.py"

// Options configures the local runner.
type Options struct {
	Python      string
	AppDir      string // relative to Dir
	Port        int
	LaunchDelay time.Duration
	Dir         string // working directory for spawned processes; empty means current
}

// OptionsFrom derives runner options from the launcher config.
func OptionsFrom(cfg config.Config, dir string) Options {
	return Options{
		Python:      cfg.Python,
		AppDir:      cfg.AppDir,
		Port:        cfg.Port,
		LaunchDelay: cfg.Delay(),
		Dir:         dir,
	}
}

func (o Options) streamlit(name, script string, flags ...string) runner.CommandStep {
	args := append([]string{"-m", "streamlit", "run", script}, flags...)
	return runner.CommandStep{Name: name, Command: o.Python, Args: args, Dir: o.Dir}
}

// LaunchStep starts the full application.
func (o Options) LaunchStep() runner.CommandStep {
	return o.streamlit("Run AI Semantic Search", path.Join(o.AppDir, EntryPoint),
		"--server.port="+strconv.Itoa(o.Port),
		"--server.address=localhost",
		"--theme.base=light",
		"--server.fileWatcherType=none",
		"--browser.serverAddress=localhost",
	)
}

// FallbackStep starts the simplified page at script.
func (o Options) FallbackStep(script string) runner.CommandStep {
	return o.streamlit("Run simplified search", script, "--server.port="+strconv.Itoa(o.Port))
}

// Runner drives the local runner stages.
type Runner struct {
	Exec         runner.Executor
	FS           afero.Fs // rooted at Opts.Dir
	Out          io.Writer
	Prompt       prompt.Prompter
	Opts         Options
	Requirements []deps.Requirement
}

// Run executes the stages in order. It returns a *runner.ExitError when the
// app directory is missing, consent is declined, or the fallback page ran.
// A Ctrl+C between stages ends the run without an error.
func (r *Runner) Run(ctx context.Context) error {
	console.Banner(r.Out, "🤖 AI SEMANTIC SEARCH ENGINE - LOCAL RUNNER")

	if err := r.preflight(); err != nil {
		return err
	}

	missing := deps.Probe(ctx, r.Exec, r.Out, r.Opts.Python, r.requirements())
	if r.interrupted(ctx) {
		return nil
	}
	if len(missing) > 0 {
		if err := r.installMissing(ctx, missing); err != nil {
			return err
		}
		if r.interrupted(ctx) {
			return nil
		}
	}

	r.launch(ctx)
	return nil
}

// interrupted reports a stop requested between stages.
func (r *Runner) interrupted(ctx context.Context) bool {
	if ctx.Err() == nil {
		return false
	}
	console.StatusColor.Fprintln(r.Out, "\n👋 Application stopped by user")
	logger.Info("Local runner interrupted", "cause", ctx.Err())
	return true
}

func (r *Runner) requirements() []deps.Requirement {
	if r.Requirements != nil {
		return r.Requirements
	}
	return deps.DefaultRequirements
}

func (r *Runner) preflight() error {
	ok, err := afero.DirExists(r.FS, r.Opts.AppDir)
	if err == nil && ok {
		return nil
	}
	console.ErrorColor.Fprintf(r.Out, "❌ Error: '%s' directory not found\n", r.Opts.AppDir)
	fmt.Fprintln(r.Out, "💡 Please run this command from the project root directory")
	logger.Error("App directory missing", "app_dir", r.Opts.AppDir, "error", err)
	r.Prompt.Acknowledge("Press Enter to exit...")
	return runner.Fatal(fmt.Sprintf("'%s' directory not found", r.Opts.AppDir))
}

func (r *Runner) installMissing(ctx context.Context, missing []string) error {
	console.StepColor.Fprintf(r.Out, "\n⚠️  Found %d missing dependencies\n", len(missing))
	if !r.Prompt.Confirm("Do you want to install them?") {
		console.ErrorColor.Fprintln(r.Out, "❌ Cannot run without required dependencies")
		return runner.Fatal("missing dependencies not installed")
	}

	if deps.Install(ctx, r.Exec, r.Out, r.Opts.Python, missing) {
		return nil
	}
	if ctx.Err() != nil {
		return nil
	}

	console.StepColor.Fprintln(r.Out, "\n⚠️  Some dependencies failed to install.")
	if r.Prompt.Confirm("Run simplified version instead?") {
		r.runFallback(ctx)
	}
	return runner.Fatal("dependency installation failed")
}

func (r *Runner) runFallback(ctx context.Context) {
	console.StepColor.Fprintln(r.Out, "\n⚠️  Creating simplified version...")
	script, err := fallback.Write(r.FS, r.Opts.AppDir)
	if err != nil {
		console.ErrorColor.Fprintf(r.Out, "❌ Error: %v\n", err)
		logger.Error("Could not write fallback page", "error", err)
		return
	}
	logger.Info("Wrote fallback page", "path", script)

	res := runner.RunForeground(ctx, r.Exec, r.Out, r.Opts.FallbackStep(script))
	if res.Interrupted {
		console.StatusColor.Fprintln(r.Out, "\n👋 Application stopped by user")
	} else if res.Err != nil {
		console.ErrorColor.Fprintf(r.Out, "❌ Error running application: %v\n", res.Err)
	}
}

func (r *Runner) launch(ctx context.Context) {
	fmt.Fprintln(r.Out)
	console.Banner(r.Out, "🚀 STARTING AI SEMANTIC SEARCH ENGINE")
	console.SuccessColor.Fprintf(r.Out, "\n📊 Open your browser and go to: http://localhost:%d\n", r.Opts.Port)
	fmt.Fprintln(r.Out, "🛑 Press Ctrl+C to stop the application")
	fmt.Fprintln(r.Out, "⏳ Starting server...")

	if !wait(ctx, r.Opts.LaunchDelay) {
		console.StatusColor.Fprintln(r.Out, "\n👋 Application stopped by user")
		return
	}

	res := runner.RunForeground(ctx, r.Exec, r.Out, r.Opts.LaunchStep())
	switch {
	case res.Interrupted:
		console.StatusColor.Fprintln(r.Out, "\n👋 Application stopped by user")
	case res.Err != nil:
		console.ErrorColor.Fprintf(r.Out, "❌ Error running application: %v\n", res.Err)
	case res.Code != 0:
		logger.Warn("Application exited non-zero", "code", res.Code)
	}
}

// wait pauses for d and reports false if ctx ends first.
func wait(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
