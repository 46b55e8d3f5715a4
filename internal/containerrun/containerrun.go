// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package containerrun implements the container runner: verify the engine,
// list images, build the application image (falling back to a generated
// Dockerfile once), run it in the foreground and print cleanup commands.
package containerrun

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"ai-search-launcher/internal/config"
	"ai-search-launcher/internal/console"
	"ai-search-launcher/internal/logger"
	"ai-search-launcher/internal/runner"

	"github.com/spf13/afero"
)

const (
	// DockerfileName is the build recipe looked up in the build context.
	DockerfileName = "Dockerfile"

	installURL = "https://www.docker.com/products/docker-desktop/"
)

// Options names what the runner builds and runs.
type Options struct {
	Engine    string // container engine binary, docker or podman
	Image     string
	Container string
	Port      int
	Dir       string // build context; empty means the current directory
}

// OptionsFrom derives runner options from the launcher config.
func OptionsFrom(cfg config.Config, dir string) Options {
	return Options{
		Engine:    cfg.ContainerRuntime,
		Image:     cfg.Image,
		Container: cfg.ContainerName,
		Port:      cfg.Port,
		Dir:       dir,
	}
}

func (o Options) step(name string, args ...string) runner.CommandStep {
	return runner.CommandStep{Name: name, Command: o.Engine, Args: args, Dir: o.Dir}
}

// VersionStep checks that the engine binary runs.
func (o Options) VersionStep() runner.CommandStep {
	return o.step(fmt.Sprintf("Check %s version", o.engineTitle()), "--version")
}

// ImagesStep lists the images the engine already has.
func (o Options) ImagesStep() runner.CommandStep {
	return o.step(fmt.Sprintf("List %s images", o.engineTitle()), "images")
}

// BuildStep builds the image from the project root; name labels the attempt.
func (o Options) BuildStep(name string) runner.CommandStep {
	return o.step(name, "build", "-t", o.Image, ".")
}

// RunStep runs the container with Port published on the same host port.
func (o Options) RunStep() runner.CommandStep {
	mapping := strconv.Itoa(o.Port) + ":" + strconv.Itoa(o.Port)
	return o.step(fmt.Sprintf("Run %s container", o.engineTitle()), "run", "-p", mapping, "--name", o.Container, o.Image)
}

// CleanupCommands lists the manual commands that stop and remove what Run created.
func (o Options) CleanupCommands() []string {
	return []string{
		fmt.Sprintf("%s stop %s", o.Engine, o.Container),
		fmt.Sprintf("%s rm %s", o.Engine, o.Container),
		fmt.Sprintf("%s rmi %s", o.Engine, o.Image),
	}
}

func (o Options) engineTitle() string {
	if o.Engine == "" {
		return ""
	}
	return strings.ToUpper(o.Engine[:1]) + o.Engine[1:]
}

// DefaultDockerfile is the minimal Streamlit recipe written when the first
// build fails and the build context has no Dockerfile.
func DefaultDockerfile(port int) string {
	return fmt.Sprintf(`FROM python:3.9-slim
WORKDIR /app
COPY . .
RUN pip install streamlit
CMD ["streamlit", "run", "app/main.py", "--server.port=%d", "--server.address=0.0.0.0"]
`, port)
}

// Runner drives the five container stages.
type Runner struct {
	Exec runner.Executor
	FS   afero.Fs // rooted at Opts.Dir
	Out  io.Writer
	Opts Options
}

// Run executes every stage in order. The only error it returns is a
// *runner.ExitError when the engine is unavailable; build and run failures
// are reported and fall through to the cleanup hints, as does a Ctrl+C
// between stages.
func (r *Runner) Run(ctx context.Context) error {
	console.Section(r.Out, "AI SEMANTIC SEARCH - CONTAINER RUNNER")
	fmt.Fprintf(r.Out, "Engine: %s\n", console.IdentifierColor.Sprint(r.Opts.Engine))
	fmt.Fprintf(r.Out, "Image:  %s\n", console.IdentifierColor.Sprint(r.Opts.Image))

	if err := r.verifyEngine(ctx); err != nil {
		return err
	}
	if !r.interrupted(ctx) {
		r.buildAndRun(ctx)
	}

	r.cleanupHints()
	return nil
}

func (r *Runner) buildAndRun(ctx context.Context) {
	r.inventory(ctx)
	if r.interrupted(ctx) {
		return
	}
	if !r.build(ctx) {
		if !r.interrupted(ctx) {
			logger.Warn("Skipping run stage, image was not built", "image", r.Opts.Image)
		}
		return
	}
	r.run(ctx)
}

// interrupted reports a stop requested between stages.
func (r *Runner) interrupted(ctx context.Context) bool {
	if ctx.Err() == nil {
		return false
	}
	console.StatusColor.Fprintln(r.Out, "\n🛑 Container stopped by user")
	logger.Info("Container runner interrupted", "cause", ctx.Err())
	return true
}

func (r *Runner) verifyEngine(ctx context.Context) error {
	console.Section(r.Out, fmt.Sprintf("1. VERIFY %s INSTALLATION", strings.ToUpper(r.Opts.Engine)))
	if runner.Run(ctx, r.Exec, r.Out, r.Opts.VersionStep()) || ctx.Err() != nil {
		return nil
	}

	console.ErrorColor.Fprintf(r.Out, "\n❌ %s is not installed or not in PATH\n", r.Opts.engineTitle())
	if r.Opts.Engine == config.RuntimeDocker {
		fmt.Fprintf(r.Out, "Please install Docker Desktop from: %s\n", installURL)
	} else {
		fmt.Fprintf(r.Out, "Please install %s and make sure it is on your PATH\n", r.Opts.Engine)
	}
	logger.Error("Container engine unavailable", "engine", r.Opts.Engine)
	return runner.Fatal(fmt.Sprintf("%s not available", r.Opts.Engine))
}

// inventory is informational only.
func (r *Runner) inventory(ctx context.Context) {
	console.Section(r.Out, fmt.Sprintf("2. CHECK EXISTING %s IMAGES", strings.ToUpper(r.Opts.Engine)))
	if !runner.Run(ctx, r.Exec, r.Out, r.Opts.ImagesStep()) {
		logger.Warn("Listing images failed, continuing", "engine", r.Opts.Engine)
	}
}

func (r *Runner) build(ctx context.Context) bool {
	console.Section(r.Out, fmt.Sprintf("3. BUILD %s IMAGE", strings.ToUpper(r.Opts.Engine)))
	console.StatusColor.Fprintf(r.Out, "Building '%s' image from current directory...\n", r.Opts.Image)

	if runner.Run(ctx, r.Exec, r.Out, r.Opts.BuildStep(fmt.Sprintf("Build %s image", r.Opts.engineTitle()))) {
		return true
	}
	if ctx.Err() != nil {
		return false
	}

	console.ErrorColor.Fprintf(r.Out, "\n❌ %s build failed!\n", r.Opts.engineTitle())

	exists, err := afero.Exists(r.FS, DockerfileName)
	if err != nil {
		console.ErrorColor.Fprintf(r.Out, "❌ Error: checking for %s: %v\n", DockerfileName, err)
		return false
	}
	if exists {
		logger.Info("Build failed with existing Dockerfile, not retrying", "image", r.Opts.Image)
		return false
	}

	fmt.Fprintln(r.Out, "Trying alternative approach...")
	fmt.Fprintf(r.Out, "Creating simple %s...\n", DockerfileName)
	if err := afero.WriteFile(r.FS, DockerfileName, []byte(DefaultDockerfile(r.Opts.Port)), 0644); err != nil {
		console.ErrorColor.Fprintf(r.Out, "❌ Error: writing %s: %v\n", DockerfileName, err)
		logger.Error("Could not write default Dockerfile", "error", err)
		return false
	}
	logger.Info("Wrote default Dockerfile, retrying build", "image", r.Opts.Image)

	return runner.Run(ctx, r.Exec, r.Out, r.Opts.BuildStep("Build with simple "+DockerfileName))
}

func (r *Runner) run(ctx context.Context) {
	console.Section(r.Out, fmt.Sprintf("4. RUN %s CONTAINER", strings.ToUpper(r.Opts.Engine)))
	fmt.Fprintf(r.Out, "Starting AI Semantic Search application on port %d...\n", r.Opts.Port)
	fmt.Fprintln(r.Out, "Press Ctrl+C to stop the container")
	console.SuccessColor.Fprintf(r.Out, "\n🌐 Open browser to: http://localhost:%d\n", r.Opts.Port)

	res := runner.RunForeground(ctx, r.Exec, r.Out, r.Opts.RunStep())
	switch {
	case res.Interrupted:
		console.StatusColor.Fprintln(r.Out, "\n\n🛑 Container stopped by user")
	case res.Err != nil:
		console.ErrorColor.Fprintf(r.Out, "❌ Error: %v\n", res.Err)
	case res.Code != 0:
		console.ErrorColor.Fprintf(r.Out, "⚠️  Container exited with code %d\n", res.Code)
	}
}

func (r *Runner) cleanupHints() {
	console.Section(r.Out, "5. CLEANUP COMMANDS")
	fmt.Fprintf(r.Out, "To clean up %s resources:\n", r.Opts.engineTitle())
	for _, line := range r.Opts.CleanupCommands() {
		fmt.Fprintf(r.Out, "  %s\n", line)
	}
	console.SuccessColor.Fprintf(r.Out, "\n✅ %s runner completed!\n", r.Opts.engineTitle())
}
