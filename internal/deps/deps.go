// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package deps checks which Python modules the application needs are
// importable and installs the missing ones with pip.
package deps

import (
	"context"
	"fmt"
	"io"
	"slices"

	"ai-search-launcher/internal/console"
	"ai-search-launcher/internal/logger"
	"ai-search-launcher/internal/runner"
)

// TorchPackage is installed through TorchStrategies instead of the batch install.
const TorchPackage = "torch"

// CPUWheelIndex serves CPU-only torch builds.
const CPUWheelIndex = "https://download.pytorch.org/whl/cpu"

// Requirement maps an importable module to the pip package that provides it.
type Requirement struct {
	Module  string
	Package string
}

// DefaultRequirements lists what the semantic search application imports.
var DefaultRequirements = []Requirement{
	{Module: "streamlit", Package: "streamlit"},
	{Module: "sentence_transformers", Package: "sentence-transformers"},
	{Module: "chromadb", Package: "chromadb"},
	{Module: "torch", Package: "torch"},
	{Module: "pandas", Package: "pandas"},
	{Module: "plotly", Package: "plotly"},
	{Module: "sklearn", Package: "scikit-learn"},
	{Module: "numpy", Package: "numpy"},
}

// ImportStep probes a single module.
func ImportStep(python string, req Requirement) runner.CommandStep {
	return runner.CommandStep{
		Name:    "Import " + req.Module,
		Command: python,
		Args:    []string{"-c", "import " + req.Module},
	}
}

// Probe tries to import every requirement and returns the packages whose
// import failed, in requirement order. It only checks presence, not versions.
// Probing stops when ctx ends; callers check ctx.Err() before using the result.
func Probe(ctx context.Context, exec runner.Executor, out io.Writer, python string, reqs []Requirement) []string {
	fmt.Fprintln(out, "🔍 Checking dependencies...")
	var missing []string
	for _, req := range reqs {
		if ctx.Err() != nil {
			break
		}
		res := exec.Capture(ctx, ImportStep(python, req))
		if !res.OK() && (res.Interrupted || ctx.Err() != nil) {
			logger.Info("Dependency probe interrupted", "module", req.Module)
			break
		}
		if res.OK() {
			console.SuccessColor.Fprintf(out, "✅ %s\n", req.Package)
			continue
		}
		console.ErrorColor.Fprintf(out, "❌ %s not found\n", req.Package)
		logger.Debug("Import probe failed", "module", req.Module, "code", res.Code, "stderr", res.Stderr, "error", res.Err)
		missing = append(missing, req.Package)
	}
	logger.Info("Dependency probe finished", "checked", len(reqs), "missing", missing)
	return missing
}

func pipStep(python, name string, args ...string) runner.CommandStep {
	return runner.CommandStep{
		Name:    name,
		Command: python,
		Args:    append([]string{"-m", "pip", "install"}, args...),
	}
}

// TorchStrategies are tried in order until one succeeds: the CPU-only wheel
// index, a plain install, then a pinned release.
func TorchStrategies(python string) []runner.CommandStep {
	return []runner.CommandStep{
		pipStep(python, "Install PyTorch (CPU-only wheels)", "torch", "torchvision", "torchaudio", "--index-url", CPUWheelIndex),
		pipStep(python, "Install PyTorch (default index)", "torch"),
		pipStep(python, "Install PyTorch 2.0.1", "torch==2.0.1"),
	}
}

// BatchStep installs pkgs with one pip invocation.
func BatchStep(python string, pkgs []string) runner.CommandStep {
	return pipStep(python, fmt.Sprintf("Install %d packages", len(pkgs)), pkgs...)
}

// Install installs the missing packages. Torch goes first through
// TorchStrategies; if none of them works the remaining packages are not
// attempted. It reports whether everything got installed.
func Install(ctx context.Context, exec runner.Executor, out io.Writer, python string, missing []string) bool {
	console.StatusColor.Fprintf(out, "📦 Installing %d missing packages...\n", len(missing))

	rest := slices.Clone(missing)
	if i := slices.Index(rest, TorchPackage); i >= 0 {
		fmt.Fprintln(out, "🔧 Installing PyTorch (this may take a few minutes)...")
		idx, ok := runner.FirstSuccess(ctx, exec, out, TorchStrategies(python))
		if !ok && ctx.Err() != nil {
			return false
		}
		if !ok {
			console.ErrorColor.Fprintln(out, "❌ Failed to install PyTorch with all methods")
			logger.Error("All torch install strategies failed")
			return false
		}
		console.SuccessColor.Fprintln(out, "✅ PyTorch installed successfully")
		logger.Info("Torch installed", "strategy", idx)
		rest = slices.Delete(rest, i, i+1)
	}

	if len(rest) == 0 {
		return true
	}

	res := runner.RunForeground(ctx, exec, out, BatchStep(python, rest))
	if res.Interrupted {
		return false
	}
	if !res.OK() {
		reason := fmt.Sprintf("exit status %d", res.Code)
		if res.Err != nil {
			reason = res.Err.Error()
		}
		console.ErrorColor.Fprintf(out, "❌ Failed to install packages: %s\n", reason)
		logger.Error("Batch install failed", "packages", rest, "code", res.Code, "error", res.Err)
		return false
	}
	console.SuccessColor.Fprintln(out, "✅ All packages installed successfully")
	return true
}
