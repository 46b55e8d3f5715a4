// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package deps

import (
	"bytes"
	"context"
	"testing"

	"ai-search-launcher/internal/runner"
	"ai-search-launcher/internal/runner/runnertest"

	"github.com/fatih/color"
	. "github.com/onsi/gomega"
)

func init() {
	color.NoColor = true
}

const (
	torchCPU    = "python3 -m pip install torch torchvision torchaudio --index-url https://download.pytorch.org/whl/cpu"
	torchPlain  = "python3 -m pip install torch"
	torchPinned = "python3 -m pip install torch==2.0.1"
)

func TestProbeReportsExactlyTheMissingSubset(t *testing.T) {
	testCases := []struct {
		name      string
		unimports []string
		want      []string
	}{
		{name: "all present", unimports: nil, want: nil},
		{name: "torch only", unimports: []string{"torch"}, want: []string{"torch"}},
		{
			name:      "package names differ from modules",
			unimports: []string{"sklearn", "sentence_transformers"},
			want:      []string{"sentence-transformers", "scikit-learn"},
		},
		{
			name:      "everything missing",
			unimports: []string{"streamlit", "sentence_transformers", "chromadb", "torch", "pandas", "plotly", "sklearn", "numpy"},
			want:      []string{"streamlit", "sentence-transformers", "chromadb", "torch", "pandas", "plotly", "scikit-learn", "numpy"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			RegisterTestingT(t)

			rec := runnertest.New()
			for _, mod := range tc.unimports {
				rec.Fail("python3 -c 'import "+mod+"'", "ModuleNotFoundError: No module named '"+mod+"'")
			}
			var out bytes.Buffer

			missing := Probe(context.Background(), rec, &out, "python3", DefaultRequirements)

			Expect(missing).To(Equal(tc.want))
			Expect(rec.Lines()).To(HaveLen(len(DefaultRequirements)))
			for _, pkg := range tc.want {
				Expect(out.String()).To(ContainSubstring("❌ " + pkg + " not found"))
			}
		})
	}
}

func TestProbeStopsWhenInterrupted(t *testing.T) {
	RegisterTestingT(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rec := runnertest.New()
	rec.Hook = func(step runner.CommandStep) {
		if step.Line() == "python3 -c 'import streamlit'" {
			cancel()
		}
	}
	var out bytes.Buffer

	missing := Probe(ctx, rec, &out, "python3", DefaultRequirements)

	Expect(missing).To(BeEmpty())
	Expect(rec.Lines()).To(Equal([]string{"python3 -c 'import streamlit'"}))
	Expect(out.String()).To(ContainSubstring("✅ streamlit"))
	Expect(out.String()).ToNot(ContainSubstring("not found"))
}

func TestProbeKeepsFailuresSeenBeforeInterrupt(t *testing.T) {
	RegisterTestingT(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rec := runnertest.New().Fail("python3 -c 'import streamlit'", "ModuleNotFoundError")
	rec.Respond("python3 -c 'import chromadb'", runner.Result{Code: -1, Interrupted: true})
	rec.Hook = func(step runner.CommandStep) {
		if step.Line() == "python3 -c 'import chromadb'" {
			cancel()
		}
	}
	var out bytes.Buffer

	missing := Probe(ctx, rec, &out, "python3", DefaultRequirements)

	Expect(missing).To(Equal([]string{"streamlit"}))
	Expect(rec.Lines()).To(HaveLen(3))
	Expect(out.String()).ToNot(ContainSubstring("chromadb not found"))
}

func TestInstallInterruptedDuringTorchIsSilent(t *testing.T) {
	RegisterTestingT(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rec := runnertest.New().Respond(torchCPU, runner.Result{Code: -1, Interrupted: true})
	rec.Hook = func(runner.CommandStep) { cancel() }
	var out bytes.Buffer

	Expect(Install(ctx, rec, &out, "python3", []string{"torch", "numpy"})).To(BeFalse())
	Expect(rec.Lines()).To(Equal([]string{torchCPU}))
	Expect(out.String()).ToNot(ContainSubstring("Failed to install PyTorch"))
}

func TestDefaultRequirementsHasEightEntries(t *testing.T) {
	RegisterTestingT(t)

	Expect(DefaultRequirements).To(HaveLen(8))
	Expect(DefaultRequirements).To(ContainElement(Requirement{Module: "sklearn", Package: "scikit-learn"}))
}

func TestInstallTorchStopsAtFirstSuccess(t *testing.T) {
	testCases := []struct {
		name  string
		fail  []string
		tried []string
	}{
		{name: "cpu wheels", fail: nil, tried: []string{torchCPU}},
		{name: "plain", fail: []string{torchCPU}, tried: []string{torchCPU, torchPlain}},
		{name: "pinned", fail: []string{torchCPU, torchPlain}, tried: []string{torchCPU, torchPlain, torchPinned}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			RegisterTestingT(t)

			rec := runnertest.New()
			for _, line := range tc.fail {
				rec.Fail(line, "")
			}

			ok := Install(context.Background(), rec, &bytes.Buffer{}, "python3", []string{"torch", "numpy"})

			Expect(ok).To(BeTrue())
			Expect(rec.Lines()).To(Equal(append(tc.tried, "python3 -m pip install numpy")))
		})
	}
}

func TestInstallTorchAllStrategiesFailSkipsBatch(t *testing.T) {
	RegisterTestingT(t)

	rec := runnertest.New().Fail(torchCPU, "").Fail(torchPlain, "").Fail(torchPinned, "")
	var out bytes.Buffer

	ok := Install(context.Background(), rec, &out, "python3", []string{"streamlit", "torch", "pandas"})

	Expect(ok).To(BeFalse())
	Expect(rec.Lines()).To(Equal([]string{torchCPU, torchPlain, torchPinned}))
	Expect(out.String()).To(ContainSubstring("Failed to install PyTorch with all methods"))
}

func TestInstallBatchesRemainingPackagesInOrder(t *testing.T) {
	RegisterTestingT(t)

	rec := runnertest.New()
	missing := []string{"streamlit", "scikit-learn", "numpy"}

	ok := Install(context.Background(), rec, &bytes.Buffer{}, "python3", missing)

	Expect(ok).To(BeTrue())
	Expect(rec.Lines()).To(Equal([]string{"python3 -m pip install streamlit scikit-learn numpy"}))
	Expect(missing).To(Equal([]string{"streamlit", "scikit-learn", "numpy"}))
}

func TestInstallBatchFailure(t *testing.T) {
	RegisterTestingT(t)

	rec := runnertest.New().Fail("python3 -m pip install chromadb", "")
	var out bytes.Buffer

	Expect(Install(context.Background(), rec, &out, "python3", []string{"chromadb"})).To(BeFalse())
	Expect(out.String()).To(ContainSubstring("❌ Failed to install packages: exit status 1"))
}

func TestInstallTorchOnly(t *testing.T) {
	RegisterTestingT(t)

	rec := runnertest.New()

	Expect(Install(context.Background(), rec, &bytes.Buffer{}, "python3", []string{"torch"})).To(BeTrue())
	Expect(rec.Lines()).To(Equal([]string{torchCPU}))
}
