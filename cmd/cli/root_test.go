// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"ai-search-launcher/internal/config"
	"ai-search-launcher/internal/prompt"
	"ai-search-launcher/internal/runner"

	"github.com/fatih/color"
	. "github.com/onsi/gomega"
	"github.com/spf13/pflag"
)

func init() {
	color.NoColor = true
}

// resetFlags restores persistent flags between executions; pflag keeps
// values and Changed marks for the life of the process.
func resetFlags() {
	rootCmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
}

func execute(t *testing.T, args ...string) error {
	t.Helper()
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	resetFlags()
	t.Cleanup(resetFlags)
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestCommandTree(t *testing.T) {
	RegisterTestingT(t)

	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	Expect(names).To(HaveKey("docker"))
	Expect(names).To(HaveKey("local"))
	Expect(names).To(HaveKey("serve-fallback"))
	Expect(names).To(HaveKey("config"))
}

func TestYesAndNonInteractiveAreExclusive(t *testing.T) {
	RegisterTestingT(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	err := execute(t, "--yes", "--non-interactive", "--config", path, "config", "get-runtime")
	Expect(err).To(HaveOccurred())
}

func TestSetRuntimeWritesConfig(t *testing.T) {
	RegisterTestingT(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	Expect(execute(t, "--config", path, "config", "set-runtime", "Podman")).To(Succeed())

	saved, err := config.LoadFrom(path)
	Expect(err).ToNot(HaveOccurred())
	Expect(saved.ContainerRuntime).To(Equal(config.RuntimePodman))
	Expect(saved.Image).To(Equal("ai-semantic-search"))
}

func TestSetRuntimeRejectsUnknownEngine(t *testing.T) {
	RegisterTestingT(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	Expect(execute(t, "--config", path, "config", "set-runtime", "lxc")).ToNot(Succeed())
}

func TestSetPython(t *testing.T) {
	RegisterTestingT(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	Expect(execute(t, "--config", path, "config", "set-python", "/opt/venv/bin/python")).To(Succeed())

	saved, err := config.LoadFrom(path)
	Expect(err).ToNot(HaveOccurred())
	Expect(saved.Python).To(Equal("/opt/venv/bin/python"))
}

func TestPromptMode(t *testing.T) {
	RegisterTestingT(t)
	t.Cleanup(resetFlags)

	resetFlags()
	Expect(promptMode()).To(Equal(prompt.Ask))

	flagYes = true
	Expect(promptMode()).To(Equal(prompt.AssumeYes))

	flagYes = false
	flagNonInteractive = true
	Expect(promptMode()).To(Equal(prompt.AssumeNo))
}

func TestExitCode(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want int
	}{
		{name: "success", err: nil, want: 0},
		{name: "flow failure", err: runner.Fatal("docker not available"), want: 1},
		{name: "custom code", err: &runner.ExitError{Code: 3, Reason: "stopped"}, want: 3},
		{name: "wrapped exit error", err: fmt.Errorf("local: %w", &runner.ExitError{Code: 2, Reason: "x"}), want: 2},
		{name: "plain error", err: errors.New("failed to load configuration"), want: 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			RegisterTestingT(t)
			Expect(exitCode(tc.err)).To(Equal(tc.want))
		})
	}
}

func TestServeFallbackPortDefaultsToConfig(t *testing.T) {
	RegisterTestingT(t)

	flag := serveFallbackCmd.Flags().Lookup("port")
	Expect(flag).ToNot(BeNil())
	Expect(flag.DefValue).To(Equal("0"))
	Expect(flag.Usage).To(ContainSubstring("configured port"))
}
