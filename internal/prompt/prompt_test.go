// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package prompt

import (
	"bytes"
	"strings"
	"testing"

	"ai-search-launcher/internal/config"

	. "github.com/onsi/gomega"
)

func TestLineConfirm(t *testing.T) {
	testCases := []struct {
		input string
		want  bool
	}{
		{input: "y\n", want: true},
		{input: "  Y  \n", want: true},
		{input: "y", want: true},
		{input: "yes\n", want: false},
		{input: "n\n", want: false},
		{input: "\n", want: false},
		{input: "", want: false},
	}

	for _, tc := range testCases {
		t.Run(strings.TrimSpace(tc.input), func(t *testing.T) {
			RegisterTestingT(t)

			var out bytes.Buffer
			l := NewLine(strings.NewReader(tc.input), &out)

			Expect(l.Confirm("Do you want to install them?")).To(Equal(tc.want))
			Expect(out.String()).To(HavePrefix("Do you want to install them? (y/n): "))
		})
	}
}

func TestLineReadsSuccessiveAnswers(t *testing.T) {
	RegisterTestingT(t)

	l := NewLine(strings.NewReader("y\nn\n"), &bytes.Buffer{})

	Expect(l.Confirm("first")).To(BeTrue())
	Expect(l.Confirm("second")).To(BeFalse())
}

func TestLineAcknowledgeAtEOF(t *testing.T) {
	RegisterTestingT(t)

	var out bytes.Buffer
	NewLine(strings.NewReader(""), &out).Acknowledge("Press Enter to exit...")
	Expect(out.String()).To(ContainSubstring("Press Enter to exit..."))
}

func TestAuto(t *testing.T) {
	RegisterTestingT(t)

	var out bytes.Buffer
	Expect(Auto{Answer: true, Out: &out}.Confirm("Install?")).To(BeTrue())
	Expect(out.String()).To(Equal("Install? (y/n): y (non-interactive)\n"))
	Expect(Auto{}.Confirm("Install?")).To(BeFalse())
}

func TestSelect(t *testing.T) {
	in := strings.NewReader("")
	out := &bytes.Buffer{}

	testCases := []struct {
		name  string
		mode  Mode
		style string
		tty   bool
		check func(Prompter)
	}{
		{
			name: "yes flag wins without a terminal",
			mode: AssumeYes,
			check: func(p Prompter) {
				Expect(p).To(Equal(Auto{Answer: true, Out: out}))
			},
		},
		{
			name: "no flag wins on a terminal",
			mode: AssumeNo, tty: true,
			check: func(p Prompter) {
				Expect(p).To(Equal(Auto{Answer: false, Out: out}))
			},
		},
		{
			name: "ask without terminal declines",
			mode: Ask,
			check: func(p Prompter) {
				Expect(p).To(Equal(Auto{Answer: false, Out: out}))
			},
		},
		{
			name: "plain style on terminal",
			mode: Ask, style: config.PromptStylePlain, tty: true,
			check: func(p Prompter) {
				Expect(p).To(BeAssignableToTypeOf(&Line{}))
			},
		},
		{
			name: "tui style on terminal",
			mode: Ask, style: config.PromptStyleTUI, tty: true,
			check: func(p Prompter) {
				Expect(p).To(Equal(TUI{In: in, Out: out}))
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			RegisterTestingT(t)
			tc.check(Select(tc.mode, tc.style, tc.tty, in, out))
		})
	}
}
