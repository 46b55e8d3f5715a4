// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package util

import (
	"testing"

	. "github.com/onsi/gomega"
)

func TestQuoteArgForShell(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{in: "docker", want: "docker"},
		{in: "8501:8501", want: "8501:8501"},
		{in: "--index-url=https://download.pytorch.org/whl/cpu", want: "--index-url=https://download.pytorch.org/whl/cpu"},
		{in: "", want: "''"},
		{in: "import torch", want: "'import torch'"},
		{in: "it's", want: `'it'\''s'`},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			RegisterTestingT(t)
			Expect(QuoteArgForShell(tc.in)).To(Equal(tc.want))
		})
	}
}

func TestJoinArgs(t *testing.T) {
	RegisterTestingT(t)

	Expect(JoinArgs("python3", "-c", "import numpy")).To(Equal("python3 -c 'import numpy'"))
	Expect(JoinArgs("docker", "build", "-t", "ai-semantic-search", ".")).To(Equal("docker build -t ai-semantic-search ."))
}
