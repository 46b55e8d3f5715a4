// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package fallback

import (
	"testing"

	. "github.com/onsi/gomega"
	"github.com/spf13/afero"
)

func TestSearch(t *testing.T) {
	testCases := []struct {
		name  string
		query string
		want  int
	}{
		{name: "empty query", query: "", want: 0},
		{name: "case insensitive", query: "LEARNING", want: 2},
		{name: "substring of word", query: "transform", want: 2},
		{name: "no match", query: "quantum", want: 0},
		{name: "phrase", query: "human language", want: 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			RegisterTestingT(t)
			Expect(Search(tc.query)).To(HaveLen(tc.want))
		})
	}
}

func TestSearchKeepsCorpusOrder(t *testing.T) {
	RegisterTestingT(t)

	Expect(Search("language")).To(Equal([]string{Corpus[2], Corpus[4]}))
}

func TestPageSourceContainsCorpus(t *testing.T) {
	RegisterTestingT(t)

	src, err := PageSource()
	Expect(err).ToNot(HaveOccurred())
	Expect(src).To(HavePrefix("import streamlit as st\n"))
	for _, doc := range Corpus {
		Expect(src).To(ContainSubstring(`    "` + doc + `",`))
	}
	Expect(src).To(ContainSubstring(`st.metric("Search Method", "Keyword")`))
}

func TestWrite(t *testing.T) {
	RegisterTestingT(t)

	fs := afero.NewMemMapFs()
	Expect(fs.MkdirAll("app", 0755)).To(Succeed())

	p, err := Write(fs, "app")
	Expect(err).ToNot(HaveOccurred())
	Expect(p).To(Equal("app/simple_main.py"))

	data, err := afero.ReadFile(fs, p)
	Expect(err).ToNot(HaveOccurred())
	src, _ := PageSource()
	Expect(string(data)).To(Equal(src))
}
