// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package fallback provides the simplified keyword search used when the full
// application's dependencies cannot be installed: a fixed five-document
// corpus, the matching rule, and the Streamlit page that serves it.
package fallback

import (
	"bytes"
	_ "embed"
	"fmt"
	"path"
	"strings"
	"text/template"

	"github.com/spf13/afero"
)

// PageFile is the fallback page's file name inside the app directory.
const PageFile = "simple_main.py"

// Method is shown on the page as the search method.
const Method = "Keyword"

// Corpus is the fixed document set searched by the fallback page.
var Corpus = []string{
	"Machine learning is a subset of artificial intelligence.",
	"Deep learning uses neural networks with multiple layers.",
	"Natural Language Processing enables computers to understand human language.",
	"Transformers have revolutionized NLP with attention mechanisms.",
	"BERT is a transformer model for language understanding.",
}

//go:embed simple_main.py.tmpl
var pageTemplate string

var page = template.Must(template.New(PageFile).Parse(pageTemplate))

// Search returns the corpus documents containing query, ignoring case, in
// corpus order. An empty query matches nothing.
func Search(query string) []string {
	q := strings.ToLower(query)
	if q == "" {
		return nil
	}
	var results []string
	for _, doc := range Corpus {
		if strings.Contains(strings.ToLower(doc), q) {
			results = append(results, doc)
		}
	}
	return results
}

// PageSource renders the Streamlit fallback page.
func PageSource() (string, error) {
	var buf bytes.Buffer
	data := struct {
		Documents []string
		Method    string
	}{Corpus, Method}
	if err := page.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering fallback page: %w", err)
	}
	return buf.String(), nil
}

// Write renders the page into appDir and returns the written path, relative
// to fs.
func Write(fs afero.Fs, appDir string) (string, error) {
	src, err := PageSource()
	if err != nil {
		return "", err
	}
	p := path.Join(appDir, PageFile)
	if err := afero.WriteFile(fs, p, []byte(src), 0644); err != nil {
		return "", fmt.Errorf("writing fallback page %s: %w", p, err)
	}
	return p, nil
}
