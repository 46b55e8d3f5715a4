// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package ui implements the small Bubble Tea dialogs the launcher uses to ask
// the operator for consent on a terminal.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// ConfirmModel asks a yes/no question. Only the Yes binding consents; any
// other key declines.
type ConfirmModel struct {
	Question string
	Answer   bool
	Done     bool
	keys     KeyMap
}

// NewConfirmModel returns a dialog for question.
func NewConfirmModel(question string) ConfirmModel {
	return ConfirmModel{Question: question, keys: DefaultKeyMap}
}

func (m ConfirmModel) Init() tea.Cmd {
	return nil
}

func (m ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	m.Answer = key.Matches(keyMsg, m.keys.Yes)
	m.Done = true
	return m, tea.Quit
}

func (m ConfirmModel) View() string {
	var b strings.Builder
	b.WriteString(questionStyle.Render(m.Question))
	if m.Done {
		if m.Answer {
			b.WriteString(" " + yesStyle.Render("yes"))
		} else {
			b.WriteString(" " + noStyle.Render("no"))
		}
		return dialogStyle.Render(b.String()) + "\n"
	}
	b.WriteString("\n\n")
	b.WriteString(renderHelp(m.keys.Yes, m.keys.No, m.keys.Quit))
	return dialogStyle.Render(b.String()) + "\n"
}

// AckModel shows a message and closes on any key.
type AckModel struct {
	Message string
	Done    bool
}

func (m AckModel) Init() tea.Cmd {
	return nil
}

func (m AckModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok {
		m.Done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m AckModel) View() string {
	if m.Done {
		return ""
	}
	return messageStyle.Render(m.Message) + "\n"
}

func renderHelp(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		h := kb.Help()
		parts = append(parts, footerKeyStyle.Render(h.Key)+" "+footerDescStyle.Render(h.Desc))
	}
	return strings.Join(parts, footerSeparatorStyle.Render(" | "))
}

// Confirm runs a ConfirmModel on the given terminal streams.
func Confirm(in io.Reader, out io.Writer, question string) (bool, error) {
	p := tea.NewProgram(NewConfirmModel(question), tea.WithInput(in), tea.WithOutput(out))
	final, err := p.Run()
	if err != nil {
		return false, fmt.Errorf("running confirm dialog: %w", err)
	}
	m, ok := final.(ConfirmModel)
	if !ok {
		return false, fmt.Errorf("unexpected dialog model %T", final)
	}
	return m.Done && m.Answer, nil
}

// Acknowledge shows message until a key is pressed.
func Acknowledge(in io.Reader, out io.Writer, message string) error {
	p := tea.NewProgram(AckModel{Message: message}, tea.WithInput(in), tea.WithOutput(out))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running acknowledge dialog: %w", err)
	}
	return nil
}
