// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package ui

import "github.com/charmbracelet/lipgloss"

var (
	questionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	yesStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	noStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	messageStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1)

	footerKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // Bright blue for key

	footerDescStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")) // Light grey for description

	footerSeparatorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")) // Dim grey for separator
)
