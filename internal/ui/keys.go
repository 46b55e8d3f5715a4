// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// This file defines the keyboard bindings for the consent dialogs.

package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings used by the prompts.
type KeyMap struct {
	Yes  key.Binding // Consent
	No   key.Binding // Decline; any other key declines too
	Quit key.Binding // Abort the prompt, counts as decline
}

// DefaultKeyMap provides the default keybindings.
var DefaultKeyMap = KeyMap{
	Yes: key.NewBinding(
		key.WithKeys("y", "Y"),
		key.WithHelp("y", "yes"),
	),
	No: key.NewBinding(
		key.WithKeys("n", "N", "enter", "esc"),
		key.WithHelp("n/enter", "no"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "abort"),
	),
}
