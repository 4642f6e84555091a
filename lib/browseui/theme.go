// Copyright 2026 The Tubeview Authors
// SPDX-License-Identifier: Apache-2.0

package browseui

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette for the tubeview TUI. All colors
// use lipgloss ANSI 256-color codes for broad terminal compatibility.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Selected row (only in the focused pane).
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Pane titles and the search prompt.
	TitleForeground  lipgloss.Color
	PromptForeground lipgloss.Color

	// Bottom help line.
	HelpText lipgloss.Color

	// Status bar accents.
	PlayingForeground lipgloss.Color
	ErrorForeground   lipgloss.Color
}

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	TitleForeground:  lipgloss.Color("220"), // amber
	PromptForeground: lipgloss.Color("114"), // green

	HelpText: lipgloss.Color("241"),

	PlayingForeground: lipgloss.Color("114"), // green
	ErrorForeground:   lipgloss.Color("196"), // red
}
