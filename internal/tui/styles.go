package tui

import "github.com/charmbracelet/lipgloss"

type styles struct {
	header  lipgloss.Style
	system  lipgloss.Style
	input   lipgloss.Style
	prompt  lipgloss.Style
	output  lipgloss.Style
	busy    lipgloss.Style
	hint    lipgloss.Style
	command lipgloss.Style
	feature lipgloss.Style
	frame   lipgloss.Style
}

func defaultStyles() styles {
	cyan := lipgloss.Color("#22d3ee")
	return styles{
		header:  lipgloss.NewStyle().Foreground(cyan).Bold(true),
		system:  lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280")),
		input:   lipgloss.NewStyle().Foreground(lipgloss.Color("#4ade80")),
		prompt:  lipgloss.NewStyle().Foreground(lipgloss.Color("#22c55e")),
		output:  lipgloss.NewStyle().Foreground(lipgloss.Color("#67e8f9")).Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(cyan).PaddingLeft(1),
		busy:    lipgloss.NewStyle().Foreground(lipgloss.Color("#facc15")),
		hint:    lipgloss.NewStyle().Foreground(lipgloss.Color("#9ca3af")).Italic(true),
		command: lipgloss.NewStyle().Foreground(lipgloss.Color("#d1d5db")).Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#4b5563")).Padding(0, 1),
		feature: lipgloss.NewStyle().Foreground(lipgloss.Color("#c084fc")).Bold(true),
		frame:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(cyan).Padding(0, 1),
	}
}
