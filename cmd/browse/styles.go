package main

import "github.com/charmbracelet/lipgloss"

var (
	primaryColor = lipgloss.Color("#A78BFA")
	mutedColor   = lipgloss.Color("#9CA3AF")
	accentColor  = lipgloss.Color("#10B981")

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(primaryColor).MarginBottom(1)
	categoryStyle = lipgloss.NewStyle().Bold(true)
	cursorStyle   = lipgloss.NewStyle().Foreground(primaryColor).Bold(true)
	checkedStyle  = lipgloss.NewStyle().Foreground(accentColor)
	mutedStyle    = lipgloss.NewStyle().Foreground(mutedColor)
	headingStyle  = lipgloss.NewStyle().Bold(true)
	linkStyle     = lipgloss.NewStyle().Foreground(mutedColor).Italic(true)
)
