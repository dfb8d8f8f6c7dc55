// Package render formats wizard state and deadline lists for the terminal
// with lipgloss. Colours degrade to plain text when output is not a TTY.
package render
