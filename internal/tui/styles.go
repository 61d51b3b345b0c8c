package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorGreen  = lipgloss.Color("#10b981")
	colorRed    = lipgloss.Color("#ef4444")
	colorGray   = lipgloss.Color("#6b7280")
	colorCyan   = lipgloss.Color("#06b6d4")
	colorOrange = lipgloss.Color("#f97316")
	colorWhite  = lipgloss.Color("#f8fafc")
	colorDark   = lipgloss.Color("#1e293b")
)

// styleHeader — full-width dark header bar.
var styleHeader = lipgloss.NewStyle().
	Background(colorDark).
	Foreground(colorWhite).
	Padding(0, 1)

// Connection indicator styles.
var (
	styleStatusOK  = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	styleStatusBad = lipgloss.NewStyle().Bold(true).Foreground(colorRed)
)

var styleFooter = lipgloss.NewStyle().Foreground(colorGray)
