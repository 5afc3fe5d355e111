// Package ui provides terminal styling and interactivity checks for CLI output.
package ui

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	ColorPass   = lipgloss.AdaptiveColor{Light: "#86b300", Dark: "#c2d94c"}
	ColorWarn   = lipgloss.AdaptiveColor{Light: "#f2ae49", Dark: "#ffb454"}
	ColorFail   = lipgloss.AdaptiveColor{Light: "#f07171", Dark: "#f07178"}
	ColorMuted  = lipgloss.AdaptiveColor{Light: "#828c99", Dark: "#6c7680"}
	ColorAccent = lipgloss.AdaptiveColor{Light: "#399ee6", Dark: "#59c2ff"}
)

var (
	PassStyle   = lipgloss.NewStyle().Foreground(ColorPass)
	WarnStyle   = lipgloss.NewStyle().Foreground(ColorWarn)
	FailStyle   = lipgloss.NewStyle().Foreground(ColorFail)
	MutedStyle  = lipgloss.NewStyle().Foreground(ColorMuted)
	AccentStyle = lipgloss.NewStyle().Foreground(ColorAccent)
	BoldStyle   = lipgloss.NewStyle().Bold(true)
)

// HeaderStyle is used for section headings such as "Available packs:".
var HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)

// SuccessStyle marks the final line of a successful multi-step command.
var SuccessStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorPass)

const (
	IconPass = "✓"
	IconWarn = "!"
	IconFail = "✗"
	IconSkip = "-"
)

// Pass renders a check mark followed by msg.
func Pass(msg string) string { return PassStyle.Render(IconPass) + " " + msg }

// Warn renders a warning marker followed by msg.
func Warn(msg string) string { return WarnStyle.Render(IconWarn) + " " + msg }

// Skip renders a muted skip marker followed by msg.
func Skip(msg string) string { return MutedStyle.Render(IconSkip + " " + msg) }

// Error renders msg in the failure color.
func Error(msg string) string { return FailStyle.Render(msg) }

// Warning renders msg in the warning color.
func Warning(msg string) string { return WarnStyle.Render(msg) }

// Header renders msg as a section heading.
func Header(msg string) string { return HeaderStyle.Render(msg) }

// Bold renders msg in bold.
func Bold(msg string) string { return BoldStyle.Render(msg) }

// Success renders msg as a completion banner.
func Success(msg string) string { return SuccessStyle.Render(msg) }

// Muted renders msg in the muted color.
func Muted(msg string) string { return MutedStyle.Render(msg) }

// IsTerminal reports whether v is an *os.File attached to a terminal.
func IsTerminal(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Interactive reports whether both in and out are terminals, which is
// required before showing prompts.
func Interactive(in io.Reader, out io.Writer) bool {
	return IsTerminal(in) && IsTerminal(out)
}
