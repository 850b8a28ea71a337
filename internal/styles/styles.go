// Package styles provides terminal color and formatting utilities for the
// xbase command-line tool's table inspection and dump output.
package styles

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Color palette for xbasecli output.
var (
	Primary = lipgloss.Color("#7D56F4") // Purple
	Accent  = lipgloss.Color("#F25D94") // Pink

	SuccessColor = lipgloss.Color("#04B575") // Green
	ErrorColor   = lipgloss.Color("#FF6B6B") // Red
	InfoColor    = lipgloss.Color("#54A6FF") // Blue
	WarningColor = lipgloss.Color("#FFB347") // Orange

	Text    = lipgloss.Color("#FAFAFA") // Light
	TextDim = lipgloss.Color("#A8A8A8") // Dim

	BackgroundAlt = lipgloss.Color("#2D2D2D") // Alternate background
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			PaddingTop(1).
			PaddingBottom(1)

	SuccessStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(SuccessColor)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ErrorColor)

	InfoStyle = lipgloss.NewStyle().
			Foreground(InfoColor)

	WarningStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(WarningColor)

	BoldStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Text)

	DimStyle = lipgloss.NewStyle().
			Foreground(TextDim)

	FieldNameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Accent)

	CodeStyle = lipgloss.NewStyle().
			Foreground(Accent).
			Background(BackgroundAlt).
			PaddingLeft(1).
			PaddingRight(1)
)

func Success(text string) string {
	return SuccessStyle.Render("✓ " + text)
}

func Error(text string) string {
	return ErrorStyle.Render("✗ " + text)
}

func Info(text string) string {
	return InfoStyle.Render("ℹ " + text)
}

func Warning(text string) string {
	return WarningStyle.Render("⚠ " + text)
}

func Header(text string) string {
	return HeaderStyle.Render(text)
}

func Bold(text string) string {
	return BoldStyle.Render(text)
}

func Dim(text string) string {
	return DimStyle.Render(text)
}

func FieldName(text string) string {
	return FieldNameStyle.Render(text)
}

// SchemaRow renders one field descriptor line for the create subcommand.
func SchemaRow(name string, typ byte, length, decimals int) string {
	if decimals > 0 {
		return fmt.Sprintf("  %s %s(%d,%d)", FieldName(name), Dim(string(typ)), length, decimals)
	}
	return fmt.Sprintf("  %s %s(%d)", FieldName(name), Dim(string(typ)), length)
}

func RecordCount(n int) string {
	return Info(fmt.Sprintf("%d record(s)", n))
}

func Code(text string) string {
	return CodeStyle.Render(text)
}

func Example(command, description string) string {
	return "  " + Code(command) + " - " + Dim(description)
}
