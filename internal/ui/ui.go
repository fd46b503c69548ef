// Package ui provides terminal UI components using pterm.
package ui

import (
	"fmt"

	"github.com/pterm/pterm"

	"kandivoc/internal/builder"
)

// Theme colors for consistent styling
var (
	ColorPrimary   = pterm.FgCyan
	ColorSecondary = pterm.FgLightBlue
	ColorSuccess   = pterm.FgGreen
	ColorWarning   = pterm.FgYellow
	ColorError     = pterm.FgRed
	ColorMuted     = pterm.FgGray
)

// UI wraps pterm components for kandivoc.
type UI struct {
	quiet   bool
	verbose bool
}

// New creates a new UI instance.
func New(quiet, verbose bool) *UI {
	if quiet {
		pterm.DisableOutput()
	}
	return &UI{quiet: quiet, verbose: verbose}
}

// Banner prints the application banner.
func (u *UI) Banner() {
	pterm.DefaultBigText.WithLetters(
		pterm.NewLettersFromStringWithStyle("kandi", pterm.NewStyle(pterm.FgCyan)),
		pterm.NewLettersFromStringWithStyle("voc", pterm.NewStyle(pterm.FgLightBlue)),
	).Render()

	pterm.DefaultCenter.Println(
		pterm.FgGray.Sprint("Vocabulary Candidate Builder"),
	)
	fmt.Println()
}

// Config prints the configuration summary.
func (u *UI) Config(languages []string, dictFile, dataDir string) {
	pterm.DefaultSection.Println("Configuration")

	data := [][]string{
		{"Source languages", fmt.Sprintf("%v", languages)},
		{"Dictionary", dictFile},
		{"Conversion tables", dataDir},
	}

	pterm.DefaultTable.WithData(data).Render()
	fmt.Println()
}

// Concept prints the header for the concept whose candidates are built.
func (u *UI) Concept(meaning, class string) {
	title := meaning
	if class != "" {
		title = fmt.Sprintf("%s (%s)", meaning, class)
	}
	pterm.DefaultSection.WithLevel(2).Println(title)
}

// Spinner creates a spinner for long operations.
func (u *UI) Spinner(message string) *pterm.SpinnerPrinter {
	spinner, _ := pterm.DefaultSpinner.
		WithRemoveWhenDone(true).
		Start(message)
	return spinner
}

// Conflicts prints the pairs of confusable dictionary words in a table.
func (u *UI) Conflicts(conflicts []builder.Conflict) {
	if len(conflicts) == 0 {
		pterm.Success.Println("No confusable word pairs found.")
		return
	}

	data := pterm.TableData{{"Word", "Other", "Distance"}}
	for _, c := range conflicts {
		data = append(data, []string{c.Word, c.Other, fmt.Sprintf("%d", c.Distance)})
	}

	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	fmt.Println()
}

// Success prints a success message.
func (u *UI) Success(message string) {
	pterm.Success.Println(message)
}

// Error prints an error message.
func (u *UI) Error(message string) {
	pterm.Error.Println(message)
}

// Warning prints a warning message.
func (u *UI) Warning(message string) {
	pterm.Warning.Println(message)
}

// Info prints an info message.
func (u *UI) Info(message string) {
	pterm.Info.Println(message)
}

// Debug prints a debug message (only in verbose mode).
func (u *UI) Debug(message string) {
	if u.verbose {
		pterm.Debug.Println(message)
	}
}

// Separator prints a visual separator.
func (u *UI) Separator() {
	pterm.DefaultBasicText.Println(pterm.FgGray.Sprint("─────────────────────────────────────────────────────────────"))
}

// Done prints the completion message.
func (u *UI) Done() {
	fmt.Println()
	pterm.DefaultCenter.Println(
		pterm.FgGreen.Sprint("✓ Done!"),
	)
}
