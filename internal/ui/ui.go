// Package ui renders CLI output: status messages, query traces and result
// tables.
package ui

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/pterm/pterm"
)

var (
	successColor = lipgloss.Color("#00FF88")
	errorColor   = lipgloss.Color("#FF4444")
	infoColor    = lipgloss.Color("#00D9FF")
	subtleColor  = lipgloss.Color("#6C757D")

	successStyle = lipgloss.NewStyle().Foreground(successColor).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(errorColor).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(infoColor)
	subtleStyle  = lipgloss.NewStyle().Foreground(subtleColor)
)

// PrintSuccess prints a success message.
func PrintSuccess(format string, args ...any) {
	fmt.Println(successStyle.Render("✓ " + fmt.Sprintf(format, args...)))
}

// PrintError prints an error message to stderr.
func PrintError(format string, args ...any) {
	fmt.Fprintln(os.Stderr, errorStyle.Render("✗ "+fmt.Sprintf(format, args...)))
}

// PrintInfo prints an informational message.
func PrintInfo(format string, args ...any) {
	fmt.Println(infoStyle.Render(fmt.Sprintf(format, args...)))
}

// PrintSubtle prints a low-emphasis message.
func PrintSubtle(format string, args ...any) {
	fmt.Println(subtleStyle.Render(fmt.Sprintf(format, args...)))
}

// TraceQuery prints one executed query with its duration, for verbose mode.
func TraceQuery(sql string, duration time.Duration, err error) {
	sqlColor := color.New(color.FgCyan)
	if err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "query failed (%v): ", err)
		sqlColor.Fprintln(os.Stderr, sql)
		return
	}
	fmt.Printf("%s %s\n", sqlColor.Sprint(sql), subtleStyle.Render(fmt.Sprintf("(%v)", duration)))
}

// RenderTable prints query results as a table. Headers and cells are
// rendered in row order.
func RenderTable(headers []string, rows [][]string) error {
	data := pterm.TableData{headers}
	for _, row := range rows {
		data = append(data, row)
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

// PrintRowCount summarizes how many rows a query produced.
func PrintRowCount(n int) {
	if n == 1 {
		PrintSubtle("1 row")
		return
	}
	PrintSubtle("%d rows", n)
}
