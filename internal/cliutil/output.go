// Package cliutil provides terminal output helpers for schemactl.
package cliutil

import (
	"fmt"
	"os"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// ANSI escape sequences for terminal colors.
const (
	ansiReset  = "\033[0m"
	ansiBold   = "\033[1m"
	ansiRed    = "\033[31m"
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
	ansiCyan   = "\033[36m"
)

// Success prints a green check-marked line to stdout.
func Success(format string, a ...any) {
	fmt.Printf(ansiBold+ansiGreen+"✓ "+format+ansiReset+"\n", a...)
}

// Error prints a red cross-marked line to stderr.
func Error(format string, a ...any) {
	fmt.Fprintf(os.Stderr, ansiBold+ansiRed+"✗ "+format+ansiReset+"\n", a...)
}

// Info prints a cyan line to stdout.
func Info(format string, a ...any) {
	fmt.Printf(ansiCyan+format+ansiReset+"\n", a...)
}

// Warn prints a yellow warning line to stdout.
func Warn(format string, a ...any) {
	fmt.Printf(ansiYellow+"⚠ "+format+ansiReset+"\n", a...)
}

// JSON writes v to stdout as indented JSON.
func JSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// YAML re-encodes JSON bytes as YAML on stdout.
func YAML(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	out, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(out)
	return err
}

// Table renders rows with columns aligned under their headers.
type Table struct {
	headers []string
	rows    [][]string
}

// NewTable creates a table with the given column headers.
func NewTable(headers ...string) *Table {
	return &Table{headers: headers}
}

// AddRow appends one row of cells.
func (t *Table) AddRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

// Render prints the table to stdout.
func (t *Table) Render() {
	widths := make([]int, len(t.headers))
	for i, header := range t.headers {
		widths[i] = len(header)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	for i, header := range t.headers {
		fmt.Printf(ansiBold+"%-*s"+ansiReset+"  ", widths[i], header)
	}
	fmt.Println()

	for i := range t.headers {
		fmt.Print(strings.Repeat("-", widths[i]) + "  ")
	}
	fmt.Println()

	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) {
				fmt.Printf("%-*s  ", widths[i], cell)
			}
		}
		fmt.Println()
	}
}
