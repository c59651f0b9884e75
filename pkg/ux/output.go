// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package ux provides styled terminal output for the wordscope CLI.
package ux

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette - deep ocean teals
var (
	ColorTealBright  = lipgloss.Color("#2CD7C7") // highlights, success
	ColorTealPrimary = lipgloss.Color("#20B9B4") // main brand color
	ColorTealDeep    = lipgloss.Color("#16858E") // borders
	ColorSlate       = lipgloss.Color("#2C4A54") // muted text

	ColorWarning = lipgloss.Color("#F4D03F")
)

// Styles provides pre-configured lipgloss styles
var Styles = struct {
	Title     lipgloss.Style
	Label     lipgloss.Style
	Muted     lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Highlight lipgloss.Style
	Box       lipgloss.Style
}{
	Title:     lipgloss.NewStyle().Bold(true).Foreground(ColorTealBright),
	Label:     lipgloss.NewStyle().Foreground(ColorTealPrimary).Width(8),
	Muted:     lipgloss.NewStyle().Foreground(ColorSlate),
	Success:   lipgloss.NewStyle().Foreground(ColorTealBright),
	Warning:   lipgloss.NewStyle().Foreground(ColorWarning),
	Highlight: lipgloss.NewStyle().Foreground(ColorTealBright).Bold(true),
	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorTealDeep).
		Padding(0, 1),
}

// Icon provides themed status icons
type Icon string

const (
	IconSuccess Icon = "✓"
	IconWarning Icon = "⚠"
	IconArrow   Icon = "→"
)

// Render returns the icon with appropriate styling
func (i Icon) Render() string {
	switch i {
	case IconSuccess:
		return Styles.Success.Render(string(i))
	case IconWarning:
		return Styles.Warning.Render(string(i))
	default:
		return string(i)
	}
}

// Printer writes styled output to w. In plain mode it writes undecorated
// tab-separated lines suitable for scripting.
type Printer struct {
	w     io.Writer
	plain bool
}

// NewPrinter creates a Printer.
func NewPrinter(w io.Writer, plain bool) *Printer {
	return &Printer{w: w, plain: plain}
}

// Success prints a line with a checkmark.
func (p *Printer) Success(text string) {
	if p.plain {
		fmt.Fprintf(p.w, "OK: %s\n", text)
		return
	}
	fmt.Fprintf(p.w, "%s %s\n", IconSuccess.Render(), Styles.Success.Render(text))
}

// Warning prints a line with a warning sign.
func (p *Printer) Warning(text string) {
	if p.plain {
		fmt.Fprintf(p.w, "WARN: %s\n", text)
		return
	}
	fmt.Fprintf(p.w, "%s %s\n", IconWarning.Render(), Styles.Warning.Render(text))
}

// Field prints "label  value".
func (p *Printer) Field(label, value string) {
	if p.plain {
		fmt.Fprintf(p.w, "%s\t%s\n", label, value)
		return
	}
	fmt.Fprintf(p.w, "%s %s\n", Styles.Label.Render(label), value)
}

// List prints a labeled list of items, or a muted "(none)".
func (p *Printer) List(label string, items []string) {
	if p.plain {
		fmt.Fprintf(p.w, "%s\t%s\n", label, strings.Join(items, " "))
		return
	}
	if len(items) == 0 {
		p.Field(label, Styles.Muted.Render("(none)"))
		return
	}
	p.Field(label, strings.Join(items, ", "))
}

// Box prints content in a rounded box under a title.
func (p *Printer) Box(title, content string) {
	if p.plain {
		fmt.Fprintf(p.w, "%s: %s\n", title, content)
		return
	}
	fmt.Fprintln(p.w, Styles.Box.Render(Styles.Title.Render(title)+"\n"+content))
}

// Segments renders a word split into prefix, root and suffix, e.g.
// "un + kind + ness". Empty parts are skipped.
func Segments(prefix, root, suffix string) string {
	parts := make([]string, 0, 3)
	if prefix != "" {
		parts = append(parts, Styles.Warning.Render(prefix))
	}
	parts = append(parts, Styles.Highlight.Render(root))
	if suffix != "" {
		parts = append(parts, Styles.Warning.Render(suffix))
	}
	return strings.Join(parts, " + ")
}
