package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	defaultBarWidth = 40
	minBarWidth     = 10
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#2E86DE"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#2E86DE")).
			Padding(0, 1)

	barOn    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00"))
	barHot   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500"))
	errStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C0392B"))
)

func renderView(m Model) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("target %.1f dB | elapsed %s | q to quit",
		m.TargetDB, m.Elapsed().Truncate(1e8))))
	b.WriteString("\n\n")

	width := barWidth(m.Width)

	var content strings.Builder
	content.WriteString(renderChannel("L", m.Level.LoudnessL, m.Level.GainL, m, width))
	content.WriteString("\n")
	content.WriteString(renderChannel("R", m.Level.LoudnessR, m.Level.GainR, m, width))

	b.WriteString(boxStyle.Render(content.String()))
	b.WriteString("\n")

	if m.Err != nil {
		b.WriteString(errStyle.Render("Error: " + m.Err.Error()))
		b.WriteString("\n")
	} else if m.Done {
		b.WriteString(mutedStyle.Render("end of stream"))
		b.WriteString("\n")
	}

	return b.String()
}

func renderChannel(name string, db, gain float64, m Model, width int) string {
	return fmt.Sprintf("%s %s %6.1f dB  gain %+5.1f dB",
		name, renderBar(db, m.FloorDB, 0, m.TargetDB, width), db, gainDB(gain))
}

// renderBar draws db on a scale from lo to hi. Cells above mark use the hot
// style.
func renderBar(db, lo, hi, mark float64, width int) string {
	filled := int(math.Round(fraction(db, lo, hi) * float64(width)))
	markCell := int(math.Round(fraction(mark, lo, hi) * float64(width)))

	var b strings.Builder

	for i := range width {
		switch {
		case i < filled && i >= markCell:
			b.WriteString(barHot.Render("█"))
		case i < filled:
			b.WriteString(barOn.Render("█"))
		default:
			b.WriteString("░")
		}
	}

	return b.String()
}

func fraction(db, lo, hi float64) float64 {
	if hi <= lo || math.IsNaN(db) {
		return 0
	}

	return math.Max(0, math.Min(1, (db-lo)/(hi-lo)))
}

func barWidth(termWidth int) int {
	if termWidth <= 0 {
		return defaultBarWidth
	}

	return max(minBarWidth, min(defaultBarWidth, termWidth-40))
}

func gainDB(gain float64) float64 {
	if gain <= 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(gain)
}
