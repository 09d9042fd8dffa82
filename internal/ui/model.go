// Package ui provides the bubbletea live view for the leveler commands.
package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Model is the bubbletea model for a running leveler or monitor.
type Model struct {
	Title      string
	SampleRate float64
	TargetDB   float64
	FloorDB    float64

	Level     LevelMsg
	PeakGainL float64
	PeakGainR float64
	Readings  int

	StartTime time.Time
	Done      bool
	Err       error

	Width int
}

// NewModel returns a model for a stream at sampleRate leveled toward
// targetDB. Levels below floorDB draw an empty bar.
func NewModel(title string, sampleRate, targetDB, floorDB float64) Model {
	return Model{
		Title:      title,
		SampleRate: sampleRate,
		TargetDB:   targetDB,
		FloorDB:    floorDB,
		Level:      LevelMsg{LoudnessL: floorDB, LoudnessR: floorDB, GainL: 1, GainR: 1},
		StartTime:  time.Now(),
	}
}

// Init does nothing; readings arrive through Program.Send.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width

	case LevelMsg:
		m.Level = msg
		m.PeakGainL = max(m.PeakGainL, msg.GainL)
		m.PeakGainR = max(m.PeakGainR, msg.GainR)
		m.Readings++

	case DoneMsg:
		m.Done = true
		m.Err = msg.Err

		return m, tea.Quit
	}

	return m, nil
}

// Elapsed returns the stream time covered by the last reading.
func (m Model) Elapsed() time.Duration {
	if m.SampleRate <= 0 {
		return 0
	}

	return time.Duration(float64(m.Level.Frames) / m.SampleRate * float64(time.Second))
}

// View renders the model.
func (m Model) View() string {
	return renderView(m)
}
