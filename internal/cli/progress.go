package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// fileMsg reports extraction progress for a single description file.
type fileMsg struct {
	done  int
	total int
}

// finishedMsg signals that the pipeline run completed (successfully or not).
type finishedMsg struct{}

// extractModel is the bubbletea model showing extraction progress as a bar.
type extractModel struct {
	done     int
	total    int
	width    int
	finished bool
	aborted  bool
}

func newExtractModel() extractModel {
	return extractModel{width: 30}
}

func (m extractModel) Init() tea.Cmd {
	return nil
}

func (m extractModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		}
	case fileMsg:
		m.done = msg.done
		m.total = msg.total
	case finishedMsg:
		m.finished = true
		return m, tea.Quit
	case tea.WindowSizeMsg:
		m.width = msg.Width - 20
		if m.width < 10 {
			m.width = 10
		}
		if m.width > 60 {
			m.width = 60
		}
	}
	return m, nil
}

func (m extractModel) View() string {
	if m.finished {
		return ""
	}

	var b strings.Builder
	b.WriteString(StyleDim.Render("extracting "))

	filled := 0
	if m.total > 0 {
		filled = m.done * m.width / m.total
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", m.width-filled)
	b.WriteString(StyleSuccess.Render(bar))
	b.WriteString(StyleDim.Render(fmt.Sprintf(" %d/%d", m.done, m.total)))

	return b.String()
}
