package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pagefit/internal/processor"
)

type stageProgress struct {
	done   int
	total  int
	failed int
}

type Model struct {
	updates  <-chan processor.ProgressUpdate
	started  time.Time
	width    int
	stage    processor.Stage
	stages   map[processor.Stage]stageProgress
	quitting bool
}

type doneMsg struct{}

type updateMsg processor.ProgressUpdate

func NewModel(updates <-chan processor.ProgressUpdate) Model {
	return Model{
		updates: updates,
		started: time.Now(),
		stages:  make(map[processor.Stage]stageProgress),
	}
}

func (m Model) Init() tea.Cmd {
	return listenForUpdates(m.updates)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case updateMsg:
		m = m.apply(processor.ProgressUpdate(msg))
		return m, listenForUpdates(m.updates)
	case doneMsg:
		m.quitting = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	default:
		return m, nil
	}
}

func (m Model) apply(update processor.ProgressUpdate) Model {
	stages := make(map[processor.Stage]stageProgress, len(m.stages)+1)
	for k, v := range m.stages {
		stages[k] = v
	}
	stages[update.Stage] = stageProgress{done: update.Done, total: update.Total, failed: update.Failed}
	m.stages = stages
	m.stage = update.Stage
	return m
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	barWidth := 40
	if m.width > 0 {
		barWidth = int(math.Min(60, float64(m.width-10)))
		if barWidth < 20 {
			barWidth = 20
		}
	}

	elapsed := time.Since(m.started).Round(time.Millisecond)
	lines := []string{titleStyle.Render("pagefit")}

	for _, stage := range []processor.Stage{processor.StageAnalyze, processor.StageResize} {
		progress, ok := m.stages[stage]
		if !ok {
			continue
		}
		label := fmt.Sprintf("%-8s %d/%d", stageLabel(stage), progress.done, progress.total)
		lines = append(lines,
			labelStyle.Render(label)+dimStyle.Render(fmt.Sprintf("  errors:%d", progress.failed)),
			barStyle.Render(renderBar(barWidth, ratio(progress))),
		)
	}
	lines = append(lines, dimStyle.Render(fmt.Sprintf("Elapsed: %s", elapsed)))

	return strings.Join(lines, "\n")
}

func stageLabel(stage processor.Stage) string {
	switch stage {
	case processor.StageAnalyze:
		return "Analyze"
	case processor.StageResize:
		return "Resize"
	default:
		return stage.String()
	}
}

func ratio(p stageProgress) float64 {
	if p.total <= 0 {
		return 0
	}
	r := float64(p.done) / float64(p.total)
	if r > 1 {
		r = 1
	}
	return r
}

func listenForUpdates(updates <-chan processor.ProgressUpdate) tea.Cmd {
	return func() tea.Msg {
		update, ok := <-updates
		if !ok {
			return doneMsg{}
		}
		return updateMsg(update)
	}
}

func renderBar(width int, ratio float64) string {
	filled := int(math.Round(ratio * float64(width)))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return "[" + strings.Repeat("=", filled) + strings.Repeat(" ", width-filled) + "]"
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	labelStyle = lipgloss.NewStyle().Foreground(ColorInk)
	barStyle   = lipgloss.NewStyle().Foreground(ColorSuccess)
	dimStyle   = lipgloss.NewStyle().Foreground(ColorDim)
)
