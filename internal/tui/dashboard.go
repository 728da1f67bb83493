// Package tui renders a read-only budget dashboard. It issues no store
// operations; it only displays a Summary computed by the engine.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/satchel-app/satchel/internal/budget"
)

const (
	minWidth     = 60
	barWidth     = 30
	nameColWidth = 22
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#10B981")).
			MarginBottom(1)
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
	valueStyle = lipgloss.NewStyle().
			Bold(true)
	overStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B"))
	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			MarginTop(1)
)

// Model is the bubbletea model for the dashboard.
type Model struct {
	summary  budget.Summary
	width    int
	quitting bool
}

// New builds a dashboard over a computed summary.
func New(summary budget.Summary) Model {
	return Model{summary: summary, width: minWidth}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		if m.width < minWidth {
			m.width = minWidth
		}
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	s := m.summary
	out := titleStyle.Render("Travel Budget") + "\n"

	out += fmt.Sprintf("%s %s    %s %s    %s %s\n",
		labelStyle.Render("Budget:"), renderAmount(s.StartingBudget, false),
		labelStyle.Render("Spent:"), renderAmount(s.TotalSpent, false),
		labelStyle.Render("Remaining:"), renderAmount(s.Remaining, s.Remaining < 0))

	out += renderBar("Overall", s.Progress, "#10B981") + "\n\n"

	if len(s.Categories) == 0 {
		out += labelStyle.Render("No categories yet.") + "\n"
	}
	for _, cs := range s.Categories {
		out += renderBar(cs.Category.Name, cs.Progress, cs.Category.Color)
		out += fmt.Sprintf("  %s / %s",
			renderAmount(cs.Spent, cs.Remaining < 0),
			renderAmount(cs.Category.Allocated, false))
		out += "\n"
	}

	out += helpStyle.Render("q: quit")
	return out
}

func renderBar(label string, pct float64, color string) string {
	bar := progress.New(
		progress.WithSolidFill(color),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)

	ratio := pct / 100
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}

	pctText := fmt.Sprintf("%5.1f%%", pct)
	if pct > 100 {
		pctText = overStyle.Render(pctText)
	}

	name := label
	if len(name) > nameColWidth {
		name = name[:nameColWidth-1] + "…"
	}
	return fmt.Sprintf("%-*s %s %s", nameColWidth, name, bar.ViewAs(ratio), pctText)
}

func renderAmount(v float64, over bool) string {
	text := fmt.Sprintf("%.2f", v)
	if over {
		return overStyle.Render(text)
	}
	return valueStyle.Render(text)
}

// Run displays the dashboard until the user quits.
func Run(summary budget.Summary) error {
	p := tea.NewProgram(New(summary), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
