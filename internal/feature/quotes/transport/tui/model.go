// Package tui renders the quote panel in a terminal with bubbletea.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"quotepanel/internal/feature/quotes/domain/entity"
	"quotepanel/internal/feature/quotes/transport/view"
)

// Styles.
var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("245")).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	noticeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	borderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	symbolStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))
	footerString = "enter: fetch  ctrl+r: retry  esc: quit"
)

// Source is the panel the model observes.
type Source interface {
	Subscribe() (<-chan entity.FetchState, func())
	Retry() bool
}

// Draft is the symbol input the text field writes into.
type Draft interface {
	SetDraft(s string)
	Commit() bool
}

// stateMsg carries a new panel snapshot.
type stateMsg entity.FetchState

// closedMsg reports that the panel stopped publishing.
type closedMsg struct{}

// Model is the bubbletea model of the panel.
type Model struct {
	panel       Source
	input       Draft
	text        textinput.Model
	updates     <-chan entity.FetchState
	unsubscribe func()
	state       entity.FetchState
}

// New subscribes to panel and returns a focused model.
func New(panel Source, input Draft) Model {
	ti := textinput.New()
	ti.Placeholder = view.Placeholder
	ti.CharLimit = 32
	ti.Width = 32
	ti.Focus()

	updates, unsubscribe := panel.Subscribe()
	return Model{
		panel:       panel,
		input:       input,
		text:        ti,
		updates:     updates,
		unsubscribe: unsubscribe,
	}
}

// waitForState blocks on the next snapshot.
func waitForState(ch <-chan entity.FetchState) tea.Cmd {
	return func() tea.Msg {
		st, ok := <-ch
		if !ok {
			return closedMsg{}
		}
		return stateMsg(st)
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, waitForState(m.updates))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stateMsg:
		m.state = entity.FetchState(msg)
		return m, waitForState(m.updates)
	case closedMsg:
		return m, tea.Quit
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.unsubscribe()
			return m, tea.Quit
		case "enter":
			m.input.Commit()
			return m, nil
		case "ctrl+r":
			if m.state.Status == entity.StatusFailed {
				m.panel.Retry()
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.text, cmd = m.text.Update(msg)
	m.input.SetDraft(m.text.Value())
	return m, cmd
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(view.Title))
	b.WriteString("\n\n")
	b.WriteString(m.text.View())
	b.WriteString("  ")
	b.WriteString(dimStyle.Render("[" + view.ButtonLabel + "]"))
	b.WriteString("\n\n")
	b.WriteString(Render(view.Build(m.state)))
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render(footerString))
	b.WriteString("\n")
	return b.String()
}

// Render draws the visible branch of p.
func Render(p view.Panel) string {
	var b strings.Builder
	if p.Symbol != "" {
		b.WriteString(symbolStyle.Render(p.Symbol))
		b.WriteString("\n")
	}
	switch p.Branch {
	case view.BranchTable:
		b.WriteString(RenderTable(p))
	case view.BranchNoData:
		if p.Notice != "" {
			b.WriteString(noticeStyle.Render(p.Notice))
			b.WriteString("\n")
		}
		b.WriteString(p.Message)
	case view.BranchFailed:
		b.WriteString(errorStyle.Render(p.Error))
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("press ctrl+r to " + strings.ToLower(view.RetryLabel)))
	default:
		b.WriteString(dimStyle.Render(p.Message))
	}
	return b.String()
}

// RenderTable draws the capped rows of p with a fixed header.
func RenderTable(p view.Panel) string {
	rows := make([][]string, 0, len(p.Rows))
	for _, r := range p.Rows {
		rows = append(rows, r.Cells())
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(p.Columns...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 0 {
				return cellStyle
			}
			return cellStyle.Align(lipgloss.Right)
		})
	return t.Render()
}
