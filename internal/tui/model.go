// Copyright (c) 2025 Sentiscope
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package tui is the interactive sentiment dashboard. It edits and submits
// queries through a controller and redraws whenever the controller publishes
// a new state.
package tui

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"sentiscope/cli/internal/chart"
	"sentiscope/cli/internal/controller"
	"sentiscope/cli/internal/sentiment"
)

const (
	defaultWidth = 80
	minBarWidth  = 10
)

// Controller is the part of the query controller the dashboard drives.
type Controller interface {
	SetQueryText(text string)
	Submit() (uint64, bool)
	Snapshot() sentiment.State
	Subscribe(fn controller.Listener) (unsubscribe func())
}

// StateMsg delivers a controller snapshot to the program.
type StateMsg sentiment.State

// Model is the bubbletea model of the dashboard.
type Model struct {
	ctrl    Controller
	input   textinput.Model
	spinner spinner.Model
	styles  Styles
	state   sentiment.State
	width   int
}

// New creates a dashboard model seeded with the controller's current state.
func New(ctrl Controller) Model {
	styles := DefaultStyles()

	ti := textinput.New()
	ti.Placeholder = "Topic or keyword (Enter to search, Esc to quit)"
	ti.Prompt = "› "
	ti.PromptStyle = styles.Prompt
	ti.CharLimit = 256
	ti.Width = defaultWidth - 4
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Status

	return Model{
		ctrl:    ctrl,
		input:   ti,
		spinner: sp,
		styles:  styles,
		state:   ctrl.Snapshot(),
		width:   defaultWidth,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			m.ctrl.SetQueryText(m.input.Value())
			m.ctrl.Submit()
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.ctrl.SetQueryText(m.input.Value())
		return m, cmd

	case StateMsg:
		// snapshots arrive from request goroutines in any order
		if msg.Version > m.state.Version {
			m.state = sentiment.State(msg)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(msg.Width-4, minBarWidth)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(m.styles.Title.Render("Sentiscope"))
	sb.WriteString("\n")
	sb.WriteString(m.input.View())
	sb.WriteString("\n\n")
	sb.WriteString(m.statusLine())
	sb.WriteString("\n")

	if agg, ok := m.state.Shown(); ok {
		sb.WriteString("\n")
		sb.WriteString(m.styles.Label.Render("Total") + m.styles.Value.Render(fmt.Sprintf("%d", agg.Total)))
		sb.WriteString("\n\n")
		sb.WriteString(m.bars(chart.FromState(m.state)))
	}

	sb.WriteString(m.styles.Help.Render("enter: search • esc: quit"))
	sb.WriteString("\n")
	return sb.String()
}

// State returns the snapshot the model currently displays.
func (m Model) State() sentiment.State { return m.state }

func (m Model) statusLine() string {
	switch m.state.Status {
	case sentiment.StatusPending:
		return m.spinner.View() + m.styles.Status.Render(fmt.Sprintf(" Searching for %q...", m.state.Query))
	case sentiment.StatusSuccess:
		return m.styles.Success.Render(m.state.Message)
	case sentiment.StatusFailure:
		return m.styles.Failure.Render(m.state.Message)
	default:
		return m.styles.Muted.Render("No results yet.")
	}
}

// bars draws one horizontal bar per category, scaled to 100%.
func (m Model) bars(in chart.Input) string {
	width := max(m.width-30, minBarWidth)

	var sb strings.Builder
	for _, p := range in.Points {
		n := int(math.Round(p.Value / 100 * float64(width)))
		bar := m.categoryStyle(p.Category).Render(strings.Repeat("█", n))
		sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			m.styles.Label.Render(p.Label),
			fmt.Sprintf("%6.1f%% ", p.Value),
			bar,
		))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (m Model) categoryStyle(c chart.Category) lipgloss.Style {
	switch c {
	case chart.Positive:
		return m.styles.Positive
	case chart.Negative:
		return m.styles.Negative
	default:
		return m.styles.Neutral
	}
}

// Run starts the dashboard and blocks until the user quits or ctx is done.
func Run(ctx context.Context, ctrl Controller, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(New(ctrl), opts...)

	// Submit runs inside Update, and Send blocks until the event loop reads
	// the message, so snapshots are handed over on their own goroutine.
	unsubscribe := ctrl.Subscribe(func(s sentiment.State) {
		go p.Send(StateMsg(s))
	})
	defer unsubscribe()

	_, err := p.Run()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}
