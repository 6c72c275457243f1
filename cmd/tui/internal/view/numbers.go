package view

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mauricevan/bedrijfsbeheer3.0-sub006/internal/numbering"
)

type NumbersModel struct {
	CommonModel
	svc *numbering.Service

	cursor   int
	counters numbering.Counters
	issued   []string
	err      error
}

func NewNumbersModel(svc *numbering.Service) NumbersModel {
	return NumbersModel{svc: svc}
}

func (m NumbersModel) Title() string { return "Document Numbers" }

func (m NumbersModel) ShortHelp() string {
	return "↑/↓: type | Enter: issue number | Esc: back"
}

func (m NumbersModel) Init() tea.Cmd {
	return m.loadCountersCmd()
}

func (m NumbersModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc:
			return m, Back
		case tea.KeyUp:
			if m.cursor > 0 {
				m.cursor--
			}
		case tea.KeyDown:
			if m.cursor < len(numbering.Types)-1 {
				m.cursor++
			}
		case tea.KeyEnter:
			return m, m.issueCmd(numbering.Types[m.cursor])
		}

	case countersMsg:
		m.counters = msg.counters
		m.err = msg.err

	case issuedMsg:
		m.err = msg.err
		if msg.err == nil {
			m.issued = append([]string{msg.number}, m.issued...)
			if len(m.issued) > 10 {
				m.issued = m.issued[:10]
			}
		}

		return m, m.loadCountersCmd()
	}

	return m, nil
}

func (m NumbersModel) View() string {
	s := "Select document type:\n\n"

	for i, dt := range numbering.Types {
		cursor := " "
		if i == m.cursor {
			cursor = ">"
		}

		s += fmt.Sprintf("%s %-10s %s\n", cursor, dt, mutedStyle.Render(fmt.Sprintf("(%d issued)", m.count(dt))))
	}

	if m.err != nil {
		s += "\n" + errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n"
	}

	if len(m.issued) > 0 {
		s += "\n" + headerStyle.Render("Issued") + "\n"
		for _, n := range m.issued {
			s += "  " + successStyle.Render(n) + "\n"
		}
	}

	return lipgloss.NewStyle().Padding(2).Render(s)
}

func (m NumbersModel) count(dt numbering.DocumentType) int {
	switch dt {
	case numbering.TypeFactuur:
		return m.counters.Factuur
	case numbering.TypeOfferte:
		return m.counters.Offerte
	case numbering.TypeWerkorder:
		return m.counters.Werkorder
	}

	return m.counters.General
}

type countersMsg struct {
	counters numbering.Counters
	err      error
}

type issuedMsg struct {
	number string
	err    error
}

func (m NumbersModel) loadCountersCmd() tea.Cmd {
	svc := m.svc

	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		c, err := svc.Counters(ctx)

		return countersMsg{counters: c, err: err}
	}
}

func (m NumbersModel) issueCmd(dt numbering.DocumentType) tea.Cmd {
	svc := m.svc

	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		n, err := svc.Next(ctx, dt)

		return issuedMsg{number: n, err: err}
	}
}
