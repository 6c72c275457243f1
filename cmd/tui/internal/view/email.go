package view

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mauricevan/bedrijfsbeheer3.0-sub006/internal/email"
)

const maxBodyLines = 20

type emailState int

const (
	emailStateFilePick emailState = iota
	emailStateResult
)

type EmailModel struct {
	CommonModel
	parser *email.Parser

	state      emailState
	filePicker filepicker.Model

	msg *email.Message
	err error
}

func NewEmailModel(parser *email.Parser) EmailModel {
	return EmailModel{
		parser:     parser,
		filePicker: newFilePicker(".eml"),
	}
}

func (m EmailModel) Title() string { return "Read Email" }

func (m EmailModel) ShortHelp() string {
	return "Esc: back | Enter: select"
}

func (m EmailModel) Init() tea.Cmd {
	return m.filePicker.Init()
}

func (m EmailModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			if m.state == emailStateResult {
				m.state = emailStateFilePick
				m.msg = nil
				m.err = nil

				return m, nil
			}

			return m, Back
		}

	case emailParsedMsg:
		m.state = emailStateResult
		m.msg = msg.msg
		m.err = msg.err

		return m, nil
	}

	if m.state != emailStateFilePick {
		return m, nil
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		return m, m.parseCmd(path)
	}

	return m, cmd
}

func (m EmailModel) View() string {
	if m.state == emailStateFilePick {
		return lipgloss.NewStyle().Padding(1).Render("Select .eml file:\n\n" + m.filePicker.View())
	}

	style := lipgloss.NewStyle().Padding(1)

	if m.err != nil {
		return style.Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n(Esc to go back)")
	}

	msg := m.msg

	lines := []string{
		headerStyle.Render(msg.Subject),
		"",
		"From:     " + msg.From,
		"To:       " + strings.Join(msg.To, ", "),
		"Date:     " + FormatDate(msg.Date),
		"Workflow: " + string(email.DetectWorkflowType(msg)),
		"",
		truncateLines(msg.Body, maxBodyLines),
	}

	if len(msg.Attachments) > 0 {
		lines = append(lines, "", mutedStyle.Render("Attachments:"))
		for _, a := range msg.Attachments {
			lines = append(lines, fmt.Sprintf("  %s (%s, %s)", a.Filename, a.ContentType, FormatSize(a.Size)))
		}
	}

	return style.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func truncateLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}

	return strings.Join(lines[:n], "\n") + "\n" + mutedStyle.Render(fmt.Sprintf("... %d more lines", len(lines)-n))
}

type emailParsedMsg struct {
	msg *email.Message
	err error
}

func (m EmailModel) parseCmd(path string) tea.Cmd {
	parser := m.parser

	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return emailParsedMsg{err: err}
		}
		defer f.Close()

		msg, err := parser.Parse(f)

		return emailParsedMsg{msg: msg, err: err}
	}
}
