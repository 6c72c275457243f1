package view

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mauricevan/bedrijfsbeheer3.0-sub006/internal/csvimport"
	"github.com/mauricevan/bedrijfsbeheer3.0-sub006/internal/importer"
)

type importState int

const (
	importStateKindSelect importState = iota
	importStateFilePick
	importStateImporting
	importStateResult
)

type ImportModel struct {
	CommonModel
	importService *importer.Service

	state        importState
	filePicker   filepicker.Model
	spinner      spinner.Model
	selectedKind importer.Kind
	kindOptions  []importer.Kind
	kindCursor   int

	result     *csvimport.Result
	errorList  list.Model
	sourceFile string
	err        error
}

func NewImportModel(impSvc *importer.Service) ImportModel {
	return ImportModel{
		importService: impSvc,
		filePicker:    newFilePicker(".csv", ".txt"),
		spinner:       newSpinner(),
		kindOptions:   impSvc.Kinds(),
	}
}

func (m ImportModel) Title() string { return "Import CSV" }

func (m ImportModel) ShortHelp() string {
	if m.state == importStateResult {
		return "↑/↓: scroll errors | Esc: back"
	}

	return "Esc: back | Enter: select"
}

func (m ImportModel) Init() tea.Cmd {
	return nil
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

		if m.state == importStateKindSelect {
			return m.updateKindSelect(msg)
		}

	case importResultMsg:
		m.state = importStateResult
		m.err = msg.err
		m.result = msg.result

		if msg.result != nil {
			m.errorList = newMessageList(msg.result.Errors, msg.result.Warnings)
		}

		return m, nil
	}

	switch m.state {
	case importStateImporting:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd

	case importStateResult:
		if m.result == nil {
			return m, nil
		}

		var cmd tea.Cmd
		m.errorList, cmd = m.errorList.Update(msg)

		return m, cmd

	case importStateFilePick:
		var cmd tea.Cmd
		m.filePicker, cmd = m.filePicker.Update(msg)

		if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
			m.state = importStateImporting
			m.sourceFile = path

			return m, tea.Batch(m.spinner.Tick, m.importCmd(path))
		}

		return m, cmd
	}

	return m, nil
}

func (m ImportModel) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case importStateFilePick, importStateResult:
		m.state = importStateKindSelect
		m.err = nil
		m.result = nil

		return m, nil
	}

	return m, Back
}

func (m ImportModel) updateKindSelect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp:
		if m.kindCursor > 0 {
			m.kindCursor--
		}
	case tea.KeyDown:
		if m.kindCursor < len(m.kindOptions)-1 {
			m.kindCursor++
		}
	case tea.KeyEnter:
		if len(m.kindOptions) == 0 {
			return m, nil
		}

		m.selectedKind = m.kindOptions[m.kindCursor]
		m.state = importStateFilePick

		return m, m.filePicker.Init()
	}

	return m, nil
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateKindSelect:
		return m.viewKindSelect()
	case importStateFilePick:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("Select CSV file (%s):\n\n%s", m.selectedKind, m.filePicker.View()),
		)
	case importStateImporting:
		return lipgloss.NewStyle().Padding(2).Render(
			fmt.Sprintf("%s Importing %s...", m.spinner.View(), m.sourceFile),
		)
	case importStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ImportModel) viewKindSelect() string {
	s := "Select import type:\n\n"

	for i, kind := range m.kindOptions {
		cursor := " "
		if i == m.kindCursor {
			cursor = ">"
		}

		s += fmt.Sprintf("%s %s\n", cursor, string(kind))
	}

	return lipgloss.NewStyle().Padding(2).Render(s)
}

func (m ImportModel) viewResult() string {
	style := lipgloss.NewStyle().Padding(1)

	if m.err != nil {
		return style.Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n(Esc to go back)")
	}

	res := m.result

	summary := fmt.Sprintf("%d rows read, %d valid, %d invalid", res.TotalRows, res.ValidRows, res.InvalidRows)
	if res.Success {
		summary = successStyle.Render("Import succeeded: " + summary)
	} else {
		summary = errorStyle.Render("Import failed: " + summary)
	}

	parts := []string{headerStyle.Render(string(m.selectedKind)), "", summary}

	if len(res.Data) > 0 {
		parts = append(parts, "", mutedStyle.Render("First record: "+formatRecord(res.Data[0])))
	}

	if len(m.errorList.Items()) > 0 {
		parts = append(parts, "", m.errorList.View())
	}

	return style.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func formatRecord(r csvimport.Record) string {
	fields := make([]string, 0, len(r))
	for k, v := range r {
		fields = append(fields, fmt.Sprintf("%s=%v", k, v))
	}

	return strings.Join(sortedStrings(fields), ", ")
}

// Messages

type importResultMsg struct {
	result *csvimport.Result
	err    error
}

func (m ImportModel) importCmd(path string) tea.Cmd {
	kind := m.selectedKind
	svc := m.importService

	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return importResultMsg{err: err}
		}
		defer f.Close()

		result, err := svc.Import(kind, f)
		if err != nil {
			return importResultMsg{err: err}
		}

		return importResultMsg{result: result}
	}
}

// Error list

type messageItem struct {
	text    string
	warning bool
}

func (i messageItem) Title() string       { return i.text }
func (i messageItem) Description() string { return "" }
func (i messageItem) FilterValue() string { return i.text }

type messageDelegate struct{}

func (d messageDelegate) Height() int                             { return 1 }
func (d messageDelegate) Spacing() int                            { return 0 }
func (d messageDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d messageDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(messageItem)
	if !ok {
		return
	}

	cursor := "  "
	if index == m.Index() {
		cursor = "> "
	}

	text := errorStyle.Render(item.text)
	if item.warning {
		text = mutedStyle.Render(item.text)
	}

	fmt.Fprint(w, cursor+text)
}

func newMessageList(errs, warnings []string) list.Model {
	items := make([]list.Item, 0, len(errs)+len(warnings))
	for _, e := range errs {
		items = append(items, messageItem{text: e})
	}

	for _, w := range warnings {
		items = append(items, messageItem{text: w, warning: true})
	}

	l := list.New(items, messageDelegate{}, 80, 12)
	l.Title = "Errors and warnings"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	return l
}
