package main

import (
	"context"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/mauricevan/bedrijfsbeheer3.0-sub006/cmd/tui/internal/view"
	"github.com/mauricevan/bedrijfsbeheer3.0-sub006/internal/config"
	"github.com/mauricevan/bedrijfsbeheer3.0-sub006/internal/email"
	"github.com/mauricevan/bedrijfsbeheer3.0-sub006/internal/importer"
	"github.com/mauricevan/bedrijfsbeheer3.0-sub006/internal/numbering"
	"github.com/mauricevan/bedrijfsbeheer3.0-sub006/internal/storage"
)

type model struct {
	importService    *importer.Service
	emailParser      *email.Parser
	numberingService *numbering.Service

	currentView View

	importView  view.ImportModel
	emailView   view.EmailModel
	numbersView view.NumbersModel
	vatView     view.VATModel
}

type View int

const (
	ViewMenu    View = 0
	ViewImport  View = 1
	ViewEmail   View = 2
	ViewNumbers View = 3
	ViewVAT     View = 4
)

func initialModel(store storage.Store, cfg *config.Config) model {
	impSvc := importer.NewService()

	if cfg.Import.MappingsFile != "" {
		f, err := os.Open(cfg.Import.MappingsFile)
		if err != nil {
			slog.Error("failed to open import mappings", "error", err)
			os.Exit(1)
		}

		err = impSvc.LoadMappings(f)
		f.Close()

		if err != nil {
			slog.Error("failed to load import mappings", "error", err)
			os.Exit(1)
		}
	}

	parser := email.NewParser()
	numSvc := numbering.NewService(store)

	return model{
		importService:    impSvc,
		emailParser:      parser,
		numberingService: numSvc,
		currentView:      ViewMenu,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewImport
				m.importView = view.NewImportModel(m.importService)

				return m, m.importView.Init()
			case "2":
				m.currentView = ViewEmail
				m.emailView = view.NewEmailModel(m.emailParser)

				return m, m.emailView.Init()
			case "3":
				m.currentView = ViewNumbers
				m.numbersView = view.NewNumbersModel(m.numberingService)

				return m, m.numbersView.Init()
			case "4":
				m.currentView = ViewVAT
				m.vatView = view.NewVATModel()

				return m, m.vatView.Init()
			}
		}

		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	case ViewEmail:
		var newModel tea.Model
		newModel, cmd = m.emailView.Update(msg)
		m.emailView = newModel.(view.EmailModel)
	case ViewNumbers:
		var newModel tea.Model
		newModel, cmd = m.numbersView.Update(msg)
		m.numbersView = newModel.(view.NumbersModel)
	case ViewVAT:
		var newModel tea.Model
		newModel, cmd = m.vatView.Update(msg)
		m.vatView = newModel.(view.VATModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Bedrijfsbeheer TUI\n\n" +
				"1. Import CSV\n" +
				"2. Read Email (.eml)\n" +
				"3. Document Numbers\n" +
				"4. VAT Calculator\n\n" +
				"q. Quit",
		)
	case ViewImport:
		return m.importView.View()
	case ViewEmail:
		return m.emailView.View()
	case ViewNumbers:
		return m.numbersView.View()
	case ViewVAT:
		return m.vatView.View()
	}

	return "Unknown View"
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	store, err := storage.Open(context.Background(), cfg)
	if err != nil {
		slog.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	p := tea.NewProgram(initialModel(store, cfg))
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
