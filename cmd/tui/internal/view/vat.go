package view

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/mauricevan/bedrijfsbeheer3.0-sub006/internal/vat"
)

type vatState int

const (
	vatStateForm vatState = iota
	vatStateResult
)

// vatInput is shared with the huh form, which writes through its pointers.
type vatInput struct {
	amount     string
	rateType   string
	customRate string
	reverse    bool
}

type VATModel struct {
	CommonModel

	state vatState
	form  *huh.Form
	input *vatInput

	result  vat.Result
	reverse vat.Reverse
}

func NewVATModel() VATModel {
	input := &vatInput{rateType: string(vat.RateStandard)}

	return VATModel{
		input: input,
		form:  buildVATForm(input),
	}
}

func (m VATModel) Title() string { return "VAT Calculator" }

func (m VATModel) ShortHelp() string {
	if m.state == vatStateResult {
		return "Enter: new calculation | Esc: back"
	}

	return "Esc: back | Enter: next"
}

func (m VATModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m VATModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEsc:
			return m, Back
		case tea.KeyEnter:
			if m.state == vatStateResult {
				m.input.amount = ""
				m.form = buildVATForm(m.input)
				m.state = vatStateForm

				return m, m.form.Init()
			}
		}
	}

	if m.state != vatStateForm {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.calculate()
	m.state = vatStateResult

	return m, nil
}

func (m *VATModel) calculate() {
	amount, _ := parseAmount(m.input.amount)

	if m.input.reverse {
		rate := vat.EffectiveRate(vat.ParseRateType(m.input.rateType), m.customRate())
		m.reverse = vat.FromTotal(amount, rate)

		return
	}

	m.result = vat.Calculate(amount, vat.ParseRateType(m.input.rateType), m.customRate())
}

func (m VATModel) customRate() *float64 {
	if strings.TrimSpace(m.input.customRate) == "" {
		return nil
	}

	r, err := parseAmount(m.input.customRate)
	if err != nil {
		return nil
	}

	return &r
}

func (m VATModel) View() string {
	style := lipgloss.NewStyle().Padding(1)

	if m.state == vatStateForm {
		return style.Render(m.form.View())
	}

	if m.input.reverse {
		return style.Render(lipgloss.JoinVertical(lipgloss.Left,
			headerStyle.Render("Amount including VAT"),
			"",
			fmt.Sprintf("Excl. VAT: %s", FormatAmount(m.reverse.Exclusive)),
			fmt.Sprintf("VAT:       %s", FormatAmount(m.reverse.VAT)),
			fmt.Sprintf("Incl. VAT: %s", FormatAmount(m.reverse.Inclusive)),
		))
	}

	return style.Render(lipgloss.JoinVertical(lipgloss.Left,
		headerStyle.Render(fmt.Sprintf("VAT at %g%%", m.result.EffectiveVATRate)),
		"",
		fmt.Sprintf("Subtotal: %s", FormatAmount(m.result.Subtotal)),
		fmt.Sprintf("VAT:      %s", FormatAmount(m.result.VATAmount)),
		fmt.Sprintf("Total:    %s", FormatAmount(m.result.Total)),
	))
}

func buildVATForm(input *vatInput) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("amount").
				Title("Amount").
				Placeholder("100,00").
				Validate(validateAmount).
				Value(&input.amount),
			huh.NewSelect[string]().
				Key("rate_type").
				Title("VAT rate").
				Options(
					huh.NewOption("Standard (21%)", string(vat.RateStandard)),
					huh.NewOption("Reduced (9%)", string(vat.RateReduced)),
					huh.NewOption("Zero (0%)", string(vat.RateZero)),
					huh.NewOption("Custom", string(vat.RateCustom)),
				).
				Value(&input.rateType),
			huh.NewInput().
				Key("custom_rate").
				Title("Custom rate (%)").
				Description("Only used with the custom rate").
				Validate(validateOptionalRate).
				Value(&input.customRate),
			huh.NewConfirm().
				Key("reverse").
				Title("Amount includes VAT?").
				Value(&input.reverse),
		),
	).WithWidth(50).WithShowHelp(false)
}

func parseAmount(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}

	return strconv.ParseFloat(s, 64)
}

func validateAmount(s string) error {
	if _, err := parseAmount(s); err != nil {
		return errors.New("enter a number")
	}

	return nil
}

func validateOptionalRate(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	r, err := parseAmount(s)
	if err != nil || r < 0 || r > 100 {
		return errors.New("enter a percentage between 0 and 100")
	}

	return nil
}
