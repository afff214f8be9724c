package cli

import (
	"fmt"
	"sort"

	"github.com/alexanderramin/encore/internal/cli/formatter"
	"github.com/alexanderramin/encore/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// encoreHuhTheme returns a custom huh theme using the Gruvbox palette.
func encoreHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// budgetLineAnswers collects a new budget line interactively.
type budgetLineAnswers struct {
	Category string
	Source   string
	Amount   string
}

func categoryOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(domain.RevenueCategories)+len(domain.ExpenseCategories))
	for _, c := range domain.RevenueCategories {
		opts = append(opts, huh.NewOption("Revenue: "+domain.CategoryLabel(c), string(c)))
	}
	for _, c := range domain.ExpenseCategories {
		opts = append(opts, huh.NewOption("Expense: "+domain.CategoryLabel(c), string(c)))
	}
	return opts
}

// sourceOptions lists the predefined sources plus any labelled in config,
// ordered by label.
func sourceOptions(labels map[string]string) []huh.Option[string] {
	keys := make(map[string]bool, len(domain.DefaultSourceLabels)+len(labels))
	for k := range domain.DefaultSourceLabels {
		keys[k] = true
	}
	for k := range labels {
		keys[k] = true
	}
	type entry struct{ key, label string }
	entries := make([]entry, 0, len(keys))
	for k := range keys {
		entries = append(entries, entry{k, domain.LabelFor(k, labels)})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].label < entries[j].label })

	opts := make([]huh.Option[string], 0, len(entries))
	for _, e := range entries {
		opts = append(opts, huh.NewOption(e.label, e.key))
	}
	return opts
}

// budgetLineForm asks for category, source and projected amount.
func budgetLineForm(labels map[string]string, ans *budgetLineAnswers) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Budget Section").
				Options(categoryOptions()...).
				Value(&ans.Category),
			huh.NewSelect[string]().
				Title("Source").
				Options(sourceOptions(labels)...).
				Height(10).
				Value(&ans.Source),
			huh.NewInput().
				Title("Projected Amount").
				Placeholder("0.00").
				Value(&ans.Amount).
				Validate(validateOptionalAmount),
		),
	).WithTheme(encoreHuhTheme()).WithShowHelp(false)
}

// validateOptionalAmount accepts empty or a number, tolerating a currency
// symbol and thousands separators.
func validateOptionalAmount(s string) error {
	if s == "" {
		return nil
	}
	var d decimal.Decimal
	if err := newDecimalValue(&d).Set(s); err != nil {
		return fmt.Errorf("enter a number")
	}
	return nil
}
