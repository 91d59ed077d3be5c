package tui

import (
	"fmt"
	"strings"

	"github.com/Veraticus/spendwise/internal/model"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// Fixed column widths; the description column absorbs the rest.
const (
	dateWidth     = 11
	categoryWidth = 18
	amountWidth   = 14
	methodWidth   = 11
	minDescWidth  = 12

	// title, filters, category, summary, detail, help and spacing
	chromeLines = 11
)

func (m Model) columns() []table.Column {
	fixed := dateWidth + categoryWidth + amountWidth + methodWidth
	// each column carries one cell of padding per side
	desc := m.width - fixed - 2*5
	if desc < minDescWidth {
		desc = minDescWidth
	}
	return []table.Column{
		{Title: "Date", Width: dateWidth},
		{Title: "Description", Width: desc},
		{Title: "Category", Width: categoryWidth},
		{Title: "Amount", Width: amountWidth},
		{Title: "Method", Width: methodWidth},
	}
}

func (m Model) tableHeight() int {
	h := m.height - chromeLines
	if m.help.ShowAll {
		h -= 4
	}
	if h < 3 {
		h = 3
	}
	return h
}

// resize adjusts the table when the terminal or help panel changes.
func (m *Model) resize() {
	m.table.SetColumns(m.columns())
	m.table.SetHeight(m.tableHeight())
	m.table.SetWidth(m.width)
	m.help.Width = m.width
}

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.theme.Title.Render("💰 Expenses"))
	b.WriteString("\n\n")
	b.WriteString(m.renderFilters())
	b.WriteString("\n\n")
	b.WriteString(m.table.View())
	b.WriteString("\n\n")
	b.WriteString(m.renderSummary())
	b.WriteString("\n")
	b.WriteString(m.renderDetail())
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keymap))
	return b.String()
}

func (m Model) renderFilters() string {
	parts := make([]string, 0, inputCount+1)
	for i := range m.inputs {
		label := m.theme.Label
		if m.focus == i {
			label = m.theme.FocusLabel
		}
		value := m.inputs[i].View()
		parts = append(parts, label.Render(inputLabels[i]+":")+" "+value)
	}

	parts = append(parts, m.theme.Label.Render("Category:")+" "+m.theme.Bold.Render(categoryLabel(m.category)))

	top := lipgloss.JoinHorizontal(lipgloss.Top, padRight(parts[inputSearch], 48), parts[inputCount])
	bottom := lipgloss.JoinHorizontal(lipgloss.Top,
		padRight(parts[inputFrom], 24), padRight(parts[inputTo], 24), parts[inputAmount])
	return top + "\n" + bottom
}

func (m Model) renderSummary() string {
	if m.summary.Count == 0 {
		return m.theme.StatusError.Render("No expenses match the current filters")
	}
	noun := "expenses"
	if m.summary.Count == 1 {
		noun = "expense"
	}
	return m.theme.StatusInfo.Render(fmt.Sprintf("%d %s", m.summary.Count, noun)) +
		m.theme.Subtitle.Render(fmt.Sprintf("  Total %s  Average %s",
			m.settings.FormatAmount(m.summary.Total),
			m.settings.FormatAmount(m.summary.Average)))
}

func (m Model) renderDetail() string {
	e, ok := m.Selected()
	if !ok {
		return ""
	}
	line := fmt.Sprintf("#%d  %s %s  %s %s", e.ID,
		e.Category.Icon(), e.Category.DisplayName(),
		e.PaymentMethod.Icon(), e.PaymentMethod.Label())
	if e.Notes != "" {
		line += "  " + e.Notes
	}
	return m.theme.Subtitle.Render(line)
}

func padRight(s string, width int) string {
	return lipgloss.NewStyle().Width(width).Render(s)
}

func categoryLabel(c model.Category) string {
	if c == "" {
		return "All"
	}
	return c.DisplayName()
}
