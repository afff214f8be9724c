package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/encore/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// ProjectInspectData holds all data needed to render a project inspect view.
type ProjectInspectData struct {
	Project     *domain.Project
	Occurrences []domain.Occurrence
	Tasks       []domain.Task
	Sessions    []domain.SaleSession
	Currency    string
}

// FormatProjectList renders a styled project list inside a bordered box.
func FormatProjectList(projects []*domain.Project, symbol string) string {
	headers := []string{"ID", "NAME", "DISCIPLINE", "STATUS", "BUDGET LINES", "EST. SALES", "SALES"}
	rows := make([][]string, 0, len(projects))

	for _, p := range projects {
		id := p.DisplayID()
		if strings.TrimSpace(id) == "" {
			id = "--"
		}
		discipline := Dim("--")
		if p.Discipline != "" {
			discipline = StylePurple.Render(p.Discipline)
		}
		rows = append(rows, []string{
			id,
			Bold(p.Name),
			discipline,
			StatusPill(p.Status),
			fmt.Sprintf("%d", p.Budget.ItemCount()),
			Money(p.EstimatedSales, symbol),
			Money(p.ActualSales, symbol),
		})
	}

	table := RenderTable(headers, rows,
		AlignLeft, AlignLeft, AlignLeft, AlignLeft, AlignRight, AlignRight, AlignRight)
	return RenderBox("Projects", table)
}

// FormatProjectInspect renders a project card: metadata on the left, the
// schedule and work summary on the right.
func FormatProjectInspect(data ProjectInspectData) string {
	left := buildMetadataPanel(data.Project, data.Currency)
	right := buildSchedulePanel(data)
	combined := lipgloss.JoinHorizontal(lipgloss.Top, left, "    ", right)
	return RenderBox("", combined)
}

func buildMetadataPanel(p *domain.Project, symbol string) string {
	var b strings.Builder

	b.WriteString(StyleBold.Render(p.Name) + "\n")
	if p.Discipline != "" {
		b.WriteString(StylePurple.Render(p.Discipline) + "\n")
	}
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("STATUS "), StatusPill(p.Status)))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("ID     "), p.DisplayID()))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("UUID   "), TruncID(p.ID)))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("CREATED"), StyleFg.Render(HumanDate(p.CreatedAt))))
	b.WriteString(fmt.Sprintf("%s  %d\n", StyleDim.Render("LINES  "), p.Budget.ItemCount()))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("EST.   "), Money(p.EstimatedSales, symbol)))
	b.WriteString(fmt.Sprintf("%s  %s", StyleDim.Render("SALES  "), Money(p.ActualSales, symbol)))

	return b.String()
}

func buildSchedulePanel(data ProjectInspectData) string {
	var b strings.Builder

	b.WriteString(StyleHeader.Render("SCHEDULE") + "\n")
	if len(data.Occurrences) == 0 {
		b.WriteString(Dim("no occurrences") + "\n")
	}
	for _, o := range data.Occurrences {
		title := o.Title
		if o.IsTemplate {
			title += Dim(" (template)")
		}
		b.WriteString(fmt.Sprintf("%s  %s  %s\n",
			OccurrenceStatusPill(o.Status), StyleFg.Render(DateRange(o.StartDate, o.EndDate)), title))
	}

	b.WriteString("\n" + StyleHeader.Render("WORK") + "\n")
	b.WriteString(fmt.Sprintf("%d tasks, %d sale sessions", len(data.Tasks), len(data.Sessions)))

	return b.String()
}
