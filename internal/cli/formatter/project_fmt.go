package formatter

import (
	"fmt"
	"strings"

	"github.com/mhollis/lath/internal/domain"
)

// FormatProjectList renders projects as an aligned table.
func FormatProjectList(projects []*domain.Project) string {
	headers := []string{"ID", "NAME", "CLIENT", "START", "STATUS"}
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, []string{
			StyleBlue.Render(p.ShortID),
			p.Name,
			p.Client,
			FormatDate(p.StartDate),
			ProjectStatusIndicator(p.Status),
		})
	}
	return RenderTable(headers, rows)
}

// FormatProjectDetail renders a single project with its estimate lines.
func FormatProjectDetail(p *domain.Project, lines []domain.EstimateLineItem) string {
	var b strings.Builder

	b.WriteString(Header(fmt.Sprintf("%s %s", p.DisplayID(), p.Name)))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("Client: "), orDash(p.Client)))
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("Address:"), orDash(p.Address)))
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("Start:  "), FormatDate(p.StartDate)))
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("Status: "), ProjectStatusIndicator(p.Status)))

	if len(lines) > 0 {
		b.WriteString("\n")
		b.WriteString(FormatEstimateLines(lines))
	}
	return b.String()
}

// FormatEstimateLines renders estimate line items with a total row.
func FormatEstimateLines(lines []domain.EstimateLineItem) string {
	headers := []string{"#", "CATEGORY", "NAME", "AMOUNT"}
	rows := make([][]string, 0, len(lines)+1)
	var total int64
	for i, line := range lines {
		total += line.AmountCents
		rows = append(rows, []string{
			Dim(fmt.Sprintf("%d", i+1)),
			StylePurple.Render(line.Category),
			line.Name,
			FormatMoney(line.AmountCents),
		})
	}
	rows = append(rows, []string{"", "", Bold("Total"), Bold(FormatMoney(total))})
	return RenderTable(headers, rows)
}

func orDash(s string) string {
	if s == "" {
		return Dim("—")
	}
	return s
}
