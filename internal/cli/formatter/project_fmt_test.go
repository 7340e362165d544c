package formatter

import (
	"testing"
	"time"

	"github.com/mhollis/lath/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestFormatProjectList(t *testing.T) {
	out := FormatProjectList([]*domain.Project{
		{
			ShortID: "KIT01", Name: "Kitchen Remodel", Client: "Hargrove",
			StartDate: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
			Status:    domain.ProjectActive,
		},
		{
			ShortID: "DECK02", Name: "Deck Build",
			StartDate: time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC),
			Status:    domain.ProjectOnHold,
		},
	})

	assert.Contains(t, out, "KIT01")
	assert.Contains(t, out, "Kitchen Remodel")
	assert.Contains(t, out, "Hargrove")
	assert.Contains(t, out, "on-hold")
}

func TestFormatEstimateLines_Total(t *testing.T) {
	out := FormatEstimateLines([]domain.EstimateLineItem{
		{Category: "demolition", Name: "Gut kitchen", AmountCents: 150000},
		{Category: "framing", Name: "New wall", AmountCents: 325050},
	})

	assert.Contains(t, out, "$1,500.00")
	assert.Contains(t, out, "$3,250.50")
	assert.Contains(t, out, "$4,750.50")
	assert.Contains(t, out, "Total")
}

func TestFormatProjectDetail(t *testing.T) {
	p := &domain.Project{
		ShortID: "GAR03", Name: "Garage Conversion",
		StartDate: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		Status:    domain.ProjectActive,
	}
	out := FormatProjectDetail(p, nil)

	assert.Contains(t, out, "GAR03")
	assert.Contains(t, out, "GARAGE CONVERSION")
	assert.Contains(t, out, "2026-08-01")
}
