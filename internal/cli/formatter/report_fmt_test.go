package formatter

import (
	"testing"

	"github.com/alexanderramin/encore/internal/domain"
	"github.com/alexanderramin/encore/internal/projection"
	"github.com/alexanderramin/encore/internal/report"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatReport_RendersSectionsAndStreams(t *testing.T) {
	var b domain.DetailedBudget
	b, fees, _ := b.AddItem(domain.CategoryProfessionalFees, "artist_fees", "f1")
	b, _ = b.UpdateItem(fees.ID, domain.FieldAmount, "3000")

	streams := projection.EmptyStreams()
	summary := projection.ComputeBalance(b, streams, nil)
	p := &domain.Project{ID: "p1", ShortID: "DANCE01", Name: "Spring Dance"}

	out := stripANSI(FormatReport(report.Build(summary, p), "$"))

	assert.Contains(t, out, "SPRING DANCE [DANCE01]")
	assert.Contains(t, out, "REVENUE")
	assert.Contains(t, out, "EXPENSES")
	assert.Contains(t, out, "TOTALS")
	assert.Contains(t, out, "DERIVED STREAMS")
	assert.Contains(t, out, "Artist Fees")
	assert.Contains(t, out, "-$3,000.00")
	assert.Contains(t, out, "Presentations")
}

func TestFormatBalanceHeadline(t *testing.T) {
	out := stripANSI(FormatBalanceHeadline("Spring Dance", decimal.NewFromInt(-1100), decimal.NewFromInt(250), "$"))

	assert.Equal(t, "Spring Dance  balance -$1,100.00  actual $250.00", out)
}
