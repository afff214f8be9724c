package formatter

import (
	"testing"

	"github.com/alexanderramin/encore/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestFormatBudget_ShowsLinesAndEmptyCategories(t *testing.T) {
	var b domain.DetailedBudget
	b, grant, _ := b.AddItem(domain.CategoryGrants, "arts_council", "g1")
	b, _ = b.UpdateItem(grant.ID, domain.FieldAmount, "10000")
	b, _ = b.UpdateItem(grant.ID, domain.FieldStatus, "approved")
	b, fees, _ := b.AddItem(domain.CategoryProfessionalFees, "my_own_fee", "f1")
	b, _ = b.UpdateItem(fees.ID, domain.FieldAmount, "2500")
	b, _ = b.UpdateItem(fees.ID, domain.FieldActualAmount, "2600")

	out := stripANSI(FormatBudget(b, map[string]string{"my_own_fee": "Choreographer"}, "$"))

	assert.Contains(t, out, "Arts Council Grant")
	assert.Contains(t, out, "$10,000.00")
	assert.Contains(t, out, "approved")
	assert.Contains(t, out, "Choreographer")
	assert.Contains(t, out, "$2,600.00")
	assert.Contains(t, out, "Travel  (none)")
	assert.Contains(t, out, "actual not entered")
}

func TestFormatBudget_TicketActual(t *testing.T) {
	b := domain.DetailedBudget{}.SetTicketActualRevenue("4200")

	out := stripANSI(FormatBudget(b, nil, "€"))

	assert.Contains(t, out, "actual €4,200.00")
}
