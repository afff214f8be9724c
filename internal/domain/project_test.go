package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateShortID_Valid(t *testing.T) {
	cases := []string{"DANCE01", "ABC1234", "ABCDEF01", "XYZ99"}
	for _, id := range cases {
		p := &Project{ShortID: id}
		assert.NoError(t, p.ValidateShortID(), "should accept %q", id)
	}
}

func TestValidateShortID_Empty(t *testing.T) {
	p := &Project{ShortID: ""}
	err := p.ValidateShortID()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required")
}

func TestValidateShortID_Lowercase(t *testing.T) {
	p := &Project{ShortID: "dance01"}
	err := p.ValidateShortID()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "uppercase")
}

func TestValidateShortID_TooShort(t *testing.T) {
	p := &Project{ShortID: "AB1"}
	err := p.ValidateShortID()
	require.Error(t, err)
}

func TestValidateShortID_NoDigits(t *testing.T) {
	p := &Project{ShortID: "THEATRE"}
	err := p.ValidateShortID()
	require.Error(t, err)
}

func TestDisplayID_WithShortID(t *testing.T) {
	p := &Project{ID: "550e8400-e29b-41d4-a716-446655440000", ShortID: "DANCE01"}
	assert.Equal(t, "DANCE01", p.DisplayID())
}

func TestDisplayID_WithoutShortID(t *testing.T) {
	p := &Project{ID: "550e8400-e29b-41d4-a716-446655440000", ShortID: ""}
	assert.Equal(t, "550e8400", p.DisplayID())
}

func TestDisplayID_ShortUUID(t *testing.T) {
	p := &Project{ID: "abc", ShortID: ""}
	assert.Equal(t, "abc", p.DisplayID())
}

func TestPersistedSales(t *testing.T) {
	p := &Project{EstimatedSales: decimal.NewFromInt(1000), ActualSales: decimal.RequireFromString("1200.00")}
	figures := p.PersistedSales()
	assert.True(t, figures.Equal(SalesFigures{
		Estimated: decimal.RequireFromString("1000.0"),
		Actual:    decimal.NewFromInt(1200),
	}), "comparison is by value, not scale")
}

func TestCountsTowardActuals(t *testing.T) {
	tests := []struct {
		name string
		task Task
		want bool
	}{
		{"paid linked", Task{WorkType: WorkPaid, BudgetItemID: "b-1"}, true},
		{"in kind linked", Task{WorkType: WorkInKind, BudgetItemID: "b-1"}, true},
		{"volunteer", Task{WorkType: WorkVolunteer, BudgetItemID: "b-1"}, false},
		{"unlinked", Task{WorkType: WorkPaid}, false},
		{"empty work type", Task{BudgetItemID: "b-1"}, false},
		{"unknown work type", Task{WorkType: "contract", BudgetItemID: "b-1"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.task.CountsTowardActuals())
		})
	}
}
