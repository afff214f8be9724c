package projection

import (
	"github.com/alexanderramin/encore/internal/domain"
	"github.com/shopspring/decimal"
)

// Actuals is the value of approved time, keyed by the budget line each task
// is linked to.
type Actuals struct {
	ByBudgetItem  map[string]decimal.Decimal
	Paid          decimal.Decimal
	InKind        decimal.Decimal
	ApprovedHours decimal.Decimal
}

// Total is the sum of paid and in-kind actuals.
func (a Actuals) Total() decimal.Decimal {
	return a.Paid.Add(a.InKind)
}

// ComputeActuals multiplies approved hours by each task's hourly rate.
// Only paid and in-kind tasks linked to a budget line count. Pending
// activities and activities whose task is unknown contribute nothing.
func ComputeActuals(tasks []domain.Task, activities []domain.Activity) Actuals {
	byID := make(map[string]*domain.Task, len(tasks))
	for i := range tasks {
		byID[tasks[i].ID] = &tasks[i]
	}

	result := Actuals{
		ByBudgetItem:  make(map[string]decimal.Decimal),
		Paid:          decimal.Zero,
		InKind:        decimal.Zero,
		ApprovedHours: decimal.Zero,
	}
	for _, a := range activities {
		if a.Status != domain.ActivityApproved {
			continue
		}
		task, ok := byID[a.TaskID]
		if !ok || !task.CountsTowardActuals() {
			continue
		}

		value := a.Hours.Mul(task.HourlyRate)
		prev, ok := result.ByBudgetItem[task.BudgetItemID]
		if !ok {
			prev = decimal.Zero
		}
		result.ByBudgetItem[task.BudgetItemID] = prev.Add(value)
		result.ApprovedHours = result.ApprovedHours.Add(a.Hours)

		switch task.WorkType {
		case domain.WorkPaid:
			result.Paid = result.Paid.Add(value)
		case domain.WorkInKind:
			result.InKind = result.InKind.Add(value)
		}
	}
	return result
}
