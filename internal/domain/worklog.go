package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Task is a unit of project labour billed at an hourly rate. BudgetItemID
// links it to the expense line its approved hours count against.
type Task struct {
	ID           string
	ProjectID    string
	Title        string
	WorkType     WorkType
	HourlyRate   decimal.Decimal
	BudgetItemID string
	CreatedAt    time.Time
}

// CountsTowardActuals reports whether approved time on t produces actuals:
// paid or in-kind work linked to a budget line. Unknown work types count as
// nothing.
func (t *Task) CountsTowardActuals() bool {
	if t.BudgetItemID == "" {
		return false
	}
	return t.WorkType == WorkPaid || t.WorkType == WorkInKind
}

// Activity is a time-tracking entry logged against a task.
type Activity struct {
	ID        string
	TaskID    string
	Date      time.Time
	Hours     decimal.Decimal
	Status    ActivityStatus
	Note      string
	CreatedAt time.Time
}

// Approve transitions a pending activity to approved. Approving an already
// approved activity is a no-op.
func (a *Activity) Approve() error {
	switch a.Status {
	case ActivityApproved:
		return nil
	case ActivityPending, "":
		a.Status = ActivityApproved
		return nil
	default:
		return fmt.Errorf("cannot approve activity in status %q", a.Status)
	}
}
