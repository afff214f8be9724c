package domain

import "strings"

type ProjectStatus string

const (
	ProjectActive   ProjectStatus = "active"
	ProjectArchived ProjectStatus = "archived"
)

type OccurrenceStatus string

const (
	OccurrenceScheduled OccurrenceStatus = "scheduled"
	OccurrenceConfirmed OccurrenceStatus = "confirmed"
	OccurrenceCompleted OccurrenceStatus = "completed"
	OccurrencePending   OccurrenceStatus = "pending"
	OccurrenceCancelled OccurrenceStatus = "cancelled"
)

// CostType is how a venue charges for an occurrence.
type CostType string

const (
	CostFree   CostType = "free"
	CostRented CostType = "rented"
	CostInKind CostType = "in_kind"
)

// CostPeriod is the billing unit applied to a rented venue's cost.
type CostPeriod string

const (
	PeriodFlatRate CostPeriod = "flat_rate"
	PeriodPerDay   CostPeriod = "per_day"
	PeriodPerHour  CostPeriod = "per_hour"
)

type WorkType string

const (
	WorkPaid      WorkType = "paid"
	WorkInKind    WorkType = "in_kind"
	WorkVolunteer WorkType = "volunteer"
)

type ActivityStatus string

const (
	ActivityPending  ActivityStatus = "pending"
	ActivityApproved ActivityStatus = "approved"
)

// ItemStatus tracks the funding decision on a revenue line (grant applications,
// sponsorship asks). Expense lines carry no status.
type ItemStatus string

const (
	ItemPending  ItemStatus = "pending"
	ItemApproved ItemStatus = "approved"
	ItemDenied   ItemStatus = "denied"
)

type AssociationType string

const (
	AssociationProject AssociationType = "project"
	AssociationEvent   AssociationType = "event"
)

// Category names a fixed section of a DetailedBudget. Tickets and Venue are
// derived categories: they appear in summaries but never hold line items.
type Category string

const (
	CategoryGrants        Category = "grants"
	CategorySales         Category = "sales"
	CategoryFundraising   Category = "fundraising"
	CategoryContributions Category = "contributions"
	CategoryTickets       Category = "tickets"

	CategoryProfessionalFees        Category = "professional_fees"
	CategoryTravel                  Category = "travel"
	CategoryProduction              Category = "production"
	CategoryAdministration          Category = "administration"
	CategoryResearch                Category = "research"
	CategoryProfessionalDevelopment Category = "professional_development"
	CategoryVenue                   Category = "venue"
)

// RevenueCategories lists the itemized revenue categories in display order.
var RevenueCategories = []Category{
	CategoryGrants,
	CategorySales,
	CategoryFundraising,
	CategoryContributions,
}

// ExpenseCategories lists the itemized expense categories in display order.
var ExpenseCategories = []Category{
	CategoryProfessionalFees,
	CategoryTravel,
	CategoryProduction,
	CategoryAdministration,
	CategoryResearch,
	CategoryProfessionalDevelopment,
}

// IsRevenue reports whether c is an itemized revenue category.
func (c Category) IsRevenue() bool {
	for _, r := range RevenueCategories {
		if r == c {
			return true
		}
	}
	return false
}

// IsItemized reports whether c can hold BudgetItems.
func (c Category) IsItemized() bool {
	if c.IsRevenue() {
		return true
	}
	for _, e := range ExpenseCategories {
		if e == c {
			return true
		}
	}
	return false
}

var categoryAliases = map[string]Category{
	"professionalfees":        CategoryProfessionalFees,
	"professionaldevelopment": CategoryProfessionalDevelopment,
}

// ParseCategory accepts snake_case, kebab-case and camelCase spellings of an
// itemized category. The second return is false for unknown names.
func ParseCategory(s string) (Category, bool) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.ReplaceAll(norm, "-", "_")
	c := Category(norm)
	if c.IsItemized() {
		return c, true
	}
	if alias, ok := categoryAliases[strings.ReplaceAll(norm, "_", "")]; ok {
		return alias, true
	}
	return "", false
}

// ParseItemStatus maps free-form input onto an ItemStatus. Anything that is
// not approved or denied is treated as pending.
func ParseItemStatus(s string) ItemStatus {
	switch ItemStatus(strings.ToLower(strings.TrimSpace(s))) {
	case ItemApproved:
		return ItemApproved
	case ItemDenied:
		return ItemDenied
	default:
		return ItemPending
	}
}
