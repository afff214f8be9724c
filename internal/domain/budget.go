package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// BudgetItem is one manually entered projected revenue or expense amount.
type BudgetItem struct {
	ID           string              `json:"id"`
	Source       string              `json:"source"`
	Description  string              `json:"description"`
	Amount       decimal.Decimal     `json:"amount"`
	ActualAmount decimal.NullDecimal `json:"actualAmount"`
	Status       ItemStatus          `json:"status,omitempty"`
}

// TicketRevenue is a scalar slot: ticket revenue is computed from offerings,
// never itemized. Only the realised figure is entered by hand.
type TicketRevenue struct {
	ActualRevenue decimal.NullDecimal `json:"actualRevenue"`
}

type Revenues struct {
	Grants        []BudgetItem  `json:"grants"`
	Tickets       TicketRevenue `json:"tickets"`
	Sales         []BudgetItem  `json:"sales"`
	Fundraising   []BudgetItem  `json:"fundraising"`
	Contributions []BudgetItem  `json:"contributions"`
}

type Expenses struct {
	ProfessionalFees        []BudgetItem `json:"professionalFees"`
	Travel                  []BudgetItem `json:"travel"`
	Production              []BudgetItem `json:"production"`
	Administration          []BudgetItem `json:"administration"`
	Research                []BudgetItem `json:"research"`
	ProfessionalDevelopment []BudgetItem `json:"professionalDevelopment"`
}

// DetailedBudget is the fixed-shape financial plan owned by a project.
//
// It is a value type. Every mutating method returns a new DetailedBudget and
// leaves the receiver untouched; a changed category always gets a freshly
// allocated slice, unchanged categories are shared. Revision increases by one
// per successful mutation so dependents can detect change without deep
// comparison.
type DetailedBudget struct {
	Revision uint64   `json:"revision"`
	Revenues Revenues `json:"revenues"`
	Expenses Expenses `json:"expenses"`
}

// ItemField names an editable BudgetItem field.
type ItemField string

const (
	FieldDescription  ItemField = "description"
	FieldAmount       ItemField = "amount"
	FieldActualAmount ItemField = "actualAmount"
	FieldStatus       ItemField = "status"
)

// ParseItemField accepts camelCase and snake_case field names.
func ParseItemField(s string) (ItemField, bool) {
	switch strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "_", "")) {
	case "description":
		return FieldDescription, true
	case "amount":
		return FieldAmount, true
	case "actualamount", "actual":
		return FieldActualAmount, true
	case "status":
		return FieldStatus, true
	}
	return "", false
}

// Items returns the line items of an itemized category, or nil.
func (b DetailedBudget) Items(c Category) []BudgetItem {
	switch c {
	case CategoryGrants:
		return b.Revenues.Grants
	case CategorySales:
		return b.Revenues.Sales
	case CategoryFundraising:
		return b.Revenues.Fundraising
	case CategoryContributions:
		return b.Revenues.Contributions
	case CategoryProfessionalFees:
		return b.Expenses.ProfessionalFees
	case CategoryTravel:
		return b.Expenses.Travel
	case CategoryProduction:
		return b.Expenses.Production
	case CategoryAdministration:
		return b.Expenses.Administration
	case CategoryResearch:
		return b.Expenses.Research
	case CategoryProfessionalDevelopment:
		return b.Expenses.ProfessionalDevelopment
	}
	return nil
}

// withItems returns a copy of b with category c replaced by items.
func (b DetailedBudget) withItems(c Category, items []BudgetItem) DetailedBudget {
	switch c {
	case CategoryGrants:
		b.Revenues.Grants = items
	case CategorySales:
		b.Revenues.Sales = items
	case CategoryFundraising:
		b.Revenues.Fundraising = items
	case CategoryContributions:
		b.Revenues.Contributions = items
	case CategoryProfessionalFees:
		b.Expenses.ProfessionalFees = items
	case CategoryTravel:
		b.Expenses.Travel = items
	case CategoryProduction:
		b.Expenses.Production = items
	case CategoryAdministration:
		b.Expenses.Administration = items
	case CategoryResearch:
		b.Expenses.Research = items
	case CategoryProfessionalDevelopment:
		b.Expenses.ProfessionalDevelopment = items
	default:
		return b
	}
	b.Revision++
	return b
}

// FindItem locates an item by id across all itemized categories.
func (b DetailedBudget) FindItem(id string) (Category, BudgetItem, bool) {
	for _, c := range append(append([]Category{}, RevenueCategories...), ExpenseCategories...) {
		for _, it := range b.Items(c) {
			if it.ID == id {
				return c, it, true
			}
		}
	}
	return "", BudgetItem{}, false
}

// HasSource reports whether category c already holds an item for source.
func (b DetailedBudget) HasSource(c Category, source string) bool {
	for _, it := range b.Items(c) {
		if it.Source == source {
			return true
		}
	}
	return false
}

// AddItem attaches a zero-amount item for source to category c. It is a no-op
// (added == false) when c is not itemized, source is blank, or the category
// already holds that source.
func (b DetailedBudget) AddItem(c Category, source, id string) (next DetailedBudget, item BudgetItem, added bool) {
	source = strings.TrimSpace(source)
	if !c.IsItemized() || source == "" || id == "" || b.HasSource(c, source) {
		return b, BudgetItem{}, false
	}
	item = BudgetItem{ID: id, Source: source, Amount: decimal.Zero}
	if c.IsRevenue() {
		item.Status = ItemPending
	}
	cur := b.Items(c)
	items := make([]BudgetItem, len(cur), len(cur)+1)
	copy(items, cur)
	items = append(items, item)
	return b.withItems(c, items), item, true
}

// UpdateItem replaces a single field on the item with the given id. Numeric
// fields coerce malformed input to zero; an empty actual amount clears it.
// Status is only meaningful on revenue items and is ignored elsewhere.
func (b DetailedBudget) UpdateItem(id string, field ItemField, value string) (DetailedBudget, bool) {
	c, _, ok := b.FindItem(id)
	if !ok {
		return b, false
	}
	if field == FieldStatus && !c.IsRevenue() {
		return b, false
	}

	cur := b.Items(c)
	items := make([]BudgetItem, len(cur))
	copy(items, cur)
	for i := range items {
		if items[i].ID != id {
			continue
		}
		switch field {
		case FieldDescription:
			items[i].Description = value
		case FieldAmount:
			items[i].Amount = ParseAmount(value)
		case FieldActualAmount:
			if strings.TrimSpace(value) == "" {
				items[i].ActualAmount = decimal.NullDecimal{}
			} else {
				items[i].ActualAmount = decimal.NewNullDecimal(ParseAmount(value))
			}
		case FieldStatus:
			items[i].Status = ParseItemStatus(value)
		default:
			return b, false
		}
	}
	return b.withItems(c, items), true
}

// RemoveItem deletes the item with the given id.
func (b DetailedBudget) RemoveItem(id string) (DetailedBudget, bool) {
	c, _, ok := b.FindItem(id)
	if !ok {
		return b, false
	}
	cur := b.Items(c)
	items := make([]BudgetItem, 0, len(cur)-1)
	for _, it := range cur {
		if it.ID != id {
			items = append(items, it)
		}
	}
	return b.withItems(c, items), true
}

// SetTicketActualRevenue records the realised ticket revenue. Empty input
// clears the slot.
func (b DetailedBudget) SetTicketActualRevenue(value string) DetailedBudget {
	if strings.TrimSpace(value) == "" {
		b.Revenues.Tickets.ActualRevenue = decimal.NullDecimal{}
	} else {
		b.Revenues.Tickets.ActualRevenue = decimal.NewNullDecimal(ParseAmount(value))
	}
	b.Revision++
	return b
}

// ItemCount returns the number of line items across all categories.
func (b DetailedBudget) ItemCount() int {
	n := 0
	for _, c := range RevenueCategories {
		n += len(b.Items(c))
	}
	for _, c := range ExpenseCategories {
		n += len(b.Items(c))
	}
	return n
}
