package domain

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultSourceLabels are the display labels for the predefined source keys
// offered when attaching a line to a budget section.
var DefaultSourceLabels = map[string]string{
	"arts_council":           "Arts Council Grant",
	"municipal_grant":        "Municipal Grant",
	"foundation_grant":       "Private Foundation Grant",
	"merchandise":            "Merchandise Sales",
	"concessions":            "Concessions",
	"crowdfunding":           "Crowdfunding Campaign",
	"gala":                   "Fundraising Gala",
	"individual_donors":      "Individual Donors",
	"sponsorship":            "Corporate Sponsorship",
	"in_kind_support":        "In-Kind Support",
	"artist_fees":            "Artist Fees",
	"technician_fees":        "Technician Fees",
	"curator_fees":           "Curator Fees",
	"transportation":         "Transportation",
	"accommodation":          "Accommodation",
	"per_diems":              "Per Diems",
	"materials":              "Materials & Supplies",
	"equipment_rental":       "Equipment Rental",
	"marketing":              "Marketing & Promotion",
	"documentation":          "Documentation",
	"insurance":              "Insurance",
	"bookkeeping":            "Bookkeeping",
	"research_travel":        "Research Travel",
	"workshops":              "Workshops & Training",
	"conference_fees":        "Conference Fees",
	"mentorship":             "Mentorship",
	"administration_support": "Administrative Support",
}

// LabelFor resolves the display label for a source key: an explicit override
// wins, then the predefined label, then a title-cased rendering of the key.
func LabelFor(source string, overrides map[string]string) string {
	if l, ok := overrides[source]; ok && l != "" {
		return l
	}
	if l, ok := DefaultSourceLabels[source]; ok {
		return l
	}
	return cases.Title(language.English).String(strings.ReplaceAll(strings.ReplaceAll(source, "_", " "), "-", " "))
}

var categoryLabels = map[Category]string{
	CategoryGrants:                  "Grants",
	CategorySales:                   "Sales",
	CategoryFundraising:             "Fundraising",
	CategoryContributions:           "Contributions",
	CategoryTickets:                 "Tickets",
	CategoryProfessionalFees:        "Professional Fees",
	CategoryTravel:                  "Travel",
	CategoryProduction:              "Production",
	CategoryAdministration:          "Administration",
	CategoryResearch:                "Research",
	CategoryProfessionalDevelopment: "Professional Development",
	CategoryVenue:                   "Venue Rental",
}

// CategoryLabel returns the display name of a category.
func CategoryLabel(c Category) string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}
