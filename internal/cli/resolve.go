package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/encore/internal/domain"
)

// resolveProject resolves a ShortID or full project ID.
func resolveProject(ctx context.Context, app *App, input string) (*domain.Project, error) {
	return app.Projects.Resolve(ctx, input)
}

// matchID resolves a full ID or a unique ID prefix, as printed by the list
// commands, against candidate IDs.
func matchID(kind, input string, ids []string) (string, error) {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return "", fmt.Errorf("%s ID is required", kind)
	}
	var matches []string
	for _, id := range ids {
		if id == input {
			return id, nil
		}
		if strings.HasPrefix(id, input) {
			matches = append(matches, id)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no %s matches %q", kind, input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%s prefix %q is ambiguous (%d matches)", kind, input, len(matches))
	}
}

func resolveBudgetItemID(b domain.DetailedBudget, input string) (string, error) {
	var ids []string
	for _, c := range domain.RevenueCategories {
		for _, it := range b.Items(c) {
			ids = append(ids, it.ID)
		}
	}
	for _, c := range domain.ExpenseCategories {
		for _, it := range b.Items(c) {
			ids = append(ids, it.ID)
		}
	}
	return matchID("budget line", input, ids)
}

func resolveVenueID(ctx context.Context, app *App, input string) (string, error) {
	venues, err := app.Venues.List(ctx)
	if err != nil {
		return "", err
	}
	ids := make([]string, len(venues))
	for i, v := range venues {
		ids[i] = v.ID
	}
	return matchID("venue", input, ids)
}

func resolveOccurrenceID(ctx context.Context, app *App, projectID, input string) (string, error) {
	occs, err := app.Schedule.ListOccurrences(ctx, projectID)
	if err != nil {
		return "", err
	}
	ids := make([]string, len(occs))
	for i, o := range occs {
		ids[i] = o.ID
	}
	return matchID("occurrence", input, ids)
}

func resolveOfferingID(ctx context.Context, app *App, projectID, input string) (string, error) {
	offerings, err := app.Schedule.ListOfferings(ctx, projectID)
	if err != nil {
		return "", err
	}
	ids := make([]string, len(offerings))
	for i, t := range offerings {
		ids[i] = t.ID
	}
	return matchID("ticket offering", input, ids)
}

func resolveTaskID(ctx context.Context, app *App, projectID, input string) (string, error) {
	tasks, err := app.WorkLog.ListTasks(ctx, projectID)
	if err != nil {
		return "", err
	}
	ids := make([]string, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}
	return matchID("task", input, ids)
}

func resolveActivityID(ctx context.Context, app *App, projectID, input string) (string, error) {
	activities, err := app.WorkLog.ListActivities(ctx, projectID)
	if err != nil {
		return "", err
	}
	ids := make([]string, len(activities))
	for i, a := range activities {
		ids[i] = a.ID
	}
	return matchID("activity", input, ids)
}

func resolveSessionID(ctx context.Context, app *App, projectID, input string) (string, error) {
	sessions, err := app.Sales.ListSessions(ctx, projectID)
	if err != nil {
		return "", err
	}
	ids := make([]string, len(sessions))
	for i, s := range sessions {
		ids[i] = s.ID
	}
	return matchID("sale session", input, ids)
}

// shortRef is the ID prefix the list commands print.
func shortRef(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
