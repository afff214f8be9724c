package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/encore/internal/cli/formatter"
	"github.com/alexanderramin/encore/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage billable tasks",
	}

	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskListCmd(app),
		newTaskRemoveCmd(app),
	)

	return cmd
}

func newTaskAddCmd(app *App) *cobra.Command {
	var title, workType, budgetLine string
	var rate decimal.Decimal

	cmd := &cobra.Command{
		Use:   "add PROJECT",
		Short: "Add a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}
			t := &domain.Task{
				ProjectID:  p.ID,
				Title:      title,
				WorkType:   domain.WorkType(workType),
				HourlyRate: rate,
			}
			if budgetLine != "" {
				if t.BudgetItemID, err = resolveBudgetItemID(p.Budget, budgetLine); err != nil {
					return err
				}
			}
			if err := app.WorkLog.CreateTask(ctx, t); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added task %s (%s)\n", t.Title, shortRef(t.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Task title")
	cmd.Flags().StringVar(&workType, "type", "paid", "Work type (paid|in_kind|volunteer)")
	decimalFlag(cmd.Flags(), &rate, "rate", "Hourly rate")
	cmd.Flags().StringVar(&budgetLine, "budget-line", "", "Expense line ID or prefix approved hours count against")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newTaskListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list PROJECT",
		Short: "List tasks with approved hours",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}
			tasks, err := app.WorkLog.ListTasks(ctx, p.ID)
			if err != nil {
				return err
			}
			if len(tasks) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No tasks.")
				return nil
			}
			activities, err := app.WorkLog.ListActivities(ctx, p.ID)
			if err != nil {
				return err
			}
			hours := make(map[string]decimal.Decimal, len(tasks))
			for _, a := range activities {
				if a.Status == domain.ActivityApproved {
					hours[a.TaskID] = hours[a.TaskID].Add(a.Hours)
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTaskList(tasks, hours, app.Labels, p.Budget, app.currency()))
			return nil
		},
	}
}

func newTaskRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove PROJECT TASK",
		Short: "Remove a task and its activities",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}
			id, err := resolveTaskID(ctx, app, p.ID, args[1])
			if err != nil {
				return err
			}
			if err := app.WorkLog.DeleteTask(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed task %s\n", shortRef(id))
			return nil
		},
	}
}

func newActivityCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Log and approve time against tasks",
	}

	cmd.AddCommand(
		newActivityLogCmd(app),
		newActivityListCmd(app),
		newActivityApproveCmd(app),
		newActivityRemoveCmd(app),
	)

	return cmd
}

func newActivityLogCmd(app *App) *cobra.Command {
	var date, note string
	var hours decimal.Decimal
	var approved bool

	cmd := &cobra.Command{
		Use:   "log PROJECT TASK",
		Short: "Log hours against a task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}
			taskID, err := resolveTaskID(ctx, app, p.ID, args[1])
			if err != nil {
				return err
			}
			day, err := parseOptionalDate("date", date)
			if err != nil {
				return err
			}
			a := &domain.Activity{TaskID: taskID, Date: day, Hours: hours, Note: note}
			if approved {
				a.Status = domain.ActivityApproved
			}
			if err := app.WorkLog.LogActivity(ctx, a); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %sh (%s, %s)\n", a.Hours, a.Status, shortRef(a.ID))
			return nil
		},
	}

	decimalFlag(cmd.Flags(), &hours, "hours", "Hours worked")
	cmd.Flags().StringVar(&date, "date", "", "Date worked (YYYY-MM-DD), defaults to today")
	cmd.Flags().StringVar(&note, "note", "", "Note")
	cmd.Flags().BoolVar(&approved, "approved", false, "Record as already approved")
	_ = cmd.MarkFlagRequired("hours")

	return cmd
}

func newActivityListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list PROJECT",
		Short: "List logged activities",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}
			activities, err := app.WorkLog.ListActivities(ctx, p.ID)
			if err != nil {
				return err
			}
			if len(activities) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No activities logged.")
				return nil
			}
			tasks, err := app.WorkLog.ListTasks(ctx, p.ID)
			if err != nil {
				return err
			}
			titles := make(map[string]string, len(tasks))
			for _, t := range tasks {
				titles[t.ID] = t.Title
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatActivityList(activities, titles))
			return nil
		},
	}
}

func newActivityApproveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "approve PROJECT ACTIVITY",
		Short: "Approve logged time so it counts toward actuals",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}
			id, err := resolveActivityID(ctx, app, p.ID, args[1])
			if err != nil {
				return err
			}
			if err := app.WorkLog.ApproveActivity(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Approved activity %s\n", shortRef(id))
			return nil
		},
	}
}

func newActivityRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove PROJECT ACTIVITY",
		Short: "Remove a logged activity",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}
			id, err := resolveActivityID(ctx, app, p.ID, args[1])
			if err != nil {
				return err
			}
			if err := app.WorkLog.DeleteActivity(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed activity %s\n", shortRef(id))
			return nil
		},
	}
}
