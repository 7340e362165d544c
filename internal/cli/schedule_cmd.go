package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mhollis/lath/internal/cli/formatter"
	"github.com/mhollis/lath/internal/domain"
	"github.com/mhollis/lath/internal/repository"
	"github.com/mhollis/lath/internal/schedule"
	"github.com/spf13/cobra"
)

func newScheduleCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Generate and edit the project schedule",
	}

	cmd.AddCommand(
		newScheduleGenerateCmd(app),
		newScheduleShowCmd(app),
		newScheduleUpdateCmd(app),
		newScheduleLinkCmd(app),
		newScheduleUnlinkCmd(app),
		newScheduleAutocalcCmd(app),
		newScheduleSaveCmd(app),
		newScheduleEditCmd(app),
	)

	return cmd
}

// itemBySeq resolves a 1-based sequence argument to a schedule item.
func itemBySeq(sched *domain.ProjectSchedule, arg string) (*domain.ScheduleItem, error) {
	seq, err := strconv.Atoi(arg)
	if err != nil {
		return nil, fmt.Errorf("invalid item number %q", arg)
	}
	item := sched.ItemBySeq(seq)
	if item == nil {
		return nil, fmt.Errorf("no schedule item #%d", seq)
	}
	return item, nil
}

func loadSchedule(ctx context.Context, app *App, projectArg string) (string, *domain.ProjectSchedule, error) {
	projectID, err := resolveProjectID(ctx, app, projectArg)
	if err != nil {
		return "", nil, err
	}
	sched, err := app.Schedules.Get(ctx, projectID)
	if err != nil {
		return "", nil, err
	}
	return projectID, sched, nil
}

func newScheduleGenerateCmd(app *App) *cobra.Command {
	var start string
	var duration int
	var force bool

	cmd := &cobra.Command{
		Use:   "generate PROJECT",
		Short: "Generate the schedule from the estimate",
		Long: "Generate the schedule from the estimate. Regenerating replaces the\n" +
			"existing schedule, including any manual edits and dependency links.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}

			if _, err := app.Schedules.Get(ctx, projectID); err == nil && !force {
				ok, err := confirmDestructive(app,
					"A schedule already exists. Regenerating discards all manual edits. Continue?",
					"Regenerate")
				if err != nil {
					return err
				}
				if !ok {
					fmt.Println("Cancelled.")
					return nil
				}
			} else if err != nil && !errors.Is(err, repository.ErrScheduleNotFound) {
				return err
			}

			if !cmd.Flags().Changed("duration") {
				duration = app.DefaultDurationDays
			}
			opts := schedule.GenerateOptions{DurationDays: duration}
			if start != "" {
				startDate, err := time.Parse("2006-01-02", start)
				if err != nil {
					return fmt.Errorf("invalid start date %q: %w", start, err)
				}
				opts.StartDate = startDate
			}

			sched, err := app.Schedules.Generate(ctx, projectID, opts)
			if err != nil {
				return err
			}

			if len(sched.Items) == 0 {
				fmt.Println("Estimate is empty; generated an empty schedule.")
				return nil
			}
			fmt.Printf("Generated %d schedule items.\n\n", len(sched.Items))
			fmt.Printf("%s\n", formatter.FormatSchedule(sched, time.Now()))
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "Schedule start date (YYYY-MM-DD, default project start)")
	cmd.Flags().IntVar(&duration, "duration", 0, "Item duration in days (default 5)")
	cmd.Flags().BoolVar(&force, "force", false, "Regenerate without confirmation")

	return cmd
}

func newScheduleShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show PROJECT",
		Short: "Show the schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, sched, err := loadSchedule(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			if len(sched.Items) == 0 {
				fmt.Println("Schedule is empty.")
				return nil
			}
			fmt.Printf("%s\n", formatter.FormatSchedule(sched, time.Now()))
			return nil
		},
	}
}

func newScheduleUpdateCmd(app *App) *cobra.Command {
	var name, description, category, start, status string
	var duration, percent int

	cmd := &cobra.Command{
		Use:   "update PROJECT N",
		Short: "Update a schedule item; date changes ripple to dependents",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, sched, err := loadSchedule(ctx, app, args[0])
			if err != nil {
				return err
			}
			item, err := itemBySeq(sched, args[1])
			if err != nil {
				return err
			}

			var patch schedule.ItemPatch
			if cmd.Flags().Changed("name") {
				patch.Name = &name
			}
			if cmd.Flags().Changed("description") {
				patch.Description = &description
			}
			if cmd.Flags().Changed("category") {
				patch.Category = &category
			}
			if cmd.Flags().Changed("start") {
				startDate, err := time.Parse("2006-01-02", start)
				if err != nil {
					return fmt.Errorf("invalid start date %q: %w", start, err)
				}
				patch.StartDate = &startDate
			}
			if cmd.Flags().Changed("duration") {
				patch.DurationDays = &duration
			}
			if cmd.Flags().Changed("status") {
				st := domain.ItemStatus(status)
				if !domain.ValidItemStatuses[st] {
					return fmt.Errorf("invalid status %q (not-started|in-progress|complete|delayed)", status)
				}
				patch.Status = &st
			}
			if cmd.Flags().Changed("percent") {
				if percent < 0 || percent > 100 {
					return fmt.Errorf("percent must be between 0 and 100")
				}
				patch.PercentComplete = &percent
			}

			updated, err := app.Schedules.UpdateItem(ctx, projectID, item.ID, patch)
			if err != nil {
				return err
			}

			fmt.Printf("Updated #%d %s.\n\n", item.Seq, item.Name)
			fmt.Printf("%s\n", formatter.FormatScheduleItems(updated.Items))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Item name")
	cmd.Flags().StringVar(&description, "description", "", "Item description")
	cmd.Flags().StringVar(&category, "category", "", "Trade category")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&duration, "duration", 0, "Duration in days (minimum 1)")
	cmd.Flags().StringVar(&status, "status", "", "Status (not-started|in-progress|complete|delayed)")
	cmd.Flags().IntVar(&percent, "percent", 0, "Percent complete (0-100)")

	return cmd
}

func newScheduleLinkCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "link PROJECT N AFTER",
		Short: "Make item N start after item AFTER finishes",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, sched, err := loadSchedule(ctx, app, args[0])
			if err != nil {
				return err
			}
			item, err := itemBySeq(sched, args[1])
			if err != nil {
				return err
			}
			pred, err := itemBySeq(sched, args[2])
			if err != nil {
				return err
			}

			updated, err := app.Schedules.SetPredecessor(ctx, projectID, item.ID, pred.ID)
			if err != nil {
				var cycleErr *schedule.CycleError
				if errors.As(err, &cycleErr) {
					return fmt.Errorf("cannot link #%d after #%d: that would create a dependency cycle", item.Seq, pred.Seq)
				}
				return err
			}

			fmt.Printf("#%d %s now starts after #%d %s.\n\n", item.Seq, item.Name, pred.Seq, pred.Name)
			fmt.Printf("%s\n", formatter.FormatScheduleItems(updated.Items))
			return nil
		},
	}
}

func newScheduleUnlinkCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "unlink PROJECT N",
		Short: "Remove item N's dependency; its dates stay where they are",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, sched, err := loadSchedule(ctx, app, args[0])
			if err != nil {
				return err
			}
			item, err := itemBySeq(sched, args[1])
			if err != nil {
				return err
			}

			if _, err := app.Schedules.ClearPredecessor(ctx, projectID, item.ID); err != nil {
				return err
			}
			fmt.Printf("#%d %s no longer has a predecessor.\n", item.Seq, item.Name)
			return nil
		},
	}
}

func newScheduleAutocalcCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "autocalc PROJECT",
		Short: "Reposition every dependent item after its predecessor",
		Long: "Reposition every dependent item to start one day after its\n" +
			"predecessor ends. Items are adjusted in a single pass in schedule\n" +
			"order; run it again if a long chain needs another sweep.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}

			if !force {
				ok, err := confirmDestructive(app,
					"Auto-calculate moves every linked item. Manual date tweaks on dependents will be lost. Continue?",
					"Recalculate")
				if err != nil {
					return err
				}
				if !ok {
					fmt.Println("Cancelled.")
					return nil
				}
			}

			result, err := app.Schedules.AutoCalculate(ctx, projectID)
			if err != nil {
				return err
			}

			if warnings := formatter.FormatDanglingWarnings(result.Dangling, result.Schedule.Items); warnings != "" {
				fmt.Print(warnings)
			}
			fmt.Printf("%s\n", formatter.FormatScheduleItems(result.Schedule.Items))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Recalculate without confirmation")

	return cmd
}

func newScheduleSaveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "save PROJECT",
		Short: "Persist pending schedule edits immediately",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Schedules.Save(ctx, projectID); err != nil {
				return err
			}
			fmt.Println("Schedule saved.")
			return nil
		},
	}
}

func newScheduleEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit PROJECT",
		Short: "Edit the schedule interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, sched, err := loadSchedule(ctx, app, args[0])
			if err != nil {
				return err
			}
			if len(sched.Items) == 0 {
				return fmt.Errorf("schedule is empty; run `lath schedule generate` first")
			}
			if !app.interactive() {
				return fmt.Errorf("schedule edit requires an interactive terminal")
			}

			model := newEditModel(ctx, app, projectID, sched)
			if _, err := tea.NewProgram(model).Run(); err != nil {
				return err
			}
			return app.Schedules.Save(ctx, projectID)
		},
	}
}
