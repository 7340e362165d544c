package cli

import (
	"github.com/mhollis/lath/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Projects  service.ProjectService
	Estimates service.EstimateService
	Schedules service.ScheduleService

	// IsInteractive reports whether stdin is a terminal. Destructive
	// confirmations and forms are skipped when it returns false.
	IsInteractive func() bool

	// DefaultDurationDays is the configured item duration used by
	// schedule generate when --duration is not given.
	DefaultDurationDays int
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "lath" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "lath",
		Short: "Construction project schedules from estimates",
	}

	root.AddCommand(
		newProjectCmd(app),
		newEstimateCmd(app),
		newScheduleCmd(app),
	)

	return root
}
