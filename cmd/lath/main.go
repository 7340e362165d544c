package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/mhollis/lath/internal/cli"
	"github.com/mhollis/lath/internal/config"
	"github.com/mhollis/lath/internal/db"
	"github.com/mhollis/lath/internal/repository"
	"github.com/mhollis/lath/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	level := &slog.LevelVar{}
	level.Set(parseLogLevel(cfg.Log.Level))
	observer := service.NewLogUseCaseObserver(os.Stderr, level)

	var (
		projectRepo  repository.ProjectRepo
		estimateRepo repository.EstimateLineRepo
		store        repository.ScheduleStore
	)

	switch cfg.DB.Driver {
	case "postgres":
		pool, err := db.OpenPool(ctx, cfg.DB.URL)
		if err != nil {
			return fmt.Errorf("connecting to postgres: %w", err)
		}
		defer pool.Close()
		if err := repository.EnsurePgSchema(ctx, pool); err != nil {
			return err
		}
		projectRepo = repository.NewPgProjectRepo(pool)
		estimateRepo = repository.NewPgEstimateLineRepo(pool)
		store = repository.NewPgScheduleStore(pool)

	default:
		dbPath := cfg.DB.Path
		if dbPath == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return fmt.Errorf("finding home directory: %w", err)
			}
			dbPath = filepath.Join(home, ".lath", "lath.db")
		}
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}
		database, err := db.Open(dbPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()
		projectRepo = repository.NewSQLiteProjectRepo(database)
		estimateRepo = repository.NewSQLiteEstimateLineRepo(database)
		store = repository.NewSQLiteScheduleStore(database)
	}

	quiet := time.Duration(cfg.Schedule.AutosaveQuietMS) * time.Millisecond
	schedules := service.NewScheduleService(projectRepo, estimateRepo, store, quiet, observer)

	app := &cli.App{
		Projects:            service.NewProjectService(projectRepo),
		Estimates:           service.NewEstimateService(projectRepo, estimateRepo),
		Schedules:           schedules,
		DefaultDurationDays: cfg.Schedule.DefaultDurationDays,
	}
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)

	var verbose bool
	var flags *pflag.FlagSet = rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "Log service activity to stderr")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if verbose {
			level.Set(slog.LevelDebug)
		}
	}

	runErr := rootCmd.ExecuteContext(ctx)

	// Persist anything still waiting out its quiet period before exit.
	if err := schedules.Flush(ctx); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

func parseLogLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
