package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/amorozov/habitlife/internal/cli"
	"github.com/amorozov/habitlife/internal/constants"
	"github.com/amorozov/habitlife/internal/game"
	"github.com/amorozov/habitlife/internal/logger"
	"github.com/amorozov/habitlife/internal/storage/sqlite"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Database file path." type:"path" default:"${config_path}"`
	Debug   bool   `help:"Enable debug logging."`

	Init   cli.InitCmd   `cmd:"" help:"Initialize habitlife storage and the first attempt."`
	Doctor cli.DoctorCmd `cmd:"" help:"Run health checks and repair orphaned records."`
	Status cli.StatusCmd `cmd:"" help:"Settle missed weeks and show current lives." default:"1"`
	Sync   cli.SyncCmd   `cmd:"" help:"Settle all missed weeks."`
	Log    cli.LogCmd    `cmd:"" help:"Log a habit completion."`
	Unlog  cli.UnlogCmd  `cmd:"" help:"Remove a logged completion."`
	Report cli.ReportCmd `cmd:"" help:"Show the per-habit breakdown for a settled week."`
	Reset  cli.ResetCmd  `cmd:"" help:"Close the current attempt and start over."`

	Habit struct {
		Add     cli.HabitAddCmd     `cmd:"" help:"Add a new habit."`
		List    cli.HabitListCmd    `cmd:"" help:"List habits."`
		Edit    cli.HabitEditCmd    `cmd:"" help:"Edit a habit's scoring parameters."`
		Delete  cli.HabitDeleteCmd  `cmd:"" help:"Soft-delete a habit from a date."`
		Restore cli.HabitRestoreCmd `cmd:"" help:"Restore a soft-deleted habit."`
	} `cmd:"" help:"Manage habits."`

	Attempt struct {
		List    cli.AttemptListCmd    `cmd:"" help:"List all attempts."`
		Delete  cli.AttemptDeleteCmd  `cmd:"" help:"Delete a closed attempt."`
		Cleanup cli.AttemptCleanupCmd `cmd:"" help:"Prune zero-duration attempts from a day."`
	} `cmd:"" help:"Manage attempts."`

	ForceReset cli.ForceResetCmd `cmd:"" name:"force-reset" help:"Repair the game state to the attempt's starting lives."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("habitlife"),
		kong.Description("Gamified habit tracker: habits earn and burn life points."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     "v0.3.0",
			"config_path": constants.DefaultConfigPath,
		},
	)

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: filepath.Dir(CLI.Config),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}

	store := sqlite.NewStore(CLI.Config)
	appCtx := &cli.Context{
		Store:  store,
		Engine: game.NewEngine(store, store, store),
	}

	// Every command except init needs an existing database.
	if ctx.Selected() != nil && !strings.HasPrefix(ctx.Selected().Name, "init") {
		if err := store.Load(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	defer store.Close()

	if err := ctx.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
