package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"github.com/ohamdan/fanous/internal/cli"
	"github.com/ohamdan/fanous/internal/config"
	"github.com/ohamdan/fanous/internal/remote"
	"github.com/ohamdan/fanous/internal/storage"
	appsync "github.com/ohamdan/fanous/internal/sync"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Store file path (.json for flat-file, anything else for SQLite)." type:"path"`

	Init    cli.InitCmd    `cmd:"" help:"Initialize fanous storage."`
	Onboard cli.OnboardCmd `cmd:"" help:"Interactive first-time setup."`
	Tui     cli.TuiCmd     `cmd:"" help:"Launch the interactive dashboard." default:"1"`
	Day     cli.DayCmd     `cmd:"" help:"Show a day's record."`
	Fast    cli.FastCmd    `cmd:"" help:"Mark a day's fast."`
	Pray    cli.PrayCmd    `cmd:"" help:"Mark prayers for a day."`
	Quran   cli.QuranCmd   `cmd:"" help:"Track Quran reading."`
	Azkar   cli.AzkarCmd   `cmd:"" help:"Mark morning or evening azkar."`
	Extra   cli.ExtraCmd   `cmd:"" help:"Track extra good deeds."`
	Stats   cli.StatsCmd   `cmd:"" help:"Show totals and streaks."`
	Times   cli.TimesCmd   `cmd:"" help:"Show today's prayer times."`

	Register cli.RegisterCmd `cmd:"" help:"Create a sync account."`
	Login    cli.LoginCmd    `cmd:"" help:"Sign in to sync."`
	Logout   cli.LogoutCmd   `cmd:"" help:"Sign out (local data is kept)."`
	Whoami   cli.WhoamiCmd   `cmd:"" help:"Show the signed-in account."`
	Guest    cli.GuestCmd    `cmd:"" help:"Toggle local-only guest mode."`
	Sync     cli.SyncCmd     `cmd:"" help:"Push local records to the backend."`

	Backup cli.BackupCmd `cmd:"" help:"Manage store backups."`
	Doctor cli.DoctorCmd `cmd:"" help:"Run health checks."`
	Reset  cli.ResetCmd  `cmd:"" help:"Wipe all local data."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("fanous"),
		kong.Description("Offline-first Ramadan companion: fasting, prayers, Quran, azkar"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.3.0"},
	)

	cfg, err := config.LoadFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if CLI.Config != "" {
		cfg.StorePath = CLI.Config
	}

	logger := zap.NewNop()
	if cfg.Debug {
		if dev, err := zap.NewDevelopment(); err == nil {
			logger = dev
		}
	}
	defer logger.Sync()

	// The extension picks the backend.
	var store storage.Provider
	if strings.HasSuffix(cfg.StorePath, ".json") {
		store = storage.NewJSONStore(cfg.StorePath)
	} else {
		store = storage.NewSQLiteStore(cfg.StorePath)
	}
	defer store.Close()

	client := remote.NewClient(cfg.APIURL, store)

	appCtx := &cli.Context{
		Store:  store,
		Client: client,
		Sync:   appsync.NewReconciler(store, client, logger),
		Logger: logger,
		Now:    time.Now(),
	}

	if err := ctx.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
