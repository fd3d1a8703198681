package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/eventboard/internal/build"
	"github.com/okian/eventboard/internal/config"
	"github.com/okian/eventboard/pkg/logger"
)

const defaultBuildTimeout = 5 * time.Minute

func main() {
	var (
		siteDir    = flag.String("site", "", "Site directory to fill (default: embedded sample site)")
		outDir     = flag.String("out", "", "Output directory")
		today      = flag.String("today", "", "Classify as of this day, YYYY-MM-DD (default: today)")
		eventsFile = flag.String("events", "", "YAML events file (default: configured or embedded)")
		workers    = flag.Int("workers", runtime.NumCPU(), "Number of concurrent page workers")
		verbose    = flag.Bool("verbose", false, "Log every page written")
		help       = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		build.ShowHelp()
		return
	}

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	ctx, cancelTimeout := context.WithTimeout(ctx, defaultBuildTimeout)
	defer cancelTimeout()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}
	if *verbose {
		_ = logger.SetLevelString("debug")
	} else if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		_ = logger.SetLevelString("info")
	}

	if *eventsFile == "" {
		*eventsFile = cfg.EventsFile
	}

	stats, err := build.Run(ctx, &build.Config{
		SiteDir:       *siteDir,
		OutDir:        *outDir,
		Today:         *today,
		EventsFile:    *eventsFile,
		Location:      cfg.Location(),
		Locale:        cfg.LocaleTag(),
		MembershipURL: cfg.MembershipURL,
		Workers:       *workers,
		Verbose:       *verbose,
	})
	if err != nil {
		os.Stderr.WriteString("build failed: " + err.Error() + "\n")
		os.Exit(1)
	}
	os.Stdout.WriteString(build.Summary(stats) + "\n")
}
