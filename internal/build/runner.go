// Package build fills every page of a static site with the classified events
// and writes the result to an output directory, so the site can be hosted
// without the server.
package build

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/okian/eventboard/internal/adapters/http/site"
	"github.com/okian/eventboard/internal/adapters/repository"
	service "github.com/okian/eventboard/internal/app"
	"github.com/okian/eventboard/internal/domain/calendar"
	"github.com/okian/eventboard/pkg/logger"
)

// Run executes the complete build.
func Run(ctx context.Context, cfg *Config) (*Stats, error) {
	stats := &Stats{StartTime: time.Now()}

	if err := normalize(cfg); err != nil {
		return nil, err
	}

	logger.Get().Info(ctx, "starting static build",
		logger.String("site", siteLabel(cfg.SiteDir)),
		logger.String("out", cfg.OutDir),
		logger.String("today", cfg.Today),
		logger.Int("workers", cfg.Workers),
	)

	// Step 1: Load events
	store, err := repository.Load(cfg.EventsFile, repository.WithLocation(cfg.Location))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuild, err)
	}
	stats.Events = store.Count(ctx)

	// Step 2: Classify against the build day
	opts := []service.Option{
		service.WithLocation(cfg.Location),
		service.WithLocale(cfg.Locale),
		service.WithMembershipURL(cfg.MembershipURL),
		service.WithLogger(logger.Named("build")),
	}
	if cfg.Today != "" {
		day, err := calendar.ParseDate(cfg.Today, cfg.Location)
		if err != nil {
			return nil, fmt.Errorf("%w: today: %w", ErrConfig, err)
		}
		opts = append(opts, service.WithClock(calendar.FixedClock{At: day}))
	}
	svc := service.New(store, opts...)
	if _, err := svc.Refresh(ctx, service.TriggerStart); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuild, err)
	}

	// Step 3: Fill pages and copy assets
	src := site.FS()
	if cfg.SiteDir != "" {
		src = os.DirFS(cfg.SiteDir)
	}
	if err := writeSite(ctx, cfg, src, svc, stats); err != nil {
		return nil, err
	}

	// Step 4: Export the calendar feed
	if err := writeCalendar(ctx, cfg.OutDir, svc); err != nil {
		return nil, err
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	logger.Get().Info(ctx, "static build completed",
		logger.Int("events", stats.Events),
		logger.Int("pages", int(stats.Pages)),
		logger.Int("full", int(stats.Full)),
		logger.Int("preview", int(stats.Preview)),
		logger.Int("assets", int(stats.Assets)),
		logger.String("duration", stats.Duration.String()),
	)
	return stats, nil
}

func normalize(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("%w: nil config", ErrConfig)
	}
	if strings.TrimSpace(cfg.OutDir) == "" {
		return fmt.Errorf("%w: output directory is required", ErrConfig)
	}
	if cfg.SiteDir != "" {
		inside, err := within(cfg.SiteDir, cfg.OutDir)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrConfig, err)
		}
		if inside {
			return fmt.Errorf("%w: output directory must be outside the site directory", ErrConfig)
		}
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.Locale == language.Und {
		cfg.Locale = calendar.DefaultLocale
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	return nil
}

// within reports whether dir is root or lies anywhere below it.
func within(root, dir string) (bool, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return false, err
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return false, err
	}
	rel, err := filepath.Rel(absRoot, absDir)
	if err != nil {
		return false, nil
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)), nil
}

func writeCalendar(ctx context.Context, outDir string, svc *service.Service) error {
	path := filepath.Join(outDir, CalendarFile)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePermission)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuild, err)
	}
	if err := svc.WriteCalendar(ctx, f); err != nil {
		_ = f.Close()
		return fmt.Errorf("%w: %s: %w", ErrBuild, CalendarFile, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrBuild, err)
	}
	return nil
}

func siteLabel(dir string) string {
	if dir == "" {
		return "embedded"
	}
	return dir
}
