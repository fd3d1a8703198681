package build

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/okian/eventboard/internal/adapters/page"
	"github.com/okian/eventboard/pkg/logger"
)

// PageRenderer fills the event containers of an HTML page.
type PageRenderer interface {
	RenderPage(ctx context.Context, r io.Reader, w io.Writer) (page.Mode, error)
}

// writeSite walks src and processes its files with a pool of workers.
func writeSite(ctx context.Context, cfg *Config, src fs.FS, pages PageRenderer, stats *Stats) error {
	var files []string
	err := fs.WalkDir(src, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		target := filepath.Join(cfg.OutDir, filepath.FromSlash(p))
		if d.IsDir() {
			return os.MkdirAll(target, directoryPermission)
		}
		files = append(files, p)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuild, err)
	}

	// Create worker pool
	jobs := make(chan string, cfg.Workers*2)
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)

	for i := 0; i < cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for p := range jobs {
				if err := writeFile(ctx, cfg, src, p, pages, stats); err != nil {
					mu.Lock()
					errs = append(errs, err)
					mu.Unlock()
				}
			}
		}()
	}

feed:
	for _, p := range files {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- p:
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return err
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrBuild, errors.Join(errs...))
	}
	return nil
}

func writeFile(ctx context.Context, cfg *Config, src fs.FS, name string, pages PageRenderer, stats *Stats) error {
	in, err := src.Open(name)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	target := filepath.Join(cfg.OutDir, filepath.FromSlash(name))
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePermission)
	if err != nil {
		return err
	}

	if !strings.EqualFold(path.Ext(name), ".html") {
		_, err = io.Copy(out, in)
		if cerr := out.Close(); err == nil {
			err = cerr
		}
		if err == nil {
			atomic.AddInt64(&stats.Assets, 1)
		}
		return err
	}

	mode, err := pages.RenderPage(ctx, in, out)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	atomic.AddInt64(&stats.Pages, 1)
	switch mode {
	case page.ModeFull:
		atomic.AddInt64(&stats.Full, 1)
	case page.ModePreview:
		atomic.AddInt64(&stats.Preview, 1)
	default:
		atomic.AddInt64(&stats.Untouched, 1)
	}
	if cfg.Verbose {
		logger.Get().Info(ctx, "page written", logger.String("page", name), logger.String("mode", string(mode)))
	}
	return nil
}
