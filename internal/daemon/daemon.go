// Package daemon keeps skills in sync in the background: a cron schedule
// runs the auto-sync check and an optional file watch on local sources
// triggers a sync shortly after they change.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/robfig/cron/v3"

	"github.com/klauern/skillhub/internal/logging"
)

// DefaultDebounce is how long the watcher waits for changes to settle.
const DefaultDebounce = 2 * time.Second

// ErrNoCheck is returned when Run is called without a Check function.
var ErrNoCheck = errors.New("daemon: check function is required")

// Runner runs Check on Schedule and OnChange after changes below WatchDirs.
// Check and OnChange never run concurrently.
type Runner struct {
	// Schedule is a standard cron spec or descriptor such as "@every 1h".
	Schedule string
	Check    func(ctx context.Context) error
	// WatchDirs are watched recursively. Missing directories are skipped.
	WatchDirs []string
	OnChange  func(ctx context.Context) error
	Debounce  time.Duration
	Logger    *slog.Logger

	mu sync.Mutex
}

// Run performs an initial check, then blocks until ctx is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	if r.Check == nil {
		return ErrNoCheck
	}
	sched, err := cron.ParseStandard(r.Schedule)
	if err != nil {
		return fmt.Errorf("invalid schedule %q: %w", r.Schedule, err)
	}
	log := r.logger()

	var watcher *fsnotify.Watcher
	if r.OnChange != nil && len(r.WatchDirs) > 0 {
		watcher, err = fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("failed to create watcher: %w", err)
		}
		defer func() { _ = watcher.Close() }()
		for _, dir := range r.WatchDirs {
			if err := addRecursive(watcher, dir); err != nil {
				log.Warn("not watching directory", logging.Path(dir), logging.Err(err))
			}
		}
	}

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	c.Schedule(sched, cron.FuncJob(func() { r.invoke(ctx, "check", r.Check) }))
	c.Start()
	defer func() { <-c.Stop().Done() }()

	log.Info("daemon started",
		slog.String("schedule", r.Schedule),
		logging.Count(len(r.WatchDirs)))

	r.invoke(ctx, "check", r.Check)

	if watcher == nil {
		<-ctx.Done()
	} else {
		r.watch(ctx, watcher)
	}

	log.Info("daemon stopped")
	return nil
}

func (r *Runner) watch(ctx context.Context, w *fsnotify.Watcher) {
	log := r.logger()
	debounce := r.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if !relevant(ev) {
				continue
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := addRecursive(w, ev.Name); err != nil {
						log.Warn("failed to watch new directory", logging.Path(ev.Name), logging.Err(err))
					}
				}
			}
			log.Debug("change detected", logging.Path(ev.Name), slog.String("op", ev.Op.String()))
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C

		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			log.Warn("watch error", logging.Err(err))

		case <-fire:
			fire = nil
			r.invoke(ctx, "change", r.OnChange)
		}
	}
}

func (r *Runner) invoke(ctx context.Context, op string, fn func(context.Context) error) {
	if ctx.Err() != nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := fn(ctx); err != nil {
		r.logger().Error("daemon run failed", logging.Operation(op), logging.Err(err))
	}
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return logging.Default()
}

// relevant drops chmod-only events and editor temp files.
func relevant(ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod {
		return false
	}
	base := filepath.Base(ev.Name)
	return !strings.HasSuffix(base, "~") && !strings.HasPrefix(base, ".#") && !strings.HasSuffix(base, ".swp")
}

// addRecursive watches root and every directory below it. Hidden
// directories such as .git are not descended into.
func addRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return w.Add(path)
	})
}
