package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dgallion1/serialform/internal/config"
	"github.com/dgallion1/serialform/internal/logfields"
)

// Reloader holds the current Generator and rebuilds it when the documentation
// set or the message overrides change on disk. A failed reload keeps the
// previous Generator.
type Reloader struct {
	cfg      config.Config
	opts     []Option
	log      *slog.Logger
	current  atomic.Pointer[Generator]
	debounce time.Duration
}

func NewReloader(cfg config.Config, log *slog.Logger, opts ...Option) (*Reloader, error) {
	r := &Reloader{
		cfg:      cfg,
		opts:     append([]Option{WithLogger(log)}, opts...),
		log:      log,
		debounce: 500 * time.Millisecond,
	}
	if err := r.Reload(); err != nil {
		return nil, err
	}
	return r, nil
}

// Current returns the most recently loaded Generator.
func (r *Reloader) Current() *Generator { return r.current.Load() }

// Reload loads the documentation set and messages again and swaps them in.
func (r *Reloader) Reload() error {
	gen, err := Prepare(r.cfg, r.opts...)
	if err != nil {
		return err
	}
	r.current.Store(gen)
	return nil
}

func (r *Reloader) watchedFiles() map[string]bool {
	files := make(map[string]bool)
	for _, p := range []string{r.cfg.ModelPath, r.cfg.MessagesPath} {
		if p == "" {
			continue
		}
		if abs, err := filepath.Abs(p); err == nil {
			files[abs] = true
		}
	}
	return files
}

// Watch blocks until ctx is done, reloading after writes to the watched files.
// Directories are watched rather than files so editors that replace files on
// save are still seen.
func (r *Reloader) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	files := r.watchedFiles()
	dirs := make(map[string]bool)
	for f := range files {
		dir := filepath.Dir(f)
		if dirs[dir] {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		dirs[dir] = true
	}
	r.log.Info("watching documentation set", "files", len(files))

	var timer *time.Timer
	fire := make(chan struct{}, 1)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			abs, err := filepath.Abs(ev.Name)
			if err != nil || !files[abs] {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			r.log.Debug("documentation set change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(r.debounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})
		case <-fire:
			if err := r.Reload(); err != nil {
				r.log.Error("reload failed, keeping previous documentation set", logfields.Error(err))
				continue
			}
			r.log.Info("documentation set reloaded", "classes", len(r.Current().Set().Classes()))
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.log.Error("file watcher error", logfields.Error(err))
		}
	}
}
