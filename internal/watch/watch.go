package watch

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"log/slog"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"

	"strata/internal/loader"
	"strata/internal/logging"
	"strata/internal/source"
)

// DefaultDebounce is how long the watcher waits after the last relevant
// filesystem event before reloading.
const DefaultDebounce = 300 * time.Millisecond

// Reload is the outcome of one reload pass. Exactly one of Result and Err is
// set. ID ties log lines and callbacks to the same pass.
type Reload struct {
	ID     string
	Result *loader.Result
	Err    error
}

// Handler receives each reload outcome. Called from the watcher goroutine;
// the next reload waits until it returns.
type Handler func(Reload)

// Watcher reloads a Loader's configuration on file changes.
type Watcher struct {
	loader   *loader.Loader
	dir      string
	logger   *slog.Logger
	debounce time.Duration
	handler  Handler

	mu      sync.Mutex
	running bool
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// New builds a Watcher over dir for l. handler must not be nil.
func New(l *loader.Loader, dir string, handler Handler, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Watcher{
		loader:   l,
		dir:      dir,
		logger:   logger.With("component", "config-watcher"),
		debounce: DefaultDebounce,
		handler:  handler,
	}
}

// SetDebounce overrides the debounce window. Only valid before Start.
func (w *Watcher) SetDebounce(d time.Duration) {
	if d > 0 {
		w.debounce = d
	}
}

// Start begins watching. The initial load runs immediately so the handler
// always sees a first snapshot before any change event.
func (w *Watcher) Start(ctx context.Context) error {
	if w.handler == nil {
		return errors.New("watch handler not set")
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return errors.New("watcher already running")
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := fsWatcher.Add(w.dir); err != nil {
		fsWatcher.Close()
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	w.ctx = runCtx
	w.cancel = cancel
	w.running = true

	w.wg.Add(1)
	go w.loop(fsWatcher)
	return nil
}

// Stop cancels the watch loop and waits for it to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	cancel := w.cancel
	w.running = false
	w.cancel = nil
	w.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	w.wg.Wait()
}

func (w *Watcher) loop(fsWatcher *fsnotify.Watcher) {
	defer w.wg.Done()
	defer fsWatcher.Close()

	w.reload()

	var timer *time.Timer
	var timerC <-chan time.Time
	// Events landing while a reload is pending coalesce into that one pass.
	for {
		select {
		case <-w.ctx.Done():
			return
		case event, ok := <-fsWatcher.Events:
			if !ok {
				return
			}
			if !relevant(event) {
				continue
			}
			w.logger.Debug("configuration change detected", "path", filepath.Base(event.Name), "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
		case err, ok := <-fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("filesystem watch error", "error", err)
		case <-timerC:
			timer = nil
			timerC = nil
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	id := uuid.NewString()
	result, err := w.loader.Load(w.ctx, nil)
	if err != nil {
		// Keep the last good configuration in effect; the handler decides
		// how to surface the failure.
		w.logger.Warn("configuration reload failed", "reload_id", id, "error", err)
		w.handler(Reload{ID: id, Err: err})
		return
	}
	w.logger.Info("configuration reloaded", "reload_id", id, "environment", w.loader.Environment())
	w.handler(Reload{ID: id, Result: result})
}

// relevant reports whether a filesystem event concerns a file the loader
// reads: config.* with a structured-file extension, or the dotenv file.
func relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	name := filepath.Base(event.Name)
	if name == ".env" {
		return true
	}
	if !strings.HasPrefix(name, "config.") {
		return false
	}
	ext := filepath.Ext(name)
	for _, candidate := range source.Extensions {
		if ext == candidate {
			return true
		}
	}
	return false
}
