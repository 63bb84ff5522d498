package freshness

import (
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/dohsimpson/habittrove/internal/logger"
	"github.com/dohsimpson/habittrove/internal/models"
)

// Loader reads the current state.
type Loader func() (models.State, error)

// Watcher polls a Loader and calls OnChange whenever the state hash moves.
type Watcher struct {
	load     Loader
	interval time.Duration
	cron     *cron.Cron

	// OnChange receives the previous and the new hash.
	OnChange func(previous, current string)

	mu   sync.Mutex
	last string
}

// NewWatcher returns a watcher that polls every interval once started.
func NewWatcher(load Loader, interval time.Duration) *Watcher {
	return &Watcher{
		load:     load,
		interval: interval,
		cron:     cron.New(),
	}
}

// Start takes the baseline hash and schedules polling.
func (w *Watcher) Start() error {
	if w.interval <= 0 {
		return fmt.Errorf("invalid watch interval: %s", w.interval)
	}
	if _, err := w.Poll(); err != nil {
		return err
	}

	if _, err := w.cron.AddFunc(fmt.Sprintf("@every %s", w.interval), w.tick); err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}

	logger.Info("Starting freshness watcher", "interval", w.interval)
	w.cron.Start()
	return nil
}

// Stop waits for a running poll to finish.
func (w *Watcher) Stop() {
	ctx := w.cron.Stop()
	<-ctx.Done()
	logger.Info("Freshness watcher stopped")
}

// Last returns the most recently observed hash.
func (w *Watcher) Last() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.last
}

// Poll loads and hashes the state once, reporting whether it differs from the previous poll.
// The first poll only records a baseline.
func (w *Watcher) Poll() (bool, error) {
	state, err := w.load()
	if err != nil {
		return false, fmt.Errorf("failed to load state: %w", err)
	}
	current, err := Hash(state)
	if err != nil {
		return false, err
	}

	w.mu.Lock()
	previous := w.last
	w.last = current
	w.mu.Unlock()

	changed := previous != "" && previous != current
	if changed && w.OnChange != nil {
		w.OnChange(previous, current)
	}
	return changed, nil
}

func (w *Watcher) tick() {
	if _, err := w.Poll(); err != nil {
		logger.Warn("Freshness poll failed", "error", err)
	}
}
