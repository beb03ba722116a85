// internal/session/watcher.go
package session

import (
	"context"
	"sync"
	"time"

	"github.com/tomraj007/txnportal/internal/notify"
	"go.uber.org/zap"
)

// Watcher forces a logout the moment the stored token expires. It owns a
// single timer slot: re-arming cancels whatever was pending, so at most
// one expiry callback is ever scheduled per process.
type Watcher struct {
	store    *Store
	notifier notify.Notifier
	logger   *zap.Logger
	now      func() time.Time

	mu    sync.Mutex
	timer *time.Timer
}

func NewWatcher(store *Store, notifier notify.Notifier, logger *zap.Logger) *Watcher {
	return &Watcher{
		store:    store,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// Start arms the watcher from persisted state. Called once at process
// start so a session saved by a previous run still logs itself out on time.
func (w *Watcher) Start(ctx context.Context) {
	if expiry, ok := w.store.Expiry(ctx); ok {
		w.Arm(ctx, expiry)
	}
}

// Arm schedules the forced logout for the given expiry. A zero or negative
// delay means the caller is already expired and no timer is armed.
func (w *Watcher) Arm(ctx context.Context, expiry time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}

	delay := expiry.Sub(w.now())
	if delay <= 0 {
		return
	}

	w.timer = time.AfterFunc(delay, func() {
		w.expire(ctx)
	})
	w.logger.Debug("session expiry armed", zap.Duration("in", delay))
}

// Stop cancels any pending expiry callback.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}

// Pending reports whether an expiry callback is currently scheduled.
func (w *Watcher) Pending() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.timer != nil
}

func (w *Watcher) expire(ctx context.Context) {
	w.mu.Lock()
	w.timer = nil
	w.mu.Unlock()

	if err := w.store.Clear(ctx); err != nil {
		w.logger.Error("failed to clear expired session", zap.Error(err))
	}
	w.notifier.Notify(notify.KindError, "Your session has expired. Please login again.")
	w.logger.Info("session expired, user logged out")
}
