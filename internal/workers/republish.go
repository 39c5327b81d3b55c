package workers

import (
	"context"
	"sync"
	"time"

	"github.com/dkrylov/go-data-vault/internal/logger"
)

// RepublishWorker periodically re-publishes the vault's encryption public
// key so that a wiped or lagging public area converges back to the current
// identity. Ticks while the vault is locked are skipped.
type RepublishWorker struct {
	publisher IdentityPublisher
	interval  time.Duration
	logger    *logger.Logger

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

func NewRepublishWorker(publisher IdentityPublisher, interval time.Duration, logger *logger.Logger) *RepublishWorker {
	if interval <= 0 {
		interval = 15 * time.Minute
	}

	return &RepublishWorker{
		publisher: publisher,
		interval:  interval,
		logger:    logger,
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// Run starts the republish loop in a background goroutine and returns
// immediately. Use [RepublishWorker.Stop] to terminate the loop.
func (w *RepublishWorker) Run() {
	go w.loop()
}

// Stop terminates the loop and waits for the in-flight tick, if any, to
// finish. Safe to call more than once.
func (w *RepublishWorker) Stop() {
	w.stopOnce.Do(func() { close(w.stop) })
	<-w.done
}

func (w *RepublishWorker) loop() {
	defer close(w.done)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stop:
			return
		case <-ticker.C:
			w.republish()
		}
	}
}

func (w *RepublishWorker) republish() {
	if !w.publisher.Unlocked() {
		w.logger.Debug().Msg("vault is locked, skipping republish tick")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), w.interval)
	defer cancel()

	if err := w.publisher.PublishIdentity(ctx); err != nil {
		w.logger.Err(err).Msg("error occurred during republishing identity")
		return
	}

	w.logger.Debug().Msg("identity republished")
}
