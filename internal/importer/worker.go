package importer

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Worker runs an import batch on a fixed interval until stopped.
type Worker struct {
	importer  *Importer
	batchSize int
	interval  time.Duration
	timeout   time.Duration
	logger    zerolog.Logger
	shutdownC chan struct{}
	doneC     chan struct{}
}

func NewWorker(importer *Importer, batchSize int, interval, timeout time.Duration, logger zerolog.Logger) *Worker {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Worker{
		importer:  importer,
		batchSize: batchSize,
		interval:  interval,
		timeout:   timeout,
		logger:    logger,
		shutdownC: make(chan struct{}),
		doneC:     make(chan struct{}),
	}
}

// Run imports one batch immediately and then once per interval.
func (w *Worker) Run() {
	defer close(w.doneC)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.handle()
	for {
		select {
		case <-w.shutdownC:
			w.logger.Info().Msg("question importer stopping")
			return
		case <-ticker.C:
			w.handle()
		}
	}
}

func (w *Worker) handle() {
	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()

	if _, err := w.importer.Import(ctx, w.batchSize); err != nil {
		w.logger.Warn().Err(err).Msg("question import failed")
	}
}

// Stop signals Run to return and waits for it.
func (w *Worker) Stop() {
	close(w.shutdownC)
	<-w.doneC
}
