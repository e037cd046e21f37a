package worker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Runner owns the background tasks spawned by trigger endpoints. Each task
// gets the runner's lifecycle context, panic recovery and error logging, so
// a sweep can never take the HTTP worker down with it.
type Runner struct {
	logger *zap.Logger
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewRunner(logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Runner{logger: logger, ctx: ctx, cancel: cancel}
}

func (r *Runner) Go(name string, task func(ctx context.Context) error) {
	if r == nil || task == nil {
		return
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer func() {
			if rec := recover(); rec != nil {
				r.logger.Error("background task panicked",
					zap.String("task", name),
					zap.Any("panic", rec),
				)
			}
		}()

		start := time.Now()
		if err := task(r.ctx); err != nil {
			r.logger.Error("background task failed",
				zap.String("task", name),
				zap.Duration("elapsed", time.Since(start)),
				zap.Error(err),
			)
			return
		}
		r.logger.Debug("background task finished",
			zap.String("task", name),
			zap.Duration("elapsed", time.Since(start)),
		)
	}()
}

// Shutdown cancels running tasks and waits for them to drain, up to the
// caller's deadline.
func (r *Runner) Shutdown(ctx context.Context) error {
	if r == nil {
		return nil
	}
	r.cancel()

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
