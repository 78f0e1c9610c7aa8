// Package worker runs tile loads in the background with bounded concurrency.
package worker

import (
	"context"

	"golang.org/x/sync/errgroup"
)

type Pool struct {
	ctx    context.Context
	cancel context.CancelFunc
	group  errgroup.Group
}

type Task struct {
	Work func(ctx context.Context)
}

// NewPool returns a pool running at most maxWorkers tasks at once.
func NewPool(maxWorkers int) *Pool {
	ctx, cancel := context.WithCancel(context.Background())
	p := &Pool{
		ctx:    ctx,
		cancel: cancel,
	}
	p.group.SetLimit(max(maxWorkers, 1))
	return p
}

// Submit starts task if a worker is free and reports whether it did. It
// never blocks; a rejected task is expected to be submitted again later.
func (p *Pool) Submit(task Task) bool {
	if p.ctx.Err() != nil {
		return false
	}
	return p.group.TryGo(func() error {
		task.Work(p.ctx)
		return nil
	})
}

// Shutdown cancels running tasks and waits for them to return.
func (p *Pool) Shutdown() {
	p.cancel()
	_ = p.group.Wait()
}
