// Package worker runs per-file tasks on a bounded goroutine pool.
package worker

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/rancher-sandbox/i18n-lint/internal/logger"
)

// ErrPoolClosed is returned when running tasks on a released pool.
var ErrPoolClosed = errors.New("worker pool is closed")

// Pool wraps ants.Pool with context-aware batch execution.
type Pool struct {
	pool *ants.Pool
	name string
	log  logger.Logger
}

// DefaultSize is the pool size used when none is configured.
func DefaultSize() int {
	return runtime.GOMAXPROCS(0)
}

// New creates a pool running at most size tasks at once. A size below one
// selects DefaultSize.
func New(name string, size int, log logger.Logger) (*Pool, error) {
	if size < 1 {
		size = DefaultSize()
	}
	if log == nil {
		log = logger.Nop()
	}
	p, err := ants.NewPool(size,
		ants.WithPanicHandler(func(v any) {
			log.Error("worker panic recovered", "pool", name, "panic", v)
		}),
		ants.WithNonblocking(false),
		ants.WithExpiryDuration(10*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s pool: %w", name, err)
	}
	return &Pool{pool: p, name: name, log: log}, nil
}

// Each calls fn for every index in [0, n) on the pool and waits for all of
// them. It returns the error of the lowest failing index, so the outcome
// does not depend on completion order. A panicking fn fails its index.
func (p *Pool) Each(ctx context.Context, n int, fn func(ctx context.Context, i int) error) error {
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			errs[i] = err
			break
		}
		wg.Add(1)
		err := p.pool.Submit(func() {
			defer wg.Done()
			defer func() {
				if v := recover(); v != nil {
					p.log.Error("task panicked", "pool", p.name, "index", i, "panic", v)
					errs[i] = fmt.Errorf("%s task %d panicked: %v", p.name, i, v)
				}
			}()
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return
			}
			errs[i] = fn(ctx, i)
		})
		if err != nil {
			wg.Done()
			if errors.Is(err, ants.ErrPoolClosed) {
				err = ErrPoolClosed
			}
			errs[i] = err
			break
		}
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// Cap returns the pool capacity.
func (p *Pool) Cap() int { return p.pool.Cap() }

// Release waits up to timeout for running tasks and closes the pool.
func (p *Pool) Release(timeout time.Duration) {
	if err := p.pool.ReleaseTimeout(timeout); err != nil {
		p.log.Warn("pool shutdown timeout", "pool", p.name, "error", err)
	}
}
