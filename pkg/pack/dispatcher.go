package pack

import (
	"context"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wordcloud/pkg/layout"
	"github.com/matzehuels/wordcloud/pkg/observability"
)

// Result is the outcome of one dispatched pass.
type Result struct {
	Generation uint64
	Placed     []Placed
	Err        error
}

// Dispatcher runs packs asynchronously and delivers only the latest result.
type Dispatcher struct {
	packer Packer
	logger *log.Logger

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher creates a dispatcher over p. A nil logger discards output.
func NewDispatcher(p Packer, logger *log.Logger) *Dispatcher {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Dispatcher{packer: p, logger: logger}
}

// Dispatch starts packing req on a new goroutine and returns its generation.
// Any pass still running is cancelled and its result will not be delivered.
//
// done runs on the packing goroutine. Because a newer Dispatch may race with
// delivery, callbacks that mutate shared state should re-check
// [Dispatcher.IsCurrent] under their own lock.
//
// Dispatch returns 0 after Close.
func (d *Dispatcher) Dispatch(ctx context.Context, req layout.Request, done func(Result)) uint64 {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return 0
	}
	if d.cancel != nil {
		d.cancel()
	}
	d.gen++
	gen := d.gen
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	d.wg.Add(1)
	d.mu.Unlock()

	go func() {
		defer d.wg.Done()
		defer cancel()

		placed, err := d.packer.Pack(ctx, req)
		if latest := d.Generation(); latest != gen {
			d.logger.Debug("discarding stale layout", "generation", gen, "latest", latest)
			observability.Editor().OnStaleResult(gen, latest)
			return
		}
		done(Result{Generation: gen, Placed: placed, Err: err})
	}()
	return gen
}

// Invalidate supersedes any pass in flight without starting a new one.
func (d *Dispatcher) Invalidate() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.gen++
	return d.gen
}

// Generation returns the latest generation issued.
func (d *Dispatcher) Generation() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.gen
}

// IsCurrent reports whether gen is the latest generation issued.
func (d *Dispatcher) IsCurrent(gen uint64) bool {
	return d.Generation() == gen
}

// Close cancels the pass in flight and waits for its goroutine to exit.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	d.closed = true
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.gen++
	d.mu.Unlock()
	d.wg.Wait()
}
