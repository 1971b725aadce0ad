package compositor

import (
	"sync"

	"github.com/gogpu/compositor/schedule"
)

// Scheduler dispatches work items for the engine.
//
// The engine only ever submits work, flushes with Barrier, and asks for
// the worker count and accelerator availability; everything else about
// scheduling (queues, stealing, devices) belongs to the implementation.
//
// Barrier is a best-effort flush: it blocks until queued work has been
// picked up, but completion accounting happens through Work.Done, which
// is why the work splitter keeps its own completion barrier on top.
type Scheduler interface {
	// Submit queues one work item. It may block when queues are full.
	Submit(w *schedule.Work)

	// Barrier blocks until work queued before the call has been taken
	// up by workers.
	Barrier()

	// Workers returns the CPU worker count, the granularity limit for
	// region splitting. Always at least 1.
	Workers() int

	// HasAccelerator reports whether a GPU accelerator device is
	// available to this scheduler.
	HasAccelerator() bool
}

var (
	defaultSchedMu sync.Mutex
	defaultSched   Scheduler
)

// DefaultScheduler returns the process-wide pool-backed scheduler,
// starting it with GOMAXPROCS workers on first use. Systems created
// without WithScheduler share it.
func DefaultScheduler() Scheduler {
	defaultSchedMu.Lock()
	defer defaultSchedMu.Unlock()
	if defaultSched == nil {
		defaultSched = NewPoolScheduler(schedule.NewPool(0))
	}
	return defaultSched
}

// NewPoolScheduler wraps a schedule.Pool as a Scheduler. The caller keeps
// ownership of the pool and closes it when done.
//
// HasAccelerator reports whether a GPU accelerator is registered with the
// engine.
func NewPoolScheduler(pool *schedule.Pool) Scheduler {
	return &poolScheduler{pool: pool}
}

// poolScheduler adapts schedule.Pool to the Scheduler interface.
type poolScheduler struct {
	pool *schedule.Pool
}

func (s *poolScheduler) Submit(w *schedule.Work) { s.pool.Submit(w) }
func (s *poolScheduler) Barrier()                { s.pool.Barrier() }
func (s *poolScheduler) Workers() int            { return s.pool.Workers() }

func (s *poolScheduler) HasAccelerator() bool {
	return Accelerator() != nil
}
