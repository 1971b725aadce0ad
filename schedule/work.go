// Package schedule provides the worker pool the compositor engine renders
// through: fixed worker count, per-worker queues, work stealing, and a
// best-effort barrier.
//
// The pool is deliberately engine-agnostic. It moves Work items; it knows
// nothing about regions, buffers, or graphs.
package schedule

// Kind tags a Work item with the scheduling class it belongs to.
//
// The pool treats all kinds uniformly today; the tag travels with the work
// so schedulers that route tile and custom work differently can do so
// without changing submitters.
type Kind int

const (
	// KindTile is a tile rendering work item scheduled by an execution
	// group.
	KindTile Kind = iota

	// KindCustom is an arbitrary function work item, the kind produced
	// by region splitting.
	KindCustom
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindTile:
		return "Tile"
	case KindCustom:
		return "Custom"
	default:
		return "Unknown"
	}
}

// Work is one schedulable unit.
//
// A worker runs Execute, then Done. Done is optional; when set it fires
// exactly once, after Execute returns, on the same worker goroutine.
// Submitters keep the Work value alive until Done has fired.
type Work struct {
	// Kind classifies the work item.
	Kind Kind

	// Execute performs the work. It must re-check any cancellation
	// condition itself: the pool never drops queued work.
	Execute func()

	// Done signals completion to the submitter. May be nil.
	Done func()
}

// run executes the work item and fires its completion callback.
func (w *Work) run() {
	if w.Execute != nil {
		w.Execute()
	}
	if w.Done != nil {
		w.Done()
	}
}
