package compositor

import "fmt"

// Model selects the execution strategy for a run.
//
// The source tree picks the model; the engine switches on it exactly once,
// at construction. Both models produce identical pixels and differ only in
// the memory/recomputation trade-off.
type Model int

const (
	// ModelTiled renders execution groups in bounded horizontal slabs,
	// re-evaluating each group's operation chain per slab. Peak memory
	// stays bounded; inputs shared between slabs may be recomputed.
	ModelTiled Model = iota

	// ModelFullFrame renders every operation completely into a
	// full-canvas buffer before its dependents run. Minimal
	// recomputation, higher peak memory.
	ModelFullFrame
)

// String returns the model name.
func (m Model) String() string {
	switch m {
	case ModelTiled:
		return "Tiled"
	case ModelFullFrame:
		return "FullFrame"
	default:
		return "Unknown"
	}
}

// executionModel is one rendering strategy over a compiled graph.
// Implementations borrow the System (graph, context, work splitter) for
// the duration of execute and own only their per-run bookkeeping.
type executionModel interface {
	execute(s *System)
	close()
}

// newExecutionModel maps the tree's model selector to a strategy.
// An unrecognized selector is a configuration fault, reported before any
// work is scheduled.
func newExecutionModel(m Model, operations []Operation, groups []*Group) (executionModel, error) {
	switch m {
	case ModelTiled:
		return newTiledModel(groups), nil
	case ModelFullFrame:
		return newFullFrameModel(operations), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownModel, int(m))
	}
}
