package compositor

import "errors"

// Sentinel errors returned by system construction. Match with errors.Is.
var (
	// ErrNilTree indicates NewSystem was called with a nil node tree.
	ErrNilTree = errors.New("compositor: nil node tree")

	// ErrNoBuilder indicates no graph builder was supplied and the tree
	// does not implement GraphBuilder itself.
	ErrNoBuilder = errors.New("compositor: no graph builder")

	// ErrUnknownModel indicates the tree selected an execution model the
	// engine does not implement. This is a configuration fault: it is
	// reported before any work is scheduled.
	ErrUnknownModel = errors.New("compositor: unknown execution model")

	// ErrCyclicGraph indicates the builder returned operations whose
	// input edges form a cycle.
	ErrCyclicGraph = errors.New("compositor: operation graph has a cycle")
)

// ErrFallbackToCPU indicates the GPU accelerator cannot handle this
// operation. The caller should transparently fall back to CPU rendering.
var ErrFallbackToCPU = errors.New("compositor: falling back to CPU rendering")
