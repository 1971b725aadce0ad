package compositor

// NodeTree is the engine's read-only view of the host's node graph.
//
// The engine never mutates the tree. Beyond graph compilation (which goes
// through a GraphBuilder), the tree contributes per-run settings and the
// cancellation probe.
type NodeTree interface {
	// ShouldBreak reports whether the host wants the current run
	// abandoned. It is polled from worker goroutines, so it must be
	// fast, non-blocking, and safe for concurrent use. Within one run
	// the transition is one-way: once true it stays true.
	ShouldBreak() bool

	// ExecutionModel selects the rendering strategy for the tree.
	ExecutionModel() Model

	// RenderQuality is the quality used for final renders.
	RenderQuality() Quality

	// EditQuality is the quality used for interactive preview runs.
	EditQuality() Quality

	// AcceleratorEnabled reports whether the tree opts in to GPU
	// acceleration. The context combines it with device availability.
	AcceleratorEnabled() bool

	// Previews returns the store viewer-style operations write node
	// thumbnails into. May return nil when the host keeps no previews.
	Previews() *PreviewStore
}
