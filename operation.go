package compositor

// Operation is one node of the compiled graph: it renders pixels for a
// fixed output canvas from zero or more input operations.
//
// Operations are produced by a GraphBuilder and owned by the System
// afterwards. Render must write exactly the requested area of dst and
// nothing else; the engine calls it concurrently for disjoint areas of
// one buffer. A faulting operation panics, which is fatal for the run;
// hosts that need capture wrap their callbacks.
type Operation interface {
	// Name identifies the operation in logs and previews.
	Name() string

	// InitData prepares per-run state. The engine calls it on every
	// operation, in graph order, before any rendering starts.
	InitData(ctx *Context)

	// Canvas returns the operation's output bounds.
	Canvas() Region

	// Inputs returns the upstream operations, in input-socket order.
	// The slice must be stable across a run.
	Inputs() []Operation

	// InputArea returns the area of input i needed to render area of the
	// output. Point operations return area unchanged; filters expand it;
	// transforms inverse-map it. The engine clips the result to the
	// input's canvas.
	InputArea(i int, area Region) Region

	// Render writes the pixels of area into dst. inputs holds one
	// buffer per input operation, covering at least InputArea of the
	// requested area; reads outside a buffer clamp to its edge.
	Render(dst *Buffer, area Region, inputs []*Buffer)
}

// Finalizer is implemented by operations that need a hook after a run
// completes. The engine calls FinishData on every implementing operation
// once the model has returned, including after a cancelled run.
type Finalizer interface {
	FinishData(ctx *Context)
}

// AcceleratedOp describes operation kinds for GPU capability checking.
type AcceleratedOp uint32

const (
	// AccelColorMatrix represents 4x5 color matrix transforms.
	AccelColorMatrix AcceleratedOp = 1 << iota

	// AccelMix represents two-input mix operations.
	AccelMix

	// AccelBlur represents separable convolution filters.
	AccelBlur

	// AccelTransform represents affine resampling.
	AccelTransform
)

// AcceleratedOperation is implemented by operations that advertise a
// device-kernel kind. The full-frame model consults the registered
// accelerator for these before taking the CPU path.
type AcceleratedOperation interface {
	AccelOp() AcceleratedOp
}

// GraphBuilder compiles a node tree into executable operations.
//
// The returned operations must be fully initialized and connected; the
// returned groups partition work for the tiled model (the full-frame
// model ignores them). Any input of a group member that is not itself a
// group member must be the output operation of another group.
// Builder errors abort system construction.
type GraphBuilder interface {
	Build(ctx *Context, tree NodeTree, sys *System) ([]Operation, []*Group, error)
}

// BuildFunc adapts a function to the GraphBuilder interface.
type BuildFunc func(ctx *Context, tree NodeTree, sys *System) ([]Operation, []*Group, error)

// Build implements GraphBuilder.
func (f BuildFunc) Build(ctx *Context, tree NodeTree, sys *System) ([]Operation, []*Group, error) {
	return f(ctx, tree, sys)
}
