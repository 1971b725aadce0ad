package ops

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/gogpu/compositor"
)

// Graph is a mutable node graph that compiles itself into operations.
// It implements both compositor.NodeTree and compositor.GraphBuilder,
// so a populated graph goes straight into compositor.NewSystem.
//
// Assembly happens through the operation constructors plus AddOutput
// and MarkBuffered; per-run settings live on the graph. Mutation must
// stop once a System has been built. A graph can run again after a
// cancellation: call Reset between runs.
type Graph struct {
	cancelled atomic.Bool

	model         compositor.Model
	renderQuality compositor.Quality
	editQuality   compositor.Quality
	accelerator   bool
	previews      *compositor.PreviewStore

	outputs  []compositor.Operation
	buffered map[compositor.Operation]bool
}

// NewGraph creates an empty graph with full-frame execution, high
// render quality, medium edit quality, and an empty preview store.
func NewGraph() *Graph {
	return &Graph{
		model:         compositor.ModelFullFrame,
		renderQuality: compositor.QualityHigh,
		editQuality:   compositor.QualityMedium,
		previews:      compositor.NewPreviewStore(),
		buffered:      make(map[compositor.Operation]bool),
	}
}

// AddOutput registers op as a sink the system must evaluate. Everything
// reachable from a registered output is compiled; everything else is
// pruned. At least one output is required.
func (g *Graph) AddOutput(op compositor.Operation) {
	g.outputs = append(g.outputs, op)
}

// MarkBuffered forces op's result into a cached buffer under the tiled
// model by making it a group boundary. Useful ahead of wide filters
// whose upstream chain is expensive to re-evaluate per band.
func (g *Graph) MarkBuffered(op compositor.Operation) {
	g.buffered[op] = true
}

// SetExecutionModel selects the rendering strategy.
func (g *Graph) SetExecutionModel(m compositor.Model) { g.model = m }

// SetRenderQuality sets the quality used for final renders.
func (g *Graph) SetRenderQuality(q compositor.Quality) { g.renderQuality = q }

// SetEditQuality sets the quality used for interactive runs.
func (g *Graph) SetEditQuality(q compositor.Quality) { g.editQuality = q }

// SetAcceleratorEnabled opts the graph in or out of GPU acceleration.
func (g *Graph) SetAcceleratorEnabled(on bool) { g.accelerator = on }

// Cancel flags the current run for abandonment. Safe from any
// goroutine; workers observe it between bands.
func (g *Graph) Cancel() { g.cancelled.Store(true) }

// Reset clears a cancellation so the graph can run again.
func (g *Graph) Reset() { g.cancelled.Store(false) }

// ShouldBreak implements compositor.NodeTree.
func (g *Graph) ShouldBreak() bool { return g.cancelled.Load() }

// ExecutionModel implements compositor.NodeTree.
func (g *Graph) ExecutionModel() compositor.Model { return g.model }

// RenderQuality implements compositor.NodeTree.
func (g *Graph) RenderQuality() compositor.Quality { return g.renderQuality }

// EditQuality implements compositor.NodeTree.
func (g *Graph) EditQuality() compositor.Quality { return g.editQuality }

// AcceleratorEnabled implements compositor.NodeTree.
func (g *Graph) AcceleratorEnabled() bool { return g.accelerator }

// Previews implements compositor.NodeTree.
func (g *Graph) Previews() *compositor.PreviewStore { return g.previews }

// Build implements compositor.GraphBuilder: it collects every operation
// reachable from a registered output and partitions them into execution
// groups for the tiled model.
func (g *Graph) Build(ctx *compositor.Context, tree compositor.NodeTree, sys *compositor.System) ([]compositor.Operation, []*compositor.Group, error) {
	if len(g.outputs) == 0 {
		return nil, nil, errors.New("ops: graph has no output")
	}

	var operations []compositor.Operation
	reachable := make(map[compositor.Operation]bool)
	var walk func(op compositor.Operation)
	walk = func(op compositor.Operation) {
		if op == nil || reachable[op] {
			return
		}
		reachable[op] = true
		for _, in := range op.Inputs() {
			walk(in)
		}
		operations = append(operations, op)
	}
	for _, out := range g.outputs {
		walk(out)
	}

	groups, err := g.partition(operations, reachable)
	if err != nil {
		return nil, nil, err
	}
	return operations, groups, nil
}

// partition splits the reachable operations into execution groups.
// Every sink and every explicitly buffered operation becomes a group
// output; operations with more than one distinct consumer are promoted
// too, so a cross-group edge always lands on a cached group buffer and
// shared chains are never re-evaluated per consumer.
func (g *Graph) partition(operations []compositor.Operation, reachable map[compositor.Operation]bool) ([]*compositor.Group, error) {
	consumers := make(map[compositor.Operation]int)
	for _, op := range operations {
		counted := make(map[compositor.Operation]bool, len(op.Inputs()))
		for _, in := range op.Inputs() {
			if in == nil || counted[in] {
				continue
			}
			counted[in] = true
			consumers[in]++
		}
	}

	split := make(map[compositor.Operation]bool)
	for _, out := range g.outputs {
		split[out] = true
	}
	for op := range g.buffered {
		if reachable[op] {
			split[op] = true
		}
	}
	for op, n := range consumers {
		if n > 1 {
			split[op] = true
		}
	}

	groups := make([]*compositor.Group, 0, len(split))
	for _, op := range operations {
		if !split[op] {
			continue
		}
		grp, err := compositor.NewGroup(groupMembers(op, split)...)
		if err != nil {
			return nil, fmt.Errorf("ops: group for %q: %w", op.Name(), err)
		}
		groups = append(groups, grp)
	}
	return groups, nil
}

// groupMembers gathers output plus its upstream chain, stopping at
// other group outputs. Because non-split operations have at most one
// distinct consumer, each lands in exactly one group.
func groupMembers(output compositor.Operation, split map[compositor.Operation]bool) []compositor.Operation {
	var members []compositor.Operation
	seen := make(map[compositor.Operation]bool)
	var climb func(op compositor.Operation)
	climb = func(op compositor.Operation) {
		if op == nil || seen[op] {
			return
		}
		seen[op] = true
		members = append(members, op)
		for _, in := range op.Inputs() {
			if in == nil || split[in] {
				continue
			}
			climb(in)
		}
	}
	climb(output)
	return members
}
