package compositor

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/gogpu/compositor/schedule"
)

// System owns one full composite evaluation: the compiled operations and
// groups, the chosen execution model, the context snapshot, and the
// completion barrier used by work splitting.
//
// A System is built for one tree state; hosts create a fresh System per
// run and Close it afterwards. Execute and ExecuteWork must not be called
// concurrently with each other or with Close.
type System struct {
	ctx        *Context
	operations []Operation
	groups     []*Group
	model      executionModel
	sched      Scheduler

	// workers is the CPU worker count recorded at construction; it is
	// the upper bound on sub-regions per split cycle.
	workers int

	// Completion barrier for ExecuteWork. The counter is owned by the
	// System and scoped to one split-and-wait cycle.
	workMu       sync.Mutex
	workCond     *sync.Cond
	workFinished int

	closed bool
}

// NewSystem compiles the tree into an executable system.
//
// Construction runs the full setup sequence: options, context snapshot,
// graph building, graph validation, and model selection. Configuration
// faults (nil tree, missing builder, cyclic graph, unknown execution
// model) are reported here, before any work is scheduled.
func NewSystem(tree NodeTree, opts ...Option) (*System, error) {
	if tree == nil {
		return nil, ErrNilTree
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	sched := o.scheduler
	if sched == nil {
		sched = DefaultScheduler()
	}

	quality := tree.EditQuality()
	if o.rendering {
		quality = tree.RenderQuality()
	}

	ctx := &Context{
		viewName:        o.viewName,
		rendering:       o.rendering,
		fastCalculation: o.fastCalculation,
		quality:         quality,
		hasAccelerator:  sched.HasAccelerator() && tree.AcceleratorEnabled(),
		renderData:      o.renderData,
		scene:           o.scene,
		viewSettings:    o.viewSettings,
		displaySettings: o.displaySettings,
		tree:            tree,
		previews:        tree.Previews(),
	}

	s := &System{
		ctx:     ctx,
		sched:   sched,
		workers: max(sched.Workers(), 1),
	}
	s.workCond = sync.NewCond(&s.workMu)

	builder := o.builder
	if builder == nil {
		if tb, ok := tree.(GraphBuilder); ok {
			builder = tb
		} else {
			return nil, ErrNoBuilder
		}
	}

	operations, groups, err := builder.Build(ctx, tree, s)
	if err != nil {
		return nil, fmt.Errorf("compositor: graph build failed: %w", err)
	}

	// Dependency order up front: every operation after its inputs, every
	// group after the groups it reads. A cycle is a configuration fault.
	s.operations, err = sortOperations(operations)
	if err != nil {
		return nil, err
	}
	s.groups, err = sortGroups(groups)
	if err != nil {
		return nil, err
	}

	s.model, err = newExecutionModel(tree.ExecutionModel(), s.operations, s.groups)
	if err != nil {
		return nil, err
	}

	return s, nil
}

// sortGroups orders groups so producers come before the groups that read
// their output buffers.
func sortGroups(groups []*Group) ([]*Group, error) {
	if len(groups) <= 1 {
		return groups, nil
	}

	byOutput := make(map[Operation]*Group, len(groups))
	for _, g := range groups {
		byOutput[g.Output()] = g
	}

	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[*Group]int, len(groups))
	sorted := make([]*Group, 0, len(groups))

	var visit func(g *Group) error
	visit = func(g *Group) error {
		switch state[g] {
		case done:
			return nil
		case visiting:
			return ErrCyclicGraph
		}
		state[g] = visiting
		for _, op := range g.Operations() {
			for _, in := range op.Inputs() {
				if in == nil || g.contains(in) {
					continue
				}
				if dep, ok := byOutput[in]; ok && dep != g {
					if err := visit(dep); err != nil {
						return err
					}
				}
			}
		}
		state[g] = done
		sorted = append(sorted, g)
		return nil
	}

	for _, g := range groups {
		if err := visit(g); err != nil {
			return nil, err
		}
	}
	return sorted, nil
}

// Context returns the immutable per-run snapshot.
func (s *System) Context() *Context {
	return s.ctx
}

// Operations returns the compiled operations in dependency order.
func (s *System) Operations() []Operation {
	return s.operations
}

// Groups returns the execution groups in dependency order.
func (s *System) Groups() []*Group {
	return s.groups
}

// Workers returns the CPU worker count recorded at construction.
func (s *System) Workers() int {
	return s.workers
}

// IsCancelled reports whether the host wants the run abandoned. It
// forwards to the tree's break probe and is safe to call from worker
// goroutines.
func (s *System) IsCancelled() bool {
	return s.ctx.tree.ShouldBreak()
}

// Execute runs the graph to completion (or until cancelled).
//
// It calls InitData on every operation in graph order, hands control to
// the execution model, then calls FinishData on operations that implement
// Finalizer. Cancellation is not an error: Execute returns normally and
// the host checks IsCancelled for the outcome.
func (s *System) Execute() {
	if s.closed || s.model == nil {
		return
	}

	log := Logger()
	start := time.Now()
	log.Debug("execution started",
		"model", s.ctx.tree.ExecutionModel().String(),
		"operations", len(s.operations),
		"groups", len(s.groups),
		"view", s.ctx.ViewName(),
	)

	for _, op := range s.operations {
		op.InitData(s.ctx)
	}

	s.model.execute(s)

	for _, op := range s.operations {
		if f, ok := op.(Finalizer); ok {
			f.FinishData(s.ctx)
		}
	}

	log.Debug("execution finished",
		"elapsed", time.Since(start),
		"cancelled", s.IsCancelled(),
	)
}

// ExecuteWork splits region into one horizontal band per CPU worker,
// submits the bands to the scheduler, and blocks until every band has
// completed.
//
// fn is called once per band with the band's region (full region width,
// a contiguous y range); calls run concurrently on worker goroutines.
// Cancellation is checked before any band is submitted and again inside
// each band before fn runs; cancelled bands complete without calling fn.
//
// The join is a double barrier: the scheduler's Barrier is the primary
// wait, and a mutex/cond completion counter is the authoritative
// backstop (the pool's fence barrier is best-effort under work
// stealing). Nested calls from inside a band callback are not supported.
func (s *System) ExecuteWork(region Region, fn func(split Region)) {
	if s.IsCancelled() {
		return
	}

	height := region.Height()
	count := min(s.workers, height)
	if count <= 0 {
		return
	}

	s.workMu.Lock()
	s.workFinished = 0
	s.workMu.Unlock()

	// One band per sub-work; heights differ by at most one row.
	base := height / count
	rem := height - base*count

	works := make([]schedule.Work, count)
	y := region.MinY
	for i := 0; i < count; i++ {
		h := base
		if rem > 0 {
			h++
			rem--
		}
		band := Region{MinX: region.MinX, MinY: y, MaxX: region.MaxX, MaxY: y + h}
		y += h

		w := &works[i]
		w.Kind = schedule.KindCustom
		w.Execute = func() {
			if s.IsCancelled() {
				return
			}
			fn(band)
		}
		w.Done = func() {
			s.workMu.Lock()
			s.workFinished++
			if s.workFinished == count {
				s.workCond.Signal()
			}
			s.workMu.Unlock()
		}
		s.sched.Submit(w)
	}
	if y != region.MaxY {
		panic(fmt.Sprintf("compositor: band split covers %d..%d, want %d..%d",
			region.MinY, y, region.MinY, region.MaxY))
	}

	// Primary wait: flush the scheduler queues.
	s.sched.Barrier()

	// Backstop: the completion counter is the authoritative join.
	s.workMu.Lock()
	for s.workFinished < count {
		s.workCond.Wait()
	}
	s.workMu.Unlock()
}

// Close tears the system down: the execution model first, then the
// operations (closing those that implement io.Closer), then the groups.
// Idempotent; must not be called while Execute is running.
func (s *System) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	if s.model != nil {
		s.model.close()
		s.model = nil
	}

	var firstErr error
	for _, op := range s.operations {
		if c, ok := op.(io.Closer); ok {
			if err := c.Close(); err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}
	s.operations = nil
	s.groups = nil

	return firstErr
}
