package compositor

import "fmt"

// Group is a cluster of operations the tiled model processes together.
//
// Members are evaluated as a chain per rendered band: a backward pass
// works out each member's needed area, a forward pass renders members
// into band-local scratch buffers, and the group's output operation
// writes into the shared group buffer. Inputs from outside the group
// resolve to earlier groups' cached output buffers.
type Group struct {
	// operations in local dependency order; the last one is the output.
	operations []Operation
	output     Operation
}

// NewGroup creates a group from its member operations. Members are
// sorted into local dependency order; exactly one member must have no
// consumer inside the group, and it becomes the group's output.
func NewGroup(members ...Operation) (*Group, error) {
	if len(members) == 0 {
		return nil, fmt.Errorf("compositor: empty execution group")
	}

	// Dedupe while keeping first-seen order.
	seen := make(map[Operation]bool, len(members))
	ops := make([]Operation, 0, len(members))
	for _, op := range members {
		if op == nil || seen[op] {
			continue
		}
		seen[op] = true
		ops = append(ops, op)
	}

	sorted, err := sortOperations(ops)
	if err != nil {
		return nil, err
	}

	// The output is the unique member no other member consumes.
	consumed := make(map[Operation]bool, len(sorted))
	for _, op := range sorted {
		for _, in := range op.Inputs() {
			if seen[in] {
				consumed[in] = true
			}
		}
	}
	var output Operation
	sinks := 0
	for _, op := range sorted {
		if !consumed[op] {
			output = op
			sinks++
		}
	}
	if sinks != 1 {
		return nil, fmt.Errorf("compositor: group must have exactly one output operation, got %d", sinks)
	}

	// Dependency order already puts the output last.
	return &Group{operations: sorted, output: output}, nil
}

// Operations returns the members in local dependency order.
func (g *Group) Operations() []Operation {
	return g.operations
}

// Output returns the operation whose result the group produces.
func (g *Group) Output() Operation {
	return g.output
}

// Canvas returns the group's output bounds.
func (g *Group) Canvas() Region {
	return g.output.Canvas()
}

// contains reports whether op is a member of the group.
func (g *Group) contains(op Operation) bool {
	for _, member := range g.operations {
		if member == op {
			return true
		}
	}
	return false
}

// renderArea evaluates the member chain for one band, writing the band
// into out. external resolves inputs outside the group to their cached
// buffers. Safe for concurrent calls on disjoint areas: all intermediate
// state is call-local and out writes are row-disjoint.
func (g *Group) renderArea(area Region, out *Buffer, external func(Operation) *Buffer) {
	// Backward pass: which part of each member the band depends on.
	need := make(map[Operation]Region, len(g.operations))
	need[g.output] = area
	for i := len(g.operations) - 1; i >= 0; i-- {
		op := g.operations[i]
		opNeed := need[op]
		if opNeed.IsEmpty() {
			continue
		}
		for j, in := range op.Inputs() {
			if in == nil || !g.contains(in) {
				continue
			}
			r := op.InputArea(j, opNeed).Intersect(in.Canvas())
			need[in] = need[in].Union(r)
		}
	}

	// Forward pass: render members into band-local scratch, the output
	// into the shared group buffer.
	scratch := make(map[Operation]*Buffer, len(g.operations))
	resolve := func(op Operation) *Buffer {
		if b := scratch[op]; b != nil {
			return b
		}
		return external(op)
	}

	for _, op := range g.operations {
		req := need[op]
		if op == g.output {
			req = area
		} else if req.IsEmpty() {
			continue
		}

		ins := op.Inputs()
		inputs := make([]*Buffer, len(ins))
		for j, in := range ins {
			if in != nil {
				inputs[j] = resolve(in)
			}
		}

		dst := out
		if op != g.output {
			dst = NewBuffer(req)
			scratch[op] = dst
		}
		op.Render(dst, req, inputs)
	}
}
