package compositor

const (
	// slabHeight bounds the rows rendered per split cycle in the tiled
	// model, which in turn bounds per-band scratch memory.
	slabHeight = 64
)

// tiledModel renders execution groups in dependency order, slab by slab.
// Each slab goes through ExecuteWork, and every band re-evaluates the
// group's operation chain into band-local scratch buffers, so peak
// memory stays bounded at the cost of recomputing inputs shared between
// bands.
type tiledModel struct {
	groups  []*Group
	outputs map[Operation]*Buffer
}

func newTiledModel(groups []*Group) *tiledModel {
	return &tiledModel{groups: groups}
}

func (m *tiledModel) execute(s *System) {
	m.outputs = make(map[Operation]*Buffer, len(m.groups))
	defer func() { m.outputs = nil }()

	// Consumer counts per group output, so upstream buffers are dropped
	// once the last reading group has run.
	refs := make(map[Operation]int)
	for _, g := range m.groups {
		for _, in := range externalInputs(g) {
			refs[in]++
		}
	}

	external := func(op Operation) *Buffer {
		return m.outputs[op]
	}

	for _, g := range m.groups {
		if s.IsCancelled() {
			return
		}

		canvas := g.Canvas()
		if !canvas.IsEmpty() {
			out := NewBuffer(canvas)
			for y := canvas.MinY; y < canvas.MaxY; y += slabHeight {
				if s.IsCancelled() {
					break
				}
				slab := Region{
					MinX: canvas.MinX,
					MinY: y,
					MaxX: canvas.MaxX,
					MaxY: min(y+slabHeight, canvas.MaxY),
				}
				s.ExecuteWork(slab, func(band Region) {
					g.renderArea(band, out, external)
				})
			}
			m.outputs[g.Output()] = out
		}

		for _, in := range externalInputs(g) {
			refs[in]--
			if refs[in] <= 0 {
				delete(m.outputs, in)
			}
		}
	}
}

func (m *tiledModel) close() {
	m.groups = nil
	m.outputs = nil
}

// externalInputs returns the distinct operations outside g that members
// of g read. Under the builder contract these are output operations of
// earlier groups.
func externalInputs(g *Group) []Operation {
	var ext []Operation
	seen := make(map[Operation]bool)
	for _, op := range g.Operations() {
		for _, in := range op.Inputs() {
			if in == nil || seen[in] || g.contains(in) {
				continue
			}
			seen[in] = true
			ext = append(ext, in)
		}
	}
	return ext
}
