package compositor

import "errors"

// fullFrameModel renders every operation completely into a full-canvas
// buffer before its dependents run. Operations are processed in
// dependency order; each buffer is freed as soon as its last consumer
// has rendered.
type fullFrameModel struct {
	operations []Operation
	buffers    *operationBuffers
}

func newFullFrameModel(operations []Operation) *fullFrameModel {
	return &fullFrameModel{operations: operations}
}

func (m *fullFrameModel) execute(s *System) {
	m.buffers = newOperationBuffers(m.operations)
	defer func() { m.buffers = nil }()

	accel := Accelerator()
	useAccel := s.ctx.HasAccelerator() && accel != nil

	for _, op := range m.operations {
		if s.IsCancelled() {
			return
		}

		canvas := op.Canvas()
		if canvas.IsEmpty() {
			// Degenerate canvas; consumers see a nil input buffer.
			m.buffers.set(op, nil)
			m.buffers.releaseInputs(op)
			continue
		}

		out := NewBuffer(canvas)
		inputs := m.buffers.gather(op)

		rendered := false
		if useAccel {
			if ao, ok := op.(AcceleratedOperation); ok && accel.CanAccelerate(ao.AccelOp()) {
				err := accel.Render(op, out, canvas, inputs)
				switch {
				case err == nil:
					rendered = true
				case !errors.Is(err, ErrFallbackToCPU):
					Logger().Warn("accelerator render failed, using CPU",
						"op", op.Name(), "error", err)
				}
			}
		}
		if !rendered {
			s.ExecuteWork(canvas, func(band Region) {
				op.Render(out, band, inputs)
			})
		}

		m.buffers.set(op, out)
		m.buffers.releaseInputs(op)
	}
}

func (m *fullFrameModel) close() {
	m.operations = nil
	m.buffers = nil
}

// operationBuffers tracks rendered buffers and how many consumers each
// still has. A buffer is dropped the moment its count reaches zero, so
// peak memory follows the graph's live set rather than its total size.
type operationBuffers struct {
	refs map[Operation]int
	bufs map[Operation]*Buffer
}

func newOperationBuffers(operations []Operation) *operationBuffers {
	return &operationBuffers{
		refs: consumerCounts(operations),
		bufs: make(map[Operation]*Buffer, len(operations)),
	}
}

// set records the rendered buffer for op. Sinks (zero consumers) keep
// their buffer until the run ends.
func (t *operationBuffers) set(op Operation, buf *Buffer) {
	t.bufs[op] = buf
}

// get returns the rendered buffer for op, nil if absent or degenerate.
func (t *operationBuffers) get(op Operation) *Buffer {
	return t.bufs[op]
}

// gather returns one buffer per input of op, nil entries for nil or
// degenerate inputs.
func (t *operationBuffers) gather(op Operation) []*Buffer {
	ins := op.Inputs()
	if len(ins) == 0 {
		return nil
	}
	inputs := make([]*Buffer, len(ins))
	for i, in := range ins {
		if in != nil {
			inputs[i] = t.bufs[in]
		}
	}
	return inputs
}

// releaseInputs decrements each input's consumer count, dropping buffers
// that reach zero. Duplicate edges decrement twice, matching the budget
// built by consumerCounts.
func (t *operationBuffers) releaseInputs(op Operation) {
	for _, in := range op.Inputs() {
		if in == nil {
			continue
		}
		t.refs[in]--
		if t.refs[in] <= 0 {
			delete(t.bufs, in)
		}
	}
}
