// Package compositor provides a parallel execution engine for node-graph
// image compositing.
//
// # Overview
//
// A host hands the engine a source node tree plus render settings, and the
// engine compiles the tree into operations, picks an execution model, and
// renders through a shared scheduler with fine-grained work splitting and
// cooperative cancellation.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/compositor"
//	    "github.com/gogpu/compositor/ops"
//	)
//
//	// Describe a graph programmatically.
//	frame := compositor.Rect(0, 0, 512, 512)
//	src := ops.NewChecker("bg", frame,
//	    compositor.RGB(0.9, 0.9, 0.9), compositor.RGB(0.2, 0.2, 0.2), 32)
//	blur := ops.NewBlur("soften", 4, src)
//	view := ops.NewViewer("viewer", blur)
//
//	g := ops.NewGraph()
//	g.AddOutput(view)
//
//	// Compile and run it.
//	sys, err := compositor.NewSystem(g)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer sys.Close()
//	sys.Execute()
//
//	// view.Result() now holds the composited pixels.
//
// # Execution models
//
// Two strategies cover the memory/latency trade-off:
//   - Full-frame: every operation renders its complete canvas into a buffer
//     before dependents run. Minimal recomputation, higher peak memory.
//   - Tiled: execution groups render in bounded horizontal slabs with
//     per-slab chain evaluation. Bounded memory, possible recomputation of
//     shared inputs.
//
// The source tree selects the model; both produce identical pixels.
//
// # Work splitting
//
// System.ExecuteWork is the core primitive: it splits a rectangle into one
// horizontal band per CPU worker, dispatches the bands through the
// scheduler, and blocks until every band has completed. Cancellation is
// cooperative: the tree's break probe is polled before new work is issued
// and inside each band.
//
// # GPU acceleration
//
// An optional wgpu-backed accelerator handles supported operations on the
// device. Users opt in via blank import:
//
//	import _ "github.com/gogpu/compositor/gpu"
//
// Unsupported operations fall back to the CPU path transparently.
//
// # Coordinate System
//
// Regions use integer pixel coordinates with the origin at the top-left,
// X increasing right and Y increasing down. A Region is half-open: MinX and
// MinY are inclusive, MaxX and MaxY exclusive.
package compositor

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
