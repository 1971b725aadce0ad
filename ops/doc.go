// Package ops provides a library of ready-made compositing operations
// and a Graph type that assembles them into a runnable node tree.
//
// The operations cover the usual node palette: constant and checker
// generators, image sources, mix and alpha-over combiners, color matrix
// grading, Gaussian blur, affine transforms, and a viewer sink that
// retains its result for display. Graph implements both
// compositor.NodeTree and compositor.GraphBuilder, so a populated graph
// can be handed straight to compositor.NewSystem:
//
//	g := ops.NewGraph()
//	bg := ops.NewChecker("bg", compositor.Rect(0, 0, 640, 480), dark, light, 16)
//	blur := ops.NewBlur("soften", 4, bg)
//	view := ops.NewViewer("viewer", blur)
//	g.AddOutput(view)
//
//	sys, err := compositor.NewSystem(g)
//	if err != nil {
//		...
//	}
//	defer sys.Close()
//	sys.Execute()
//
// Under the tiled model the graph partitions itself into execution
// groups: every sink and every operation with more than one consumer
// becomes a group boundary, and MarkBuffered adds explicit ones.
package ops
