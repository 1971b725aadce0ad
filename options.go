package compositor

// Option configures a System during creation.
//
// Example:
//
//	// Interactive preview with default settings.
//	sys, err := compositor.NewSystem(tree)
//
//	// Final render at a fixed size.
//	sys, err := compositor.NewSystem(tree,
//	    compositor.WithRendering(true),
//	    compositor.WithRenderData(compositor.RenderData{Width: 1920, Height: 1080}),
//	)
type Option func(*systemOptions)

// systemOptions holds optional configuration for System creation.
type systemOptions struct {
	viewName        string
	rendering       bool
	fastCalculation bool
	renderData      RenderData
	scene           Scene
	viewSettings    ViewSettings
	displaySettings DisplaySettings
	scheduler       Scheduler
	builder         GraphBuilder
}

// defaultOptions returns the default system options.
func defaultOptions() systemOptions {
	return systemOptions{
		viewSettings: ViewSettings{Gamma: 1},
		scheduler:    nil, // Will be set to DefaultScheduler if nil
		builder:      nil, // Tree may implement GraphBuilder itself
	}
}

// WithViewName sets the active multi-view name.
func WithViewName(name string) Option {
	return func(o *systemOptions) {
		o.viewName = name
	}
}

// WithRendering marks the run as a final render. Rendering runs use the
// tree's render-mode quality instead of its edit-mode quality.
func WithRendering(rendering bool) Option {
	return func(o *systemOptions) {
		o.rendering = rendering
	}
}

// WithFastCalculation asks operations to prefer speed over accuracy,
// typically during playback scrubbing.
func WithFastCalculation(fast bool) Option {
	return func(o *systemOptions) {
		o.fastCalculation = fast
	}
}

// WithRenderData sets the output description for the run.
func WithRenderData(rd RenderData) Option {
	return func(o *systemOptions) {
		o.renderData = rd
	}
}

// WithScene sets the scene identity for the run.
func WithScene(s Scene) Option {
	return func(o *systemOptions) {
		o.scene = s
	}
}

// WithViewSettings sets the display transform applied by viewer-style
// operations.
func WithViewSettings(vs ViewSettings) Option {
	return func(o *systemOptions) {
		o.viewSettings = vs
	}
}

// WithDisplaySettings sets the display device description.
func WithDisplaySettings(ds DisplaySettings) Option {
	return func(o *systemOptions) {
		o.displaySettings = ds
	}
}

// WithScheduler sets a custom scheduler for the System.
// Use this for dependency injection; tests inject recording fakes.
// The System does not own an injected scheduler and never closes it.
func WithScheduler(s Scheduler) Option {
	return func(o *systemOptions) {
		o.scheduler = s
	}
}

// WithBuilder sets the graph builder that compiles the tree into
// operations. When absent, a tree that implements GraphBuilder itself is
// used as its own builder.
func WithBuilder(b GraphBuilder) Option {
	return func(o *systemOptions) {
		o.builder = b
	}
}
