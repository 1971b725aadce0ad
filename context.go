package compositor

// RenderData carries the output description for a run.
type RenderData struct {
	// Width and Height are the nominal output dimensions in pixels.
	Width, Height int

	// Frame is the current frame number.
	Frame int
}

// Scene identifies the scene a run belongs to.
type Scene struct {
	// Name is the host-side scene name, used in logs only.
	Name string

	// Frame is the scene's current frame.
	Frame int
}

// ViewSettings carries the display transform applied by viewer-style
// operations when converting working-space pixels for display.
type ViewSettings struct {
	// Exposure in stops; 0 is neutral.
	Exposure float64

	// Gamma correction factor; 1 is neutral. Values <= 0 are treated
	// as neutral.
	Gamma float64
}

// DisplaySettings names the display device pixels are prepared for.
// The engine plumbs it through; interpretation belongs to the host.
type DisplaySettings struct {
	Device string
}

// Context is the immutable per-run snapshot every operation and model
// reads. It is assembled once during system construction and never
// changes afterwards, so concurrent reads from worker goroutines need
// no locks.
type Context struct {
	viewName        string
	rendering       bool
	fastCalculation bool
	quality         Quality
	hasAccelerator  bool
	renderData      RenderData
	scene           Scene
	viewSettings    ViewSettings
	displaySettings DisplaySettings
	tree            NodeTree
	previews        *PreviewStore
}

// ViewName returns the active multi-view name, empty for single view.
func (c *Context) ViewName() string { return c.viewName }

// Rendering reports whether this run is a final render rather than an
// interactive preview.
func (c *Context) Rendering() bool { return c.rendering }

// FastCalculation reports whether operations should prefer speed over
// accuracy (used during playback scrubbing).
func (c *Context) FastCalculation() bool { return c.fastCalculation }

// Quality returns the effective quality for the run: the tree's
// render-mode quality when rendering, its edit-mode quality otherwise.
func (c *Context) Quality() Quality { return c.quality }

// HasAccelerator reports whether GPU acceleration may be used: the
// scheduler has a device and the tree opted in.
func (c *Context) HasAccelerator() bool { return c.hasAccelerator }

// RenderData returns the output description.
func (c *Context) RenderData() RenderData { return c.renderData }

// Scene returns the scene identity.
func (c *Context) Scene() Scene { return c.scene }

// ViewSettings returns the display transform parameters.
func (c *Context) ViewSettings() ViewSettings { return c.viewSettings }

// DisplaySettings returns the display device description.
func (c *Context) DisplaySettings() DisplaySettings { return c.displaySettings }

// Tree returns the source node tree.
func (c *Context) Tree() NodeTree { return c.tree }

// Previews returns the tree's preview store, or nil when the host keeps
// no previews.
func (c *Context) Previews() *PreviewStore { return c.previews }
