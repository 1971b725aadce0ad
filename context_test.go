package compositor

import "testing"

func TestContext_OptionPlumbing(t *testing.T) {
	tree := &builderTree{}
	rd := RenderData{Width: 1920, Height: 1080, Frame: 42}
	sc := Scene{Name: "shot_010", Frame: 42}
	vs := ViewSettings{Exposure: 0.5, Gamma: 2.2}
	ds := DisplaySettings{Device: "sRGB"}

	sys, err := NewSystem(tree,
		WithScheduler(&inlineScheduler{workers: 2}),
		WithViewName("left"),
		WithRendering(true),
		WithFastCalculation(true),
		WithRenderData(rd),
		WithScene(sc),
		WithViewSettings(vs),
		WithDisplaySettings(ds),
	)
	if err != nil {
		t.Fatalf("NewSystem() = %v", err)
	}
	defer sys.Close()

	ctx := sys.Context()
	if got := ctx.ViewName(); got != "left" {
		t.Errorf("ViewName() = %q, want %q", got, "left")
	}
	if !ctx.Rendering() {
		t.Error("Rendering() = false, want true")
	}
	if !ctx.FastCalculation() {
		t.Error("FastCalculation() = false, want true")
	}
	if got := ctx.RenderData(); got != rd {
		t.Errorf("RenderData() = %+v, want %+v", got, rd)
	}
	if got := ctx.Scene(); got != sc {
		t.Errorf("Scene() = %+v, want %+v", got, sc)
	}
	if got := ctx.ViewSettings(); got != vs {
		t.Errorf("ViewSettings() = %+v, want %+v", got, vs)
	}
	if got := ctx.DisplaySettings(); got != ds {
		t.Errorf("DisplaySettings() = %+v, want %+v", got, ds)
	}
	if ctx.Tree() != tree {
		t.Error("Tree() did not return the source tree")
	}
}

func TestContext_Defaults(t *testing.T) {
	tree := &builderTree{}
	sys, err := NewSystem(tree, WithScheduler(&inlineScheduler{workers: 2}))
	if err != nil {
		t.Fatalf("NewSystem() = %v", err)
	}
	defer sys.Close()

	ctx := sys.Context()
	if got := ctx.ViewName(); got != "" {
		t.Errorf("ViewName() = %q, want empty", got)
	}
	if ctx.Rendering() {
		t.Error("Rendering() = true, want false")
	}
	if ctx.FastCalculation() {
		t.Error("FastCalculation() = true, want false")
	}
	if got := ctx.ViewSettings().Gamma; got != 1 {
		t.Errorf("default Gamma = %g, want 1", got)
	}
	if ctx.Previews() != nil {
		t.Error("Previews() != nil for a tree without a store")
	}
}

func TestContext_PreviewsFromTree(t *testing.T) {
	store := NewPreviewStore()
	tree := &builderTree{}
	tree.previews = store

	sys, err := NewSystem(tree, WithScheduler(&inlineScheduler{workers: 2}))
	if err != nil {
		t.Fatalf("NewSystem() = %v", err)
	}
	defer sys.Close()

	if sys.Context().Previews() != store {
		t.Error("Previews() did not return the tree's store")
	}
}

func TestQuality_String(t *testing.T) {
	tests := []struct {
		q    Quality
		want string
	}{
		{QualityHigh, "High"},
		{QualityMedium, "Medium"},
		{QualityLow, "Low"},
		{Quality(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.q.String(); got != tt.want {
			t.Errorf("Quality(%d).String() = %q, want %q", int(tt.q), got, tt.want)
		}
	}
}

func TestQuality_Step(t *testing.T) {
	tests := []struct {
		q    Quality
		want int
	}{
		{QualityHigh, 1},
		{QualityMedium, 2},
		{QualityLow, 4},
		{Quality(99), 1},
	}
	for _, tt := range tests {
		if got := tt.q.Step(); got != tt.want {
			t.Errorf("Quality(%d).Step() = %d, want %d", int(tt.q), got, tt.want)
		}
	}
}

func TestModel_String(t *testing.T) {
	tests := []struct {
		m    Model
		want string
	}{
		{ModelTiled, "Tiled"},
		{ModelFullFrame, "FullFrame"},
		{Model(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.m.String(); got != tt.want {
			t.Errorf("Model(%d).String() = %q, want %q", int(tt.m), got, tt.want)
		}
	}
}
