// Command compdemo demonstrates the compositor engine.
//
// It builds a small drop-shadow graph (checker background, colored card,
// blurred shadow, final color grade), runs it through the selected
// execution model and writes the viewer result as a PNG.
package main

import (
	"flag"
	"image/png"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gogpu/compositor"
	"github.com/gogpu/compositor/filter"
	"github.com/gogpu/compositor/ops"
	"github.com/gogpu/compositor/schedule"
)

func main() {
	var (
		size    = flag.Int("size", 512, "canvas size in pixels")
		model   = flag.String("model", "fullframe", "execution model: fullframe or tiled")
		workers = flag.Int("workers", 0, "CPU workers (0 = all cores)")
		radius  = flag.Float64("radius", 12, "shadow blur radius")
		output  = flag.String("output", "demo.png", "output file")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *verbose {
		compositor.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	g, view := buildScene(*size, *radius)
	switch *model {
	case "fullframe":
		g.SetExecutionModel(compositor.ModelFullFrame)
	case "tiled":
		g.SetExecutionModel(compositor.ModelTiled)
	default:
		log.Fatalf("Unknown model %q (want fullframe or tiled)", *model)
	}

	pool := schedule.NewPool(*workers)
	defer pool.Close()

	sys, err := compositor.NewSystem(g,
		compositor.WithRendering(true),
		compositor.WithScheduler(compositor.NewPoolScheduler(pool)),
	)
	if err != nil {
		log.Fatalf("Failed to build system: %v", err)
	}
	defer func() { _ = sys.Close() }()

	start := time.Now()
	sys.Execute()
	elapsed := time.Since(start)

	result := view.Result()
	if result == nil {
		log.Fatal("No viewer result")
	}
	if err := savePNG(*output, result); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	log.Printf("Rendered %dx%d with %s model on %d workers in %v\n",
		*size, *size, g.ExecutionModel(), sys.Workers(), elapsed)
	log.Printf("Demo saved to %s\n", *output)
}

// buildScene assembles the demo graph and returns the tree with its
// viewer sink.
func buildScene(size int, radius float64) (*ops.Graph, *ops.Viewer) {
	frame := compositor.Rect(0, 0, size, size)

	// Checker background in two soft grays.
	bg := ops.NewChecker("background", frame,
		compositor.RGB(0.42, 0.44, 0.48), compositor.RGB(0.30, 0.32, 0.36), size/16)

	// Colored card covering the central third of the frame.
	third := size / 3
	card := ops.NewColor("card",
		compositor.Rect(third, third, 2*third, 2*third),
		compositor.Premultiply(0.95, 0.55, 0.15, 0.95))

	// Shadow: offset the card, soften it, then keep only a darkened
	// silhouette by zeroing the color rows and scaling the alpha row.
	offset := ops.NewTransform("shadow/offset",
		compositor.Translate(float64(size)/24, float64(size)/24), card)
	soft := ops.NewBlur("shadow/blur", radius, offset)
	silhouette := ops.NewColorMatrix("shadow/darken", filter.NewColorMatrixFilter([20]float32{
		0, 0, 0, 0, 0,
		0, 0, 0, 0, 0,
		0, 0, 0, 0, 0,
		0, 0, 0, 0.7, 0,
	}), soft)

	shadowed := ops.NewAlphaOver("compose/shadow", 1, bg, silhouette)
	composed := ops.NewAlphaOver("compose/card", 1, shadowed, card)

	// Final grade: slightly warmer and higher contrast.
	graded := ops.NewColorMatrix("grade", filter.NewContrastFilter(1.15), composed)
	tinted := ops.NewMix("tint", ops.ModeMix, 0.12,
		graded, ops.NewColor("tint/color", frame, compositor.RGB(1.0, 0.85, 0.6)))

	view := ops.NewViewer("viewer", tinted)

	g := ops.NewGraph()
	g.SetRenderQuality(compositor.QualityHigh)
	g.AddOutput(view)
	return g, view
}

func savePNG(path string, b *compositor.Buffer) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	return png.Encode(f, b.ToImage())
}
