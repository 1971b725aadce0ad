package compositor

import (
	"image"
	"sync"

	xdraw "golang.org/x/image/draw"
)

// previewMaxSize caps the longest side of a stored preview thumbnail.
const previewMaxSize = 140

// PreviewStore holds node preview thumbnails written during a run.
//
// Viewer-style operations downscale their result into the store keyed by
// node name; hosts read the thumbnails after (or during) a run to update
// their UI. All methods are safe for concurrent use.
type PreviewStore struct {
	mu     sync.RWMutex
	images map[string]*image.NRGBA
}

// NewPreviewStore creates an empty preview store.
func NewPreviewStore() *PreviewStore {
	return &PreviewStore{images: make(map[string]*image.NRGBA)}
}

// Set stores a thumbnail for the node, downscaling src so its longest
// side is at most 140 pixels. A nil src removes the entry.
func (ps *PreviewStore) Set(node string, src image.Image) {
	if src == nil {
		ps.mu.Lock()
		delete(ps.images, node)
		ps.mu.Unlock()
		return
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return
	}

	// Fit the longest side into the cap, keeping aspect.
	tw, th := w, h
	if w >= h && w > previewMaxSize {
		tw = previewMaxSize
		th = h * previewMaxSize / w
	} else if h > w && h > previewMaxSize {
		th = previewMaxSize
		tw = w * previewMaxSize / h
	}
	if tw < 1 {
		tw = 1
	}
	if th < 1 {
		th = 1
	}

	thumb := image.NewNRGBA(image.Rect(0, 0, tw, th))
	xdraw.ApproxBiLinear.Scale(thumb, thumb.Bounds(), src, bounds, xdraw.Src, nil)

	ps.mu.Lock()
	ps.images[node] = thumb
	ps.mu.Unlock()
}

// Get returns the stored thumbnail for the node, or nil.
func (ps *PreviewStore) Get(node string) *image.NRGBA {
	ps.mu.RLock()
	img := ps.images[node]
	ps.mu.RUnlock()
	return img
}

// Nodes returns the names of all nodes with a stored preview.
func (ps *PreviewStore) Nodes() []string {
	ps.mu.RLock()
	names := make([]string, 0, len(ps.images))
	for name := range ps.images {
		names = append(names, name)
	}
	ps.mu.RUnlock()
	return names
}

// Clear removes all stored previews.
func (ps *PreviewStore) Clear() {
	ps.mu.Lock()
	ps.images = make(map[string]*image.NRGBA)
	ps.mu.Unlock()
}
