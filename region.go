package compositor

import "fmt"

// Region is an axis-aligned pixel rectangle, half-open: MinX and MinY are
// inclusive, MaxX and MaxY exclusive. The origin is the top-left corner,
// X increases right and Y increases down.
type Region struct {
	MinX, MinY int
	MaxX, MaxY int
}

// Rect creates a region from its corner coordinates.
func Rect(minX, minY, maxX, maxY int) Region {
	return Region{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}
}

// Width returns the region width in pixels, zero for inverted bounds.
func (r Region) Width() int {
	if r.MaxX <= r.MinX {
		return 0
	}
	return r.MaxX - r.MinX
}

// Height returns the region height in pixels, zero for inverted bounds.
func (r Region) Height() int {
	if r.MaxY <= r.MinY {
		return 0
	}
	return r.MaxY - r.MinY
}

// Area returns the number of pixels covered by the region.
func (r Region) Area() int {
	return r.Width() * r.Height()
}

// IsEmpty returns true if the region has no area.
func (r Region) IsEmpty() bool {
	return r.MinX >= r.MaxX || r.MinY >= r.MaxY
}

// Contains returns true if the pixel (x, y) lies inside the region.
func (r Region) Contains(x, y int) bool {
	return x >= r.MinX && x < r.MaxX && y >= r.MinY && y < r.MaxY
}

// Intersect returns the overlap of r and other. The result may be empty.
func (r Region) Intersect(other Region) Region {
	out := Region{
		MinX: max(r.MinX, other.MinX),
		MinY: max(r.MinY, other.MinY),
		MaxX: min(r.MaxX, other.MaxX),
		MaxY: min(r.MaxY, other.MaxY),
	}
	if out.IsEmpty() {
		return Region{}
	}
	return out
}

// Union returns the smallest region containing both r and other.
// An empty operand does not contribute to the result.
func (r Region) Union(other Region) Region {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}
	return Region{
		MinX: min(r.MinX, other.MinX),
		MinY: min(r.MinY, other.MinY),
		MaxX: max(r.MaxX, other.MaxX),
		MaxY: max(r.MaxY, other.MaxY),
	}
}

// Expand grows the region by n pixels on every side. Negative n shrinks it;
// a region shrunk past its center collapses to empty.
func (r Region) Expand(n int) Region {
	out := Region{
		MinX: r.MinX - n,
		MinY: r.MinY - n,
		MaxX: r.MaxX + n,
		MaxY: r.MaxY + n,
	}
	if out.IsEmpty() {
		return Region{}
	}
	return out
}

// Offset returns the region translated by (dx, dy).
func (r Region) Offset(dx, dy int) Region {
	return Region{
		MinX: r.MinX + dx,
		MinY: r.MinY + dy,
		MaxX: r.MaxX + dx,
		MaxY: r.MaxY + dy,
	}
}

// String implements fmt.Stringer.
func (r Region) String() string {
	return fmt.Sprintf("[%d,%d)x[%d,%d)", r.MinX, r.MaxX, r.MinY, r.MaxY)
}
