package pack

import "math"

// box is an axis-aligned rectangle centered at (cx, cy).
type box struct {
	cx, cy float64
	w, h   float64
}

func (b box) left() float64   { return b.cx - b.w/2 }
func (b box) right() float64  { return b.cx + b.w/2 }
func (b box) top() float64    { return b.cy - b.h/2 }
func (b box) bottom() float64 { return b.cy + b.h/2 }

func (b box) overlaps(o box) bool {
	return b.left() < o.right() && o.left() < b.right() &&
		b.top() < o.bottom() && o.top() < b.bottom()
}

// within reports whether b lies inside a canvas of size w×h centered on the
// origin.
func (b box) within(w, h float64) bool {
	return b.left() >= -w/2 && b.right() <= w/2 && b.top() >= -h/2 && b.bottom() <= h/2
}

// rotatedSize returns the axis-aligned extent of a w×h rectangle rotated by
// deg degrees.
func rotatedSize(w, h, deg float64) (float64, float64) {
	sin, cos := math.Sincos(deg * math.Pi / 180)
	sin, cos = math.Abs(sin), math.Abs(cos)
	return w*cos + h*sin, w*sin + h*cos
}

// rotate turns (x, y) by deg degrees around the origin, clockwise on screen
// like SVG rotate().
func rotate(x, y, deg float64) (float64, float64) {
	sin, cos := math.Sincos(deg * math.Pi / 180)
	return x*cos - y*sin, x*sin + y*cos
}
