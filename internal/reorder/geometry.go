package reorder

// Point is a pointer position in screen cells.
type Point struct {
	X int
	Y int
}

func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Rect is a card's on-screen bounding box. A zero-sized rect marks a card that is not rendered
// (scrolled out of view) and never wins a hit test.
type Rect struct {
	X int
	Y int
	W int
	H int
}

func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

func (r Rect) Min() Point { return Point{X: r.X, Y: r.Y} }

func (r Rect) Contains(p Point) bool {
	if r.Empty() {
		return false
	}
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// center2 returns the geometric center in doubled coordinates so half-cell centers stay
// exact in integer arithmetic.
func (r Rect) center2() (int, int) {
	return 2*r.X + r.W, 2*r.Y + r.H
}

// Nearest returns the index of the rect whose center is closest to p by Euclidean distance,
// skipping exclude and empty rects. Ties go to the lowest index. It returns -1 when no rect
// qualifies.
func Nearest(rects []Rect, p Point, exclude int) int {
	best := -1
	bestDist := 0
	px, py := 2*p.X, 2*p.Y
	for i, r := range rects {
		if i == exclude || r.Empty() {
			continue
		}
		cx, cy := r.center2()
		dx, dy := cx-px, cy-py
		d := dx*dx + dy*dy
		if best < 0 || d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

// HitTest returns the index of the rect containing p, or -1.
func HitTest(rects []Rect, p Point) int {
	for i, r := range rects {
		if r.Contains(p) {
			return i
		}
	}
	return -1
}
