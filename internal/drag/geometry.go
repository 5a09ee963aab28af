package drag

// Point is a cell position on screen
type Point struct {
	X, Y int
}

// Rect is a screen area in cells
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether p lies inside r
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// center2 returns the center of r in doubled coordinates so odd sizes stay exact
func (r Rect) center2() (int, int) {
	return 2*r.X + r.W, 2*r.Y + r.H
}

// dist2 is the squared distance from p to the center of r, in doubled units
func (r Rect) dist2(p Point) int {
	cx, cy := r.center2()
	dx, dy := 2*p.X-cx, 2*p.Y-cy
	return dx*dx + dy*dy
}

// RegionKind tells whether a droppable is a column or a card inside one
type RegionKind int

const (
	RegionColumn RegionKind = iota
	RegionTask
)

// Region is a droppable area registered by the view
type Region struct {
	ID   string
	Kind RegionKind
	Rect Rect
}

// closest returns the region containing p whose center is nearest to p.
// Regions earlier in the slice win exact ties.
func closest(regions []Region, p Point) (Region, bool) {
	var (
		best  Region
		bestD = -1
	)
	for _, r := range regions {
		if !r.Rect.Contains(p) {
			continue
		}
		if d := r.Rect.dist2(p); bestD < 0 || d < bestD {
			best, bestD = r, d
		}
	}
	return best, bestD >= 0
}
