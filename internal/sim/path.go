package sim

import "math"

// Point is a position in grid-fractional coordinates.
type Point struct {
	X, Y float64
}

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// bfsDirs is the neighbour expansion order: north, south, west, east.
// The order decides ties between equally short routes.
var bfsDirs = [4][2]int{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}

// Pathfinder runs breadth-first searches over a Grid. Its scratch buffers are
// sized to the grid and reused between calls, so a periodic replan costs
// O(cells) without allocating tracking maps. Not safe for concurrent use.
type Pathfinder struct {
	grid    *Grid
	visited []bool
	parent  []int32
	queue   []int32
}

// NewPathfinder creates a pathfinder bound to grid.
func NewPathfinder(grid *Grid) *Pathfinder {
	n := grid.width * grid.height
	return &Pathfinder{
		grid:    grid,
		visited: make([]bool, n),
		parent:  make([]int32, n),
		queue:   make([]int32, 0, n),
	}
}

// FindPath returns waypoints from (sx,sy) to (ex,ey): the centre of every cell
// on a shortest 4-connected route (start cell included), followed by the exact
// end point. If both points share a cell the result is just the end point.
// Returns nil when the end cannot be reached.
func (pf *Pathfinder) FindPath(sx, sy, ex, ey float64) []Point {
	g := pf.grid
	scx, scy := CellAt(sx, sy)
	ecx, ecy := CellAt(ex, ey)

	if scx == ecx && scy == ecy {
		return []Point{{X: ex, Y: ey}}
	}
	if !g.InBounds(scx, scy) || g.IsWall(ecx, ecy) {
		return nil
	}

	for i := range pf.visited {
		pf.visited[i] = false
	}
	w := g.width
	start := int32(scy*w + scx)
	goal := int32(ecy*w + ecx)

	pf.queue = append(pf.queue[:0], start)
	pf.visited[start] = true
	pf.parent[start] = -1

	for head := 0; head < len(pf.queue); head++ {
		cur := pf.queue[head]
		if cur == goal {
			return pf.buildPath(goal, Point{X: ex, Y: ey})
		}
		cx, cy := int(cur)%w, int(cur)/w
		for _, d := range bfsDirs {
			nx, ny := cx+d[0], cy+d[1]
			if g.IsWall(nx, ny) {
				continue
			}
			ni := int32(ny*w + nx)
			if pf.visited[ni] {
				continue
			}
			pf.visited[ni] = true
			pf.parent[ni] = cur
			pf.queue = append(pf.queue, ni)
		}
	}
	return nil
}

func (pf *Pathfinder) buildPath(goal int32, end Point) []Point {
	w := pf.grid.width
	var cells []int32
	for n := goal; n != -1; n = pf.parent[n] {
		cells = append(cells, n)
	}
	path := make([]Point, 0, len(cells)+1)
	for i := len(cells) - 1; i >= 0; i-- {
		path = append(path, CellCenter(int(cells[i])%w, int(cells[i])/w))
	}
	return append(path, end)
}
