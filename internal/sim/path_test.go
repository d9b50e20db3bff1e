package sim

import "testing"

// refDistances is an independent BFS returning step counts from (sx,sy) to
// every open cell, -1 where unreachable.
func refDistances(g *Grid, sx, sy int) []int {
	dist := make([]int, g.Width()*g.Height())
	for i := range dist {
		dist[i] = -1
	}
	dist[sy*g.Width()+sx] = 0
	queue := [][2]int{{sx, sy}}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		for _, d := range [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			nx, ny := c[0]+d[0], c[1]+d[1]
			if g.IsWall(nx, ny) || dist[ny*g.Width()+nx] >= 0 {
				continue
			}
			dist[ny*g.Width()+nx] = dist[c[1]*g.Width()+c[0]] + 1
			queue = append(queue, [2]int{nx, ny})
		}
	}
	return dist
}

func TestFindPath_SameCellReturnsExactEnd(t *testing.T) {
	pf := NewPathfinder(DefaultMaze())
	path := pf.FindPath(1.2, 1.8, 1.5, 1.5)
	if len(path) != 1 {
		t.Fatalf("expected a single waypoint, got %d", len(path))
	}
	if path[0] != (Point{X: 1.5, Y: 1.5}) {
		t.Fatalf("expected (1.5,1.5), got %+v", path[0])
	}
}

func TestFindPath_AcrossDefaultMaze(t *testing.T) {
	pf := NewPathfinder(DefaultMaze())
	path := pf.FindPath(18.5, 9.5, 1.5, 1.5)
	if len(path) == 0 {
		t.Fatal("expected a path across the maze")
	}
	if last := path[len(path)-1]; last != (Point{X: 1.5, Y: 1.5}) {
		t.Fatalf("final waypoint should be the exact target, got %+v", last)
	}
	if path[0] != (Point{X: 18.5, Y: 9.5}) {
		t.Fatalf("first waypoint should be the start cell centre, got %+v", path[0])
	}
}

func TestFindPath_ConnectedAndOpen(t *testing.T) {
	g := DefaultMaze()
	pf := NewPathfinder(g)
	path := pf.FindPath(18.5, 9.5, 1.5, 1.5)
	for i, wp := range path {
		cx, cy := CellAt(wp.X, wp.Y)
		if g.IsWall(cx, cy) {
			t.Fatalf("waypoint %d at %+v is inside a wall", i, wp)
		}
		if i == 0 {
			continue
		}
		px, py := CellAt(path[i-1].X, path[i-1].Y)
		manhattan := abs(cx-px) + abs(cy-py)
		if manhattan > 1 {
			t.Fatalf("waypoints %d and %d are not adjacent: (%d,%d) -> (%d,%d)", i-1, i, px, py, cx, cy)
		}
	}
}

func TestFindPath_ShortestForAllOpenPairs(t *testing.T) {
	g := DefaultMaze()
	pf := NewPathfinder(g)
	for sy := 0; sy < g.Height(); sy++ {
		for sx := 0; sx < g.Width(); sx++ {
			if g.IsWall(sx, sy) {
				continue
			}
			ref := refDistances(g, sx, sy)
			for ey := 0; ey < g.Height(); ey++ {
				for ex := 0; ex < g.Width(); ex++ {
					if g.IsWall(ex, ey) || (ex == sx && ey == sy) {
						continue
					}
					want := ref[ey*g.Width()+ex]
					path := pf.FindPath(float64(sx)+0.5, float64(sy)+0.5, float64(ex)+0.5, float64(ey)+0.5)
					if want < 0 {
						if path != nil {
							t.Fatalf("(%d,%d)->(%d,%d): expected no path", sx, sy, ex, ey)
						}
						continue
					}
					// want steps visit want+1 cell centres, plus the exact end point.
					if len(path) != want+2 {
						t.Fatalf("(%d,%d)->(%d,%d): expected %d waypoints, got %d", sx, sy, ex, ey, want+2, len(path))
					}
				}
			}
		}
	}
}

func TestFindPath_Unreachable(t *testing.T) {
	g, err := NewGrid([]string{
		"#######",
		"#..#..#",
		"#..#..#",
		"#######",
	})
	if err != nil {
		t.Fatal(err)
	}
	pf := NewPathfinder(g)
	if path := pf.FindPath(1.5, 1.5, 4.5, 1.5); len(path) != 0 {
		t.Fatalf("expected empty path to sealed room, got %d waypoints", len(path))
	}
	if path := pf.FindPath(1.5, 1.5, 3.5, 1.5); len(path) != 0 {
		t.Fatal("expected empty path when the target is a wall")
	}
	if path := pf.FindPath(1.5, 1.5, 40, 40); len(path) != 0 {
		t.Fatal("expected empty path when the target is outside the grid")
	}
}

func TestFindPath_Deterministic(t *testing.T) {
	pf := NewPathfinder(DefaultMaze())
	p1 := pf.FindPath(18.5, 9.5, 1.5, 1.5)
	// Unrelated search in between must not leak state into the next one.
	_ = pf.FindPath(1.5, 9.5, 18.5, 1.5)
	p2 := pf.FindPath(18.5, 9.5, 1.5, 1.5)
	if len(p1) != len(p2) {
		t.Fatalf("path lengths differ between identical calls: %d vs %d", len(p1), len(p2))
	}
	for i := range p1 {
		if p1[i] != p2[i] {
			t.Fatalf("waypoint %d differs: %+v vs %+v", i, p1[i], p2[i])
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
