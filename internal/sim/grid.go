package sim

import (
	"fmt"
	"math"
)

// Cell is the occupancy state of one maze square.
type Cell uint8

const (
	Open Cell = iota
	Wall
)

// defaultMaze is the compiled-in level. '#' = wall, '.' = open.
var defaultMaze = []string{
	"####################",
	"#..................#",
	"#.##.###.##.######.#",
	"#.#....#..#......#.#",
	"#.#.##.##.######.#.#",
	"#....#.........#...#",
	"####.#########.###.#",
	"#............#.....#",
	"#.##########.#####.#",
	"#..................#",
	"####################",
}

// Grid is an immutable 2D occupancy map. Border cells are always walls, so
// ray marches and collision probes never escape it.
type Grid struct {
	width  int
	height int
	cells  []Cell
}

// NewGrid parses a maze from rows of '#' (wall) and '.' (open).
func NewGrid(rows []string) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("maze is empty")
	}
	w, h := len(rows[0]), len(rows)
	g := &Grid{width: w, height: h, cells: make([]Cell, w*h)}
	for y, row := range rows {
		if len(row) != w {
			return nil, fmt.Errorf("maze row %d has width %d, want %d", y, len(row), w)
		}
		for x := 0; x < w; x++ {
			switch row[x] {
			case '#':
				g.cells[y*w+x] = Wall
			case '.':
				g.cells[y*w+x] = Open
			default:
				return nil, fmt.Errorf("maze cell (%d,%d): unknown glyph %q", x, y, row[x])
			}
		}
	}
	for x := 0; x < w; x++ {
		if g.cells[x] != Wall || g.cells[(h-1)*w+x] != Wall {
			return nil, fmt.Errorf("maze border open at column %d", x)
		}
	}
	for y := 0; y < h; y++ {
		if g.cells[y*w] != Wall || g.cells[y*w+w-1] != Wall {
			return nil, fmt.Errorf("maze border open at row %d", y)
		}
	}
	return g, nil
}

// DefaultMaze returns the built-in level.
func DefaultMaze() *Grid {
	g, err := NewGrid(defaultMaze)
	if err != nil {
		panic(fmt.Sprintf("built-in maze is invalid: %v", err))
	}
	return g
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

// InBounds reports whether (cx, cy) addresses a cell of the grid.
func (g *Grid) InBounds(cx, cy int) bool {
	return cx >= 0 && cy >= 0 && cx < g.width && cy < g.height
}

// IsWall returns true if the cell at (cx, cy) blocks movement and sight.
// Anything outside the grid counts as wall.
func (g *Grid) IsWall(cx, cy int) bool {
	if !g.InBounds(cx, cy) {
		return true
	}
	return g.cells[cy*g.width+cx] == Wall
}

// IsWallAt is IsWall for continuous coordinates.
func (g *Grid) IsWallAt(x, y float64) bool {
	return g.IsWall(CellAt(x, y))
}

// CellAt maps continuous coordinates to the enclosing cell.
func CellAt(x, y float64) (int, int) {
	return int(math.Floor(x)), int(math.Floor(y))
}

// CellCenter returns the continuous midpoint of cell (cx, cy).
func CellCenter(cx, cy int) Point {
	return Point{X: float64(cx) + 0.5, Y: float64(cy) + 0.5}
}
