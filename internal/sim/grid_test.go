package sim

import (
	"strings"
	"testing"
)

func TestDefaultMaze_Dimensions(t *testing.T) {
	g := DefaultMaze()
	if g.Width() != 20 || g.Height() != 11 {
		t.Fatalf("expected 20x11 maze, got %dx%d", g.Width(), g.Height())
	}
}

func TestDefaultMaze_BorderIsWall(t *testing.T) {
	g := DefaultMaze()
	for x := 0; x < g.Width(); x++ {
		if !g.IsWall(x, 0) || !g.IsWall(x, g.Height()-1) {
			t.Fatalf("border column %d should be wall", x)
		}
	}
	for y := 0; y < g.Height(); y++ {
		if !g.IsWall(0, y) || !g.IsWall(g.Width()-1, y) {
			t.Fatalf("border row %d should be wall", y)
		}
	}
}

func TestDefaultMaze_SpawnsAreOpen(t *testing.T) {
	g := DefaultMaze()
	tu := DefaultTuning()
	if g.IsWallAt(tu.PlayerSpawn.X, tu.PlayerSpawn.Y) {
		t.Fatal("player spawn is inside a wall")
	}
	if g.IsWallAt(tu.EnemySpawn.X, tu.EnemySpawn.Y) {
		t.Fatal("enemy spawn is inside a wall")
	}
}

func TestGrid_OOB_IsWall(t *testing.T) {
	g := DefaultMaze()
	cases := [][2]int{{-1, 0}, {0, -1}, {g.Width(), 1}, {1, g.Height()}, {-100, 500}}
	for _, c := range cases {
		if !g.IsWall(c[0], c[1]) {
			t.Fatalf("out-of-bounds cell (%d,%d) should be wall", c[0], c[1])
		}
	}
}

func TestCellAt_Floors(t *testing.T) {
	cx, cy := CellAt(2.99, 0.01)
	if cx != 2 || cy != 0 {
		t.Fatalf("expected (2,0) got (%d,%d)", cx, cy)
	}
	cx, cy = CellAt(-0.5, 3)
	if cx != -1 || cy != 3 {
		t.Fatalf("expected (-1,3) got (%d,%d)", cx, cy)
	}
}

func TestNewGrid_RejectsBadInput(t *testing.T) {
	cases := map[string][]string{
		"empty":      nil,
		"ragged":     {"####", "#..", "####"},
		"open edge":  {"####", "#...", "####"},
		"open top":   {"#.##", "#..#", "####"},
		"bad glyph":  {"####", "#x.#", "####"},
		"empty rows": {""},
	}
	for name, rows := range cases {
		if _, err := NewGrid(rows); err == nil {
			t.Fatalf("%s: expected an error", name)
		}
	}
}

func TestNewGrid_ErrorNamesProblem(t *testing.T) {
	_, err := NewGrid([]string{"####", "#..", "####"})
	if err == nil || !strings.Contains(err.Error(), "row 1") {
		t.Fatalf("expected error to mention row 1, got %v", err)
	}
}
