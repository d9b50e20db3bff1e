package sim

import "math"

// Which face of a wall cell a ray struck.
const (
	SideX = 0 // crossed a vertical grid line (X step)
	SideY = 1 // crossed a horizontal grid line (Y step)
)

// farDelta stands in for 1/0 when a ray runs parallel to an axis.
const farDelta = 1e30

// RayHit is the result of one DDA march.
type RayHit struct {
	Distance float64 // perpendicular distance to the struck face
	Hit      bool    // false if the march ran out of steps or left the grid
	Side     int
}

// CastRay marches a ray from (ox, oy) at angle through the grid one cell
// boundary at a time until it enters a wall, leaves the grid, or takes
// maxSteps steps. Distance is measured along the ray direction to the face
// plane, which keeps it finite even when Hit is false.
func (g *Grid) CastRay(ox, oy, angle float64, maxSteps int) RayHit {
	sin, cos := math.Sin(angle), math.Cos(angle)
	mapX, mapY := CellAt(ox, oy)

	deltaX, deltaY := farDelta, farDelta
	if math.Abs(cos) > 1e-12 {
		deltaX = math.Abs(1 / cos)
	}
	if math.Abs(sin) > 1e-12 {
		deltaY = math.Abs(1 / sin)
	}

	var stepX, stepY int
	var sideX, sideY float64
	if cos < 0 {
		stepX = -1
		sideX = (ox - float64(mapX)) * deltaX
	} else {
		stepX = 1
		sideX = (float64(mapX) + 1 - ox) * deltaX
	}
	if sin < 0 {
		stepY = -1
		sideY = (oy - float64(mapY)) * deltaY
	} else {
		stepY = 1
		sideY = (float64(mapY) + 1 - oy) * deltaY
	}

	hit := false
	side := SideX
	for i := 0; i < maxSteps; i++ {
		if sideX < sideY {
			sideX += deltaX
			mapX += stepX
			side = SideX
		} else {
			sideY += deltaY
			mapY += stepY
			side = SideY
		}
		if !g.InBounds(mapX, mapY) {
			break
		}
		if g.IsWall(mapX, mapY) {
			hit = true
			break
		}
	}

	var num, den float64
	if side == SideX {
		num = float64(mapX) - ox + float64(1-stepX)/2
		den = cos
	} else {
		num = float64(mapY) - oy + float64(1-stepY)/2
		den = sin
	}
	dist := farDelta
	if math.Abs(den) > 1e-12 {
		dist = math.Abs(num / den)
	}
	return RayHit{Distance: dist, Hit: hit, Side: side}
}
