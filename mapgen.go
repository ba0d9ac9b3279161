package main

// Arena is the static layout of the demo map
type Arena struct {
	Width, Height float64
	Terrain       *Terrain
}

// NewArena lays out terrain for a map of the given size
func NewArena(width, height float64) *Arena {
	cx, cy := width/2, height/2
	return &Arena{
		Width:  width,
		Height: height,
		Terrain: &Terrain{
			Default: FloorGrass,
			Regions: []FloorRegion{
				{Area: Rect{Min: Vec(cx-40, 0), Max: Vec(cx+40, 30)}, Floor: FloorWater},
				{Area: Rect{Min: Vec(cx-40, height-30), Max: Vec(cx+40, height)}, Floor: FloorWater},
				{Area: RectFromCenter(Vec(cx, cy), 60, 60), Floor: FloorStone},
				{Area: RectFromCenter(Vec(cx, cy), 60, 60), Layer: 1, Floor: FloorStone},
			},
		},
	}
}

// Populate registers the arena's obstacles and buildings in w
func (a *Arena) Populate(w *World) {
	cx, cy := a.Width/2, a.Height/2
	defs := ObstacleDefinitions

	// central bunker: four walls with a door gap on the west side and a stair inside
	const half, thick = 30.0, 2.0
	bunker := NewBuilding("bunker", 0, FlyoverNever,
		Rect{Min: Vec(cx-half, cy-half), Max: Vec(cx+half, cy-half+thick)},
		Rect{Min: Vec(cx-half, cy+half-thick), Max: Vec(cx+half, cy+half)},
		Rect{Min: Vec(cx+half-thick, cy-half), Max: Vec(cx+half, cy+half)},
		Rect{Min: Vec(cx-half, cy-half), Max: Vec(cx-half+thick, cy-6)},
		Rect{Min: Vec(cx-half, cy+6), Max: Vec(cx-half+thick, cy+half)},
	)
	w.Add(bunker)
	w.Add(NewObstacle(defs["door"], Rect{Min: Vec(cx-half, cy-6), Max: Vec(cx-half+thick, cy+6)}, 0))
	w.Add(NewObstacle(defs["stair"], RectFromCenter(Vec(cx+18, cy), 6, 10), 0))

	for _, pos := range []Vector2{
		Vec(cx-90, cy-60), Vec(cx+90, cy-60), Vec(cx-90, cy+60), Vec(cx+90, cy+60),
	} {
		w.Add(NewObstacle(defs["crate"], RectFromCenter(pos, 6, 6), 0))
	}
	for _, pos := range []Vector2{Vec(cx, cy-110), Vec(cx, cy+110)} {
		w.Add(NewObstacle(defs["barrel"], Circle{Position: pos, Radius: 2.5}, 0))
	}
	for _, pos := range []Vector2{Vec(cx-150, cy), Vec(cx+150, cy)} {
		w.Add(NewObstacle(defs["rock"], NewPolygon(
			pos.Add(Vec(-6, -3)), pos.Add(Vec(0, -7)), pos.Add(Vec(6, -3)),
			pos.Add(Vec(5, 4)), pos.Add(Vec(-4, 5)),
		), 0))
	}
}

// SpawnPoint returns the n-th spawn position of a team. Team 0 spawns on the
// west edge, team 1 on the east edge.
func (a *Arena) SpawnPoint(team, n int) Vector2 {
	x := 30.0
	if team%2 == 1 {
		x = a.Width - 30
	}
	step := a.Height / 10
	y := step * float64(1+n%9)
	return Vec(x, y)
}
