package main

// FloorType classifies the ground under a point
type FloorType struct {
	Name string
	// Overlay floors (water, mud) slow a landed projectile with harsh drag
	Overlay bool
}

var (
	FloorGrass = FloorType{Name: "grass"}
	FloorStone = FloorType{Name: "stone"}
	FloorWater = FloorType{Name: "water", Overlay: true}
)

// FloorMap answers floor lookups for the simulation
type FloorMap interface {
	FloorAt(pos Vector2, layer int) FloorType
}

// FloorRegion paints a floor type over a rect on one layer
type FloorRegion struct {
	Area  Rect
	Layer int
	Floor FloorType
}

// Terrain is a list of floor regions over a default floor. Later regions win.
type Terrain struct {
	Default FloorType
	Regions []FloorRegion
}

// FloorAt returns the floor type at pos on the given layer
func (t *Terrain) FloorAt(pos Vector2, layer int) FloorType {
	for i := len(t.Regions) - 1; i >= 0; i-- {
		r := t.Regions[i]
		if r.Layer != layer {
			continue
		}
		if pos.X >= r.Area.Min.X && pos.X <= r.Area.Max.X && pos.Y >= r.Area.Min.Y && pos.Y <= r.Area.Max.Y {
			return r.Floor
		}
	}
	return t.Default
}
