package main

import "math"

// ShapeKind tags the concrete hitbox type
type ShapeKind uint8

const (
	ShapeCircle ShapeKind = iota
	ShapeRect
	ShapePolygon
	ShapeGroup
)

// maxGroupDepth bounds group nesting; anything deeper is treated as a cycle
const maxGroupDepth = 16

// LineHit is the first point where a segment enters a shape
type LineHit struct {
	Point  Vector2
	Normal Vector2 // unit, outward from the shape's surface
}

// Penetration says how to push a circle out of a shape. Direction is a unit
// vector pointing away from the shape toward the circle.
type Penetration struct {
	Direction Vector2
	Depth     float64
}

// Shape is a hitbox in world coordinates
type Shape interface {
	Kind() ShapeKind
	Center() Vector2
	Bounds() (min, max Vector2)
	Collides(other Shape) bool
	// IntersectsLine returns the first entry point of segment a->b, or nil.
	IntersectsLine(a, b Vector2) *LineHit
	// ResolveCircle returns the translation that separates c from the shape, or nil.
	ResolveCircle(c Circle) *Penetration
}

// ---------- circle ----------

// Circle is a round hitbox
type Circle struct {
	Position Vector2
	Radius   float64
}

func (c Circle) Kind() ShapeKind { return ShapeCircle }
func (c Circle) Center() Vector2 { return c.Position }

func (c Circle) Bounds() (Vector2, Vector2) {
	r := Vec(c.Radius, c.Radius)
	return c.Position.Sub(r), c.Position.Add(r)
}

func (c Circle) Collides(other Shape) bool {
	switch o := other.(type) {
	case Circle:
		rs := c.Radius + o.Radius
		return SquaredDistance(c.Position, o.Position) <= rs*rs
	case *Group:
		return o.Collides(c)
	default:
		return other.Collides(c)
	}
}

func (c Circle) IntersectsLine(a, b Vector2) *LineHit {
	t, ok := segmentCircleEntry(a, b, c.Position, c.Radius)
	if !ok {
		return nil
	}
	p := a.Add(b.Sub(a).Scale(t))
	return &LineHit{Point: p, Normal: p.Sub(c.Position).Normalize()}
}

func (c Circle) ResolveCircle(o Circle) *Penetration {
	d := o.Position.Sub(c.Position)
	rs := c.Radius + o.Radius
	dist2 := d.SquaredLength()
	if dist2 > rs*rs {
		return nil
	}
	dist := math.Sqrt(dist2)
	if dist == 0 {
		return &Penetration{Direction: Vec(1, 0), Depth: rs}
	}
	return &Penetration{Direction: d.Scale(1 / dist), Depth: rs - dist}
}

// ---------- convex helpers ----------

// convex is the shared representation of rects and polygons
type convex struct {
	points  []Vector2
	normals []Vector2 // outward, one per edge points[i]->points[i+1]
}

func newConvex(points []Vector2) convex {
	centroid := Vector2{}
	for _, p := range points {
		centroid = centroid.Add(p)
	}
	centroid = centroid.Scale(1 / float64(len(points)))

	normals := make([]Vector2, len(points))
	for i := range points {
		a, b := points[i], points[(i+1)%len(points)]
		n := b.Sub(a).Perp().Normalize()
		mid := a.Add(b).Scale(0.5)
		if n.Dot(mid.Sub(centroid)) < 0 {
			n = n.Neg()
		}
		normals[i] = n
	}
	return convex{points: points, normals: normals}
}

func (cv convex) lineHit(a, b Vector2) *LineHit {
	if pointInConvex(a, cv.points) {
		return nil
	}
	dir := b.Sub(a)
	best := math.Inf(1)
	var hit *LineHit
	for i, n := range cv.normals {
		if dir.Dot(n) >= 0 {
			continue
		}
		t, _, ok := segmentSegment(a, b, cv.points[i], cv.points[(i+1)%len(cv.points)])
		if ok && t < best {
			best = t
			hit = &LineHit{Point: a.Add(dir.Scale(t)), Normal: n}
		}
	}
	return hit
}

func (cv convex) resolve(c Circle) *Penetration {
	if !pointInConvex(c.Position, cv.points) {
		best := math.Inf(1)
		var closest Vector2
		for i := range cv.points {
			q := closestOnSegment(c.Position, cv.points[i], cv.points[(i+1)%len(cv.points)])
			if d := SquaredDistance(q, c.Position); d < best {
				best = d
				closest = q
			}
		}
		if best > c.Radius*c.Radius {
			return nil
		}
		dist := math.Sqrt(best)
		if dist == 0 {
			return nil
		}
		// axis runs from the circle into the shape
		axis := closest.Sub(c.Position).Scale(1 / dist)
		return &Penetration{Direction: axis.Neg(), Depth: c.Radius - dist}
	}

	// center inside: leave through the nearest face
	bestDist := math.Inf(-1)
	var axis Vector2
	for i, n := range cv.normals {
		d := c.Position.Sub(cv.points[i]).Dot(n) // <= 0 inside
		if d > bestDist {
			bestDist = d
			axis = n.Neg()
		}
	}
	return &Penetration{Direction: axis.Neg(), Depth: c.Radius - bestDist}
}

func (cv convex) bounds() (Vector2, Vector2) {
	lo := Vec(math.Inf(1), math.Inf(1))
	hi := Vec(math.Inf(-1), math.Inf(-1))
	for _, p := range cv.points {
		lo.X = math.Min(lo.X, p.X)
		lo.Y = math.Min(lo.Y, p.Y)
		hi.X = math.Max(hi.X, p.X)
		hi.Y = math.Max(hi.Y, p.Y)
	}
	return lo, hi
}

func convexCollides(cv convex, other Shape) bool {
	switch o := other.(type) {
	case Circle:
		return circleConvexOverlap(o.Position, o.Radius, cv.points)
	case Rect:
		return convexOverlap(cv.points, o.convex().points)
	case *Polygon:
		return convexOverlap(cv.points, o.points)
	case *Group:
		return o.Collides(&Polygon{convex: cv})
	}
	return false
}

// ---------- rect ----------

// Rect is an axis-aligned box
type Rect struct {
	Min, Max Vector2
}

// RectFromCenter builds a Rect of the given size centered on c
func RectFromCenter(c Vector2, w, h float64) Rect {
	half := Vec(w/2, h/2)
	return Rect{Min: c.Sub(half), Max: c.Add(half)}
}

func (r Rect) Kind() ShapeKind                       { return ShapeRect }
func (r Rect) Center() Vector2                       { return r.Min.Add(r.Max).Scale(0.5) }
func (r Rect) Bounds() (Vector2, Vector2)            { return r.Min, r.Max }
func (r Rect) IntersectsLine(a, b Vector2) *LineHit { return r.convex().lineHit(a, b) }

func (r Rect) convex() convex {
	return newConvex([]Vector2{
		r.Min,
		Vec(r.Max.X, r.Min.Y),
		r.Max,
		Vec(r.Min.X, r.Max.Y),
	})
}

func (r Rect) Collides(other Shape) bool {
	switch o := other.(type) {
	case Circle:
		closest := Vec(Clamp(o.Position.X, r.Min.X, r.Max.X), Clamp(o.Position.Y, r.Min.Y, r.Max.Y))
		return SquaredDistance(closest, o.Position) <= o.Radius*o.Radius
	case Rect:
		return r.Min.X <= o.Max.X && o.Min.X <= r.Max.X && r.Min.Y <= o.Max.Y && o.Min.Y <= r.Max.Y
	}
	return convexCollides(r.convex(), other)
}

// ResolveCircle works on the rect's own separating axis, which points from the
// circle into the rect, and returns it negated.
func (r Rect) ResolveCircle(c Circle) *Penetration {
	inside := c.Position.X >= r.Min.X && c.Position.X <= r.Max.X &&
		c.Position.Y >= r.Min.Y && c.Position.Y <= r.Max.Y
	if !inside {
		closest := Vec(Clamp(c.Position.X, r.Min.X, r.Max.X), Clamp(c.Position.Y, r.Min.Y, r.Max.Y))
		d := closest.Sub(c.Position)
		dist2 := d.SquaredLength()
		if dist2 > c.Radius*c.Radius {
			return nil
		}
		dist := math.Sqrt(dist2)
		return &Penetration{Direction: d.Scale(1 / dist).Neg(), Depth: c.Radius - dist}
	}

	left := c.Position.X - r.Min.X
	right := r.Max.X - c.Position.X
	down := c.Position.Y - r.Min.Y
	up := r.Max.Y - c.Position.Y

	axis, face := Vec(1, 0), left
	if right < face {
		axis, face = Vec(-1, 0), right
	}
	if down < face {
		axis, face = Vec(0, 1), down
	}
	if up < face {
		axis, face = Vec(0, -1), up
	}
	return &Penetration{Direction: axis.Neg(), Depth: face + c.Radius}
}

// ---------- polygon ----------

// Polygon is a convex polygon hitbox
type Polygon struct {
	convex
}

// NewPolygon builds a convex polygon from its vertices in either winding order
func NewPolygon(points ...Vector2) *Polygon {
	Assert(len(points) >= 3, "polygon needs at least 3 points, got %d", len(points))
	pts := make([]Vector2, len(points))
	copy(pts, points)
	return &Polygon{convex: newConvex(pts)}
}

// Points returns the polygon vertices
func (p *Polygon) Points() []Vector2 { return p.points }

func (p *Polygon) Kind() ShapeKind { return ShapePolygon }

func (p *Polygon) Center() Vector2 {
	c := Vector2{}
	for _, v := range p.points {
		c = c.Add(v)
	}
	return c.Scale(1 / float64(len(p.points)))
}

func (p *Polygon) Bounds() (Vector2, Vector2)          { return p.bounds() }
func (p *Polygon) Collides(other Shape) bool           { return convexCollides(p.convex, other) }
func (p *Polygon) IntersectsLine(a, b Vector2) *LineHit { return p.lineHit(a, b) }
func (p *Polygon) ResolveCircle(c Circle) *Penetration  { return p.resolve(c) }

// ---------- group ----------

// Group is a compound hitbox made of other shapes
type Group struct {
	Shapes []Shape
}

// NewGroup builds a compound hitbox
func NewGroup(shapes ...Shape) *Group {
	g := &Group{}
	for _, s := range shapes {
		g.Add(s)
	}
	return g
}

// Add appends a member. Adding a group that already contains g is a cycle and panics.
func (g *Group) Add(s Shape) {
	if sub, ok := s.(*Group); ok {
		Assert(sub != g && !sub.contains(g, 0), "shape group cycle")
	}
	g.Shapes = append(g.Shapes, s)
}

func (g *Group) contains(target *Group, depth int) bool {
	Assert(depth < maxGroupDepth, "shape group nested deeper than %d", maxGroupDepth)
	for _, s := range g.Shapes {
		if sub, ok := s.(*Group); ok {
			if sub == target || sub.contains(target, depth+1) {
				return true
			}
		}
	}
	return false
}

func (g *Group) Kind() ShapeKind { return ShapeGroup }

func (g *Group) Center() Vector2 {
	lo, hi := g.Bounds()
	return lo.Add(hi).Scale(0.5)
}

func (g *Group) Bounds() (Vector2, Vector2) {
	lo := Vec(math.Inf(1), math.Inf(1))
	hi := Vec(math.Inf(-1), math.Inf(-1))
	for _, s := range g.Shapes {
		a, b := s.Bounds()
		lo.X = math.Min(lo.X, a.X)
		lo.Y = math.Min(lo.Y, a.Y)
		hi.X = math.Max(hi.X, b.X)
		hi.Y = math.Max(hi.Y, b.Y)
	}
	return lo, hi
}

func (g *Group) Collides(other Shape) bool {
	for _, s := range g.Shapes {
		if s.Collides(other) {
			return true
		}
	}
	return false
}

func (g *Group) IntersectsLine(a, b Vector2) *LineHit {
	var best *LineHit
	bestDist := math.Inf(1)
	for _, s := range g.Shapes {
		if hit := s.IntersectsLine(a, b); hit != nil {
			if d := SquaredDistance(a, hit.Point); d < bestDist {
				best, bestDist = hit, d
			}
		}
	}
	return best
}

// ResolveCircle returns the resolution of the last member that overlaps c.
func (g *Group) ResolveCircle(c Circle) *Penetration {
	var res *Penetration
	for _, s := range g.Shapes {
		if p := s.ResolveCircle(c); p != nil {
			res = p
		}
	}
	return res
}
