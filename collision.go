package main

import "math"

// cross2D returns the 2D cross product of vectors (b-a) and (c-a).
func cross2D(a, b, c Vector2) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// pointInConvex checks if p is inside (or on the edge of) the convex polygon pts.
// Winding order does not matter.
func pointInConvex(p Vector2, pts []Vector2) bool {
	hasNeg, hasPos := false, false
	for i := range pts {
		d := cross2D(pts[i], pts[(i+1)%len(pts)], p)
		if d < 0 {
			hasNeg = true
		} else if d > 0 {
			hasPos = true
		}
		if hasNeg && hasPos {
			return false
		}
	}
	return true
}

// closestOnSegment returns the point of segment a-b closest to p.
func closestOnSegment(p, a, b Vector2) Vector2 {
	ab := b.Sub(a)
	l2 := ab.SquaredLength()
	if l2 == 0 {
		return a
	}
	t := Clamp(p.Sub(a).Dot(ab)/l2, 0, 1)
	return a.Add(ab.Scale(t))
}

// segmentCircleEntry returns the parameter t in [0,1] at which segment a-b
// enters the circle (center, r). A segment starting inside the circle does
// not enter it.
func segmentCircleEntry(a, b, center Vector2, r float64) (float64, bool) {
	d := b.Sub(a)
	f := a.Sub(center)
	qa := d.SquaredLength()
	qc := f.SquaredLength() - r*r
	if qa == 0 || qc < 0 {
		return 0, false
	}
	qb := 2 * f.Dot(d)
	disc := qb*qb - 4*qa*qc
	if disc < 0 {
		return 0, false
	}
	t := (-qb - math.Sqrt(disc)) / (2 * qa)
	if t < 0 || t > 1 {
		return 0, false
	}
	return t, true
}

// segmentSegment returns the parameters (t along a-b, u along c-d) of the
// intersection between two segments. Parallel segments never intersect.
func segmentSegment(a, b, c, d Vector2) (t, u float64, ok bool) {
	r := b.Sub(a)
	s := d.Sub(c)
	denom := r.Cross(s)
	if denom == 0 {
		return 0, 0, false
	}
	ca := c.Sub(a)
	t = ca.Cross(s) / denom
	u = ca.Cross(r) / denom
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return 0, 0, false
	}
	return t, u, true
}

// projectPoints returns the min and max of pts projected on axis.
func projectPoints(pts []Vector2, axis Vector2) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, p := range pts {
		v := p.Dot(axis)
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// convexOverlap runs a separating axis test between two convex point sets.
func convexOverlap(a, b []Vector2) bool {
	for _, pts := range [2][]Vector2{a, b} {
		for i := range pts {
			axis := pts[(i+1)%len(pts)].Sub(pts[i]).Perp()
			aLo, aHi := projectPoints(a, axis)
			bLo, bHi := projectPoints(b, axis)
			if aHi < bLo || bHi < aLo {
				return false
			}
		}
	}
	return true
}

// circleConvexOverlap checks if a circle touches a convex polygon: either the
// center is inside or an edge is within r of the center.
func circleConvexOverlap(center Vector2, r float64, pts []Vector2) bool {
	if pointInConvex(center, pts) {
		return true
	}
	for i := range pts {
		q := closestOnSegment(center, pts[i], pts[(i+1)%len(pts)])
		if SquaredDistance(q, center) <= r*r {
			return true
		}
	}
	return false
}
