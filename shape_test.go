package main

import (
	"math"
	"testing"
)

func TestCircleCollides(t *testing.T) {
	c := Circle{Position: Vec(0, 0), Radius: 1}
	tests := []struct {
		name  string
		other Shape
		want  bool
	}{
		{"overlapping circle", Circle{Position: Vec(1.5, 0), Radius: 1}, true},
		{"touching circle", Circle{Position: Vec(2, 0), Radius: 1}, true},
		{"distant circle", Circle{Position: Vec(3, 0), Radius: 1}, false},
		{"rect", Rect{Min: Vec(0.5, -1), Max: Vec(2, 1)}, true},
		{"distant rect", Rect{Min: Vec(5, 5), Max: Vec(6, 6)}, false},
		{"polygon", NewPolygon(Vec(0.5, 0), Vec(3, -1), Vec(3, 1)), true},
		{"distant polygon", NewPolygon(Vec(4, 0), Vec(6, -1), Vec(6, 1)), false},
		{"group", NewGroup(Rect{Min: Vec(9, 9), Max: Vec(10, 10)}, Circle{Position: Vec(0, 1.5), Radius: 1}), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Collides(tt.other); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
			if got := tt.other.Collides(c); got != tt.want {
				t.Errorf("reverse: expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestRectPolygonCollides(t *testing.T) {
	r := Rect{Min: Vec(0, 0), Max: Vec(4, 4)}
	if !r.Collides(NewPolygon(Vec(3, 3), Vec(6, 3), Vec(6, 6))) {
		t.Error("expected overlapping polygon to collide")
	}
	if r.Collides(NewPolygon(Vec(5, 0), Vec(8, 0), Vec(8, 3))) {
		t.Error("expected separated polygon not to collide")
	}
	if !r.Collides(Rect{Min: Vec(4, 4), Max: Vec(5, 5)}) {
		t.Error("expected corner-touching rects to collide")
	}
}

func TestRectIntersectsLine(t *testing.T) {
	r := Rect{Min: Vec(10, -5), Max: Vec(12, 5)}

	hit := r.IntersectsLine(Vec(0, 0), Vec(20, 0))
	if hit == nil {
		t.Fatal("expected segment to hit the rect")
	}
	if !hit.Point.Equals(Vec(10, 0), eps) {
		t.Errorf("expected entry at (10,0), got %v", hit.Point)
	}
	if !hit.Normal.Equals(Vec(-1, 0), eps) {
		t.Errorf("expected normal (-1,0), got %v", hit.Normal)
	}

	if r.IntersectsLine(Vec(0, 0), Vec(9, 0)) != nil {
		t.Error("short segment should not reach the rect")
	}
	if r.IntersectsLine(Vec(11, 0), Vec(20, 0)) != nil {
		t.Error("segment starting inside does not enter")
	}

	hit = r.IntersectsLine(Vec(11, 10), Vec(11, -10))
	if hit == nil || !hit.Normal.Equals(Vec(0, 1), eps) || !hit.Point.Equals(Vec(11, 5), eps) {
		t.Errorf("expected top entry at (11,5), got %+v", hit)
	}
}

func TestCircleIntersectsLine(t *testing.T) {
	c := Circle{Position: Vec(10, 0), Radius: 2}
	hit := c.IntersectsLine(Vec(0, 0), Vec(20, 0))
	if hit == nil {
		t.Fatal("expected hit")
	}
	if !hit.Point.Equals(Vec(8, 0), eps) || !hit.Normal.Equals(Vec(-1, 0), eps) {
		t.Errorf("expected entry (8,0) normal (-1,0), got %+v", hit)
	}
	if c.IntersectsLine(Vec(0, 5), Vec(20, 5)) != nil {
		t.Error("expected miss")
	}
	if c.IntersectsLine(Vec(10, 0), Vec(20, 0)) != nil {
		t.Error("segment starting inside does not enter")
	}
}

func TestRectResolveCircle(t *testing.T) {
	r := Rect{Min: Vec(0, 0), Max: Vec(10, 10)}
	tests := []struct {
		name    string
		c       Circle
		wantDir Vector2
		depth   float64
	}{
		{"outside left", Circle{Position: Vec(-0.5, 5), Radius: 1}, Vec(-1, 0), 0.5},
		{"outside top", Circle{Position: Vec(5, 10.25), Radius: 1}, Vec(0, 1), 0.75},
		{"inside near right", Circle{Position: Vec(9, 5), Radius: 1}, Vec(1, 0), 2},
		{"inside near bottom", Circle{Position: Vec(5, 0.5), Radius: 1}, Vec(0, -1), 1.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pen := r.ResolveCircle(tt.c)
			if pen == nil {
				t.Fatal("expected penetration")
			}
			if !pen.Direction.Equals(tt.wantDir, eps) {
				t.Errorf("expected direction %v, got %v", tt.wantDir, pen.Direction)
			}
			if math.Abs(pen.Depth-tt.depth) > eps {
				t.Errorf("expected depth %f, got %f", tt.depth, pen.Depth)
			}
			moved := Circle{Position: tt.c.Position.Add(pen.Direction.Scale(pen.Depth)), Radius: tt.c.Radius}
			if p := r.ResolveCircle(moved); p != nil && p.Depth > eps {
				t.Errorf("still penetrating by %f after resolution", p.Depth)
			}
		})
	}

	if r.ResolveCircle(Circle{Position: Vec(20, 20), Radius: 1}) != nil {
		t.Error("expected nil for separated circle")
	}
}

func TestCircleResolveCircle(t *testing.T) {
	c := Circle{Position: Vec(0, 0), Radius: 2}
	pen := c.ResolveCircle(Circle{Position: Vec(0, 2.5), Radius: 1})
	if pen == nil || !pen.Direction.Equals(Vec(0, 1), eps) || math.Abs(pen.Depth-0.5) > eps {
		t.Errorf("expected push (0,1) by 0.5, got %+v", pen)
	}

	// concentric circles pick a fixed axis
	pen = c.ResolveCircle(Circle{Position: Vec(0, 0), Radius: 1})
	if pen == nil || pen.Direction != Vec(1, 0) || pen.Depth != 3 {
		t.Errorf("expected push (1,0) by 3, got %+v", pen)
	}
}

func TestPolygonResolveCircle(t *testing.T) {
	// square in clockwise order
	p := NewPolygon(Vec(0, 0), Vec(0, 4), Vec(4, 4), Vec(4, 0))
	pen := p.ResolveCircle(Circle{Position: Vec(4.5, 2), Radius: 1})
	if pen == nil || !pen.Direction.Equals(Vec(1, 0), eps) || math.Abs(pen.Depth-0.5) > eps {
		t.Errorf("expected push (1,0) by 0.5, got %+v", pen)
	}

	pen = p.ResolveCircle(Circle{Position: Vec(2, 3.5), Radius: 1})
	if pen == nil || !pen.Direction.Equals(Vec(0, 1), eps) || math.Abs(pen.Depth-1.5) > eps {
		t.Errorf("expected push (0,1) by 1.5, got %+v", pen)
	}

	hit := p.IntersectsLine(Vec(-2, 2), Vec(2, 2))
	if hit == nil || !hit.Point.Equals(Vec(0, 2), eps) || !hit.Normal.Equals(Vec(-1, 0), eps) {
		t.Errorf("expected entry (0,2) normal (-1,0), got %+v", hit)
	}
}

func TestGroupResolveKeepsLastMember(t *testing.T) {
	first := Rect{Min: Vec(0, 0), Max: Vec(2, 10)}
	second := Rect{Min: Vec(2, 0), Max: Vec(4, 10)}
	g := NewGroup(first, second)

	c := Circle{Position: Vec(2, 5), Radius: 1}
	want := second.ResolveCircle(c)
	got := g.ResolveCircle(c)
	if got == nil || *got != *want {
		t.Errorf("expected last overlapping member's resolution %+v, got %+v", want, got)
	}

	if g.ResolveCircle(Circle{Position: Vec(20, 5), Radius: 1}) != nil {
		t.Error("expected nil when no member overlaps")
	}
}

func TestGroupIntersectsLineNearest(t *testing.T) {
	g := NewGroup(
		Rect{Min: Vec(20, -1), Max: Vec(22, 1)},
		Rect{Min: Vec(10, -1), Max: Vec(12, 1)},
	)
	hit := g.IntersectsLine(Vec(0, 0), Vec(30, 0))
	if hit == nil || !hit.Point.Equals(Vec(10, 0), eps) {
		t.Errorf("expected nearest entry at (10,0), got %+v", hit)
	}
}

func TestGroupBounds(t *testing.T) {
	g := NewGroup(Rect{Min: Vec(0, 0), Max: Vec(1, 1)}, Circle{Position: Vec(5, 5), Radius: 2})
	lo, hi := g.Bounds()
	if lo != Vec(0, 0) || hi != Vec(7, 7) {
		t.Errorf("expected bounds (0,0)-(7,7), got %v-%v", lo, hi)
	}
	if g.Center() != Vec(3.5, 3.5) {
		t.Errorf("expected center (3.5,3.5), got %v", g.Center())
	}
}

func TestGroupCyclePanics(t *testing.T) {
	outer := NewGroup(Rect{Min: Vec(0, 0), Max: Vec(1, 1)})
	inner := NewGroup(outer)

	defer func() {
		if recover() == nil {
			t.Error("expected panic on group cycle")
		}
	}()
	outer.Add(inner)
}

func TestNewPolygonTooFewPoints(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for a two-point polygon")
		}
	}()
	NewPolygon(Vec(0, 0), Vec(1, 1))
}
