package main

import (
	"math"
	"sort"

	"github.com/dhconnelly/rtreego"
	"github.com/pkg/errors"
)

const (
	rtreeMinChildren = 25
	rtreeMaxChildren = 50
	minBoundsExtent  = 0.01 // rtreego rejects zero-length rects
)

// SpatialQuery is the broad phase consumed by the simulation
type SpatialQuery interface {
	// Query returns objects whose bounds overlap shape. A nil layer matches every
	// layer; otherwise objects on the same or an adjacent layer are returned.
	Query(shape Shape, layer *int) []Object
}

// spatialEntry adapts an Object to rtreego.Spatial
type spatialEntry struct {
	obj  Object
	rect rtreego.Rect
}

func (e *spatialEntry) Bounds() rtreego.Rect {
	return e.rect
}

// Grid is an R-tree backed spatial index over world objects
type Grid struct {
	tree    *rtreego.Rtree
	entries map[ObjectID]*spatialEntry
}

// NewGrid creates an empty index
func NewGrid() *Grid {
	return &Grid{
		tree:    rtreego.NewTree(2, rtreeMinChildren, rtreeMaxChildren),
		entries: make(map[ObjectID]*spatialEntry),
	}
}

// shapeRect returns the rtreego bounding rect of s
func shapeRect(s Shape) (rtreego.Rect, error) {
	lo, hi := s.Bounds()
	w := math.Max(hi.X-lo.X, minBoundsExtent)
	h := math.Max(hi.Y-lo.Y, minBoundsExtent)
	r, err := rtreego.NewRect(rtreego.Point{lo.X, lo.Y}, []float64{w, h})
	if err != nil {
		return rtreego.Rect{}, errors.Wrapf(err, "bounds of %v shape", s.Kind())
	}
	return r, nil
}

// Insert adds an object at its current hitbox. Objects without a hitbox are
// not indexed.
func (g *Grid) Insert(obj Object) error {
	hb := obj.Hitbox()
	if hb == nil {
		return nil
	}
	if _, ok := g.entries[obj.ID()]; ok {
		return errors.Errorf("object %d already indexed", obj.ID())
	}
	rect, err := shapeRect(hb)
	if err != nil {
		return err
	}
	e := &spatialEntry{obj: obj, rect: rect}
	g.entries[obj.ID()] = e
	g.tree.Insert(e)
	return nil
}

// Remove drops an object from the index. Unknown IDs are ignored.
func (g *Grid) Remove(obj Object) {
	e, ok := g.entries[obj.ID()]
	if !ok {
		return
	}
	g.tree.Delete(e)
	delete(g.entries, obj.ID())
}

// Update re-indexes an object after it moved
func (g *Grid) Update(obj Object) error {
	g.Remove(obj)
	return g.Insert(obj)
}

// Len returns the number of indexed objects
func (g *Grid) Len() int {
	return len(g.entries)
}

// Query implements SpatialQuery. Results are ordered by ascending ID.
func (g *Grid) Query(shape Shape, layer *int) []Object {
	rect, err := shapeRect(shape)
	if err != nil {
		return nil
	}
	hits := g.tree.SearchIntersect(rect)
	result := make([]Object, 0, len(hits))
	for _, h := range hits {
		obj := h.(*spatialEntry).obj
		if layer != nil && !adjacentOrEqualLayer(obj.Layer(), *layer) {
			continue
		}
		result = append(result, obj)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID() < result[j].ID() })
	return result
}

func adjacentOrEqualLayer(a, b int) bool {
	d := a - b
	return d >= -1 && d <= 1
}
