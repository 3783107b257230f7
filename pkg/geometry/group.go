package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Group is an ordered collection of shapes tested behind a single bounding
// box. It is itself a Shape, so groups can nest.
type Group struct {
	shapes       []Shape
	time0, time1 float64
	boundingBox  core.AABB
}

// NewGroup creates a group whose bounding box covers the shutter interval [time0, time1]
func NewGroup(time0, time1 float64, shapes ...Shape) *Group {
	g := &Group{time0: time0, time1: time1}
	g.shapes = make([]Shape, 0, len(shapes))
	for _, shape := range shapes {
		g.Add(shape)
	}
	return g
}

// Add appends a shape and grows the cached bounding box.
// Must not be called while the group is being rendered.
func (g *Group) Add(shape Shape) {
	box := shape.BoundingBox(g.time0, g.time1)
	if len(g.shapes) == 0 {
		// Seed with the first real box; the zero box is not an identity here
		g.boundingBox = box
	} else {
		g.boundingBox = g.boundingBox.Union(box)
	}
	g.shapes = append(g.shapes, shape)
}

// Len returns the number of direct children
func (g *Group) Len() int {
	return len(g.shapes)
}

// Shapes returns the children in scan order
func (g *Group) Shapes() []Shape {
	return g.shapes
}

// Hit returns the nearest child hit. The bounding box is checked first; a
// linear scan then narrows tMax to the closest hit found so far, so on an
// exact tie the earlier child wins.
func (g *Group) Hit(ray core.Ray, tMin, tMax float64) material.HitRecord {
	closest := material.Miss()
	if len(g.shapes) == 0 || !g.boundingBox.Hit(ray, tMin, tMax) {
		return closest
	}

	for _, shape := range g.shapes {
		hit := shape.Hit(ray, tMin, tMax)
		if hit.Hit && hit.T < closest.T {
			closest = hit
			tMax = hit.T
		}
	}

	return closest
}

// BoundingBox returns the union of all children's boxes
func (g *Group) BoundingBox(time0, time1 float64) core.AABB {
	if time0 == g.time0 && time1 == g.time1 {
		return g.boundingBox
	}

	var box core.AABB
	for i, shape := range g.shapes {
		if i == 0 {
			box = shape.BoundingBox(time0, time1)
		} else {
			box = box.Union(shape.BoundingBox(time0, time1))
		}
	}
	return box
}
