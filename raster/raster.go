// Package raster converts filled polygons into horizontal pixel spans
//
// Both surface backends fill through this package so a triangle covers the same
// pixels regardless of which backend renders it
package raster

import (
	"math"
	"slices"
)

// Point is an integer pixel coordinate
type Point struct {
	X, Y int
}

// SpanFunc receives one clipped horizontal run of length >= 1
type SpanFunc func(y, x, length int)

// Clip bounds output to [0,Width) x [0,Height)
type Clip struct {
	Width, Height int
}

func (c Clip) emit(y, x0, x1 int, span SpanFunc) {
	if y < 0 || y >= c.Height {
		return
	}
	if x0 < 0 {
		x0 = 0
	}
	if x1 >= c.Width {
		x1 = c.Width - 1
	}
	if x1 < x0 {
		return
	}
	span(y, x0, x1-x0+1)
}

// Triangle fills a triangle including its edges
func (c Clip) Triangle(p0, p1, p2 Point, span SpanFunc) {
	c.Convex([]Point{p0, p1, p2}, span)
}

// Convex fills a convex polygon including its edges
// Each row spans from the leftmost to the rightmost edge crossing, so degenerate
// (collinear) input still draws its outline
func (c Clip) Convex(pts []Point, span SpanFunc) {
	if len(pts) == 0 {
		return
	}
	minY, maxY := pts[0].Y, pts[0].Y
	for _, p := range pts[1:] {
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}
	minY = max(minY, 0)
	maxY = min(maxY, c.Height-1)

	n := len(pts)
	for y := minY; y <= maxY; y++ {
		lo, hi := math.MaxInt, math.MinInt
		for i := 0; i < n; i++ {
			a, b := pts[i], pts[(i+1)%n]
			if (y < a.Y && y < b.Y) || (y > a.Y && y > b.Y) {
				continue
			}
			if a.Y == b.Y {
				lo = min(lo, a.X, b.X)
				hi = max(hi, a.X, b.X)
				continue
			}
			x := int(math.Round(float64(a.X) + float64(y-a.Y)*float64(b.X-a.X)/float64(b.Y-a.Y)))
			lo = min(lo, x)
			hi = max(hi, x)
		}
		if lo <= hi {
			c.emit(y, lo, hi, span)
		}
	}
}

// EvenOdd fills an arbitrary simple or self-intersecting polygon with the
// even-odd rule, sampling at pixel centres
func (c Clip) EvenOdd(pts []Point, span SpanFunc) {
	n := len(pts)
	if n < 3 {
		return
	}
	minY, maxY := pts[0].Y, pts[0].Y
	for _, p := range pts[1:] {
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}
	minY = max(minY, 0)
	maxY = min(maxY, c.Height-1)

	xs := make([]float64, 0, n)
	for y := minY; y <= maxY; y++ {
		sy := float64(y) + 0.5
		xs = xs[:0]
		for i := 0; i < n; i++ {
			a, b := pts[i], pts[(i+1)%n]
			ay, by := float64(a.Y), float64(b.Y)
			// Half-open rule avoids double-counting shared vertices
			if (ay <= sy && by > sy) || (by <= sy && ay > sy) {
				xs = append(xs, float64(a.X)+(sy-ay)*float64(b.X-a.X)/(by-ay))
			}
		}
		slices.Sort(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			x0 := int(math.Ceil(xs[i] - 0.5))
			x1 := int(math.Floor(xs[i+1] - 0.5))
			c.emit(y, x0, x1, span)
		}
	}
}

// IsConvex reports whether the polygon turns consistently in one direction
// Collinear runs are ignored; fewer than four points are always convex
func IsConvex(pts []Point) bool {
	n := len(pts)
	if n < 4 {
		return true
	}
	sign := 0
	for i := 0; i < n; i++ {
		a, b, c := pts[i], pts[(i+1)%n], pts[(i+2)%n]
		cross := (b.X-a.X)*(c.Y-b.Y) - (b.Y-a.Y)*(c.X-b.X)
		switch {
		case cross > 0:
			if sign < 0 {
				return false
			}
			sign = 1
		case cross < 0:
			if sign > 0 {
				return false
			}
			sign = -1
		}
	}
	return true
}
