package scene

import "math"

// Point is a 2D coordinate in canvas units.
type Point struct {
	X, Y float64
}

// Add returns p translated by d.
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// StackedRow lays out count positions starting at origin, each offset from
// the previous one by step. With a horizontal step this produces a
// left-to-right row, with a vertical step a column. Deterministic for given
// inputs; count <= 0 yields an empty slice.
func StackedRow(origin Point, step Point, count int) []Point {
	if count <= 0 {
		return nil
	}
	points := make([]Point, count)
	for i := range points {
		points[i] = Point{
			X: origin.X + float64(i)*step.X,
			Y: origin.Y + float64(i)*step.Y,
		}
	}
	return points
}

// RegularPolygonVertices computes the vertices of a regular polygon with the
// given number of sides, evenly spaced by 360/sides degrees starting at
// rotation (radians, counter-clockwise from the positive x axis). Every
// vertex lies at exact Euclidean distance radius from center. Fewer than 3
// sides yields nil.
func RegularPolygonVertices(center Point, radius float64, sides int, rotation float64) []Point {
	if sides < 3 {
		return nil
	}
	vertices := make([]Point, sides)
	for i := range vertices {
		angle := rotation + 2*math.Pi*float64(i)/float64(sides)
		vertices[i] = Point{
			X: center.X + radius*math.Cos(angle),
			Y: center.Y + radius*math.Sin(angle),
		}
	}
	return vertices
}

// Midpoint linearly interpolates between start and end at parameter
// fraction. Midpoint(s, e, 0) == s, Midpoint(s, e, 1) == e and
// Midpoint(s, e, 0.5) is the exact arithmetic mean.
func Midpoint(start, end Point, fraction float64) Point {
	return Point{
		X: start.X + (end.X-start.X)*fraction,
		Y: start.Y + (end.Y-start.Y)*fraction,
	}
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}
