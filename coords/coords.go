// Package coords converts between PDF user space (origin bottom-left,
// y up) and output space (origin top-left, y down).
package coords

type Matrix [6]float64

func Identity() Matrix { return Matrix{1, 0, 0, 1, 0, 0} }

func Translate(tx, ty float64) Matrix { return Matrix{1, 0, 0, 1, tx, ty} }

func Scale(sx, sy float64) Matrix { return Matrix{sx, 0, 0, sy, 0, 0} }

func (m Matrix) Multiply(o Matrix) Matrix {
	return Matrix{
		m[0]*o[0] + m[1]*o[2],
		m[0]*o[1] + m[1]*o[3],
		m[2]*o[0] + m[3]*o[2],
		m[2]*o[1] + m[3]*o[3],
		m[4]*o[0] + m[5]*o[2] + o[4],
		m[4]*o[1] + m[5]*o[3] + o[5],
	}
}

type Point struct{ X, Y float64 }

func (m Matrix) Transform(p Point) Point {
	return Point{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// PageFlip returns the transform from PDF user space to output space
// for a page of the given height.
func PageFlip(pageHeight float64) Matrix {
	return Scale(1, -1).Multiply(Translate(0, pageHeight))
}

// FlipY maps a single y coordinate to output space.
func FlipY(y, pageHeight float64) float64 {
	return pageHeight - y
}
