package bongo

import "math"

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// pivotTransform computes the matrix that rotates a layer by rot radians
// about pivot and then shifts it by offset. Returns [a, b, c, d, tx, ty].
//
// Composition order:
//
//	Translate(-pivot) -> Rotate -> Translate(pivot + offset)
func pivotTransform(pivot Vec2, rot float64, offset Vec2) [6]float64 {
	if rot == 0 {
		return [6]float64{1, 0, 0, 1, offset.X, offset.Y}
	}
	sin, cos := math.Sincos(rot)
	px, py := pivot.X, pivot.Y
	return [6]float64{
		cos, sin, -sin, cos,
		-cos*px + sin*py + px + offset.X,
		-sin*px - cos*py + py + offset.Y,
	}
}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// translateAffine returns m followed by a translation of (x, y).
func translateAffine(m [6]float64, x, y float64) [6]float64 {
	m[4] += x
	m[5] += y
	return m
}

// isIdentity reports whether m leaves every point in place.
func isIdentity(m [6]float64) bool {
	return m == identityTransform
}
