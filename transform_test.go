package bongo

import (
	"math"
	"testing"
)

const epsilon = 1e-9

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertMatrix(t *testing.T, name string, got, want [6]float64) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > epsilon {
			t.Errorf("%s[%d] = %v, want %v (full: %v vs %v)", name, i, got[i], want[i], got, want)
		}
	}
}

func TestPivotTransformIdentity(t *testing.T) {
	got := pivotTransform(Vec2{X: 640, Y: 400}, 0, Vec2{})
	assertMatrix(t, "identity", got, identityTransform)
	if !isIdentity(got) {
		t.Error("zero rotation and offset should be the identity")
	}
}

func TestPivotTransformTranslation(t *testing.T) {
	got := pivotTransform(Vec2{}, 0, Vec2{X: 10, Y: -5})
	assertMatrix(t, "translation", got, [6]float64{1, 0, 0, 1, 10, -5})
}

func TestPivotTransformKeepsPivotFixed(t *testing.T) {
	pivot := Vec2{X: 640, Y: 300}
	m := pivotTransform(pivot, 0.7, Vec2{})
	x, y := transformPoint(m, pivot.X, pivot.Y)
	assertNear(t, "pivot x", x, pivot.X)
	assertNear(t, "pivot y", y, pivot.Y)
}

func TestPivotTransformRotation90(t *testing.T) {
	m := pivotTransform(Vec2{X: 100, Y: 100}, math.Pi/2, Vec2{})
	x, y := transformPoint(m, 110, 100)
	assertNear(t, "x", x, 100)
	assertNear(t, "y", y, 110)
}

func TestPivotTransformOffsetAfterRotation(t *testing.T) {
	pivot := Vec2{X: 50, Y: 50}
	m := pivotTransform(pivot, math.Pi, Vec2{X: 3, Y: 4})
	x, y := transformPoint(m, pivot.X, pivot.Y)
	assertNear(t, "x", x, 53)
	assertNear(t, "y", y, 54)
}

func TestMultiplyAffineIdentity(t *testing.T) {
	m := [6]float64{2, 0.5, -0.5, 3, 10, 20}
	assertMatrix(t, "I*m", multiplyAffine(identityTransform, m), m)
	assertMatrix(t, "m*I", multiplyAffine(m, identityTransform), m)
}

func TestMultiplyAffineTranslations(t *testing.T) {
	a := [6]float64{1, 0, 0, 1, 10, 20}
	b := [6]float64{1, 0, 0, 1, 5, 7}
	assertMatrix(t, "a*b", multiplyAffine(a, b), [6]float64{1, 0, 0, 1, 15, 27})
}

func TestTranslateAffine(t *testing.T) {
	m := translateAffine(pivotTransform(Vec2{}, math.Pi/2, Vec2{}), 5, 6)
	x, y := transformPoint(m, 1, 0)
	assertNear(t, "x", x, 5)
	assertNear(t, "y", y, 7)
}

func BenchmarkPivotTransform(b *testing.B) {
	pivot := Vec2{X: 640, Y: 400}
	for i := 0; i < b.N; i++ {
		_ = pivotTransform(pivot, 0.05, Vec2{X: 1, Y: 2})
	}
}
