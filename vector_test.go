package tilecore

import (
	"math"
	"testing"
)

func approxEqual32(a, b, eps float32) bool {
	return float32(math.Abs(float64(a-b))) < eps
}

func TestVectorNormalizeZero(t *testing.T) {
	v := Zero()
	v.Normalize()
	if v.X != 0 || v.Y != 0 {
		t.Errorf("Normalize(0,0) = %v, want (0,0)", v)
	}
	if math.IsNaN(float64(v.X)) || math.IsNaN(float64(v.Y)) {
		t.Error("Normalize produced NaN")
	}
}

func TestVectorNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Vector2D
		want Vector2D
	}{
		{"x axis", Vec(5, 0), Vec(1, 0)},
		{"negative y", Vec(0, -3), Vec(0, -1)},
		{"3-4-5", Vec(3, 4), Vec(0.6, 0.8)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := tt.in
			v.Normalize()
			if !approxEqual32(v.X, tt.want.X, 1e-6) || !approxEqual32(v.Y, tt.want.Y, 1e-6) {
				t.Errorf("Normalize(%v) = %v, want %v", tt.in, v, tt.want)
			}
			if !approxEqual32(v.Length(), 1, 1e-6) {
				t.Errorf("Length after Normalize = %f, want 1", v.Length())
			}
		})
	}
}

func TestVectorArithmetic(t *testing.T) {
	v := Vec(1, 2)
	v.Add(Vec(3, 4))
	if v != Vec(4, 6) {
		t.Errorf("Add = %v, want (4,6)", v)
	}
	v.Sub(Vec(1, 1))
	if v != Vec(3, 5) {
		t.Errorf("Sub = %v, want (3,5)", v)
	}
	v.Scale(2)
	if v != Vec(6, 10) {
		t.Errorf("Scale = %v, want (6,10)", v)
	}
	if got := Vec(1, 2).Dot(Vec(3, 4)); got != 11 {
		t.Errorf("Dot = %f, want 11", got)
	}
	if got := Vec(0, 0).DistanceTo(Vec(3, 4)); got != 5 {
		t.Errorf("DistanceTo = %f, want 5", got)
	}
	if got := Vec(1, 1).Plus(Vec(2, 3)); got != Vec(3, 4) {
		t.Errorf("Plus = %v, want (3,4)", got)
	}
}

func TestVectorCopyIsIndependent(t *testing.T) {
	a := Vec(1, 1)
	b := a.Copy()
	b.Add(Vec(5, 5))
	if a != Vec(1, 1) {
		t.Errorf("original changed to %v after modifying copy", a)
	}
}

func TestVectorString(t *testing.T) {
	if got := Vec(1.5, -2).String(); got != "Vector2D(1.50, -2.00)" {
		t.Errorf("String = %q", got)
	}
}
