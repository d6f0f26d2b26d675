package core

import (
	"math"
	"testing"
)

func TestVec3_BasicOperations(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, -5, 6)

	tests := []struct {
		name     string
		result   Vec3
		expected Vec3
	}{
		{"add", a.Add(b), NewVec3(5, -3, 9)},
		{"subtract", a.Subtract(b), NewVec3(-3, 7, -3)},
		{"multiply", a.Multiply(2), NewVec3(2, 4, 6)},
		{"negate", a.Negate(), NewVec3(-1, -2, -3)},
		{"clamp", NewVec3(-0.5, 0.5, 1.5).Clamp(0, 1), NewVec3(0, 0.5, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.result != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, tt.result)
			}
		})
	}

	if got := a.Dot(b); got != 12 {
		t.Errorf("Expected dot product 12, got %f", got)
	}
	if got := a.LengthSquared(); got != 14 {
		t.Errorf("Expected squared length 14, got %f", got)
	}
}

func TestVec3_OperationsDoNotMutate(t *testing.T) {
	v := NewVec3(1, 2, 3)
	_ = v.Add(NewVec3(1, 1, 1))
	_ = v.Multiply(10)
	_ = v.Normalize()

	if v != NewVec3(1, 2, 3) {
		t.Errorf("Expected receiver to be unchanged, got %v", v)
	}
}

func TestVec3_Normalize(t *testing.T) {
	tests := []struct {
		name     string
		vector   Vec3
		expected Vec3
	}{
		{"axis aligned", NewVec3(0, 0, 5), NewVec3(0, 0, 1)},
		{"diagonal", NewVec3(1, 1, 1), NewVec3(1/math.Sqrt(3), 1/math.Sqrt(3), 1/math.Sqrt(3))},
		{"zero vector stays zero", NewVec3(0, 0, 0), NewVec3(0, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.vector.Normalize()

			const tolerance = 1e-9
			if result.Subtract(tt.expected).Length() > tolerance {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestVec3_Reflect(t *testing.T) {
	tests := []struct {
		name     string
		incident Vec3
		normal   Vec3
		expected Vec3
	}{
		{"head on", NewVec3(0, 0, -1), NewVec3(0, 0, 1), NewVec3(0, 0, 1)},
		{"45 degrees", NewVec3(1, -1, 0), NewVec3(0, 1, 0), NewVec3(1, 1, 0)},
		{"grazing", NewVec3(1, 0, 0), NewVec3(0, 1, 0), NewVec3(1, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.incident.Reflect(tt.normal)
			if result.Subtract(tt.expected).Length() > 1e-12 {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
			if math.Abs(result.Length()-tt.incident.Length()) > 1e-12 {
				t.Errorf("Reflection changed length: %f -> %f", tt.incident.Length(), result.Length())
			}
		})
	}
}

func TestVec3_IsFinite(t *testing.T) {
	if !NewVec3(1, 2, 3).IsFinite() {
		t.Error("Expected finite vector")
	}
	if NewVec3(math.NaN(), 0, 0).IsFinite() {
		t.Error("Expected NaN component to be reported")
	}
	if NewVec3(0, 0, math.Inf(-1)).IsFinite() {
		t.Error("Expected infinite component to be reported")
	}
}
