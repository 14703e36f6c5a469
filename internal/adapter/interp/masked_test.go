package interp

import (
	"math"
	"testing"
)

func fullyValid(n, m int) [][]bool {
	v := make([][]bool, n)
	for i := range v {
		v[i] = make([]bool, m)
		for j := range v[i] {
			v[i][j] = true
		}
	}
	return v
}

// TestMaskedGrid_Sample_AllValid matches plain bilinear interpolation
// when the whole cell is valid.
func TestMaskedGrid_Sample_AllValid(t *testing.T) {
	g := &MaskedGrid{
		X:     []float64{0, 2},
		Y:     []float64{0, 2},
		Re:    [][]float64{{1, 3}, {5, 7}},
		Im:    [][]float64{{0, 0}, {0, 0}},
		Valid: fullyValid(2, 2),
	}
	if err := g.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	z, ok := g.Sample(1.0, 1.0)
	if !ok {
		t.Fatal("expected a valid sample at the cell center")
	}
	if math.Abs(real(z)-4.0) > 1e-9 || imag(z) != 0 {
		t.Errorf("center: expected 4+0i, got %v", z)
	}
}

// TestMaskedGrid_Sample_PartialMask renormalizes over the valid corners.
func TestMaskedGrid_Sample_PartialMask(t *testing.T) {
	g := &MaskedGrid{
		X:  []float64{0, 2},
		Y:  []float64{0, 2},
		Re: [][]float64{{10, 2}, {2, 2}},
		Im: [][]float64{{0, 0}, {0, 0}},
		Valid: [][]bool{
			{false, true},
			{true, true},
		},
	}

	// The masked corner's value must not leak into the result.
	z, ok := g.Sample(1.0, 1.0)
	if !ok {
		t.Fatal("expected a valid sample with three valid corners")
	}
	if math.Abs(real(z)-2.0) > 1e-9 {
		t.Errorf("partial mask: expected 2, got %v", z)
	}
}

// TestMaskedGrid_Sample_AllMasked reports invalid.
func TestMaskedGrid_Sample_AllMasked(t *testing.T) {
	g := &MaskedGrid{
		X:     []float64{0, 2},
		Y:     []float64{0, 2},
		Re:    [][]float64{{1, 1}, {1, 1}},
		Im:    [][]float64{{0, 0}, {0, 0}},
		Valid: [][]bool{{false, false}, {false, false}},
	}
	if _, ok := g.Sample(1.0, 1.0); ok {
		t.Error("expected invalid sample in a fully masked cell")
	}
}

// TestMaskedGrid_Sample_OutOfRange reports invalid rather than erroring.
func TestMaskedGrid_Sample_OutOfRange(t *testing.T) {
	g := &MaskedGrid{
		X:     []float64{0, 2},
		Y:     []float64{0, 2},
		Re:    [][]float64{{1, 1}, {1, 1}},
		Im:    [][]float64{{0, 0}, {0, 0}},
		Valid: fullyValid(2, 2),
	}
	for _, p := range [][2]float64{{-1, 1}, {3, 1}, {1, -1}, {1, 3}} {
		if _, ok := g.Sample(p[0], p[1]); ok {
			t.Errorf("expected invalid sample outside the grid at (%v, %v)", p[0], p[1])
		}
	}
}

// TestMaskedGrid_Sample_GridNode returns exact node values.
func TestMaskedGrid_Sample_GridNode(t *testing.T) {
	g := &MaskedGrid{
		X:     []float64{0, 1, 2},
		Y:     []float64{0, 1},
		Re:    [][]float64{{1, 2, 3}, {4, 5, 6}},
		Im:    [][]float64{{-1, -2, -3}, {-4, -5, -6}},
		Valid: fullyValid(2, 3),
	}
	z, ok := g.Sample(1.0, 0.0)
	if !ok {
		t.Fatal("expected a valid sample at a grid node")
	}
	if math.Abs(real(z)-2.0) > 1e-9 || math.Abs(imag(z)+2.0) > 1e-9 {
		t.Errorf("grid node: expected 2-2i, got %v", z)
	}
}

// TestMaskedGrid_Validate rejects malformed grids.
func TestMaskedGrid_Validate(t *testing.T) {
	bad := []*MaskedGrid{
		{X: []float64{0}, Y: []float64{0, 1}},
		{
			X: []float64{0, 1}, Y: []float64{0, 1},
			Re:    [][]float64{{1, 2}},
			Im:    [][]float64{{1, 2}},
			Valid: [][]bool{{true, true}},
		},
		{
			X: []float64{1, 0}, Y: []float64{0, 1},
			Re:    [][]float64{{1, 2}, {3, 4}},
			Im:    [][]float64{{1, 2}, {3, 4}},
			Valid: fullyValid(2, 2),
		},
	}
	for i, g := range bad {
		if err := g.Validate(); err == nil {
			t.Errorf("case %d: expected validation error", i)
		}
	}
}
