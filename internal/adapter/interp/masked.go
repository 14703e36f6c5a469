package interp

import (
	"fmt"
	"sort"
)

// MaskedGrid is a regular grid of complex samples with a validity mask,
// as produced by the tide model readers. Land and out-of-domain nodes
// are marked invalid and excluded from interpolation.
type MaskedGrid struct {
	X     []float64 // longitudes, strictly increasing
	Y     []float64 // latitudes, strictly increasing
	Re    [][]float64
	Im    [][]float64
	Valid [][]bool
}

// Validate checks the grid shape and coordinate ordering.
func (g *MaskedGrid) Validate() error {
	if len(g.X) < 2 || len(g.Y) < 2 {
		return fmt.Errorf("grid must have at least 2 coordinates per axis")
	}
	if len(g.Re) != len(g.Y) || len(g.Im) != len(g.Y) || len(g.Valid) != len(g.Y) {
		return fmt.Errorf("value rows (%d/%d/%d) must match Y coordinates (%d)",
			len(g.Re), len(g.Im), len(g.Valid), len(g.Y))
	}
	for i := range g.Re {
		if len(g.Re[i]) != len(g.X) || len(g.Im[i]) != len(g.X) || len(g.Valid[i]) != len(g.X) {
			return fmt.Errorf("row %d width does not match X coordinates (%d)", i, len(g.X))
		}
	}
	if !sort.Float64sAreSorted(g.X) || !sort.Float64sAreSorted(g.Y) {
		return fmt.Errorf("coordinates must be increasing")
	}
	return nil
}

// Sample interpolates the grid at (x, y). The weights of invalid corners
// are dropped and the remainder renormalized, matching how masked grids
// are sampled near coastlines. The second return is false when the point
// is outside the grid or every surrounding corner is invalid.
func (g *MaskedGrid) Sample(x, y float64) (complex128, bool) {
	xi := cellIndex(g.X, x)
	yi := cellIndex(g.Y, y)
	if xi < 0 || yi < 0 {
		return 0, false
	}

	w := bilinearWeights(g.X[xi], g.X[xi+1], g.Y[yi], g.Y[yi+1], x, y)

	corners := [4]struct {
		w      float64
		re, im float64
		ok     bool
	}{
		{w[0], g.Re[yi][xi], g.Im[yi][xi], g.Valid[yi][xi]},
		{w[1], g.Re[yi][xi+1], g.Im[yi][xi+1], g.Valid[yi][xi+1]},
		{w[2], g.Re[yi+1][xi], g.Im[yi+1][xi], g.Valid[yi+1][xi]},
		{w[3], g.Re[yi+1][xi+1], g.Im[yi+1][xi+1], g.Valid[yi+1][xi+1]},
	}

	var re, im, wsum float64
	for _, c := range corners {
		if !c.ok {
			continue
		}
		re += c.w * c.re
		im += c.w * c.im
		wsum += c.w
	}
	if wsum <= 0 {
		return 0, false
	}
	return complex(re/wsum, im/wsum), true
}
