// Package store defines how harmonic constants are extracted from tide
// model files and sampled at observation points.
package store

// Constants holds the harmonic constants of a model sampled at a set of
// observation points, indexed [point][constituent] in the order of
// Names. Amplitudes are meters, phases degrees.
type Constants struct {
	Names     []string
	Amplitude [][]float64
	Phase     [][]float64
	Valid     [][]bool
	// Depth is the model bathymetry at each point, meters. Nil for
	// layouts that do not carry a depth grid.
	Depth []float64
}

// NewConstants allocates a Constants block for n points over the given
// constituents.
func NewConstants(names []string, n int) *Constants {
	c := &Constants{
		Names:     names,
		Amplitude: make([][]float64, n),
		Phase:     make([][]float64, n),
		Valid:     make([][]bool, n),
	}
	for i := 0; i < n; i++ {
		c.Amplitude[i] = make([]float64, len(names))
		c.Phase[i] = make([]float64, len(names))
		c.Valid[i] = make([]bool, len(names))
	}
	return c
}

// PointValid reports whether every constituent resolved at point i. A
// single masked constituent invalidates the whole prediction there.
func (c *Constants) PointValid(i int) bool {
	for _, ok := range c.Valid[i] {
		if !ok {
			return false
		}
	}
	return len(c.Valid[i]) > 0
}

// ConstituentSource extracts harmonic constants at arbitrary
// geographic points. Implementations exist per model file layout.
type ConstituentSource interface {
	// Extract samples every tabulated constituent at the given points.
	// lat and lon are degrees and must be the same length. Points the
	// model cannot resolve come back with Valid false, not an error.
	Extract(lat, lon []float64) (*Constants, error)

	// Constituents lists the tabulated constituent names in file order.
	Constituents() []string
}
