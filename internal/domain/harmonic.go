package domain

import (
	"fmt"
	"math"
	"math/cmplx"
)

// ModelEpochMJD is the reference epoch of the supported tide models
// (1992-01-01T00:00:00) expressed as a Modified Julian Day.
const ModelEpochMJD = 48622.0

// ArgumentMethod selects how the time-dependent phase of a constituent is
// built during synthesis.
type ArgumentMethod int

const (
	// ArgLinear uses ω·t + φ₀ with the catalog reference phase. The
	// gridded-binary and atlas NetCDF models are fit against this
	// convention.
	ArgLinear ArgumentMethod = iota
	// ArgEquilibrium uses the tabulated equilibrium argument V(t). The
	// GOT-class models are fit against Greenwich equilibrium phases.
	ArgEquilibrium
)

// PackConstants folds amplitude (meters) and phase (degrees) into complex
// harmonic constants hc = A·exp(-iφπ/180). The exponent is negative
// because tidal phase lag is a retardation; downstream synthesis depends
// on this exact convention.
func PackConstants(amp, phase []float64) []complex128 {
	hc := make([]complex128, len(amp))
	for k := range amp {
		hc[k] = complex(amp[k], 0) * cmplx.Exp(complex(0, -Deg2Rad(phase[k])))
	}
	return hc
}

// PredictDrift synthesizes the tidal elevation at each observation point:
//
//	η_i = Σ_k f_k · Re( hc_ik · e^{i(θ_ik + u_ik)} )
//
// t is in days relative to ModelEpochMJD, one entry per point; hc is
// indexed [point][constituent] in the order of names; deltat (seconds,
// may be nil) feeds the astronomical argument evaluation. The numeric
// result is produced for every point regardless of sample validity;
// masking is the assembler's concern.
func PredictDrift(t []float64, hc [][]complex128, names []string, deltat []float64, method ArgumentMethod) ([]float64, error) {
	if len(hc) != len(t) {
		return nil, fmt.Errorf("constituent samples for %d points, want %d", len(hc), len(t))
	}
	consts := make([]Constituent, len(names))
	if method == ArgLinear {
		for k, name := range names {
			c, ok := LookupConstituent(name)
			if !ok {
				return nil, fmt.Errorf("unknown constituent %q", name)
			}
			consts[k] = c
		}
	}

	mjd := make([]float64, len(t))
	for i := range t {
		mjd[i] = t[i] + ModelEpochMJD
	}
	pu, pf, G := NodalCorrections(mjd, deltat, names)

	ht := make([]float64, len(t))
	for i := range t {
		if len(hc[i]) != len(names) {
			return nil, fmt.Errorf("point %d has %d constituent samples, want %d", i, len(hc[i]), len(names))
		}
		var sum float64
		for k := range names {
			var th float64
			if method == ArgLinear {
				th = consts[k].Omega*t[i]*86400.0 + consts[k].Phase + pu[i][k]
			} else {
				th = Deg2Rad(G[i][k]) + pu[i][k]
			}
			sum += pf[i][k] * (real(hc[i][k])*math.Cos(th) - imag(hc[i][k])*math.Sin(th))
		}
		ht[i] = sum
	}
	return ht, nil
}
