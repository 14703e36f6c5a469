package domain

import (
	"math"
	"testing"
)

// TestAstronomicalLongitudes_Range verifies all longitudes are normalized.
func TestAstronomicalLongitudes_Range(t *testing.T) {
	for _, mjd := range []float64{40000, 48622, 51544.5, 58000, 62000} {
		l := AstronomicalLongitudes(mjd)
		for name, v := range map[string]float64{
			"s": l.S, "h": l.H, "p": l.P, "n": l.N, "pp": l.PP,
		} {
			if v < 0 || v >= 360 {
				t.Errorf("mjd %.1f: %s = %.4f outside [0, 360)", mjd, name, v)
			}
		}
	}
}

// TestAstronomicalLongitudes_Rates checks the daily motion of the moon and
// sun against their known mean rates.
func TestAstronomicalLongitudes_Rates(t *testing.T) {
	l0 := AstronomicalLongitudes(58000.0)
	l1 := AstronomicalLongitudes(58001.0)

	dS := math.Mod(l1.S-l0.S+360.0, 360.0)
	if math.Abs(dS-13.17639648) > 1e-6 {
		t.Errorf("lunar daily motion: expected 13.1764, got %.6f", dS)
	}

	dH := math.Mod(l1.H-l0.H+360.0, 360.0)
	if math.Abs(dH-0.98564736) > 1e-6 {
		t.Errorf("solar daily motion: expected 0.9856, got %.6f", dH)
	}

	// The lunar node regresses.
	dN := math.Mod(l0.N-l1.N+360.0, 360.0)
	if math.Abs(dN-0.05295377) > 1e-6 {
		t.Errorf("nodal regression: expected 0.0530, got %.6f", dN)
	}
}

// TestAstronomicalLongitudes_J2000 pins the series at its own epoch.
func TestAstronomicalLongitudes_J2000(t *testing.T) {
	l := AstronomicalLongitudes(51544.4993)
	if math.Abs(l.S-218.3164) > 1e-9 {
		t.Errorf("s at epoch: expected 218.3164, got %.6f", l.S)
	}
	if math.Abs(l.N-125.0445) > 1e-9 {
		t.Errorf("n at epoch: expected 125.0445, got %.6f", l.N)
	}
}
