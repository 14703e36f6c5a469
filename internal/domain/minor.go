package domain

import (
	"fmt"
	"math"
)

// admittance is one linear term of a minor constituent's inference from a
// tabulated major.
type admittance struct {
	Major string
	Coeff float64
}

// minorTerm describes one inferred constituent: its admittance sources,
// its equilibrium argument row and its nodal correction family. The M1
// and L2 lines are split across two terms each, matching the standard
// admittance tables.
type minorTerm struct {
	name string
	src  []admittance
	arg  doodson
	corr corrFunc
}

func minorCorrDiurnal189(a nodeAngles) (f, u float64) {
	re := 1.0 + 0.189*a.cosN - 0.0058*a.cos2N
	im := 0.189*a.sinN - 0.0058*a.sin2N
	return math.Hypot(re, im), Rad2Deg(math.Atan2(im, re))
}

func minorCorrM1a(a nodeAngles) (f, u float64) {
	re := 1.0 + 0.185*a.cosN
	return math.Hypot(re, 0.185*a.sinN), Rad2Deg(math.Atan2(0.185*a.sinN, re))
}

func minorCorrM1b(a nodeAngles) (f, u float64) {
	re := 1.0 + 0.201*a.cosN
	return math.Hypot(re, 0.201*a.sinN), Rad2Deg(math.Atan2(-0.201*a.sinN, re))
}

func minorCorrChi1(a nodeAngles) (f, u float64) {
	re := 1.0 + 0.221*a.cosN
	return math.Hypot(re, 0.221*a.sinN), Rad2Deg(math.Atan2(-0.221*a.sinN, re))
}

func minorCorrJ1(a nodeAngles) (f, u float64) {
	re := 1.0 + 0.198*a.cosN
	return math.Hypot(re, 0.198*a.sinN), Rad2Deg(math.Atan2(-0.198*a.sinN, re))
}

func minorCorrL2b(a nodeAngles) (f, u float64) {
	re := 1.0 + 0.441*a.cosN
	return math.Hypot(re, 0.441*a.sinN), Rad2Deg(math.Atan2(-0.441*a.sinN, re))
}

func minorCorrSemi(a nodeAngles) (f, u float64) {
	re := 1.0 - 0.0373*a.cosN
	return math.Hypot(re, 0.0373*a.sinN), Rad2Deg(math.Atan2(-0.0373*a.sinN, re))
}

// minorTable lists the 16 standard minor constituents (18 admittance
// rows) inferred from the eight majors q1 o1 p1 k1 n2 m2 s2 k2.
var minorTable = []minorTerm{
	{"2q1", []admittance{{"q1", 0.263}, {"o1", -0.0252}}, doodson{1, -4, 1, 2, 0, -90}, minorCorrDiurnal189},
	{"sigma1", []admittance{{"q1", 0.297}, {"o1", -0.0264}}, doodson{1, -4, 3, 0, 0, -90}, minorCorrDiurnal189},
	{"rho1", []admittance{{"q1", 0.164}, {"o1", 0.0048}}, doodson{1, -3, 3, -1, 0, -90}, minorCorrDiurnal189},
	{"m1", []admittance{{"o1", 0.0140}, {"k1", 0.0101}}, doodson{1, -1, 1, -1, 0, 90}, minorCorrM1a},
	{"m1", []admittance{{"o1", 0.0389}, {"k1", 0.0282}}, doodson{1, -1, 1, 1, 0, 90}, minorCorrM1b},
	{"chi1", []admittance{{"o1", 0.0064}, {"k1", 0.0060}}, doodson{1, -1, 3, -1, 0, 90}, minorCorrChi1},
	{"pi1", []admittance{{"o1", 0.0030}, {"k1", 0.0171}}, doodson{1, 0, -2, 0, 1, -90}, nil},
	{"phi1", []admittance{{"o1", -0.0015}, {"k1", 0.0152}}, doodson{1, 0, 3, 0, 0, 90}, nil},
	{"theta1", []admittance{{"o1", -0.0065}, {"k1", 0.0155}}, doodson{1, 1, -1, 1, 0, 90}, nil},
	{"j1", []admittance{{"o1", -0.0389}, {"k1", 0.0836}}, doodson{1, 1, 1, -1, 0, 90}, minorCorrJ1},
	{"oo1", []admittance{{"o1", -0.0431}, {"k1", 0.0613}}, doodson{1, 2, 1, 0, 0, 90}, corrOO1},
	{"2n2", []admittance{{"n2", 0.264}, {"m2", -0.0253}}, doodson{2, -4, 2, 2, 0, 0}, minorCorrSemi},
	{"mu2", []admittance{{"n2", 0.298}, {"m2", -0.0264}}, doodson{2, -4, 4, 0, 0, 0}, minorCorrSemi},
	{"nu2", []admittance{{"n2", 0.165}, {"m2", 0.00487}}, doodson{2, -3, 4, -1, 0, 0}, minorCorrSemi},
	{"lambda2", []admittance{{"m2", 0.0040}, {"s2", 0.0074}}, doodson{2, -1, 0, 1, 0, 180}, nil},
	{"l2", []admittance{{"m2", 0.0131}, {"s2", 0.0326}}, doodson{2, -1, 2, -1, 0, 180}, minorCorrSemi},
	{"l2", []admittance{{"m2", 0.0033}, {"s2", 0.0082}}, doodson{2, -1, 2, 1, 0, 0}, minorCorrL2b},
	{"t2", []admittance{{"s2", 0.0585}}, doodson{2, 0, -1, 0, 1, 0}, nil},
}

// MinorCorrections infers the contribution of the minor constituents at
// each observation point by linear admittance from the tabulated majors.
// t is in days relative to ModelEpochMJD; hc, names and deltat follow the
// PredictDrift conventions. A minor term is skipped when the model
// already tabulates it; a term whose admittance sources are missing is
// omitted and counted in the second return value rather than failing the
// prediction.
func MinorCorrections(t []float64, hc [][]complex128, names []string, deltat []float64) ([]float64, int, error) {
	major := make(map[string]int, len(names))
	tabulated := make(map[string]bool, len(names))
	for k, name := range names {
		canon := CanonicalName(name)
		major[canon] = k
		tabulated[canon] = true
	}

	// Resolve each admittance row up front so omissions are counted once
	// per term, not once per point.
	type resolved struct {
		term minorTerm
		idx  []int
	}
	active := make([]resolved, 0, len(minorTable))
	omitted := 0
	for _, term := range minorTable {
		if tabulated[term.name] {
			continue
		}
		idx := make([]int, len(term.src))
		ok := true
		for j, s := range term.src {
			k, found := major[s.Major]
			if !found {
				ok = false
				break
			}
			idx[j] = k
		}
		if !ok {
			omitted++
			continue
		}
		active = append(active, resolved{term: term, idx: idx})
	}

	dh := make([]float64, len(t))
	if len(active) == 0 {
		return dh, omitted, nil
	}

	for i := range t {
		if len(hc[i]) != len(names) {
			return nil, 0, fmt.Errorf("point %d has %d constituent samples, want %d", i, len(hc[i]), len(names))
		}
		mjd := t[i] + ModelEpochMJD
		dt := 0.0
		if deltat != nil {
			dt = deltat[i]
		}
		l := AstronomicalLongitudes(mjd + dt/86400.0)
		a := newNodeAngles(l)
		hour := (mjd - math.Floor(mjd)) * 24.0
		tau := 15.0 * hour

		for _, r := range active {
			var zr, zi float64
			for j, s := range r.term.src {
				z := hc[i][r.idx[j]]
				zr += s.Coeff * real(z)
				zi += s.Coeff * imag(z)
			}
			d := r.term.arg
			V := d.T*tau + d.S*l.S + d.H*l.H + d.P*l.P + d.PP*l.PP + d.K
			f, u := 1.0, 0.0
			if r.term.corr != nil {
				f, u = r.term.corr(a)
			}
			th := Deg2Rad(V + u)
			dh[i] += zr*f*math.Cos(th) - zi*f*math.Sin(th)
		}
	}
	return dh, omitted, nil
}
