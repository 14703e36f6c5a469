package domain

import "math"

// doodson holds the multipliers of the equilibrium argument
//
//	V = T·τ + S·s + H·h + P·p + PP·p′ + K   (degrees)
//
// where τ is the mean solar hour angle (15° per hour of day) and s, h, p,
// N, p′ are the mean longitudes from AstronomicalLongitudes. One data row
// per constituent replaces per-constituent branching.
type doodson struct {
	T, S, H, P, PP, K float64
}

// nodeAngles precomputes the trigonometric terms of the lunar node N and
// perigee p consumed by the nodal correction forms.
type nodeAngles struct {
	sinN, cosN   float64
	sin2N, cos2N float64
	sin3N        float64
	n, p         float64 // radians
}

func newNodeAngles(l MeanLongitudes) nodeAngles {
	n := Deg2Rad(l.N)
	return nodeAngles{
		sinN:  math.Sin(n),
		cosN:  math.Cos(n),
		sin2N: math.Sin(2 * n),
		cos2N: math.Cos(2 * n),
		sin3N: math.Sin(3 * n),
		n:     n,
		p:     Deg2Rad(l.P),
	}
}

// corrFunc evaluates a nodal correction family: amplitude factor f and
// phase correction u in degrees. A nil corrFunc means f=1, u=0 (solar and
// other node-insensitive constituents).
type corrFunc func(a nodeAngles) (f, u float64)

func corrLunarSemi(a nodeAngles) (f, u float64) {
	// m2, n2, 2n2, mu2, nu2, lambda2 share the principal lunar form
	// |1 - 0.03731·e^{iN} + 0.00052·e^{2iN}|.
	re := 1.0 - 0.03731*a.cosN + 0.00052*a.cos2N
	im := -0.03731*a.sinN + 0.00052*a.sin2N
	return math.Hypot(re, im), Rad2Deg(math.Atan2(im, re))
}

func corrO1(a nodeAngles) (f, u float64) {
	re := 1.0 + 0.189*a.cosN - 0.0058*a.cos2N
	im := 0.189*a.sinN - 0.0058*a.sin2N
	f = math.Hypot(re, im)
	u = 10.8*a.sinN - 1.3*a.sin2N + 0.2*a.sin3N
	return f, u
}

func corrDiurnalElliptic(a nodeAngles) (f, u float64) {
	// q1, 2q1, sigma1, rho1.
	f = math.Hypot(1.0+0.188*a.cosN, 0.188*a.sinN)
	u = 10.8*a.sinN - 1.3*a.sin2N + 0.2*a.sin3N
	return f, u
}

func corrK1(a nodeAngles) (f, u float64) {
	re := 1.0 + 0.1158*a.cosN - 0.0029*a.cos2N
	im := 0.1554*a.sinN - 0.0030*a.sin2N
	f = math.Hypot(re, im)
	u = -8.86*a.sinN + 0.68*a.sin2N - 0.07*a.sin3N
	return f, u
}

func corrK2(a nodeAngles) (f, u float64) {
	re := 1.0 + 0.2852*a.cosN + 0.0324*a.cos2N
	im := 0.3108*a.sinN + 0.0324*a.sin2N
	f = math.Hypot(re, im)
	u = -17.74*a.sinN + 0.68*a.sin2N - 0.04*a.sin3N
	return f, u
}

func corrMf(a nodeAngles) (f, u float64) {
	f = 1.043 + 0.414*a.cosN
	u = -23.7*a.sinN + 2.7*a.sin2N - 0.4*a.sin3N
	return f, u
}

func corrMm(a nodeAngles) (f, u float64) {
	return 1.0 - 0.130*a.cosN, 0.0
}

func corrJ1(a nodeAngles) (f, u float64) {
	re := 1.0 + 0.169*a.cosN
	im := 0.227 * a.sinN
	return math.Hypot(re, im), Rad2Deg(math.Atan2(-im, re))
}

func corrOO1(a nodeAngles) (f, u float64) {
	re := 1.0 + 0.640*a.cosN + 0.134*a.cos2N
	im := 0.640*a.sinN + 0.134*a.sin2N
	return math.Hypot(re, im), Rad2Deg(math.Atan2(-im, re))
}

func corrM1(a nodeAngles) (f, u float64) {
	// Doodson's M1 form depends on the lunar perigee.
	re := 2.0*math.Cos(a.p) + 0.4*math.Cos(a.p-a.n)
	im := math.Sin(a.p) + 0.2*math.Sin(a.p-a.n)
	return math.Hypot(re, im), Rad2Deg(math.Atan2(im, re))
}

func corrL2(a nodeAngles) (f, u float64) {
	re := 1.0 - 0.25*math.Cos(2*a.p) - 0.11*math.Cos(2*a.p-a.n) - 0.04*a.cosN
	im := 0.25*math.Sin(2*a.p) + 0.11*math.Sin(2*a.p-a.n) + 0.04*a.sinN
	return math.Hypot(re, im), Rad2Deg(math.Atan2(-im, re))
}

func corrEta2(a nodeAngles) (f, u float64) {
	re := 1.0 + 0.436*a.cosN
	im := 0.436 * a.sinN
	return math.Hypot(re, im), Rad2Deg(math.Atan2(-im, re))
}

type nodalEntry struct {
	arg  doodson
	corr corrFunc
}

// nodalTable holds the base constituents. Long-period rows first, then
// diurnal and semidiurnal species in frequency order.
var nodalTable = map[string]nodalEntry{
	"sa":      {arg: doodson{0, 0, 1, 0, -1, 0}},
	"ssa":     {arg: doodson{0, 0, 2, 0, 0, 0}},
	"mm":      {arg: doodson{0, 1, 0, -1, 0, 0}, corr: corrMm},
	"msf":     {arg: doodson{0, 2, -2, 0, 0, 0}},
	"mf":      {arg: doodson{0, 2, 0, 0, 0, 0}, corr: corrMf},
	"2q1":     {arg: doodson{1, -4, 1, 2, 0, -90}, corr: corrDiurnalElliptic},
	"sigma1":  {arg: doodson{1, -4, 3, 0, 0, -90}, corr: corrDiurnalElliptic},
	"q1":      {arg: doodson{1, -3, 1, 1, 0, -90}, corr: corrDiurnalElliptic},
	"rho1":    {arg: doodson{1, -3, 3, -1, 0, -90}, corr: corrDiurnalElliptic},
	"o1":      {arg: doodson{1, -2, 1, 0, 0, -90}, corr: corrO1},
	"tau1":    {arg: doodson{1, -2, 3, 0, 0, 90}},
	"m1":      {arg: doodson{1, -1, 1, 0, 0, 90}, corr: corrM1},
	"chi1":    {arg: doodson{1, -1, 3, -1, 0, 90}},
	"pi1":     {arg: doodson{1, 0, -2, 0, 1, -90}},
	"p1":      {arg: doodson{1, 0, -1, 0, 0, -90}},
	"s1":      {arg: doodson{1, 0, 0, 0, 0, 0}},
	"k1":      {arg: doodson{1, 0, 1, 0, 0, 90}, corr: corrK1},
	"psi1":    {arg: doodson{1, 0, 2, 0, -1, 90}},
	"phi1":    {arg: doodson{1, 0, 3, 0, 0, 90}},
	"theta1":  {arg: doodson{1, 1, -1, 1, 0, 90}},
	"j1":      {arg: doodson{1, 1, 1, -1, 0, 90}, corr: corrJ1},
	"oo1":     {arg: doodson{1, 2, 1, 0, 0, 90}, corr: corrOO1},
	"2n2":     {arg: doodson{2, -4, 2, 2, 0, 0}, corr: corrLunarSemi},
	"mu2":     {arg: doodson{2, -4, 4, 0, 0, 0}, corr: corrLunarSemi},
	"n2":      {arg: doodson{2, -3, 2, 1, 0, 0}, corr: corrLunarSemi},
	"nu2":     {arg: doodson{2, -3, 4, -1, 0, 0}, corr: corrLunarSemi},
	"m2":      {arg: doodson{2, -2, 2, 0, 0, 0}, corr: corrLunarSemi},
	"lambda2": {arg: doodson{2, -1, 0, 1, 0, 180}, corr: corrLunarSemi},
	"l2":      {arg: doodson{2, -1, 2, -1, 0, 180}, corr: corrL2},
	"t2":      {arg: doodson{2, 0, -1, 0, 1, 0}},
	"s2":      {arg: doodson{2, 0, 0, 0, 0, 0}},
	"r2":      {arg: doodson{2, 0, 1, 0, -1, 180}},
	"k2":      {arg: doodson{2, 0, 2, 0, 0, 0}, corr: corrK2},
	"eta2":    {arg: doodson{2, 1, 2, 0, -1, 0}, corr: corrEta2},
	"m3":      {arg: doodson{3, -3, 3, 0, 0, 0}},
	"s3":      {arg: doodson{3, 0, 0, 0, 0, 0}},
}

// compoundPart is one factor of a shallow-water compound constituent; a
// negative Count subtracts the base argument and phase correction.
type compoundPart struct {
	Name  string
	Count float64
}

var compoundTable = map[string][]compoundPart{
	"mk3":  {{"m2", 1}, {"k1", 1}},
	"2mk3": {{"m2", 2}, {"k1", -1}},
	"mn4":  {{"m2", 1}, {"n2", 1}},
	"m4":   {{"m2", 2}},
	"ms4":  {{"m2", 1}, {"s2", 1}},
	"mk4":  {{"m2", 1}, {"k2", 1}},
	"s4":   {{"s2", 2}},
	"m6":   {{"m2", 3}},
	"s6":   {{"s2", 3}},
	"m8":   {{"m2", 4}},
	"2sm2": {{"s2", 2}, {"m2", -1}},
}

// evalNodal resolves V (degrees), f and u (degrees) for one constituent at
// one instant. tau is the solar hour angle in degrees. Unknown names get
// the identity correction and a zero argument.
func evalNodal(name string, l MeanLongitudes, a nodeAngles, tau float64) (V, f, u float64) {
	name = CanonicalName(name)
	if entry, ok := nodalTable[name]; ok {
		d := entry.arg
		V = d.T*tau + d.S*l.S + d.H*l.H + d.P*l.P + d.PP*l.PP + d.K
		f, u = 1.0, 0.0
		if entry.corr != nil {
			f, u = entry.corr(a)
		}
		return V, f, u
	}
	if parts, ok := compoundTable[name]; ok {
		f = 1.0
		for _, part := range parts {
			pv, pf, pu := evalNodal(part.Name, l, a, tau)
			V += part.Count * pv
			u += part.Count * pu
			f *= math.Pow(pf, math.Abs(part.Count))
		}
		return V, f, u
	}
	return 0.0, 1.0, 0.0
}

// NodalCorrections returns, for each observation time and constituent, the
// nodal phase correction pu (radians), the nodal amplitude factor pf, and
// the equilibrium argument G (degrees). mjd is in Universal Time days;
// deltat carries per-time TT-UT offsets in seconds and may be nil. Result
// slices are indexed [point][constituent] in the order of names.
func NodalCorrections(mjd, deltat []float64, names []string) (pu, pf, G [][]float64) {
	n := len(mjd)
	pu = make([][]float64, n)
	pf = make([][]float64, n)
	G = make([][]float64, n)
	for i := 0; i < n; i++ {
		dt := 0.0
		if deltat != nil {
			dt = deltat[i]
		}
		l := AstronomicalLongitudes(mjd[i] + dt/86400.0)
		a := newNodeAngles(l)
		// Solar hour angle from the UT day fraction: 15° per hour.
		hour := (mjd[i] - math.Floor(mjd[i])) * 24.0
		tau := 15.0 * hour

		pu[i] = make([]float64, len(names))
		pf[i] = make([]float64, len(names))
		G[i] = make([]float64, len(names))
		for k, name := range names {
			V, f, u := evalNodal(name, l, a, tau)
			pu[i][k] = Deg2Rad(u)
			pf[i][k] = f
			G[i][k] = V
		}
	}
	return pu, pf, G
}
