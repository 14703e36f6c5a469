package domain

import (
	"math"
	"sort"
	"strings"
)

// Constituent holds the fixed harmonic parameters of a tidal constituent.
// Phase is the astronomical argument at the model reference epoch
// (1992-01-01T00:00:00), in radians; Omega is the angular frequency in
// radians per second. Amplitude is the Cartwright-Edden equilibrium
// amplitude in meters and Alpha the load Love number factor; both are
// carried for self-attraction/loading corrections even though plain
// elevation synthesis does not consume them.
type Constituent struct {
	Name      string
	Omega     float64
	Phase     float64
	Amplitude float64
	Alpha     float64
	Species   int
}

// standardConstituents is the catalog of constituents tabulated by the
// supported tide models, keyed by canonical (lower-case) name.
var standardConstituents = map[string]Constituent{
	"m2":   {Name: "m2", Omega: 1.405189e-04, Phase: 1.731557546, Amplitude: 0.242334, Alpha: 0.693, Species: 2},
	"s2":   {Name: "s2", Omega: 1.454441e-04, Phase: 0.000000000, Amplitude: 0.112743, Alpha: 0.693, Species: 2},
	"k1":   {Name: "k1", Omega: 7.292117e-05, Phase: 0.173003674, Amplitude: 0.141565, Alpha: 0.736, Species: 1},
	"o1":   {Name: "o1", Omega: 6.759774e-05, Phase: 1.558553872, Amplitude: 0.100661, Alpha: 0.695, Species: 1},
	"n2":   {Name: "n2", Omega: 1.378797e-04, Phase: 6.050721243, Amplitude: 0.046397, Alpha: 0.693, Species: 2},
	"p1":   {Name: "p1", Omega: 7.252295e-05, Phase: 6.110181633, Amplitude: 0.046848, Alpha: 0.706, Species: 1},
	"k2":   {Name: "k2", Omega: 1.458423e-04, Phase: 3.487600001, Amplitude: 0.030684, Alpha: 0.693, Species: 2},
	"q1":   {Name: "q1", Omega: 6.495854e-05, Phase: 5.877717569, Amplitude: 0.019273, Alpha: 0.695, Species: 1},
	"2n2":  {Name: "2n2", Omega: 1.352405e-04, Phase: 4.086699633, Amplitude: 0.006141, Alpha: 0.693, Species: 2},
	"mu2":  {Name: "mu2", Omega: 1.355937e-04, Phase: 3.463115091, Amplitude: 0.007408, Alpha: 0.693, Species: 2},
	"nu2":  {Name: "nu2", Omega: 1.382329e-04, Phase: 5.427136701, Amplitude: 0.008811, Alpha: 0.693, Species: 2},
	"l2":   {Name: "l2", Omega: 1.431581e-04, Phase: 0.553986502, Amplitude: 0.006931, Alpha: 0.693, Species: 2},
	"t2":   {Name: "t2", Omega: 1.452450e-04, Phase: 0.052841931, Amplitude: 0.006608, Alpha: 0.693, Species: 2},
	"j1":   {Name: "j1", Omega: 7.556036e-05, Phase: 2.137025284, Amplitude: 0.007915, Alpha: 0.695, Species: 1},
	"m1":   {Name: "m1", Omega: 7.028195e-05, Phase: 2.436575100, Amplitude: 0.007915, Alpha: 0.695, Species: 1},
	"oo1":  {Name: "oo1", Omega: 7.824458e-05, Phase: 1.929046130, Amplitude: 0.004338, Alpha: 0.695, Species: 1},
	"rho1": {Name: "rho1", Omega: 6.531174e-05, Phase: 5.254133027, Amplitude: 0.003661, Alpha: 0.695, Species: 1},
	"s1":   {Name: "s1", Omega: 7.2722052e-05, Phase: 0.000000000, Amplitude: 0.000000, Alpha: 0.706, Species: 1},
	"mf":   {Name: "mf", Omega: 0.053234e-04, Phase: 1.756042456, Amplitude: 0.042041, Alpha: 0.693, Species: 0},
	"mm":   {Name: "mm", Omega: 0.026392e-04, Phase: 1.964021610, Amplitude: 0.022191, Alpha: 0.693, Species: 0},
	"ssa":  {Name: "ssa", Omega: 0.003982e-04, Phase: 3.487600001, Amplitude: 0.019567, Alpha: 0.693, Species: 0},
	"sa":   {Name: "sa", Omega: 0.001991e-04, Phase: 6.232786837, Amplitude: 0.010159, Alpha: 0.693, Species: 0},
	"msf":  {Name: "msf", Omega: 0.049252e-04, Phase: 1.731557546, Amplitude: 0.003681, Alpha: 0.693, Species: 0},
	"m4":   {Name: "m4", Omega: 2.810377e-04, Phase: 3.463115091, Amplitude: 0.0, Alpha: 0.693, Species: 0},
	"ms4":  {Name: "ms4", Omega: 2.859630e-04, Phase: 1.731557546, Amplitude: 0.0, Alpha: 0.693, Species: 0},
	"mn4":  {Name: "mn4", Omega: 2.783984e-04, Phase: 1.499093481, Amplitude: 0.0, Alpha: 0.693, Species: 0},
	"m6":   {Name: "m6", Omega: 4.215566e-04, Phase: 5.194672637, Amplitude: 0.0, Alpha: 0.693, Species: 0},
	"m8":   {Name: "m8", Omega: 5.620755e-04, Phase: 6.926230184, Amplitude: 0.0, Alpha: 0.693, Species: 0},
	"mk3":  {Name: "mk3", Omega: 2.134402e-04, Phase: 1.904561220, Amplitude: 0.0, Alpha: 0.693, Species: 0},
	"s4":   {Name: "s4", Omega: 2.908882e-04, Phase: 0.000000000, Amplitude: 0.0, Alpha: 0.693, Species: 0},
	"s6":   {Name: "s6", Omega: 4.363323e-04, Phase: 0.000000000, Amplitude: 0.0, Alpha: 0.693, Species: 0},
	"2sm2": {Name: "2sm2", Omega: 1.503693e-04, Phase: 4.551627762, Amplitude: 0.0, Alpha: 0.693, Species: 0},
	"2mk3": {Name: "2mk3", Omega: 2.081166e-04, Phase: 3.809122439, Amplitude: 0.0, Alpha: 0.693, Species: 0},
}

// CanonicalName maps a model's constituent spelling (e.g. "M2", " q1 ")
// onto the catalog key.
func CanonicalName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// LookupConstituent returns the catalog entry for a constituent name.
func LookupConstituent(name string) (Constituent, bool) {
	c, ok := standardConstituents[CanonicalName(name)]
	return c, ok
}

// ConstituentNames returns the catalog names in sorted order.
func ConstituentNames() []string {
	names := make([]string, 0, len(standardConstituents))
	for name := range standardConstituents {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Deg2Rad converts degrees to radians.
func Deg2Rad(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// Rad2Deg converts radians to degrees.
func Rad2Deg(rad float64) float64 {
	return rad * 180.0 / math.Pi
}
