package domain

import "math"

// Days from the MJD origin (1858-11-17) to J2000 (2000-01-01T12:00:00),
// with the small offset that rebases the series onto terrestrial time.
const mjdJ2000 = 51544.4993

// MeanLongitudes holds the solar/lunar mean longitudes used to build
// equilibrium arguments and nodal corrections, all in degrees on [0, 360).
type MeanLongitudes struct {
	S  float64 // moon
	H  float64 // sun
	P  float64 // lunar perigee
	N  float64 // ascending lunar node
	PP float64 // solar perigee
}

// AstronomicalLongitudes evaluates the mean longitudes at a Modified Julian
// Day. Linear Meeus-style series relative to J2000; adequate for nodal
// corrections, which vary over the 18.6-year node cycle.
func AstronomicalLongitudes(mjd float64) MeanLongitudes {
	T := mjd - mjdJ2000
	return MeanLongitudes{
		S:  normDeg(218.3164 + 13.17639648*T),
		H:  normDeg(280.4661 + 0.98564736*T),
		P:  normDeg(83.3535 + 0.11140353*T),
		N:  normDeg(125.0445 - 0.05295377*T),
		PP: normDeg(282.94 + 1.7192*(T/36525.0)),
	}
}

// normDeg reduces an angle in degrees to [0, 360).
func normDeg(deg float64) float64 {
	deg = math.Mod(deg, 360.0)
	if deg < 0 {
		deg += 360.0
	}
	return deg
}
