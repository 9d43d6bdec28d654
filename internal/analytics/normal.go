package analytics

import "math"

// normalCDF is the standard normal cumulative distribution Φ(z), computed
// from the error function. math.Erf keeps full precision deep in the tails,
// which matters once |z| passes 4.
func normalCDF(z float64) float64 {
	return 0.5 * (1 + math.Erf(z/math.Sqrt2))
}

// normalQuantile is the inverse Φ⁻¹(p) for p in (0,1).
func normalQuantile(p float64) float64 {
	return math.Sqrt2 * math.Erfinv(2*p-1)
}
