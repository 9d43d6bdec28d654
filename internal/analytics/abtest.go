package analytics

import "math"

// DefaultConfidenceLevel is used when the caller does not supply one.
const DefaultConfidenceLevel = 0.95

// ABResult is the outcome of a pooled two-proportion z-test between
// variants A and B, plus the test's statistical power. It depends only on
// the four numeric inputs.
type ABResult struct {
	ZScore          float64
	PValue          float64
	Significant     bool
	Power           float64
	ConfidenceLevel float64
}

// EvaluateABTest compares two conversion samples. nA and nB are sample
// sizes, convA and convB proportions in [0,1]. An empty sample or a zero
// standard error yields the neutral result (p=1, power=0, not significant)
// instead of an error: "no data yet" is an expected steady state.
func EvaluateABTest(nA int, convA float64, nB int, convB float64, confidenceLevel float64) ABResult {
	if confidenceLevel <= 0 || confidenceLevel >= 1 {
		confidenceLevel = DefaultConfidenceLevel
	}

	result := ABResult{
		ZScore:          0.0,
		PValue:          1.0,
		Significant:     false,
		Power:           0.0,
		ConfidenceLevel: confidenceLevel,
	}

	if nA <= 0 || nB <= 0 {
		return result
	}

	fa, fb := float64(nA), float64(nB)

	pPool := (fa*convA + fb*convB) / (fa + fb)
	se := math.Sqrt(pPool * (1 - pPool) * (1/fa + 1/fb))
	if se == 0 {
		return result
	}

	z := (convB - convA) / se
	pValue := 2 * (1 - normalCDF(math.Abs(z)))

	alpha := 1 - confidenceLevel
	result.ZScore = round4(z)
	result.PValue = round4(pValue)
	result.Significant = pValue < alpha

	// Power from Cohen's arcsine effect size with the harmonic-mean sample size.
	h := 2 * (math.Asin(math.Sqrt(convB)) - math.Asin(math.Sqrt(convA)))
	nHarm := 2 * fa * fb / (fa + fb)
	zAlpha := normalQuantile(1 - alpha/2)
	zBeta := math.Abs(h)*math.Sqrt(nHarm/2) - zAlpha
	result.Power = round4(normalCDF(zBeta))

	return result
}
