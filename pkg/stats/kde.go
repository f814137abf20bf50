package stats

import "math"

// SilvermanBandwidth is the rule-of-thumb Gaussian kernel bandwidth
// 0.9 * min(std, IQR/1.34) * n^(-1/5).
func SilvermanBandwidth(x []float64) float64 {
	n := float64(len(x))
	if n < 2 {
		return 1
	}
	spread := Std(x)
	if iqr := (Percentile(x, 75) - Percentile(x, 25)) / 1.34; iqr > 0 && iqr < spread {
		spread = iqr
	}
	if spread == 0 {
		return 1
	}
	return 0.9 * spread * math.Pow(n, -0.2)
}

// GaussianKDE returns the kernel density estimate of x with the given
// bandwidth; a non-positive bandwidth selects SilvermanBandwidth.
func GaussianKDE(x []float64, bandwidth float64) func(float64) float64 {
	if bandwidth <= 0 {
		bandwidth = SilvermanBandwidth(x)
	}
	norm := 1 / (float64(len(x)) * bandwidth * math.Sqrt(2*math.Pi))
	samples := append([]float64(nil), x...)
	return func(at float64) float64 {
		if len(samples) == 0 {
			return 0
		}
		sum := 0.0
		for _, xi := range samples {
			u := (at - xi) / bandwidth
			sum += math.Exp(-0.5 * u * u)
		}
		return sum * norm
	}
}
