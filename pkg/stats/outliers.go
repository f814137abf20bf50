package stats

// Clip limits x to its lower and upper percentiles (0..100) computed over the
// present values. NaN stays NaN.
func Clip(x []float64, lower, upper float64) []float64 {
	present := Present(x)
	out := make([]float64, len(x))
	if len(present) == 0 {
		copy(out, x)
		return out
	}
	lo, hi := Percentile(present, lower), Percentile(present, upper)
	for i, v := range x {
		switch {
		case v < lo:
			out[i] = lo
		case v > hi:
			out[i] = hi
		default:
			out[i] = v
		}
	}
	return out
}
