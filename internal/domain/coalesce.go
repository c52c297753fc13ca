package domain

// CoalesceStr returns the first non-empty string from vals.
func CoalesceStr(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// FloatWithDefault returns v unless it is zero, in which case fallback.
func FloatWithDefault(fallback, v float64) float64 {
	if v != 0 {
		return v
	}
	return fallback
}

// ClampInt bounds v to [lo, hi].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampFloat bounds v to [lo, hi].
func ClampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
