package utils

import "math"

// ClampToInt64 converts val to int64, saturating at math.MaxInt64.
func ClampToInt64(val uint64) int64 {
	if val > math.MaxInt64 {
		return math.MaxInt64
	}

	return int64(val)
}
