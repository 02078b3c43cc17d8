package util

import (
	"cmp"
)

// Clamp limits v to [lo, hi]. NaN maps to lo.
func Clamp[T cmp.Ordered](v T, lo T, hi T) T {
	if isNan(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func isNan[T comparable](arg T) bool {
	return arg != arg
}
