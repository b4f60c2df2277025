// Package buf provides overflow-safe arithmetic for window, cursor, and
// element-count math. Window geometry is computed in int so a hostile size
// cannot wrap a bounds check.
package buf

import "math"

// Add adds a and b, returning ok = false when the result would overflow int.
func Add(a, b int) (int, bool) {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return 0, false
	case b < 0 && a < math.MinInt-b:
		return 0, false
	default:
		return a + b, true
	}
}

// Mul multiplies a and b, returning ok = false when the result would
// overflow int. This guards count * elementSize calculations in the slice
// transfer paths.
func Mul(a, b int) (int, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if a > 0 && b > 0 && a > math.MaxInt/b {
		return 0, false
	}
	if a < 0 && b < 0 && a < math.MaxInt/b {
		return 0, false
	}
	if a > 0 && b < 0 && b < math.MinInt/a {
		return 0, false
	}
	if a < 0 && b > 0 && a < math.MinInt/b {
		return 0, false
	}
	return a * b, true
}

// End returns off+n if both are non-negative and the sum stays within
// limit. It is the one-stop check for "does this span fit the window".
func End(off, n, limit int) (int, bool) {
	if off < 0 || n < 0 {
		return 0, false
	}
	end, ok := Add(off, n)
	if !ok || end > limit {
		return 0, false
	}
	return end, true
}

// RoundUp returns the smallest multiple of m that is strictly greater
// than x. m must be positive. The result is never x itself, so a buffer
// grown to the returned capacity always has room past the requested size.
func RoundUp(x, m int) (int, bool) {
	return Add(x, m-x%m)
}
