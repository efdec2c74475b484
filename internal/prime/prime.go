// Package prime provides a trial-division primality test and a lazy cursor over
// the primes, shared by 32-bit and 64-bit callers.
package prime

import "math"

// Integer is the set of integer widths the cursor operates on.
type Integer interface {
	~int32 | ~int64
}

// IsPrime reports whether n is prime using trial division by 6k±1.
func IsPrime[T Integer](n T) bool {
	if n == 2 || n == 3 {
		return true
	}
	if n < 2 || n%2 == 0 || n%3 == 0 {
		return false
	}

	limit := isqrt(n) + 1
	for i := T(6); i <= limit; i += 6 {
		if n%(i-1) == 0 || n%(i+1) == 0 {
			return false
		}
	}
	return true
}

// isqrt returns floor(sqrt(n)) for n >= 0.
func isqrt[T Integer](n T) T {
	s := T(math.Sqrt(float64(n)))
	// float64 loses precision above 2^53; nudge into place.
	for s > 0 && s*s > n {
		s--
	}
	for (s+1)*(s+1) > 0 && (s+1)*(s+1) <= n {
		s++
	}
	return s
}

// Cursor yields increasing primes starting at its base. It is not safe for
// concurrent use and cannot be rewound; create a new cursor to restart.
type Cursor[T Integer] struct {
	base T
}

// NewCursor returns a cursor whose first prime is the smallest prime >= max(2, base).
func NewCursor[T Integer](base T) *Cursor[T] {
	return &Cursor[T]{base: base}
}

// Next returns the next prime and advances the cursor past it.
func (c *Cursor[T]) Next() T {
	n := c.base
	if n < 2 {
		n = 2
	}
	for !IsPrime(n) {
		n++
	}
	c.base = n + 1
	return n
}
