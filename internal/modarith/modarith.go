// Package modarith implements the modular arithmetic used by the digit
// extraction engine. All operands are non-negative and moduli are positive.
package modarith

import "math/bits"

// MulMod returns (a*b) mod m. The product is formed in 128 bits, so any
// operands below 2^63 are accepted.
func MulMod(a, b, m int64) int64 {
	hi, lo := bits.Mul64(uint64(a), uint64(b))
	return int64(bits.Rem64(hi, lo, uint64(m)))
}

// ModInverse returns x in [0, n) with a*x ≡ 1 (mod n), computed with the
// extended Euclidean algorithm. The result is meaningless unless gcd(a, n) == 1.
func ModInverse(a, n int64) int64 {
	t, newT := int64(0), int64(1)
	r, newR := n, a%n
	for newR != 0 {
		q := r / newR
		t, newT = newT, t-q*newT
		r, newR = newR, r-q*newR
	}
	if t < 0 {
		t += n
	}
	return t
}

// PowMod returns a^b mod m by recursive squaring. PowMod(a, 0, m) is 1.
func PowMod(a, b, m int64) int64 {
	if b == 0 {
		return 1
	}
	half := PowMod(a, b/2, m)
	sq := MulMod(half, half, m)
	if b%2 == 1 {
		return MulMod(sq, a%m, m)
	}
	return sq
}
