package modarith

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMulMod(t *testing.T) {
	tests := []struct {
		name    string
		a, b, m int64
		want    int64
	}{
		{"small", 7, 8, 5, 1},
		{"zero operand", 0, 123456, 97, 0},
		{"modulus one", 12, 34, 1, 0},
		{"operand above modulus", 1000, 1000, 7, 1000 * 1000 % 7},
		{"near 2^52", 1<<52 - 1, 1<<52 - 3, 1<<52 - 5, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MulMod(tt.a, tt.b, tt.m))
		})
	}
}

func TestMulMod_MatchesBig(t *testing.T) {
	values := []int64{1, 2, 3, 97, 65537, 1 << 31, 1<<40 + 7, 1<<62 + 11}
	mods := []int64{2, 9, 1 << 20, 6700417, 1<<52 - 1}
	for _, a := range values {
		for _, b := range values {
			for _, m := range mods {
				want := new(big.Int).Mul(big.NewInt(a), big.NewInt(b))
				want.Mod(want, big.NewInt(m))
				require.Equal(t, want.Int64(), MulMod(a, b, m), "a=%d b=%d m=%d", a, b, m)
			}
		}
	}
}

func TestModInverse(t *testing.T) {
	tests := []struct {
		a, n int64
	}{
		{3, 7},
		{10, 17},
		{2, 3 * 3 * 3 * 3},
		{1234567, 1000003},
		{5, 2 * 2 * 2 * 2 * 2 * 2},
		{1, 13},
	}
	for _, tt := range tests {
		inv := ModInverse(tt.a, tt.n)
		require.GreaterOrEqual(t, inv, int64(0))
		require.Less(t, inv, tt.n)
		assert.Equal(t, int64(1), MulMod(inv, tt.a, tt.n), "inverse of %d mod %d", tt.a, tt.n)
	}
}

func TestModInverse_MatchesBig(t *testing.T) {
	n := int64(7 * 7 * 7 * 7)
	for a := int64(1); a < 300; a++ {
		if a%7 == 0 {
			continue
		}
		want := new(big.Int).ModInverse(big.NewInt(a), big.NewInt(n))
		require.Equal(t, want.Int64(), ModInverse(a, n), "a=%d", a)
	}
}

func TestModInverse_ModulusOne(t *testing.T) {
	assert.Equal(t, int64(0), ModInverse(5, 1))
}

func TestPowMod(t *testing.T) {
	assert.Equal(t, int64(1), PowMod(10, 0, 7))
	assert.Equal(t, int64(1), PowMod(0, 0, 13))
	assert.Equal(t, int64(3), PowMod(10, 1, 7))
	assert.Equal(t, int64(2), PowMod(10, 2, 7))
	assert.Equal(t, int64(1), PowMod(2, 10, 1023))

	for _, tc := range []struct{ a, b, m int64 }{
		{10, 989, 6709},
		{10, 123456789, 1<<52 - 1},
		{3, 1 << 40, 1000000007},
		{123456789, 987654321, 2 * 3 * 5 * 7 * 11 * 13},
	} {
		want := new(big.Int).Exp(big.NewInt(tc.a), big.NewInt(tc.b), big.NewInt(tc.m))
		require.Equal(t, want.Int64(), PowMod(tc.a, tc.b, tc.m), "%d^%d mod %d", tc.a, tc.b, tc.m)
	}
}
