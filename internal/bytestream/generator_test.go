package bytestream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/pibary/internal/pi"
)

// sliceSource replays fixed digits and then repeats zeros.
type sliceSource struct {
	digits []uint8
	i      int
}

func (s *sliceSource) Next() uint8 {
	if s.i >= len(s.digits) {
		return 0
	}
	d := s.digits[s.i]
	s.i++
	return d
}

func TestGenerator_FirstByte(t *testing.T) {
	// 3 1 4 1 -> 11 01 00 01
	g := New(pi.NewSpigot())
	assert.Equal(t, byte(0b11010001), g.Next())
	assert.Equal(t, uint64(4), g.DigitsPulled())
}

func TestGenerator_MatchesTwoBitPacking(t *testing.T) {
	digits := pi.Take(pi.NewSpigot(), 400)
	g := New(pi.NewSpigot())
	for i := 0; i < len(digits); i += DigitsPerByte {
		want := pack(digits[i], digits[i+1], digits[i+2], digits[i+3])
		require.Equal(t, want, g.Next(), "byte %d", i/DigitsPerByte)
	}
}

func TestGenerator_ConsumesExactlyFourDigits(t *testing.T) {
	src := &sliceSource{digits: []uint8{9, 8, 7, 6, 5}}
	g := New(src)
	g.Next()
	assert.Equal(t, 4, src.i)
	assert.Equal(t, uint8(5), src.Next())
}

func TestGenerator_MasksLowBits(t *testing.T) {
	// 9=1001 8=1000 7=0111 6=0110 -> 01 00 11 10
	g := New(&sliceSource{digits: []uint8{9, 8, 7, 6}})
	assert.Equal(t, byte(0b01001110), g.Next())
}

func TestGenerator_DeterministicFirstByte(t *testing.T) {
	first := New(pi.NewSpigot()).Next()
	for range 3 {
		assert.Equal(t, first, New(pi.NewSpigot()).Next())
		assert.Equal(t, first, New(pi.NewExtractor(0)).Next())
	}
}

func TestGenerator_EnginesAgree(t *testing.T) {
	a := make([]byte, 64)
	b := make([]byte, 64)
	New(pi.NewSpigot()).Fill(a)
	New(pi.NewExtractor(0)).Fill(b)
	assert.Equal(t, a, b)
}

func TestPackReference(t *testing.T) {
	assert.Equal(t, byte(0), pack(0, 4, 8, 0))
	assert.Equal(t, byte(0xFF), pack(3, 7, 3, 7))
}

func pack(d0, d1, d2, d3 uint8) byte {
	return (d0&0b11)<<6 | (d1&0b11)<<4 | (d2&0b11)<<2 | d3&0b11
}
