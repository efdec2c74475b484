package pi

import (
	"math"

	"git.home.luguber.info/inful/pibary/internal/modarith"
	"git.home.luguber.info/inful/pibary/internal/prime"
)

const (
	// DefaultBatchWidth is the number of digits computed per extraction.
	DefaultBatchWidth = 9
	// MaxBatchWidth bounds the block size a float64 sum can still resolve.
	MaxBatchWidth = 12

	// mantissaCeiling keeps every modulus exactly representable in a float64.
	mantissaCeiling = int64(1) << 52
)

var pow10 = [...]float64{
	1, 1e1, 1e2, 1e3, 1e4, 1e5, 1e6, 1e7, 1e8, 1e9, 1e10, 1e11, 1e12,
}

// Extract returns the width decimal digits of π starting at decimal place n
// (n >= 1, place 1 is the first digit after the point) packed into an integer,
// most significant digit first. It uses Bellard's O(n^2) formula
//
//	π + 3 = Σ k·2^k / C(2k, k)
//
// evaluated modulo prime powers, so no earlier digit is computed.
func Extract(n int64, width int) uint64 {
	if width < 1 || width > MaxBatchWidth {
		width = DefaultBatchWidth
	}

	bigN := int64(float64(n+20) * math.Ln10 / math.Ln2)
	limit := 2 * bigN

	var sum float64
	primes := prime.NewCursor[int64](3)
	for a := primes.Next(); a <= limit && a < mantissaCeiling; a = primes.Next() {
		vmax, av := maxPower(a, limit)
		if av >= mantissaCeiling {
			continue
		}

		s := seriesModPower(a, vmax, av, bigN)
		s = modarith.MulMod(s, modarith.PowMod(10, n-1, av), av)
		sum = math.Mod(sum+float64(s)/float64(av), 1.0)
	}

	return uint64(sum * pow10[width])
}

// maxPower returns the largest v with a^v <= limit, and a^v itself.
func maxPower(a, limit int64) (v, av int64) {
	v, av = 1, a
	for av <= limit/a {
		av *= a
		v++
	}
	return v, av
}

// seriesModPower sums the terms k·k!/(2k-1)!! for k = 1..bigN whose
// denominators keep a positive power of a, scaled into Z/avZ.
func seriesModPower(a, vmax, av, bigN int64) int64 {
	var s, v int64
	num, den := int64(1), int64(1)

	for k := int64(1); k <= bigN; k++ {
		t := k
		for t%a == 0 {
			t /= a
			v--
		}
		num = modarith.MulMod(num, t, av)

		t = 2*k - 1
		for t%a == 0 {
			t /= a
			v++
		}
		den = modarith.MulMod(den, t, av)

		if v > 0 {
			t = modarith.ModInverse(den, av)
			t = modarith.MulMod(t, num, av)
			t = modarith.MulMod(t, k, av)
			for i := v; i < vmax; i++ {
				t = modarith.MulMod(t, a, av)
			}
			s += t
			if s >= av {
				s -= av
			}
		}
	}
	return s
}

// DigitAt returns the digit of π at position (0 is the leading 3).
// Positions must be non-negative.
func DigitAt(position int64) uint8 {
	if position == 0 {
		return 3
	}
	return uint8(Extract(position, 1))
}

// ExtractorOption configures an Extractor.
type ExtractorOption func(*Extractor)

// WithBatchWidth sets how many digits each extraction computes. Values
// outside [1, MaxBatchWidth] fall back to DefaultBatchWidth.
func WithBatchWidth(width int) ExtractorOption {
	return func(e *Extractor) {
		if width >= 1 && width <= MaxBatchWidth {
			e.width = width
		}
	}
}

// Extractor streams digits of π by extracting fixed-width blocks at
// increasing positions. Each block is computed independently.
type Extractor struct {
	width int
	pos   int64

	queue []uint8
	head  int

	batches uint64
}

// NewExtractor returns an extractor whose first digit is the one at start.
// Negative starts are treated as 0.
func NewExtractor(start int64, opts ...ExtractorOption) *Extractor {
	e := &Extractor{width: DefaultBatchWidth, pos: max(start, 0)}
	for _, opt := range opts {
		opt(e)
	}
	e.queue = make([]uint8, 0, e.width)
	return e
}

// Next returns the next digit, computing a new block when the queue is empty.
func (e *Extractor) Next() uint8 {
	if e.head < len(e.queue) {
		d := e.queue[e.head]
		e.head++
		return d
	}

	if e.pos == 0 {
		e.pos = 1
		return 3
	}

	block := Extract(e.pos, e.width)
	e.queue = splitDigits(block, e.width, e.queue[:0])
	e.head = 1
	e.pos += int64(e.width)
	e.batches++
	return e.queue[0]
}

// Position returns the position of the next block to be extracted.
func (e *Extractor) Position() int64 { return e.pos }

// BatchWidth returns the configured block width.
func (e *Extractor) BatchWidth() int { return e.width }

// Batches reports how many blocks have been extracted.
func (e *Extractor) Batches() uint64 { return e.batches }

// splitDigits appends the width decimal digits of block to dst, most
// significant first, left-padding with zeros.
func splitDigits(block uint64, width int, dst []uint8) []uint8 {
	start := len(dst)
	for range width {
		dst = append(dst, 0)
	}
	for i := start + width - 1; i >= start; i-- {
		dst[i] = uint8(block % 10)
		block /= 10
	}
	return dst
}
