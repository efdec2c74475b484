package pi

import "math/big"

var (
	bigOne   = big.NewInt(1)
	bigTwo   = big.NewInt(2)
	bigThree = big.NewInt(3)
	bigSeven = big.NewInt(7)
	bigTen   = big.NewInt(10)
)

// Spigot emits the digits of π in order using Gibbons' unbounded spigot.
// The state integers grow without bound as digits are produced.
type Spigot struct {
	q, r, t, k, n, l big.Int

	// scratch space reused across steps
	x, y, nr big.Int

	emitted uint64
	refines uint64
}

// NewSpigot returns a spigot positioned before the leading 3.
func NewSpigot() *Spigot {
	s := &Spigot{}
	s.q.SetInt64(1)
	s.r.SetInt64(0)
	s.t.SetInt64(1)
	s.k.SetInt64(1)
	s.n.SetInt64(3)
	s.l.SetInt64(3)
	return s
}

// Next returns the next digit. It refines the state as many times as needed
// until the candidate digit is safe to emit.
func (s *Spigot) Next() uint8 {
	for {
		// 4q + r - t < n*t
		s.x.Lsh(&s.q, 2)
		s.x.Add(&s.x, &s.r)
		s.x.Sub(&s.x, &s.t)
		s.y.Mul(&s.n, &s.t)
		if s.x.Cmp(&s.y) < 0 {
			digit := uint8(s.n.Int64())

			// r' = (r - n*t) * 10
			s.nr.Sub(&s.r, &s.y)
			s.nr.Mul(&s.nr, bigTen)

			// n' = ((3q + r) * 10) / t - 10n
			s.x.Mul(&s.q, bigThree)
			s.x.Add(&s.x, &s.r)
			s.x.Mul(&s.x, bigTen)
			s.x.Quo(&s.x, &s.t)
			s.n.Mul(&s.n, bigTen)
			s.n.Sub(&s.x, &s.n)

			s.q.Mul(&s.q, bigTen)
			s.r.Set(&s.nr)

			s.emitted++
			return digit
		}

		// r' = (2q + r) * l
		s.nr.Lsh(&s.q, 1)
		s.nr.Add(&s.nr, &s.r)
		s.nr.Mul(&s.nr, &s.l)

		// n' = (7kq + 2 + r*l) / (t*l)
		s.x.Mul(&s.q, &s.k)
		s.x.Mul(&s.x, bigSeven)
		s.x.Add(&s.x, bigTwo)
		s.y.Mul(&s.r, &s.l)
		s.x.Add(&s.x, &s.y)
		s.y.Mul(&s.t, &s.l)
		s.n.Quo(&s.x, &s.y)

		s.q.Mul(&s.q, &s.k)
		s.t.Mul(&s.t, &s.l)
		s.l.Add(&s.l, bigTwo)
		s.k.Add(&s.k, bigOne)
		s.r.Set(&s.nr)

		s.refines++
	}
}

// Emitted reports how many digits have been returned so far.
func (s *Spigot) Emitted() uint64 { return s.emitted }

// RefineSteps reports how many non-emitting refinement steps have run.
func (s *Spigot) RefineSteps() uint64 { return s.refines }
