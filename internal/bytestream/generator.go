// Package bytestream packs decimal digits of π into bytes.
//
// Every output byte consumes exactly four digits. Each digit is reduced to its
// low two bits (digit & 0b11) and the four 2-bit values are packed most
// significant first. The reduction is lossy and has no inverse; it is the
// fixed encoding searched by the locate package.
package bytestream

import "git.home.luguber.info/inful/pibary/internal/pi"

// DigitsPerByte is the number of digits consumed per output byte.
const DigitsPerByte = 4

// Generator turns a digit source into an infinite byte sequence.
type Generator struct {
	src    pi.Source
	pulled uint64
}

// New wraps src. The generator owns src from here on.
func New(src pi.Source) *Generator {
	return &Generator{src: src}
}

// Next pulls four digits and returns their packed byte.
func (g *Generator) Next() byte {
	var acc byte
	for range DigitsPerByte {
		acc = acc<<2 | g.src.Next()&0b11
	}
	g.pulled += DigitsPerByte
	return acc
}

// Fill writes len(p) bytes into p.
func (g *Generator) Fill(p []byte) {
	for i := range p {
		p[i] = g.Next()
	}
}

// DigitsPulled reports how many digits have been consumed from the source.
func (g *Generator) DigitsPulled() uint64 { return g.pulled }
