// Package pi generates the decimal digits of π.
//
// Two strategies implement Source: Spigot streams digits in order using
// unbounded integers, and Extractor computes blocks of digits at arbitrary
// positions with Bellard's digit-extraction formula. Both yield 3, 1, 4, 1, 5, ...
// and never end. Neither is safe for concurrent use.
package pi

import (
	"strings"

	"git.home.luguber.info/inful/pibary/internal/errors"
)

// Source produces an infinite sequence of decimal digits (0-9).
type Source interface {
	Next() uint8
}

// Kind names a digit generation strategy.
type Kind string

const (
	KindSpigot  Kind = "spigot"
	KindBellard Kind = "bellard"
)

// Kinds lists the supported strategies in display order.
func Kinds() []Kind { return []Kind{KindSpigot, KindBellard} }

// ParseKind validates a strategy name.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindSpigot, KindBellard:
		return k, nil
	default:
		return "", errors.ValidationError("unknown engine").
			WithContext("engine", s).
			WithContext("allowed", Kinds()).
			Build()
	}
}

// NewSource builds a Source of the given kind positioned at start. The spigot
// can only begin at 0, so it is advanced by discarding start digits.
func NewSource(kind Kind, start int64, batchWidth int) (Source, error) {
	if start < 0 {
		return nil, errors.ValidationError("start position must not be negative").
			WithContext("start", start).
			Build()
	}
	switch kind {
	case KindSpigot:
		s := NewSpigot()
		for i := int64(0); i < start; i++ {
			s.Next()
		}
		return s, nil
	case KindBellard:
		return NewExtractor(start, WithBatchWidth(batchWidth)), nil
	default:
		return nil, errors.ValidationError("unknown engine").
			WithContext("engine", string(kind)).
			Build()
	}
}

// Take pulls n digits from src.
func Take(src Source, n int) []uint8 {
	out := make([]uint8, n)
	for i := range out {
		out[i] = src.Next()
	}
	return out
}

// Format renders digits as an ASCII string, e.g. "31415".
func Format(digits []uint8) string {
	var b strings.Builder
	b.Grow(len(digits))
	for _, d := range digits {
		b.WriteByte('0' + d)
	}
	return b.String()
}
