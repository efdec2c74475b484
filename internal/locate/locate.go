// Package locate finds a byte pattern in an unbounded byte stream.
package locate

import (
	"context"

	"git.home.luguber.info/inful/pibary/internal/errors"
)

// cancelCheckInterval is how many bytes are scanned between context checks.
const cancelCheckInterval = 4096

// ByteSource is an infinite byte sequence.
type ByteSource interface {
	Next() byte
}

// Match is the half-open byte range [Start, End) of the first occurrence.
type Match struct {
	Start int64
	End   int64
}

// Result describes a finished scan.
type Result struct {
	Match   Match
	Scanned int64
}

// Find scans src for the first occurrence of pattern, reading at most maxBytes
// bytes (0 means no bound). It returns a not_found error carrying the pattern
// when the bound is reached, and a runtime error when ctx is done.
func Find(ctx context.Context, src ByteSource, pattern []byte, maxBytes int64) (Result, error) {
	if len(pattern) == 0 {
		return Result{}, errors.ValidationError("search pattern must not be empty").Build()
	}
	if maxBytes < 0 {
		return Result{}, errors.ValidationError("max bytes must not be negative").
			WithContext("max_bytes", maxBytes).
			Build()
	}

	fail := failureTable(pattern)
	m := len(pattern)
	matched := 0

	var scanned int64
	for maxBytes == 0 || scanned < maxBytes {
		if scanned%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return Result{Scanned: scanned}, errors.WrapError(err, errors.CategoryRuntime, "search interrupted").
					WithContext("bytes_scanned", scanned).
					Build()
			}
		}

		b := src.Next()
		scanned++

		for matched > 0 && pattern[matched] != b {
			matched = fail[matched-1]
		}
		if pattern[matched] == b {
			matched++
		}
		if matched == m {
			return Result{
				Match:   Match{Start: scanned - int64(m), End: scanned},
				Scanned: scanned,
			}, nil
		}
	}

	return Result{Scanned: scanned}, errors.NotFoundError("pattern not found").
		WithContext("bytes", pattern).
		WithContext("max_bytes", maxBytes).
		Build()
}

// failureTable returns the Knuth-Morris-Pratt prefix function of pattern:
// fail[i] is the length of the longest proper prefix of pattern[:i+1] that is
// also its suffix.
func failureTable(pattern []byte) []int {
	fail := make([]int, len(pattern))
	k := 0
	for i := 1; i < len(pattern); i++ {
		for k > 0 && pattern[i] != pattern[k] {
			k = fail[k-1]
		}
		if pattern[i] == pattern[k] {
			k++
		}
		fail[i] = k
	}
	return fail
}
