package locate

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/pibary/internal/bytestream"
	"git.home.luguber.info/inful/pibary/internal/errors"
	"git.home.luguber.info/inful/pibary/internal/pi"
)

// loopSource repeats data forever.
type loopSource struct {
	data []byte
	i    int
}

func (s *loopSource) Next() byte {
	b := s.data[s.i%len(s.data)]
	s.i++
	return b
}

func TestFind_Simple(t *testing.T) {
	res, err := Find(t.Context(), &loopSource{data: []byte("xxabcxx")}, []byte("abc"), 0)
	require.NoError(t, err)
	assert.Equal(t, Match{Start: 2, End: 5}, res.Match)
	assert.Equal(t, int64(5), res.Scanned)
}

func TestFind_OverlappingPrefix(t *testing.T) {
	// A naive restart would miss the match starting inside a partial match.
	res, err := Find(t.Context(), &loopSource{data: []byte("aaaabaaab")}, []byte("aaab"), 0)
	require.NoError(t, err)
	assert.Equal(t, Match{Start: 1, End: 5}, res.Match)
}

func TestFind_MatchesNaiveSearch(t *testing.T) {
	stream := make([]byte, 2048)
	bytestream.New(pi.NewSpigot()).Fill(stream)

	for _, end := range []int{1, 3, 17, 100, 511, 2048} {
		for _, n := range []int{1, 2, 3} {
			if end-n < 0 {
				continue
			}
			pattern := stream[end-n : end]
			want := int64(bytes.Index(stream, pattern))

			res, err := Find(t.Context(), &loopSource{data: stream}, pattern, int64(len(stream)))
			require.NoError(t, err)
			assert.Equal(t, want, res.Match.Start, "pattern %v", pattern)
			assert.Equal(t, want+int64(n), res.Match.End)
		}
	}
}

func TestFind_NotFoundWithinBound(t *testing.T) {
	_, err := Find(t.Context(), &loopSource{data: []byte("ab")}, []byte("c"), 100)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryNotFound))

	c, ok := errors.AsClassified(err)
	require.True(t, ok)
	v, _ := c.Context().Get("bytes")
	assert.Equal(t, []byte("c"), v)
}

func TestFind_BoundIsInclusiveOfLastByte(t *testing.T) {
	res, err := Find(t.Context(), &loopSource{data: []byte("xyz")}, []byte("yz"), 3)
	require.NoError(t, err)
	assert.Equal(t, Match{Start: 1, End: 3}, res.Match)

	_, err = Find(t.Context(), &loopSource{data: []byte("xyz")}, []byte("yz"), 2)
	assert.True(t, errors.HasCategory(err, errors.CategoryNotFound))
}

func TestFind_EmptyPattern(t *testing.T) {
	_, err := Find(t.Context(), &loopSource{data: []byte("a")}, nil, 0)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
}

func TestFind_NegativeBound(t *testing.T) {
	_, err := Find(t.Context(), &loopSource{data: []byte("a")}, []byte("a"), -1)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
}

func TestFind_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	_, err := Find(ctx, &loopSource{data: []byte("ab")}, []byte("c"), 0)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryRuntime))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFailureTable(t *testing.T) {
	assert.Equal(t, []int{0, 1, 2, 0}, failureTable([]byte("aaab")))
	assert.Equal(t, []int{0, 0, 1, 2, 0}, failureTable([]byte("ababc")))
	assert.Equal(t, []int{0}, failureTable([]byte("z")))
}
