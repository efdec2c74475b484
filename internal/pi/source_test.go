package pi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/pibary/internal/errors"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"spigot", KindSpigot, false},
		{" Bellard ", KindBellard, false},
		{"BELLARD", KindBellard, false},
		{"bbp", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKind(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewSource_BothKindsAgree(t *testing.T) {
	for _, start := range []int64{0, 1, 17} {
		sp, err := NewSource(KindSpigot, start, DefaultBatchWidth)
		require.NoError(t, err)
		bb, err := NewSource(KindBellard, start, DefaultBatchWidth)
		require.NoError(t, err)
		assert.Equal(t, Take(sp, 30), Take(bb, 30), "start %d", start)
	}
}

func TestNewSource_PositionZeroIsThree(t *testing.T) {
	for _, kind := range Kinds() {
		src, err := NewSource(kind, 0, DefaultBatchWidth)
		require.NoError(t, err)
		assert.Equal(t, uint8(3), src.Next(), "engine %s", kind)
	}
}

func TestNewSource_Errors(t *testing.T) {
	_, err := NewSource(KindSpigot, -1, DefaultBatchWidth)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))

	_, err = NewSource(Kind("nope"), 0, DefaultBatchWidth)
	require.Error(t, err)
}

func TestSourcesAreIndependent(t *testing.T) {
	a := NewExtractor(0)
	b := NewExtractor(0)
	Take(a, 25)
	assert.Equal(t, []uint8{3, 1, 4, 1, 5}, Take(b, 5))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "31415", Format([]uint8{3, 1, 4, 1, 5}))
	assert.Equal(t, "", Format(nil))
}
