package hash

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChecksum(t *testing.T) {
	tests := []struct {
		name string
		data string
		sum  uint64
	}{
		{"empty", "", 0xef46db3751d8e999},
		{"short", "test", 0x4fdcca5ddb678139},
		{"long", "this is a longer test string to hash", 0x69275f7f7ee59dbd},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.sum, Checksum([]byte(tt.data)))
		})
	}
}

func TestFingerprint(t *testing.T) {
	keys := []int{20240101, 20240102, 20240103}
	values := []float64{1.5, 2.5, 3.5}
	base := Fingerprint(keys, values)

	t.Run("deterministic", func(t *testing.T) {
		require.Equal(t, base, Fingerprint([]int{20240101, 20240102, 20240103}, []float64{1.5, 2.5, 3.5}))
	})

	t.Run("sensitive to keys", func(t *testing.T) {
		require.NotEqual(t, base, Fingerprint([]int{20240101, 20240102, 20240104}, values))
	})

	t.Run("sensitive to values", func(t *testing.T) {
		require.NotEqual(t, base, Fingerprint(keys, []float64{1.5, 2.5, 3.25}))
	})

	t.Run("sensitive to pairing", func(t *testing.T) {
		require.NotEqual(t, base, Fingerprint(keys, []float64{2.5, 1.5, 3.5}))
	})

	t.Run("sentinel keys", func(t *testing.T) {
		low := Fingerprint([]int{math.MinInt32}, []float64{0})
		high := Fingerprint([]int{math.MaxInt32}, []float64{0})
		require.NotEqual(t, low, high)
	})

	t.Run("empty", func(t *testing.T) {
		require.Equal(t, Checksum(nil), Fingerprint(nil, nil))
	})
}
