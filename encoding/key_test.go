package encoding

import (
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/datets/endian"
)

func dailyKeys(n int) []int {
	keys := make([]int, 0, n)
	y, m, d := 2023, 12, 25
	for range n {
		keys = append(keys, y*10000+m*100+d)
		d++
		if d > 28 {
			d = 1
			m++
			if m > 12 {
				m = 1
				y++
			}
		}
	}

	return keys
}

func TestKeyRaw_RoundTrip(t *testing.T) {
	engines := map[string]endian.EndianEngine{
		"little": endian.GetLittleEndianEngine(),
		"big":    endian.GetBigEndianEngine(),
	}

	for name, engine := range engines {
		t.Run(name, func(t *testing.T) {
			keys := append([]int{math.MinInt32}, dailyKeys(40)...)
			keys = append(keys, math.MaxInt32)

			enc := NewKeyRawEncoder(engine)
			defer enc.Finish()

			enc.Write(keys[0])
			enc.WriteSlice(keys[1:])
			require.Equal(t, len(keys), enc.Len())
			require.Equal(t, len(keys)*4, enc.Size())

			dec := NewKeyRawDecoder(engine)
			got := slices.Collect(dec.All(enc.Bytes(), enc.Len()))
			require.Equal(t, keys, got)

			for i, want := range keys {
				k, ok := dec.At(enc.Bytes(), i, enc.Len())
				require.True(t, ok)
				require.Equal(t, want, k)
			}
		})
	}
}

func TestKeyRaw_ByteOrder(t *testing.T) {
	little := NewKeyRawEncoder(endian.GetLittleEndianEngine())
	defer little.Finish()
	big := NewKeyRawEncoder(endian.GetBigEndianEngine())
	defer big.Finish()

	little.Write(20240101)
	big.Write(20240101)

	lb, bb := little.Bytes(), big.Bytes()
	require.Len(t, lb, 4)
	for i := range 4 {
		require.Equal(t, lb[i], bb[3-i])
	}
}

func TestKeyRaw_Malformed(t *testing.T) {
	dec := NewKeyRawDecoder(endian.GetLittleEndianEngine())

	require.Empty(t, slices.Collect(dec.All([]byte{1, 2, 3}, 1)))
	require.Empty(t, slices.Collect(dec.All(nil, 0)))

	_, ok := dec.At([]byte{1, 2, 3, 4}, 1, 2)
	require.False(t, ok)
	_, ok = dec.At([]byte{1, 2, 3, 4}, -1, 1)
	require.False(t, ok)
	_, ok = dec.At([]byte{1, 2, 3, 4}, 1, 1)
	require.False(t, ok)
}

func TestKeyDelta_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		keys []int
	}{
		{name: "single", keys: []int{20240101}},
		{name: "daily", keys: dailyKeys(500)},
		{name: "sentinels", keys: []int{math.MinInt32, 101, 20240229, 99991231, math.MaxInt32}},
		{name: "min only", keys: []int{math.MinInt32}},
		{name: "max only", keys: []int{math.MaxInt32}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc := NewKeyDeltaEncoder()
			defer enc.Finish()

			enc.WriteSlice(tt.keys)
			require.Equal(t, len(tt.keys), enc.Len())

			dec := NewKeyDeltaDecoder()
			require.Equal(t, tt.keys, slices.Collect(dec.All(enc.Bytes(), enc.Len())))

			last, ok := dec.At(enc.Bytes(), len(tt.keys)-1, enc.Len())
			require.True(t, ok)
			require.Equal(t, tt.keys[len(tt.keys)-1], last)
		})
	}
}

func TestKeyDelta_Size(t *testing.T) {
	enc := NewKeyDeltaEncoder()
	defer enc.Finish()

	enc.WriteSlice([]int{20240130, 20240131, 20240201})
	require.Equal(t, 6, enc.Size())

	enc.Write(20250101)
	require.Equal(t, 8, enc.Size())
}

func TestKeyDelta_Reset(t *testing.T) {
	enc := NewKeyDeltaEncoder()
	defer enc.Finish()

	enc.WriteSlice([]int{20240101, 20240102})
	first := enc.Size()
	enc.Reset()
	enc.Write(20240103)

	// a new run starts with a full zigzag key
	require.Equal(t, first+4, enc.Size())
	require.Equal(t, 3, enc.Len())
}

func TestKeyDelta_Malformed(t *testing.T) {
	dec := NewKeyDeltaDecoder()

	// truncated varint continuation
	require.Empty(t, slices.Collect(dec.All([]byte{0x80}, 1)))
	require.Empty(t, slices.Collect(dec.All(nil, 3)))

	enc := NewKeyDeltaEncoder()
	defer enc.Finish()
	enc.WriteSlice([]int{20240101, 20240102, 20240103})

	got := slices.Collect(dec.All(enc.Bytes(), 10))
	require.Equal(t, []int{20240101, 20240102, 20240103}, got)

	_, ok := dec.At(enc.Bytes(), 5, 10)
	require.False(t, ok)
	_, ok = dec.At(enc.Bytes(), 3, 3)
	require.False(t, ok)
}

func TestNumericRawEncoder_FinishPanics(t *testing.T) {
	enc := NewNumericRawEncoder(endian.GetLittleEndianEngine())
	enc.Finish()
	require.Panics(t, func() { enc.Write(1) })
	require.Panics(t, func() { _ = enc.Bytes() })

	// Finish is idempotent
	require.NotPanics(t, enc.Finish)
}
