package wire

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/datets/errs"
	"github.com/arloliu/datets/format"
)

func TestFlag_Defaults(t *testing.T) {
	f := NewFlag()

	require.False(t, f.IsBigEndian())
	require.Equal(t, uint16(MagicNumericV1Opt), f.MagicNumber())
	require.Equal(t, format.TypeDelta, f.KeyEncodingType())
	require.Equal(t, format.TypeGorilla, f.ValueEncodingType())
	require.Equal(t, format.CompressionNone, f.KeyCompression())
	require.Equal(t, format.CompressionZstd, f.ValueCompression())
	require.NoError(t, f.Validate())
}

func TestFlag_Setters(t *testing.T) {
	f := NewFlag()

	f.WithBigEndian()
	require.True(t, f.IsBigEndian())
	require.Equal(t, uint16(MagicNumericV1Opt), f.MagicNumber())
	f.WithLittleEndian()
	require.False(t, f.IsBigEndian())

	f.SetKeyCompression(format.CompressionLZ4)
	f.SetValueCompression(format.CompressionS2)
	require.Equal(t, format.CompressionLZ4, f.KeyCompression())
	require.Equal(t, format.CompressionS2, f.ValueCompression())
	require.Equal(t, uint8(0x34), f.Compression)

	f.SetKeyCompression(format.CompressionNone)
	require.Equal(t, format.CompressionS2, f.ValueCompression())
}

func TestFlag_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(f *Flag)
		err    error
	}{
		{name: "bad magic", mutate: func(f *Flag) { f.Options = 0xEA10 }, err: errs.ErrInvalidMagic},
		{name: "reserved bits", mutate: func(f *Flag) { f.Options |= 0x0004 }, err: errs.ErrInvalidMagic},
		{name: "gorilla keys", mutate: func(f *Flag) { f.SetKeyEncoding(format.TypeGorilla) }, err: errs.ErrInvalidEncodingType},
		{name: "delta values", mutate: func(f *Flag) { f.SetValueEncoding(format.TypeDelta) }, err: errs.ErrInvalidEncodingType},
		{name: "zero key compression", mutate: func(f *Flag) { f.SetKeyCompression(0) }, err: errs.ErrInvalidCompression},
		{name: "unknown value compression", mutate: func(f *Flag) { f.SetValueCompression(9) }, err: errs.ErrInvalidCompression},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFlag()
			tt.mutate(&f)
			require.ErrorIs(t, f.Validate(), tt.err)
		})
	}
}

func TestHeader_RoundTrip(t *testing.T) {
	for _, big := range []bool{false, true} {
		h := NewHeader()
		if big {
			h.Flag.WithBigEndian()
		}
		h.Count = 123456
		h.KeyPayloadLen = 789
		h.Checksum = 0x0102030405060708

		b := h.Bytes()
		require.Len(t, b, HeaderSize)
		// options are little-endian regardless of byte order
		require.Equal(t, byte(h.Flag.Options), b[0])
		require.Equal(t, byte(Version), b[5])

		parsed, err := ParseHeader(append(b, 0xFF, 0xFF))
		require.NoError(t, err)
		require.Equal(t, h, parsed)
	}
}

func TestHeader_ByteOrder(t *testing.T) {
	h := NewHeader()
	h.Count = 1
	h.Flag.WithBigEndian()

	b := h.Bytes()
	require.Equal(t, []byte{0, 0, 0, 1}, b[countOffset:countOffset+4])

	h.Flag.WithLittleEndian()
	b = h.Bytes()
	require.Equal(t, []byte{1, 0, 0, 0}, b[countOffset:countOffset+4])
}

func TestParseHeader_Errors(t *testing.T) {
	_, err := ParseHeader(make([]byte, HeaderSize-1))
	require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)

	_, err = ParseHeader(make([]byte, HeaderSize))
	require.ErrorIs(t, err, errs.ErrInvalidMagic)

	h := NewHeader()
	h.Version = 2
	_, err = ParseHeader(h.Bytes())
	require.ErrorIs(t, err, errs.ErrUnsupportedVersion)
}
